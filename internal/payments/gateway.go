package payments

import (
	"fmt"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"
)

// Gateway wraps the payment provider operations this service needs. The
// idempotency key passed to CreateCharge is the provider-side defense
// against duplicate submissions of the same charge request.
type Gateway interface {
	CreateCustomer(email string) (string, error)
	CreateCharge(amount int64, currency, customerID, idempotencyKey string) (*stripe.Charge, error)
	DeleteCustomer(customerID string) error
}

type stripeGateway struct {
	api *client.API
}

func NewStripeGateway(token string) Gateway {
	api := &client.API{}
	api.Init(token, nil)
	return &stripeGateway{api: api}
}

func (g *stripeGateway) CreateCustomer(email string) (string, error) {
	customer, err := g.api.Customers.New(&stripe.CustomerParams{
		Email: stripe.String(email),
	})
	if err != nil {
		return "", fmt.Errorf("creating stripe customer: %w", err)
	}

	return customer.ID, nil
}

func (g *stripeGateway) CreateCharge(amount int64, currency, customerID, idempotencyKey string) (*stripe.Charge, error) {
	params := &stripe.ChargeParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
		Customer: stripe.String(customerID),
	}
	params.SetIdempotencyKey(idempotencyKey)

	charge, err := g.api.Charges.New(params)
	if err != nil {
		return nil, fmt.Errorf("creating stripe charge: %w", err)
	}

	return charge, nil
}

func (g *stripeGateway) DeleteCustomer(customerID string) error {
	_, err := g.api.Customers.Del(customerID, nil)
	if err != nil {
		return fmt.Errorf("deleting stripe customer %s: %w", customerID, err)
	}

	return nil
}
