package functions

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"stripe-payments/internal/database"
	"stripe-payments/internal/model"
	"stripe-payments/internal/notifications"
	"stripe-payments/internal/payments"
	"stripe-payments/internal/reporting"
)

// Handlers are the reactions to the identity platform's lifecycle events.
// Each invocation is stateless and strictly sequential; all collaborators
// are injected at startup.
type Handlers struct {
	db       database.Client
	gateway  payments.Gateway
	reporter reporting.Reporter
	notifier *notifications.Sender
	currency string
}

func NewHandlers(db database.Client, gateway payments.Gateway, reporter reporting.Reporter, notifier *notifications.Sender, currency string) *Handlers {
	return &Handlers{
		db:       db,
		gateway:  gateway,
		reporter: reporter,
		notifier: notifier,
		currency: currency,
	}
}

// UserCreated provisions a payment customer for a new account and records
// the mapping in the customer directory. The platform fires this at most
// once per account, so there is no guard here.
func (h *Handlers) UserCreated(user model.UserRecord) error {
	customerID, err := h.gateway.CreateCustomer(user.Email)
	if err != nil {
		return fmt.Errorf("provisioning customer for user %s: %w", user.UID, err)
	}

	if err := h.db.SetCustomerID(user.UID, customerID); err != nil {
		return err
	}

	if h.notifier != nil {
		if err := h.notifier.SendBillingWelcomeEmail(user.Email); err != nil {
			log.Errorf("sending billing welcome email to %s: %v", user.Email, err)
		}
	}

	return nil
}

// UserDeleted removes the payment customer for a deleted account: gateway
// deletion first, directory entry second, no compensation between them.
// An absent directory entry makes the whole cleanup a no-op so re-delivered
// delete events are safe.
func (h *Handlers) UserDeleted(uid string) error {
	customerID, err := h.db.GetCustomerID(uid)
	if err != nil {
		return err
	}
	if customerID == "" {
		return nil
	}

	if err := h.gateway.DeleteCustomer(customerID); err != nil {
		return fmt.Errorf("cleaning up customer for user %s: %w", uid, err)
	}

	return h.db.DeleteCustomerID(uid)
}
