package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"stripe-payments/internal/model"
	"time"

	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
)

// Client is the durable storage behind the two mappings this service owns:
// the customer directory (user id -> stripe customer id) and the per-user
// charge record store. Both are shared with other parts of the application;
// the store provides last-write-wins semantics per key and no locking.
type Client interface {
	Close()
	SetCustomerID(userID, customerID string) error
	GetCustomerID(userID string) (string, error)
	DeleteCustomerID(userID string) error
	UpsertChargeAmount(userID, chargeID string, amount int64) (*model.ChargeRequest, error)
	GetCharge(userID, chargeID string) (*model.ChargeRequest, error)
	SetChargeResponse(userID, chargeID string, response *stripe.Charge) error
	SetChargeError(userID, chargeID, message string) error
}

type client struct {
	db *sql.DB
}

func NewClient(connStr string) (Client, error) {
	db, err := sql.Open("postgres", connStr)

	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	return &client{db: db}, nil
}

func (c *client) Close() {
	err := c.db.Close()
	if err != nil {
		log.Errorf("closing database: %v", err)
	}
}

func (c *client) SetCustomerID(userID, customerID string) error {
	query := `INSERT INTO stripe_customers (user_id, customer_id, created_at)
              VALUES ($1, $2, $3)
              ON CONFLICT (user_id) DO UPDATE SET customer_id = EXCLUDED.customer_id`
	_, err := c.db.Exec(query, userID, customerID, time.Now())
	if err != nil {
		return fmt.Errorf("storing customer id for user %s: %w", userID, err)
	}

	return nil
}

// GetCustomerID returns an empty string when no entry exists for the user;
// absence is for the caller to decide on, not an error of the lookup.
func (c *client) GetCustomerID(userID string) (string, error) {
	var customerID string
	err := c.db.QueryRow(`SELECT customer_id FROM stripe_customers WHERE user_id = $1`, userID).Scan(&customerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("querying customer id for user %s: %w", userID, err)
	}

	return customerID, nil
}

func (c *client) DeleteCustomerID(userID string) error {
	_, err := c.db.Exec(`DELETE FROM stripe_customers WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("deleting customer id for user %s: %w", userID, err)
	}

	return nil
}

// UpsertChargeAmount records the application's charge request and returns
// the full stored record. Terminal fields of an existing record are kept
// untouched so a re-delivered write cannot reopen a finalized charge.
func (c *client) UpsertChargeAmount(userID, chargeID string, amount int64) (*model.ChargeRequest, error) {
	query := `INSERT INTO charges (user_id, charge_id, amount, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $4)
              ON CONFLICT (user_id, charge_id) DO UPDATE SET amount = EXCLUDED.amount, updated_at = EXCLUDED.updated_at
              RETURNING amount, response, error`

	record := &model.ChargeRequest{UserID: userID, ChargeID: chargeID}
	var response, message sql.NullString
	err := c.db.QueryRow(query, userID, chargeID, amount, time.Now()).Scan(&record.Amount, &response, &message)
	if err != nil {
		return nil, fmt.Errorf("writing charge %s for user %s: %w", chargeID, userID, err)
	}

	if err := applyStoredFields(record, response, message); err != nil {
		return nil, err
	}

	return record, nil
}

// GetCharge returns nil when no record exists at (userID, chargeID).
func (c *client) GetCharge(userID, chargeID string) (*model.ChargeRequest, error) {
	record := &model.ChargeRequest{UserID: userID, ChargeID: chargeID}
	var response, message sql.NullString
	err := c.db.QueryRow(
		`SELECT amount, response, error FROM charges WHERE user_id = $1 AND charge_id = $2`,
		userID, chargeID,
	).Scan(&record.Amount, &response, &message)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("querying charge %s for user %s: %w", chargeID, userID, err)
	}

	if err := applyStoredFields(record, response, message); err != nil {
		return nil, err
	}

	return record, nil
}

func (c *client) SetChargeResponse(userID, chargeID string, response *stripe.Charge) error {
	data, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("encoding charge response: %w", err)
	}

	query := `UPDATE charges SET response = $3, updated_at = $4 WHERE user_id = $1 AND charge_id = $2`
	_, err = c.db.Exec(query, userID, chargeID, data, time.Now())
	if err != nil {
		return fmt.Errorf("storing charge response for %s/%s: %w", userID, chargeID, err)
	}

	return nil
}

func (c *client) SetChargeError(userID, chargeID, message string) error {
	query := `UPDATE charges SET error = $3, updated_at = $4 WHERE user_id = $1 AND charge_id = $2`
	_, err := c.db.Exec(query, userID, chargeID, message, time.Now())
	if err != nil {
		return fmt.Errorf("storing charge error for %s/%s: %w", userID, chargeID, err)
	}

	return nil
}

func applyStoredFields(record *model.ChargeRequest, response, message sql.NullString) error {
	if response.Valid {
		var charge stripe.Charge
		if err := json.Unmarshal([]byte(response.String), &charge); err != nil {
			return fmt.Errorf("decoding stored charge response for %s/%s: %w", record.UserID, record.ChargeID, err)
		}
		record.Response = &charge
	}
	if message.Valid {
		record.Error = message.String
	}

	return nil
}
