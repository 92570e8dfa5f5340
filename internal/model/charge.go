package model

import "github.com/stripe/stripe-go/v74"

// ChargeState classifies a charge request record. A record is terminal once
// it carries either a gateway response with an id or a user-facing error;
// terminal records must never be submitted again.
type ChargeState int

const (
	ChargePending ChargeState = iota
	ChargeSucceeded
	ChargeFailed
)

// ChargeRequest is one requested charge for a user. The application creates
// it with only Amount set; the charge workflow finalizes it exactly once by
// filling in either Response or Error, never both.
type ChargeRequest struct {
	UserID   string         `json:"-"`
	ChargeID string         `json:"-"`
	Amount   int64          `json:"amount"`
	Response *stripe.Charge `json:"response,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// State reports whether the record is still pending or already finalized.
func (c *ChargeRequest) State() ChargeState {
	if c.Error != "" {
		return ChargeFailed
	}
	if c.Response != nil && c.Response.ID != "" {
		return ChargeSucceeded
	}
	return ChargePending
}
