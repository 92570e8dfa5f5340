package functions

import (
	"stripe-payments/internal/model"
	"stripe-payments/internal/payments"
)

// ChargeWritten reacts to a write on a charge request record. The record
// passed in is the written value itself, not a re-read.
//
// The guard at the top runs strictly before any external call: a missing
// record or one that already carries a response id or an error is final and
// must cause no further submission. Together with the gateway idempotency
// key (the charge id) this keeps re-delivered and cascading write events
// from charging twice.
//
// On gateway failure the record gets a user-facing error message, then the
// full detail goes to the error reporter; once both complete the invocation
// resolves successfully. A failure of either recovery step propagates.
func (h *Handlers) ChargeWritten(record *model.ChargeRequest) error {
	if record == nil || record.State() != model.ChargePending {
		return nil
	}

	// Absence of a directory entry is not handled here; the gateway rejects
	// the charge and the failure takes the recovery path below.
	customerID, err := h.db.GetCustomerID(record.UserID)
	if err != nil {
		return err
	}

	response, err := h.gateway.CreateCharge(record.Amount, h.currency, customerID, record.ChargeID)
	if err != nil {
		if werr := h.db.SetChargeError(record.UserID, record.ChargeID, payments.UserFacingMessage(err)); werr != nil {
			return werr
		}
		return h.reporter.Report(err, map[string]string{"user": record.UserID})
	}

	return h.db.SetChargeResponse(record.UserID, record.ChargeID, response)
}
