package payments

import (
	"errors"

	"github.com/stripe/stripe-go/v74"
)

// GenericAlertMessage is stored on a charge when the failure has no
// classified provider message safe to show. Internal detail goes to the
// error reporter only.
const GenericAlertMessage = "An error occurred, developers have been alerted"

// UserFacingMessage derives the message stored on a failed charge record.
// Classified provider errors carry a message written for end users, so it
// passes through verbatim; everything else maps to the generic alert.
func UserFacingMessage(err error) string {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Type != "" {
		return stripeErr.Msg
	}

	return GenericAlertMessage
}
