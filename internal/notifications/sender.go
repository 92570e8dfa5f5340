package notifications

import (
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	log "github.com/sirupsen/logrus"
)

type Sender struct {
	client *sendgrid.Client
}

func NewSender(client *sendgrid.Client) *Sender {
	return &Sender{
		client: client,
	}
}

func (s *Sender) SendBillingWelcomeEmail(destinationEmail string) error {
	from := mail.NewEmail("Billing", "no-reply@companyemail.com")
	subject := "Your payment account is ready"
	to := mail.NewEmail("Customer", destinationEmail)
	plainTextContent := "Your payment account has been set up. You can now be charged for purchases."
	htmlContent := "<strong>Your payment account is ready.</strong>"
	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)
	response, err := s.client.Send(message)
	if err != nil {
		return err
	}

	if response.StatusCode != 202 {
		log.Errorf("failure sending billing welcome email with sendgrid: %v", response.Body)
	}

	return nil
}
