package main

import (
	"strconv"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/sendgrid/sendgrid-go"
	log "github.com/sirupsen/logrus"

	"stripe-payments/internal/database"
	"stripe-payments/internal/functions"
	"stripe-payments/internal/notifications"
	"stripe-payments/internal/payments"
	"stripe-payments/internal/reporting"
)

func main() {
	log.Println("starting stripe payments server")

	cfg, err := ReadConfig()
	if err != nil {
		log.Fatalf("reading config: %v", err)
	}

	port, err := strconv.Atoi(cfg.Port)
	if err != nil {
		log.Fatalf("converting port to integer: %v", err)
	}

	db, err := database.NewClient(cfg.DBCon)
	if err != nil {
		log.Fatalf("creating database client: %v", err)
	}
	defer db.Close()

	gateway := payments.NewStripeGateway(cfg.StripeToken)
	reporter := reporting.NewReporter(reporting.LogSink{}, cfg.FunctionName)

	var notifier *notifications.Sender
	if cfg.SendgridKey != "" {
		notifier = notifications.NewSender(sendgrid.NewSendClient(cfg.SendgridKey))
	}

	var nrApp *newrelic.Application
	if cfg.NewRelicLicense != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.FunctionName),
			newrelic.ConfigLicense(cfg.NewRelicLicense),
		)
		if err != nil {
			log.Fatalf("creating new relic application: %v", err)
		}
	}

	handlers := functions.NewHandlers(db, gateway, reporter, notifier, cfg.Currency)
	server := NewServer(port, db, handlers, cfg.JWTKey, nrApp)

	log.Fatal(server.Run())
}
