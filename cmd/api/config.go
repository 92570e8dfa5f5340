package main

import (
	"errors"
	"fmt"
	"github.com/ardanlabs/conf"
)

type Config struct {
	Port            string `conf:"default:8080,env:PORT"`
	DBCon           string `conf:"default:user=ps_user password=ps_password dbname=payments sslmode=disable host=localhost,env:DB_CONN"`
	JWTKey          string `conf:"default:your_secret_key,env:JWT_KEY"`
	StripeToken     string `conf:"env:STRIPE_TOKEN,noprint"`
	Currency        string `conf:"default:USD,env:CURRENCY"`
	SendgridKey     string `conf:"env:SENDGRID_KEY,noprint"`
	FunctionName    string `conf:"default:stripe-payments,env:FUNCTION_NAME"`
	NewRelicLicense string `conf:"env:NEW_RELIC_LICENSE,noprint"`
}

func ReadConfig() (*Config, error) {
	var cfg Config
	help, err := conf.ParseOSArgs("APP", &cfg)

	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil, fmt.Errorf("parsing config: %w", err)
		}
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}
