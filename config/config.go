package config

import (
	"time"

	"github.com/pitabwire/frame"
)

type MpesaConfig struct {
	frame.ConfigurationDefault

	ConsumerKey    string `env:"MPESA_CONSUMER_KEY"`
	ConsumerSecret string `env:"MPESA_CONSUMER_SECRET"`
	TokenURL       string `envDefault:"https://sandbox.safaricom.co.ke/oauth/v1/generate?grant_type=client_credentials" env:"MPESA_TOKEN_URL"`
	APIBaseURL     string `envDefault:"https://sandbox.safaricom.co.ke" env:"MPESA_API_BASE_URL"`
	// StkPasskey signs STK pushes that are queued without a password.
	StkPasskey string `env:"MPESA_STK_PASSKEY"`

	RequestTimeoutSeconds int `envDefault:"30" env:"MPESA_REQUEST_TIMEOUT_SECONDS"`
	MaxRetries            int `envDefault:"0" env:"MPESA_MAX_RETRIES"`
	RetryIntervalMs       int `envDefault:"500" env:"MPESA_RETRY_INTERVAL_MS"`

	PaymentServiceURI string `envDefault:"127.0.0.1:7004" env:"PAYMENT_SERVICE_URI"`
	NatsURL           string `env:"NATS_URL"`
}

func (c *MpesaConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

func (c *MpesaConfig) RetryInterval() time.Duration {
	return time.Duration(c.RetryIntervalMs) * time.Millisecond
}
