package coreapi

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Credentials identify an application to the gateway's OAuth endpoint.
type Credentials struct {
	consumerKey    string
	consumerSecret string
	tokenURL       string
}

// NewCredentials rejects blank or whitespace only values.
func NewCredentials(consumerKey, consumerSecret, tokenURL string) (*Credentials, error) {
	switch {
	case strings.TrimSpace(consumerKey) == "":
		return nil, fmt.Errorf("consumer key is required: %w", ErrValidation)
	case strings.TrimSpace(consumerSecret) == "":
		return nil, fmt.Errorf("consumer secret is required: %w", ErrValidation)
	case strings.TrimSpace(tokenURL) == "":
		return nil, fmt.Errorf("token url is required: %w", ErrValidation)
	}

	return &Credentials{
		consumerKey:    consumerKey,
		consumerSecret: consumerSecret,
		tokenURL:       tokenURL,
	}, nil
}

// BasicAuth returns the Authorization header value for the token request.
func (c *Credentials) BasicAuth() string {
	return EncodeBasicAuth(c.consumerKey, c.consumerSecret)
}

func (c *Credentials) TokenURL() string {
	return c.tokenURL
}

// EncodeBasicAuth renders "Basic " followed by the padded base64 of key:secret.
func EncodeBasicAuth(consumerKey, consumerSecret string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(consumerKey+":"+consumerSecret))
}
