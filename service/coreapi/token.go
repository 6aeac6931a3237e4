package coreapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type tokenResponse struct {
	AccessToken *string `json:"access_token"`
}

// AcquireToken exchanges a basic auth value for an access token. A 200 body
// without access_token yields an empty token and no error.
func (c *Client) AcquireToken(ctx context.Context, authHeader, tokenURL string) (string, error) {
	resp, err := c.get(ctx, tokenURL, map[string]string{
		"Accept":        "application/json",
		"Content-Type":  "text/plain",
		"Authorization": authHeader,
	})
	if err != nil {
		return "", &TokenError{Kind: ErrTransport, Err: err}
	}

	if resp.statusCode != http.StatusOK {
		return "", &TokenError{Kind: ErrUnexpectedStatus, StatusCode: resp.statusCode}
	}

	var token tokenResponse
	if err = json.Unmarshal(resp.body, &token); err != nil {
		return "", &TokenError{Kind: ErrDecode, StatusCode: resp.statusCode, Err: err}
	}

	if token.AccessToken == nil {
		return "", nil
	}
	return *token.AccessToken, nil
}

// BearerHeader renders the Authorization value for an operation request, or
// an empty string when there is no token to present.
func BearerHeader(token string) string {
	if strings.TrimSpace(token) == "" {
		return ""
	}
	return "Bearer " + token
}
