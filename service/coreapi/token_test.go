package coreapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireToken(t *testing.T) {
	tests := []struct {
		name           string
		responseStatus int
		responseBody   string
		expectedToken  string
		expectedKind   error
	}{
		{
			name:           "Success - 200 OK",
			responseStatus: http.StatusOK,
			responseBody:   `{"access_token":"c9SQxWWhmdVRlyh0zh8gZDTkubVF","expires_in":"3599"}`,
			expectedToken:  "c9SQxWWhmdVRlyh0zh8gZDTkubVF",
		},
		{
			name:           "Success - token absent",
			responseStatus: http.StatusOK,
			responseBody:   `{}`,
			expectedToken:  "",
		},
		{
			name:           "Success - token null",
			responseStatus: http.StatusOK,
			responseBody:   `{"access_token":null}`,
			expectedToken:  "",
		},
		{
			name:           "Error - 401 Unauthorized",
			responseStatus: http.StatusUnauthorized,
			responseBody:   `not json`,
			expectedKind:   ErrUnexpectedStatus,
		},
		{
			name:           "Error - wrong token type",
			responseStatus: http.StatusOK,
			responseBody:   `{"access_token":42}`,
			expectedKind:   ErrDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "application/json", r.Header.Get("Accept"))
				assert.Equal(t, "text/plain", r.Header.Get("Content-Type"))
				assert.Equal(t, "Basic a2V5OnNlY3JldA==", r.Header.Get("Authorization"))

				w.WriteHeader(tt.responseStatus)
				_, err := w.Write([]byte(tt.responseBody))
				assert.NoError(t, err)
			}))
			defer server.Close()

			client := NewClient(WithHTTPClient(server.Client()))
			token, err := client.AcquireToken(context.Background(), EncodeBasicAuth("key", "secret"), server.URL)

			if tt.expectedKind != nil {
				assert.ErrorIs(t, err, tt.expectedKind)
				assert.Empty(t, token)

				var tokenErr *TokenError
				require.True(t, errors.As(err, &tokenErr))
				if errors.Is(tt.expectedKind, ErrUnexpectedStatus) {
					assert.Equal(t, tt.responseStatus, tokenErr.StatusCode)
					assert.Nil(t, tokenErr.Err)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedToken, token)
		})
	}
}

func TestAcquireToken_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient()
	_, err := client.AcquireToken(context.Background(), "Basic x", url)

	assert.ErrorIs(t, err, ErrTransport)

	var tokenErr *TokenError
	require.True(t, errors.As(err, &tokenErr))
	assert.Error(t, tokenErr.Err)
	assert.Zero(t, tokenErr.StatusCode)
}

func TestBearerHeader(t *testing.T) {
	assert.Equal(t, "Bearer abc", BearerHeader("abc"))
	assert.Equal(t, "", BearerHeader(""))
	assert.Equal(t, "", BearerHeader("   "))
}
