package coreapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pitabwire/util"
)

// Invoke posts req to endpoint and decodes the response into the success
// schema on 200 or the failure schema on any other status. An empty bearer
// leaves the Authorization header out.
func Invoke[Req, Ok, Fail any](
	ctx context.Context,
	c *Client,
	endpoint string,
	req Req,
	bearer string,
) (Outcome[Ok, Fail], error) {
	var empty Outcome[Ok, Fail]

	payload, err := json.Marshal(req)
	if err != nil {
		return empty, &RequestError{Kind: ErrValidation, URL: endpoint, Err: fmt.Errorf("encode request: %w", err)}
	}

	log := util.Log(ctx).WithField("endpoint", endpoint)
	log.Debug("sending gateway request")

	resp, err := c.post(ctx, endpoint, payload, map[string]string{
		"Content-Type":  "application/json",
		"Accept":        "application/json",
		"Authorization": BearerHeader(bearer),
	})
	if err != nil {
		return empty, &RequestError{Kind: ErrTransport, URL: endpoint, Err: err}
	}

	log = log.WithField("status", resp.statusCode)

	if resp.statusCode == http.StatusOK {
		var ok Ok
		if err = json.Unmarshal(resp.body, &ok); err != nil {
			return empty, &RequestError{Kind: ErrDecode, URL: endpoint, Err: err}
		}
		log.Debug("gateway request accepted")
		return Succeeded[Ok, Fail](resp.statusCode, ok), nil
	}

	var fail Fail
	if err = json.Unmarshal(resp.body, &fail); err != nil {
		return empty, &RequestError{Kind: ErrDecode, URL: endpoint, Err: err}
	}
	log.Debug("gateway request rejected")
	return Failed[Ok, Fail](resp.statusCode, fail), nil
}
