package coreapi

import (
	"context"
	"encoding/base64"
	"strings"
	"time"

	"github.com/antinvestor/service-mpesa/service/models"
	"github.com/pitabwire/util"
)

// Endpoints holds the absolute URL of every operation.
type Endpoints struct {
	RegisterURL string
	B2C         string
	C2B         string
	PayBill     string
	BuyGoods    string
}

// EndpointsFromBaseURL derives the operation URLs from the gateway's base URL,
// for example https://sandbox.safaricom.co.ke.
func EndpointsFromBaseURL(base string) Endpoints {
	base = strings.TrimRight(base, "/")
	return Endpoints{
		RegisterURL: base + "/mpesa/c2b/v1/registerurl",
		B2C:         base + "/mpesa/b2c/v1/paymentrequest",
		C2B:         base + "/mpesa/stkpush/v1/processrequest",
		PayBill:     base + "/mpesa/b2b/v1/paymentrequest",
		BuyGoods:    base + "/mpesa/b2b/v1/paymentrequest",
	}
}

type (
	RegisterURLOutcome = Outcome[models.RegisterURLResponse, models.ErrorResponse]
	B2COutcome         = Outcome[models.BusinessToCustomerResponse, models.ErrorResponse]
	C2BOutcome         = Outcome[models.CustomerToBusinessPaymentResponse, models.ErrorResponse]
	PayBillOutcome     = Outcome[models.BusinessPayBillResponse, models.ErrorResponse]
	BuyGoodsOutcome    = Outcome[models.BusinessBuyGoodsResponse, models.ErrorResponse]
)

// Gateway runs each operation as a fresh token request followed by the operation exchange.
type Gateway struct {
	credentials *Credentials
	endpoints   Endpoints
	client      *Client
	now         func() time.Time
}

func NewGateway(credentials *Credentials, endpoints Endpoints, client *Client) *Gateway {
	if client == nil {
		client = NewClient()
	}
	return &Gateway{
		credentials: credentials,
		endpoints:   endpoints,
		client:      client,
		now:         time.Now,
	}
}

func (g *Gateway) RegisterURL(ctx context.Context, req models.RegisterURLRequest) (RegisterURLOutcome, error) {
	return execute[models.RegisterURLRequest, models.RegisterURLResponse](ctx, g, g.endpoints.RegisterURL, req)
}

func (g *Gateway) BusinessToCustomer(ctx context.Context, req models.BusinessToCustomerRequest) (B2COutcome, error) {
	return execute[models.BusinessToCustomerRequest, models.BusinessToCustomerResponse](ctx, g, g.endpoints.B2C, req)
}

func (g *Gateway) CustomerToBusinessPayment(ctx context.Context, req models.CustomerToBusinessPaymentRequest) (C2BOutcome, error) {
	return execute[models.CustomerToBusinessPaymentRequest, models.CustomerToBusinessPaymentResponse](ctx, g, g.endpoints.C2B, req)
}

func (g *Gateway) BusinessPayBill(ctx context.Context, req models.BusinessPayBillRequest) (PayBillOutcome, error) {
	return execute[models.BusinessPayBillRequest, models.BusinessPayBillResponse](ctx, g, g.endpoints.PayBill, req)
}

func (g *Gateway) BusinessBuyGoods(ctx context.Context, req models.BusinessBuyGoodsRequest) (BuyGoodsOutcome, error) {
	return execute[models.BusinessBuyGoodsRequest, models.BusinessBuyGoodsResponse](ctx, g, g.endpoints.BuyGoods, req)
}

// execute never reaches the operation endpoint when the token request fails;
// the failure is reported as an error payload instead.
func execute[Req, Ok any](ctx context.Context, g *Gateway, endpoint string, req Req) (Outcome[Ok, models.ErrorResponse], error) {
	token, err := g.client.AcquireToken(ctx, g.credentials.BasicAuth(), g.credentials.TokenURL())
	if err != nil {
		util.Log(ctx).WithError(err).WithField("endpoint", endpoint).Warn("could not obtain access token")
		return Failed[Ok](0, tokenFailure(g.now(), err)), nil
	}

	return Invoke[Req, Ok, models.ErrorResponse](ctx, g.client, endpoint, req, token)
}

// tokenFailure stands in for the gateway's error body when no token could be obtained.
func tokenFailure(at time.Time, err error) models.ErrorResponse {
	id := fallbackCorrelationID(at)
	return models.ErrorResponse{
		RequestID:    id,
		ErrorCode:    id,
		ErrorMessage: "generate oauth: " + err.Error(),
	}
}

// fallbackCorrelationID formats at as YYYYMMDDHHMMSSmmm in local time.
func fallbackCorrelationID(at time.Time) string {
	return strings.Replace(at.Local().Format("20060102150405.000"), ".", "", 1)
}

// NewStkPassword returns the STK push password for shortCode at the given
// instant, along with the timestamp it was derived from.
func NewStkPassword(shortCode, passkey string, at time.Time) (password, timestamp string) {
	timestamp = at.Format("20060102150405")
	password = base64.StdEncoding.EncodeToString([]byte(shortCode + passkey + timestamp))
	return password, timestamp
}
