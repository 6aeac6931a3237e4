package coreapi

import (
	"context"

	"github.com/antinvestor/service-mpesa/service/models"
)

type MpesaApiClient interface {
	RegisterURL(ctx context.Context, req models.RegisterURLRequest) (RegisterURLOutcome, error)
	BusinessToCustomer(ctx context.Context, req models.BusinessToCustomerRequest) (B2COutcome, error)
	CustomerToBusinessPayment(ctx context.Context, req models.CustomerToBusinessPaymentRequest) (C2BOutcome, error)
	BusinessPayBill(ctx context.Context, req models.BusinessPayBillRequest) (PayBillOutcome, error)
	BusinessBuyGoods(ctx context.Context, req models.BusinessBuyGoodsRequest) (BuyGoodsOutcome, error)
}

var _ MpesaApiClient = (*Gateway)(nil)
