package coreapi

import (
	"context"

	"github.com/antinvestor/service-mpesa/service/models"
	"github.com/stretchr/testify/mock"
)

// MockClient is a mock implementation of MpesaApiClient.
type MockClient struct {
	mock.Mock
}

// RegisterURL mocks the RegisterURL method.
func (m *MockClient) RegisterURL(ctx context.Context, req models.RegisterURLRequest) (RegisterURLOutcome, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return RegisterURLOutcome{}, args.Error(1)
	}
	return args.Get(0).(RegisterURLOutcome), args.Error(1)
}

// BusinessToCustomer mocks the BusinessToCustomer method.
func (m *MockClient) BusinessToCustomer(ctx context.Context, req models.BusinessToCustomerRequest) (B2COutcome, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return B2COutcome{}, args.Error(1)
	}
	return args.Get(0).(B2COutcome), args.Error(1)
}

// CustomerToBusinessPayment mocks the CustomerToBusinessPayment method.
func (m *MockClient) CustomerToBusinessPayment(ctx context.Context, req models.CustomerToBusinessPaymentRequest) (C2BOutcome, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return C2BOutcome{}, args.Error(1)
	}
	return args.Get(0).(C2BOutcome), args.Error(1)
}

// BusinessPayBill mocks the BusinessPayBill method.
func (m *MockClient) BusinessPayBill(ctx context.Context, req models.BusinessPayBillRequest) (PayBillOutcome, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return PayBillOutcome{}, args.Error(1)
	}
	return args.Get(0).(PayBillOutcome), args.Error(1)
}

// BusinessBuyGoods mocks the BusinessBuyGoods method.
func (m *MockClient) BusinessBuyGoods(ctx context.Context, req models.BusinessBuyGoodsRequest) (BuyGoodsOutcome, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return BuyGoodsOutcome{}, args.Error(1)
	}
	return args.Get(0).(BuyGoodsOutcome), args.Error(1)
}

var _ MpesaApiClient = (*MockClient)(nil)
