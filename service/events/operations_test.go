package events

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	commonv1 "github.com/antinvestor/apis/go/common/v1"
	"github.com/antinvestor/service-mpesa/service/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

func validDisbursement() *models.DisbursementJob {
	return &models.DisbursementJob{
		PaymentID: "payment-1",
		Request: models.BusinessToCustomerRequest{
			InitiatorName:   "testapi",
			CommandID:       "BusinessPayment",
			Amount:          10,
			PartyA:          600996,
			PartyB:          "254728762287",
			QueueTimeOutURL: "https://example.com/b2c/timeout",
			ResultURL:       "https://example.com/b2c/result",
		},
	}
}

func TestValidateDisbursement(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(job *models.DisbursementJob)
		wantErr bool
	}{
		{name: "valid", mutate: func(*models.DisbursementJob) {}},
		{name: "missing payment id", mutate: func(job *models.DisbursementJob) { job.PaymentID = "" }, wantErr: true},
		{name: "zero amount", mutate: func(job *models.DisbursementJob) { job.Request.Amount = 0 }, wantErr: true},
		{name: "missing recipient", mutate: func(job *models.DisbursementJob) { job.Request.PartyB = "" }, wantErr: true},
		{name: "missing result url", mutate: func(job *models.DisbursementJob) { job.Request.ResultURL = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := validDisbursement()
			tt.mutate(job)
			err := validateDisbursement(job)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateRegisterURL(t *testing.T) {
	req := &models.RegisterURLRequest{
		ShortCode:       "600996",
		ResponseType:    "Completed",
		ConfirmationURL: "https://example.com/confirmation",
		ValidationURL:   "https://example.com/validation",
	}
	require.NoError(t, validateRegisterURL(req))

	req.ResponseType = "completed"
	assert.Error(t, validateRegisterURL(req))

	req.ResponseType = "Cancelled"
	req.ValidationURL = ""
	assert.Error(t, validateRegisterURL(req))
}

func TestValidateCollection(t *testing.T) {
	job := &models.CollectionJob{
		PaymentID: "payment-2",
		Request: models.CustomerToBusinessPaymentRequest{
			BusinessShortCode: "174379",
			TransactionType:   "CustomerPayBillOnline",
			Amount:            1,
			PartyA:            254708374149,
			PartyB:            174379,
			PhoneNumber:       254708374149,
			CallBackURL:       "https://example.com/stk",
		},
	}

	assert.Error(t, validateCollection(job, ""), "unsigned prompt without a passkey")
	assert.NoError(t, validateCollection(job, "passkey"))

	job.Request.Password = "signed"
	assert.NoError(t, validateCollection(job, ""))

	job.Request.PhoneNumber = 0
	assert.Error(t, validateCollection(job, "passkey"))
}

func TestSignCollection(t *testing.T) {
	at := time.Date(2024, 3, 7, 9, 5, 3, 0, time.UTC)
	req := models.CustomerToBusinessPaymentRequest{BusinessShortCode: "174379"}

	signed := signCollection(req, "passkey", at)
	assert.Equal(t, "20240307090503", signed.Timestamp)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("174379passkey20240307090503")), signed.Password)

	req.Password = "already"
	req.Timestamp = "20200101000000"
	assert.Equal(t, req, signCollection(req, "passkey", at))

	unsigned := models.CustomerToBusinessPaymentRequest{BusinessShortCode: "174379"}
	assert.Equal(t, unsigned, signCollection(unsigned, "", at))
}

func TestValidateBusinessPayment(t *testing.T) {
	job := &models.BusinessPaymentJob{
		PaymentID: "payment-3",
		Request: models.BusinessPayBillRequest{
			CommandID:       "BusinessPayBill",
			Amount:          190,
			PartyA:          "600996",
			PartyB:          "000000",
			QueueTimeOutURL: "https://example.com/b2b/timeout",
			ResultURL:       "https://example.com/b2b/result",
		},
	}
	require.NoError(t, validateBusinessPayment(job))

	transaction := businessTransaction(job, "buygoods")
	assert.Equal(t, "buygoods", transaction.Operation)
	assert.Equal(t, "payment-3", transaction.PaymentID)
	assert.Equal(t, "190", transaction.Amount.Decimal.String())

	job.Request.PartyA = ""
	assert.Error(t, validateBusinessPayment(job))
}

func TestReportStatus(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	cli := NewMockPaymentStatusClient(ctrl)

	assert.NoError(t, reportStatus(ctx, cli, &commonv1.StatusUpdateRequest{}), "no payment to report on")
	assert.ErrorIs(t, reportStatus(ctx, nil, &commonv1.StatusUpdateRequest{Id: "payment-1"}), errPaymentClientMissing)

	req := &commonv1.StatusUpdateRequest{Id: "payment-1", Status: commonv1.STATUS_IN_PROCESS}
	cli.EXPECT().StatusUpdate(gomock.Any(), req).Return(&commonv1.StatusUpdateResponse{}, nil)
	assert.NoError(t, reportStatus(ctx, cli, req))

	failure := errors.New("unavailable")
	cli.EXPECT().StatusUpdate(gomock.Any(), gomock.Any()).Return(nil, failure)
	assert.ErrorIs(t, reportStatus(ctx, cli, req), failure)
}

type fakeTransactions struct {
	byConversation map[string]*models.Transaction
	byPayment      map[string][]models.Transaction
	err            error
	lookups        []string
}

func (f *fakeTransactions) GetByConversationID(_ context.Context, id string) (*models.Transaction, error) {
	f.lookups = append(f.lookups, id)
	if f.err != nil {
		return nil, f.err
	}
	if t, ok := f.byConversation[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTransactions) GetByPaymentID(_ context.Context, paymentID string) ([]models.Transaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byPayment[paymentID], nil
}

func (f *fakeTransactions) Save(context.Context, *models.Transaction) error {
	return nil
}

func TestOriginatingTransaction(t *testing.T) {
	ctx := context.Background()
	stored := &models.Transaction{PaymentID: "payment-5", ConversationID: "AG_1"}

	repo := &fakeTransactions{byConversation: map[string]*models.Transaction{"16740-1": stored}}
	found, err := originatingTransaction(ctx, repo, "AG_unknown", "", "16740-1")
	require.NoError(t, err)
	assert.Same(t, stored, found)
	assert.Equal(t, []string{"AG_unknown", "16740-1"}, repo.lookups)
	assert.Equal(t, "payment-5", paymentIDOf(found))

	found, err = originatingTransaction(ctx, &fakeTransactions{}, "AG_missing")
	require.NoError(t, err)
	assert.Nil(t, found)
	assert.Empty(t, paymentIDOf(found))

	failure := errors.New("connection reset")
	_, err = originatingTransaction(ctx, &fakeTransactions{err: failure}, "AG_1")
	assert.ErrorIs(t, err, failure)
}

type recordingEvent struct {
	validateErr error
	executed    *models.ResultNotification
}

func (e *recordingEvent) Name() string     { return "test.event" }
func (e *recordingEvent) PayloadType() any { return &models.ResultNotification{} }

func (e *recordingEvent) Validate(_ context.Context, payload any) error {
	if e.validateErr != nil {
		return e.validateErr
	}
	return validateResult(payload.(*models.ResultNotification))
}

func (e *recordingEvent) Execute(_ context.Context, payload any) error {
	e.executed = payload.(*models.ResultNotification)
	return nil
}

func TestQueueHandler(t *testing.T) {
	ctx := context.Background()

	event := &recordingEvent{}
	handler := &QueueHandler{Event: event}
	message := []byte(`{"Result":{"ResultType":0,"ResultCode":0,"ConversationID":"AG_20191219_00005797af5d7d75f652",
		"ResultParameters":{"ResultParameter":{"Key":"BOCompletedTime","Value":20200120164825}}}}`)

	require.NoError(t, handler.Handle(ctx, map[string]string{}, message))
	require.NotNil(t, event.executed)
	assert.Equal(t, "AG_20191219_00005797af5d7d75f652", event.executed.Result.ConversationID)
	assert.Len(t, event.executed.Result.ResultParameters.ResultParameter, 1)

	event = &recordingEvent{}
	handler = &QueueHandler{Event: event}
	assert.Error(t, handler.Handle(ctx, nil, []byte(`{"Result":{}}`)), "no conversation id")
	assert.Nil(t, event.executed)

	assert.Error(t, handler.Handle(ctx, nil, []byte(`not json`)))
	assert.Nil(t, event.executed)
}

func TestEventPayloadValidation(t *testing.T) {
	ctx := context.Background()

	b2c := &B2CResult{}
	assert.Error(t, b2c.Validate(ctx, &models.StkCallbackNotification{}))
	assert.NoError(t, b2c.Validate(ctx, &models.ResultNotification{Result: models.Result{OriginatorConversationID: "16740-1"}}))

	c2b := &C2BCallback{}
	assert.Error(t, c2b.Validate(ctx, &models.StkCallbackNotification{}))
	assert.NoError(t, c2b.Validate(ctx, &models.StkCallbackNotification{
		Body: models.StkCallbackBody{StkCallback: models.StkCallback{CheckoutRequestID: "ws_CO_1"}},
	}))

	save := &TransactionSave{}
	assert.Error(t, save.Validate(ctx, &models.Transaction{}))
	assert.NoError(t, save.Validate(ctx, newTransaction("payment-1", models.OperationB2C, "", decimal.NullDecimal{}, nil)))

	collect := &Collect{Passkey: "passkey"}
	assert.Error(t, collect.Validate(ctx, validDisbursement()))
}
