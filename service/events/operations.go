package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/antinvestor/service-mpesa/service/coreapi"
	"github.com/antinvestor/service-mpesa/service/models"
	"github.com/antinvestor/service-mpesa/service/repository"
	"github.com/antinvestor/service-mpesa/service/utility"
	"github.com/pitabwire/frame"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type RegisterURL struct {
	Service *frame.Service
	Client  coreapi.MpesaApiClient
}

func (e *RegisterURL) Name() string {
	return RegisterURLEventName
}

func (e *RegisterURL) PayloadType() any {
	return &models.RegisterURLRequest{}
}

func (e *RegisterURL) Validate(_ context.Context, payload any) error {
	req, ok := payload.(*models.RegisterURLRequest)
	if !ok {
		return invalidPayload("models.RegisterURLRequest")
	}
	return validateRegisterURL(req)
}

// Execute registers the urls of a short code. Registration is not tied to a
// payment, so nothing is reported to the payment service.
func (e *RegisterURL) Execute(ctx context.Context, payload any) error {
	req := payload.(*models.RegisterURLRequest)

	e.Service.Log(ctx).WithField("shortCode", req.ShortCode).WithField("type", e.Name()).Debug("handling event")

	return dispatcher{sink: e.Service}.dispatch(ctx, "", models.OperationRegisterURL,
		func() (*models.Transaction, error) {
			return submitRegisterURL(ctx, e.Client, req)
		})
}

func submitRegisterURL(ctx context.Context, client coreapi.MpesaApiClient, req *models.RegisterURLRequest) (*models.Transaction, error) {
	transaction := newTransaction("", models.OperationRegisterURL, req.ShortCode, decimal.NullDecimal{}, datatypes.JSONMap{
		"response_type":    req.ResponseType,
		"confirmation_url": req.ConfirmationURL,
		"validation_url":   req.ValidationURL,
	})

	outcome, err := client.RegisterURL(ctx, *req)
	if err != nil {
		return requestFailed(transaction, err)
	}
	return recordOutcome(transaction, outcome, registerURLAck), nil
}

func validateRegisterURL(req *models.RegisterURLRequest) error {
	switch {
	case strings.TrimSpace(req.ShortCode) == "":
		return errors.New("short code is required")
	case req.ResponseType != "Completed" && req.ResponseType != "Cancelled":
		return fmt.Errorf("response type %q should be Completed or Cancelled", req.ResponseType)
	case req.ConfirmationURL == "" || req.ValidationURL == "":
		return errors.New("confirmation and validation urls are required")
	}
	return nil
}

type Disburse struct {
	Service      *frame.Service
	Client       coreapi.MpesaApiClient
	Transactions repository.TransactionRepository
	PaymentCli   PaymentStatusClient
}

func (e *Disburse) Name() string {
	return DisburseEventName
}

func (e *Disburse) PayloadType() any {
	return &models.DisbursementJob{}
}

func (e *Disburse) Validate(_ context.Context, payload any) error {
	job, ok := payload.(*models.DisbursementJob)
	if !ok {
		return invalidPayload("models.DisbursementJob")
	}
	return validateDisbursement(job)
}

func (e *Disburse) Execute(ctx context.Context, payload any) error {
	job := payload.(*models.DisbursementJob)

	e.Service.Log(ctx).WithField("paymentId", job.PaymentID).WithField("type", e.Name()).Debug("handling event")

	return dispatcher{sink: e.Service, transactions: e.Transactions, paymentCli: e.PaymentCli}.
		dispatch(ctx, job.PaymentID, models.OperationB2C, func() (*models.Transaction, error) {
			return submitDisbursement(ctx, e.Client, job)
		})
}

func submitDisbursement(ctx context.Context, client coreapi.MpesaApiClient, job *models.DisbursementJob) (*models.Transaction, error) {
	transaction := newTransaction(job.PaymentID, models.OperationB2C, job.Request.OriginatorConversationID,
		utility.AmountFromUnits(job.Request.Amount), datatypes.JSONMap{
			"command_id": job.Request.CommandID,
			"party_a":    job.Request.PartyA,
			"party_b":    job.Request.PartyB,
			"remarks":    job.Request.Remarks,
			"occasion":   job.Request.Occassion,
		})

	outcome, err := client.BusinessToCustomer(ctx, job.Request)
	if err != nil {
		return requestFailed(transaction, err)
	}
	return recordOutcome(transaction, outcome, b2cAck), nil
}

func validateDisbursement(job *models.DisbursementJob) error {
	switch {
	case job.PaymentID == "":
		return errors.New("payment id is required")
	case job.Request.Amount == 0:
		return errors.New("amount should be greater than zero")
	case job.Request.PartyB == "":
		return errors.New("recipient (PartyB) is required")
	case job.Request.ResultURL == "" || job.Request.QueueTimeOutURL == "":
		return errors.New("result and queue timeout urls are required")
	}
	return nil
}

type Collect struct {
	Service      *frame.Service
	Client       coreapi.MpesaApiClient
	Transactions repository.TransactionRepository
	PaymentCli   PaymentStatusClient
	// Passkey signs prompts that arrive without a password.
	Passkey string
}

func (e *Collect) Name() string {
	return CollectEventName
}

func (e *Collect) PayloadType() any {
	return &models.CollectionJob{}
}

func (e *Collect) Validate(_ context.Context, payload any) error {
	job, ok := payload.(*models.CollectionJob)
	if !ok {
		return invalidPayload("models.CollectionJob")
	}
	return validateCollection(job, e.Passkey)
}

func (e *Collect) Execute(ctx context.Context, payload any) error {
	job := payload.(*models.CollectionJob)

	e.Service.Log(ctx).WithField("paymentId", job.PaymentID).WithField("type", e.Name()).Debug("handling event")

	return dispatcher{sink: e.Service, transactions: e.Transactions, paymentCli: e.PaymentCli}.
		dispatch(ctx, job.PaymentID, models.OperationC2B, func() (*models.Transaction, error) {
			return submitCollection(ctx, e.Client, job, signCollection(job.Request, e.Passkey, time.Now()))
		})
}

func submitCollection(ctx context.Context, client coreapi.MpesaApiClient, job *models.CollectionJob, request models.CustomerToBusinessPaymentRequest) (*models.Transaction, error) {
	transaction := newTransaction(job.PaymentID, models.OperationC2B, request.AccountReference,
		utility.AmountFromUnits(request.Amount), datatypes.JSONMap{
			"transaction_type": request.TransactionType,
			"phone_number":     request.PhoneNumber,
			"short_code":       request.BusinessShortCode,
			"description":      request.TransactionDesc,
		})

	outcome, err := client.CustomerToBusinessPayment(ctx, request)
	if err != nil {
		return requestFailed(transaction, err)
	}
	return recordOutcome(transaction, outcome, c2bAck), nil
}

// signCollection fills in the password and timestamp when the job left them out.
func signCollection(req models.CustomerToBusinessPaymentRequest, passkey string, at time.Time) models.CustomerToBusinessPaymentRequest {
	if req.Password != "" || passkey == "" {
		return req
	}
	req.Password, req.Timestamp = coreapi.NewStkPassword(req.BusinessShortCode, passkey, at)
	return req
}

func validateCollection(job *models.CollectionJob, passkey string) error {
	switch {
	case job.PaymentID == "":
		return errors.New("payment id is required")
	case job.Request.Amount == 0:
		return errors.New("amount should be greater than zero")
	case job.Request.PhoneNumber == 0:
		return errors.New("phone number is required")
	case job.Request.BusinessShortCode == "":
		return errors.New("business short code is required")
	case job.Request.CallBackURL == "":
		return errors.New("callback url is required")
	case job.Request.Password == "" && passkey == "":
		return errors.New("password is required when no passkey is configured")
	}
	return nil
}

type PayBill struct {
	Service      *frame.Service
	Client       coreapi.MpesaApiClient
	Transactions repository.TransactionRepository
	PaymentCli   PaymentStatusClient
}

func (e *PayBill) Name() string {
	return PayBillEventName
}

func (e *PayBill) PayloadType() any {
	return &models.BusinessPaymentJob{}
}

func (e *PayBill) Validate(_ context.Context, payload any) error {
	job, ok := payload.(*models.BusinessPaymentJob)
	if !ok {
		return invalidPayload("models.BusinessPaymentJob")
	}
	return validateBusinessPayment(job)
}

func (e *PayBill) Execute(ctx context.Context, payload any) error {
	job := payload.(*models.BusinessPaymentJob)

	e.Service.Log(ctx).WithField("paymentId", job.PaymentID).WithField("type", e.Name()).Debug("handling event")

	return dispatcher{sink: e.Service, transactions: e.Transactions, paymentCli: e.PaymentCli}.
		dispatch(ctx, job.PaymentID, models.OperationPayBill, func() (*models.Transaction, error) {
			return submitPayBill(ctx, e.Client, job)
		})
}

type BuyGoods struct {
	Service      *frame.Service
	Client       coreapi.MpesaApiClient
	Transactions repository.TransactionRepository
	PaymentCli   PaymentStatusClient
}

func (e *BuyGoods) Name() string {
	return BuyGoodsEventName
}

func (e *BuyGoods) PayloadType() any {
	return &models.BusinessPaymentJob{}
}

func (e *BuyGoods) Validate(_ context.Context, payload any) error {
	job, ok := payload.(*models.BusinessPaymentJob)
	if !ok {
		return invalidPayload("models.BusinessPaymentJob")
	}
	return validateBusinessPayment(job)
}

func (e *BuyGoods) Execute(ctx context.Context, payload any) error {
	job := payload.(*models.BusinessPaymentJob)

	e.Service.Log(ctx).WithField("paymentId", job.PaymentID).WithField("type", e.Name()).Debug("handling event")

	return dispatcher{sink: e.Service, transactions: e.Transactions, paymentCli: e.PaymentCli}.
		dispatch(ctx, job.PaymentID, models.OperationBuyGoods, func() (*models.Transaction, error) {
			return submitBuyGoods(ctx, e.Client, job)
		})
}

func submitPayBill(ctx context.Context, client coreapi.MpesaApiClient, job *models.BusinessPaymentJob) (*models.Transaction, error) {
	transaction := businessTransaction(job, models.OperationPayBill)

	outcome, err := client.BusinessPayBill(ctx, job.Request)
	if err != nil {
		return requestFailed(transaction, err)
	}
	return recordOutcome(transaction, outcome, payBillAck), nil
}

// submitBuyGoods sends the job over the buy goods endpoint, which shares the pay bill schema.
func submitBuyGoods(ctx context.Context, client coreapi.MpesaApiClient, job *models.BusinessPaymentJob) (*models.Transaction, error) {
	transaction := businessTransaction(job, models.OperationBuyGoods)

	outcome, err := client.BusinessBuyGoods(ctx, models.BusinessBuyGoodsRequest(job.Request))
	if err != nil {
		return requestFailed(transaction, err)
	}
	return recordOutcome(transaction, outcome, buyGoodsAck), nil
}

func businessTransaction(job *models.BusinessPaymentJob, operation string) *models.Transaction {
	return newTransaction(job.PaymentID, operation, job.Request.AccountReference,
		utility.AmountFromUnits(job.Request.Amount), datatypes.JSONMap{
			"command_id": job.Request.CommandID,
			"party_a":    job.Request.PartyA,
			"party_b":    job.Request.PartyB,
			"requester":  job.Request.Requester,
			"remarks":    job.Request.Remarks,
		})
}

func validateBusinessPayment(job *models.BusinessPaymentJob) error {
	switch {
	case job.PaymentID == "":
		return errors.New("payment id is required")
	case job.Request.Amount == 0:
		return errors.New("amount should be greater than zero")
	case job.Request.PartyA == "" || job.Request.PartyB == "":
		return errors.New("sender (PartyA) and receiver (PartyB) are required")
	case job.Request.ResultURL == "" || job.Request.QueueTimeOutURL == "":
		return errors.New("result and queue timeout urls are required")
	}
	return nil
}
