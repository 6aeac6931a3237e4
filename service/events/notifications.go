package events

import (
	"context"
	"errors"

	commonv1 "github.com/antinvestor/apis/go/common/v1"
	paymentV1 "github.com/antinvestor/apis/go/payment/v1"
	"github.com/antinvestor/service-mpesa/service/models"
	"github.com/antinvestor/service-mpesa/service/repository"
	"github.com/antinvestor/service-mpesa/service/results"
	"github.com/antinvestor/service-mpesa/service/utility"
	"github.com/pitabwire/frame"
	"github.com/pitabwire/util"
	"gorm.io/gorm"
)

// originatingTransaction finds the acknowledgement a notification answers.
// A nil transaction with a nil error means none was recorded.
func originatingTransaction(ctx context.Context, repo repository.TransactionRepository, ids ...string) (*models.Transaction, error) {
	for _, id := range ids {
		if id == "" {
			continue
		}
		transaction, err := repo.GetByConversationID(ctx, id)
		if err == nil {
			return transaction, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return nil, nil
}

func paymentIDOf(transaction *models.Transaction) string {
	if transaction == nil {
		return ""
	}
	return transaction.PaymentID
}

func validateResult(n *models.ResultNotification) error {
	if n.Result.ConversationID == "" && n.Result.OriginatorConversationID == "" {
		return errors.New("result carries no conversation id")
	}
	return nil
}

type B2CResult struct {
	Service      *frame.Service
	Transactions repository.TransactionRepository
	Callbacks    repository.CallbackResultRepository
	PaymentCli   PaymentStatusClient
}

func (e *B2CResult) Name() string {
	return B2CResultEventName
}

func (e *B2CResult) PayloadType() any {
	return &models.ResultNotification{}
}

func (e *B2CResult) Validate(_ context.Context, payload any) error {
	n, ok := payload.(*models.ResultNotification)
	if !ok {
		return invalidPayload("models.ResultNotification")
	}
	return validateResult(n)
}

func (e *B2CResult) Execute(ctx context.Context, payload any) error {
	n := payload.(*models.ResultNotification)

	logger := e.Service.Log(ctx).
		WithField("conversationId", n.Result.ConversationID).
		WithField("resultCode", n.Result.ResultCode).
		WithField("type", e.Name())
	logger.Debug("handling event")

	extracted := results.ExtractB2CResult(n.Result.ResultParameters.ResultParameter)
	callback := b2cCallbackResult(n.Result, extracted)

	transaction, err := originatingTransaction(ctx, e.Transactions, n.Result.ConversationID, n.Result.OriginatorConversationID)
	if err != nil {
		logger.WithError(err).Warn("could not look up originating transaction")
		return err
	}
	callback.PaymentID = paymentIDOf(transaction)
	if transaction == nil {
		logger.Warn("no transaction recorded for this result")
	}

	return settlement{sink: e.Service, callbacks: e.Callbacks, paymentCli: e.PaymentCli}.settle(ctx, callback, nil)
}


// B2BResult handles results of both pay bill and buy goods transfers, timeouts included.
type B2BResult struct {
	Service      *frame.Service
	Transactions repository.TransactionRepository
	Callbacks    repository.CallbackResultRepository
	PaymentCli   PaymentStatusClient
}

func (e *B2BResult) Name() string {
	return B2BResultEventName
}

func (e *B2BResult) PayloadType() any {
	return &models.ResultNotification{}
}

func (e *B2BResult) Validate(_ context.Context, payload any) error {
	n, ok := payload.(*models.ResultNotification)
	if !ok {
		return invalidPayload("models.ResultNotification")
	}
	return validateResult(n)
}

func (e *B2BResult) Execute(ctx context.Context, payload any) error {
	n := payload.(*models.ResultNotification)

	logger := e.Service.Log(ctx).
		WithField("conversationId", n.Result.ConversationID).
		WithField("resultCode", n.Result.ResultCode).
		WithField("type", e.Name())
	logger.Debug("handling event")

	transaction, err := originatingTransaction(ctx, e.Transactions, n.Result.ConversationID, n.Result.OriginatorConversationID)
	if err != nil {
		logger.WithError(err).Warn("could not look up originating transaction")
		return err
	}

	callback := businessResultRecord(n.Result, transaction)
	if callback.Operation == models.OperationTimeout {
		logger.Info("business payment timed out in the gateway queue")
	}

	return settlement{sink: e.Service, callbacks: e.Callbacks, paymentCli: e.PaymentCli}.settle(ctx, callback, nil)
}

func businessResultRecord(result models.Result, transaction *models.Transaction) *models.CallbackResult {
	params := result.ResultParameters.ResultParameter
	references := result.ReferenceData.ReferenceItem

	var callback *models.CallbackResult
	if results.IsTimeout(params) {
		callback = timeoutCallbackResult(result, results.ExtractBusinessTimeout(params, references))
		if transaction != nil {
			callback.Parameters["operation"] = transaction.Operation
		}
	} else {
		operation := models.OperationPayBill
		if transaction != nil && transaction.Operation == models.OperationBuyGoods {
			operation = models.OperationBuyGoods
		}
		callback = businessCallbackResult(operation, result,
			results.ExtractBusinessPaymentResult(params),
			results.ExtractBusinessReference(references))
	}
	callback.PaymentID = paymentIDOf(transaction)
	return callback
}

// C2BCallback handles the outcome of an STK push.
type C2BCallback struct {
	Service      *frame.Service
	Transactions repository.TransactionRepository
	Callbacks    repository.CallbackResultRepository
	PaymentCli   PaymentStatusClient
}

func (e *C2BCallback) Name() string {
	return C2BCallbackEventName
}

func (e *C2BCallback) PayloadType() any {
	return &models.StkCallbackNotification{}
}

func (e *C2BCallback) Validate(_ context.Context, payload any) error {
	n, ok := payload.(*models.StkCallbackNotification)
	if !ok {
		return invalidPayload("models.StkCallbackNotification")
	}
	if n.Body.StkCallback.CheckoutRequestID == "" {
		return errors.New("callback carries no checkout request id")
	}
	return nil
}

func (e *C2BCallback) Execute(ctx context.Context, payload any) error {
	callback := payload.(*models.StkCallbackNotification).Body.StkCallback

	logger := e.Service.Log(ctx).
		WithField("checkoutRequestId", callback.CheckoutRequestID).
		WithField("resultCode", callback.ResultCode).
		WithField("type", e.Name())
	logger.Debug("handling event")

	extracted := results.ExtractC2BPaymentResult(callback.CallbackMetadata.Parameters())
	record := c2bCallbackResult(callback, extracted)

	transaction, err := originatingTransaction(ctx, e.Transactions, callback.CheckoutRequestID, callback.MerchantRequestID)
	if err != nil {
		logger.WithError(err).Warn("could not look up originating transaction")
		return err
	}
	record.PaymentID = paymentIDOf(transaction)

	return settlement{sink: e.Service, callbacks: e.Callbacks, paymentCli: e.PaymentCli}.
		settle(ctx, record, receiver(ctx, e.PaymentCli, extracted))
}

// receiver credits a collected payment. Failed prompts have nothing to credit.
func receiver(ctx context.Context, cli PaymentStatusClient, extracted *results.C2BPaymentResult) func(*models.CallbackResult) error {
	return func(record *models.CallbackResult) error {
		if !record.Succeeded() || extracted == nil {
			return nil
		}
		if cli == nil {
			return errPaymentClientMissing
		}
		if _, err := cli.Receive(ctx, receiveRequest(record, extracted)); err != nil {
			util.Log(ctx).WithError(err).WithField("callbackId", record.ID).Error("failed to receive payment")
			return err
		}
		return nil
	}
}

func receiveRequest(record *models.CallbackResult, extracted *results.C2BPaymentResult) *paymentV1.ReceiveRequest {
	amount := utility.AmountFromFloat(extracted.Amount).Decimal

	return &paymentV1.ReceiveRequest{
		Data: &paymentV1.Payment{
			TransactionId: extracted.MpesaReceiptNumber,
			ReferenceId:   record.PaymentID,
			Route:         paymentRoute,
			Amount:        utility.ToMoney(utility.Currency, amount),
			Source: &commonv1.ContactLink{
				ContactId: extracted.PhoneNumber,
				Extras: map[string]string{
					"mobile_number": extracted.PhoneNumber,
				},
			},
			Extra: map[string]string{
				"checkout_request_id": record.ConversationID,
				"merchant_request_id": record.OriginatorConversationID,
				"transaction_date":    extracted.TransactionDate,
				"callback_id":         record.ID,
			},
		},
	}
}
