package events

import (
	"strconv"

	commonv1 "github.com/antinvestor/apis/go/common/v1"
	"github.com/antinvestor/service-mpesa/service/coreapi"
	"github.com/antinvestor/service-mpesa/service/models"
	"github.com/antinvestor/service-mpesa/service/results"
	"github.com/antinvestor/service-mpesa/service/utility"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type acknowledgement struct {
	ConversationID      string
	OriginatorID        string
	ResponseCode        string
	ResponseDescription string
}

func newTransaction(paymentID, operation, reference string, amount decimal.NullDecimal, extra datatypes.JSONMap) *models.Transaction {
	transaction := &models.Transaction{
		PaymentID: paymentID,
		Operation: operation,
		Reference: reference,
		Amount:    amount,
		Extra:     extra,
	}
	transaction.ID = models.NewID()
	return transaction
}

// recordOutcome copies whichever payload the outcome holds onto transaction.
func recordOutcome[Ok any](
	transaction *models.Transaction,
	outcome coreapi.Outcome[Ok, models.ErrorResponse],
	ack func(Ok) acknowledgement,
) *models.Transaction {
	transaction.StatusCode = outcome.StatusCode

	if success, ok := outcome.Success(); ok {
		a := ack(success)
		transaction.ConversationID = a.ConversationID
		transaction.OriginatorID = a.OriginatorID
		transaction.ResponseCode = a.ResponseCode
		transaction.ResponseDescription = a.ResponseDescription
		return transaction
	}

	if failure, ok := outcome.Failure(); ok {
		transaction.OriginatorID = failure.RequestID
		transaction.ErrorCode = failure.ErrorCode
		transaction.ErrorMessage = failure.ErrorMessage
	}
	return transaction
}

func registerURLAck(r models.RegisterURLResponse) acknowledgement {
	return acknowledgement{
		ConversationID:      r.ConversationID,
		OriginatorID:        r.OriginatorCoversationID,
		ResponseDescription: r.ResponseDescription,
	}
}

func b2cAck(r models.BusinessToCustomerResponse) acknowledgement {
	return acknowledgement{
		ConversationID:      r.ConversationID,
		OriginatorID:        r.OriginatorConversationID,
		ResponseCode:        r.ResponseCode,
		ResponseDescription: r.ResponseDescription,
	}
}

// c2bAck keys STK pushes by CheckoutRequestID since that is what the callback carries.
func c2bAck(r models.CustomerToBusinessPaymentResponse) acknowledgement {
	return acknowledgement{
		ConversationID:      r.CheckoutRequestID,
		OriginatorID:        r.MerchantRequestID,
		ResponseCode:        r.ResponseCode,
		ResponseDescription: r.ResponseDescription,
	}
}

func payBillAck(r models.BusinessPayBillResponse) acknowledgement {
	return acknowledgement{
		ConversationID:      r.ConversationID,
		OriginatorID:        r.OriginatorConversationID,
		ResponseCode:        r.ResponseCode,
		ResponseDescription: r.ResponseDescription,
	}
}

func buyGoodsAck(r models.BusinessBuyGoodsResponse) acknowledgement {
	return payBillAck(models.BusinessPayBillResponse(r))
}

// acknowledgementStatus tells the payment service whether the gateway took the request.
func acknowledgementStatus(transaction *models.Transaction) *commonv1.StatusUpdateRequest {
	status := commonv1.STATUS_IN_PROCESS
	if !transaction.Accepted() {
		status = commonv1.STATUS_FAILED
	}

	extras := map[string]string{
		"transaction_id":  transaction.ID,
		"operation":       transaction.Operation,
		"conversation_id": transaction.ConversationID,
		"originator_id":   transaction.OriginatorID,
		"status_code":     strconv.Itoa(transaction.StatusCode),
	}
	if transaction.ResponseDescription != "" {
		extras["response_code"] = transaction.ResponseCode
		extras["response_description"] = transaction.ResponseDescription
	}
	if transaction.ErrorCode != "" || transaction.ErrorMessage != "" {
		extras["error_code"] = transaction.ErrorCode
		extras["error_message"] = transaction.ErrorMessage
	}

	return &commonv1.StatusUpdateRequest{
		Id:     transaction.PaymentID,
		State:  commonv1.STATE_ACTIVE,
		Status: status,
		Extras: extras,
	}
}

func newCallbackResult(operation string, result models.Result) *models.CallbackResult {
	callback := &models.CallbackResult{
		Operation:                operation,
		ConversationID:           result.ConversationID,
		OriginatorConversationID: result.OriginatorConversationID,
		TransactionID:            result.TransactionID,
		ResultCode:               int(result.ResultCode),
		ResultDesc:               result.ResultDesc,
		Parameters:               models.ParametersToMap(result.ResultParameters.ResultParameter),
	}
	callback.ID = models.NewID()
	return callback
}

func b2cCallbackResult(result models.Result, extracted results.B2CResult) *models.CallbackResult {
	callback := newCallbackResult(models.OperationB2C, result)
	callback.Receipt = extracted.TransactionReceipt
	if !extracted.Defaulted("TransactionAmount") {
		callback.Amount = utility.AmountFromFloat(extracted.TransactionAmount)
	}
	return callback
}

func businessCallbackResult(operation string, result models.Result, extracted results.BusinessPaymentResult, reference results.BusinessReference) *models.CallbackResult {
	callback := newCallbackResult(operation, result)
	callback.Receipt = result.TransactionID
	callback.Amount = utility.AmountFromText(extracted.Amount)
	for k, v := range models.ParametersToMap(result.ReferenceData.ReferenceItem) {
		callback.Parameters[k] = v
	}
	if reference.BillReferenceNumber != "" {
		callback.Parameters["BillReferenceNumber"] = reference.BillReferenceNumber
	}
	return callback
}

func timeoutCallbackResult(result models.Result, timeout results.BusinessTimeout) *models.CallbackResult {
	callback := newCallbackResult(models.OperationTimeout, result)
	callback.Parameters["BOCompletedTime"] = timeout.BOCompletedTime
	callback.Parameters["QueueTimeoutURL"] = timeout.QueueTimeoutURL
	return callback
}

func c2bCallbackResult(callback models.StkCallback, extracted *results.C2BPaymentResult) *models.CallbackResult {
	record := &models.CallbackResult{
		Operation:                models.OperationC2B,
		ConversationID:           callback.CheckoutRequestID,
		OriginatorConversationID: callback.MerchantRequestID,
		ResultCode:               int(callback.ResultCode),
		ResultDesc:               callback.ResultDesc,
		Parameters:               models.ParametersToMap(callback.CallbackMetadata.Parameters()),
	}
	record.ID = models.NewID()

	if extracted != nil {
		record.Receipt = extracted.MpesaReceiptNumber
		record.TransactionID = extracted.MpesaReceiptNumber
		if !extracted.Defaulted("Amount") {
			record.Amount = utility.AmountFromFloat(extracted.Amount)
		}
	}
	return record
}

// resultStatus reports the final state of a payment once the gateway has processed it.
func resultStatus(paymentID string, callback *models.CallbackResult) *commonv1.StatusUpdateRequest {
	status := commonv1.STATUS_SUCCESSFUL
	if !callback.Succeeded() {
		status = commonv1.STATUS_FAILED
	}

	extras := map[string]string{
		"callback_id":     callback.ID,
		"operation":       callback.Operation,
		"conversation_id": callback.ConversationID,
		"result_code":     strconv.Itoa(callback.ResultCode),
		"result_desc":     callback.ResultDesc,
	}
	if callback.Receipt != "" {
		extras["receipt"] = callback.Receipt
	}
	if callback.Amount.Valid {
		extras["amount"] = callback.Amount.Decimal.String()
	}

	return &commonv1.StatusUpdateRequest{
		Id:     paymentID,
		State:  commonv1.STATE_ACTIVE,
		Status: status,
		Extras: extras,
	}
}
