package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	commonv1 "github.com/antinvestor/apis/go/common/v1"
	paymentV1 "github.com/antinvestor/apis/go/payment/v1"
	"google.golang.org/grpc"
)

const (
	RegisterURLEventName      = "mpesa.url.register"
	DisburseEventName         = "mpesa.b2c.disburse"
	CollectEventName          = "mpesa.c2b.collect"
	PayBillEventName          = "mpesa.b2b.paybill"
	BuyGoodsEventName         = "mpesa.b2b.buygoods"
	TransactionSaveEventName  = "mpesa.transaction.save"
	CallbackSaveEventName     = "mpesa.callback.save"
	B2CResultEventName        = "mpesa.b2c.result"
	B2BResultEventName        = "mpesa.b2b.result"
	C2BCallbackEventName      = "mpesa.c2b.callback"
	paymentRoute              = "mpesa"
	errInvalidPayloadTemplate = "invalid payload type, expected %s"
)

var errPaymentClientMissing = errors.New("payment client not initialized")

// PaymentStatusClient is the part of the payment service this integration reports to.
type PaymentStatusClient interface {
	StatusUpdate(ctx context.Context, in *commonv1.StatusUpdateRequest, opts ...grpc.CallOption) (*commonv1.StatusUpdateResponse, error)
	Receive(ctx context.Context, in *paymentV1.ReceiveRequest, opts ...grpc.CallOption) (*paymentV1.ReceiveResponse, error)
}

type handledEvent interface {
	Name() string
	PayloadType() any
	Validate(ctx context.Context, payload any) error
	Execute(ctx context.Context, payload any) error
}

// QueueHandler runs an event for every message delivered on a queue subscription.
type QueueHandler struct {
	Event handledEvent
}

func (h *QueueHandler) Handle(ctx context.Context, _ map[string]string, message []byte) error {
	payload := h.Event.PayloadType()
	if err := json.Unmarshal(message, payload); err != nil {
		return fmt.Errorf("%s: decode message: %w", h.Event.Name(), err)
	}
	if err := h.Event.Validate(ctx, payload); err != nil {
		return fmt.Errorf("%s: %w", h.Event.Name(), err)
	}
	return h.Event.Execute(ctx, payload)
}

func invalidPayload(expected string) error {
	return fmt.Errorf(errInvalidPayloadTemplate, expected)
}

// reportStatus is a no-op for records that are not tied to a payment.
func reportStatus(ctx context.Context, cli PaymentStatusClient, req *commonv1.StatusUpdateRequest) error {
	if req == nil || req.GetId() == "" {
		return nil
	}
	if cli == nil {
		return errPaymentClientMissing
	}
	_, err := cli.StatusUpdate(ctx, req)
	return err
}
