package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/antinvestor/service-mpesa/service/coreapi"
	"github.com/antinvestor/service-mpesa/service/models"
	"github.com/antinvestor/service-mpesa/service/repository"
	"github.com/pitabwire/util"
)

// eventSink queues follow up events; *frame.Service satisfies it.
type eventSink interface {
	Emit(ctx context.Context, name string, payload any) error
}

// dispatcher sends a queued job to the gateway at most once per payment and operation.
// Once a request has left the process, failures to persist or report it are logged
// and never returned, since a returned error makes the queue redeliver the job.
type dispatcher struct {
	sink         eventSink
	transactions repository.TransactionRepository
	paymentCli   PaymentStatusClient
}

func (d dispatcher) dispatch(ctx context.Context, paymentID, operation string, submit func() (*models.Transaction, error)) error {
	logger := util.Log(ctx).WithField("paymentId", paymentID).WithField("operation", operation)

	if paymentID != "" {
		previous, err := d.previousSubmission(ctx, paymentID, operation)
		if err != nil {
			return fmt.Errorf("look up previous submission: %w", err)
		}
		if previous != nil {
			logger.WithField("transactionId", previous.ID).Info("job already submitted, reporting the recorded acknowledgement")
			return reportStatus(ctx, d.paymentCli, acknowledgementStatus(previous))
		}
	}

	transaction, err := submit()
	if transaction == nil {
		return err
	}
	logger = logger.WithField("transactionId", transaction.ID)
	if err != nil {
		logger.WithError(err).Error("gateway request failed")
	}
	logger.WithField("accepted", transaction.Accepted()).Info("job submitted")

	if err = d.sink.Emit(ctx, TransactionSaveEventName, transaction); err != nil {
		logger.WithError(err).Error("could not queue transaction save")
	}
	if err = reportStatus(ctx, d.paymentCli, acknowledgementStatus(transaction)); err != nil {
		logger.WithError(err).Error("could not report acknowledgement")
	}
	return nil
}

func (d dispatcher) previousSubmission(ctx context.Context, paymentID, operation string) (*models.Transaction, error) {
	transactions, err := d.transactions.GetByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	for i := range transactions {
		if transactions[i].Operation == operation {
			return &transactions[i], nil
		}
	}
	return nil, nil
}

// requestFailed records a request that got no usable response. A request that
// could not even be encoded never left the process and yields no record.
func requestFailed(transaction *models.Transaction, err error) (*models.Transaction, error) {
	if errors.Is(err, coreapi.ErrValidation) {
		return nil, err
	}
	transaction.ErrorMessage = err.Error()
	return transaction, err
}

// settlement records a gateway result and reports it. A result already recorded
// for the same conversation and operation is reported again, never reprocessed.
type settlement struct {
	sink       eventSink
	callbacks  repository.CallbackResultRepository
	paymentCli PaymentStatusClient
}

// settle runs receive, when given, before anything is recorded. After it has
// succeeded no error is returned.
func (s settlement) settle(ctx context.Context, record *models.CallbackResult, receive func(*models.CallbackResult) error) error {
	logger := util.Log(ctx).
		WithField("conversationId", record.ConversationID).
		WithField("operation", record.Operation)

	previous, err := s.previousResult(ctx, record)
	if err != nil {
		return fmt.Errorf("look up previous result: %w", err)
	}
	if previous != nil {
		logger.WithField("callbackId", previous.ID).Info("result already handled, reporting the recorded outcome")
		return reportStatus(ctx, s.paymentCli, resultStatus(previous.PaymentID, previous))
	}

	if receive == nil {
		if err = reportStatus(ctx, s.paymentCli, resultStatus(record.PaymentID, record)); err != nil {
			return err
		}
		if err = s.sink.Emit(ctx, CallbackSaveEventName, record); err != nil {
			return fmt.Errorf("queue callback save: %w", err)
		}
		return nil
	}

	if err = receive(record); err != nil {
		return err
	}
	if err = reportStatus(ctx, s.paymentCli, resultStatus(record.PaymentID, record)); err != nil {
		logger.WithError(err).Error("could not report result")
	}
	if err = s.sink.Emit(ctx, CallbackSaveEventName, record); err != nil {
		logger.WithError(err).Error("could not queue callback save")
	}
	return nil
}

func (s settlement) previousResult(ctx context.Context, record *models.CallbackResult) (*models.CallbackResult, error) {
	if record.ConversationID == "" {
		return nil, nil
	}
	results, err := s.callbacks.GetByConversationID(ctx, record.ConversationID)
	if err != nil {
		return nil, err
	}
	for i := range results {
		if results[i].Operation == record.Operation {
			return &results[i], nil
		}
	}
	return nil, nil
}
