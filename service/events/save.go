package events

import (
	"context"
	"errors"

	"github.com/antinvestor/service-mpesa/service/models"
	"github.com/antinvestor/service-mpesa/service/repository"
	"github.com/pitabwire/frame"
)

type TransactionSave struct {
	Service    *frame.Service
	Repository repository.TransactionRepository
}

func (e *TransactionSave) Name() string {
	return TransactionSaveEventName
}

func (e *TransactionSave) PayloadType() any {
	return &models.Transaction{}
}

func (e *TransactionSave) Validate(_ context.Context, payload any) error {
	transaction, ok := payload.(*models.Transaction)
	if !ok {
		return invalidPayload("models.Transaction")
	}
	if transaction.GetID() == "" {
		return errors.New("transaction id should already have been set")
	}
	return nil
}

func (e *TransactionSave) Execute(ctx context.Context, payload any) error {
	transaction := payload.(*models.Transaction)

	logger := e.Service.Log(ctx).WithField("transactionId", transaction.ID).WithField("type", e.Name())
	logger.Debug("handling event")

	if err := e.Repository.Save(ctx, transaction); err != nil {
		logger.WithError(err).Warn("could not save transaction to db")
		return err
	}
	logger.Debug("successfully saved record to db")
	return nil
}

type CallbackResultSave struct {
	Service    *frame.Service
	Repository repository.CallbackResultRepository
}

func (e *CallbackResultSave) Name() string {
	return CallbackSaveEventName
}

func (e *CallbackResultSave) PayloadType() any {
	return &models.CallbackResult{}
}

func (e *CallbackResultSave) Validate(_ context.Context, payload any) error {
	result, ok := payload.(*models.CallbackResult)
	if !ok {
		return invalidPayload("models.CallbackResult")
	}
	if result.GetID() == "" {
		return errors.New("callback result id should already have been set")
	}
	return nil
}

func (e *CallbackResultSave) Execute(ctx context.Context, payload any) error {
	result := payload.(*models.CallbackResult)

	logger := e.Service.Log(ctx).WithField("callbackId", result.ID).WithField("type", e.Name())
	logger.Debug("handling event")

	if err := e.Repository.Save(ctx, result); err != nil {
		logger.WithError(err).Warn("could not save callback result to db")
		return err
	}
	logger.Debug("successfully saved record to db")
	return nil
}
