package repository

import (
	"context"

	"github.com/antinvestor/service-mpesa/service/models"
	"github.com/pitabwire/frame"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	GetByConversationID(ctx context.Context, conversationID string) (*models.Transaction, error)
	GetByPaymentID(ctx context.Context, paymentID string) ([]models.Transaction, error)
	Save(ctx context.Context, transaction *models.Transaction) error
}

type transactionRepository struct {
	abstractRepository
}

func NewTransactionRepository(service *frame.Service) TransactionRepository {
	return &transactionRepository{newAbstractRepository(service)}
}

func NewTransactionRepositoryFromDB(db *gorm.DB) TransactionRepository {
	return &transactionRepository{newAbstractRepositoryFromDB(db)}
}

// GetByConversationID returns the latest acknowledgement carrying conversationID.
func (repo *transactionRepository) GetByConversationID(ctx context.Context, conversationID string) (*models.Transaction, error) {
	transaction := models.Transaction{}
	err := repo.readDb(ctx).
		Where("conversation_id = ? OR originator_id = ?", conversationID, conversationID).
		Order("created_at DESC").
		First(&transaction).Error
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

// GetByPaymentID lists the acknowledgements recorded for a payment, oldest first.
func (repo *transactionRepository) GetByPaymentID(ctx context.Context, paymentID string) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := repo.readDb(ctx).Order("created_at").Find(&transactions, "payment_id = ?", paymentID).Error
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

func (repo *transactionRepository) Save(ctx context.Context, transaction *models.Transaction) error {
	return repo.upsert(ctx, transaction)
}
