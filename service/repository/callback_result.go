package repository

import (
	"context"

	"github.com/antinvestor/service-mpesa/service/models"
	"github.com/pitabwire/frame"
	"gorm.io/gorm"
)

type CallbackResultRepository interface {
	GetByConversationID(ctx context.Context, conversationID string) ([]models.CallbackResult, error)
	Save(ctx context.Context, result *models.CallbackResult) error
}

type callbackResultRepository struct {
	abstractRepository
}

func NewCallbackResultRepository(service *frame.Service) CallbackResultRepository {
	return &callbackResultRepository{newAbstractRepository(service)}
}

func NewCallbackResultRepositoryFromDB(db *gorm.DB) CallbackResultRepository {
	return &callbackResultRepository{newAbstractRepositoryFromDB(db)}
}

func (repo *callbackResultRepository) GetByConversationID(ctx context.Context, conversationID string) ([]models.CallbackResult, error) {
	var results []models.CallbackResult
	err := repo.readDb(ctx).Order("created_at").Find(&results, "conversation_id = ?", conversationID).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (repo *callbackResultRepository) Save(ctx context.Context, result *models.CallbackResult) error {
	return repo.upsert(ctx, result)
}
