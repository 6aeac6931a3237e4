package repository

import (
	"context"

	"github.com/pitabwire/frame"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type dbProvider func(ctx context.Context, readOnly bool) *gorm.DB

type abstractRepository struct {
	db dbProvider
}

func newAbstractRepository(service *frame.Service) abstractRepository {
	return abstractRepository{db: service.DB}
}

func newAbstractRepositoryFromDB(db *gorm.DB) abstractRepository {
	return abstractRepository{db: func(ctx context.Context, _ bool) *gorm.DB {
		return db.WithContext(ctx)
	}}
}

func (ar *abstractRepository) readDb(ctx context.Context) *gorm.DB {
	return ar.db(ctx, true)
}

func (ar *abstractRepository) writeDb(ctx context.Context) *gorm.DB {
	return ar.db(ctx, false)
}

// upsert inserts record or overwrites the row holding the same id.
func (ar *abstractRepository) upsert(ctx context.Context, record any) error {
	return ar.writeDb(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(record).Error
}
