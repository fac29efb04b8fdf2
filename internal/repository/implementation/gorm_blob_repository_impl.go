package implementation

import (
	"context"
	"errors"

	"campus-share-be/internal/model"
	"campus-share-be/internal/repository/contract"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormBlobRepositoryImpl struct {
	db *gorm.DB
}

func NewGormBlobRepository(db *gorm.DB) contract.BlobRepository {
	return &GormBlobRepositoryImpl{db: db}
}

func (r *GormBlobRepositoryImpl) Get(ctx context.Context, key string) ([]byte, error) {
	var m model.Blob
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, contract.ErrBlobNotFound
		}
		return nil, err
	}
	return []byte(m.Value), nil
}

// Put upserts on the primary key.
func (r *GormBlobRepositoryImpl) Put(ctx context.Context, key string, value []byte) error {
	m := model.Blob{Key: key, Value: datatypes.JSON(value)}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&m).Error
}

func (r *GormBlobRepositoryImpl) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("key = ?", key).Delete(&model.Blob{}).Error
}
