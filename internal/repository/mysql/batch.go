package mysql

import (
	"context"
	"errors"

	"github.com/seemaakh/bitefinder/domain"
	"github.com/seemaakh/bitefinder/internal/repository/mysql/model"
	"gorm.io/gorm"
)

type batchRepository struct {
	DB *gorm.DB
}

var _ domain.BatchRepository = (*batchRepository)(nil)

func NewBatchRepository(db *gorm.DB) *batchRepository {
	return &batchRepository{
		DB: db,
	}
}

func (r *batchRepository) GetByID(ctx context.Context, id int64) (domain.Batch, error) {
	var batch model.Batch
	err := r.DB.WithContext(ctx).First(&batch, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Batch{}, domain.ErrNotFound
	} else if err != nil {
		return domain.Batch{}, err
	}
	return batch.ToDomain(), nil
}

func (r *batchRepository) GetByName(ctx context.Context, name string) (domain.Batch, error) {
	var batch model.Batch
	err := r.DB.WithContext(ctx).First(&batch, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Batch{}, domain.ErrNotFound
	} else if err != nil {
		return domain.Batch{}, err
	}
	return batch.ToDomain(), nil
}

func (r *batchRepository) Fetch(ctx context.Context) ([]domain.Batch, error) {
	var batches []model.Batch
	err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&batches).Error
	if err != nil {
		return nil, err
	}
	res := make([]domain.Batch, len(batches))
	for i := range batches {
		res[i] = batches[i].ToDomain()
	}
	return res, nil
}

func (r *batchRepository) Store(ctx context.Context, b *domain.Batch) error {
	batchModel := model.NewBatchFromDomain(b)
	if err := r.DB.WithContext(ctx).Create(batchModel).Error; err != nil {
		return err
	}
	b.ID = batchModel.ID
	b.CreatedAt = batchModel.CreatedAt
	return nil
}

func (r *batchRepository) Update(ctx context.Context, b *domain.Batch) error {
	result := r.DB.WithContext(ctx).Model(&model.Batch{}).
		Where("id = ?", b.ID).
		Updates(map[string]any{
			"name":   b.Name,
			"status": b.Status,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *batchRepository) Delete(ctx context.Context, id int64) error {
	result := r.DB.WithContext(ctx).Delete(&model.Batch{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
