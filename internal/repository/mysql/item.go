package mysql

import (
	"context"
	"errors"

	"github.com/seemaakh/bitefinder/domain"
	"github.com/seemaakh/bitefinder/internal/repository/mysql/model"
	"gorm.io/gorm"
)

type itemRepository struct {
	DB *gorm.DB
}

var _ domain.ItemRepository = (*itemRepository)(nil)

func NewItemRepository(db *gorm.DB) *itemRepository {
	return &itemRepository{
		DB: db,
	}
}

func applyItemFilter(q *gorm.DB, f domain.ItemFilter) *gorm.DB {
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.CategoryID != 0 {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	return q
}

func (r *itemRepository) GetByID(ctx context.Context, id int64) (domain.Item, error) {
	var item model.Item
	err := r.DB.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Item{}, domain.ErrNotFound
	} else if err != nil {
		return domain.Item{}, err
	}
	return item.ToDomain(), nil
}

func (r *itemRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Item{}).
		Where("id = ?", id).
		Count(&n).Error
	return n > 0, err
}

func (r *itemRepository) Store(ctx context.Context, it *domain.Item) error {
	itemModel := model.NewItemFromDomain(it)
	if err := r.DB.WithContext(ctx).Create(itemModel).Error; err != nil {
		return err
	}
	it.ID = itemModel.ID
	it.CreatedAt = itemModel.CreatedAt
	it.UpdatedAt = itemModel.UpdatedAt
	return nil
}

func (r *itemRepository) Update(ctx context.Context, it *domain.Item) error {
	result := r.DB.WithContext(ctx).Model(&model.Item{}).
		Where("id = ?", it.ID).
		Updates(map[string]any{
			"name":        it.Name,
			"description": it.Description,
			"type":        it.Type,
			"category_id": it.CategoryID,
			"location":    it.Location,
			"media":       it.Media,
			"media_type":  it.MediaType,
			"claimer_id":  it.ClaimerID,
			"is_claimed":  it.IsClaimed,
			"status":      it.Status,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *itemRepository) Delete(ctx context.Context, id int64) error {
	result := r.DB.WithContext(ctx).Delete(&model.Item{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *itemRepository) Fetch(ctx context.Context, filter domain.ItemFilter, offset, limit int64) ([]domain.Item, error) {
	var items []model.Item
	err := applyItemFilter(r.DB.WithContext(ctx).Model(&model.Item{}), filter).
		Order("created_at DESC, id DESC").
		Offset(int(offset)).
		Limit(int(limit)).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	res := make([]domain.Item, len(items))
	for i := range items {
		res[i] = items[i].ToDomain()
	}
	return res, nil
}

func (r *itemRepository) Count(ctx context.Context, filter domain.ItemFilter) (int64, error) {
	var total int64
	err := applyItemFilter(r.DB.WithContext(ctx).Model(&model.Item{}), filter).
		Count(&total).Error
	return total, err
}

func (r *itemRepository) FetchIDs(ctx context.Context, cursor, limit int64) ([]int64, error) {
	var ids []int64
	err := r.DB.WithContext(ctx).Model(&model.Item{}).
		Where("id > ?", cursor).
		Order("id ASC").
		Limit(int(limit)).
		Pluck("id", &ids).Error
	return ids, err
}
