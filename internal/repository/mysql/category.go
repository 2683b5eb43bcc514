package mysql

import (
	"context"
	"errors"

	"github.com/seemaakh/bitefinder/domain"
	"github.com/seemaakh/bitefinder/internal/repository/mysql/model"
	"gorm.io/gorm"
)

type categoryRepository struct {
	DB *gorm.DB
}

var _ domain.CategoryRepository = (*categoryRepository)(nil)

func NewCategoryRepository(db *gorm.DB) *categoryRepository {
	return &categoryRepository{
		DB: db,
	}
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (domain.Category, error) {
	var category model.Category
	err := r.DB.WithContext(ctx).First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Category{}, domain.ErrNotFound
	} else if err != nil {
		return domain.Category{}, err
	}
	return category.ToDomain(), nil
}

func (r *categoryRepository) GetByName(ctx context.Context, name string) (domain.Category, error) {
	var category model.Category
	err := r.DB.WithContext(ctx).First(&category, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Category{}, domain.ErrNotFound
	} else if err != nil {
		return domain.Category{}, err
	}
	return category.ToDomain(), nil
}

func (r *categoryRepository) Fetch(ctx context.Context) ([]domain.Category, error) {
	var categories []model.Category
	err := r.DB.WithContext(ctx).Order("name ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	res := make([]domain.Category, len(categories))
	for i := range categories {
		res[i] = categories[i].ToDomain()
	}
	return res, nil
}

func (r *categoryRepository) Store(ctx context.Context, c *domain.Category) error {
	categoryModel := model.NewCategoryFromDomain(c)
	if err := r.DB.WithContext(ctx).Create(categoryModel).Error; err != nil {
		return err
	}
	c.ID = categoryModel.ID
	c.CreatedAt = categoryModel.CreatedAt
	return nil
}

func (r *categoryRepository) Update(ctx context.Context, c *domain.Category) error {
	result := r.DB.WithContext(ctx).Model(&model.Category{}).
		Where("id = ?", c.ID).
		Updates(map[string]any{
			"name":        c.Name,
			"description": c.Description,
			"status":      c.Status,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	result := r.DB.WithContext(ctx).Delete(&model.Category{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
