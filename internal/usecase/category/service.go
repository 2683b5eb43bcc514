package category

import (
	"context"
	"errors"
	"strings"

	"github.com/seemaakh/bitefinder/domain"
)

type Service struct {
	categoryRepo domain.CategoryRepository
}

var _ domain.CategoryUsecase = (*Service)(nil)

func NewService(categoryRepo domain.CategoryRepository) *Service {
	return &Service{
		categoryRepo: categoryRepo,
	}
}

func (s *Service) Create(ctx context.Context, c *domain.Category) error {
	c.Name = strings.TrimSpace(c.Name)
	if len(c.Name) < 2 || len(c.Name) > 50 {
		return domain.ErrBadParamInput
	}

	if _, err := s.categoryRepo.GetByName(ctx, c.Name); err == nil {
		return domain.ErrConflict
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	if c.Status == "" {
		c.Status = domain.CategoryStatusActive
	}
	return s.categoryRepo.Store(ctx, c)
}

func (s *Service) GetByID(ctx context.Context, id int64) (domain.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

func (s *Service) Fetch(ctx context.Context) ([]domain.Category, error) {
	return s.categoryRepo.Fetch(ctx)
}

func (s *Service) Update(ctx context.Context, c *domain.Category) error {
	c.Name = strings.TrimSpace(c.Name)
	if len(c.Name) < 2 || len(c.Name) > 50 {
		return domain.ErrBadParamInput
	}
	return s.categoryRepo.Update(ctx, c)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.categoryRepo.Delete(ctx, id)
}
