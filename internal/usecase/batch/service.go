package batch

import (
	"context"
	"errors"
	"strings"

	"github.com/seemaakh/bitefinder/domain"
)

type Service struct {
	batchRepo domain.BatchRepository
}

var _ domain.BatchUsecase = (*Service)(nil)

func NewService(batchRepo domain.BatchRepository) *Service {
	return &Service{
		batchRepo: batchRepo,
	}
}

func (s *Service) Create(ctx context.Context, b *domain.Batch) error {
	b.Name = strings.TrimSpace(b.Name)
	if len(b.Name) < 2 || len(b.Name) > 50 {
		return domain.ErrBadParamInput
	}

	if _, err := s.batchRepo.GetByName(ctx, b.Name); err == nil {
		return domain.ErrConflict
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	if b.Status == "" {
		b.Status = domain.BatchStatusActive
	}
	return s.batchRepo.Store(ctx, b)
}

func (s *Service) GetByID(ctx context.Context, id int64) (domain.Batch, error) {
	return s.batchRepo.GetByID(ctx, id)
}

func (s *Service) Fetch(ctx context.Context) ([]domain.Batch, error) {
	return s.batchRepo.Fetch(ctx)
}

func (s *Service) Update(ctx context.Context, b *domain.Batch) error {
	b.Name = strings.TrimSpace(b.Name)
	if len(b.Name) < 2 || len(b.Name) > 50 {
		return domain.ErrBadParamInput
	}
	return s.batchRepo.Update(ctx, b)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.batchRepo.Delete(ctx, id)
}
