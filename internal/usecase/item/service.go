package item

import (
	"context"
	"strings"
	"time"

	"github.com/seemaakh/bitefinder/domain"
	"github.com/sirupsen/logrus"
)

const bloomSeedBatch = 1000

type Service struct {
	itemRepo     domain.ItemRepository
	categoryRepo domain.CategoryRepository
	commentRepo  domain.CommentRepository
	bloomRepo    domain.BloomRepository
}

var _ domain.ItemUsecase = (*Service)(nil)

func NewService(itemRepo domain.ItemRepository, categoryRepo domain.CategoryRepository, commentRepo domain.CommentRepository, bloomRepo domain.BloomRepository) *Service {
	return &Service{
		itemRepo:     itemRepo,
		categoryRepo: categoryRepo,
		commentRepo:  commentRepo,
		bloomRepo:    bloomRepo,
	}
}

func (s *Service) Create(ctx context.Context, it *domain.Item) error {
	it.Name = strings.TrimSpace(it.Name)
	it.Description = strings.TrimSpace(it.Description)
	it.Location = strings.TrimSpace(it.Location)
	if it.Name == "" || it.Description == "" || it.Location == "" || it.Media == "" {
		return domain.ErrBadParamInput
	}
	if it.Type != domain.ItemTypeLost && it.Type != domain.ItemTypeFound {
		return domain.ErrBadParamInput
	}

	if _, err := s.categoryRepo.GetByID(ctx, it.CategoryID); err != nil {
		return err
	}

	if it.MediaType == "" {
		it.MediaType = domain.MediaTypePhoto
	}
	it.Status = domain.ItemStatusAvailable

	if err := s.itemRepo.Store(ctx, it); err != nil {
		return err
	}

	if err := s.bloomRepo.Add(ctx, it.ID); err != nil {
		logrus.Warnf("failed to add item %d to bloom filter: %v", it.ID, err)
	}
	return nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (domain.Item, error) {
	return s.itemRepo.GetByID(ctx, id)
}

func (s *Service) Fetch(ctx context.Context, filter domain.ItemFilter, page, limit int64) (*domain.ItemPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	total, err := s.itemRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	items, err := s.itemRepo.Fetch(ctx, filter, offset, limit)
	if err != nil {
		return nil, err
	}

	return &domain.ItemPage{
		Items: items,
		Total: total,
		Page:  page,
		Pages: (total + limit - 1) / limit,
	}, nil
}

func (s *Service) Claim(ctx context.Context, itemID, studentID int64) (domain.Item, error) {
	it, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return domain.Item{}, err
	}
	if it.IsClaimed {
		return domain.Item{}, domain.ErrConflict
	}

	it.ClaimerID = studentID
	it.IsClaimed = true
	it.Status = domain.ItemStatusClaimed
	it.UpdatedAt = time.Now()

	if err := s.itemRepo.Update(ctx, &it); err != nil {
		return domain.Item{}, err
	}
	return it, nil
}

func (s *Service) Update(ctx context.Context, it *domain.Item, requesterID int64) error {
	current, err := s.itemRepo.GetByID(ctx, it.ID)
	if err != nil {
		return err
	}
	if current.ReporterID != requesterID {
		return domain.ErrForbidden
	}
	it.ReporterID = current.ReporterID
	return s.itemRepo.Update(ctx, it)
}

func (s *Service) Delete(ctx context.Context, id int64, requesterID int64) error {
	current, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.ReporterID != requesterID {
		return domain.ErrForbidden
	}

	if err := s.itemRepo.Delete(ctx, id); err != nil {
		return err
	}

	// The discussion thread goes with the item.
	if err := s.commentRepo.DeleteByItem(ctx, id); err != nil {
		logrus.Errorf("failed to delete comments of item %d: %v", id, err)
	}
	return nil
}

func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	return s.itemRepo.Exists(ctx, id)
}

func (s *Service) InitBloomFilter(ctx context.Context) error {
	var cursor int64
	for {
		ids, err := s.itemRepo.FetchIDs(ctx, cursor, bloomSeedBatch)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := s.bloomRepo.BulkAdd(ctx, ids); err != nil {
			return err
		}
		cursor = ids[len(ids)-1]
	}
}
