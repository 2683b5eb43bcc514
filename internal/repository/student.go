package repository

import (
	"context"
	"fmt"

	"github.com/seemaakh/bitefinder/domain"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// studentRepository 协调层，协调缓存和数据库
// Display-identity reads go through the cache; credential lookups
// (email, username) always hit the database since the cached copy
// strips the password hash.
type studentRepository struct {
	db    domain.StudentRepository
	cache domain.StudentCache
	group singleflight.Group
}

var _ domain.StudentRepository = (*studentRepository)(nil)

// NewStudentRepository 创建协调层repository
func NewStudentRepository(db domain.StudentRepository, cache domain.StudentCache) *studentRepository {
	return &studentRepository{
		db:    db,
		cache: cache,
	}
}

func (r *studentRepository) GetByID(ctx context.Context, id int64) (domain.Student, error) {
	student, err := r.cache.Get(ctx, id)
	if err == nil {
		return student, nil
	}
	if err != domain.ErrCacheMiss {
		logrus.Warnf("student cache get error: %v", err)
	}

	key := fmt.Sprintf("student:%d", id)
	result, err, _ := r.group.Do(key, func() (any, error) {
		s, err := r.db.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := r.cache.Set(ctx, &s); err != nil {
			logrus.Warnf("failed to set student cache: %v", err)
		}
		return s, nil
	})
	if err != nil {
		return domain.Student{}, err
	}
	return result.(domain.Student), nil
}

func (r *studentRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Student, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cached, err := r.cache.GetByIDs(ctx, ids)
	if err != nil {
		logrus.Warnf("student cache mget error: %v", err)
		cached = nil
	}

	found := make(map[int64]bool, len(cached))
	for _, s := range cached {
		found[s.ID] = true
	}

	missed := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !found[id] {
			missed = append(missed, id)
		}
	}
	if len(missed) == 0 {
		return cached, nil
	}

	fromDB, err := r.db.GetByIDs(ctx, missed)
	if err != nil {
		return nil, err
	}
	for i := range fromDB {
		if err := r.cache.Set(ctx, &fromDB[i]); err != nil {
			logrus.Warnf("failed to set student cache: %v", err)
		}
	}

	return append(cached, fromDB...), nil
}

func (r *studentRepository) GetByEmail(ctx context.Context, email string) (domain.Student, error) {
	return r.db.GetByEmail(ctx, email)
}

func (r *studentRepository) GetByUsername(ctx context.Context, username string) (domain.Student, error) {
	return r.db.GetByUsername(ctx, username)
}

func (r *studentRepository) GetByUsernames(ctx context.Context, usernames []string) ([]domain.Student, error) {
	return r.db.GetByUsernames(ctx, usernames)
}

func (r *studentRepository) Insert(ctx context.Context, s *domain.Student) error {
	return r.db.Insert(ctx, s)
}

func (r *studentRepository) Update(ctx context.Context, s *domain.Student) error {
	if err := r.db.Update(ctx, s); err != nil {
		return err
	}
	if err := r.cache.Delete(ctx, s.ID); err != nil {
		logrus.Warnf("failed to invalidate student cache: %v", err)
	}
	return nil
}

func (r *studentRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.Delete(ctx, id); err != nil {
		return err
	}
	if err := r.cache.Delete(ctx, id); err != nil {
		logrus.Warnf("failed to invalidate student cache: %v", err)
	}
	return nil
}

func (r *studentRepository) Fetch(ctx context.Context) ([]domain.Student, error) {
	return r.db.Fetch(ctx)
}
