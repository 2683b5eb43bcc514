package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seemaakh/bitefinder/domain"
)

type countingDBRepo struct {
	students map[int64]domain.Student
	getCalls int
}

func (r *countingDBRepo) GetByID(_ context.Context, id int64) (domain.Student, error) {
	r.getCalls++
	s, ok := r.students[id]
	if !ok {
		return domain.Student{}, domain.ErrNotFound
	}
	return s, nil
}

func (r *countingDBRepo) GetByIDs(_ context.Context, ids []int64) ([]domain.Student, error) {
	r.getCalls++
	var out []domain.Student
	for _, id := range ids {
		if s, ok := r.students[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *countingDBRepo) GetByEmail(_ context.Context, _ string) (domain.Student, error) {
	return domain.Student{}, domain.ErrNotFound
}

func (r *countingDBRepo) GetByUsername(_ context.Context, _ string) (domain.Student, error) {
	return domain.Student{}, domain.ErrNotFound
}

func (r *countingDBRepo) GetByUsernames(_ context.Context, _ []string) ([]domain.Student, error) {
	return nil, nil
}

func (r *countingDBRepo) Insert(_ context.Context, s *domain.Student) error {
	r.students[s.ID] = *s
	return nil
}

func (r *countingDBRepo) Update(_ context.Context, s *domain.Student) error {
	r.students[s.ID] = *s
	return nil
}

func (r *countingDBRepo) Delete(_ context.Context, id int64) error {
	delete(r.students, id)
	return nil
}

func (r *countingDBRepo) Fetch(_ context.Context) ([]domain.Student, error) {
	return nil, nil
}

type mapCache struct {
	students map[int64]domain.Student
	deletes  []int64
}

func newMapCache() *mapCache {
	return &mapCache{students: make(map[int64]domain.Student)}
}

func (c *mapCache) Get(_ context.Context, id int64) (domain.Student, error) {
	s, ok := c.students[id]
	if !ok {
		return domain.Student{}, domain.ErrCacheMiss
	}
	return s, nil
}

func (c *mapCache) GetByIDs(_ context.Context, ids []int64) ([]domain.Student, error) {
	var out []domain.Student
	for _, id := range ids {
		if s, ok := c.students[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (c *mapCache) Set(_ context.Context, s *domain.Student) error {
	c.students[s.ID] = *s
	return nil
}

func (c *mapCache) Delete(_ context.Context, id int64) error {
	c.deletes = append(c.deletes, id)
	delete(c.students, id)
	return nil
}

func TestStudentRepositoryGetByID(t *testing.T) {
	ctx := context.Background()
	db := &countingDBRepo{students: map[int64]domain.Student{
		1: {ID: 1, Username: "alice"},
	}}
	cache := newMapCache()
	repo := NewStudentRepository(db, cache)

	// First read misses the cache and fills it.
	s, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "alice", s.Username)
	assert.Equal(t, 1, db.getCalls)

	// Second read is served from the cache.
	_, err = repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, db.getCalls)

	_, err = repo.GetByID(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStudentRepositoryGetByIDs(t *testing.T) {
	ctx := context.Background()
	db := &countingDBRepo{students: map[int64]domain.Student{
		1: {ID: 1, Username: "alice"},
		2: {ID: 2, Username: "bob"},
	}}
	cache := newMapCache()
	require.NoError(t, cache.Set(ctx, &domain.Student{ID: 1, Username: "alice"}))

	repo := NewStudentRepository(db, cache)

	students, err := repo.GetByIDs(ctx, []int64{1, 2})
	require.NoError(t, err)
	assert.Len(t, students, 2)

	// The db miss got cached, so the next read needs no db round trip.
	calls := db.getCalls
	students, err = repo.GetByIDs(ctx, []int64{1, 2})
	require.NoError(t, err)
	assert.Len(t, students, 2)
	assert.Equal(t, calls, db.getCalls)
}

func TestStudentRepositoryUpdateInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	db := &countingDBRepo{students: map[int64]domain.Student{
		1: {ID: 1, Username: "alice"},
	}}
	cache := newMapCache()
	require.NoError(t, cache.Set(ctx, &domain.Student{ID: 1, Username: "alice"}))

	repo := NewStudentRepository(db, cache)

	require.NoError(t, repo.Update(ctx, &domain.Student{ID: 1, Username: "alice2"}))
	assert.Equal(t, []int64{1}, cache.deletes)

	require.NoError(t, repo.Delete(ctx, 1))
	assert.Equal(t, []int64{1, 1}, cache.deletes)
}
