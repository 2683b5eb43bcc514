package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/seemaakh/bitefinder/domain"
)

const (
	KeyStudent = "student:%d"

	// Display identities change rarely, a short TTL keeps edits visible.
	studentTTL = 10 * time.Minute
)

type studentCache struct {
	client *redis.Client
}

var _ domain.StudentCache = (*studentCache)(nil)

func NewStudentCache(client *redis.Client) *studentCache {
	return &studentCache{
		client,
	}
}

func (c *studentCache) Get(ctx context.Context, id int64) (res domain.Student, err error) {
	key := fmt.Sprintf(KeyStudent, id)
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Student{}, domain.ErrCacheMiss
	} else if err != nil {
		return domain.Student{}, err
	}
	if err = json.Unmarshal(data, &res); err != nil {
		return domain.Student{}, err
	}
	return
}

func (c *studentCache) GetByIDs(ctx context.Context, ids []int64) (res []domain.Student, err error) {
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = fmt.Sprintf(KeyStudent, id)
	}

	jsonList, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	res = make([]domain.Student, 0, len(ids))
	for _, val := range jsonList {
		str, ok := val.(string)
		if !ok {
			continue
		}
		var s domain.Student
		if err := json.Unmarshal([]byte(str), &s); err != nil {
			continue
		}
		res = append(res, s)
	}
	return res, nil
}

func (c *studentCache) Set(ctx context.Context, s *domain.Student) error {
	// Never cache the password hash.
	cached := *s
	cached.Password = ""

	data, err := json.Marshal(&cached)
	if err != nil {
		return err
	}
	key := fmt.Sprintf(KeyStudent, s.ID)
	return c.client.Set(ctx, key, data, studentTTL).Err()
}

func (c *studentCache) Delete(ctx context.Context, id int64) error {
	key := fmt.Sprintf(KeyStudent, id)
	return c.client.Del(ctx, key).Err()
}
