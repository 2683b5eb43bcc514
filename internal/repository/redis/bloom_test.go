package redis

import (
	"context"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBitSize = uint64(1 << 20)

func TestBloomAddAndExists(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewRedisBloomRepo(client, testBitSize)
	offsets := repo.getOffset(42)

	for _, off := range offsets {
		mock.ExpectSetBit(KeyItemBloom, int64(off), 1).SetVal(0)
	}
	require.NoError(t, repo.Add(context.Background(), 42))

	for _, off := range offsets {
		mock.ExpectGetBit(KeyItemBloom, int64(off)).SetVal(1)
	}
	exists, err := repo.Exists(context.Background(), 42)
	require.NoError(t, err)
	assert.True(t, exists)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBloomExistsNegative(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewRedisBloomRepo(client, testBitSize)
	offsets := repo.getOffset(99)

	// One clear bit is enough for a definitive no.
	mock.ExpectGetBit(KeyItemBloom, int64(offsets[0])).SetVal(1)
	mock.ExpectGetBit(KeyItemBloom, int64(offsets[1])).SetVal(0)
	mock.ExpectGetBit(KeyItemBloom, int64(offsets[2])).SetVal(0)

	exists, err := repo.Exists(context.Background(), 99)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGetOffsetStableAndBounded(t *testing.T) {
	repo := NewRedisBloomRepo(nil, testBitSize)

	a := repo.getOffset(7)
	b := repo.getOffset(7)
	assert.Equal(t, a, b)

	for _, off := range a {
		assert.Less(t, off, testBitSize)
	}
}
