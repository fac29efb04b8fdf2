package implementation

import (
	"context"
	"errors"

	"campus-share-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

type RedisBlobRepositoryImpl struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisBlobRepository(rdb *redis.Client, prefix string) contract.BlobRepository {
	return &RedisBlobRepositoryImpl{rdb: rdb, prefix: prefix}
}

func (r *RedisBlobRepositoryImpl) key(k string) string {
	return r.prefix + k
}

func (r *RedisBlobRepositoryImpl) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.rdb.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, contract.ErrBlobNotFound
	}
	return val, err
}

func (r *RedisBlobRepositoryImpl) Put(ctx context.Context, key string, value []byte) error {
	return r.rdb.Set(ctx, r.key(key), value, 0).Err()
}

func (r *RedisBlobRepositoryImpl) Delete(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, r.key(key)).Err()
}
