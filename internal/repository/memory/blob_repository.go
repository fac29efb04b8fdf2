package memory

import (
	"context"

	"campus-share-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// BlobRepository is a process-local blob store for development and tests.
// Values never expire.
type BlobRepository struct {
	cache *cache.Cache
}

var _ contract.BlobRepository = (*BlobRepository)(nil)

func NewBlobRepository() *BlobRepository {
	return &BlobRepository{cache: cache.New(cache.NoExpiration, 0)}
}

func (r *BlobRepository) Get(ctx context.Context, key string) ([]byte, error) {
	x, found := r.cache.Get(key)
	if !found {
		return nil, contract.ErrBlobNotFound
	}
	value := x.([]byte)
	return append([]byte(nil), value...), nil
}

func (r *BlobRepository) Put(ctx context.Context, key string, value []byte) error {
	r.cache.Set(key, append([]byte(nil), value...), cache.NoExpiration)
	return nil
}

func (r *BlobRepository) Delete(ctx context.Context, key string) error {
	r.cache.Delete(key)
	return nil
}
