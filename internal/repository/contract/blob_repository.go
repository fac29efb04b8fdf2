package contract

import (
	"context"
	"errors"
)

// Keys of the three persisted values.
const (
	BlobKeyContentRecords = "campusFiles"
	BlobKeyAccounts       = "campusUsers"
	BlobKeyActiveSession  = "currentUser"
)

var ErrBlobNotFound = errors.New("blob not found")

// BlobRepository is the durable key-value store behind the library. Get
// returns ErrBlobNotFound for a missing key.
type BlobRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
