package implementation

import (
	"context"
	"log"
	"os"
	"testing"

	"campus-share-be/internal/model"
	"campus-share-be/internal/repository/contract"
	"campus-share-be/pkg/database"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadEnv() {
	if err := godotenv.Load("../../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}
}

// exerciseBlobRepository runs the contract every blob store must satisfy.
func exerciseBlobRepository(t *testing.T, repo contract.BlobRepository) {
	ctx := context.Background()
	key := "integration-test-blob"
	t.Cleanup(func() { _ = repo.Delete(ctx, key) })

	_, err := repo.Get(ctx, key)
	assert.ErrorIs(t, err, contract.ErrBlobNotFound)

	require.NoError(t, repo.Put(ctx, key, []byte(`[{"id":"1"}]`)))
	require.NoError(t, repo.Put(ctx, key, []byte(`[{"id":"2"}]`)))

	got, err := repo.Get(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"2"}]`, string(got))

	require.NoError(t, repo.Delete(ctx, key))
	_, err = repo.Get(ctx, key)
	assert.ErrorIs(t, err, contract.ErrBlobNotFound)
}

func TestGormBlobRepository(t *testing.T) {
	loadEnv()
	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Blob{}))

	exerciseBlobRepository(t, NewGormBlobRepository(db))
}

func TestRedisBlobRepository(t *testing.T) {
	loadEnv()
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("Skipping integration test: REDIS_URL not set")
	}

	opt, err := redis.ParseURL(url)
	require.NoError(t, err)
	rdb := redis.NewClient(opt)
	t.Cleanup(func() { _ = rdb.Close() })
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Skipping integration test: redis unreachable: %v", err)
	}

	exerciseBlobRepository(t, NewRedisBlobRepository(rdb, "campus-share-test:"))
}
