package memory

import (
	"context"
	"testing"
	"time"

	"campus-share-be/internal/repository/contract"
	"campus-share-be/pkg/navigation"
	"campus-share-be/pkg/taxonomy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlobRepository(t *testing.T) {
	ctx := context.Background()
	r := NewBlobRepository()

	_, err := r.Get(ctx, contract.BlobKeyContentRecords)
	assert.ErrorIs(t, err, contract.ErrBlobNotFound)

	value := []byte(`[{"id":"1"}]`)
	require.NoError(t, r.Put(ctx, contract.BlobKeyContentRecords, value))
	value[0] = 'X'

	got, err := r.Get(ctx, contract.BlobKeyContentRecords)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, string(got))

	require.NoError(t, r.Delete(ctx, contract.BlobKeyContentRecords))
	_, err = r.Get(ctx, contract.BlobKeyContentRecords)
	assert.ErrorIs(t, err, contract.ErrBlobNotFound)
}

func TestSessionRepository(t *testing.T) {
	r := NewSessionRepository(time.Hour, time.Minute)
	root := taxonomy.Build(nil)

	_, ok := r.Get("u1")
	assert.False(t, ok)

	r.Save(&Session{UserId: "u1", Navigator: navigation.NewNavigator(root)})
	r.Save(&Session{UserId: "u2", Navigator: navigation.NewNavigator(root)})
	assert.Equal(t, 2, r.Count())

	sess, ok := r.Get("u1")
	require.True(t, ok)
	assert.Equal(t, "u1", sess.UserId)

	seen := map[string]bool{}
	r.Each(func(s *Session) { seen[s.UserId] = true })
	assert.Equal(t, map[string]bool{"u1": true, "u2": true}, seen)

	r.Delete("u1")
	_, ok = r.Get("u1")
	assert.False(t, ok)
}

func TestSessionRepository_Expires(t *testing.T) {
	r := NewSessionRepository(10*time.Millisecond, time.Hour)
	r.Save(&Session{UserId: "u1", Navigator: navigation.NewNavigator(taxonomy.Build(nil))})

	time.Sleep(20 * time.Millisecond)
	_, ok := r.Get("u1")
	assert.False(t, ok)
}
