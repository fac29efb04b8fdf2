package rating

import (
	"math"
	"testing"

	"campus-share-be/internal/entity"
	"campus-share-be/pkg/catalogerr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmit_SameRaterOverwrites(t *testing.T) {
	rec := &entity.ContentRecord{Id: "f1"}

	require.NoError(t, Submit(rec, "u1", 3))
	assert.Equal(t, 3.0, rec.Rating)

	require.NoError(t, Submit(rec, "u1", 5))
	assert.Equal(t, map[string]int{"u1": 5}, rec.Ratings)
	assert.Equal(t, 5.0, rec.Rating)
}

func TestSubmit_RejectsOutOfRange(t *testing.T) {
	rec := &entity.ContentRecord{Id: "f1", Ratings: map[string]int{"u2": 4}, Rating: 4}

	for _, v := range []int{0, -1, 6, 7} {
		err := Submit(rec, "u1", v)
		assert.ErrorIs(t, err, catalogerr.ErrInvalidRating)
	}
	assert.Equal(t, map[string]int{"u2": 4}, rec.Ratings)
	assert.Equal(t, 4.0, rec.Rating)
}

func TestSubmit_MeanRounding(t *testing.T) {
	rec := &entity.ContentRecord{}
	require.NoError(t, Submit(rec, "a", 5))
	require.NoError(t, Submit(rec, "b", 4))
	require.NoError(t, Submit(rec, "c", 4))

	// 13/3 = 4.333...
	assert.Equal(t, 4.3, rec.Rating)
	assert.Len(t, rec.Ratings, 3)
}

func TestSubmit_StaysWithinBounds(t *testing.T) {
	rec := &entity.ContentRecord{}
	raters := []string{"a", "b", "c", "d"}
	for i := 0; i < 40; i++ {
		v := i%5 + 1
		require.NoError(t, Submit(rec, raters[i%len(raters)], v))

		assert.GreaterOrEqual(t, rec.Rating, 1.0)
		assert.LessOrEqual(t, rec.Rating, 5.0)

		sum := 0
		for _, r := range rec.Ratings {
			sum += r
		}
		want := math.Round(float64(sum)/float64(len(rec.Ratings))*10) / 10
		assert.Equal(t, want, rec.Rating)
	}
	assert.Len(t, rec.Ratings, len(raters))
}

func TestMean_Empty(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 0.0, Mean(map[string]int{}))
}
