package rating

import (
	"math"

	"campus-share-be/internal/entity"
	"campus-share-be/pkg/catalogerr"
)

const (
	MinValue = 1
	MaxValue = 5
)

func Valid(value int) bool {
	return value >= MinValue && value <= MaxValue
}

// Mean returns the average of ratings rounded to one decimal, 0 when empty.
func Mean(ratings map[string]int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, v := range ratings {
		sum += v
	}
	avg := float64(sum) / float64(len(ratings))
	return math.Round(avg*10) / 10
}

// Submit upserts the rater's value and recomputes the derived mean. A rater
// only ever holds one entry, so resubmitting replaces the previous value.
func Submit(record *entity.ContentRecord, raterId string, value int) error {
	if !Valid(value) {
		return catalogerr.ErrInvalidRating
	}
	if record.Ratings == nil {
		record.Ratings = make(map[string]int)
	}
	record.Ratings[raterId] = value
	record.Rating = Mean(record.Ratings)
	return nil
}
