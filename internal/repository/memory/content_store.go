package memory

import (
	"campus-share-be/internal/entity"
	"campus-share-be/pkg/catalogerr"
	"campus-share-be/pkg/rating"
)

// ContentStore holds the flat, authoritative record collection in upload
// order. It is not safe for concurrent use; the library service is its only
// writer and serializes access.
type ContentStore struct {
	records []entity.ContentRecord
}

func NewContentStore(seed []entity.ContentRecord) *ContentStore {
	s := &ContentStore{}
	s.Replace(seed)
	return s
}

// Replace swaps the whole collection, e.g. when seeding from the blob store.
func (s *ContentStore) Replace(records []entity.ContentRecord) {
	s.records = make([]entity.ContentRecord, 0, len(records))
	for _, r := range records {
		s.records = append(s.records, r.Clone())
	}
}

func (s *ContentStore) Add(record entity.ContentRecord) {
	if record.Ratings == nil {
		record.Ratings = make(map[string]int)
	}
	if record.Tags == nil {
		record.Tags = []string{}
	}
	s.records = append(s.records, record.Clone())
}

func (s *ContentStore) indexOf(id string) int {
	for i := range s.records {
		if s.records[i].Id == id {
			return i
		}
	}
	return -1
}

func (s *ContentStore) Get(id string) (entity.ContentRecord, error) {
	i := s.indexOf(id)
	if i < 0 {
		return entity.ContentRecord{}, catalogerr.ErrNotFound
	}
	return s.records[i].Clone(), nil
}

func (s *ContentStore) Remove(id string) (entity.ContentRecord, error) {
	i := s.indexOf(id)
	if i < 0 {
		return entity.ContentRecord{}, catalogerr.ErrNotFound
	}
	removed := s.records[i]
	s.records = append(s.records[:i], s.records[i+1:]...)
	return removed, nil
}

// RemoveWhere drops every record matching pred and returns how many went.
func (s *ContentStore) RemoveWhere(pred func(entity.ContentRecord) bool) int {
	kept := s.records[:0]
	removed := 0
	for _, r := range s.records {
		if pred(r) {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	s.records = kept
	return removed
}

// Update applies patch to a working copy and stores it only if patch
// succeeds.
func (s *ContentStore) Update(id string, patch func(*entity.ContentRecord) error) (entity.ContentRecord, error) {
	i := s.indexOf(id)
	if i < 0 {
		return entity.ContentRecord{}, catalogerr.ErrNotFound
	}
	working := s.records[i].Clone()
	if err := patch(&working); err != nil {
		return entity.ContentRecord{}, err
	}
	s.records[i] = working
	return working.Clone(), nil
}

func (s *ContentStore) IncrementDownloads(id string) (entity.ContentRecord, error) {
	return s.Update(id, func(r *entity.ContentRecord) error {
		r.Downloads++
		return nil
	})
}

func (s *ContentStore) SubmitRating(id, raterId string, value int) (entity.ContentRecord, error) {
	if !rating.Valid(value) {
		return entity.ContentRecord{}, catalogerr.ErrInvalidRating
	}
	return s.Update(id, func(r *entity.ContentRecord) error {
		return rating.Submit(r, raterId, value)
	})
}

// All returns a deep copy of the collection.
func (s *ContentStore) All() []entity.ContentRecord {
	out := make([]entity.ContentRecord, len(s.records))
	for i, r := range s.records {
		out[i] = r.Clone()
	}
	return out
}

func (s *ContentStore) Len() int {
	return len(s.records)
}
