package search

import (
	"strings"

	"campus-share-be/internal/entity"
)

// Matches reports whether the record contains term (case-insensitive) in its
// name, description or any tag, and belongs to subjectFilter when one is set.
// An empty term matches everything.
func Matches(record entity.ContentRecord, term, subjectFilter string) bool {
	if subjectFilter != "" && record.Subject != subjectFilter {
		return false
	}

	needle := strings.ToLower(term)
	if strings.Contains(strings.ToLower(record.Name), needle) ||
		strings.Contains(strings.ToLower(record.Description), needle) {
		return true
	}
	for _, tag := range record.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// Filter keeps the matching records in their original order.
func Filter(records []entity.ContentRecord, term, subjectFilter string) []entity.ContentRecord {
	out := make([]entity.ContentRecord, 0, len(records))
	for _, rec := range records {
		if Matches(rec, term, subjectFilter) {
			out = append(out, rec)
		}
	}
	return out
}
