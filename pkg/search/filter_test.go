package search

import (
	"testing"

	"campus-share-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	record := entity.ContentRecord{
		Name:        "Lecture-07.pdf",
		Description: "Shortest paths and Dijkstra",
		Subject:     "Algorithms",
		Tags:        []string{"graph-theory", "exam-prep"},
	}

	tests := []struct {
		name    string
		term    string
		subject string
		want    bool
	}{
		{"tag substring", "graph", "", true},
		{"name case insensitive", "LECTURE", "", true},
		{"description", "dijkstra", "", true},
		{"empty term", "", "", true},
		{"no match", "calculus", "", false},
		{"subject matches", "graph", "Algorithms", true},
		{"subject mismatch", "graph", "Physics", false},
		{"subject only", "", "Algorithms", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(record, tt.term, tt.subject))
		})
	}
}

func TestFilter_KeepsOrder(t *testing.T) {
	records := []entity.ContentRecord{
		{Id: "1", Name: "graphs.pdf", Subject: "A"},
		{Id: "2", Name: "trees.pdf", Subject: "A"},
		{Id: "3", Name: "graph-coloring.pdf", Subject: "B"},
	}

	got := Filter(records, "graph", "")
	if assert.Len(t, got, 2) {
		assert.Equal(t, "1", got[0].Id)
		assert.Equal(t, "3", got[1].Id)
	}

	assert.Empty(t, Filter(records, "graph", "C"))
}
