package nats

import (
	"testing"

	"campus-share-be/pkg/events"

	"github.com/stretchr/testify/assert"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "library.file.uploaded", Subject(events.BaseEvent{Type: events.TypeFileUploaded}))
	assert.Equal(t, "library.uploader.purged", Subject(events.BaseEvent{Type: events.TypeUploaderPurged}))
}
