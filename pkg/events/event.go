package events

import "time"

// Event is anything that can be fanned out to the message bus.
type Event interface {
	// EventType returns the dotted event code, e.g. "file.uploaded".
	EventType() string

	Payload() map[string]interface{}

	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Library event codes.
const (
	TypeFileUploaded   = "file.uploaded"
	TypeFileDeleted    = "file.deleted"
	TypeFileRated      = "file.rated"
	TypeFileDownloaded = "file.downloaded"
	TypeUploaderPurged = "uploader.purged"
)
