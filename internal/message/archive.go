package message

import (
	"context"
	"errors"
)

// ErrArchiveNotFound is returned when loading from an archive that does not exist yet.
var ErrArchiveNotFound = errors.New("archive not found")

// Archive defines the interface for message persistence.
type Archive interface {
	// Save replaces the archive contents with msgs.
	Save(ctx context.Context, msgs []*Message) error

	// Load reads every record from the archive.
	Load(ctx context.Context) (*LoadResult, error)

	// Location describes where the archive lives, for display.
	Location() string
}

// SkippedRecord describes a record that could not be loaded.
type SkippedRecord struct {
	Line    int
	Content string
	Reason  string
}

// LoadResult is the outcome of reading an archive.
type LoadResult struct {
	Messages []*Message
	Skipped  []SkippedRecord
}
