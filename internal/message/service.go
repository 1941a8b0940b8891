package message

import (
	"context"
	"fmt"

	"github.com/guilhermegouw/chatlog/internal/debug"
)

const component = "message"

// Service manages messages on top of a Store and an Archive.
type Service struct {
	store   *Store
	archive Archive
}

// NewService creates a new message service.
func NewService(store *Store, archive Archive) *Service {
	return &Service{
		store:   store,
		archive: archive,
	}
}

// Archive returns the configured archive.
func (s *Service) Archive() Archive {
	return s.archive
}

// Add validates text and stores it under a fresh id. Odd marker counts and
// literal escapes are returned as warnings; they do not prevent the insert.
func (s *Service) Add(text string) (*Message, []string, error) {
	if err := ValidateText(text); err != nil {
		return nil, nil, err
	}
	msg := s.store.Create(text, StylePlain)
	debug.Event(component, "added", "id", msg.ID, "chars", len(text))
	return msg, TextWarnings(text), nil
}

// Edit replaces the text of message id.
func (s *Service) Edit(id int, text string) (*Message, error) {
	if err := ValidateText(text); err != nil {
		return nil, err
	}
	msg, err := s.store.Edit(id, text)
	if err != nil {
		return nil, err
	}
	debug.Event(component, "edited", "id", id)
	return msg, nil
}

// Delete removes message id.
func (s *Service) Delete(id int) error {
	if err := s.store.Delete(id); err != nil {
		return err
	}
	debug.Event(component, "deleted", "id", id)
	return nil
}

// Get retrieves a message by id.
func (s *Service) Get(id int) (*Message, error) {
	return s.store.Get(id)
}

// All returns every message ascending by id.
func (s *Service) All() []*Message {
	return s.store.All()
}

// Search returns messages containing keyword.
func (s *Service) Search(keyword string) ([]*Message, error) {
	if keyword == "" {
		return nil, ErrEmptyKeyword
	}
	return s.store.Search(keyword), nil
}

// Stats returns statistics for the current messages.
func (s *Service) Stats() Stats {
	return s.store.Stats()
}

// Clear removes all messages.
func (s *Service) Clear() {
	n := s.store.Len()
	s.store.Clear()
	debug.Event(component, "cleared", "removed", n)
}

// Save writes all messages to the archive and returns how many were written.
func (s *Service) Save(ctx context.Context) (int, error) {
	msgs := s.store.All()
	if err := s.archive.Save(ctx, msgs); err != nil {
		debug.Error(component, err, "saving archive")
		return 0, fmt.Errorf("saving to %s: %w", s.archive.Location(), err)
	}
	debug.Event(component, "saved", "count", len(msgs), "location", s.archive.Location())
	return len(msgs), nil
}

// Load replaces the store contents with the archive. The store is cleared
// first, so it stays empty when the archive is missing or unreadable.
func (s *Service) Load(ctx context.Context) (*LoadResult, error) {
	s.store.Clear()

	result, err := s.archive.Load(ctx)
	if err != nil {
		debug.Error(component, err, "loading archive")
		return nil, err
	}

	loaded := make([]*Message, 0, len(result.Messages))
	for _, msg := range result.Messages {
		if err := s.store.Add(msg); err != nil {
			result.Skipped = append(result.Skipped, SkippedRecord{
				Content: FormatRecord(msg),
				Reason:  err.Error(),
			})
			continue
		}
		loaded = append(loaded, msg)
	}
	result.Messages = loaded

	debug.Event(component, "loaded", "count", len(loaded), "skipped", len(result.Skipped),
		"location", s.archive.Location())
	return result, nil
}
