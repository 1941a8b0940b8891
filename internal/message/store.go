package message

import (
	"errors"
	"slices"
	"strings"

	"github.com/rivo/uniseg"
)

// Store errors.
var (
	// ErrNotFound is returned when a message is not found.
	ErrNotFound = errors.New("message not found")
	// ErrDuplicateID is returned when inserting an id that is already present.
	ErrDuplicateID = errors.New("message id already exists")
	// ErrInvalidID is returned for ids below 1.
	ErrInvalidID = errors.New("message id must be a positive integer")
)

// Store is the in-memory message collection, unique by id and iterated in
// ascending id order. It owns the id counter: the counter never drops below
// the highest id ever assigned or inserted.
//
// Store is not safe for concurrent use.
type Store struct {
	messages map[int]*Message
	ids      []int
	lastID   int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		messages: make(map[int]*Message),
	}
}

// Create assigns the next id to text and inserts it.
func (s *Store) Create(text string, style Style) *Message {
	s.lastID++
	msg := &Message{ID: s.lastID, Text: text, Style: style}
	s.insert(msg)
	return msg
}

// Add inserts msg with its own id and raises the counter to at least that id.
func (s *Store) Add(msg *Message) error {
	if msg.ID < 1 {
		return ErrInvalidID
	}
	if _, ok := s.messages[msg.ID]; ok {
		return ErrDuplicateID
	}
	if msg.Style == "" {
		msg.Style = StylePlain
	}
	s.insert(msg)
	if msg.ID > s.lastID {
		s.lastID = msg.ID
	}
	return nil
}

// Get retrieves a message by id.
func (s *Store) Get(id int) (*Message, error) {
	msg, ok := s.messages[id]
	if !ok {
		return nil, ErrNotFound
	}
	return msg, nil
}

// Edit replaces the text of the message with id, keeping id and style.
func (s *Store) Edit(id int, text string) (*Message, error) {
	old, ok := s.messages[id]
	if !ok {
		return nil, ErrNotFound
	}
	edited := &Message{ID: id, Text: text, Style: old.Style}
	s.remove(id)
	s.insert(edited)
	return edited, nil
}

// Delete removes the message with id.
func (s *Store) Delete(id int) error {
	if _, ok := s.messages[id]; !ok {
		return ErrNotFound
	}
	s.remove(id)
	return nil
}

// Search returns messages whose text contains keyword, ascending by id.
func (s *Store) Search(keyword string) []*Message {
	var found []*Message
	for _, id := range s.ids {
		if msg := s.messages[id]; strings.Contains(msg.Text, keyword) {
			found = append(found, msg)
		}
	}
	return found
}

// All returns every message ascending by id.
func (s *Store) All() []*Message {
	all := make([]*Message, 0, len(s.ids))
	for _, id := range s.ids {
		all = append(all, s.messages[id])
	}
	return all
}

// Len returns the number of messages.
func (s *Store) Len() int {
	return len(s.ids)
}

// LastID returns the highest id assigned or inserted so far.
func (s *Store) LastID() int {
	return s.lastID
}

// Clear removes every message. The id counter is kept.
func (s *Store) Clear() {
	s.messages = make(map[int]*Message)
	s.ids = nil
}

// Stats summarizes the store contents.
type Stats struct {
	Messages        int
	Words           int
	Characters      int
	BoldFragments   int
	ItalicFragments int
}

// Stats computes totals across all messages. Fragments are counted as
// floor(markers/2) per message, without checking that markers pair up.
func (s *Store) Stats() Stats {
	st := Stats{Messages: len(s.ids)}
	for _, id := range s.ids {
		text := s.messages[id].Text
		st.Words += len(strings.Fields(text))
		st.Characters += uniseg.GraphemeClusterCount(text)
		st.BoldFragments += strings.Count(text, string(BoldMarker)) / 2
		st.ItalicFragments += strings.Count(text, string(ItalicMarker)) / 2
	}
	return st
}

func (s *Store) insert(msg *Message) {
	s.messages[msg.ID] = msg
	pos, found := slices.BinarySearch(s.ids, msg.ID)
	if !found {
		s.ids = slices.Insert(s.ids, pos, msg.ID)
	}
}

func (s *Store) remove(id int) {
	delete(s.messages, id)
	if pos, found := slices.BinarySearch(s.ids, id); found {
		s.ids = slices.Delete(s.ids, pos, pos+1)
	}
}
