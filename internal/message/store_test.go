package message

import (
	"errors"
	"testing"
)

func ids(msgs []*Message) []int {
	out := make([]int, len(msgs))
	for i, m := range msgs {
		out[i] = m.ID
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestStore_Create(t *testing.T) {
	s := NewStore()

	first := s.Create("one", StylePlain)
	second := s.Create("two", StylePlain)

	if first.ID != 1 || second.ID != 2 {
		t.Errorf("Create() ids = %d, %d, want 1, 2", first.ID, second.ID)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestStore_Add(t *testing.T) {
	t.Run("distinct ids grow the store", func(t *testing.T) {
		s := NewStore()
		for _, id := range []int{5, 2, 9} {
			if err := s.Add(New(id, "x")); err != nil {
				t.Fatalf("Add(%d) error = %v", id, err)
			}
		}
		if s.Len() != 3 {
			t.Errorf("Len() = %d, want 3", s.Len())
		}
		if got := ids(s.All()); !equalInts(got, []int{2, 5, 9}) {
			t.Errorf("All() ids = %v, want [2 5 9]", got)
		}
	})

	t.Run("duplicate id is rejected", func(t *testing.T) {
		s := NewStore()
		if err := s.Add(New(1, "first")); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
		err := s.Add(New(1, "second"))
		if !errors.Is(err, ErrDuplicateID) {
			t.Errorf("Add() error = %v, want %v", err, ErrDuplicateID)
		}
		if s.Len() != 1 {
			t.Errorf("Len() = %d, want 1", s.Len())
		}
		if msg, _ := s.Get(1); msg.Text != "first" {
			t.Errorf("Get(1).Text = %q, want %q", msg.Text, "first")
		}
	})

	t.Run("non-positive id is rejected", func(t *testing.T) {
		s := NewStore()
		if err := s.Add(New(0, "x")); !errors.Is(err, ErrInvalidID) {
			t.Errorf("Add(0) error = %v, want %v", err, ErrInvalidID)
		}
	})

	t.Run("forced id raises the counter", func(t *testing.T) {
		s := NewStore()
		if err := s.Add(New(41, "loaded")); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
		if got := s.Create("fresh", StylePlain); got.ID != 42 {
			t.Errorf("Create() id = %d, want 42", got.ID)
		}
	})

	t.Run("lower forced id keeps the counter", func(t *testing.T) {
		s := NewStore()
		s.Create("a", StylePlain)
		s.Create("b", StylePlain)
		s.Create("c", StylePlain)
		if err := s.Delete(1); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if err := s.Add(New(1, "back")); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
		if s.LastID() != 3 {
			t.Errorf("LastID() = %d, want 3", s.LastID())
		}
	})
}

func TestStore_Edit(t *testing.T) {
	t.Run("replaces text and keeps id", func(t *testing.T) {
		s := NewStore()
		s.Create("one", StylePlain)
		s.Create("two", StyleItalic)

		msg, err := s.Edit(2, "TWO")
		if err != nil {
			t.Fatalf("Edit() error = %v", err)
		}
		if msg.ID != 2 || msg.Text != "TWO" {
			t.Errorf("Edit() = %+v, want id 2 text TWO", msg)
		}
		if msg.Style != StyleItalic {
			t.Errorf("Edit() style = %q, want %q", msg.Style, StyleItalic)
		}
		if got := ids(s.All()); !equalInts(got, []int{1, 2}) {
			t.Errorf("All() ids = %v, want [1 2]", got)
		}
		if first, _ := s.Get(1); first.Text != "one" {
			t.Errorf("untouched message changed: %q", first.Text)
		}
	})

	t.Run("missing id leaves store unchanged", func(t *testing.T) {
		s := NewStore()
		s.Create("one", StylePlain)

		if _, err := s.Edit(99, "x"); !errors.Is(err, ErrNotFound) {
			t.Errorf("Edit() error = %v, want %v", err, ErrNotFound)
		}
		if s.Len() != 1 {
			t.Errorf("Len() = %d, want 1", s.Len())
		}
		if s.LastID() != 1 {
			t.Errorf("LastID() = %d, want 1", s.LastID())
		}
	})
}

func TestStore_Delete(t *testing.T) {
	s := NewStore()
	for i := 0; i < 3; i++ {
		s.Create("m", StylePlain)
	}

	if err := s.Delete(2); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if got := ids(s.All()); !equalInts(got, []int{1, 3}) {
		t.Errorf("All() ids = %v, want [1 3]", got)
	}

	if err := s.Delete(2); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() twice error = %v, want %v", err, ErrNotFound)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}

	if got := s.Create("next", StylePlain); got.ID != 4 {
		t.Errorf("Create() after delete id = %d, want 4", got.ID)
	}
}

func TestStore_Search(t *testing.T) {
	s := NewStore()
	for _, id := range []int{3, 1, 2} {
		text := "other"
		if id != 2 {
			text = "has the keyword inside"
		}
		if err := s.Add(New(id, text)); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	tests := []struct {
		name    string
		keyword string
		want    []int
	}{
		{name: "ascending subset", keyword: "keyword", want: []int{1, 3}},
		{name: "substring match", keyword: "the", want: []int{1, 2, 3}},
		{name: "case sensitive", keyword: "KEYWORD", want: []int{}},
		{name: "no match", keyword: "absent", want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ids(s.Search(tt.keyword)); !equalInts(got, tt.want) {
				t.Errorf("Search(%q) = %v, want %v", tt.keyword, got, tt.want)
			}
		})
	}
}

func TestStore_Stats(t *testing.T) {
	t.Run("example message", func(t *testing.T) {
		s := NewStore()
		msg := s.Create("Hello *world*!", StylePlain)
		if msg.ID != 1 {
			t.Fatalf("Create() id = %d, want 1", msg.ID)
		}

		got := s.Stats()
		want := Stats{Messages: 1, Words: 2, Characters: 14, BoldFragments: 1, ItalicFragments: 0}
		if got != want {
			t.Errorf("Stats() = %+v, want %+v", got, want)
		}
	})

	t.Run("fragments counted per message", func(t *testing.T) {
		s := NewStore()
		s.Create("*a", StylePlain)
		s.Create("*b", StylePlain)
		s.Create("_x_ _y_ _z", StylePlain)

		got := s.Stats()
		if got.BoldFragments != 0 {
			t.Errorf("BoldFragments = %d, want 0", got.BoldFragments)
		}
		if got.ItalicFragments != 2 {
			t.Errorf("ItalicFragments = %d, want 2", got.ItalicFragments)
		}
		if got.Words != 5 {
			t.Errorf("Words = %d, want 5", got.Words)
		}
	})

	t.Run("characters count graphemes", func(t *testing.T) {
		s := NewStore()
		s.Create("Привіт\nсвіт", StylePlain)
		if got := s.Stats().Characters; got != 11 {
			t.Errorf("Characters = %d, want 11", got)
		}
	})

	t.Run("empty store", func(t *testing.T) {
		if got := NewStore().Stats(); got != (Stats{}) {
			t.Errorf("Stats() = %+v, want zero", got)
		}
	})
}

func TestStore_Clear(t *testing.T) {
	s := NewStore()
	s.Create("a", StylePlain)
	s.Create("b", StylePlain)

	s.Clear()

	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
	if got := s.Create("c", StylePlain); got.ID != 3 {
		t.Errorf("Create() after Clear id = %d, want 3", got.ID)
	}
}
