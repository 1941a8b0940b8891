package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/guilhermegouw/chatlog/internal/message"
)

func (s *Shell) add() error {
	text, err := s.readText()
	if err != nil {
		return err
	}

	msg, warnings, err := s.svc.Add(text)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		s.warn(w)
	}
	s.success(fmt.Sprintf("Message %d added!", msg.ID))
	return nil
}

func (s *Shell) display() {
	msgs := s.svc.All()
	if len(msgs) == 0 {
		s.notice("The chat is empty. Add a message!")
		return
	}

	rows := make([]string, 0, len(msgs))
	for _, m := range msgs {
		rows = append(rows, s.renderer.Line(m))
	}
	s.box("Chat history", rows...)
}

func (s *Shell) save(ctx context.Context) error {
	n, err := s.svc.Save(ctx)
	if err != nil {
		return err
	}
	s.success(fmt.Sprintf("Saved %d messages to %s.", n, s.svc.Archive().Location()))
	return nil
}

func (s *Shell) load(ctx context.Context) error {
	result, err := s.svc.Load(ctx)
	if err != nil {
		if errors.Is(err, message.ErrArchiveNotFound) {
			s.fail(fmt.Sprintf("File not found: %s", s.svc.Archive().Location()))
			return nil
		}
		return err
	}

	for _, rec := range result.Skipped {
		if rec.Line > 0 {
			s.warn(fmt.Sprintf("skipped line %d %q: %s", rec.Line, rec.Content, rec.Reason))
		} else {
			s.warn(fmt.Sprintf("skipped %q: %s", rec.Content, rec.Reason))
		}
	}
	if len(result.Messages) == 0 {
		s.notice("No messages were loaded.")
		return nil
	}
	s.success(fmt.Sprintf("Loaded %d messages.", len(result.Messages)))
	return nil
}

func (s *Shell) edit() error {
	id, err := s.readID("Message ID to edit: ")
	if err != nil {
		return err
	}
	current, err := s.svc.Get(id)
	if err != nil {
		if errors.Is(err, message.ErrNotFound) {
			s.fail(fmt.Sprintf("No message with ID %d.", id))
			return nil
		}
		return err
	}
	s.println(s.renderer.Line(current))

	text, err := s.readText()
	if err != nil {
		return err
	}
	msg, err := s.svc.Edit(id, text)
	if err != nil {
		if errors.Is(err, message.ErrNotFound) {
			s.fail(fmt.Sprintf("No message with ID %d.", id))
			return nil
		}
		return err
	}
	for _, w := range message.TextWarnings(text) {
		s.warn(w)
	}
	s.success(fmt.Sprintf("Message %d updated!", msg.ID))
	return nil
}

func (s *Shell) clear() error {
	ok, err := s.confirm("Delete all messages? [y/N]: ")
	if err != nil {
		return err
	}
	if !ok {
		s.notice("Clear cancelled.")
		return nil
	}
	s.svc.Clear()
	s.success("Chat cleared.")
	return nil
}

func (s *Shell) search() error {
	keyword, err := s.readLine("Keyword: ")
	if err != nil {
		return err
	}
	found, err := s.svc.Search(keyword)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		s.notice("No messages found.")
		return nil
	}

	rows := make([]string, 0, len(found))
	for _, m := range found {
		rows = append(rows, s.renderer.Line(m))
	}
	s.box("Search results", rows...)
	return nil
}

func (s *Shell) remove() error {
	id, err := s.readID("Message ID to delete: ")
	if err != nil {
		return err
	}
	if err := s.svc.Delete(id); err != nil {
		if errors.Is(err, message.ErrNotFound) {
			s.fail(fmt.Sprintf("No message with ID %d.", id))
			return nil
		}
		return err
	}
	s.success(fmt.Sprintf("Message %d deleted.", id))
	return nil
}

func (s *Shell) stats() {
	st := s.svc.Stats()
	row := func(label string, n int) string {
		return s.styles.Label.Render(label) + fmt.Sprintf("%4d", n)
	}
	s.box("Chat statistics",
		row("Messages", st.Messages),
		row("Words", st.Words),
		row("Bold fragments", st.BoldFragments),
		row("Italic fragments", st.ItalicFragments),
		row("Characters", st.Characters),
	)
}

// exit returns true when the loop should stop. A failed save keeps the
// shell running so nothing is lost.
func (s *Shell) exit(ctx context.Context) (bool, error) {
	line, err := s.readLine("Save before exiting? [y/n]: ")
	if err != nil {
		return false, err
	}

	switch normalizeAnswer(line) {
	case "y":
		if err := s.save(ctx); err != nil {
			return false, err
		}
	case "n":
	default:
		s.fail("Please answer y or n.")
		return false, nil
	}
	s.notice("Goodbye!")
	return true, nil
}

func normalizeAnswer(line string) string {
	switch a := strings.ToLower(strings.TrimSpace(line)); a {
	case "y", "yes":
		return "y"
	case "n", "no":
		return "n"
	default:
		return a
	}
}
