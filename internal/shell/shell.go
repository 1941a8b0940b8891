// Package shell implements the interactive numbered menu for the message log.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/guilhermegouw/chatlog/internal/debug"
	"github.com/guilhermegouw/chatlog/internal/message"
	"github.com/guilhermegouw/chatlog/internal/styles"
)

// Input sentinels.
const (
	TextSentinel   = "/0"
	CancelSentinel = "/cancel"
)

// Input errors.
var (
	ErrNotNumber  = errors.New("input is not a number")
	ErrOutOfRange = errors.New("choice is out of range")
	ErrBadID      = errors.New("ID must be a positive whole number")

	errCancelled = errors.New("cancelled")
)

// Command is a menu selection.
type Command int

// Menu commands.
const (
	CmdExit Command = iota
	CmdAdd
	CmdDisplay
	CmdSave
	CmdLoad
	CmdEdit
	CmdClear
	CmdSearch
	CmdDelete
	CmdStats
)

var menu = []struct {
	cmd   Command
	label string
}{
	{CmdAdd, "Add message"},
	{CmdDisplay, "Show all messages"},
	{CmdSave, "Save chat"},
	{CmdLoad, "Load chat"},
	{CmdEdit, "Edit message"},
	{CmdClear, "Clear chat"},
	{CmdSearch, "Search messages"},
	{CmdDelete, "Delete message"},
	{CmdStats, "Chat statistics"},
	{CmdExit, "Exit"},
}

// ParseCommand converts a menu line into a command.
func ParseCommand(line string) (Command, error) {
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, ErrNotNumber
	}
	if n < int(CmdExit) || n > int(CmdStats) {
		return 0, ErrOutOfRange
	}
	return Command(n), nil
}

// ParseID converts an identifier line into a message id.
func ParseID(line string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || id < 1 {
		return 0, ErrBadID
	}
	return id, nil
}

// Shell drives the menu loop.
type Shell struct {
	svc      *message.Service
	in       LineReader
	out      io.Writer
	styles   *styles.Styles
	renderer *message.Renderer
	color    bool
}

// New creates a shell reading from in and writing to out.
func New(svc *message.Service, in LineReader, out io.Writer, st *styles.Styles, color bool) *Shell {
	return &Shell{
		svc:      svc,
		in:       in,
		out:      out,
		styles:   st,
		renderer: message.NewRenderer(st, color),
		color:    color,
	}
}

// Run shows the menu until the user exits or input ends. End of input leaves
// without saving.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.printMenu()
		line, err := s.in.ReadLine("Choose an option: ")
		if err != nil {
			return s.endOfInput(err)
		}

		cmd, err := ParseCommand(line)
		if err != nil {
			s.fail(fmt.Sprintf("Invalid choice %q: %v. Enter a number from 0 to 9.", strings.TrimSpace(line), err))
			continue
		}
		debug.Log("menu command %d", cmd)

		done, err := s.dispatch(ctx, cmd)
		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			return s.endOfInput(err)
		case errors.Is(err, errCancelled):
			s.notice("Cancelled.")
		default:
			s.fail(describe(err))
		}
		if done {
			return nil
		}
	}
}

// Preload runs the load flow once before the menu is shown.
func (s *Shell) Preload(ctx context.Context) error {
	return s.load(ctx)
}

func (s *Shell) endOfInput(err error) error {
	if !errors.Is(err, io.EOF) {
		return fmt.Errorf("reading input: %w", err)
	}
	s.println("")
	s.notice("Input closed, exiting without saving.")
	return nil
}

func (s *Shell) dispatch(ctx context.Context, cmd Command) (bool, error) {
	switch cmd {
	case CmdAdd:
		return false, s.add()
	case CmdDisplay:
		s.display()
		return false, nil
	case CmdSave:
		return false, s.save(ctx)
	case CmdLoad:
		return false, s.load(ctx)
	case CmdEdit:
		return false, s.edit()
	case CmdClear:
		return false, s.clear()
	case CmdSearch:
		return false, s.search()
	case CmdDelete:
		return false, s.remove()
	case CmdStats:
		s.stats()
		return false, nil
	case CmdExit:
		return s.exit(ctx)
	}
	return false, ErrOutOfRange
}

// readLine reads one line and turns the cancel sentinel into errCancelled.
func (s *Shell) readLine(prompt string) (string, error) {
	line, err := s.in.ReadLine(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(line) == CancelSentinel {
		return "", errCancelled
	}
	return line, nil
}

// readText collects lines until the text sentinel and joins them with "\n".
func (s *Shell) readText() (string, error) {
	s.printHint()
	s.println(s.styles.Prompt.Render("Message text:"))

	var lines []string
	for {
		line, err := s.readLine("")
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(line) == TextSentinel {
			return strings.Join(lines, "\n"), nil
		}
		lines = append(lines, line)
	}
}

func (s *Shell) readID(prompt string) (int, error) {
	line, err := s.readLine(prompt)
	if err != nil {
		return 0, err
	}
	return ParseID(line)
}

func (s *Shell) confirm(prompt string) (bool, error) {
	line, err := s.readLine(prompt)
	if err != nil {
		return false, err
	}
	return normalizeAnswer(line) == "y", nil
}

func describe(err error) string {
	switch {
	case errors.Is(err, message.ErrEmptyText):
		return "Message cannot be empty."
	case errors.Is(err, message.ErrDelimiter):
		return "The '|' character is not allowed."
	case errors.Is(err, message.ErrEmptyKeyword):
		return "Search keyword cannot be empty."
	case errors.Is(err, ErrBadID):
		return "Invalid ID: " + err.Error() + "."
	}
	return err.Error()
}

// Output helpers. Styled strings are stripped to plain text when color is off.

func (s *Shell) println(str string) {
	if !s.color {
		str = styles.Plain(str)
	}
	fmt.Fprintln(s.out, str)
}

func (s *Shell) box(title string, rows ...string) {
	parts := make([]string, 0, len(rows)+1)
	parts = append(parts, s.styles.Title.Render(title))
	parts = append(parts, rows...)
	s.println(s.styles.Box.Render(lipgloss.JoinVertical(lipgloss.Left, parts...)))
}

func (s *Shell) success(msg string) { s.println(s.styles.Success.Render(msg)) }
func (s *Shell) fail(msg string)    { s.println(s.styles.Error.Render(msg)) }
func (s *Shell) warn(msg string)    { s.println(s.styles.Warning.Render("Warning: " + msg)) }
func (s *Shell) notice(msg string)  { s.println(s.styles.Muted.Render(msg)) }

func (s *Shell) printMenu() {
	rows := make([]string, 0, len(menu))
	for _, item := range menu {
		key := s.styles.MenuKey.Render(fmt.Sprintf(" %d ", item.cmd))
		rows = append(rows, key+" "+s.styles.Text.Render(item.label))
	}
	s.println("")
	s.box("MENU", rows...)
}

func (s *Shell) printHint() {
	s.box("Hint",
		"Use *bold* and _italic_ to format text.",
		"Finish with "+TextSentinel+" on a new line, "+CancelSentinel+" to abort.",
	)
}
