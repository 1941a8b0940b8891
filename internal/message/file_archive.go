package message

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	recordPrefix   = "ID: "
	escapedNewline = `\n`
)

// FileArchive stores messages in a flat text file, one record per line:
//
//	ID: <id>|<text with newlines escaped as \n>
type FileArchive struct {
	path string
}

// NewFileArchive creates a flat-file archive at path.
func NewFileArchive(path string) *FileArchive {
	return &FileArchive{path: path}
}

// Location returns the file path.
func (a *FileArchive) Location() string {
	return a.path
}

// Save writes msgs in the order given, truncating the file.
func (a *FileArchive) Save(ctx context.Context, msgs []*Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if dir := filepath.Dir(a.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating archive directory: %w", err)
		}
	}

	//nolint:gosec // G304: path comes from config or flags.
	f, err := os.Create(a.path)
	if err != nil {
		return fmt.Errorf("creating archive: %w", err)
	}

	w := bufio.NewWriter(f)
	for _, msg := range msgs {
		if _, err := w.WriteString(FormatRecord(msg) + "\n"); err != nil {
			_ = f.Close() //nolint:errcheck // Write error takes precedence.
			return fmt.Errorf("writing record %d: %w", msg.ID, err)
		}
	}
	if err := w.Flush(); err != nil {
		_ = f.Close() //nolint:errcheck // Flush error takes precedence.
		return fmt.Errorf("flushing archive: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}
	return nil
}

// Load parses the file. Blank lines and lines without a delimiter are ignored;
// malformed records are skipped and reported in the result.
func (a *FileArchive) Load(ctx context.Context) (*LoadResult, error) {
	//nolint:gosec // G304: path comes from config or flags.
	f, err := os.Open(a.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrArchiveNotFound, a.path)
		}
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // Read-only file.

	result := &LoadResult{}
	seen := make(map[int]bool)

	// ReadString has no line length limit, unlike bufio.Scanner.
	r := bufio.NewReader(f)
	lineNo := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw, readErr := r.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, fmt.Errorf("reading archive: %w", readErr)
		}
		if raw != "" {
			lineNo++
			a.parseLine(result, seen, lineNo, strings.TrimRight(raw, "\r\n"))
		}
		if readErr != nil {
			break
		}
	}

	return result, nil
}

func (a *FileArchive) parseLine(result *LoadResult, seen map[int]bool, lineNo int, line string) {
	if strings.TrimSpace(line) == "" || !strings.Contains(line, Delimiter) {
		return
	}

	msg, err := ParseRecord(line)
	if err != nil {
		result.Skipped = append(result.Skipped, SkippedRecord{Line: lineNo, Content: line, Reason: err.Error()})
		return
	}
	if seen[msg.ID] {
		result.Skipped = append(result.Skipped, SkippedRecord{Line: lineNo, Content: line, Reason: ErrDuplicateID.Error()})
		return
	}
	seen[msg.ID] = true
	result.Messages = append(result.Messages, msg)
}

// FormatRecord encodes a message as a single archive line without the trailing newline.
func FormatRecord(msg *Message) string {
	return recordPrefix + strconv.Itoa(msg.ID) + Delimiter + strings.ReplaceAll(msg.Text, "\n", escapedNewline)
}

// ParseRecord decodes one archive line of the form "ID: <id>|<text>".
func ParseRecord(line string) (*Message, error) {
	head, text, ok := strings.Cut(line, Delimiter)
	if !ok {
		return nil, fmt.Errorf("missing %q delimiter", Delimiter)
	}
	_, idPart, ok := strings.Cut(head, ":")
	if !ok {
		return nil, errors.New("missing id label")
	}
	id, err := strconv.Atoi(strings.TrimSpace(idPart))
	if err != nil {
		return nil, fmt.Errorf("invalid id %q", strings.TrimSpace(idPart))
	}
	if id < 1 {
		return nil, ErrInvalidID
	}
	return New(id, strings.ReplaceAll(text, escapedNewline, "\n")), nil
}
