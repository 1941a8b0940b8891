package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/guilhermegouw/chatlog/internal/message"
	"github.com/guilhermegouw/chatlog/internal/styles"
)

// scriptReader replays fixed input lines and then reports io.EOF.
type scriptReader struct {
	lines   []string
	prompts []string
}

func (r *scriptReader) ReadLine(prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func (r *scriptReader) Close() error { return nil }

func runScript(t *testing.T, path string, lines ...string) (*message.Service, string) {
	t.Helper()
	svc := message.NewService(message.NewStore(), message.NewFileArchive(path))
	var out bytes.Buffer
	sh := New(svc, &scriptReader{lines: lines}, &out, styles.NewStyles(styles.NewDefaultTheme()), false)
	if err := sh.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return svc, out.String()
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line    string
		want    Command
		wantErr error
	}{
		{line: "1", want: CmdAdd},
		{line: " 9 ", want: CmdStats},
		{line: "0", want: CmdExit},
		{line: "10", wantErr: ErrOutOfRange},
		{line: "-1", wantErr: ErrOutOfRange},
		{line: "abc", wantErr: ErrNotNumber},
		{line: "", wantErr: ErrNotNumber},
		{line: "3x", wantErr: ErrNotNumber},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseCommand(tt.line)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseCommand(%q) error = %v, want %v", tt.line, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseCommand(%q) = %d, want %d", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		line    string
		want    int
		wantErr bool
	}{
		{line: "1", want: 1},
		{line: " 42", want: 42},
		{line: "0", wantErr: true},
		{line: "-3", wantErr: true},
		{line: "x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseID(tt.line)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseID(%q) error = %v, wantErr %v", tt.line, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseID(%q) = %d, want %d", tt.line, got, tt.want)
			}
		})
	}
}

func TestShell_AddAndDisplay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.txt")
	svc, out := runScript(t, path,
		"1", "Hello *world*!", "/0",
		"1", "line one", "line two", "/0",
		"2",
		"0", "n",
	)

	msgs := svc.All()
	if len(msgs) != 2 {
		t.Fatalf("stored %d messages, want 2", len(msgs))
	}
	if msgs[1].Text != "line one\nline two" {
		t.Errorf("second text = %q, want joined lines", msgs[1].Text)
	}
	for _, want := range []string{"Message 1 added!", "ID: 1 - Hello world!", "Goodbye!"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("output contains escape sequences with color off")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("archive written after answering n: %v", err)
	}
}

func TestShell_InvalidChoice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.txt")
	_, out := runScript(t, path, "abc", "12", "0", "n")

	if got := strings.Count(out, "Invalid choice"); got != 2 {
		t.Errorf("Invalid choice reported %d times, want 2", got)
	}
	if got := strings.Count(out, "MENU"); got != 3 {
		t.Errorf("menu shown %d times, want 3", got)
	}
}

func TestShell_Cancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.txt")
	svc, out := runScript(t, path,
		"1", "draft", "/cancel",
		"8", "/cancel",
		"0", "n",
	)

	if got := len(svc.All()); got != 0 {
		t.Errorf("stored %d messages after cancel, want 0", got)
	}
	if got := strings.Count(out, "Cancelled."); got != 2 {
		t.Errorf("Cancelled reported %d times, want 2", got)
	}
}

func TestShell_RejectsInvalidText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.txt")
	svc, out := runScript(t, path,
		"1", "a|b", "/0",
		"1", "   ", "/0",
		"1", "*open", "/0",
	)

	if got := len(svc.All()); got != 1 {
		t.Errorf("stored %d messages, want 1", got)
	}
	for _, want := range []string{"'|' character is not allowed", "cannot be empty", "odd number of '*'"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestShell_EditAndDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.txt")
	svc, out := runScript(t, path,
		"1", "first", "/0",
		"1", "second", "/0",
		"5", "7",
		"5", "-1",
		"5", "1", "changed", "/0",
		"8", "2",
		"8", "2",
	)

	msgs := svc.All()
	if len(msgs) != 1 || msgs[0].ID != 1 || msgs[0].Text != "changed" {
		t.Fatalf("messages = %+v, want only id 1 with changed text", msgs)
	}
	if got := strings.Count(out, "No message with ID"); got != 2 {
		t.Errorf("not-found reported %d times, want 2", got)
	}
	if !strings.Contains(out, "Invalid ID") {
		t.Errorf("negative id not reported:\n%s", out)
	}
}

func TestShell_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.txt")
	svc, out := runScript(t, path,
		"1", "keep", "/0",
		"6", "maybe",
		"6", "YES",
	)

	if got := len(svc.All()); got != 0 {
		t.Errorf("stored %d messages, want 0", got)
	}
	if !strings.Contains(out, "Clear cancelled.") || !strings.Contains(out, "Chat cleared.") {
		t.Errorf("clear flow output unexpected:\n%s", out)
	}
}

func TestShell_SearchAndStats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.txt")
	_, out := runScript(t, path,
		"1", "Hello *world*!", "/0",
		"7", "world",
		"7", "absent",
		"7", "",
		"9",
	)

	for _, want := range []string{"Search results", "No messages found.", "keyword cannot be empty", "Chat statistics"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestShell_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.txt")

	_, out := runScript(t, path,
		"4",
		"1", "persist me", "/0",
		"0", "y",
	)
	if !strings.Contains(out, "File not found") {
		t.Errorf("missing file not reported:\n%s", out)
	}
	if !strings.Contains(out, "Saved 1 messages") {
		t.Errorf("save on exit not reported:\n%s", out)
	}

	svc, out := runScript(t, path, "4", "2")
	if got := len(svc.All()); got != 1 {
		t.Fatalf("loaded %d messages, want 1", got)
	}
	if !strings.Contains(out, "Loaded 1 messages.") || !strings.Contains(out, "persist me") {
		t.Errorf("load output unexpected:\n%s", out)
	}
}

func TestShell_ExitNeedsAnswer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.txt")
	_, out := runScript(t, path, "0", "maybe", "0", "no")

	if !strings.Contains(out, "Please answer y or n.") {
		t.Errorf("bad answer not reported:\n%s", out)
	}
	if got := strings.Count(out, "Goodbye!"); got != 1 {
		t.Errorf("Goodbye shown %d times, want 1", got)
	}
}

func TestShell_EOFExitsWithoutSaving(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.txt")
	_, out := runScript(t, path, "1", "unsaved")

	if !strings.Contains(out, "exiting without saving") {
		t.Errorf("EOF notice missing:\n%s", out)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("archive written on EOF: %v", err)
	}
}

func TestScannerReader(t *testing.T) {
	var out bytes.Buffer
	r := NewScannerReader(strings.NewReader("one\r\ntwo\n"), &out)

	for _, want := range []string{"one", "two"} {
		got, err := r.ReadLine("> ")
		if err != nil {
			t.Fatalf("ReadLine() error = %v", err)
		}
		if got != want {
			t.Errorf("ReadLine() = %q, want %q", got, want)
		}
	}
	if _, err := r.ReadLine("> "); !errors.Is(err, io.EOF) {
		t.Errorf("ReadLine() error = %v, want io.EOF", err)
	}
	if out.String() != "> > > " {
		t.Errorf("prompts = %q", out.String())
	}
}
