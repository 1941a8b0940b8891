package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/term"

	"github.com/guilhermegouw/chatlog/internal/debug"
)

// LineReader reads one line of user input at a time. It returns io.EOF when
// the input is exhausted or the user aborts with Ctrl-C / Ctrl-D.
type LineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

// NewReader picks a line-editing reader with history when in is a terminal
// and a plain buffered reader otherwise.
func NewReader(in *os.File, out io.Writer, historyPath string) LineReader {
	if term.IsTerminal(int(in.Fd())) {
		return NewTerminalReader(historyPath)
	}
	return NewScannerReader(in, out)
}

// ScannerReader reads lines from any io.Reader.
type ScannerReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewScannerReader wraps r. Prompts are written to out.
func NewScannerReader(r io.Reader, out io.Writer) *ScannerReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	return &ScannerReader{scanner: scanner, out: out}
}

// ReadLine implements LineReader.
func (r *ScannerReader) ReadLine(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(r.out, prompt)
	}
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSuffix(r.scanner.Text(), "\r"), nil
}

// Close implements LineReader.
func (r *ScannerReader) Close() error {
	return nil
}

// TerminalReader provides line editing and persistent history.
type TerminalReader struct {
	line        *liner.State
	historyFile string
}

// NewTerminalReader creates a terminal reader and loads history from
// historyPath when it exists.
func NewTerminalReader(historyPath string) *TerminalReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	r := &TerminalReader{line: line, historyFile: historyPath}
	r.loadHistory()
	return r
}

func (r *TerminalReader) loadHistory() {
	if r.historyFile == "" {
		return
	}
	//nolint:gosec // G304: history path comes from configuration.
	f, err := os.Open(r.historyFile)
	if err != nil {
		return
	}
	defer f.Close() //nolint:errcheck // Read-only file.
	if _, err := r.line.ReadHistory(f); err != nil {
		debug.Log("reading history %s: %v", r.historyFile, err)
	}
}

// ReadLine implements LineReader. Non-empty lines are added to history.
func (r *TerminalReader) ReadLine(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", io.EOF
		}
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves history and restores the terminal.
func (r *TerminalReader) Close() error {
	r.saveHistory()
	return r.line.Close()
}

func (r *TerminalReader) saveHistory() {
	if r.historyFile == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(r.historyFile), 0o750); err != nil {
		debug.Log("creating history directory: %v", err)
		return
	}
	//nolint:gosec // 0o600 keeps history private.
	f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		debug.Log("opening history %s: %v", r.historyFile, err)
		return
	}
	defer f.Close() //nolint:errcheck // Best effort.
	if _, err := r.line.WriteHistory(f); err != nil {
		debug.Log("writing history: %v", err)
	}
}
