package debug

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDisabledIsSilent(t *testing.T) {
	Disable()
	if IsEnabled() {
		t.Fatal("IsEnabled() = true after Disable()")
	}
	// Must not panic without a sink.
	Log("nothing %d", 1)
	Event("test", "noop")
	Error("test", errors.New("ignored"), "noop")
}

func TestEnableWriter(t *testing.T) {
	var buf bytes.Buffer
	EnableWriter(&buf)
	t.Cleanup(Disable)

	Event("message", "added", "id", 3)
	Error("message", errors.New("disk full"), "saving archive")
	Log("plain %s", "line")

	out := buf.String()
	for _, want := range []string{"msg=added", "component=message", "id=3", "disk full", "plain line", "session=" + SessionID()} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestEnableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "debug.log")
	if err := Enable(path); err != nil {
		t.Fatalf("Enable() error = %v", err)
	}
	Event("shell", "started")
	Disable()

	if LogPath() != path {
		t.Errorf("LogPath() = %q, want %q", LogPath(), path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(data), "debug session started") {
		t.Errorf("log missing session header:\n%s", data)
	}
	if !strings.Contains(string(data), "msg=started") {
		t.Errorf("log missing event:\n%s", data)
	}
}
