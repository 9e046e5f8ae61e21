package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const defaultLogFile = "marquee.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
	sink         io.Writer
)

// Error writes a non-fatal error to the shared log. Diagnostics here carry
// no functional contract; failures to log are reported on stderr and
// otherwise ignored.
func Error(err error) {
	if err == nil {
		return
	}
	Trace("error", map[string]interface{}{"error": err.Error()})
}

// SetTraceEnabled toggles emission of structured trace entries. Error
// entries are always written.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// SetSink redirects entries to an arbitrary writer instead of the log file.
// Tests use this to capture output.
func SetSink(w io.Writer) {
	mu.Lock()
	sink = w
	mu.Unlock()
}

// Trace appends a structured JSON line to the shared log when tracing is
// enabled. Error events bypass the toggle.
func Trace(event string, payload interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if !traceEnabled && event != "error" {
		return
	}

	entry := struct {
		Time    time.Time   `json:"time"`
		Event   string      `json:"event"`
		Payload interface{} `json:"payload,omitempty"`
	}{
		Time:    time.Now().UTC(),
		Event:   event,
		Payload: payload,
	}

	if sink != nil {
		if err := json.NewEncoder(sink).Encode(entry); err != nil {
			fmt.Fprintf(os.Stderr, "trace encoding failed: %v\n", err)
		}
		return
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "trace logging failed: %v\n", err)
		return
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(entry); err != nil {
		fmt.Fprintf(os.Stderr, "trace encoding failed: %v\n", err)
	}
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}
