// pattern: Imperative Shell
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"framedock/internal/instance"
)

// Delegate coordinates discovering a running framedock instance and
// delegating a CLI command to it via HTTP. It handles error classification
// (no instance vs other errors) and exit code logic.
type Delegate struct {
	// ConfigDir is the config directory for lock/port file discovery.
	ConfigDir string

	// ExitFunc is called to exit the process. Defaults to os.Exit.
	// Overridable for testing.
	ExitFunc func(int)

	// Stderr is where error messages are written. Defaults to os.Stderr.
	// Overridable for testing.
	Stderr io.Writer

	// Stdout receives command output. Defaults to os.Stdout.
	Stdout io.Writer

	// ClientTimeout is the HTTP client timeout. Defaults to 10 seconds.
	ClientTimeout time.Duration
}

func (d *Delegate) defaults() {
	if d.ExitFunc == nil {
		d.ExitFunc = os.Exit
	}
	if d.Stderr == nil {
		d.Stderr = os.Stderr
	}
	if d.Stdout == nil {
		d.Stdout = os.Stdout
	}
	if d.ClientTimeout == 0 {
		d.ClientTimeout = 10 * time.Second
	}
}

// discover initializes defaults, discovers the running instance, and returns an HTTP client.
// On discovery error, prints error message, calls ExitFunc, and returns nil.
func (d *Delegate) discover() *instance.Client {
	d.defaults()

	baseURL, err := instance.Discover(ResolveDataDir(d.ConfigDir))
	if err != nil {
		fmt.Fprintf(d.Stderr, "error: %v\n", err)
		if errors.Is(err, instance.ErrNoInstance) {
			d.ExitFunc(2)
		} else {
			d.ExitFunc(1)
		}
		return nil
	}

	return instance.NewClientWithTimeout(baseURL, d.ClientTimeout)
}

// Run executes a delegated command by discovering the running instance and
// invoking fn with an HTTP client targeting it. The bytes fn returns are
// written to Stdout as JSON.
//
// Exit codes:
// - 2: no running framedock instance found
// - 1: any other error (connection, rejected request, etc.)
// - 0: success (fn returned nil)
func (d *Delegate) Run(fn func(*instance.Client) ([]byte, error)) {
	client := d.discover()
	if client == nil {
		return
	}

	data, err := fn(client)
	if err != nil {
		// Server rejections carry a message meant for the user.
		var statusErr *instance.StatusError
		if errors.As(err, &statusErr) {
			fmt.Fprintf(d.Stderr, "error: %s\n", statusErr.Message)
		} else {
			fmt.Fprintf(d.Stderr, "error: %v\n", err)
		}
		d.ExitFunc(1)
		return
	}

	if err := PrintJSON(d.Stdout, data); err != nil {
		fmt.Fprintf(d.Stderr, "error: %v\n", err)
		d.ExitFunc(1)
	}
}

// Client discovers the running instance and returns an HTTP client for it.
// Handles error classification and calls ExitFunc on failure.
// Returns nil if instance discovery fails (caller should handle nil check).
func (d *Delegate) Client() *instance.Client {
	return d.discover()
}

// PrintJSON writes JSON data to w. Terminals get indented output; anything
// else, or data that does not parse, gets the raw bytes.
func PrintJSON(w io.Writer, data []byte) error {
	if !isTerminal(w) {
		_, err := w.Write(data)
		return err
	}

	var obj any
	if err := json.Unmarshal(data, &obj); err != nil {
		_, err := w.Write(data)
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(obj)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
