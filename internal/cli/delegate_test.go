// pattern: Imperative Shell
package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"framedock/internal/instance"
)

// fakeInstance makes dir look like the data directory of a running
// instance served by handler, and returns dir.
func fakeInstance(t *testing.T, handler http.Handler) string {
	t.Helper()
	dir := t.TempDir()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	if handler != nil {
		mux.Handle("/api/layouts/", handler)
		mux.Handle("/api/layouts", handler)
	}
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	fl, err := instance.Lock(dir)
	if err != nil {
		t.Fatalf("failed to lock: %v", err)
	}
	t.Cleanup(func() { instance.Cleanup(dir, fl) })

	if err := instance.WritePort(dir, server.Listener.Addr().String()); err != nil {
		t.Fatalf("failed to write port file: %v", err)
	}
	return dir
}

type captured struct {
	stdout   bytes.Buffer
	stderr   bytes.Buffer
	exitCode int
}

func testDelegate(configDir string) (Delegate, *captured) {
	c := &captured{exitCode: -1}
	return Delegate{
		ConfigDir: configDir,
		ExitFunc:  func(code int) { c.exitCode = code },
		Stdout:    &c.stdout,
		Stderr:    &c.stderr,
	}, c
}

func TestDelegate_Run_NoInstance_ExitsCode2(t *testing.T) {
	d, out := testDelegate(t.TempDir())

	d.Run(func(client *instance.Client) ([]byte, error) {
		t.Error("fn should not be called without an instance")
		return nil, nil
	})

	if out.exitCode != 2 {
		t.Errorf("exit code = %d, want 2", out.exitCode)
	}
	if !strings.Contains(out.stderr.String(), "no running framedock instance found") {
		t.Errorf("stderr should name the missing instance, got: %s", out.stderr.String())
	}
}

func TestDelegate_Run_Success(t *testing.T) {
	dir := fakeInstance(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"layouts":[],"selected":0}`))
	}))
	d, out := testDelegate(dir)

	called := false
	d.Run(func(client *instance.Client) ([]byte, error) {
		called = true
		return client.Layouts()
	})

	if !called {
		t.Error("client function was not called")
	}
	if out.exitCode != -1 {
		t.Errorf("exit code = %d, want no exit call", out.exitCode)
	}
	if out.stderr.Len() > 0 {
		t.Errorf("stderr should be empty on success, got: %s", out.stderr.String())
	}
	if got := out.stdout.String(); got != `{"layouts":[],"selected":0}` {
		t.Errorf("stdout = %q", got)
	}
}

func TestDelegate_Run_ServerError_PrintsMessage(t *testing.T) {
	dir := fakeInstance(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"frame not found"}`))
	}))
	d, out := testDelegate(dir)

	d.Run(func(client *instance.Client) ([]byte, error) {
		return client.Assign("nope", 1)
	})

	if out.exitCode != 1 {
		t.Errorf("exit code = %d, want 1", out.exitCode)
	}
	if got := out.stderr.String(); got != "error: frame not found\n" {
		t.Errorf("stderr = %q, want the server message only", got)
	}
}

func TestDelegate_Run_LocalError_ExitsCode1(t *testing.T) {
	d, out := testDelegate(fakeInstance(t, nil))

	d.Run(func(client *instance.Client) ([]byte, error) {
		return nil, errors.New("write preview.png: disk full")
	})

	if out.exitCode != 1 {
		t.Errorf("exit code = %d, want 1", out.exitCode)
	}
	if !strings.Contains(out.stderr.String(), "disk full") {
		t.Errorf("stderr = %q", out.stderr.String())
	}
}

func TestPrintJSON_NonTerminal_WritesRaw(t *testing.T) {
	for _, data := range []string{`{"key":"value","number":42}`, `not json`} {
		buf := &bytes.Buffer{}
		if err := PrintJSON(buf, []byte(data)); err != nil {
			t.Fatalf("PrintJSON returned error: %v", err)
		}
		if buf.String() != data {
			t.Errorf("PrintJSON output = %q, want %q", buf.String(), data)
		}
	}

	var parsed map[string]any
	buf := &bytes.Buffer{}
	_ = PrintJSON(buf, []byte(`{"number":42}`))
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil || parsed["number"] != float64(42) {
		t.Errorf("PrintJSON output is not the original JSON: %s", buf.String())
	}
}
