package instance

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
)

// running holds the lock on a fresh data directory and writes addr as the
// port file, the way a live editor leaves it.
func running(t *testing.T, addr string) string {
	t.Helper()
	dir := t.TempDir()
	fl, err := Lock(dir)
	if err != nil {
		t.Fatalf("Lock() failed: %v", err)
	}
	t.Cleanup(func() { Cleanup(dir, fl) })
	if err := WritePort(dir, addr); err != nil {
		t.Fatalf("WritePort() failed: %v", err)
	}
	return dir
}

func healthServer(t *testing.T, status int) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/health" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv.Listener.Addr().String()
}

func TestDiscover_NoInstance(t *testing.T) {
	dir := t.TempDir()

	for _, d := range []string{dir, filepath.Join(dir, "missing")} {
		if _, err := Discover(d); !errors.Is(err, ErrNoInstance) {
			t.Errorf("Discover(%s) error = %v, want ErrNoInstance", d, err)
		}
	}
}

func TestDiscover_WithInstance(t *testing.T) {
	addr := healthServer(t, http.StatusOK)
	dir := running(t, addr)

	baseURL, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}
	if baseURL != "http://"+addr {
		t.Errorf("Discover() = %q, want %q", baseURL, "http://"+addr)
	}
}

func TestDiscover_BrokenInstance(t *testing.T) {
	tests := []struct {
		name string
		addr func(t *testing.T) string
		want string
	}{
		{
			name: "dead server",
			addr: func(t *testing.T) string { return "127.0.0.1:1" },
			want: "not responding",
		},
		{
			name: "empty port file",
			addr: func(t *testing.T) string { return "  \n" },
			want: "port file is empty",
		},
		{
			name: "unhealthy",
			addr: func(t *testing.T) string { return healthServer(t, http.StatusServiceUnavailable) },
			want: "status 503",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := running(t, tt.addr(t))

			_, err := Discover(dir)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Discover() error = %v, want %q", err, tt.want)
			}
			if errors.Is(err, ErrNoInstance) {
				t.Error("a locked data directory must not report ErrNoInstance")
			}
		})
	}
}
