// pattern: Imperative Shell
package instance

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

const healthTimeout = 2 * time.Second

// ErrNoInstance is returned by Discover when nothing holds the lock.
var ErrNoInstance = errors.New("no running framedock instance found (start framedock first)")

// Discover checks whether a running framedock instance exists and returns
// its base URL (e.g. "http://127.0.0.1:12345").
func Discover(dataDir string) (string, error) {
	// If we can take the lock, nobody else holds it.
	fl := flock.New(filepath.Join(dataDir, lockFileName))
	locked, err := fl.TryLock()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNoInstance
		}
		return "", fmt.Errorf("failed to check lock: %w", err)
	}
	if locked {
		_ = fl.Unlock()
		return "", ErrNoInstance
	}

	data, err := os.ReadFile(filepath.Join(dataDir, portFileName))
	if err != nil {
		return "", fmt.Errorf("framedock instance detected but port file missing (try 'framedock cleanup'): %w", err)
	}

	addr := strings.TrimSpace(string(data))
	if addr == "" {
		return "", fmt.Errorf("framedock port file is empty (try 'framedock cleanup')")
	}

	baseURL := "http://" + addr

	client := &http.Client{Timeout: healthTimeout}
	resp, err := client.Get(baseURL + "/api/health")
	if err != nil {
		return "", fmt.Errorf("framedock instance not responding (try 'framedock cleanup'): %w", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("framedock health check failed (status %d)", resp.StatusCode)
	}

	return baseURL, nil
}
