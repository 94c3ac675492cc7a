// pattern: Imperative Shell

// Package store persists the layout set as YAML.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"framedock/internal/layout"
	"framedock/internal/logging"
)

// InvalidLayoutError reports a stored layout that failed validation and was
// replaced or dropped on load.
type InvalidLayoutError struct {
	Index    int
	Name     string
	Replaced bool
	Err      error
}

func (e *InvalidLayoutError) Error() string {
	action := "dropped"
	if e.Replaced {
		action = "replaced by default"
	}
	return fmt.Sprintf("layout %d (%q) %s: %v", e.Index, e.Name, action, e.Err)
}

func (e *InvalidLayoutError) Unwrap() error { return e.Err }

// Recoverable reports whether every error in err is an InvalidLayoutError,
// meaning the set returned by Load alongside it is usable.
func Recoverable(err error) bool {
	if err == nil {
		return true
	}
	for _, e := range multierr.Errors(err) {
		var invalid *InvalidLayoutError
		if !errors.As(e, &invalid) {
			return false
		}
	}
	return true
}

// Store reads and writes one layouts file.
type Store struct {
	path   string
	logger *logging.ScopedLogger

	mu        sync.Mutex
	lastSaved []byte
}

// New creates a store for path. The file need not exist.
func New(path string, logger *logging.ScopedLogger) *Store {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Store{path: path, logger: logger}
}

// Path returns the layouts file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) lockPath() string {
	return s.path + ".lock"
}

// Load reads the layouts file. A missing file yields the default set. A
// file that does not parse yields the default set and the parse error.
// Layouts that fail validation are replaced by the default layout with the
// same name, or dropped, and reported as InvalidLayoutError values.
func (s *Store) Load() (layout.Set, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return layout.DefaultSet(), nil
		}
		return layout.DefaultSet(), fmt.Errorf("read layouts: %w", err)
	}
	return Decode(data)
}

// Decode parses a YAML layout set and repairs invalid layouts as Load
// describes.
func Decode(data []byte) (layout.Set, error) {
	var set layout.Set
	if err := yaml.Unmarshal(data, &set); err != nil {
		return layout.DefaultSet(), fmt.Errorf("parse layouts: %w", err)
	}

	defaults := layout.DefaultSet()
	var errs error
	kept := make([]layout.Layout, 0, len(set.Layouts))
	for i, l := range set.Layouts {
		verr := layout.Validate(l)
		if verr == nil {
			kept = append(kept, l)
			continue
		}
		invalid := &InvalidLayoutError{Index: i, Name: l.Name, Err: verr}
		if j, ok := defaults.Find(l.Name); ok {
			kept = append(kept, defaults.Layouts[j])
			invalid.Replaced = true
		}
		errs = multierr.Append(errs, invalid)
	}

	if len(kept) == 0 {
		return defaults, errs
	}
	set.Layouts = kept
	set.Selected = set.ActiveIndex()
	return set, errs
}

// Encode marshals a set the way Save writes it.
func Encode(set layout.Set) ([]byte, error) {
	data, err := yaml.Marshal(set)
	if err != nil {
		return nil, fmt.Errorf("encode layouts: %w", err)
	}
	return data, nil
}

// Save writes set atomically under an exclusive lock on the sibling lock
// file. Saving bytes identical to the previous Save is skipped. Returns
// whether the file was written.
func (s *Store) Save(set layout.Set) (bool, error) {
	data, err := Encode(set)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if bytes.Equal(data, s.lastSaved) {
		if _, err := os.Stat(s.path); err == nil {
			return false, nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return false, fmt.Errorf("create layouts directory: %w", err)
	}

	fl := flock.New(s.lockPath())
	if err := fl.Lock(); err != nil {
		return false, fmt.Errorf("lock layouts: %w", err)
	}
	defer func() { _ = fl.Unlock() }()

	if err := writeAtomic(s.path, data); err != nil {
		return false, err
	}
	s.lastSaved = data
	s.logger.Debug("layouts saved", "path", s.path, "layouts", len(set.Layouts), "bytes", len(data))
	return true, nil
}

// IsOwnWrite reports whether data is what this store last saved.
func (s *Store) IsOwnWrite(data []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSaved != nil && bytes.Equal(data, s.lastSaved)
}

// Reset writes the default set.
func (s *Store) Reset() error {
	_, err := s.Save(layout.DefaultSet())
	return err
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace layouts file: %w", err)
	}
	return nil
}
