// Package source resolves data pointers such as
// "data://ons/enrichment/location_lookup.csv" to byte streams.
//
// A pointer is "<scheme>://<path>". Stores are selected by scheme and passed
// to consumers explicitly; there is no package-level client.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

// Well-known pointer schemes.
const (
	SchemeData    = "data"
	SchemeS3Input = "s3+input"
	SchemeFile    = "file"
	SchemeHTTP    = "http"
	SchemeHTTPS   = "https"
)

// Store opens the data behind a pointer.
type Store interface {
	Open(ctx context.Context, pointer string) (io.ReadCloser, error)
}

// FetchError reports that a pointer could not be opened.
type FetchError struct {
	Pointer string
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("Unable to get datafile %s: %v", e.Pointer, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ErrNotFound is wrapped by FetchError when the pointer names nothing.
var ErrNotFound = errors.New("not found")

// Split returns the scheme and path of a pointer.
func Split(pointer string) (scheme, path string, err error) {
	scheme, path, ok := strings.Cut(pointer, "://")
	if !ok || scheme == "" {
		return "", "", fmt.Errorf("invalid data pointer %q: expected <scheme>://<path>", pointer)
	}
	return scheme, path, nil
}

// SurveyPointer returns the pointer of an uploaded survey object.
func SurveyPointer(s3Pointer string) string {
	return SchemeS3Input + "://" + strings.TrimPrefix(s3Pointer, "/")
}

// Mux dispatches pointers to stores by scheme.
type Mux struct {
	mu     sync.RWMutex
	stores map[string]Store
}

// NewMux creates an empty Mux.
func NewMux() *Mux {
	return &Mux{stores: make(map[string]Store)}
}

// Handle registers store for scheme, replacing any previous registration.
func (m *Mux) Handle(scheme string, store Store) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stores[scheme] = store
}

// Schemes returns the registered schemes (sorted).
func (m *Mux) Schemes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.stores))
	for name := range m.stores {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open implements Store.
func (m *Mux) Open(ctx context.Context, pointer string) (io.ReadCloser, error) {
	scheme, _, err := Split(pointer)
	if err != nil {
		return nil, &FetchError{Pointer: pointer, Err: err}
	}

	m.mu.RLock()
	store, ok := m.stores[scheme]
	m.mu.RUnlock()
	if !ok {
		return nil, &FetchError{
			Pointer: pointer,
			Err:     fmt.Errorf("no store for scheme %q (available: %v)", scheme, m.Schemes()),
		}
	}

	return store.Open(ctx, pointer)
}

var _ Store = (*Mux)(nil)
