package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// HTTPStore fetches http and https pointers with GET.
type HTTPStore struct {
	Client *http.Client
}

// NewHTTPStore creates an HTTPStore. A nil client means http.DefaultClient.
func NewHTTPStore(client *http.Client) *HTTPStore {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPStore{Client: client}
}

// Open implements Store.
func (s *HTTPStore) Open(ctx context.Context, pointer string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pointer, nil)
	if err != nil {
		return nil, &FetchError{Pointer: pointer, Err: err}
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, &FetchError{Pointer: pointer, Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		_ = resp.Body.Close()
		return nil, &FetchError{Pointer: pointer, Err: fmt.Errorf("%w: %s", ErrNotFound, resp.Status)}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		_ = resp.Body.Close()
		return nil, &FetchError{Pointer: pointer, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	return resp.Body, nil
}

var _ Store = (*HTTPStore)(nil)
