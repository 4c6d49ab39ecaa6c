package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DirStore serves pointers from a local directory. The pointer path is
// resolved below Root and may not escape it.
type DirStore struct {
	Root string
}

// NewDirStore creates a DirStore rooted at root.
func NewDirStore(root string) *DirStore {
	return &DirStore{Root: root}
}

// Open implements Store.
func (s *DirStore) Open(ctx context.Context, pointer string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{Pointer: pointer, Err: err}
	}

	_, path, err := Split(pointer)
	if err != nil {
		return nil, &FetchError{Pointer: pointer, Err: err}
	}

	rel := filepath.Clean(filepath.FromSlash(strings.TrimPrefix(path, "/")))
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, &FetchError{Pointer: pointer, Err: fmt.Errorf("path %q is outside the store", path)}
	}

	f, err := os.Open(filepath.Join(s.Root, rel))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, &FetchError{Pointer: pointer, Err: err}
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, &FetchError{Pointer: pointer, Err: err}
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, &FetchError{Pointer: pointer, Err: fmt.Errorf("%s is a directory", path)}
	}

	return f, nil
}

var _ Store = (*DirStore)(nil)
