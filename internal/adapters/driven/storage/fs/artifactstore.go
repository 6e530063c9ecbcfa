// Package fs stores artifacts as plain files under a root directory.
//
// Files are written exactly as given, with no sidecars, so the root can be
// the working directory that also holds hand-exported morphologies.
// Content type and metadata are therefore not kept across reads.
package fs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/nmlcell/internal/core/domain"
	"github.com/custodia-labs/nmlcell/internal/core/ports/driven"
)

// Ensure ArtifactStore implements the interface.
var _ driven.ArtifactStore = (*ArtifactStore)(nil)

// ArtifactStore implements driven.ArtifactStore on the local filesystem.
type ArtifactStore struct {
	root string
}

// NewArtifactStore returns a store rooted at root, "." if empty.
// The directory is created if needed.
func NewArtifactStore(root string) (*ArtifactStore, error) {
	if root == "" {
		root = "."
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &ArtifactStore{root: root}, nil
}

// Root returns the directory keys are resolved against.
func (s *ArtifactStore) Root() string {
	return s.root
}

// Driver returns driven.DriverFS.
func (s *ArtifactStore) Driver() driven.StorageDriver {
	return driven.DriverFS
}

// sanitizeKey rejects keys that would escape the root.
func sanitizeKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("%w: empty key", domain.ErrInvalidInput)
	}
	if strings.HasPrefix(key, "/") || filepath.IsAbs(key) {
		return "", fmt.Errorf("%w: absolute key %q", domain.ErrInvalidInput, key)
	}
	clean := filepath.ToSlash(filepath.Clean(key))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%w: key %q escapes the store", domain.ErrInvalidInput, key)
	}
	return clean, nil
}

// Path returns the file backing key.
func (s *ArtifactStore) Path(key string) (string, error) {
	k, err := sanitizeKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, filepath.FromSlash(k)), nil
}

// Put writes r to a temporary file and renames it over key.
func (s *ArtifactStore) Put(_ context.Context, key string, r io.Reader, opts driven.PutOptions) (driven.ArtifactInfo, error) {
	path, err := s.Path(key)
	if err != nil {
		return driven.ArtifactInfo{}, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return driven.ArtifactInfo{}, err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return driven.ArtifactInfo{}, err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	h := sha256.New()
	size, err := io.Copy(io.MultiWriter(tmp, h), r)
	if err != nil {
		_ = tmp.Close()
		return driven.ArtifactInfo{}, err
	}
	if err := tmp.Close(); err != nil {
		return driven.ArtifactInfo{}, err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return driven.ArtifactInfo{}, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return driven.ArtifactInfo{}, err
	}

	st, err := os.Stat(path)
	if err != nil {
		return driven.ArtifactInfo{}, err
	}
	return driven.ArtifactInfo{
		Key:          key,
		Size:         size,
		ContentType:  opts.ContentType,
		ETag:         hex.EncodeToString(h.Sum(nil)),
		LastModified: st.ModTime().UTC(),
		Metadata:     opts.Metadata,
	}, nil
}

// Get opens the file backing key.
func (s *ArtifactStore) Get(_ context.Context, key string) (driven.ArtifactInfo, io.ReadCloser, error) {
	path, err := s.Path(key)
	if err != nil {
		return driven.ArtifactInfo{}, nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return driven.ArtifactInfo{}, nil, notFound(key, err)
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return driven.ArtifactInfo{}, nil, err
	}
	if st.IsDir() {
		_ = f.Close()
		return driven.ArtifactInfo{}, nil, fmt.Errorf("%w: %s is a directory", domain.ErrNotFound, key)
	}
	return infoFor(key, st), f, nil
}

// Head stats the file backing key.
func (s *ArtifactStore) Head(_ context.Context, key string) (driven.ArtifactInfo, error) {
	path, err := s.Path(key)
	if err != nil {
		return driven.ArtifactInfo{}, err
	}
	st, err := os.Stat(path)
	if err != nil {
		return driven.ArtifactInfo{}, notFound(key, err)
	}
	if st.IsDir() {
		return driven.ArtifactInfo{}, fmt.Errorf("%w: %s is a directory", domain.ErrNotFound, key)
	}
	return infoFor(key, st), nil
}

// Delete removes the file backing key.
func (s *ArtifactStore) Delete(_ context.Context, key string) (bool, error) {
	path, err := s.Path(key)
	if err != nil {
		return false, err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// List walks the root and returns files whose key starts with prefix.
// Temporary files left by interrupted writes are skipped.
func (s *ArtifactStore) List(_ context.Context, prefix string) ([]driven.ArtifactInfo, error) {
	var infos []driven.ArtifactInfo
	err := filepath.WalkDir(s.root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".tmp-") {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}
		st, err := d.Info()
		if err != nil {
			return err
		}
		infos = append(infos, infoFor(key, st))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}

func infoFor(key string, st iofs.FileInfo) driven.ArtifactInfo {
	return driven.ArtifactInfo{
		Key:          key,
		Size:         st.Size(),
		LastModified: st.ModTime().UTC(),
	}
}

func notFound(key string, err error) error {
	if errors.Is(err, iofs.ErrNotExist) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, key)
	}
	return err
}
