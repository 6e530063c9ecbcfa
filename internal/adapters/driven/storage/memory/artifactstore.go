package memory

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/nmlcell/internal/core/domain"
	"github.com/custodia-labs/nmlcell/internal/core/ports/driven"
)

// Ensure ArtifactStore implements the interface.
var _ driven.ArtifactStore = (*ArtifactStore)(nil)

type artifact struct {
	data []byte
	info driven.ArtifactInfo
}

// ArtifactStore is an in-memory implementation of driven.ArtifactStore.
// It backs dry runs and tests.
type ArtifactStore struct {
	mu        sync.RWMutex
	artifacts map[string]artifact
}

// NewArtifactStore creates an empty in-memory artifact store.
func NewArtifactStore() *ArtifactStore {
	return &ArtifactStore{
		artifacts: make(map[string]artifact),
	}
}

// Put stores a copy of r under key, replacing any previous artifact.
func (s *ArtifactStore) Put(_ context.Context, key string, r io.Reader, opts driven.PutOptions) (driven.ArtifactInfo, error) {
	if strings.TrimSpace(key) == "" {
		return driven.ArtifactInfo{}, fmt.Errorf("%w: empty key", domain.ErrInvalidInput)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return driven.ArtifactInfo{}, err
	}
	sum := sha256.Sum256(data)
	info := driven.ArtifactInfo{
		Key:          key,
		Size:         int64(len(data)),
		ContentType:  opts.ContentType,
		ETag:         hex.EncodeToString(sum[:]),
		LastModified: time.Now().UTC(),
		Metadata:     cloneMetadata(opts.Metadata),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifacts[key] = artifact{data: data, info: info}
	return copyInfo(info), nil
}

// Get returns a reader over a copy of the stored bytes.
func (s *ArtifactStore) Get(_ context.Context, key string) (driven.ArtifactInfo, io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.artifacts[key]
	if !ok {
		return driven.ArtifactInfo{}, nil, fmt.Errorf("%w: %s", domain.ErrNotFound, key)
	}
	data := make([]byte, len(a.data))
	copy(data, a.data)
	return copyInfo(a.info), io.NopCloser(bytes.NewReader(data)), nil
}

// Head returns the metadata of key.
func (s *ArtifactStore) Head(_ context.Context, key string) (driven.ArtifactInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.artifacts[key]
	if !ok {
		return driven.ArtifactInfo{}, fmt.Errorf("%w: %s", domain.ErrNotFound, key)
	}
	return copyInfo(a.info), nil
}

// Delete removes key.
func (s *ArtifactStore) Delete(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.artifacts[key]; !ok {
		return false, nil
	}
	delete(s.artifacts, key)
	return true, nil
}

// List returns artifacts whose key starts with prefix, sorted by key.
func (s *ArtifactStore) List(_ context.Context, prefix string) ([]driven.ArtifactInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]driven.ArtifactInfo, 0, len(s.artifacts))
	for key, a := range s.artifacts {
		if strings.HasPrefix(key, prefix) {
			result = append(result, copyInfo(a.info))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key < result[j].Key })
	return result, nil
}

// Driver returns driven.DriverMemory.
func (s *ArtifactStore) Driver() driven.StorageDriver {
	return driven.DriverMemory
}

// Bytes returns the stored contents of key. Intended for tests.
func (s *ArtifactStore) Bytes(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.artifacts[key]
	if !ok {
		return nil, false
	}
	data := make([]byte, len(a.data))
	copy(data, a.data)
	return data, true
}

func copyInfo(in driven.ArtifactInfo) driven.ArtifactInfo {
	in.Metadata = cloneMetadata(in.Metadata)
	return in
}

func cloneMetadata(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
