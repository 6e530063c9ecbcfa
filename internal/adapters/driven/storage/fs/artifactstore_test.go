package fs

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/nmlcell/internal/core/domain"
	"github.com/custodia-labs/nmlcell/internal/core/ports/driven"
)

func newStore(t *testing.T) *ArtifactStore {
	t.Helper()
	s, err := NewArtifactStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestArtifactStore_PutWritesPlainFile(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	info, err := s.Put(ctx, "KC.cell.nml", strings.NewReader("<neuroml/>"), driven.PutOptions{
		Metadata: map[string]string{"seed": "1412"},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(10), info.Size)
	assert.Len(t, info.ETag, 64)
	assert.Equal(t, "1412", info.Metadata["seed"])

	data, err := os.ReadFile(filepath.Join(s.Root(), "KC.cell.nml"))
	require.NoError(t, err)
	assert.Equal(t, "<neuroml/>", string(data))

	entries, err := os.ReadDir(s.Root())
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no sidecar or temp files")
}

func TestArtifactStore_PutOverwritesAndCreatesDirs(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	_, err := s.Put(ctx, "out/GGN.cell.nml", strings.NewReader("first"), driven.PutOptions{})
	require.NoError(t, err)
	_, err = s.Put(ctx, "out/GGN.cell.nml", strings.NewReader("second"), driven.PutOptions{})
	require.NoError(t, err)

	_, rc, err := s.Get(ctx, "out/GGN.cell.nml")
	require.NoError(t, err)
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	assert.Equal(t, "second", string(body))
}

func TestArtifactStore_ReadsExistingFiles(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(s.Root(), "GGN.morph.cell.nml"), []byte("<neuroml id=\"x\"/>"), 0o644))

	info, err := s.Head(ctx, "GGN.morph.cell.nml")

	require.NoError(t, err)
	assert.Equal(t, int64(17), info.Size)
}

func TestArtifactStore_NotFound(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	_, _, err := s.Get(ctx, "GGN.morph.cell.nml")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.Head(ctx, "GGN.morph.cell.nml")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, os.Mkdir(filepath.Join(s.Root(), "channels"), 0o755))
	_, err = s.Head(ctx, "channels")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	deleted, err := s.Delete(ctx, "GGN.morph.cell.nml")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestArtifactStore_RejectsEscapingKeys(t *testing.T) {
	s := newStore(t)
	for _, key := range []string{"", "/etc/passwd", "../x.nml", "a/../../x.nml"} {
		_, err := s.Put(context.Background(), key, strings.NewReader(""), driven.PutOptions{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, key)
	}
}

func TestArtifactStore_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	for _, key := range []string{"KC.cell.nml", "GGN.cell.nml", "channels/pas.channel.nml"} {
		_, err := s.Put(ctx, key, strings.NewReader(key), driven.PutOptions{})
		require.NoError(t, err)
	}

	all, err := s.List(ctx, "")
	require.NoError(t, err)
	keys := make([]string, 0, len(all))
	for _, info := range all {
		keys = append(keys, info.Key)
	}
	assert.Equal(t, []string{"GGN.cell.nml", "KC.cell.nml", "channels/pas.channel.nml"}, keys)

	channels, err := s.List(ctx, "channels/")
	require.NoError(t, err)
	assert.Len(t, channels, 1)

	deleted, err := s.Delete(ctx, "KC.cell.nml")
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, driven.DriverFS, s.Driver())
}
