// Package storage selects an artifact store from configuration.
package storage

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/nmlcell/internal/adapters/driven/storage/fs"
	"github.com/custodia-labs/nmlcell/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/nmlcell/internal/adapters/driven/storage/s3"
	"github.com/custodia-labs/nmlcell/internal/core/domain"
	"github.com/custodia-labs/nmlcell/internal/core/ports/driven"
)

// Configuration keys read by Open.
const (
	KeyDriver      = "storage.driver"
	KeyFSRoot      = "storage.fs.root"
	KeyS3Bucket    = "storage.s3.bucket"
	KeyS3Region    = "storage.s3.region"
	KeyS3Endpoint  = "storage.s3.endpoint"
	KeyS3PathStyle = "storage.s3.path_style"
	KeyS3Prefix    = "storage.s3.prefix"
)

// Open returns the artifact store named by storage.driver, fs by default.
// A relative fs root is resolved against workdir.
func Open(ctx context.Context, cfg driven.ConfigStore, workdir string) (driven.ArtifactStore, error) {
	driver := driven.StorageDriver(cfg.GetString(KeyDriver))
	if driver == "" {
		driver = driven.DriverFS
	}

	switch driver {
	case driven.DriverFS:
		root := cfg.GetString(KeyFSRoot)
		if root == "" {
			root = workdir
		} else if !filepath.IsAbs(root) && workdir != "" {
			root = filepath.Join(workdir, root)
		}
		return fs.NewArtifactStore(root)
	case driven.DriverMemory:
		return memory.NewArtifactStore(), nil
	case driven.DriverS3:
		return s3.NewArtifactStore(ctx, s3.Config{
			Bucket:    cfg.GetString(KeyS3Bucket),
			Region:    cfg.GetString(KeyS3Region),
			Endpoint:  cfg.GetString(KeyS3Endpoint),
			PathStyle: cfg.GetBool(KeyS3PathStyle),
			Prefix:    cfg.GetString(KeyS3Prefix),
		})
	default:
		return nil, fmt.Errorf("%w: storage driver %q", domain.ErrUnsupportedType, driver)
	}
}
