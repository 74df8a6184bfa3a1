package storage

import (
	"context"
	"fmt"

	"servicedesk/internal/domain/servicerequest"
	"servicedesk/internal/shared/config"
)

// New builds the blob backend selected by cfg.Driver.
func New(ctx context.Context, cfg config.StorageConfig) (servicerequest.BlobStorage, error) {
	switch cfg.Driver {
	case "local":
		return NewLocalBlobStorage(cfg.Local.Root)
	case "s3":
		s, err := NewMinioBlobStorage(cfg.S3)
		if err != nil {
			return nil, err
		}
		if err := s.EnsureBucket(ctx, cfg.S3.Region); err != nil {
			return nil, err
		}
		return s, nil
	case "memory":
		return NewMemoryBlobStorage(), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}
