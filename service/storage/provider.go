package storage

import (
	"context"

	"tourjudge/etc"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Provider is the interface for artifact storage backends. Grading runs
// persist solver outputs, logs and result files through it.
type Provider interface {
	// Read reads the object from storage.
	Read(ctx context.Context, path string) ([]byte, error)

	// Write writes the object to storage, creating parents as needed.
	Write(ctx context.Context, path string, data []byte) error
}

// Default is the provider selected by the configuration.
var Default Provider

// FromConfig creates a storage provider from the given config.
func FromConfig(cfg *etc.Configuration) (Provider, error) {
	switch cfg.Storage.Type {
	case "local":
		return NewLocal(cfg.Storage.Local.Path), nil
	case "minio":
		return NewMinIO(cfg)
	default:
		return nil, errors.Errorf("invalid storage type: %s", cfg.Storage.Type)
	}
}

func init() {
	var err error
	if Default, err = FromConfig(etc.Config); err != nil {
		log.WithError(err).Fatal("Failed to initialize storage")
	}
	log.WithField("type", etc.Config.Storage.Type).Info("Storage initialized")
}
