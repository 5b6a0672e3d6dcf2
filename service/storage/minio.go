package storage

import (
	"bytes"
	"context"
	"io"

	"tourjudge/etc"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"
	"github.com/pkg/errors"
)

// MinIO is a storage backend for minio.
type MinIO struct {
	client *minio.Client
	bucket string
}

// NewMinIO creates a new MinIO storage backend from the given config.
func NewMinIO(cfg *etc.Configuration) (*MinIO, error) {
	client, err := minio.New(
		cfg.Storage.MinIO.Endpoint,
		&minio.Options{
			Creds: credentials.NewStaticV4(
				cfg.Storage.MinIO.AccessKeyID, cfg.Storage.MinIO.SecretAccessKey, ""),
			Secure: cfg.Storage.MinIO.UseSSL,
		},
	)
	if err != nil {
		return nil, errors.Wrap(err, "initialize minio client")
	}
	log.Info("MinIO client initialized")
	return &MinIO{
		client: client,
		bucket: cfg.Storage.MinIO.Bucket,
	}, nil
}

// Read returns the bytes of the object.
func (m *MinIO) Read(ctx context.Context, path string) ([]byte, error) {
	reader, err := m.client.GetObject(ctx, m.bucket, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer func(reader *minio.Object) {
		if err := reader.Close(); err != nil {
			log.WithError(err).Error("Failed to close minio reader")
		}
	}(reader)
	return io.ReadAll(reader)
}

// Write writes the object to minio.
func (m *MinIO) Write(ctx context.Context, path string, data []byte) error {
	_, err := m.client.PutObject(
		ctx,
		m.bucket,
		path,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{},
	)
	return err
}
