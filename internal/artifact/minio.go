package artifact

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"
)

// MinioConfig describes an S3 compatible bucket.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

// MinioSink uploads artifacts into an object storage bucket.
type MinioSink struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewMinioSink creates the storage client. It does not contact the server.
func NewMinioSink(cfg MinioConfig) (*MinioSink, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("object storage is not configured")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	return &MinioSink{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

// Key returns the object key used for filename.
func (s *MinioSink) Key(filename string) string {
	key := path.Join(strings.Trim(s.prefix, "/"), filename)
	return strings.TrimPrefix(key, "/")
}

// Deliver uploads the artifact content.
func (s *MinioSink) Deliver(ctx context.Context, a *Artifact) error {
	key := s.Key(a.Filename)

	info, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(a.Content), int64(len(a.Content)),
		minio.PutObjectOptions{
			ContentType:        a.ContentType,
			ContentDisposition: fmt.Sprintf("attachment; filename=%q", a.Filename),
		})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	log.Info().
		Str("bucket", info.Bucket).
		Str("key", info.Key).
		Int64("bytes", info.Size).
		Msg("Artifact uploaded")

	return nil
}
