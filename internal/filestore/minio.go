package filestore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/submission"
)

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL is prepended to object names, e.g. https://cdn.example.nl/attachments
	PublicURL string
}

// MinIO stores attachments as objects under attachments/YYYY/MM/DD/.
type MinIO struct {
	client    *minio.Client
	bucket    string
	publicURL string
	now       func() time.Time
}

func NewMinIO(cfg MinIOConfig) (*MinIO, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}
	return &MinIO{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
		now:       time.Now,
	}, nil
}

// EnsureBucket creates the bucket when it does not exist yet.
func (m *MinIO) EnsureBucket(ctx context.Context) error {
	ok, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", m.bucket, err)
	}
	if ok {
		return nil
	}
	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("make bucket %s: %w", m.bucket, err)
	}
	return nil
}

func (m *MinIO) Upload(ctx context.Context, f submission.File) (string, error) {
	key := m.objectKey(f.Name)
	size := f.Size
	if size <= 0 {
		size = -1
	}
	contentType, ok := submission.AttachmentType(key)
	if !ok {
		contentType = "application/octet-stream"
	}
	_, err := m.client.PutObject(ctx, m.bucket, key, f.Body, size, minio.PutObjectOptions{
		ContentType:        contentType,
		ContentDisposition: "attachment",
	})
	if err != nil {
		return "", fmt.Errorf("upload file: %w", err)
	}
	return m.url(key), nil
}

func (m *MinIO) objectKey(name string) string {
	return fmt.Sprintf("attachments/%s/%s_%s", m.now().Format("2006/01/02"), uuid.New().String()[:8], objectName(name))
}

func (m *MinIO) url(key string) string {
	if m.publicURL == "" {
		return "/" + m.bucket + "/" + key
	}
	return m.publicURL + "/" + key
}
