package kv

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aura-webinar/landing/pkg/storage"
)

// ObjectStore is the subset of the S3 client the provider needs.
type ObjectStore interface {
	GetObjectBytes(ctx context.Context, bucket, key string) (body io.ReadCloser, found bool, err error)
	PutObjectBytes(ctx context.Context, bucket, key, contentType string, body []byte) error
}

var _ ObjectStore = (*storage.S3)(nil)

// S3 keeps each key as one JSON object at Prefix/key.json in Bucket.
type S3 struct {
	store  ObjectStore
	bucket string
	prefix string
}

// NewS3 returns an object-store backed provider.
func NewS3(store ObjectStore, bucket, prefix string) *S3 {
	return &S3{store: store, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

func (s *S3) objectKey(key string) string {
	return path.Join(s.prefix, key+".json")
}

// Read downloads the object for key.
func (s *S3) Read(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}
	body, found, err := s.store.GetObjectBytes(ctx, s.bucket, s.objectKey(key))
	if err != nil {
		return "", false, fmt.Errorf("s3 get: %w", err)
	}
	if !found {
		return "", false, nil
	}
	defer body.Close()
	b, err := io.ReadAll(body)
	if err != nil {
		return "", false, fmt.Errorf("s3 read body: %w", err)
	}
	return string(b), true, nil
}

// Write uploads value as the object for key.
func (s *S3) Write(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := s.store.PutObjectBytes(ctx, s.bucket, s.objectKey(key), "application/json", []byte(value)); err != nil {
		return fmt.Errorf("s3 put: %w", err)
	}
	return nil
}
