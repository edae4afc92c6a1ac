package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FolderImages is the S3 prefix for uploaded logo and speaker images.
const FolderImages = "images"

// S3Config holds S3 client configuration.
type S3Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	StateBucket     string // persisted webinar collection (s3 storage backend)
	ImagesBucket    string // optional; empty keeps uploads as data URLs
}

// S3 provides the object operations used by the state provider and image uploads.
type S3 struct {
	client   *s3.Client
	uploader *manager.Uploader
	cfg      S3Config
	logger   *zap.Logger
}

// NewS3 creates an S3 client using credentials from config or .env (AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY).
func NewS3(ctx context.Context, cfg S3Config, logger *zap.Logger) (*S3, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	accessKey := cfg.AccessKeyID
	secretKey := cfg.SecretAccessKey
	if accessKey == "" || secretKey == "" {
		accessKey = os.Getenv("AWS_ACCESS_KEY_ID")
		secretKey = os.Getenv("AWS_SECRET_ACCESS_KEY")
	}
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if accessKey != "" && secretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKey, secretKey, "",
		)))
		logger.Info("S3 client using credentials from .env/config", zap.String("region", cfg.Region), zap.String("state_bucket", cfg.StateBucket))
	} else {
		logger.Warn("S3 client using default credential chain (AWS_ACCESS_KEY_ID/AWS_SECRET_ACCESS_KEY not set)")
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg)
	return &S3{
		client:   client,
		uploader: manager.NewUploader(client),
		cfg:      cfg,
		logger:   logger,
	}, nil
}

// StateBucket returns the bucket holding persisted state.
func (s *S3) StateBucket() string { return s.cfg.StateBucket }

// ImagesEnabled reports whether uploads go to a bucket instead of being embedded.
func (s *S3) ImagesEnabled() bool { return s != nil && s.cfg.ImagesBucket != "" }

// ImageKey returns the object key for an uploaded image: images/{uuid}{ext}.
func ImageKey(ext string) string {
	return path.Join(FolderImages, uuid.New().String()+ext)
}

// PublicObjectURL returns the public URL for an object (no signing; use when bucket is public).
func (s *S3) PublicObjectURL(bucket, key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, s.cfg.Region, key)
}

// GetObjectBytes returns the object body. found is false when the key does not exist. Caller must close the body.
func (s *S3) GetObjectBytes(ctx context.Context, bucket, key string) (io.ReadCloser, bool, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get object: %w", err)
	}
	return out.Body, true, nil
}

// PutObjectBytes writes body as a single object, replacing any previous version.
func (s *S3) PutObjectBytes(ctx context.Context, bucket, key, contentType string, body []byte) error {
	size := int64(len(body))
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: &size,
	})
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	return nil
}

// UploadImage streams an image to the images bucket with public-read ACL and returns its URL.
func (s *S3) UploadImage(ctx context.Context, ext, contentType string, body io.Reader) (string, error) {
	if !s.ImagesEnabled() {
		return "", errors.New("images bucket not configured")
	}
	key := ImageKey(ext)
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.ImagesBucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	url := s.PublicObjectURL(s.cfg.ImagesBucket, key)
	s.logger.Info("image uploaded", zap.String("key", key))
	return url, nil
}
