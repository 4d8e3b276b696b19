package storage

import (
	"bytes"
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"esn-planner/core/config"
	"esn-planner/core/logger"
)

// ObjectStorage stores archived export files.
type ObjectStorage interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
}

type s3Storage struct {
	client *s3.Client
	bucket string
}

// NewS3Storage builds an S3-backed ObjectStorage from configuration. A custom
// endpoint (e.g. MinIO) is honoured when set.
func NewS3Storage(cfg config.S3Config) ObjectStorage {
	awsCfg := aws.Config{
		Region: cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID, cfg.SecretAccessKey, "",
		),
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	logger.Info("S3 storage initialized", "bucket", cfg.Bucket, "region", cfg.Region)
	return &s3Storage{client: client, bucket: cfg.Bucket}
}

func (s *s3Storage) Put(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	return err
}
