// Studio - Photography Portfolio Website and Admin API
// Copyright 2026 Soft Halo Studio
// SPDX-License-Identifier: MIT
// https://github.com/softhalostudio/studio

// Package imagehost stores uploaded portfolio images in an S3-compatible
// object store and serves them through a public base URL.
package imagehost

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/softhalostudio/studio/internal/config"
	"github.com/softhalostudio/studio/internal/logging"
)

var loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

// objectAPI is the slice of the S3 client the host uses. Narrowed for
// test fakes.
type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Host uploads and deletes image objects.
type Host struct {
	client        objectAPI
	bucket        string
	keyPrefix     string
	publicBaseURL string
}

// New builds a host from the storage configuration. A custom Endpoint
// points the client at an S3-compatible store such as MinIO.
func New(ctx context.Context, cfg *config.StorageConfig) (*Host, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Host{
		client:        client,
		bucket:        cfg.Bucket,
		keyPrefix:     cfg.KeyPrefix,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
	}, nil
}

// storageKey generates a unique object key under the configured prefix,
// partitioned by date so the bucket stays browsable.
func (h *Host) storageKey(ext string) string {
	d := time.Now()
	return fmt.Sprintf("%s/%d/%02d/%v%s", h.keyPrefix, d.Year(), d.Month(), uuid.New(), ext)
}

// Upload stores an image object and returns its public URL together with
// the storage key used for later deletion.
func (h *Host) Upload(ctx context.Context, body io.Reader, contentType string) (url, key string, err error) {
	key = h.storageKey(extensionFor(contentType))

	_, err = h.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(h.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", "", fmt.Errorf("uploading object: %w", err)
	}

	return h.publicBaseURL + "/" + key, key, nil
}

// Delete removes a stored object. Deletion is best-effort: a failure is
// logged and swallowed so a missing or already-deleted object never
// blocks removing the database row.
func (h *Host) Delete(ctx context.Context, key string) {
	if key == "" {
		return
	}
	_, err := h.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(h.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		logging.Warn().Err(err).Str("key", key).Msg("failed to delete stored object")
	}
}

// extensionFor maps an image content type to a file extension for the
// object key. Unknown types get no extension; the object still stores
// its content type.
func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	case "image/avif":
		return ".avif"
	default:
		return ""
	}
}
