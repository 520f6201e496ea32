// Package snapshot exports the knowledge base to S3-compatible object
// storage as gzip-compressed JSON. The export runs on a schedule so an
// external pipeline (or a fresh deployment) can rebuild the knowledge base
// without reaching into the live SQLite file.
package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/klauspost/compress/gzip"

	apperrors "github.com/voicerag/campus-assistant-go/internal/errors"
	"github.com/voicerag/campus-assistant-go/internal/knowledge"
	"github.com/voicerag/campus-assistant-go/internal/logger"
)

// LatestKey is the object key always pointing at the newest export.
const LatestKey = "snapshots/knowledge-latest.json.gz"

// Config holds exporter configuration.
type Config struct {
	Endpoint  string // S3-compatible endpoint URL; empty uses AWS defaults
	AccessKey string
	SecretKey string
	Bucket    string
}

// Exporter uploads knowledge snapshots to object storage.
type Exporter struct {
	s3     *s3.Client
	bucket string
	logger *logger.Logger
}

// New creates a snapshot exporter.
// Returns nil if the bucket is empty (export disabled).
func New(ctx context.Context, cfg Config, log *logger.Logger) (*Exporter, error) {
	if cfg.Bucket == "" {
		return nil, nil //nolint:nilnil // Intentional: feature disabled when no bucket
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, errors.New("snapshot: access key and secret key are required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("snapshot: load aws config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true // Required for R2 and MinIO style endpoints
		}
	})

	return &Exporter{
		s3:     s3Client,
		bucket: cfg.Bucket,
		logger: log.WithModule("snapshot"),
	}, nil
}

// Export compresses the snapshot and uploads it under a dated key plus
// LatestKey. The dated key is skipped when it already exists, so repeated
// runs within one day only refresh the latest pointer.
func (e *Exporter) Export(ctx context.Context, snap *knowledge.Snapshot) error {
	if e == nil {
		return nil
	}

	payload, err := compress(snap)
	if err != nil {
		return &apperrors.SnapshotError{Bucket: e.bucket, Key: LatestKey, Err: err}
	}

	datedKey := fmt.Sprintf("snapshots/knowledge-%s.json.gz", time.Now().UTC().Format("2006-01-02"))
	exists, err := e.exists(ctx, datedKey)
	if err != nil {
		return &apperrors.SnapshotError{Bucket: e.bucket, Key: datedKey, Err: err}
	}
	if !exists {
		if err := e.upload(ctx, datedKey, payload); err != nil {
			return &apperrors.SnapshotError{Bucket: e.bucket, Key: datedKey, Err: err}
		}
	}

	if err := e.upload(ctx, LatestKey, payload); err != nil {
		return &apperrors.SnapshotError{Bucket: e.bucket, Key: LatestKey, Err: err}
	}

	e.logger.WithFields(map[string]any{
		"key":   datedKey,
		"bytes": len(payload),
	}).Info("Knowledge snapshot exported")
	return nil
}

// IsEnabled returns true if the exporter is configured.
func (e *Exporter) IsEnabled() bool {
	return e != nil
}

func (e *Exporter) upload(ctx context.Context, key string, payload []byte) error {
	_, err := e.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/gzip"),
	})
	if err != nil {
		return fmt.Errorf("upload %q: %w", key, err)
	}
	return nil
}

func (e *Exporter) exists(ctx context.Context, key string) (bool, error) {
	_, err := e.s3.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(e.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("head %q: %w", key, err)
	}
	return true, nil
}

// compress marshals the snapshot and gzips it.
func compress(snap *knowledge.Snapshot) ([]byte, error) {
	raw, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(raw); err != nil {
		return nil, fmt.Errorf("compress snapshot: %w", err)
	}
	if err := gz.Close(); err != nil {
		return nil, fmt.Errorf("finish compression: %w", err)
	}
	return buf.Bytes(), nil
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound", "404":
			return true
		}
	}
	var respErr *smithyhttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == 404 {
		return true
	}
	return false
}
