package storage

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/myairobotics/myaisells-admin/internal/assets"
	"github.com/myairobotics/myaisells-admin/internal/ccc/logging"
	"github.com/myairobotics/myaisells-admin/internal/config"
)

// S3AssetStore implements assets.Store on top of an S3 bucket. Every uploaded
// file also gets a FileAsset record in the asset repository so the rest of the
// application can reference it by ID.
type S3AssetStore struct {
	logger    logging.Logger
	client    *s3.Client
	repo      assets.FileAssetRepository
	bucket    string
	keyPrefix string
}

// NewS3AssetStore creates an asset store using the default AWS configuration
// chain with optional overrides from settings.
func NewS3AssetStore(ctx context.Context, settings *config.StorageSettings, repo assets.FileAssetRepository, logger logging.Logger) (*S3AssetStore, error) {
	if logger == nil {
		logger = logging.NopLogger
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if settings.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(settings.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = settings.UsePathStyle
	})

	return &S3AssetStore{
		logger:    logger,
		client:    client,
		repo:      repo,
		bucket:    settings.Bucket,
		keyPrefix: settings.KeyPrefix,
	}, nil
}

// Upload pushes the file content to the bucket and records a FileAsset row.
func (s *S3AssetStore) Upload(ctx context.Context, upload assets.AssetUpload) (*assets.FileAsset, error) {
	id := uuid.New().String()
	key := path.Join(s.keyPrefix, "assets", id+filepath.Ext(upload.Name))

	in := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   upload.Body,
	}
	if upload.ContentType != "" {
		in.ContentType = aws.String(upload.ContentType)
	}

	if _, err := s.client.PutObject(ctx, in); err != nil {
		s.logger.Error("failed to upload asset", "key", key, "error", err)
		return nil, fmt.Errorf("failed to upload asset %s: %w", upload.Name, err)
	}

	now := time.Now().UTC()
	asset := &assets.FileAsset{
		ID:          id,
		Name:        upload.Name,
		Path:        key,
		ContentType: upload.ContentType,
		Size:        upload.Size,
		Tag:         upload.Tag,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Add(ctx, asset); err != nil {
		return nil, fmt.Errorf("failed to record asset %s: %w", upload.Name, err)
	}

	s.logger.Info("uploaded asset", "id", id, "key", key, "size", upload.Size)
	return asset, nil
}
