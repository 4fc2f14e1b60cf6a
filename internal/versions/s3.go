package versions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/dmitrijs2005/cryptobom/internal/common"
)

// S3Config holds the settings for the S3-compatible snapshot backend
// (MinIO in development).
type S3Config struct {
	RootUser     string
	RootPassword string
	Bucket       string
	Region       string
	BaseEndpoint string
}

// S3Repository stores snapshots as JSON objects under
// snapshots/<project>/<versionID>.json in one bucket.
type S3Repository struct {
	client *s3.Client
	bucket string
}

// NewS3Repository builds the S3 client from static credentials and a
// base endpoint override, matching the MinIO-style deployment.
func NewS3Repository(ctx context.Context, cfg S3Config) (*S3Repository, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.RootUser,
			cfg.RootPassword,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
		o.UsePathStyle = true
	})

	return &S3Repository{client: client, bucket: cfg.Bucket}, nil
}

func objectKey(project, versionID string) string {
	return fmt.Sprintf("snapshots/%s/%s.json", project, versionID)
}

// Save uploads the snapshot, replacing any object with the same key.
func (r *S3Repository) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot %s: %w", snap.VersionID, err)
	}

	key := objectKey(snap.ProjectName, snap.VersionID)
	_, err = r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: &r.bucket,
		Key:    &key,
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("put snapshot %s: %w", key, err)
	}
	return nil
}

// Load downloads and decodes a snapshot; a missing object maps to
// common.ErrVersionNotFound.
func (r *S3Repository) Load(ctx context.Context, project, versionID string) (*Snapshot, error) {
	key := objectKey(project, versionID)
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &r.bucket,
		Key:    &key,
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, fmt.Errorf("%s: %w", versionID, common.ErrVersionNotFound)
		}
		return nil, fmt.Errorf("get snapshot %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", key, err)
	}
	snap := &Snapshot{}
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot %s: %w", key, err)
	}
	return snap, nil
}

// Exists reports whether the snapshot object is present, via a head
// request.
func (r *S3Repository) Exists(ctx context.Context, project, versionID string) (bool, error) {
	key := objectKey(project, versionID)
	if _, err := r.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: &r.bucket,
		Key:    &key,
	}); err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("head snapshot %s: %w", key, err)
	}
	return true, nil
}

// Delete removes the snapshot object. S3 deletes are idempotent, so a
// missing key is reported as common.ErrVersionNotFound only when it can
// be detected via a head request.
func (r *S3Repository) Delete(ctx context.Context, project, versionID string) error {
	key := objectKey(project, versionID)
	ok, err := r.Exists(ctx, project, versionID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s: %w", versionID, common.ErrVersionNotFound)
	}

	if _, err := r.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &r.bucket,
		Key:    &key,
	}); err != nil {
		return fmt.Errorf("delete snapshot %s: %w", key, err)
	}
	return nil
}
