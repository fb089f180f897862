package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/TanushreeSarkar/InterVista/internal/config"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// answers audio lives under a fixed prefix; object names are
// content-addressed with a random component so uploads never collide.
const audioPrefix = "answers"

// MinioUploader stores audio blobs in an S3-compatible bucket.
type MinioUploader struct {
	client *minio.Client
	bucket string
	scheme string
}

// NewMinioUploader connects to the configured S3-compatible endpoint.
// Credentials are resolved from an ordered provider chain: shared
// credentials file, then environment, then the static keys from config.
// First success wins.
func NewMinioUploader(cfg config.StorageConfig) (*MinioUploader, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("no storage endpoint configured")
	}

	chain := []credentials.Provider{
		&credentials.FileAWSCredentials{Filename: cfg.CredentialsFile},
		&credentials.EnvAWS{},
		&credentials.Static{
			Value: credentials.Value{
				AccessKeyID:     cfg.AccessKey,
				SecretAccessKey: cfg.SecretKey,
			},
		},
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewChainCredentials(chain),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}

	return &MinioUploader{client: client, bucket: cfg.Bucket, scheme: scheme}, nil
}

func (u *MinioUploader) Upload(ctx context.Context, filename, contentType string, r io.Reader, size int64) (string, error) {
	objectName := fmt.Sprintf("%s/%s-%s", audioPrefix, uuid.NewString(), filename)

	_, err := u.client.PutObject(ctx, u.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	return fmt.Sprintf("%s://%s/%s/%s", u.scheme, u.client.EndpointURL().Host, u.bucket, objectName), nil
}
