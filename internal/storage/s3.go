package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"couponfinder/internal/models"
)

// KeyFunc computes the canonical object key for an export.
type KeyFunc func(models.Export) string

// S3Service archives finder exports in S3-compatible storage. Archiving is an
// opt-in sink; the extraction pipeline itself never reads from it.
type S3Service struct {
	client *minio.Client
	key    KeyFunc
}

// NewS3Service connects to the MinIO endpoint configured through
// MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY and MINIO_USE_SSL.
func NewS3Service(key KeyFunc) (*S3Service, error) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("missing one or more required environment variables: MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %v", err)
	}

	log.Println("Successfully connected to MinIO endpoint:", endpoint)
	return &S3Service{client: client, key: key}, nil
}

// CreateBucket ensures the bucket exists, creating it when needed.
func (s *S3Service) CreateBucket(ctx context.Context, bucketName string, location string) (bool, error) {
	exists, err := s.client.BucketExists(ctx, bucketName)
	if err != nil {
		return false, fmt.Errorf("error checking bucket existence: %v", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: location}); err != nil {
			return false, err
		}
	}
	return true, nil
}

// StoreExport writes one export under its canonical key. An export that
// already exists is left alone, so re-archiving an identical run is a no-op.
func (s *S3Service) StoreExport(ctx context.Context, bucketName string, export models.Export) error {
	objectKey := s.key(export)

	_, err := s.client.StatObject(ctx, bucketName, objectKey, minio.StatObjectOptions{})
	if err == nil {
		log.Printf("Export '%s' already exists in bucket '%s'. Ignoring write operation.", objectKey, bucketName)
		return nil
	}
	if minio.ToErrorResponse(err).Code != "NoSuchKey" {
		return fmt.Errorf("failed to check for existing object: %v", err)
	}

	data, err := json.Marshal(export)
	if err != nil {
		return fmt.Errorf("failed to marshal export to JSON: %v", err)
	}

	_, err = s.client.PutObject(
		ctx,
		bucketName,
		objectKey,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		return fmt.Errorf("failed to store export in S3: %v", err)
	}

	log.Printf("Stored export for '%s' in bucket '%s' with key '%s'", export.Address, bucketName, objectKey)
	return nil
}

// GetObject reads an export back from the given bucket and key.
func (s *S3Service) GetObject(ctx context.Context, bucketName string, objectKey string) (*models.Export, error) {
	object, err := s.client.GetObject(ctx, bucketName, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object from S3: %v", err)
	}
	defer object.Close()

	var export models.Export
	if err := json.NewDecoder(object).Decode(&export); err != nil {
		return nil, fmt.Errorf("failed to decode JSON from stream: %v", err)
	}
	return &export, nil
}
