package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	portssvc "github.com/hnv-dev/product_desc_app/internal/core/ports/services"
)

// S3Store keeps uploads in an S3 bucket and returns public object URLs.
type S3Store struct {
	uploader *manager.Uploader
	bucket   string
	region   string
}

var _ portssvc.ImageStore = (*S3Store)(nil)

func NewS3Store(ctx context.Context, region, bucket, accessKey, secretKey string) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	return &S3Store{
		uploader: manager.NewUploader(client),
		bucket:   bucket,
		region:   region,
	}, nil
}

func (s *S3Store) objectURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

func (s *S3Store) put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s: %w", key, err)
	}
	return s.objectURL(key), nil
}

func (s *S3Store) SaveImage(ctx context.Context, data []byte, contentType string) (string, error) {
	key := "uploads/" + uuid.NewString() + extensionFor(contentType)
	return s.put(ctx, key, data, contentType)
}

func (s *S3Store) SaveAvatar(ctx context.Context, userID string, data []byte, _ string) (string, error) {
	resized, err := resizeAvatar(data)
	if err != nil {
		return "", err
	}
	return s.put(ctx, "avatars/"+userID+".jpg", resized, "image/jpeg")
}
