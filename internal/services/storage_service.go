// internal/services/storage_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/javajoker/orders-backend/internal/config"
)

// StorageService reads catalog feeds that partners publish to S3 compatible storage.
type StorageService struct {
	s3Client *s3.S3
}

func NewStorageService(cfg config.AWSConfig) (*StorageService, error) {
	if cfg.AccessKeyID == "" {
		// Without credentials s3:// feeds are rejected
		return &StorageService{}, nil
	}

	awsConfig := &aws.Config{
		Region: aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
	}
	if cfg.Endpoint != "" {
		// MinIO and other S3 compatible servers
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	// Create AWS session
	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{s3Client: s3.New(sess)}, nil
}

func (s *StorageService) Configured() bool {
	return s != nil && s.s3Client != nil
}

// Open streams an object. The caller closes the returned reader.
func (s *StorageService) Open(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	if !s.Configured() {
		return nil, ErrStorageNotConfigured
	}

	out, err := s.s3Client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && aerr.Code() == s3.ErrCodeNoSuchKey {
			return nil, fmt.Errorf("%w: s3://%s/%s does not exist", ErrFeedFetch, bucket, key)
		}
		return nil, fmt.Errorf("%w: %v", ErrFeedFetch, err)
	}

	return out.Body, nil
}
