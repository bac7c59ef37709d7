package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// StorageService stores generated reports in S3
type StorageService struct {
	s3Client *s3.Client
	bucket   string
	region   string
}

// NewStorageService creates a new storage service instance
// For LocalStack: endpoint should be "http://localhost:4566"
// For production AWS: endpoint should be ""
func NewStorageService(bucket, region, endpoint string) (*StorageService, error) {
	if bucket == "" {
		return nil, fmt.Errorf("bucket cannot be empty")
	}
	if region == "" {
		return nil, fmt.Errorf("region cannot be empty")
	}

	ctx := context.Background()

	if endpoint != "" {
		// LocalStack accepts any static credentials
		cfg, err := config.LoadDefaultConfig(ctx,
			config.WithRegion(region),
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("test", "test", "")),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}

		client := s3.NewFromConfig(cfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true // Required for LocalStack
		})

		return &StorageService{
			s3Client: client,
			bucket:   bucket,
			region:   region,
		}, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &StorageService{
		s3Client: s3.NewFromConfig(cfg),
		bucket:   bucket,
		region:   region,
	}, nil
}

// GenerateReportKey creates a unique S3 key for a report
// Format: reports/{reportType}/{timestamp}-{uniqueID}.xlsx
func (s *StorageService) GenerateReportKey(reportType string, now time.Time) (string, error) {
	if reportType == "" {
		return "", fmt.Errorf("reportType cannot be empty")
	}

	reportType = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, reportType)

	uniqueID := uuid.New().String()[:8]
	return fmt.Sprintf("reports/%s/%d-%s.xlsx", reportType, now.UTC().Unix(), uniqueID), nil
}

// UploadFile writes body to key
func (s *StorageService) UploadFile(ctx context.Context, key, contentType string, body []byte) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}
	if s.s3Client == nil {
		return fmt.Errorf("s3 client is not initialized")
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.s3Client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("failed to upload file to S3: %w", err)
	}
	return nil
}

// GeneratePresignedDownloadURL generates a presigned GET URL for key
func (s *StorageService) GeneratePresignedDownloadURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if key == "" {
		return "", fmt.Errorf("key cannot be empty")
	}
	if expiry <= 0 {
		return "", fmt.Errorf("expiry must be greater than 0")
	}
	if s.s3Client == nil {
		return "", fmt.Errorf("s3 client is not initialized")
	}

	presignClient := s3.NewPresignClient(s.s3Client)
	req, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return req.URL, nil
}
