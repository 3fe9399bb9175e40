package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"vidshare/pkg/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

const s3KeyPrefix = "uploads/"

type S3Store struct {
	client   *s3.S3
	uploader *s3manager.Uploader
	bucket   string
	baseURL  string
}

func NewS3Store(cfg *config.Config) (*S3Store, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.AWSRegion),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		),
	}

	// Support MinIO for local development
	if cfg.AWSEndpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.AWSEndpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
		if cfg.S3UseSSL == "false" {
			awsConfig.DisableSSL = aws.Bool(true)
		}
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	store := &S3Store{
		client:   s3.New(sess),
		uploader: s3manager.NewUploader(sess),
		bucket:   cfg.S3BucketName,
	}
	store.baseURL = objectBaseURL(cfg.AWSEndpoint, cfg.S3UseSSL != "false", cfg.AWSRegion, cfg.S3BucketName)

	// Ensure bucket exists (for MinIO)
	if _, err := store.client.HeadBucket(&s3.HeadBucketInput{Bucket: aws.String(cfg.S3BucketName)}); err != nil {
		if _, err := store.client.CreateBucket(&s3.CreateBucketInput{Bucket: aws.String(cfg.S3BucketName)}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.S3BucketName, err)
		}
	}

	return store, nil
}

// objectBaseURL returns the URL prefix objects in bucket are reachable under,
// path-style for custom endpoints (MinIO) and virtual-host style for AWS.
func objectBaseURL(endpoint string, useSSL bool, region, bucket string) string {
	if endpoint != "" && !strings.Contains(endpoint, "amazonaws.com") {
		protocol := "http"
		if useSSL {
			protocol = "https"
		}
		endpoint = strings.TrimPrefix(endpoint, "http://")
		endpoint = strings.TrimPrefix(endpoint, "https://")
		return fmt.Sprintf("%s://%s/%s", protocol, endpoint, bucket)
	}

	if region == "" {
		region = "us-east-1"
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
}

func (s *S3Store) Save(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, error) {
	key := s3KeyPrefix + filename
	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}
	return s.baseURL + "/" + key, nil
}

func (s *S3Store) Remove(ctx context.Context, mediaURL string) error {
	key, ok, err := s.objectKey(mediaURL)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	_, err = s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}
	return nil
}

// objectKey maps a URL handed out by Save back to its object key. ok is false
// for URLs on another host or outside the upload prefix.
func (s *S3Store) objectKey(mediaURL string) (string, bool, error) {
	u, err := url.Parse(mediaURL)
	if err != nil {
		return "", false, fmt.Errorf("invalid media url %q: %w", mediaURL, err)
	}
	base, err := url.Parse(s.baseURL)
	if err != nil {
		return "", false, fmt.Errorf("invalid bucket url %q: %w", s.baseURL, err)
	}
	if !strings.EqualFold(u.Host, base.Host) {
		return "", false, nil
	}
	name, ok := objectName(u, base.Path+"/"+strings.TrimSuffix(s3KeyPrefix, "/"))
	if !ok {
		return "", false, nil
	}
	return s3KeyPrefix + name, true, nil
}
