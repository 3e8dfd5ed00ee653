package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"
	"wellness-admin/internal/config" // Import your config package

	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config" // Alias config to avoid clash
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// s3Storage implements the AssetStorage interface using an S3-compatible backend.
type s3Storage struct {
	client     *s3.Client
	bucketName string
	baseURL    string // URLs are built and parsed path-style: <baseURL>/<bucket>/<key>
}

// NewS3Storage creates a new S3 storage service instance.
func NewS3Storage(cfg config.S3Config) (AssetStorage, error) {
	// Custom resolver for S3-compatible endpoints (like MinIO, DigitalOcean Spaces)
	customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		if cfg.Endpoint != "" {
			return aws.Endpoint{
				PartitionID:   "aws",
				URL:           cfg.Endpoint,
				SigningRegion: cfg.Region,
			}, nil
		}
		// Fallback to default AWS endpoint resolution if no custom endpoint is set
		return aws.Endpoint{}, &aws.EndpointNotFoundError{}
	})

	awsSDKConfig, err := awsCfg.LoadDefaultConfig(context.TODO(),
		awsCfg.WithRegion(cfg.Region),
		awsCfg.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
		awsCfg.WithEndpointResolverWithOptions(customResolver),
	)
	if err != nil {
		log.Printf("ERROR: Failed to load AWS SDK config for S3: %v", err)
		return nil, err
	}

	// Force path-style addressing required by most S3-compatible services (like MinIO)
	s3Client := s3.NewFromConfig(awsSDKConfig, func(o *s3.Options) {
		o.UsePathStyle = true // IMPORTANT for S3-compatible like MinIO!
	})

	baseURL := cfg.Endpoint
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://s3.%s.amazonaws.com", cfg.Region)
	}

	log.Printf("S3 Storage Service initialized for endpoint: %s, bucket: %s", baseURL, cfg.BucketName)

	return &s3Storage{
		client:     s3Client,
		bucketName: cfg.BucketName,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Upload stores the bytes under <folderKey>/<unix-millis>-<filename> and
// returns the durable object URL.
func (s *s3Storage) Upload(ctx context.Context, folderKey, filename, contentType string, data []byte) (string, error) {
	objectKey := fmt.Sprintf("%s/%d-%s", folderKey, time.Now().UnixMilli(), filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		log.Printf("ERROR: Failed to upload object '%s' to bucket '%s': %v", objectKey, s.bucketName, err)
		return "", err
	}

	return s.objectURL(objectKey), nil
}

// DeleteFolder removes every object stored under the folder prefix. Objects
// already deleted stay deleted if a later batch fails.
func (s *s3Storage) DeleteFolder(ctx context.Context, folderKey string) error {
	prefix := folderKey + "/"

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucketName),
		Prefix: aws.String(prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return err
		}
		if len(page.Contents) == 0 {
			continue
		}

		identifiers := make([]types.ObjectIdentifier, 0, len(page.Contents))
		for _, object := range page.Contents {
			identifiers = append(identifiers, types.ObjectIdentifier{Key: object.Key})
		}

		output, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(s.bucketName),
			Delete: &types.Delete{Objects: identifiers, Quiet: aws.Bool(true)},
		})
		if err != nil {
			return err
		}
		if len(output.Errors) > 0 {
			first := output.Errors[0]
			return fmt.Errorf("failed to delete %d object(s) under '%s': %s", len(output.Errors), prefix, aws.ToString(first.Message))
		}
	}

	log.Printf("INFO: Deleted folder '%s' from bucket '%s'", prefix, s.bucketName)
	return nil
}

// DeleteByURL parses the object key out of an upload URL and deletes the
// object. An unparseable URL is logged and abandoned without raising to the
// caller.
func (s *s3Storage) DeleteByURL(ctx context.Context, rawURL string) error {
	objectKey, err := objectKeyFromURL(s.bucketName, rawURL)
	if err != nil {
		log.Printf("WARN: Could not resolve storage path from URL '%s', skipping delete: %v", rawURL, err)
		return nil
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		log.Printf("ERROR: Failed to delete object '%s' from bucket '%s': %v", objectKey, s.bucketName, err)
		return err
	}
	return nil
}

// objectURL builds the durable path-style URL for an object key.
func (s *s3Storage) objectURL(objectKey string) string {
	u := url.URL{Path: "/" + s.bucketName + "/" + objectKey}
	return s.baseURL + u.EscapedPath()
}

// objectKeyFromURL recovers the object key from a path-style object URL
// (.../<bucket>/<url-encoded-key>). It is the inverse of objectURL.
func objectKeyFromURL(bucketName, rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	path := strings.TrimPrefix(parsed.Path, "/")
	bucketPrefix := bucketName + "/"
	if !strings.HasPrefix(path, bucketPrefix) {
		return "", fmt.Errorf("URL path %q does not match bucket %q", parsed.Path, bucketName)
	}

	objectKey := strings.TrimPrefix(path, bucketPrefix)
	if objectKey == "" {
		return "", fmt.Errorf("URL %q has no object key", rawURL)
	}
	return objectKey, nil
}
