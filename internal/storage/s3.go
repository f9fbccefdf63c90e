package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Service stores documents in Amazon S3 (or compatible APIs).
type S3Service struct {
	client   *s3.Client
	uploader *manager.Uploader
	presign  *s3.PresignClient
}

func NewS3Service(client *s3.Client) *S3Service {
	return &S3Service{
		client:   client,
		uploader: manager.NewUploader(client),
		presign:  s3.NewPresignClient(client),
	}
}

func (s *S3Service) UploadObject(ctx context.Context, body io.Reader, opts UploadOptions) (string, error) {
	if opts.Bucket == "" {
		return "", fmt.Errorf("storage bucket is required")
	}
	key := strings.Trim(opts.Key, "/")
	if key == "" {
		return "", fmt.Errorf("storage key is required")
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(opts.Bucket),
		Key:    aws.String(key),
		Body:   body,
		ACL:    types.ObjectCannedACLPrivate,
	}
	if opts.ContentType != "" {
		input.ContentType = aws.String(opts.ContentType)
	}

	if _, err := s.uploader.Upload(ctx, input); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	return fmt.Sprintf("s3://%s/%s", opts.Bucket, key), nil
}

func (s *S3Service) ListObjects(ctx context.Context, bucket, prefix string) ([]ObjectInfo, error) {
	if bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}

	var objects []ObjectInfo
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
	}
	if strings.TrimSpace(prefix) != "" {
		input.Prefix = aws.String(prefix)
	}

	for {
		output, err := s.client.ListObjectsV2(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("list objects: %w", err)
		}

		for _, obj := range output.Contents {
			objects = append(objects, ObjectInfo{
				Key:          aws.ToString(obj.Key),
				Size:         aws.ToInt64(obj.Size),
				LastModified: obj.LastModified,
			})
		}

		if !aws.ToBool(output.IsTruncated) || output.NextContinuationToken == nil {
			break
		}
		input.ContinuationToken = output.NextContinuationToken
	}

	return objects, nil
}

func (s *S3Service) DeleteObject(ctx context.Context, bucket, key string) error {
	if bucket == "" {
		return fmt.Errorf("storage bucket is required")
	}
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("key is required")
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

func (s *S3Service) PresignGet(ctx context.Context, bucket, key string, expires time.Duration) (string, error) {
	if bucket == "" {
		return "", fmt.Errorf("storage bucket is required")
	}
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("key is required")
	}

	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", fmt.Errorf("presign object: %w", err)
	}
	return req.URL, nil
}

var _ Service = (*S3Service)(nil)
