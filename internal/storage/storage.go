package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified *time.Time
}

// UploadOptions conveys upload destination metadata.
type UploadOptions struct {
	Bucket      string
	Key         string
	ContentType string
}

// Service stores uploaded documents (receipt scans, post covers) in remote
// object storage.
type Service interface {
	// UploadObject stores the reader's contents and returns an s3://bucket/key
	// location string.
	UploadObject(ctx context.Context, body io.Reader, opts UploadOptions) (string, error)
	ListObjects(ctx context.Context, bucket, prefix string) ([]ObjectInfo, error)
	DeleteObject(ctx context.Context, bucket, key string) error
	// PresignGet returns a time-limited download URL for the object.
	PresignGet(ctx context.Context, bucket, key string, expires time.Duration) (string, error)
}

// ParseLocation splits an s3://bucket/key location string.
func ParseLocation(location string) (bucket, key string, err error) {
	if !strings.HasPrefix(location, "s3://") {
		return "", "", fmt.Errorf("invalid s3 location %q", location)
	}
	rest := strings.TrimPrefix(location, "s3://")
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid s3 location %q", location)
	}
	return parts[0], parts[1], nil
}
