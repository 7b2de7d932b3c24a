package minio

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

func NewClient(endpoint, key, secret string, useSSL bool) (*minio.Client, error) {
	return minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(key, secret, ""),
		Secure: useSSL,
	})
}

// Storage uploads objects and returns publicly reachable URLs. When
// publicURL is empty the endpoint itself is used.
type Storage struct {
	client    *minio.Client
	publicURL string
	useSSL    bool
}

func NewStorage(client *minio.Client, publicURL string, useSSL bool) *Storage {
	return &Storage{client: client, publicURL: strings.TrimRight(publicURL, "/"), useSSL: useSSL}
}

func (s *Storage) Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error) {
	_, err := s.client.PutObject(ctx, bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("put object %s/%s: %w", bucket, objectName, err)
	}

	base := s.publicURL
	if base == "" {
		scheme := "http"
		if s.useSSL {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s", scheme, s.client.EndpointURL().Host)
	}
	return fmt.Sprintf("%s/%s/%s", base, bucket, objectName), nil
}
