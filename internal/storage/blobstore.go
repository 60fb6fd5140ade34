package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// BlobStore is key-addressed binary storage for chart images
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	PublicURL(key string) string
}

// HTTPBlobStore writes blobs to a hosted key-addressed store over HTTP.
// Keys map directly onto the request path; the stored object is served
// back from a separate public base URL.
type HTTPBlobStore struct {
	client    *resty.Client
	publicURL string
	token     string
}

// NewHTTPBlobStore creates a blob store client
func NewHTTPBlobStore(baseURL, publicURL, token string) *HTTPBlobStore {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(30 * time.Second)

	return &HTTPBlobStore{
		client:    client,
		publicURL: strings.TrimRight(publicURL, "/"),
		token:     token,
	}
}

// Put stores a blob under the given key, preserving its content type
func (s *HTTPBlobStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.token).
		SetHeader("Content-Type", contentType).
		SetBody(data).
		Put("/" + key)
	if err != nil {
		return fmt.Errorf("failed to store blob %s: %w", key, err)
	}

	if resp.IsError() {
		return fmt.Errorf("blob store returned %d for %s", resp.StatusCode(), key)
	}

	return nil
}

// PublicURL returns the publicly resolvable URL for a stored key
func (s *HTTPBlobStore) PublicURL(key string) string {
	return s.publicURL + "/" + key
}
