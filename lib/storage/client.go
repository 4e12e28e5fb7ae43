// Package storage uploads normalized images to an OSS bucket and hands back
// their public URLs. The rest of the application treats those URLs as opaque
// strings.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"
)

// Client wraps a single OSS bucket
type Client struct {
	bucket  *oss.Bucket
	baseURL string
}

// NewClientFromEnv builds a storage client from OSS_ENDPOINT,
// OSS_ACCESS_KEY_ID, OSS_ACCESS_KEY_SECRET and OSS_BUCKET
func NewClientFromEnv() (*Client, error) {
	endpoint := os.Getenv("OSS_ENDPOINT")
	accessKeyID := os.Getenv("OSS_ACCESS_KEY_ID")
	accessKeySecret := os.Getenv("OSS_ACCESS_KEY_SECRET")
	bucketName := os.Getenv("OSS_BUCKET")

	if endpoint == "" || accessKeyID == "" || accessKeySecret == "" || bucketName == "" {
		return nil, fmt.Errorf("OSS_ENDPOINT, OSS_ACCESS_KEY_ID, OSS_ACCESS_KEY_SECRET and OSS_BUCKET must be set")
	}

	client, err := oss.New(endpoint, accessKeyID, accessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create OSS client: %v", err)
	}
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to open OSS bucket %s: %v", bucketName, err)
	}

	host := strings.TrimPrefix(strings.TrimPrefix(endpoint, "https://"), "http://")
	return &Client{
		bucket:  bucket,
		baseURL: fmt.Sprintf("https://%s.%s", bucketName, host),
	}, nil
}

// UploadImage normalizes the payload (center-crop to 300x300, WebP) and
// uploads it under <pathPrefix>/<ownerID>/<uuid>.webp, returning the public
// URL. Upload failures are surfaced unmodified; there are no retries.
func (c *Client) UploadImage(ctx context.Context, data []byte, ownerID, pathPrefix string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	processed, err := NormalizeImage(data)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("%s/%s/%s.webp", strings.Trim(pathPrefix, "/"), ownerID, uuid.NewString())
	if err := c.bucket.PutObject(key, bytes.NewReader(processed), oss.ContentType("image/webp")); err != nil {
		return "", fmt.Errorf("oss upload of %s: %w", key, err)
	}
	return c.baseURL + "/" + key, nil
}

// DeleteByURL removes a previously uploaded object given its public URL.
// URLs outside this bucket are ignored.
func (c *Client) DeleteByURL(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !strings.HasPrefix(url, c.baseURL+"/") {
		return nil
	}
	key := strings.TrimPrefix(url, c.baseURL+"/")
	if err := c.bucket.DeleteObject(key); err != nil {
		return fmt.Errorf("oss delete of %s: %w", key, err)
	}
	return nil
}
