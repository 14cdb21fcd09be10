package storage

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	domain "github.com/bryanwahyu/brand-banner/internal/domain/analysis"
)

type Store struct {
	client     *minio.Client
	http       *resty.Client
	bucketName string
	region     string
	now        func() time.Time
}

// New buat koneksi MinIO
func New(ctx context.Context, endpoint, region, bucket, accessKey, secretKey string, useSSL bool) (*Store, error) {
	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, err
	}

	// pastikan bucket ada
	exists, err := cli.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := cli.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return nil, err
		}
	}

	return &Store{
		client:     cli,
		http:       resty.New().SetTimeout(60 * time.Second),
		bucketName: bucket,
		region:     region,
		now:        time.Now,
	}, nil
}

// Archive implements analysis.BannerArchive. It downloads the generated image
// and stores it under banners/<yyyy>/<mm>/<id><ext>.
func (s *Store) Archive(ctx context.Context, id domain.ID, imageURL string) (string, error) {
	resp, err := s.http.R().SetContext(ctx).Get(imageURL)
	if err != nil {
		return "", fmt.Errorf("download banner: %w", err)
	}
	if !resp.IsSuccess() {
		return "", fmt.Errorf("download banner: %s", resp.Status())
	}

	body := resp.Body()
	contentType := resp.Header().Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}
	key := ObjectKey(id, s.now(), contentType)

	_, err = s.client.PutObject(ctx, s.bucketName, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload banner: %w", err)
	}

	// URL publik (jika bucket public), kalau private harus generate presigned URL
	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(s.client.EndpointURL().String(), "/"), s.bucketName, key), nil
}

// Check implements middleware.HealthChecker
func (s *Store) Check(ctx context.Context) error {
	_, err := s.client.BucketExists(ctx, s.bucketName)
	return err
}

// ObjectKey places a banner by month. The extension follows the content type
// and defaults to .png, the format the image API returns.
func ObjectKey(id domain.ID, at time.Time, contentType string) string {
	return fmt.Sprintf("banners/%04d/%02d/%s%s", at.Year(), int(at.Month()), id, extensionFor(contentType))
}

func extensionFor(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ".png"
	}
	switch mediaType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".png"
	}
}
