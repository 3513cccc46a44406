// Package mediahost talks to the S3-compatible bucket that plays the cloud media host.
package mediahost

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"github.com/you/assetsvc/domain"
	"github.com/you/assetsvc/internal/config"
)

// S3Host implements domain.MediaHost on an S3-compatible object store
type S3Host struct {
	client  *s3.Client
	presign *s3.PresignClient
	cfg     config.MediaHost
	now     func() time.Time
}

// NewS3Host builds the client from static credentials; the endpoint is optional (MinIO, R2, ...)
func NewS3Host(ctx context.Context, cfg config.MediaHost) (*S3Host, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		awsconfig.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Host{
		client:  client,
		presign: s3.NewPresignClient(client),
		cfg:     cfg,
		now:     time.Now,
	}, nil
}

// FetchResourceMetadata issues a HEAD on the object and maps its content type
func (h *S3Host) FetchResourceMetadata(ctx context.Context, resourceID string) (*domain.ResourceMetadata, error) {
	if resourceID == "" {
		return nil, domain.ErrResourceNotFound
	}

	out, err := h.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(h.cfg.Bucket),
		Key:    aws.String(resourceID),
	})
	if err != nil {
		var nf *types.NotFound
		if errors.As(err, &nf) {
			return nil, domain.ErrResourceNotFound
		}
		return nil, fmt.Errorf("head object %s: %w", resourceID, err)
	}

	contentType := aws.ToString(out.ContentType)
	return &domain.ResourceMetadata{
		Type:   resourceType(contentType),
		Format: contentType,
		Bytes:  aws.ToInt64(out.ContentLength),
	}, nil
}

// ResourceID recovers the object key from a public file URL
func (h *S3Host) ResourceID(fileURL string) string {
	if base := h.cfg.PublicBaseURL; base != "" && strings.HasPrefix(fileURL, base+"/") {
		return strings.TrimPrefix(fileURL, base+"/")
	}

	u, err := url.Parse(fileURL)
	if err != nil {
		return ""
	}
	key := strings.TrimPrefix(u.Path, "/")
	return strings.TrimPrefix(key, h.cfg.Bucket+"/")
}

// SignUpload returns a presigned PUT for a fresh key under uploads/
func (h *S3Host) SignUpload(ctx context.Context, filename string) (*domain.UploadCredential, error) {
	now := h.now()
	key := fmt.Sprintf("uploads/%d/%02d/%02d/%s%s",
		now.Year(), now.Month(), now.Day(), uuid.NewString(), strings.ToLower(path.Ext(filename)))

	req, err := h.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(h.cfg.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(h.cfg.UploadTTL))
	if err != nil {
		return nil, fmt.Errorf("presign put: %w", err)
	}

	return &domain.UploadCredential{
		UploadURL: req.URL,
		Method:    req.Method,
		Key:       key,
		FileURL:   h.publicURL(key),
		Timestamp: now.Unix(),
		ExpiresAt: now.Add(h.cfg.UploadTTL),
	}, nil
}

func (h *S3Host) publicURL(key string) string {
	if h.cfg.PublicBaseURL != "" {
		return h.cfg.PublicBaseURL + "/" + key
	}
	if h.cfg.Endpoint != "" {
		return strings.TrimRight(h.cfg.Endpoint, "/") + "/" + h.cfg.Bucket + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", h.cfg.Bucket, h.cfg.Region, key)
}

func resourceType(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return "image"
	case strings.HasPrefix(contentType, "video/"), strings.HasPrefix(contentType, "audio/"):
		return "video"
	default:
		return "raw"
	}
}

var _ domain.MediaHost = (*S3Host)(nil)
