package repositories

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Repository writes rehosted images to the object storage bucket and
// resolves their public URLs.
type S3Repository struct {
	client        *s3.Client
	region        string
	endpointURL   string
	publicBaseURL string
}

func NewS3Repository(cfg aws.Config, endpointURL, publicBaseURL string) *S3Repository {
	return &S3Repository{
		client: s3.NewFromConfig(cfg, func(o *s3.Options) {
			if endpointURL != "" {
				o.BaseEndpoint = aws.String(endpointURL)
			}
			o.UsePathStyle = true
		}),
		region:        cfg.Region,
		endpointURL:   endpointURL,
		publicBaseURL: publicBaseURL,
	}
}

// UploadBytes stores the object without overwriting: random key names make
// collisions rare, and a conditional write rejects the remainder.
func (r *S3Repository) UploadBytes(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		IfNoneMatch: aws.String("*"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload s3://%s/%s: %w", bucket, key, err)
	}
	return nil
}

// PublicURL resolves the address an uploaded object is served from.
func (r *S3Repository) PublicURL(bucket, key string) string {
	if r.publicBaseURL != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(r.publicBaseURL, "/"), bucket, key)
	}
	if r.endpointURL != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(r.endpointURL, "/"), bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, r.region, key)
}
