package publish

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/df07/go-weekend-raytracer/pkg/config"
)

// UploadTimeout bounds a single upload
const UploadTimeout = 30 * time.Second

// S3Publisher uploads finished renders to a bucket
type S3Publisher struct {
	client s3iface.S3API
	bucket string
	prefix string
}

// NewS3Publisher creates a publisher from the S3 settings. Static credentials are used when
// an access key is configured, otherwise the SDK's default chain applies.
func NewS3Publisher(cfg config.S3Config) (*S3Publisher, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("S3 publishing needs S3_BUCKET and S3_REGION")
	}

	awsConfig := &aws.Config{
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}

	return NewS3PublisherWithClient(s3.New(sess), cfg.Bucket, cfg.Prefix), nil
}

// NewS3PublisherWithClient wraps an existing client
func NewS3PublisherWithClient(client s3iface.S3API, bucket, prefix string) *S3Publisher {
	return &S3Publisher{client: client, bucket: bucket, prefix: prefix}
}

// Key returns the object key a render named name is stored under
func (p *S3Publisher) Key(name string) string {
	return path.Join(p.prefix, name)
}

// Publish uploads data under name and returns the object key
func (p *S3Publisher) Publish(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	key := p.Key(name)
	size := int64(len(data))
	_, err := p.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	log.Printf("Uploaded %s to s3://%s (%d bytes)", key, p.bucket, size)
	return key, nil
}

// RenderName returns a stable object name for a render
func RenderName(sceneName string, width, height, samples int, seed int64) string {
	return fmt.Sprintf("%s-%dx%d-%dspp-seed%d.ppm", path.Base(sceneName), width, height, samples, seed)
}
