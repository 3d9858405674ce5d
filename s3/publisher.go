// Package s3 publishes menus to S3-compatible object storage (AWS S3,
// Cloudflare R2, MinIO) using github.com/aws/aws-sdk-go-v2.
package s3

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/fwojciec/lunchmenu"
	"github.com/fwojciec/lunchmenu/fs"
)

// Ensure Publisher implements lunchmenu.MenuPublisher.
var _ lunchmenu.MenuPublisher = (*Publisher)(nil)

// IndexName is the object holding all of a day's menus as JSON.
const IndexName = "menus.json"

// PutObjectAPI is the part of the S3 client the publisher uses.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Publisher uploads a day's menus under Prefix/YYYY-MM-DD/: one markdown
// file per restaurant plus a JSON index of all of them.
type Publisher struct {
	client PutObjectAPI
	bucket string

	// Prefix is prepended to every object key.
	Prefix string

	// BaseURL is the public URL of the bucket. When empty, locations are
	// returned as s3:// URLs.
	BaseURL string
}

// NewPublisher creates a Publisher writing to bucket.
func NewPublisher(client PutObjectAPI, bucket string) *Publisher {
	return &Publisher{client: client, bucket: bucket}
}

// Publish implements lunchmenu.MenuPublisher. The index is uploaded last so
// that it never lists a file that failed to upload.
func (p *Publisher) Publish(ctx context.Context, day time.Time, menus []*lunchmenu.Menu) ([]string, error) {
	dir := path.Join(p.Prefix, day.Format(time.DateOnly))

	locations := make([]string, 0, len(menus)+1)
	for _, m := range menus {
		slug := fs.Slug(m.Restaurant)
		if slug == "" {
			slug = fs.Slug(m.RestaurantID)
		}
		if slug == "" {
			return locations, lunchmenu.Errorf(lunchmenu.EINVALID, "menu has no restaurant name")
		}

		key := path.Join(dir, slug+".md")
		if err := p.put(ctx, key, "text/markdown; charset=utf-8", []byte(fs.FormatMenu(m))); err != nil {
			return locations, err
		}
		locations = append(locations, p.location(key))
	}

	index, err := json.MarshalIndent(menus, "", "  ")
	if err != nil {
		return locations, fmt.Errorf("marshal index: %w", err)
	}
	key := path.Join(dir, IndexName)
	if err := p.put(ctx, key, "application/json", index); err != nil {
		return locations, err
	}
	return append(locations, p.location(key)), nil
}

func (p *Publisher) put(ctx context.Context, key, contentType string, body []byte) error {
	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}
	return nil
}

func (p *Publisher) location(key string) string {
	if p.BaseURL != "" {
		return strings.TrimRight(p.BaseURL, "/") + "/" + key
	}
	return fmt.Sprintf("s3://%s/%s", p.bucket, key)
}

// Config locates the bucket and its credentials.
type Config struct {
	Bucket    string
	Prefix    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	BaseURL   string
}

// ConfigFromEnv reads the LUNCHMENU_S3_* environment variables.
func ConfigFromEnv() Config {
	return Config{
		Bucket:    os.Getenv("LUNCHMENU_S3_BUCKET"),
		Prefix:    os.Getenv("LUNCHMENU_S3_PREFIX"),
		Region:    os.Getenv("LUNCHMENU_S3_REGION"),
		Endpoint:  os.Getenv("LUNCHMENU_S3_ENDPOINT"),
		AccessKey: os.Getenv("LUNCHMENU_S3_ACCESS_KEY"),
		SecretKey: os.Getenv("LUNCHMENU_S3_SECRET_KEY"),
		BaseURL:   os.Getenv("LUNCHMENU_S3_PUBLIC_URL"),
	}
}

// Open builds a Publisher from cfg. Without explicit keys the default AWS
// credential chain is used. A custom Endpoint switches to path-style
// addressing and defaults the region to "auto", as R2 and MinIO expect.
func Open(ctx context.Context, cfg Config) (*Publisher, error) {
	if cfg.Bucket == "" {
		return nil, lunchmenu.Errorf(lunchmenu.EINVALID, "LUNCHMENU_S3_BUCKET not set")
	}

	region := cfg.Region
	if region == "" && cfg.Endpoint != "" {
		region = "auto"
	}

	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	p := NewPublisher(client, cfg.Bucket)
	p.Prefix = cfg.Prefix
	p.BaseURL = cfg.BaseURL
	return p, nil
}
