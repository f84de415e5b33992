// Package s3 resolves s3://bucket/key locators through the AWS SDK v2.
//
// Register a Fetcher under the "s3" scheme:
//
//	client := awss3.NewFromConfig(cfg)
//	r := core.NewResolver(func(o *core.ResolverOptions) {
//		o.Fetchers = map[string]core.Fetcher{s3.Scheme: s3.New(client)}
//	})
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
)

// Scheme is the locator scheme served by Fetcher.
const Scheme = "s3"

// ErrInvalidLocator is returned for locators without a bucket or key.
var ErrInvalidLocator = errors.New("invalid s3 locator")

// GetObjectAPI is the subset of *awss3.Client used by Fetcher.
type GetObjectAPI interface {
	GetObject(ctx context.Context, params *awss3.GetObjectInput, optFns ...func(*awss3.Options)) (*awss3.GetObjectOutput, error)
}

// Fetcher reads objects from S3 (or a compatible API).
type Fetcher struct {
	client  GetObjectAPI
	maxSize int64
}

// New creates a Fetcher. maxSize bounds the bytes read per object; 0 means
// no limit.
func New(client GetObjectAPI, maxSize int64) *Fetcher {
	return &Fetcher{client: client, maxSize: maxSize}
}

// ClientConfig describes how NewClient builds an S3 client without the
// shared AWS config loader.
type ClientConfig struct {
	Region       string
	Endpoint     string
	UsePathStyle bool
	Anonymous    bool
}

// NewClient builds an *awss3.Client from cfg.
func NewClient(cfg ClientConfig) *awss3.Client {
	return awss3.New(awss3.Options{Region: cfg.Region}, func(o *awss3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.Anonymous {
			o.Credentials = aws.AnonymousCredentials{}
		}
	})
}

// ParseLocator splits "s3://bucket/key" (or "s3:bucket/key") into bucket and key.
func ParseLocator(locator string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(locator, Scheme+":")
	if !ok {
		if scheme, tail, found := strings.Cut(locator, ":"); found && strings.EqualFold(scheme, Scheme) {
			rest, ok = tail, true
		}
	}
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidLocator, locator)
	}
	rest = strings.TrimPrefix(rest, "//")
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidLocator, locator)
	}
	return bucket, key, nil
}

// Fetch downloads the object addressed by locator.
func (f *Fetcher) Fetch(ctx context.Context, locator string) ([]byte, error) {
	bucket, key, err := ParseLocator(locator)
	if err != nil {
		return nil, err
	}

	out, err := f.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 get %s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	var r io.Reader = out.Body
	if f.maxSize > 0 {
		r = io.LimitReader(out.Body, f.maxSize+1)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("s3 read %s/%s: %w", bucket, key, err)
	}
	if f.maxSize > 0 && int64(len(data)) > f.maxSize {
		return nil, fmt.Errorf("s3 object %s/%s exceeds %d bytes", bucket, key, f.maxSize)
	}

	return data, nil
}
