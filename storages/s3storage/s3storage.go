// Package s3storage persists blobs in an S3 bucket. A custom endpoint
// supports S3-compatible object stores.
package s3storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"imgd/core"
	"imgd/plugin"
)

func init() {
	plugin.Storages.Register("s3", &Factory{})
}

// Factory creates S3 storages backed by one shared client. New runs
// concurrently from request handlers, so the client is built once.
type Factory struct {
	once   sync.Once
	client s3iface.S3API
	err    error
}

// New returns a storage writing to s3_storage_bucket.
func (f *Factory) New(ctx *core.Context) (core.Storage, error) {
	if ctx.Config.S3StorageBucket == "" {
		return nil, errors.New("s3storage: s3_storage_bucket is not set")
	}
	f.once.Do(func() {
		if f.client != nil {
			return
		}
		cfg := aws.NewConfig().WithRegion(ctx.Config.S3StorageRegion)
		if ctx.Config.S3StorageEndpoint != "" {
			cfg = cfg.WithEndpoint(ctx.Config.S3StorageEndpoint).WithS3ForcePathStyle(true)
		}
		sess, err := session.NewSession(cfg)
		if err != nil {
			f.err = fmt.Errorf("s3storage: creating session: %w", err)
			return
		}
		f.client = s3.New(sess)
	})
	if f.err != nil {
		return nil, f.err
	}
	return &storage{client: f.client, bucket: ctx.Config.S3StorageBucket}, nil
}

type storage struct {
	client s3iface.S3API
	bucket string
}

func (s *storage) Put(ctx context.Context, key string, blob []byte) error {
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(blob),
	})
	if err != nil {
		return fmt.Errorf("s3storage: writing %q: %w", key, err)
	}
	return nil
}

func (s *storage) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("s3storage: reading %q: %w", key, err)
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}
