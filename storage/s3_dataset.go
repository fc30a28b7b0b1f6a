package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"hotel-price-scraper/utils"
)

// ObjectPutter is the part of *s3.Client the dataset needs
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Dataset stores each item as its own object, so the prefix only ever grows
type S3Dataset struct {
	client ObjectPutter
	bucket string
	prefix string
	logger *utils.Logger

	now   func() time.Time
	newID func() string
}

// NewS3Dataset creates an S3Dataset writing under bucket/prefix
func NewS3Dataset(client ObjectPutter, bucket, prefix string, logger *utils.Logger) *S3Dataset {
	return &S3Dataset{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// objectKey sorts by time first; the uuid keeps keys unique within a second
func (d *S3Dataset) objectKey() string {
	name := fmt.Sprintf("%s_%s.json", d.now().UTC().Format("20060102T150405Z"), d.newID())
	return path.Join(d.prefix, name)
}

// Push uploads item as a JSON object
func (d *S3Dataset) Push(ctx context.Context, item any) error {
	body, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to encode dataset item: %w", err)
	}
	key := d.objectKey()
	_, err = d.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(d.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload dataset item to s3://%s/%s: %w", d.bucket, key, err)
	}
	d.logger.Info("Result pushed to dataset: s3://%s/%s", d.bucket, key)
	return nil
}
