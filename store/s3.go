package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/etnz/younginvestor"
)

// S3Config holds the connection settings of an S3 compatible bucket.
// Empty fields fall back to the default AWS configuration chain.
type S3Config struct {
	Region          string
	Endpoint        string // for R2, MinIO and friends
	AccessKeyID     string
	SecretAccessKey string
}

// s3API is the part of *s3.Client the store uses.
type s3API interface {
	manager.UploadAPIClient
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3 keeps each slot as the object <prefix>/<slot>.json in a bucket.
type S3 struct {
	client   s3API
	uploader *manager.Uploader
	bucket   string
	prefix   string
}

var _ Store = (*S3)(nil)

// NewS3 connects to bucket using c.
func NewS3(ctx context.Context, bucket, prefix string, c S3Config) (*S3, error) {
	var opts []func(*config.LoadOptions) error
	if c.Region != "" {
		opts = append(opts, config.WithRegion(c.Region))
	}
	if c.AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKeyID, c.SecretAccessKey, "")))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot load aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
			o.UsePathStyle = true
		}
	})
	return newS3(client, bucket, prefix), nil
}

func newS3(client s3API, bucket, prefix string) *S3 {
	return &S3{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   bucket,
		prefix:   strings.Trim(prefix, "/"),
	}
}

func (s *S3) Load(ctx context.Context, slot string) (younginvestor.Snapshot, error) {
	if err := checkSlot(slot); err != nil {
		return younginvestor.Snapshot{}, err
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(slot)),
	})
	if err != nil {
		return younginvestor.Snapshot{}, s.notFound(slot, err)
	}
	defer out.Body.Close()
	data, err := io.ReadAll(out.Body)
	if err != nil {
		return younginvestor.Snapshot{}, err
	}
	return jsonCodec.unmarshal(data)
}

func (s *S3) Save(ctx context.Context, slot string, snap younginvestor.Snapshot) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	data, err := jsonCodec.marshal(snap)
	if err != nil {
		return fmt.Errorf("cannot encode slot %q: %w", slot, err)
	}
	_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.key(slot)),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("cannot upload slot %q: %w", slot, err)
	}
	return nil
}

func (s *S3) List(ctx context.Context) ([]string, error) {
	prefix := s.key("")
	p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	names := []string{}
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			name := strings.TrimPrefix(aws.ToString(obj.Key), prefix)
			if name, ok := strings.CutSuffix(name, jsonCodec.ext); ok && !strings.Contains(name, "/") {
				names = append(names, name)
			}
		}
	}
	slices.Sort(names)
	return names, nil
}

// Delete removes the slot. S3 deletes are idempotent so the object is looked
// up first to report missing slots.
func (s *S3) Delete(ctx context.Context, slot string) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	key := aws.String(s.key(slot))
	if _, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{Bucket: aws.String(s.bucket), Key: key}); err != nil {
		return s.notFound(slot, err)
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: aws.String(s.bucket), Key: key})
	return err
}

func (s *S3) Close() error { return nil }

func (s *S3) key(slot string) string {
	if slot == "" {
		if s.prefix == "" {
			return ""
		}
		return s.prefix + "/"
	}
	return path.Join(s.prefix, slot+jsonCodec.ext)
}

// notFound maps missing object errors to fs.ErrNotExist.
func (s *S3) notFound(slot string, err error) error {
	var nsk *types.NoSuchKey
	var nf *types.NotFound
	if errors.As(err, &nsk) || errors.As(err, &nf) {
		return fmt.Errorf("slot %q: %w", slot, fs.ErrNotExist)
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return fmt.Errorf("slot %q: %w", slot, fs.ErrNotExist)
		}
	}
	return err
}
