package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	cfg "github.com/adforgehq/adforge-api/configs"
)

// Link TTLs. Publish links are handed to the external publishing service,
// which may fetch media long after the scheduling call; SigV4 caps presigned
// URLs at seven days, so that is the publish TTL. Display links back the
// interactive UI and stay short.
const (
	DisplayLinkTTL = time.Hour
	PublishLinkTTL = 7 * 24 * time.Hour
)

type StorageService interface {
	Upload(ctx context.Context, key string, file []byte, filetype string) error
	SignedLinkBatch(ctx context.Context, keys []string, ttl time.Duration) []string
	Remove(ctx context.Context, key string) error
}

type r2Storage struct {
	config cfg.Config
}

func NewStorageService(cfg cfg.Config) StorageService {
	return &r2Storage{config: cfg}
}

func (r *r2Storage) client() *s3.Client {
	awsCfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(r.config.R2.AccessKey, r.config.R2.SecretKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		slog.Info(err.Error())
		log.Fatal(err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r.config.R2.AccountID))
	})
}

func (r *r2Storage) Upload(ctx context.Context, key string, file []byte, filetype string) error {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(r.config.R2.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(file),
		ContentType: aws.String(filetype),
	}

	_, err := r.client().PutObject(ctx, input)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	return nil
}

// SignedLinkBatch signs every key it can and keeps input order. Entries that
// fail to sign come back as empty strings so callers can tell exactly which
// positions have no link.
func (r *r2Storage) SignedLinkBatch(ctx context.Context, keys []string, ttl time.Duration) []string {
	presigner := s3.NewPresignClient(r.client())

	links := make([]string, len(keys))
	for i, key := range keys {
		if key == "" {
			continue
		}
		request, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(r.config.R2.BucketName),
			Key:    aws.String(key),
		}, s3.WithPresignExpires(ttl))
		if err != nil {
			slog.Info(err.Error())
			continue
		}
		links[i] = request.URL
	}

	return links
}

func (r *r2Storage) Remove(ctx context.Context, key string) error {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(r.config.R2.BucketName),
		Key:    aws.String(key),
	}

	_, err := r.client().DeleteObject(ctx, input)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	return nil
}
