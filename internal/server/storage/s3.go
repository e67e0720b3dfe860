// Package storage generates presigned URLs against an S3-compatible backend
// so clients upload baby avatars directly, bypassing the API server.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	sc "babysteps/internal/server/config"
)

const presignExpiry = 15 * time.Minute

type AvatarStore struct {
	config *sc.Config
}

func NewAvatarStore(config *sc.Config) *AvatarStore {
	return &AvatarStore{config: config}
}

// AvatarStorageKey partitions uploads by date so buckets stay browsable.
func AvatarStorageKey(babyID string) string {
	d := time.Now()
	return fmt.Sprintf("avatars/%d/%d/%d/%s-%v", d.Year(), d.Month(), d.Day(), babyID, uuid.New())
}

func (s *AvatarStore) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return s3.NewPresignClient(client), nil
}

// PresignedPutURL returns the storage key and a URL the client can PUT the
// avatar image to within presignExpiry.
func (s *AvatarStore) PresignedPutURL(ctx context.Context, babyID string) (string, string, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket
	key := AvatarStorageKey(babyID)

	req, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

// PresignedGetURL returns a temporary download URL for a stored avatar.
func (s *AvatarStore) PresignedGetURL(ctx context.Context, key string) (string, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
