package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// SpacesService stores catalog character art in a DigitalOcean Spaces bucket
// (S3-compatible) and hands out the public URLs stored on catalog entries.
type SpacesService struct {
	client    *s3.Client
	bucket    string
	region    string
	ImageRoot string
}

func NewSpacesService(spacesKey, spacesSecret, region, bucket, imageRoot string) *SpacesService {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.digitaloceanspaces.com", region),
		}, nil
	})

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithEndpointResolverWithOptions(resolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(spacesKey, spacesSecret, "")),
		config.WithRegion(region),
	)
	if err != nil {
		panic(fmt.Sprintf("Unable to load Spaces config: %v", err))
	}

	return &SpacesService{
		client:    s3.NewFromConfig(cfg),
		bucket:    bucket,
		region:    region,
		ImageRoot: strings.TrimPrefix(imageRoot, "/"),
	}
}

// UploadCharacterImage stores the image publicly and returns its URL.
func (s *SpacesService) UploadCharacterImage(ctx context.Context, characterID int64, data []byte, contentType string) (string, error) {
	key := s.imageKey(characterID)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
		ACL:         "public-read",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return s.ImageURL(characterID), nil
}

func (s *SpacesService) DeleteCharacterImage(ctx context.Context, characterID int64) error {
	key := s.imageKey(characterID)
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	if err != nil {
		return fmt.Errorf("failed to delete image (%s): %w", key, err)
	}
	return nil
}

func (s *SpacesService) ImageURL(characterID int64) string {
	return fmt.Sprintf("https://%s.%s.digitaloceanspaces.com/%s", s.bucket, s.region, s.imageKey(characterID))
}

func (s *SpacesService) imageKey(characterID int64) string {
	return fmt.Sprintf("%s/%d.jpg", s.ImageRoot, characterID)
}

func (s *SpacesService) GetBucket() string {
	return s.bucket
}

func (s *SpacesService) GetRegion() string {
	return s.region
}
