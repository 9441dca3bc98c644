package storage

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/onfr0y/Sp-app/internal/apperr"
	"github.com/onfr0y/Sp-app/internal/config"
)

// S3 stocke les images dans un bucket sous le préfixe posts/.
// L'identifiant de stockage est la clé complète de l'objet.
type S3 struct {
	client *s3.Client
	bucket string
	region string
}

func NewS3(cfg *config.Config) (*S3, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("chargement config AWS: %w", err)
	}

	return &S3{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.S3Bucket,
		region: cfg.S3Region,
	}, nil
}

func (s *S3) Store(ctx context.Context, data []byte, filename, contentType string) (Image, error) {
	if err := Validate(filename, contentType, int64(len(data))); err != nil {
		return Image{}, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	key := fmt.Sprintf("posts/post_%s%s", uuid.New().String(), ext)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return Image{}, apperr.ServiceUnavailable("Erreur lors de l'upload", err)
	}

	width, height := DecodeDimensions(data)
	return Image{
		URL:       fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key),
		Width:     width,
		Height:    height,
		StorageID: key,
	}, nil
}

func (s *S3) Delete(ctx context.Context, storageID string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(storageID),
	})
	if err != nil {
		return apperr.ServiceUnavailable("Erreur suppression S3", err)
	}
	return nil
}
