package utils

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Media storage for NID cards, project photos and product photos lives in an
// S3-compatible bucket. Controllers store object keys only; URLs are presigned
// on read.

func storageConfig() (aws.Config, error) {
	accessKey := os.Getenv("MEDIA_ACCESS_KEY_ID")
	secretKey := os.Getenv("MEDIA_SECRET_ACCESS_KEY")
	region := os.Getenv("MEDIA_REGION")
	if region == "" {
		region = "auto"
	}

	if accessKey == "" || secretKey == "" {
		return aws.Config{}, fmt.Errorf("MEDIA_ACCESS_KEY_ID or MEDIA_SECRET_ACCESS_KEY is not set")
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(region),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
	)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load media storage config: %w", err)
	}

	return cfg, nil
}

func storageClient() (*s3.Client, error) {
	cfg, err := storageConfig()
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint := os.Getenv("MEDIA_ENDPOINT"); endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return client, nil
}

func storageBucket() (string, error) {
	bucket := os.Getenv("MEDIA_BUCKET_NAME")
	if bucket == "" {
		return "", fmt.Errorf("MEDIA_BUCKET_NAME is not set")
	}
	return bucket, nil
}

// UploadMedia uploads a file under the given object key.
func UploadMedia(objectKey string, file io.Reader) error {
	bucket, err := storageBucket()
	if err != nil {
		return err
	}

	client, err := storageClient()
	if err != nil {
		return err
	}

	contentType := mime.TypeByExtension(path.Ext(objectKey))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(objectKey),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("media upload failed: %w", err)
	}

	return nil
}

// MediaSignedURL returns a presigned GET URL for the given object key.
func MediaSignedURL(objectKey string, expirySeconds int64) (string, error) {
	bucket, err := storageBucket()
	if err != nil {
		return "", err
	}

	client, err := storageClient()
	if err != nil {
		return "", err
	}

	presigner := s3.NewPresignClient(client)

	presigned, err := presigner.PresignGetObject(context.TODO(),
		&s3.GetObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(objectKey),
		},
		func(po *s3.PresignOptions) {
			po.Expires = time.Duration(expirySeconds) * time.Second
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to presign media URL: %w", err)
	}

	return presigned.URL, nil
}

// DeleteMedia removes one object. Used when a project or product that owns
// media files is deleted.
func DeleteMedia(objectKey string) error {
	bucket, err := storageBucket()
	if err != nil {
		return err
	}

	client, err := storageClient()
	if err != nil {
		return err
	}

	_, err = client.DeleteObject(context.TODO(), &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return fmt.Errorf("media delete failed: %w", err)
	}

	return nil
}

// DeleteMediaList best-effort deletes a comma-separated list of object keys.
// Failures are returned joined so callers can log and move on; entity deletion
// must not fail because an image was already gone.
func DeleteMediaList(keys *string) error {
	if keys == nil || strings.TrimSpace(*keys) == "" {
		return nil
	}
	var failed []string
	for _, key := range strings.Split(*keys, ",") {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if err := DeleteMedia(key); err != nil {
			failed = append(failed, key)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("failed to delete media objects: %s", strings.Join(failed, ", "))
	}
	return nil
}
