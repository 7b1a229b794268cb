package config

import (
	"context"
	"os"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"
)

var Storage *minio.Client

// PhotoBucket returns the bucket holding visit photos.
func PhotoBucket() string {
	if b := os.Getenv("STORAGE_BUCKET"); b != "" {
		return b
	}
	return "visit-photos"
}

// ConnectStorage initializes the object storage client for visit photos
// and makes sure the photo bucket exists.
func ConnectStorage() {
	endpoint := os.Getenv("STORAGE_ENDPOINT")
	accessKey := os.Getenv("STORAGE_ACCESS_KEY")
	secretKey := os.Getenv("STORAGE_SECRET_KEY")
	useSSL := os.Getenv("STORAGE_USE_SSL") != "false"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		panic("Failed to connect object storage: " + err.Error())
	}

	ctx := context.Background()
	bucket := PhotoBucket()
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		panic("Failed to check photo bucket: " + err.Error())
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			panic("Failed to create photo bucket: " + err.Error())
		}
		log.Info().Str("bucket", bucket).Msg("Photo bucket created")
	}

	Storage = client
}
