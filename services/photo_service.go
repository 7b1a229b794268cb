package services

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"groomio-backend/models"
	"groomio-backend/utils"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/rs/zerolog/log"
)

// PhotoService stores visit photos in object storage under
// {salonId}/{petId}/{visitId}/{timestamp}_{filename}.
type PhotoService struct {
	storage *minio.Client
	bucket  string
}

func NewPhotoService(storage *minio.Client, bucket string) *PhotoService {
	return &PhotoService{storage: storage, bucket: bucket}
}

// Upload stores one photo and returns its metadata for the visit row.
func (s *PhotoService) Upload(ctx context.Context, salonID, petID, visitID uuid.UUID, filename, contentType string, size int64, r io.Reader) (models.VisitPhoto, error) {
	path := fmt.Sprintf("%s/%s/%s/%d_%s",
		salonID, petID, visitID,
		time.Now().UnixMilli(), utils.SanitizeFilename(filename))

	_, err := s.storage.PutObject(ctx, s.bucket, path, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return models.VisitPhoto{}, fmt.Errorf("failed to upload photo: %w", err)
	}

	return models.VisitPhoto{
		Path:       path,
		Filename:   filename,
		UploadedAt: time.Now().UTC(),
	}, nil
}

// Delete removes one stored photo.
func (s *PhotoService) Delete(ctx context.Context, path string) error {
	return s.storage.RemoveObject(ctx, s.bucket, path, minio.RemoveObjectOptions{})
}

// DeleteAll removes every photo of a visit, best effort. Called when the
// visit itself is deleted.
func (s *PhotoService) DeleteAll(ctx context.Context, photos models.VisitPhotos) {
	for _, photo := range photos {
		if err := s.Delete(ctx, photo.Path); err != nil {
			log.Warn().Err(err).Str("path", photo.Path).Msg("Failed to delete visit photo")
		}
	}
}

// PresignedURL returns a one-hour viewing URL for a stored photo.
func (s *PhotoService) PresignedURL(ctx context.Context, path string) (string, error) {
	u, err := s.storage.PresignedGetObject(ctx, s.bucket, path, time.Hour, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to presign photo url: %w", err)
	}
	return u.String(), nil
}
