package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/url"
	"os"
	"time"

	"wellnexus_back_end/internal/database"

	"github.com/minio/minio-go/v7"
)

// UploadVerificationDocument stores a practitioner's credential file under
// a per-practitioner prefix and returns the object path.
func UploadVerificationDocument(practitionerID string, file *multipart.FileHeader) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO not initialized")
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	bucket := os.Getenv("MINIO_BUCKET")
	objectName := fmt.Sprintf("practitioners/%s/%s", practitionerID, file.Filename)

	_, err = database.MinIO.PutObject(context.Background(), bucket, objectName, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	return objectName, nil
}

// SignedDocumentURL returns a presigned GET URL so admins can review a
// verification document without the bucket being public.
func SignedDocumentURL(ctx context.Context, objectName string, duration time.Duration) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO not initialized")
	}

	reqParams := make(url.Values)
	presignedURL, err := database.MinIO.PresignedGetObject(
		ctx,
		os.Getenv("MINIO_BUCKET"),
		objectName,
		duration,
		reqParams,
	)
	if err != nil {
		return "", err
	}

	return presignedURL.String(), nil
}
