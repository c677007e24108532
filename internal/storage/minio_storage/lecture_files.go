package minio_storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// LectureFileStorage keeps lecture attachments and hands back presigned URLs,
// so the rest of the system only ever sees a url/name/type/size descriptor.
type LectureFileStorage struct {
	storage      *MinioStorage
	bucket       string
	presignedTTL time.Duration
}

func NewLectureFileStorage(storage *MinioStorage, bucketName string, presignedTTL time.Duration) (*LectureFileStorage, error) {
	if err := storage.ensureBucket(context.Background(), bucketName); err != nil {
		return nil, err
	}
	return &LectureFileStorage{storage: storage, bucket: bucketName, presignedTTL: presignedTTL}, nil
}

func (s *LectureFileStorage) UploadAttachment(
	ctx context.Context,
	lectureID uuid.UUID,
	filename string,
	reader io.Reader,
	size int64,
	contentType string,
) (string, error) {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".bin"
	}

	objectKey := fmt.Sprintf("lectures/%s/attachment%s", lectureID.String(), ext)

	if contentType == "" {
		contentType = mime.TypeByExtension(ext)
		if contentType == "" {
			contentType = "application/octet-stream"
		}
	}

	_, err := s.storage.client.PutObject(
		ctx,
		s.bucket,
		objectKey,
		reader,
		size,
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return "", err
	}
	return objectKey, nil
}

func (s *LectureFileStorage) AttachmentURL(ctx context.Context, objectKey string) (string, error) {
	reqParams := make(url.Values)
	signed, err := s.storage.client.PresignedGetObject(
		ctx,
		s.bucket,
		objectKey,
		s.presignedTTL,
		reqParams,
	)
	if err != nil {
		return "", err
	}
	return signed.String(), nil
}
