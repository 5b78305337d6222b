package repository

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"cv-generator/internal/model"
	"cv-generator/internal/slug"

	"github.com/minio/minio-go/v7"
)

const objectPrefix = "cv/"

// MinioStore keeps each CV as cv/<slug>.json in a bucket. Object storage
// has no create-if-absent here, so Create is a probe followed by a write
// and concurrent saves of the same slug can overwrite each other.
type MinioStore struct {
	client *minio.Client
	bucket string
}

func NewMinioStore(client *minio.Client, bucket string) *MinioStore {
	return &MinioStore{client: client, bucket: bucket}
}

func objectName(key string) string {
	return objectPrefix + key + ".json"
}

func isNoSuchKey(err error) bool {
	code := minio.ToErrorResponse(err).Code
	return code == "NoSuchKey" || code == "NotFound"
}

func (s *MinioStore) Put(ctx context.Context, key string, cv model.CV) error {
	if err := checkWriteSlug(key); err != nil {
		return err
	}
	b, err := encodeCV(cv)
	if err != nil {
		return err
	}
	_, err = s.client.PutObject(ctx, s.bucket, objectName(key), bytes.NewReader(b), int64(len(b)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("put object %s: %w", objectName(key), err)
	}
	return nil
}

func (s *MinioStore) Create(ctx context.Context, key string, cv model.CV) error {
	ok, err := s.Exists(ctx, key)
	if err != nil {
		return err
	}
	if ok {
		return taken(key)
	}
	return s.Put(ctx, key, cv)
}

func (s *MinioStore) Get(ctx context.Context, key string) (model.CV, error) {
	if !slug.Valid(key) {
		return model.CV{}, notFound(key, nil)
	}
	obj, err := s.client.GetObject(ctx, s.bucket, objectName(key), minio.GetObjectOptions{})
	if err != nil {
		return model.CV{}, notFound(key, err)
	}
	defer obj.Close()
	b, err := io.ReadAll(obj)
	if err != nil {
		return model.CV{}, notFound(key, err)
	}
	return decodeCV(key, b)
}

func (s *MinioStore) Exists(ctx context.Context, key string) (bool, error) {
	if !slug.Valid(key) {
		return false, nil
	}
	_, err := s.client.StatObject(ctx, s.bucket, objectName(key), minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if isNoSuchKey(err) {
		return false, nil
	}
	return false, fmt.Errorf("stat object %s: %w", objectName(key), err)
}
