// Package filestore adapts MinIO (or any S3-compatible store) to the
// files.Store port.
package filestore

import (
	"context"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"

	"github.com/enclaveworks/enclave-sdk/modules/airlock/domain/files"
)

type MinioStore struct {
	client *minio.Client
	region string
}

func NewMinioClient(endpoint, accessKey, secretKey, region string, useSSL bool) (*minio.Client, error) {
	return minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
}

func NewMinioStore(client *minio.Client, region string) *MinioStore {
	return &MinioStore{client: client, region: region}
}

func (s *MinioStore) EnsureContainer(ctx context.Context, container string) error {
	exists, err := s.client.BucketExists(ctx, container)
	if err != nil {
		return errors.Wrapf(err, "failed to check container %s", container)
	}
	if exists {
		return nil
	}
	err = s.client.MakeBucket(ctx, container, minio.MakeBucketOptions{Region: s.region})
	return errors.Wrapf(err, "failed to create container %s", container)
}

func (s *MinioStore) PresignLink(
	ctx context.Context,
	container, object string,
	kind files.LinkKind,
	expiry time.Duration,
) (string, error) {
	if kind == files.LinkUpload {
		u, err := s.client.PresignedPutObject(ctx, container, object, expiry)
		if err != nil {
			return "", errors.Wrap(err, "failed to presign upload link")
		}
		return u.String(), nil
	}
	u, err := s.client.PresignedGetObject(ctx, container, object, expiry, nil)
	if err != nil {
		return "", errors.Wrap(err, "failed to presign download link")
	}
	return u.String(), nil
}
