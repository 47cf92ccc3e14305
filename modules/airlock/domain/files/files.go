// Package files defines the port to the object store holding airlock
// request payloads. Each request owns one container; clients never touch
// the store directly, they receive short-lived presigned links.
package files

import (
	"context"
	"time"
)

// LinkKind says what a presigned link permits.
type LinkKind string

const (
	LinkUpload   LinkKind = "upload"
	LinkDownload LinkKind = "download"
)

// Link is a presigned URL scoped to a single object in a request's
// container.
type Link struct {
	ContainerURL string    `json:"containerUrl"`
	Kind         LinkKind  `json:"kind"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// Store abstracts the object store backing request containers.
type Store interface {
	EnsureContainer(ctx context.Context, container string) error
	PresignLink(ctx context.Context, container, object string, kind LinkKind, expiry time.Duration) (string, error)
}
