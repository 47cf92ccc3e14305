package services

import (
	"context"
	"fmt"
	"time"

	"github.com/enclaveworks/enclave-sdk/modules/airlock/domain/airlockrequest"
	"github.com/enclaveworks/enclave-sdk/modules/airlock/domain/files"
	"github.com/enclaveworks/enclave-sdk/pkg/serrors"
)

// FileLinkService issues presigned container links for request payloads.
// Draft requests get upload links so the creator can stage data; once the
// request has left Draft only download links are issued, and none at all
// while a decision is being processed or after the request has been
// cancelled, rejected or blocked.
type FileLinkService struct {
	store  files.Store
	expiry time.Duration
}

func NewFileLinkService(store files.Store, expiry time.Duration) *FileLinkService {
	return &FileLinkService{store: store, expiry: expiry}
}

// ContainerName returns the object-store container owned by a request.
func ContainerName(req *airlockrequest.AirlockRequest) string {
	return "airlock-" + req.ID.String()
}

func linkKindFor(status airlockrequest.Status) (files.LinkKind, bool) {
	switch status {
	case airlockrequest.StatusDraft:
		return files.LinkUpload, true
	case airlockrequest.StatusSubmitted, airlockrequest.StatusInReview, airlockrequest.StatusApproved:
		return files.LinkDownload, true
	default:
		return "", false
	}
}

// RequestLink presigns a link to the named object in the request's
// container. Upload links lazily create the container.
func (s *FileLinkService) RequestLink(
	ctx context.Context,
	req *airlockrequest.AirlockRequest,
	filename string,
) (*files.Link, error) {
	if filename == "" {
		return nil, serrors.NewFieldRequiredError("filename")
	}
	kind, ok := linkKindFor(req.Status)
	if !ok {
		return nil, ErrLinkWrongState.WithTemplateData(map[string]string{
			"status": string(req.Status),
		})
	}

	container := ContainerName(req)
	if kind == files.LinkUpload {
		if err := s.store.EnsureContainer(ctx, container); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFileStoreUnavailable, err)
		}
	}

	url, err := s.store.PresignLink(ctx, container, filename, kind, s.expiry)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileStoreUnavailable, err)
	}
	return &files.Link{
		ContainerURL: url,
		Kind:         kind,
		ExpiresAt:    time.Now().UTC().Add(s.expiry),
	}, nil
}
