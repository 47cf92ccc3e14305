package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/enclaveworks/enclave-sdk/modules/airlock/domain/airlockrequest"
	"github.com/enclaveworks/enclave-sdk/modules/airlock/domain/events"
	"github.com/enclaveworks/enclave-sdk/modules/workspaces/domain/access"
	"github.com/enclaveworks/enclave-sdk/modules/workspaces/domain/workspace"
	"github.com/enclaveworks/enclave-sdk/pkg/composables"
	"github.com/enclaveworks/enclave-sdk/pkg/serrors"
)

// AirlockService orchestrates the request lifecycle: it validates
// transitions against the legal-transition table, persists with optimistic
// concurrency, and publishes status-changed plus stakeholder-notification
// events. It holds no per-request state between calls.
type AirlockService struct {
	repo             airlockrequest.Repository
	publisher        events.Publisher
	directory        access.RoleAssignmentDirectory
	enabledByDefault bool
}

func NewAirlockService(
	repo airlockrequest.Repository,
	publisher events.Publisher,
	directory access.RoleAssignmentDirectory,
	enabledByDefault bool,
) *AirlockService {
	return &AirlockService{
		repo:             repo,
		publisher:        publisher,
		directory:        directory,
		enabledByDefault: enabledByDefault,
	}
}

type CreateRequestParams struct {
	Type                  airlockrequest.Type
	Title                 string
	BusinessJustification string
}

// CreateRequest creates a Draft request and notifies stakeholders. The
// consistency contract: the request is persisted first, then the event pair
// is published; if publishing fails the persisted record is deleted again so
// a request is never visible without its creation notification.
func (s *AirlockService) CreateRequest(
	ctx context.Context,
	ws *workspace.Workspace,
	creator access.Actor,
	params CreateRequestParams,
) (*airlockrequest.AirlockRequest, error) {
	if !ws.AirlockEnabled(s.enabledByDefault) {
		return nil, ErrAirlockDisabled
	}
	if params.Type != airlockrequest.TypeImport && params.Type != airlockrequest.TypeExport {
		return nil, serrors.NewInvalidValueError("type", string(params.Type))
	}
	if params.Title == "" {
		return nil, serrors.NewFieldRequiredError("title")
	}
	if params.BusinessJustification == "" {
		return nil, serrors.NewFieldRequiredError("businessJustification")
	}

	// Contacts are resolved before anything is persisted: a request nobody
	// can be notified about must never reach the store.
	contacts, err := s.workspaceContacts(ctx, ws)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	req := &airlockrequest.AirlockRequest{
		ID:                    uuid.New(),
		WorkspaceID:           ws.ID,
		Type:                  params.Type,
		Title:                 params.Title,
		BusinessJustification: params.BusinessJustification,
		Status:                airlockrequest.StatusDraft,
		Files:                 []airlockrequest.File{},
		Reviews:               []airlockrequest.Review{},
		ReviewUserResources:   []airlockrequest.ReviewUserResource{},
		CreatedBy:             creator,
		UpdatedBy:             creator,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	created, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if err := s.publishPair(ctx, created, "", contacts); err != nil {
		airlockPublishFailures.WithLabelValues("create").Inc()
		log := composables.UseLogger(ctx)
		log.WithField("request_id", created.ID).WithError(err).
			Error("airlock: failed publishing creation events, rolling back")
		if delErr := s.repo.Delete(ctx, created.ID); delErr != nil {
			log.WithField("request_id", created.ID).WithError(delErr).
				Error("airlock: compensating delete failed")
		}
		return nil, fmt.Errorf("%w: %v", ErrNotificationUnavailable, err)
	}

	airlockTransitions.WithLabelValues("", string(created.Status)).Inc()
	return created, nil
}

type UpdateRequestParams struct {
	NewStatus          *airlockrequest.Status
	Files              []airlockrequest.File
	StatusMessage      *string
	Review             *airlockrequest.Review
	ReviewUserResource *airlockrequest.ReviewUserResource
}

// UpdateRequest applies a merged update to a request. When NewStatus is set
// the transition is validated first and the event pair is published after
// the write; a publish failure is reported but the store mutation stays in
// place, unlike the creation path. When NewStatus is nil this is a pure
// field update and nothing is published.
func (s *AirlockService) UpdateRequest(
	ctx context.Context,
	ws *workspace.Workspace,
	req *airlockrequest.AirlockRequest,
	updatedBy access.Actor,
	params UpdateRequestParams,
) (*airlockrequest.AirlockRequest, error) {
	if params.NewStatus != nil && !airlockrequest.IsLegalTransition(req.Status, *params.NewStatus) {
		return nil, ErrIllegalStatusChange.WithTemplateData(map[string]string{
			"from": string(req.Status),
			"to":   string(*params.NewStatus),
		})
	}

	updated := cloneRequest(req)
	if params.NewStatus != nil {
		updated.Status = *params.NewStatus
	}
	if params.Files != nil {
		updated.Files = params.Files
	}
	if params.StatusMessage != nil {
		updated.StatusMessage = *params.StatusMessage
	}
	if params.Review != nil {
		updated.Reviews = append(updated.Reviews, *params.Review)
	}
	if params.ReviewUserResource != nil {
		updated.ReviewUserResources = append(updated.ReviewUserResources, *params.ReviewUserResource)
	}
	updated.UpdatedBy = updatedBy
	updated.UpdatedAt = time.Now().UTC()

	persisted, err := s.repo.Update(ctx, updated, req.Version)
	switch {
	case err == nil:
	case isDomainErr(err):
		return nil, err
	default:
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if params.NewStatus == nil {
		return persisted, nil
	}

	airlockTransitions.WithLabelValues(string(req.Status), string(persisted.Status)).Inc()

	contacts, err := s.workspaceContacts(ctx, ws)
	if err == nil {
		err = s.publishPair(ctx, persisted, req.Status, contacts)
	}
	if err != nil {
		// The record stays updated; only the notification is reported as
		// failed. A retry republishes without replaying the write.
		airlockPublishFailures.WithLabelValues("update").Inc()
		composables.UseLogger(ctx).WithField("request_id", persisted.ID).WithError(err).
			Error("airlock: failed publishing status-changed events")
		return nil, fmt.Errorf("%w: %v", ErrNotificationUpdateUnavailable, err)
	}
	return persisted, nil
}

// Submit moves a request to Submitted.
func (s *AirlockService) Submit(
	ctx context.Context,
	ws *workspace.Workspace,
	req *airlockrequest.AirlockRequest,
	actor access.Actor,
) (*airlockrequest.AirlockRequest, error) {
	target := airlockrequest.StatusSubmitted
	return s.UpdateRequest(ctx, ws, req, actor, UpdateRequestParams{NewStatus: &target})
}

// Cancel moves a request to Cancelled.
func (s *AirlockService) Cancel(
	ctx context.Context,
	ws *workspace.Workspace,
	req *airlockrequest.AirlockRequest,
	actor access.Actor,
) (*airlockrequest.AirlockRequest, error) {
	target := airlockrequest.StatusCancelled
	return s.UpdateRequest(ctx, ws, req, actor, UpdateRequestParams{NewStatus: &target})
}

type ReviewParams struct {
	Decision            airlockrequest.Decision
	DecisionExplanation string
}

// NewReview validates and constructs a review record. No status change
// happens here; callers pair the review with an UpdateRequest that moves the
// request to the matching in-progress status.
func (s *AirlockService) NewReview(params ReviewParams, reviewer access.Actor) (*airlockrequest.Review, error) {
	if params.Decision != airlockrequest.DecisionApproved && params.Decision != airlockrequest.DecisionRejected {
		return nil, ErrInvalidReviewDecision.WithTemplateData(map[string]string{
			"decision": string(params.Decision),
		})
	}
	if params.DecisionExplanation == "" {
		return nil, serrors.NewFieldRequiredError("decisionExplanation")
	}
	return &airlockrequest.Review{
		ID:                  uuid.New(),
		Decision:            params.Decision,
		DecisionExplanation: params.DecisionExplanation,
		Reviewer:            reviewer,
		CreatedAt:           time.Now().UTC(),
	}, nil
}

func (s *AirlockService) GetRequest(ctx context.Context, id uuid.UUID) (*airlockrequest.AirlockRequest, error) {
	return s.repo.GetByID(ctx, id)
}

// ListRequests lists a workspace's requests. Callers without a managing role
// only see requests they created themselves.
func (s *AirlockService) ListRequests(
	ctx context.Context,
	ws *workspace.Workspace,
	caller access.Actor,
	filter airlockrequest.Filter,
) ([]*airlockrequest.AirlockRequest, error) {
	filter.WorkspaceID = ws.ID
	if !caller.Roles.HasAny(access.RoleAirlockManager, access.RoleWorkspaceOwner) {
		filter.CreatorID = caller.ID
	}
	return s.repo.List(ctx, filter)
}

// workspaceContacts resolves notification addresses and enforces that both
// the researcher and airlock manager roles are reachable.
func (s *AirlockService) workspaceContacts(
	ctx context.Context,
	ws *workspace.Workspace,
) (map[access.Role][]string, error) {
	contacts, err := s.directory.WorkspaceRoleAssignments(ctx, ws.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	for _, role := range []access.Role{access.RoleWorkspaceResearcher, access.RoleAirlockManager} {
		if len(contacts[role]) == 0 {
			return nil, ErrMissingNotificationContact.WithTemplateData(map[string]string{
				"role": string(role),
			})
		}
	}
	return contacts, nil
}

// publishPair emits the status-changed event followed by the stakeholder
// notification. The order is part of the contract.
func (s *AirlockService) publishPair(
	ctx context.Context,
	req *airlockrequest.AirlockRequest,
	previous airlockrequest.Status,
	contacts map[access.Role][]string,
) error {
	if err := s.publisher.PublishStatusChanged(ctx, events.StatusChanged{
		RequestID:      req.ID,
		PreviousStatus: string(previous),
		NewStatus:      string(req.Status),
		Type:           string(req.Type),
		WorkspaceID:    req.WorkspaceID,
	}); err != nil {
		return err
	}
	return s.publisher.PublishNotification(ctx, events.Notification{
		RequestID:   req.ID,
		EventType:   "status_changed",
		EventValue:  string(req.Status),
		Recipients:  contacts,
		WorkspaceID: req.WorkspaceID,
	})
}

func cloneRequest(req *airlockrequest.AirlockRequest) *airlockrequest.AirlockRequest {
	clone := *req
	clone.Files = append([]airlockrequest.File(nil), req.Files...)
	clone.Reviews = append([]airlockrequest.Review(nil), req.Reviews...)
	clone.ReviewUserResources = append([]airlockrequest.ReviewUserResource(nil), req.ReviewUserResources...)
	return &clone
}

func isDomainErr(err error) bool {
	return errors.Is(err, airlockrequest.ErrVersionConflict) || errors.Is(err, airlockrequest.ErrNotFound)
}
