package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/enclaveworks/enclave-sdk/modules/airlock/domain/airlockrequest"
	"github.com/enclaveworks/enclave-sdk/modules/workspaces/domain/access"
	"github.com/enclaveworks/enclave-sdk/modules/workspaces/domain/deployment"
	"github.com/enclaveworks/enclave-sdk/modules/workspaces/domain/resource"
	"github.com/enclaveworks/enclave-sdk/modules/workspaces/domain/workspace"
	"github.com/enclaveworks/enclave-sdk/pkg/composables"
)

// ReviewResourceService provisions and tears down the transient compute
// resources airlock managers use to inspect request payloads, and records
// review decisions on the request itself.
type ReviewResourceService struct {
	airlock      *AirlockService
	resources    resource.Repository
	orchestrator deployment.Orchestrator
}

func NewReviewResourceService(
	airlock *AirlockService,
	resources resource.Repository,
	orchestrator deployment.Orchestrator,
) *ReviewResourceService {
	return &ReviewResourceService{
		airlock:      airlock,
		resources:    resources,
		orchestrator: orchestrator,
	}
}

// reviewTarget resolves where the review resource for this request must be
// provisioned. Import payloads are inspected in the dedicated review
// workspace named by the config; export payloads never leave the request's
// own workspace.
func reviewTarget(
	ws *workspace.Workspace,
	req *airlockrequest.AirlockRequest,
) (*workspace.ReviewTarget, error) {
	cfg, err := ws.AirlockReviewConfig()
	if err != nil {
		return nil, ErrReviewConfiguration
	}
	var target workspace.ReviewTarget
	switch req.Type {
	case airlockrequest.TypeImport:
		target = cfg.Import
	case airlockrequest.TypeExport:
		target = cfg.Export
		target.WorkspaceID = req.WorkspaceID
	default:
		return nil, ErrReviewConfiguration
	}
	if target.WorkspaceID == uuid.Nil || target.WorkspaceServiceID == uuid.Nil || target.UserResourceTemplateName == "" {
		return nil, ErrReviewConfiguration
	}
	return &target, nil
}

// CreateReviewResource provisions a review VM for an in-review request,
// dispatches its deployment and links the resource to the request. The link
// is attached with a plain field update, so no lifecycle events fire.
func (s *ReviewResourceService) CreateReviewResource(
	ctx context.Context,
	ws *workspace.Workspace,
	req *airlockrequest.AirlockRequest,
	reviewer access.Actor,
) (*airlockrequest.AirlockRequest, *deployment.Operation, error) {
	if req.Status != airlockrequest.StatusInReview {
		return nil, nil, ErrReviewWrongState.WithTemplateData(map[string]string{
			"status": string(req.Status),
		})
	}

	target, err := reviewTarget(ws, req)
	if err != nil {
		return nil, nil, err
	}

	svc, err := s.resources.GetWorkspaceService(ctx, target.WorkspaceID, target.WorkspaceServiceID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrReviewConfiguration, err)
	}

	res, err := s.resources.CreateUserResource(ctx, &resource.UserResource{
		ID:                       uuid.New(),
		WorkspaceID:              target.WorkspaceID,
		ParentWorkspaceServiceID: svc.ID,
		TemplateName:             target.UserResourceTemplateName,
		OwnerID:                  reviewer.ID,
		Properties: map[string]any{
			"airlock_request_id": req.ID.String(),
		},
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	op, err := s.orchestrator.Deploy(ctx, res, reviewer.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrDeploymentUnavailable, err)
	}

	updated, err := s.airlock.UpdateRequest(ctx, ws, req, reviewer, UpdateRequestParams{
		ReviewUserResource: &airlockrequest.ReviewUserResource{
			WorkspaceID:        target.WorkspaceID,
			WorkspaceServiceID: svc.ID,
			UserResourceID:     res.ID,
		},
	})
	if err != nil {
		return nil, nil, err
	}
	return updated, op, nil
}

// TeardownReviewResources dispatches deletion of every review resource linked
// to the request. Teardown is best effort: failures are logged and skipped so
// one stuck VM cannot block a decision. Dispatched operations are returned.
func (s *ReviewResourceService) TeardownReviewResources(
	ctx context.Context,
	req *airlockrequest.AirlockRequest,
	requestedBy access.Actor,
) []*deployment.Operation {
	log := composables.UseLogger(ctx)

	// Lookups go through the request-scoped transaction, which serves one
	// query at a time; resolve every reference up front and fan out only the
	// queue dispatches, which do not touch the transaction.
	resolved := make([]*resource.UserResource, 0, len(req.ReviewUserResources))
	for _, ref := range req.ReviewUserResources {
		res, err := s.resources.GetUserResource(ctx, ref.WorkspaceID, ref.WorkspaceServiceID, ref.UserResourceID)
		if err != nil {
			log.WithField("user_resource_id", ref.UserResourceID).WithError(err).
				Warn("airlock: review resource lookup failed during teardown")
			continue
		}
		resolved = append(resolved, res)
	}

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		ops []*deployment.Operation
	)
	for _, res := range resolved {
		wg.Add(1)
		go func(res *resource.UserResource) {
			defer wg.Done()
			op, err := s.orchestrator.Uninstall(ctx, res, requestedBy.ID)
			if err != nil {
				log.WithField("user_resource_id", res.ID).WithError(err).
					Warn("airlock: review resource teardown dispatch failed")
				return
			}
			mu.Lock()
			ops = append(ops, op)
			mu.Unlock()
		}(res)
	}
	wg.Wait()
	return ops
}

// RecordDecision records a review verdict: it appends the review, moves the
// request to the matching in-progress status in the same write, then tears
// down the reviewer's resources.
func (s *ReviewResourceService) RecordDecision(
	ctx context.Context,
	ws *workspace.Workspace,
	req *airlockrequest.AirlockRequest,
	params ReviewParams,
	reviewer access.Actor,
) (*airlockrequest.AirlockRequest, error) {
	review, err := s.airlock.NewReview(params, reviewer)
	if err != nil {
		return nil, err
	}

	target := airlockrequest.StatusApprovalInProgress
	if params.Decision == airlockrequest.DecisionRejected {
		target = airlockrequest.StatusRejectionInProgress
	}

	updated, err := s.airlock.UpdateRequest(ctx, ws, req, reviewer, UpdateRequestParams{
		NewStatus: &target,
		Review:    review,
	})
	if err != nil {
		return nil, err
	}

	s.TeardownReviewResources(ctx, updated, reviewer)
	return updated, nil
}
