package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/enclaveworks/enclave-sdk/modules/airlock/domain/airlockrequest"
	"github.com/enclaveworks/enclave-sdk/modules/airlock/presentation/controllers/dtos"
	"github.com/enclaveworks/enclave-sdk/modules/airlock/services"
	"github.com/enclaveworks/enclave-sdk/modules/workspaces/domain/access"
	"github.com/enclaveworks/enclave-sdk/modules/workspaces/domain/deployment"
	"github.com/enclaveworks/enclave-sdk/modules/workspaces/domain/workspace"
	workspaceservices "github.com/enclaveworks/enclave-sdk/modules/workspaces/services"
	"github.com/enclaveworks/enclave-sdk/pkg/application"
	"github.com/enclaveworks/enclave-sdk/pkg/composables"
	"github.com/enclaveworks/enclave-sdk/pkg/middleware"
)

type AirlockController struct {
	app        application.Application
	airlock    *services.AirlockService
	reviews    *services.ReviewResourceService
	links      *services.FileLinkService
	workspaces *workspaceservices.WorkspaceService
	basePath   string
}

func NewAirlockController(app application.Application) application.Controller {
	return &AirlockController{
		app:        app,
		airlock:    app.Service(services.AirlockService{}).(*services.AirlockService),
		reviews:    app.Service(services.ReviewResourceService{}).(*services.ReviewResourceService),
		links:      app.Service(services.FileLinkService{}).(*services.FileLinkService),
		workspaces: app.Service(workspaceservices.WorkspaceService{}).(*workspaceservices.WorkspaceService),
		basePath:   "/api/workspaces/{workspace_id}/requests",
	}
}

func (c *AirlockController) Key() string {
	return c.basePath
}

func (c *AirlockController) Register(r *mux.Router) {
	api := r.PathPrefix(c.basePath).Subrouter()
	api.Use(
		middleware.ProvideTenant(),
		middleware.ProvideActor(),
		middleware.WithTransaction(),
	)

	api.HandleFunc("", c.Create).Methods(http.MethodPost)
	api.HandleFunc("", c.List).Methods(http.MethodGet)
	api.HandleFunc("/{request_id}", c.Get).Methods(http.MethodGet)
	api.HandleFunc("/{request_id}:submit", c.Submit).Methods(http.MethodPost)
	api.HandleFunc("/{request_id}:cancel", c.Cancel).Methods(http.MethodPost)
	api.HandleFunc("/{request_id}/review", c.Review).Methods(http.MethodPost)
	api.HandleFunc("/{request_id}/review-user-resource", c.CreateReviewResource).Methods(http.MethodPost)
	api.HandleFunc("/{request_id}/link", c.GetLink).Methods(http.MethodGet)
}

// requestEnvelope is the response shape for single-request reads and
// mutations. AllowedUserActions tells clients which lifecycle operations the
// caller may invoke next.
type requestEnvelope struct {
	AirlockRequest     *airlockrequest.AirlockRequest `json:"airlockRequest"`
	AllowedUserActions []airlockrequest.Action        `json:"allowedUserActions"`
}

func (c *AirlockController) envelope(req *airlockrequest.AirlockRequest, actor access.Actor) requestEnvelope {
	return requestEnvelope{
		AirlockRequest:     req,
		AllowedUserActions: services.AllowedActions(req, actor.Roles),
	}
}

func (c *AirlockController) loadWorkspace(w http.ResponseWriter, r *http.Request) (*workspace.Workspace, bool) {
	workspaceID, err := uuid.Parse(mux.Vars(r)["workspace_id"])
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "INVALID_PATH", "workspace_id is not a valid uuid")
		return nil, false
	}
	ws, err := c.workspaces.GetByID(r.Context(), workspaceID)
	if err != nil {
		writeServiceError(w, err)
		return nil, false
	}
	return ws, true
}

// requireDeployed rejects operations against a workspace whose deployment
// has not finished. Reads of existing requests stay available while a
// workspace redeploys, matching the lifecycle gates on the write paths.
func requireDeployed(w http.ResponseWriter, ws *workspace.Workspace) bool {
	if !ws.Deployed() {
		writeAPIError(w, http.StatusConflict, "WORKSPACE_NOT_DEPLOYED", "workspace is not fully deployed")
		return false
	}
	return true
}

func (c *AirlockController) loadRequest(
	w http.ResponseWriter,
	r *http.Request,
	ws *workspace.Workspace,
) (*airlockrequest.AirlockRequest, bool) {
	requestID, err := uuid.Parse(mux.Vars(r)["request_id"])
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "INVALID_PATH", "request_id is not a valid uuid")
		return nil, false
	}
	req, err := c.airlock.GetRequest(r.Context(), requestID)
	if err != nil {
		writeServiceError(w, err)
		return nil, false
	}
	if req.WorkspaceID != ws.ID {
		writeAPIError(w, http.StatusNotFound, "NOT_FOUND", "resource not found")
		return nil, false
	}
	return req, true
}

func (c *AirlockController) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := composables.UseActor(r.Context())
	if err != nil {
		writeAPIError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing caller identity")
		return
	}
	if !actor.Roles.HasAny(access.RoleWorkspaceOwner, access.RoleWorkspaceResearcher) {
		writeAPIError(w, http.StatusForbidden, "FORBIDDEN", "caller lacks a required role")
		return
	}

	var dto dtos.CreateAirlockRequestDTO
	if err := decodeJSON(r.Body, &dto); err != nil {
		writeAPIError(w, http.StatusBadRequest, "INVALID_BODY", "invalid json body")
		return
	}
	if err := dto.Ok(); err != nil {
		writeValidationError(w, err)
		return
	}

	ws, ok := c.loadWorkspace(w, r)
	if !ok {
		return
	}

	if !requireDeployed(w, ws) {
		return
	}

	created, err := c.airlock.CreateRequest(r.Context(), ws, actor, services.CreateRequestParams{
		Type:                  airlockrequest.Type(dto.Type),
		Title:                 dto.Title,
		BusinessJustification: dto.BusinessJustification,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c.envelope(created, actor))
}

func (c *AirlockController) List(w http.ResponseWriter, r *http.Request) {
	actor, err := composables.UseActor(r.Context())
	if err != nil {
		writeAPIError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing caller identity")
		return
	}
	ws, ok := c.loadWorkspace(w, r)
	if !ok {
		return
	}

	if !requireDeployed(w, ws) {
		return
	}

	q := r.URL.Query()
	filter := airlockrequest.Filter{
		Type:      airlockrequest.Type(q.Get("type")),
		Status:    airlockrequest.Status(q.Get("status")),
		OrderBy:   q.Get("orderBy"),
		Ascending: q.Get("order") == "asc",
	}
	if creator := q.Get("creator_id"); creator != "" {
		creatorID, err := uuid.Parse(creator)
		if err != nil {
			writeAPIError(w, http.StatusBadRequest, "INVALID_QUERY", "creator_id is not a valid uuid")
			return
		}
		filter.CreatorID = creatorID
	}

	requests, err := c.airlock.ListRequests(r.Context(), ws, actor, filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	type listResponse struct {
		AirlockRequests []requestEnvelope `json:"airlockRequests"`
	}
	envelopes := make([]requestEnvelope, 0, len(requests))
	for _, req := range requests {
		envelopes = append(envelopes, c.envelope(req, actor))
	}
	writeJSON(w, http.StatusOK, listResponse{AirlockRequests: envelopes})
}

func (c *AirlockController) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := composables.UseActor(r.Context())
	if err != nil {
		writeAPIError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing caller identity")
		return
	}
	ws, ok := c.loadWorkspace(w, r)
	if !ok {
		return
	}
	req, ok := c.loadRequest(w, r, ws)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, c.envelope(req, actor))
}

func (c *AirlockController) Submit(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, airlockrequest.ActionSubmit, c.airlock.Submit)
}

func (c *AirlockController) Cancel(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, airlockrequest.ActionCancel, c.airlock.Cancel)
}

type transitionFunc func(
	ctx context.Context,
	ws *workspace.Workspace,
	req *airlockrequest.AirlockRequest,
	actor access.Actor,
) (*airlockrequest.AirlockRequest, error)

func (c *AirlockController) transition(
	w http.ResponseWriter,
	r *http.Request,
	action airlockrequest.Action,
	apply transitionFunc,
) {
	if !ensureRoles(w, r, action) {
		return
	}
	actor, _ := composables.UseActor(r.Context())

	ws, ok := c.loadWorkspace(w, r)
	if !ok {
		return
	}
	req, ok := c.loadRequest(w, r, ws)
	if !ok {
		return
	}

	updated, err := apply(r.Context(), ws, req, actor)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c.envelope(updated, actor))
}

func (c *AirlockController) Review(w http.ResponseWriter, r *http.Request) {
	if !ensureRoles(w, r, airlockrequest.ActionReview) {
		return
	}
	actor, _ := composables.UseActor(r.Context())

	var dto dtos.ReviewDecisionDTO
	if err := decodeJSON(r.Body, &dto); err != nil {
		writeAPIError(w, http.StatusBadRequest, "INVALID_BODY", "invalid json body")
		return
	}
	if err := dto.Ok(); err != nil {
		writeValidationError(w, err)
		return
	}

	ws, ok := c.loadWorkspace(w, r)
	if !ok {
		return
	}
	if !requireDeployed(w, ws) {
		return
	}
	req, ok := c.loadRequest(w, r, ws)
	if !ok {
		return
	}

	updated, err := c.reviews.RecordDecision(r.Context(), ws, req, services.ReviewParams{
		Decision:            airlockrequest.Decision(dto.Decision),
		DecisionExplanation: dto.DecisionExplanation,
	}, actor)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c.envelope(updated, actor))
}

// GetLink hands out a presigned link to the request's payload container:
// an upload link while the request is a draft, a download link afterwards.
func (c *AirlockController) GetLink(w http.ResponseWriter, r *http.Request) {
	actor, err := composables.UseActor(r.Context())
	if err != nil {
		writeAPIError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing caller identity")
		return
	}
	if !actor.Roles.HasAny(access.RoleWorkspaceOwner, access.RoleWorkspaceResearcher, access.RoleAirlockManager) {
		writeAPIError(w, http.StatusForbidden, "FORBIDDEN", "caller lacks a required role")
		return
	}

	ws, ok := c.loadWorkspace(w, r)
	if !ok {
		return
	}
	if !requireDeployed(w, ws) {
		return
	}
	req, ok := c.loadRequest(w, r, ws)
	if !ok {
		return
	}

	link, err := c.links.RequestLink(r.Context(), req, r.URL.Query().Get("filename"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, link)
}

func (c *AirlockController) CreateReviewResource(w http.ResponseWriter, r *http.Request) {
	if !ensureRoles(w, r, airlockrequest.ActionReview) {
		return
	}
	actor, _ := composables.UseActor(r.Context())

	ws, ok := c.loadWorkspace(w, r)
	if !ok {
		return
	}
	if !requireDeployed(w, ws) {
		return
	}
	req, ok := c.loadRequest(w, r, ws)
	if !ok {
		return
	}

	updated, op, err := c.reviews.CreateReviewResource(r.Context(), ws, req, actor)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	type reviewResourceResponse struct {
		requestEnvelope
		Operation *deployment.Operation `json:"operation"`
	}
	writeJSON(w, http.StatusAccepted, reviewResourceResponse{
		requestEnvelope: c.envelope(updated, actor),
		Operation:       op,
	})
}
