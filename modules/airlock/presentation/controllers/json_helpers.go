package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/enclaveworks/enclave-sdk/modules/airlock/domain/airlockrequest"
	"github.com/enclaveworks/enclave-sdk/modules/airlock/services"
	"github.com/enclaveworks/enclave-sdk/modules/workspaces/domain/resource"
	"github.com/enclaveworks/enclave-sdk/modules/workspaces/domain/workspace"
	"github.com/enclaveworks/enclave-sdk/pkg/composables"
	"github.com/enclaveworks/enclave-sdk/pkg/serrors"
)

type apiError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Code: code, Message: message})
}

func decodeJSON(body io.Reader, dst any) error {
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// statusByCode maps domain error codes to HTTP statuses. Unknown codes fall
// through to 500 so new errors fail loud instead of masquerading as client
// mistakes.
var statusByCode = map[string]int{
	"AIRLOCK_DISABLED":                        http.StatusMethodNotAllowed,
	"AIRLOCK_MISSING_NOTIFICATION_CONTACT":    http.StatusExpectationFailed,
	"AIRLOCK_STORE_UNAVAILABLE":               http.StatusServiceUnavailable,
	"AIRLOCK_NOTIFICATION_UNAVAILABLE":        http.StatusServiceUnavailable,
	"AIRLOCK_NOTIFICATION_UPDATE_UNAVAILABLE": http.StatusServiceUnavailable,
	"AIRLOCK_DEPLOYMENT_UNAVAILABLE":          http.StatusServiceUnavailable,
	"AIRLOCK_FILE_STORE_UNAVAILABLE":          http.StatusServiceUnavailable,
	"AIRLOCK_LINK_WRONG_STATE":                http.StatusBadRequest,
	"AIRLOCK_ILLEGAL_STATUS_CHANGE":           http.StatusBadRequest,
	"AIRLOCK_INVALID_REVIEW_DECISION":         http.StatusBadRequest,
	"AIRLOCK_REVIEW_WRONG_STATE":              http.StatusBadRequest,
	"AIRLOCK_REVIEW_CONFIGURATION":            http.StatusUnprocessableEntity,
	"VALIDATION_FIELD_REQUIRED":               http.StatusBadRequest,
	"VALIDATION_INVALID_VALUE":                http.StatusBadRequest,
}

func writeServiceError(w http.ResponseWriter, err error) {
	var base *serrors.BaseError
	if errors.As(err, &base) {
		status, ok := statusByCode[base.Code]
		if !ok {
			status = http.StatusInternalServerError
		}
		writeJSON(w, status, apiError{
			Code:    base.Code,
			Message: base.Message,
			Details: base.TemplateData,
		})
		return
	}

	switch {
	case errors.Is(err, airlockrequest.ErrVersionConflict):
		writeAPIError(w, http.StatusConflict, "AIRLOCK_VERSION_CONFLICT", "request was modified concurrently, retry with fresh state")
	case errors.Is(err, airlockrequest.ErrNotFound),
		errors.Is(err, workspace.ErrNotFound),
		errors.Is(err, resource.ErrNotFound):
		writeAPIError(w, http.StatusNotFound, "NOT_FOUND", "resource not found")
	case errors.Is(err, composables.ErrForbidden):
		writeAPIError(w, http.StatusForbidden, "FORBIDDEN", "caller lacks a required role")
	default:
		writeAPIError(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal server error")
	}
}

func writeValidationError(w http.ResponseWriter, err error) {
	details := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			details[fe.Field()] = fe.Tag()
		}
	}
	writeJSON(w, http.StatusBadRequest, apiError{
		Code:    "VALIDATION_FAILED",
		Message: "request body failed validation",
		Details: details,
	})
}

// ensureRoles guards a handler with the role table shared with the
// allowed-actions resolver.
func ensureRoles(w http.ResponseWriter, r *http.Request, action airlockrequest.Action) bool {
	actor, err := composables.UseActor(r.Context())
	if err != nil {
		writeAPIError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing caller identity")
		return false
	}
	if !actor.Roles.HasAny(services.RolesForAction(action)...) {
		writeAPIError(w, http.StatusForbidden, "FORBIDDEN", "caller lacks a required role")
		return false
	}
	return true
}
