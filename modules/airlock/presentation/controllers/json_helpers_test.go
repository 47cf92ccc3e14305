package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enclaveworks/enclave-sdk/modules/airlock/domain/airlockrequest"
	"github.com/enclaveworks/enclave-sdk/modules/airlock/services"
	"github.com/enclaveworks/enclave-sdk/modules/workspaces/domain/workspace"
)

func TestWriteServiceError_StatusMapping(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{services.ErrAirlockDisabled, http.StatusMethodNotAllowed, "AIRLOCK_DISABLED"},
		{services.ErrMissingNotificationContact, http.StatusExpectationFailed, "AIRLOCK_MISSING_NOTIFICATION_CONTACT"},
		{services.ErrStoreUnavailable, http.StatusServiceUnavailable, "AIRLOCK_STORE_UNAVAILABLE"},
		{services.ErrNotificationUnavailable, http.StatusServiceUnavailable, "AIRLOCK_NOTIFICATION_UNAVAILABLE"},
		{services.ErrNotificationUpdateUnavailable, http.StatusServiceUnavailable, "AIRLOCK_NOTIFICATION_UPDATE_UNAVAILABLE"},
		{services.ErrDeploymentUnavailable, http.StatusServiceUnavailable, "AIRLOCK_DEPLOYMENT_UNAVAILABLE"},
		{services.ErrFileStoreUnavailable, http.StatusServiceUnavailable, "AIRLOCK_FILE_STORE_UNAVAILABLE"},
		{services.ErrLinkWrongState, http.StatusBadRequest, "AIRLOCK_LINK_WRONG_STATE"},
		{services.ErrIllegalStatusChange, http.StatusBadRequest, "AIRLOCK_ILLEGAL_STATUS_CHANGE"},
		{services.ErrInvalidReviewDecision, http.StatusBadRequest, "AIRLOCK_INVALID_REVIEW_DECISION"},
		{services.ErrReviewWrongState, http.StatusBadRequest, "AIRLOCK_REVIEW_WRONG_STATE"},
		{services.ErrReviewConfiguration, http.StatusUnprocessableEntity, "AIRLOCK_REVIEW_CONFIGURATION"},
		{airlockrequest.ErrVersionConflict, http.StatusConflict, "AIRLOCK_VERSION_CONFLICT"},
		{airlockrequest.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{workspace.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.wantCode, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeServiceError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body apiError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}

func TestRequireDeployed(t *testing.T) {
	tests := []struct {
		status     string
		wantOK     bool
		wantStatus int
	}{
		{workspace.DeploymentStatusDeployed, true, http.StatusOK},
		{workspace.DeploymentStatusDeploying, false, http.StatusConflict},
		{workspace.DeploymentStatusFailed, false, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			rec := httptest.NewRecorder()
			ok := requireDeployed(rec, &workspace.Workspace{DeploymentStatus: tt.status})

			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Equal(t, tt.wantStatus, rec.Code)
				var body apiError
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, "WORKSPACE_NOT_DEPLOYED", body.Code)
			}
		})
	}
}

func TestWriteServiceError_WrappedErrorsKeepTheirMapping(t *testing.T) {
	rec := httptest.NewRecorder()
	writeServiceError(rec, fmt.Errorf("%w: connection refused", services.ErrStoreUnavailable))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestWriteServiceError_UnknownErrorIs500(t *testing.T) {
	rec := httptest.NewRecorder()
	writeServiceError(rec, fmt.Errorf("something unexpected"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body apiError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "INTERNAL_SERVER_ERROR", body.Code)
	assert.NotContains(t, body.Message, "unexpected")
}

func TestWriteServiceError_TemplateDataSurfacesAsDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	writeServiceError(rec, services.ErrIllegalStatusChange.WithTemplateData(map[string]string{
		"from": "draft",
		"to":   "approved",
	}))

	var body apiError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "draft", body.Details["from"])
	assert.Equal(t, "approved", body.Details["to"])
}
