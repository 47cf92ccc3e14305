package persistence

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enclaveworks/enclave-sdk/modules/airlock/domain/airlockrequest"
)

func TestOrderClause(t *testing.T) {
	tests := []struct {
		name   string
		filter airlockrequest.Filter
		want   string
	}{
		{"default", airlockrequest.Filter{}, "created_at DESC"},
		{"whitelisted ascending", airlockrequest.Filter{OrderBy: "updatedAt", Ascending: true}, "updated_at ASC"},
		{"whitelisted descending", airlockrequest.Filter{OrderBy: "status"}, "status DESC"},
		{"title maps into the document", airlockrequest.Filter{OrderBy: "title", Ascending: true}, "doc->>'title' ASC"},
		{"unknown column falls back", airlockrequest.Filter{OrderBy: "created_at; DROP TABLE"}, "created_at DESC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, orderClause(tt.filter))
		})
	}
}

func TestBuildRequestFilters(t *testing.T) {
	tenantID := uuid.New()
	workspaceID := uuid.New()
	creatorID := uuid.New()

	where, args := buildRequestFilters(airlockrequest.Filter{
		WorkspaceID: workspaceID,
		CreatorID:   creatorID,
		Type:        airlockrequest.TypeImport,
		Status:      airlockrequest.StatusDraft,
	}, tenantID)

	assert.Equal(t, []string{
		"tenant_id = $1",
		"workspace_id = $2",
		"creator_id = $3",
		"request_type = $4",
		"status = $5",
	}, where)
	assert.Equal(t, []interface{}{tenantID, workspaceID, creatorID, "import", "draft"}, args)
}

func TestBuildRequestFilters_Empty(t *testing.T) {
	tenantID := uuid.New()
	where, args := buildRequestFilters(airlockrequest.Filter{}, tenantID)
	assert.Equal(t, []string{"tenant_id = $1"}, where)
	assert.Equal(t, []interface{}{tenantID}, args)
}

func TestDecodeRequest_NormalizesNilSlices(t *testing.T) {
	req, err := decodeRequest([]byte(`{"id":"` + uuid.NewString() + `","status":"draft"}`))
	require.NoError(t, err)
	assert.NotNil(t, req.Files)
	assert.NotNil(t, req.Reviews)
	assert.NotNil(t, req.ReviewUserResources)
}

func TestDecodeRequest_Malformed(t *testing.T) {
	_, err := decodeRequest([]byte(`{`))
	assert.Error(t, err)
}
