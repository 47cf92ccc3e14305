package airlockrequest_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enclaveworks/enclave-sdk/modules/airlock/domain/airlockrequest"
	"github.com/enclaveworks/enclave-sdk/modules/workspaces/domain/access"
)

func TestRequestDocumentRoundTrip(t *testing.T) {
	// Roles are resolved per call and never persisted, so the document
	// actors carry identity fields only.
	reviewer := access.Actor{ID: uuid.New(), Name: "Morgan Reviewer", Email: "morgan@example.org"}
	creator := access.Actor{ID: uuid.New(), Name: "Riley Researcher", Email: "riley@example.org"}
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	original := &airlockrequest.AirlockRequest{
		ID:                    uuid.New(),
		WorkspaceID:           uuid.New(),
		Type:                  airlockrequest.TypeExport,
		Title:                 "quarterly results",
		BusinessJustification: "publication of aggregate statistics",
		Status:                airlockrequest.StatusApprovalInProgress,
		StatusMessage:         "approved with conditions",
		Files: []airlockrequest.File{
			{Name: "results.csv", Size: 2048},
			{Name: "appendix.pdf", Size: 901120},
		},
		Reviews: []airlockrequest.Review{
			{
				ID:                  uuid.New(),
				Decision:            airlockrequest.DecisionRejected,
				DecisionExplanation: "raw patient identifiers present",
				Reviewer:            reviewer,
				CreatedAt:           now.Add(-48 * time.Hour),
			},
			{
				ID:                  uuid.New(),
				Decision:            airlockrequest.DecisionApproved,
				DecisionExplanation: "identifiers removed, aggregates only",
				Reviewer:            reviewer,
				CreatedAt:           now,
			},
		},
		ReviewUserResources: []airlockrequest.ReviewUserResource{
			{WorkspaceID: uuid.New(), WorkspaceServiceID: uuid.New(), UserResourceID: uuid.New()},
			{WorkspaceID: uuid.New(), WorkspaceServiceID: uuid.New(), UserResourceID: uuid.New()},
		},
		CreatedBy: creator,
		UpdatedBy: reviewer,
		CreatedAt: now.Add(-96 * time.Hour),
		UpdatedAt: now,
		Version:   5,
	}

	raw, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded airlockrequest.AirlockRequest
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, original, &decoded)
	// History order carries semantics: the latest review decides the outcome
	// and teardown walks the resource references in attach order.
	assert.Equal(t, airlockrequest.DecisionApproved, decoded.Reviews[1].Decision)
	assert.Equal(t, original.ReviewUserResources[0], decoded.ReviewUserResources[0])
}
