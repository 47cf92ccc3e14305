package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/enclaveworks/enclave-sdk/modules/airlock/domain/airlockrequest"
	"github.com/enclaveworks/enclave-sdk/pkg/composables"
)

// orderColumns whitelists sortable fields. Anything else falls back to the
// creation timestamp.
var orderColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"status":    "status",
	"title":     "doc->>'title'",
}

// AirlockRequestRepository stores requests as a JSONB document alongside the
// columns needed for filtering and the optimistic-concurrency version.
type AirlockRequestRepository struct{}

func NewAirlockRequestRepository() airlockrequest.Repository {
	return &AirlockRequestRepository{}
}

func (r *AirlockRequestRepository) Create(
	ctx context.Context,
	req *airlockrequest.AirlockRequest,
) (*airlockrequest.AirlockRequest, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}

	stored := *req
	stored.Version = 1
	doc, err := json.Marshal(&stored)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode airlock request")
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO airlock_requests (
			id, tenant_id, workspace_id, request_type, status, creator_id,
			version, doc, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		stored.ID,
		tenantID,
		stored.WorkspaceID,
		string(stored.Type),
		string(stored.Status),
		stored.CreatedBy.ID,
		stored.Version,
		doc,
		stored.CreatedAt,
		stored.UpdatedAt,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert airlock request")
	}
	return &stored, nil
}

// Update performs a conditional write: the row is only replaced when the
// stored version still equals expectedVersion, and the version is bumped in
// the same statement. A miss is disambiguated by re-reading the row.
func (r *AirlockRequestRepository) Update(
	ctx context.Context,
	req *airlockrequest.AirlockRequest,
	expectedVersion int64,
) (*airlockrequest.AirlockRequest, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}

	stored := *req
	stored.Version = expectedVersion + 1
	doc, err := json.Marshal(&stored)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode airlock request")
	}

	tag, err := tx.Exec(ctx, `
		UPDATE airlock_requests
		SET status = $1, version = $2, doc = $3, updated_at = $4
		WHERE id = $5 AND tenant_id = $6 AND version = $7`,
		string(stored.Status),
		stored.Version,
		doc,
		stored.UpdatedAt,
		stored.ID,
		tenantID,
		expectedVersion,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update airlock request")
	}
	if tag.RowsAffected() == 0 {
		if _, getErr := r.GetByID(ctx, stored.ID); getErr != nil {
			return nil, getErr
		}
		return nil, airlockrequest.ErrVersionConflict
	}
	return &stored, nil
}

func (r *AirlockRequestRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*airlockrequest.AirlockRequest, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}

	var doc []byte
	err = tx.QueryRow(ctx, `
		SELECT doc FROM airlock_requests
		WHERE id = $1 AND tenant_id = $2`,
		id, tenantID,
	).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, airlockrequest.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get airlock request")
	}
	return decodeRequest(doc)
}

func (r *AirlockRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		DELETE FROM airlock_requests
		WHERE id = $1 AND tenant_id = $2`,
		id, tenantID,
	)
	if err != nil {
		return errors.Wrap(err, "failed to delete airlock request")
	}
	if tag.RowsAffected() == 0 {
		return airlockrequest.ErrNotFound
	}
	return nil
}

func (r *AirlockRequestRepository) List(
	ctx context.Context,
	filter airlockrequest.Filter,
) ([]*airlockrequest.AirlockRequest, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}

	where, args := buildRequestFilters(filter, tenantID)
	query := `
		SELECT doc FROM airlock_requests
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY ` + orderClause(filter)

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list airlock requests")
	}
	defer rows.Close()

	var results []*airlockrequest.AirlockRequest
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		req, err := decodeRequest(doc)
		if err != nil {
			return nil, err
		}
		results = append(results, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func buildRequestFilters(filter airlockrequest.Filter, tenantID uuid.UUID) ([]string, []interface{}) {
	where := []string{"tenant_id = $1"}
	args := []interface{}{tenantID}
	argPos := 2

	if filter.WorkspaceID != uuid.Nil {
		where = append(where, fmt.Sprintf("workspace_id = $%d", argPos))
		args = append(args, filter.WorkspaceID)
		argPos++
	}
	if filter.CreatorID != uuid.Nil {
		where = append(where, fmt.Sprintf("creator_id = $%d", argPos))
		args = append(args, filter.CreatorID)
		argPos++
	}
	if filter.Type != "" {
		where = append(where, fmt.Sprintf("request_type = $%d", argPos))
		args = append(args, string(filter.Type))
		argPos++
	}
	if filter.Status != "" {
		where = append(where, fmt.Sprintf("status = $%d", argPos))
		args = append(args, string(filter.Status))
	}
	return where, args
}

func orderClause(filter airlockrequest.Filter) string {
	column, ok := orderColumns[filter.OrderBy]
	if !ok {
		return "created_at DESC"
	}
	direction := "DESC"
	if filter.Ascending {
		direction = "ASC"
	}
	return column + " " + direction
}

func decodeRequest(doc []byte) (*airlockrequest.AirlockRequest, error) {
	var req airlockrequest.AirlockRequest
	if err := json.Unmarshal(doc, &req); err != nil {
		return nil, errors.Wrap(err, "failed to decode airlock request")
	}
	if req.Files == nil {
		req.Files = []airlockrequest.File{}
	}
	if req.Reviews == nil {
		req.Reviews = []airlockrequest.Review{}
	}
	if req.ReviewUserResources == nil {
		req.ReviewUserResources = []airlockrequest.ReviewUserResource{}
	}
	return &req, nil
}
