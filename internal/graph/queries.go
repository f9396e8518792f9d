package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/khajiev13/cv-agent-fiilterer/internal/db"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// CandidateRow is the stored shape of a candidate node.
type CandidateRow struct {
	ID                   surrealmodels.RecordID `json:"id"`
	Name                 string                 `json:"name"`
	JobTitle             string                 `json:"job_title"`
	Description          string                 `json:"description"`
	LastFieldOfStudy     *string                `json:"last_field_of_study,omitempty"`
	LastDegree           string                 `json:"last_degree"`
	TotalExperienceYears float64                `json:"total_experience_years"`
	CVFileName           string                 `json:"cv_file_name"`
	OriginalName         *string                `json:"original_name,omitempty"`
	CVSourcePath         string                 `json:"cv_source_path"`
	LocationCity         *string                `json:"location_city,omitempty"`
	Extracted            bool                   `json:"extracted"`
	UploadedAt           time.Time              `json:"uploaded_at"`
}

// RoleRow is the stored shape of a role node.
type RoleRow struct {
	ID                   surrealmodels.RecordID `json:"id"`
	JobTitle             string                 `json:"job_title"`
	DegreeRequirement    string                 `json:"degree_requirement"`
	TotalExperienceYears float64                `json:"total_experience_years"`
	LocationCity         *string                `json:"location_city,omitempty"`
	RemoteOption         bool                   `json:"remote_option"`
	IndustrySector       *string                `json:"industry_sector,omitempty"`
	RoleLevel            *string                `json:"role_level,omitempty"`
	CreatedAt            time.Time              `json:"created_at"`
}

// GetCandidate retrieves a candidate node by id. Returns nil when not found.
func (e *Engine) GetCandidate(ctx context.Context, id string) (*CandidateRow, error) {
	results, err := surrealdb.Query[[]CandidateRow](ctx, e.db.DB(),
		`SELECT * FROM type::record("candidate", $id)`, map[string]any{"id": id})
	if err != nil {
		return nil, fmt.Errorf("get candidate: %w", err)
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, nil
	}
	return &(*results)[0].Result[0], nil
}

// ListCandidates returns all candidate nodes, most recently uploaded first.
func (e *Engine) ListCandidates(ctx context.Context) ([]CandidateRow, error) {
	results, err := surrealdb.Query[[]CandidateRow](ctx, e.db.DB(),
		`SELECT * FROM candidate ORDER BY uploaded_at DESC`, nil)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	if results == nil || len(*results) == 0 {
		return []CandidateRow{}, nil
	}
	return (*results)[0].Result, nil
}

// ListUnextracted returns candidates whose document was uploaded but
// not yet processed, oldest first so the queue preserves upload order.
func (e *Engine) ListUnextracted(ctx context.Context) ([]CandidateRow, error) {
	results, err := surrealdb.Query[[]CandidateRow](ctx, e.db.DB(),
		`SELECT * FROM candidate WHERE extracted = false ORDER BY uploaded_at ASC`, nil)
	if err != nil {
		return nil, fmt.Errorf("list unextracted: %w", err)
	}
	if results == nil || len(*results) == 0 {
		return []CandidateRow{}, nil
	}
	return (*results)[0].Result, nil
}

// ListRoles returns all role nodes, most recent first.
func (e *Engine) ListRoles(ctx context.Context) ([]RoleRow, error) {
	results, err := surrealdb.Query[[]RoleRow](ctx, e.db.DB(),
		`SELECT * FROM role ORDER BY created_at DESC`, nil)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	if results == nil || len(*results) == 0 {
		return []RoleRow{}, nil
	}
	return (*results)[0].Result, nil
}

// DeleteCandidate detach-deletes one candidate and returns the stored
// source path so the caller can remove the backing file. Shared
// canonical nodes (skill, company, field_of_study, ...) are preserved.
func (e *Engine) DeleteCandidate(ctx context.Context, id string) (string, error) {
	row, err := e.GetCandidate(ctx, id)
	if err != nil {
		return "", fmt.Errorf("delete candidate %s: %w", id, err)
	}
	if row == nil {
		return "", fmt.Errorf("delete candidate %s: %w", id, db.ErrNotFound)
	}

	if _, err := e.db.Query(ctx, `DELETE type::record("candidate", $id)`,
		map[string]any{"id": id}); err != nil {
		return "", fmt.Errorf("delete candidate %s: %w", id, err)
	}

	e.log.Info("candidate deleted", "id", id, "file", row.CVFileName)
	return row.CVSourcePath, nil
}

// DeleteAllCandidates removes every candidate node and returns the
// source paths of their backing files.
func (e *Engine) DeleteAllCandidates(ctx context.Context) ([]string, error) {
	rows, err := e.ListCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("delete all candidates: %w", err)
	}

	paths := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.CVSourcePath != "" {
			paths = append(paths, row.CVSourcePath)
		}
	}

	if _, err := e.db.Query(ctx, `DELETE candidate`, nil); err != nil {
		return nil, fmt.Errorf("delete all candidates: %w", err)
	}

	e.log.Info("all candidates deleted", "count", len(rows))
	return paths, nil
}
