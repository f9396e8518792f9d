package graph

import (
	"context"
	"fmt"

	"github.com/khajiev13/cv-agent-fiilterer/internal/models"
	"github.com/surrealdb/surrealdb.go"
)

// UpsertRole creates or updates a job posting. On update, every edge
// owned by the role is removed before the new requirement edges are
// created, so repeated edits replace requirements instead of
// accumulating them. Returns true when the role was newly created.
func (e *Engine) UpsertRole(ctx context.Context, rec models.RoleRecord) (bool, error) {
	if rec.ID == "" {
		return false, fmt.Errorf("upsert role: empty id")
	}

	existed, err := e.roleExists(ctx, rec.ID)
	if err != nil {
		return false, fmt.Errorf("upsert role %s: %w", rec.ID, err)
	}

	p := buildRolePlan(rec)
	if err := e.execute(ctx, p); err != nil {
		return false, fmt.Errorf("upsert role %s: %w", rec.ID, err)
	}

	e.log.Info("role upserted",
		"id", rec.ID,
		"created", !existed,
		"required_skills", len(rec.RequiredSkills),
		"fields", len(rec.FieldsOfStudy))
	return !existed, nil
}

func (e *Engine) roleExists(ctx context.Context, id string) (bool, error) {
	results, err := surrealdb.Query[[]struct {
		C int `json:"c"`
	}](ctx, e.db.DB(), `SELECT count() AS c FROM type::record("role", $id)`,
		map[string]any{"id": id})
	if err != nil {
		return false, err
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return false, nil
	}
	return (*results)[0].Result[0].C > 0, nil
}

func buildRolePlan(rec models.RoleRecord) *plan {
	p := newPlan()

	p.add(fmt.Sprintf(`UPSERT %s SET
		job_title = %s,
		degree_requirement = %s,
		total_experience_years = %s,
		location_city = %s,
		remote_option = %s,
		industry_sector = %s,
		role_level = %s,
		created_at = created_at ?? time::now(),
		updated_at = time::now()`,
		p.record("role", rec.ID),
		p.bind(rec.JobTitle),
		p.bind(string(rec.DegreeRequirement)),
		p.bind(rec.TotalExperienceYears),
		p.bind(rec.LocationCity),
		p.bind(rec.RemoteOption),
		p.bind(rec.IndustrySector),
		p.bind(rec.RoleLevel)))

	// Mandatory delete-then-recreate: role edits must replace, not
	// accumulate, requirement edges.
	p.deleteOwnedEdges("role", rec.ID,
		"requires_skill", "requires_field", "has_title", "has_keyword", "located_in")

	if titleKey := models.NormalizeKey(rec.JobTitle); titleKey != "" {
		p.mergeNode("job_title", titleKey, rec.JobTitle)
		p.relate("has_title", "role", rec.ID, "job_title", titleKey)
		p.mergeAlternates("job_title", titleKey, rec.AlternativeTitles, models.NormalizeKey)
	}

	for _, skill := range rec.RequiredSkills {
		key := models.NormalizeKey(skill.Name)
		if key == "" {
			continue
		}
		p.mergeNode("skill", key, skill.Name)
		p.relate("requires_skill", "role", rec.ID, "skill", key,
			"importance = "+p.bind(string(skill.Importance)),
			"minimum_years = "+p.bind(skill.MinimumYears))
		p.mergeAlternates("skill", key, skill.AlternativeNames, models.NormalizeKey)
	}

	for _, field := range rec.FieldsOfStudy {
		key := models.NormalizeKey(field.Name)
		if key == "" {
			continue
		}
		p.mergeNode("field_of_study", key, field.Name)
		p.relate("requires_field", "role", rec.ID, "field_of_study", key,
			"importance = "+p.bind(string(field.Importance)))
		p.mergeAlternates("field_of_study", key, field.AlternativeFields, models.NormalizeKey)
	}

	for _, kw := range rec.Keywords {
		key := models.NormalizeKey(kw)
		if key == "" {
			continue
		}
		p.mergeNode("keyword", key, kw)
		p.relate("has_keyword", "role", rec.ID, "keyword", key)
	}

	if cityKey := models.NormalizeKey(rec.LocationCity); cityKey != "" {
		p.mergeNode("city", cityKey, rec.LocationCity)
		p.relate("located_in", "role", rec.ID, "city", cityKey)
	}

	return p
}

// DeleteRole detach-deletes a role. Returns false when no role with the
// given id existed. Shared canonical nodes are left untouched.
func (e *Engine) DeleteRole(ctx context.Context, id string) (bool, error) {
	existed, err := e.roleExists(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete role %s: %w", id, err)
	}
	if !existed {
		return false, nil
	}

	// Deleting the record cascades its relation rows.
	if _, err := e.db.Query(ctx, `DELETE type::record("role", $id)`,
		map[string]any{"id": id}); err != nil {
		return false, fmt.Errorf("delete role %s: %w", id, err)
	}

	e.log.Info("role deleted", "id", id)
	return true, nil
}
