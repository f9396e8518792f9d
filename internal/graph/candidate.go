package graph

import (
	"context"
	"fmt"

	"github.com/khajiev13/cv-agent-fiilterer/internal/models"
)

// UpsertCandidate (re-)represents one extracted CV in the graph inside
// a single transaction: the candidate node is merged by its derived id,
// shared entity nodes (skill, company, field_of_study, job_title, city)
// are merged by normalized name, and the candidate's owned edges are
// replaced wholesale so re-processing the same document is idempotent.
func (e *Engine) UpsertCandidate(ctx context.Context, rec models.CandidateRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("upsert candidate: empty id")
	}

	p := buildCandidatePlan(rec)
	if err := e.execute(ctx, p); err != nil {
		return fmt.Errorf("upsert candidate %s: %w", rec.ID, err)
	}

	e.log.Info("candidate upserted",
		"id", rec.ID,
		"skills", len(rec.Skills),
		"experiences", len(rec.Experiences),
		"education", len(rec.Education))
	return nil
}

func buildCandidatePlan(rec models.CandidateRecord) *plan {
	p := newPlan()

	// Merge the candidate node by id; uploaded_at survives re-ingestion.
	p.add(fmt.Sprintf(`UPSERT %s SET
		name = %s,
		job_title = %s,
		description = %s,
		last_field_of_study = %s,
		last_degree = %s,
		total_experience_years = %s,
		cv_text = %s,
		cv_file_name = %s,
		cv_source_path = %s,
		location_city = %s,
		extracted = true,
		uploaded_at = uploaded_at ?? time::now(),
		updated_at = time::now()`,
		p.record("candidate", rec.ID),
		p.bind(rec.Name),
		p.bind(rec.JobTitle),
		p.bind(rec.Description),
		p.bind(rec.LastFieldOfStudy),
		p.bind(string(rec.LastDegree)),
		p.bind(rec.TotalExperienceYears()),
		p.bind(rec.CVText),
		p.bind(rec.CVFileName),
		p.bind(rec.CVSourcePath),
		p.bind(rec.LocationCity)))

	// Replace owned edges so edits never accumulate stale relationships.
	p.deleteOwnedEdges("candidate", rec.ID,
		"has_skill", "has_experience", "worked_at", "has_education", "lives_in")

	for _, skill := range rec.Skills {
		key := models.NormalizeKey(skill.Name)
		if key == "" {
			continue
		}
		p.mergeNode("skill", key, skill.Name)
		p.relate("has_skill", "candidate", rec.ID, "skill", key,
			"level = "+p.bind(string(skill.Level)),
			"years = "+p.bind(skill.Years))
		p.mergeAlternates("skill", key, skill.AlternativeNames, models.NormalizeKey)
	}

	for _, exp := range rec.Experiences {
		titleKey := models.NormalizeKey(exp.JobTitle)
		if titleKey != "" {
			p.mergeNode("job_title", titleKey, exp.JobTitle)
			p.relate("has_experience", "candidate", rec.ID, "job_title", titleKey,
				"company = "+p.bind(exp.CompanyName),
				"years = "+p.bind(exp.Years),
				"description = "+p.bind(exp.Description))
			p.mergeAlternates("job_title", titleKey, exp.AlternativeJobTitles, models.NormalizeKey)
		}

		if companyKey := models.NormalizeKey(exp.CompanyName); companyKey != "" {
			p.mergeNode("company", companyKey, exp.CompanyName)
			p.relate("worked_at", "candidate", rec.ID, "company", companyKey,
				"job_title = "+p.bind(exp.JobTitle),
				"years = "+p.bind(exp.Years))
		}
	}

	for _, edu := range rec.Education {
		fieldKey := models.NormalizeKey(edu.FieldOfStudy)
		if fieldKey == "" {
			continue
		}
		p.mergeNode("field_of_study", fieldKey, edu.FieldOfStudy)
		props := []string{
			"university = " + p.bind(edu.University),
			"degree = " + p.bind(string(edu.Degree)),
		}
		if edu.GraduationYear != 0 {
			props = append(props, "graduation_year = "+p.bind(edu.GraduationYear))
		}
		p.relate("has_education", "candidate", rec.ID, "field_of_study", fieldKey, props...)
		p.mergeAlternates("field_of_study", fieldKey, edu.AlternativeFields, models.NormalizeKey)
	}

	if cityKey := models.NormalizeKey(rec.LocationCity); cityKey != "" {
		p.mergeNode("city", cityKey, rec.LocationCity)
		p.relate("lives_in", "candidate", rec.ID, "city", cityKey)
	}

	return p
}

// RegisterUpload records an uploaded document as an unextracted
// candidate row, mirroring the CV registry the dashboard lists. The
// later UpsertCandidate for the same id flips extracted to true.
func (e *Engine) RegisterUpload(ctx context.Context, storageName, originalName, sourcePath string) error {
	id := models.CandidateID(storageName)
	p := newPlan()
	p.add(fmt.Sprintf(`UPSERT %s SET
		name = name ?? '',
		job_title = job_title ?? '',
		description = description ?? '',
		cv_file_name = %s,
		original_name = %s,
		cv_source_path = %s,
		extracted = extracted ?? false,
		uploaded_at = uploaded_at ?? time::now(),
		updated_at = time::now()`,
		p.record("candidate", id),
		p.bind(storageName),
		p.bind(originalName),
		p.bind(sourcePath)))

	if err := e.execute(ctx, p); err != nil {
		return fmt.Errorf("register upload %s: %w", storageName, err)
	}
	return nil
}
