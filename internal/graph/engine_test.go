package graph

import (
	"strings"
	"testing"

	"github.com/khajiev13/cv-agent-fiilterer/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statementsContaining(p *plan, substr string) []string {
	var out []string
	for _, s := range p.statements {
		if strings.Contains(s, substr) {
			out = append(out, s)
		}
	}
	return out
}

func TestPlanTransactionWrapping(t *testing.T) {
	p := newPlan()
	p.mergeNode("skill", "go", "Go")

	sql := p.sql()
	assert.True(t, strings.HasPrefix(sql, "BEGIN TRANSACTION;"))
	assert.True(t, strings.HasSuffix(sql, "COMMIT TRANSACTION;"))
	assert.Contains(t, sql, `UPSERT type::record("skill", $v0)`)
	assert.Equal(t, "go", p.vars["v0"])
}

func TestPlanNodeDedup(t *testing.T) {
	p := newPlan()
	p.mergeNode("skill", "python", "Python")
	p.mergeNode("skill", "python", "python")
	p.mergeNode("skill", "go", "Go")

	assert.Len(t, p.statements, 2, "same node merged once per plan")
}

func TestPlanEdgeDedup(t *testing.T) {
	p := newPlan()
	p.relate("has_skill", "candidate", "c1", "skill", "go")
	p.relate("has_skill", "candidate", "c1", "skill", "go")
	p.relate("has_skill", "candidate", "c2", "skill", "go")

	require.Len(t, p.statements, 2)
	assert.Contains(t, p.statements[0], "RELATE")
}

func TestMergeAlternatesSkipsCanonical(t *testing.T) {
	p := newPlan()
	p.mergeNode("skill", "javascript", "JavaScript")
	p.mergeAlternates("skill", "javascript",
		[]string{"JS", "ECMAScript", "Java-Script", ""}, models.NormalizeKey)

	// js, ecmascript and java_script survive; the empty string does not.
	alternates := statementsContaining(p, "alternative_of")
	assert.Len(t, alternates, 3)

	p2 := newPlan()
	p2.mergeNode("skill", "go", "Go")
	p2.mergeAlternates("skill", "go", []string{"go", "GO"}, models.NormalizeKey)
	assert.Empty(t, statementsContaining(p2, "alternative_of"),
		"alternates equal to the canonical key are dropped")
}

func TestBuildCandidatePlan(t *testing.T) {
	rec := models.CandidateRecord{
		ID:       "jane_doe_cv_1a2b3c4d_pdf",
		Name:     "Jane Doe",
		JobTitle: "Backend Engineer",
		Skills: []models.SkillEntry{
			{Name: "Go", AlternativeNames: []string{"Golang"}, Level: models.LevelExpert, Years: 6},
			{Name: "go", Level: models.LevelExpert, Years: 6}, // duplicate spelling
		},
		Experiences: []models.ExperienceEntry{
			{JobTitle: "Backend Engineer", CompanyName: "Acme Corp", Years: 3},
		},
		Education: []models.EducationEntry{
			{University: "TU Munich", Degree: models.DegreeMaster, FieldOfStudy: "Computer Science", GraduationYear: 2019},
		},
		LocationCity: "Berlin",
	}

	p := buildCandidatePlan(rec)
	sql := p.sql()

	t.Run("candidate merge preserves upload time", func(t *testing.T) {
		assert.Contains(t, sql, "uploaded_at = uploaded_at ?? time::now()")
		assert.Contains(t, sql, "extracted = true")
	})

	t.Run("owned edges replaced", func(t *testing.T) {
		for _, rel := range []string{"has_skill", "has_experience", "worked_at", "has_education", "lives_in"} {
			deletes := statementsContaining(p, "DELETE ")
			found := false
			for _, d := range deletes {
				if strings.Contains(d, rel) {
					found = true
				}
			}
			assert.True(t, found, "missing delete for %s", rel)
		}
	})

	t.Run("deletes precede relates", func(t *testing.T) {
		firstRelate := -1
		lastDelete := -1
		for i, s := range p.statements {
			if strings.HasPrefix(s, "DELETE") {
				lastDelete = i
			}
			if strings.HasPrefix(s, "RELATE") && firstRelate == -1 {
				firstRelate = i
			}
		}
		require.NotEqual(t, -1, firstRelate)
		require.NotEqual(t, -1, lastDelete)
		assert.Less(t, lastDelete, firstRelate)
	})

	t.Run("duplicate skill collapses", func(t *testing.T) {
		relates := statementsContaining(p, "has_skill->")
		assert.Len(t, relates, 1, "Go and go are one node, one edge")
	})

	t.Run("alternate fan-out", func(t *testing.T) {
		assert.Len(t, statementsContaining(p, "alternative_of"), 1)
	})

	t.Run("experience links title and company", func(t *testing.T) {
		assert.Len(t, statementsContaining(p, "has_experience->"), 1)
		assert.Len(t, statementsContaining(p, "worked_at->"), 1)
	})

	t.Run("city edge", func(t *testing.T) {
		assert.Len(t, statementsContaining(p, "lives_in->"), 1)
	})

	t.Run("keys are normalized", func(t *testing.T) {
		assert.Contains(t, p.vars, "v0")
		var keys []string
		for _, v := range p.vars {
			if s, ok := v.(string); ok {
				keys = append(keys, s)
			}
		}
		assert.Contains(t, keys, "computer_science")
		assert.Contains(t, keys, "acme_corp")
		assert.Contains(t, keys, "berlin")
	})
}

func TestBuildCandidatePlanOmitsUnknownGraduationYear(t *testing.T) {
	rec := models.CandidateRecord{
		ID: "c1",
		Education: []models.EducationEntry{
			{University: "Somewhere", Degree: models.DegreeAny, FieldOfStudy: "Physics"},
		},
	}
	p := buildCandidatePlan(rec)

	edu := statementsContaining(p, "has_education->")
	require.Len(t, edu, 1)
	assert.NotContains(t, edu[0], "graduation_year")
}

func TestBuildCandidatePlanMinimalRecord(t *testing.T) {
	p := buildCandidatePlan(models.CandidateRecord{ID: "c1", Name: "Jane"})

	assert.Empty(t, statementsContaining(p, "RELATE"),
		"no entities, no edges")
	assert.Len(t, statementsContaining(p, "DELETE "), 5,
		"owned edges are still cleared")
}

func TestBuildRolePlan(t *testing.T) {
	rec := models.RoleRecord{
		ID:                "backend_engineer_berlin",
		JobTitle:          "Backend Engineer",
		AlternativeTitles: []string{"Server Engineer"},
		DegreeRequirement: models.DegreeBachelor,
		RequiredSkills: []models.SkillRequirement{
			{Name: "Go", Importance: models.ImportanceRequired, MinimumYears: 3},
			{Name: "PostgreSQL", Importance: models.ImportancePreferred},
		},
		FieldsOfStudy: []models.FieldRequirement{
			{Name: "Computer Science", Importance: models.ImportancePreferred},
		},
		Keywords:     []string{"backend", "distributed systems"},
		LocationCity: "Berlin",
	}

	p := buildRolePlan(rec)
	sql := p.sql()

	assert.Contains(t, sql, "created_at = created_at ?? time::now()")
	assert.Len(t, statementsContaining(p, "requires_skill->"), 2)
	assert.Len(t, statementsContaining(p, "requires_field->"), 1)
	assert.Len(t, statementsContaining(p, "has_title->"), 1)
	assert.Len(t, statementsContaining(p, "has_keyword->"), 2)
	assert.Len(t, statementsContaining(p, "located_in->"), 1)
	assert.Len(t, statementsContaining(p, "alternative_of"), 1)
}

func TestBuildRolePlanAlwaysClearsEdges(t *testing.T) {
	// An edit that removes every requirement must still wipe old edges.
	p := buildRolePlan(models.RoleRecord{ID: "r1", JobTitle: "Engineer"})

	assert.Len(t, statementsContaining(p, "DELETE "), 5)
	assert.Empty(t, statementsContaining(p, "requires_skill->"))
}
