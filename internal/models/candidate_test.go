package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDegree(t *testing.T) {
	tests := []struct {
		input string
		want  Degree
	}{
		{"bachelor", DegreeBachelor},
		{"Bachelor's", DegreeBachelor},
		{"BSc", DegreeBachelor},
		{"Bachelor of Science", DegreeBachelor},
		{"master", DegreeMaster},
		{"Masters", DegreeMaster},
		{"MSc", DegreeMaster},
		{"PhD", DegreePhD},
		{"Ph.D.", DegreePhD},
		{"Doctorate", DegreePhD},
		{"", DegreeAny},
		{"high school", DegreeAny},
		{"diploma", DegreeAny},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDegree(tt.input))
		})
	}
}

func TestParseSkillLevel(t *testing.T) {
	t.Run("explicit level wins", func(t *testing.T) {
		assert.Equal(t, LevelBeginner, ParseSkillLevel("Beginner", 10))
		assert.Equal(t, LevelIntermediate, ParseSkillLevel("proficient", 0))
		assert.Equal(t, LevelExpert, ParseSkillLevel("Advanced", 0))
	})

	t.Run("years heuristic", func(t *testing.T) {
		assert.Equal(t, LevelExpert, ParseSkillLevel("", 6))
		assert.Equal(t, LevelIntermediate, ParseSkillLevel("", 5))
		assert.Equal(t, LevelIntermediate, ParseSkillLevel("", 2))
		assert.Equal(t, LevelBeginner, ParseSkillLevel("", 1))
		assert.Equal(t, LevelBeginner, ParseSkillLevel("unknown", 0))
	})
}

func TestTotalExperienceYears(t *testing.T) {
	rec := CandidateRecord{
		Experiences: []ExperienceEntry{
			{JobTitle: "Engineer", Years: 2.5},
			{JobTitle: "Senior Engineer", Years: 3},
			{JobTitle: "Intern", Years: 0.5},
		},
	}
	assert.InDelta(t, 6.0, rec.TotalExperienceYears(), 0.001)

	empty := CandidateRecord{}
	assert.Zero(t, empty.TotalExperienceYears())
}

func TestParseImportance(t *testing.T) {
	assert.Equal(t, ImportanceRequired, ParseImportance("required"))
	assert.Equal(t, ImportanceRequired, ParseImportance("Must-have"))
	assert.Equal(t, ImportanceNiceToHave, ParseImportance("nice to have"))
	assert.Equal(t, ImportanceNiceToHave, ParseImportance("optional"))
	assert.Equal(t, ImportancePreferred, ParseImportance("preferred"))
	assert.Equal(t, ImportancePreferred, ParseImportance(""))
	assert.Equal(t, ImportancePreferred, ParseImportance("whatever"))
}
