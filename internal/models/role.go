package models

// Importance ranks how much a role requirement matters.
type Importance string

const (
	ImportanceRequired   Importance = "required"
	ImportancePreferred  Importance = "preferred"
	ImportanceNiceToHave Importance = "nice-to-have"
)

// ParseImportance maps free-form importance text to an Importance,
// defaulting to ImportancePreferred.
func ParseImportance(s string) Importance {
	switch NormalizeKey(s) {
	case "required", "must", "must_have", "mandatory":
		return ImportanceRequired
	case "nice_to_have", "nice", "optional", "bonus":
		return ImportanceNiceToHave
	default:
		return ImportancePreferred
	}
}

// FieldRequirement is one field of study a role asks for.
type FieldRequirement struct {
	Name              string     `json:"name"`
	AlternativeFields []string   `json:"alternative_fields,omitempty"`
	Importance        Importance `json:"importance"`
}

// SkillRequirement is one skill a role asks for.
type SkillRequirement struct {
	Name             string     `json:"name"`
	AlternativeNames []string   `json:"alternative_names,omitempty"`
	Importance       Importance `json:"importance"`
	MinimumYears     float64    `json:"minimum_years"`
}

// RoleRecord is the structured form of one job posting.
type RoleRecord struct {
	ID                   string             `json:"id"`
	JobTitle             string             `json:"job_title"`
	AlternativeTitles    []string           `json:"alternative_titles,omitempty"`
	DegreeRequirement    Degree             `json:"degree_requirement"`
	FieldsOfStudy        []FieldRequirement `json:"fields_of_study,omitempty"`
	TotalExperienceYears float64            `json:"total_experience_years"`
	RequiredSkills       []SkillRequirement `json:"required_skills,omitempty"`
	LocationCity         string             `json:"location_city,omitempty"`
	RemoteOption         bool               `json:"remote_option"`
	IndustrySector       string             `json:"industry_sector,omitempty"`
	RoleLevel            string             `json:"role_level,omitempty"`
	Keywords             []string           `json:"keywords,omitempty"`
}
