package models

import "time"

// Degree is an education degree level.
type Degree string

const (
	DegreeAny      Degree = "any"
	DegreeBachelor Degree = "bachelor"
	DegreeMaster   Degree = "master"
	DegreePhD      Degree = "phd"
)

// ParseDegree maps free-form degree text to a Degree, defaulting to
// DegreeAny for anything unrecognized.
func ParseDegree(s string) Degree {
	switch normalized := NormalizeKey(s); normalized {
	case "bachelor", "bachelors", "bachelor_s", "bsc", "bachelor_of_science", "bachelor_of_arts":
		return DegreeBachelor
	case "master", "masters", "master_s", "msc", "master_of_science":
		return DegreeMaster
	case "phd", "ph_d", "doctorate", "doctoral":
		return DegreePhD
	default:
		return DegreeAny
	}
}

// SkillLevel is a self-reported or inferred proficiency level.
type SkillLevel string

const (
	LevelBeginner     SkillLevel = "beginner"
	LevelIntermediate SkillLevel = "intermediate"
	LevelExpert       SkillLevel = "expert"
)

// ParseSkillLevel maps free-form level text to a SkillLevel. When the
// text is unrecognized the level is inferred from years of experience:
// expert above 5 years, intermediate for 2-5, beginner otherwise.
func ParseSkillLevel(s string, years float64) SkillLevel {
	switch NormalizeKey(s) {
	case "beginner", "basic", "novice":
		return LevelBeginner
	case "intermediate", "proficient":
		return LevelIntermediate
	case "expert", "advanced", "senior":
		return LevelExpert
	}
	switch {
	case years > 5:
		return LevelExpert
	case years >= 2:
		return LevelIntermediate
	default:
		return LevelBeginner
	}
}

// EducationEntry is one degree earned by a candidate.
type EducationEntry struct {
	University        string   `json:"university"`
	Degree            Degree   `json:"degree"`
	FieldOfStudy      string   `json:"field_of_study"`
	GraduationYear    int      `json:"graduation_year"`
	AlternativeFields []string `json:"alternative_fields,omitempty"`
}

// ExperienceEntry is one held position.
type ExperienceEntry struct {
	JobTitle             string   `json:"job_title"`
	AlternativeJobTitles []string `json:"alternative_job_titles,omitempty"`
	CompanyName          string   `json:"company_name"`
	Years                float64  `json:"years"`
	Description          string   `json:"description,omitempty"`
}

// SkillEntry is one skill held by a candidate.
type SkillEntry struct {
	Name             string     `json:"name"`
	AlternativeNames []string   `json:"alternative_names,omitempty"`
	Level            SkillLevel `json:"level"`
	Years            float64    `json:"years"`
}

// CandidateRecord is the structured, validated form of one résumé,
// produced by the extraction client and consumed by the upsert engine.
type CandidateRecord struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	JobTitle         string            `json:"job_title"`
	Description      string            `json:"description"`
	LastFieldOfStudy string            `json:"last_field_of_study,omitempty"`
	LastDegree       Degree            `json:"last_degree"`
	CVText           string            `json:"cv_text,omitempty"`
	CVFileName       string            `json:"cv_file_name"`
	CVSourcePath     string            `json:"cv_source_path"`
	LocationCity     string            `json:"location_city,omitempty"`
	UploadedAt       time.Time         `json:"uploaded_at,omitempty"`
	Education        []EducationEntry  `json:"education,omitempty"`
	Experiences      []ExperienceEntry `json:"experiences,omitempty"`
	Skills           []SkillEntry      `json:"skills,omitempty"`
}

// TotalExperienceYears sums the years across all positions.
func (c *CandidateRecord) TotalExperienceYears() float64 {
	var total float64
	for _, e := range c.Experiences {
		total += e.Years
	}
	return total
}
