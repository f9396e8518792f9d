package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/khajiev13/cv-agent-fiilterer/internal/config"
	"github.com/khajiev13/cv-agent-fiilterer/internal/models"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// Client wraps a langchaingo model and turns free-form CV and job
// posting text into validated records.
type Client struct {
	llm       llms.Model
	modelName string
	logger    *slog.Logger
}

// NewClient creates an extraction client based on configuration.
func NewClient(cfg config.Config, logger *slog.Logger) (*Client, error) {
	var model llms.Model
	var err error

	switch cfg.LLMProvider {
	case config.ProviderOllama:
		model, err = ollama.New(
			ollama.WithModel(cfg.LLMModel),
			ollama.WithServerURL(cfg.OllamaHost),
		)
		if err != nil {
			return nil, fmt.Errorf("create ollama model: %w", err)
		}

	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		model, err = openai.New(
			openai.WithToken(cfg.OpenAIAPIKey),
			openai.WithModel(cfg.LLMModel),
		)
		if err != nil {
			return nil, fmt.Errorf("create openai model: %w", err)
		}

	case config.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("Anthropic API key required")
		}
		model, err = anthropic.New(
			anthropic.WithToken(cfg.AnthropicAPIKey),
			anthropic.WithModel(cfg.LLMModel),
		)
		if err != nil {
			return nil, fmt.Errorf("create anthropic model: %w", err)
		}

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLMProvider)
	}

	return &Client{
		llm:       model,
		modelName: cfg.LLMModel,
		logger:    logger,
	}, nil
}

// Model returns the LLM model name.
func (c *Client) Model() string {
	return c.modelName
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	response, err := c.llm.GenerateContent(ctx, messages,
		llms.WithTemperature(0),
		llms.WithMaxTokens(2048),
	)
	if err != nil {
		return "", wrapFatalError(fmt.Errorf("generate: %w", err))
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response choices")
	}

	return response.Choices[0].Content, nil
}

// Wire shapes matching the prompt contracts. Fields the model omits or
// mangles decode to zero values and are cleaned up during assembly.

type personDTO struct {
	Name         string `json:"name"`
	Role         string `json:"role"`
	Summary      string `json:"summary"`
	LocationCity string `json:"location_city"`
}

type positionDTO struct {
	JobTitle             string   `json:"job_title"`
	AlternativeJobTitles []string `json:"alternative_job_titles"`
	CompanyName          string   `json:"company_name"`
	Years                float64  `json:"years"`
	Description          string   `json:"description"`
}

type positionsDTO struct {
	Positions []positionDTO `json:"positions"`
}

type skillDTO struct {
	Name             string   `json:"name"`
	AlternativeNames []string `json:"alternative_names"`
	Level            string   `json:"level"`
	Years            float64  `json:"years"`
}

type skillsDTO struct {
	Skills []skillDTO `json:"skills"`
}

type educationDTO struct {
	University        string   `json:"university"`
	Degree            string   `json:"degree"`
	FieldOfStudy      string   `json:"field_of_study"`
	AlternativeFields []string `json:"alternative_fields"`
	GraduationYear    int      `json:"graduation_year"`
}

type educationsDTO struct {
	Education []educationDTO `json:"education"`
}

type roleSkillDTO struct {
	Name             string   `json:"name"`
	AlternativeNames []string `json:"alternative_names"`
	Importance       string   `json:"importance"`
	MinimumYears     float64  `json:"minimum_years"`
}

type roleFieldDTO struct {
	Name              string   `json:"name"`
	AlternativeFields []string `json:"alternative_fields"`
	Importance        string   `json:"importance"`
}

type roleDTO struct {
	JobTitle             string         `json:"job_title"`
	AlternativeTitles    []string       `json:"alternative_titles"`
	DegreeRequirement    string         `json:"degree_requirement"`
	FieldsOfStudy        []roleFieldDTO `json:"fields_of_study"`
	TotalExperienceYears float64        `json:"total_experience_years"`
	RequiredSkills       []roleSkillDTO `json:"required_skills"`
	LocationCity         string         `json:"location_city"`
	RemoteOption         bool           `json:"remote_option"`
	IndustrySector       string         `json:"industry_sector"`
	RoleLevel            string         `json:"role_level"`
	Keywords             []string       `json:"keywords"`
}

// ExtractCandidate runs the four focused extraction prompts over the CV
// text and assembles a validated candidate record. Individual prompt
// failures degrade to empty sections; only LLM transport errors abort.
func (c *Client) ExtractCandidate(ctx context.Context, cvText, cvFileName string) (models.CandidateRecord, error) {
	start := time.Now()
	rec := models.CandidateRecord{
		CVText:     cvText,
		CVFileName: cvFileName,
	}

	var person personDTO
	response, err := c.generate(ctx, fmt.Sprintf(personPrompt, cvText))
	if err != nil {
		return rec, fmt.Errorf("extract person: %w", err)
	}
	if !decodeLenient(response, &person) {
		c.logger.Warn("unparseable person response", "file", cvFileName)
	}
	rec.Name = strings.TrimSpace(person.Name)
	rec.JobTitle = strings.TrimSpace(person.Role)
	rec.Description = strings.TrimSpace(person.Summary)
	rec.LocationCity = strings.TrimSpace(person.LocationCity)

	var positions positionsDTO
	response, err = c.generate(ctx, fmt.Sprintf(positionsPrompt, cvText))
	if err != nil {
		return rec, fmt.Errorf("extract positions: %w", err)
	}
	if !decodeLenient(response, &positions) {
		c.logger.Warn("unparseable positions response", "file", cvFileName)
	}
	for _, p := range positions.Positions {
		if strings.TrimSpace(p.JobTitle) == "" {
			continue
		}
		rec.Experiences = append(rec.Experiences, models.ExperienceEntry{
			JobTitle:             strings.TrimSpace(p.JobTitle),
			AlternativeJobTitles: cleanAlternates(p.AlternativeJobTitles),
			CompanyName:          strings.TrimSpace(p.CompanyName),
			Years:                clampYears(p.Years),
			Description:          strings.TrimSpace(p.Description),
		})
	}

	var skills skillsDTO
	response, err = c.generate(ctx, fmt.Sprintf(skillsPrompt, cvText))
	if err != nil {
		return rec, fmt.Errorf("extract skills: %w", err)
	}
	if !decodeLenient(response, &skills) {
		c.logger.Warn("unparseable skills response", "file", cvFileName)
	}
	for _, s := range skills.Skills {
		if strings.TrimSpace(s.Name) == "" {
			continue
		}
		years := clampYears(s.Years)
		rec.Skills = append(rec.Skills, models.SkillEntry{
			Name:             strings.TrimSpace(s.Name),
			AlternativeNames: cleanAlternates(s.AlternativeNames),
			Level:            models.ParseSkillLevel(s.Level, years),
			Years:            years,
		})
	}

	var education educationsDTO
	response, err = c.generate(ctx, fmt.Sprintf(educationPrompt, cvText))
	if err != nil {
		return rec, fmt.Errorf("extract education: %w", err)
	}
	if !decodeLenient(response, &education) {
		c.logger.Warn("unparseable education response", "file", cvFileName)
	}
	for _, e := range education.Education {
		if strings.TrimSpace(e.FieldOfStudy) == "" && strings.TrimSpace(e.University) == "" {
			continue
		}
		entry := models.EducationEntry{
			University:        strings.TrimSpace(e.University),
			Degree:            models.ParseDegree(e.Degree),
			FieldOfStudy:      strings.TrimSpace(e.FieldOfStudy),
			AlternativeFields: cleanAlternates(e.AlternativeFields),
		}
		if validGraduationYear(e.GraduationYear) {
			entry.GraduationYear = e.GraduationYear
		}
		rec.Education = append(rec.Education, entry)
	}

	// Highest/latest education drives the candidate-level summary fields.
	if len(rec.Education) > 0 {
		last := rec.Education[0]
		for _, e := range rec.Education[1:] {
			if e.GraduationYear >= last.GraduationYear {
				last = e
			}
		}
		rec.LastDegree = last.Degree
		rec.LastFieldOfStudy = last.FieldOfStudy
	}

	c.logger.Info("candidate extraction complete",
		"file", cvFileName,
		"model", c.modelName,
		"experiences", len(rec.Experiences),
		"skills", len(rec.Skills),
		"education", len(rec.Education),
		"duration", time.Since(start))

	return rec, nil
}

// ExtractRole extracts a structured role record from a job posting.
func (c *Client) ExtractRole(ctx context.Context, text string) (models.RoleRecord, error) {
	var rec models.RoleRecord

	response, err := c.generate(ctx, fmt.Sprintf(rolePrompt, text))
	if err != nil {
		return rec, fmt.Errorf("extract role: %w", err)
	}

	var dto roleDTO
	if !decodeLenient(response, &dto) {
		return rec, fmt.Errorf("unparseable role response")
	}

	rec.JobTitle = strings.TrimSpace(dto.JobTitle)
	rec.AlternativeTitles = cleanAlternates(dto.AlternativeTitles)
	rec.DegreeRequirement = models.ParseDegree(dto.DegreeRequirement)
	rec.TotalExperienceYears = clampYears(dto.TotalExperienceYears)
	rec.LocationCity = strings.TrimSpace(dto.LocationCity)
	rec.RemoteOption = dto.RemoteOption
	rec.IndustrySector = strings.TrimSpace(dto.IndustrySector)
	rec.RoleLevel = strings.TrimSpace(dto.RoleLevel)
	rec.Keywords = cleanAlternates(dto.Keywords)

	for _, f := range dto.FieldsOfStudy {
		if strings.TrimSpace(f.Name) == "" {
			continue
		}
		rec.FieldsOfStudy = append(rec.FieldsOfStudy, models.FieldRequirement{
			Name:              strings.TrimSpace(f.Name),
			AlternativeFields: cleanAlternates(f.AlternativeFields),
			Importance:        models.ParseImportance(f.Importance),
		})
	}

	for _, s := range dto.RequiredSkills {
		if strings.TrimSpace(s.Name) == "" {
			continue
		}
		rec.RequiredSkills = append(rec.RequiredSkills, models.SkillRequirement{
			Name:             strings.TrimSpace(s.Name),
			AlternativeNames: cleanAlternates(s.AlternativeNames),
			Importance:       models.ParseImportance(s.Importance),
			MinimumYears:     clampYears(s.MinimumYears),
		})
	}

	return rec, nil
}

// cleanAlternates trims entries and drops empties.
func cleanAlternates(in []string) []string {
	var out []string
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
