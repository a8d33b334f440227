package domain

import "context"

// EducationLevel is the highest completed education reported on a profile.
type EducationLevel string

const (
	EducationHighSchool EducationLevel = "high_school"
	EducationDiploma    EducationLevel = "diploma"
	EducationBachelor   EducationLevel = "bachelor"
	EducationMaster     EducationLevel = "master"
	EducationPhD        EducationLevel = "phd"
)

// ExperienceLevel is the seniority band derived from years of experience.
type ExperienceLevel string

const (
	ExperienceEntry  ExperienceLevel = "entry"  // 0-2 years
	ExperienceJunior ExperienceLevel = "junior" // 2-5 years
	ExperienceMid    ExperienceLevel = "mid"    // 5-8 years
	ExperienceSenior ExperienceLevel = "senior" // 8-12 years
	ExperienceExpert ExperienceLevel = "expert" // 12+ years
)

// SalaryRecord is a single entry of the salary guide table.
// Salaries are monthly figures in millions of IDR.
type SalaryRecord struct {
	Industry      string  `json:"industry"`
	Category      string  `json:"category"`
	JobTitle      string  `json:"job_title"`
	MonthlySalary float64 `json:"monthly_salary_idr_millions"`
}

// CandidateMatch pairs a salary record with its similarity score
// against a query. Scores are cosine similarities in [0,1].
type CandidateMatch struct {
	Record SalaryRecord
	Score  float64
}

// Profile is the structured view of a candidate produced by an upstream
// CV parser. It is read-only once created.
type Profile struct {
	Title           string         `json:"title"`
	YearsExperience float64        `json:"years_experience"`
	Education       EducationLevel `json:"education_level"`
	Industry        string         `json:"industry"`
	Skills          []string       `json:"skills"`
	Certifications  []string       `json:"certifications"`
	Location        string         `json:"location"`
}

// MultiplierSet holds the adjustment factors applied to a base salary.
// All values are fixed positive constants from the factor tables.
type MultiplierSet struct {
	Experience float64
	Education  float64
	Location   float64
	Skills     float64
}

// Product returns the combined adjustment factor.
func (m MultiplierSet) Product() float64 {
	return m.Experience * m.Education * m.Location * m.Skills
}

// Narrative is the free-form commentary produced by the narrative service.
type Narrative struct {
	Explanation     string
	Strengths       []string
	Improvements    []string
	Recommendations []string
	MarketInsights  string
}

// EstimateResult is the outcome of a salary estimation. Figures are
// monthly, in millions of IDR. Narrative is nil when the narrative
// service is disabled or failed; the numeric fields stand on their own.
type EstimateResult struct {
	Min        float64
	Avg        float64
	Max        float64
	Confidence float64

	Multipliers    MultiplierSet
	BestMatchTitle string
	Matches        []CandidateMatch

	Recommendations []string
	Narrative       *Narrative
}

// Embedder converts free text into a numeric vector representation.
// Implementations may require a preparation phase over the corpus.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(text string) ([]float64, error)
}

// VectorStore persists record vectors and supports similarity search.
type VectorStore interface {
	Init(dimension int) error
	Upsert(records []SalaryRecord, vectors [][]float64) error
	Search(vector []float64, topK int) ([]CandidateMatch, error)
	Clear() error
}

// Retriever performs similarity search over the salary table. The
// backend is chosen at construction; there is no runtime fallback
// between backends.
type Retriever interface {
	Index(records []SalaryRecord) error
	Search(query string, topK int) ([]CandidateMatch, error)
}

// Narrator produces natural-language commentary for an estimate.
// Callers must treat failures as non-fatal: the numeric estimate is
// always usable without a narrative.
type Narrator interface {
	AnalyzeEstimate(ctx context.Context, profile Profile, estimate EstimateResult) (Narrative, error)
	SkillRecommendations(ctx context.Context, skills []string, targetRole, industry string) ([]string, error)
}
