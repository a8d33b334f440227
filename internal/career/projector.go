package career

import (
	"strings"

	"gaji/internal/domain"
	"gaji/internal/multiplier"
)

// growthClass groups industries by how aggressively salaries grow.
type growthClass string

const (
	highGrowth     growthClass = "high"     // tech, startups
	moderateGrowth growthClass = "moderate" // established corporates
	stableGrowth   growthClass = "stable"   // traditional industries
)

// annual growth percentages per seniority band
var growthPatterns = map[growthClass]map[domain.ExperienceLevel]float64{
	highGrowth: {
		domain.ExperienceEntry:  15,
		domain.ExperienceJunior: 12,
		domain.ExperienceMid:    10,
		domain.ExperienceSenior: 8,
		domain.ExperienceExpert: 6,
	},
	moderateGrowth: {
		domain.ExperienceEntry:  10,
		domain.ExperienceJunior: 8,
		domain.ExperienceMid:    7,
		domain.ExperienceSenior: 6,
		domain.ExperienceExpert: 5,
	},
	stableGrowth: {
		domain.ExperienceEntry:  8,
		domain.ExperienceJunior: 6,
		domain.ExperienceMid:    5,
		domain.ExperienceSenior: 4,
		domain.ExperienceExpert: 3,
	},
}

// YearProjection is one step of a salary progression forecast.
// Salary is the projected monthly average in millions IDR.
type YearProjection struct {
	Year   int
	Level  domain.ExperienceLevel
	Salary float64
}

// Projector forecasts salary progression by compounding annual growth
// for the profile's industry class, promoting the seniority band as
// accumulated experience crosses band boundaries.
type Projector struct{}

func NewProjector() *Projector { return &Projector{} }

// Project returns year-by-year projections starting from the current
// average salary. It is deterministic and side-effect free.
func (pr *Projector) Project(p domain.Profile, currentAvg float64, years int) []YearProjection {
	if years <= 0 || currentAvg <= 0 {
		return nil
	}
	class := classify(p.Industry)
	rates := growthPatterns[class]
	salary := currentAvg
	out := make([]YearProjection, 0, years)
	for y := 1; y <= years; y++ {
		level := multiplier.LevelFromYears(p.YearsExperience + float64(y))
		salary *= 1 + rates[level]/100
		out = append(out, YearProjection{Year: y, Level: level, Salary: salary})
	}
	return out
}

func classify(industry string) growthClass {
	lower := strings.ToLower(industry)
	switch {
	case strings.Contains(lower, "technology") || strings.Contains(lower, "tech") || strings.Contains(lower, "digital"):
		return highGrowth
	case strings.Contains(lower, "bank") || strings.Contains(lower, "finance") ||
		strings.Contains(lower, "marketing") || strings.Contains(lower, "executive"):
		return moderateGrowth
	default:
		return stableGrowth
	}
}
