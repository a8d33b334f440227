package multiplier

import (
	"strings"

	"gaji/internal/domain"
)

// Table maps profile dimensions to fixed positive salary adjustment
// factors. Values follow the Indonesia Salary Guide calibration.
type Table struct {
	experience map[domain.ExperienceLevel]float64
	education  map[domain.EducationLevel]float64
	location   []cityRate
	otherCity  float64
}

type cityRate struct {
	city string
	rate float64
}

// Default returns the standard multiplier table.
func Default() *Table {
	return &Table{
		experience: map[domain.ExperienceLevel]float64{
			domain.ExperienceEntry:  0.70,
			domain.ExperienceJunior: 0.85,
			domain.ExperienceMid:    1.00,
			domain.ExperienceSenior: 1.20,
			domain.ExperienceExpert: 1.40,
		},
		education: map[domain.EducationLevel]float64{
			domain.EducationHighSchool: 0.70,
			domain.EducationDiploma:    0.85,
			domain.EducationBachelor:   1.00,
			domain.EducationMaster:     1.15,
			domain.EducationPhD:        1.30,
		},
		location: []cityRate{
			{"jakarta", 1.00},
			{"surabaya", 0.85},
			{"bandung", 0.85},
			{"medan", 0.80},
			{"semarang", 0.80},
		},
		otherCity: 0.75,
	}
}

// LevelFromYears maps total years of experience to a seniority band.
func LevelFromYears(years float64) domain.ExperienceLevel {
	switch {
	case years < 2:
		return domain.ExperienceEntry
	case years < 5:
		return domain.ExperienceJunior
	case years < 8:
		return domain.ExperienceMid
	case years < 12:
		return domain.ExperienceSenior
	default:
		return domain.ExperienceExpert
	}
}

// Experience returns the factor for a seniority band.
func (t *Table) Experience(level domain.ExperienceLevel) float64 {
	if f, ok := t.experience[level]; ok {
		return f
	}
	return 1.0
}

// Education returns the factor for an education level.
func (t *Table) Education(level domain.EducationLevel) float64 {
	if f, ok := t.education[level]; ok {
		return f
	}
	return 1.0
}

// Location returns the factor for a location string. Matching is a
// case-insensitive substring check against known cities; an empty
// location assumes Jakarta.
func (t *Table) Location(location string) float64 {
	if strings.TrimSpace(location) == "" {
		return 1.0
	}
	lower := strings.ToLower(location)
	for _, c := range t.location {
		if strings.Contains(lower, c.city) {
			return c.rate
		}
	}
	return t.otherCity
}

// Skills returns the factor for the number of listed skills.
func (t *Table) Skills(count int) float64 {
	switch {
	case count == 0:
		return 0.90
	case count < 5:
		return 0.95
	case count < 10:
		return 1.00
	case count < 15:
		return 1.05
	default:
		return 1.10
	}
}

// ForProfile derives the full multiplier set for a profile.
func (t *Table) ForProfile(p domain.Profile) domain.MultiplierSet {
	return domain.MultiplierSet{
		Experience: t.Experience(LevelFromYears(p.YearsExperience)),
		Education:  t.Education(p.Education),
		Location:   t.Location(p.Location),
		Skills:     t.Skills(len(p.Skills)),
	}
}
