package estimator

import (
	"errors"
	"math"
	"testing"

	"gaji/internal/domain"
	"gaji/internal/multiplier"
)

func newEstimator() *Estimator {
	return New(multiplier.Default(), Config{})
}

func match(title string, salary, score float64) domain.CandidateMatch {
	return domain.CandidateMatch{
		Record: domain.SalaryRecord{Industry: "Technology", Category: "Development", JobTitle: title, MonthlySalary: salary},
		Score:  score,
	}
}

func profile(years float64) domain.Profile {
	return domain.Profile{
		Title:           "Full-stack Developer",
		YearsExperience: years,
		Education:       domain.EducationBachelor,
		Location:        "Jakarta",
		Skills:          []string{"Go", "React", "SQL", "Docker", "AWS"},
	}
}

func TestEstimateNoMatch(t *testing.T) {
	_, err := newEstimator().Estimate(profile(5), nil)
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("error = %v, want ErrNoMatch", err)
	}
}

func TestEstimateSingleMatchScenario(t *testing.T) {
	// profile: 5 years, bachelor, Jakarta, 5 skills -> mid x1.0, x1.0, x1.0, x1.0
	res, err := newEstimator().Estimate(profile(5), []domain.CandidateMatch{
		match("Full-stack Developer", 30, 0.9),
	})
	if err != nil {
		t.Fatalf("Estimate() error: %v", err)
	}
	if math.Abs(res.Avg-30) > 1e-9 {
		t.Errorf("avg = %v, want 30", res.Avg)
	}
	if math.Abs(res.Min-24) > 1e-9 || math.Abs(res.Max-36) > 1e-9 {
		t.Errorf("range = [%v, %v], want [24, 36]", res.Min, res.Max)
	}
	if res.Confidence <= 0 || res.Confidence > 1 {
		t.Errorf("confidence = %v, want in (0,1]", res.Confidence)
	}
	if res.BestMatchTitle != "Full-stack Developer" {
		t.Errorf("best match = %q", res.BestMatchTitle)
	}
}

func TestEstimateRangeOrderingAndPositivity(t *testing.T) {
	profiles := []domain.Profile{
		{YearsExperience: 0, Education: domain.EducationHighSchool, Location: "Denpasar"},
		{YearsExperience: 3, Education: domain.EducationDiploma, Location: "Medan", Skills: []string{"Excel"}},
		{YearsExperience: 20, Education: domain.EducationPhD, Location: "Jakarta", Skills: make([]string, 20)},
	}
	matches := []domain.CandidateMatch{match("Tech Lead", 40, 0.8), match("Back-end Developer", 25, 0.5)}
	for _, p := range profiles {
		res, err := newEstimator().Estimate(p, matches)
		if err != nil {
			t.Fatalf("Estimate() error: %v", err)
		}
		if !(res.Min > 0 && res.Avg > 0 && res.Max > 0) {
			t.Errorf("non-positive estimate: %+v", res)
		}
		if res.Min > res.Avg || res.Avg > res.Max {
			t.Errorf("range out of order: min %v, avg %v, max %v", res.Min, res.Avg, res.Max)
		}
	}
}

func TestEstimateExperienceMonotonic(t *testing.T) {
	matches := []domain.CandidateMatch{match("Full-stack Developer", 30, 0.9)}
	years := []float64{1, 3, 6, 9, 15}
	prev := 0.0
	for _, y := range years {
		res, err := newEstimator().Estimate(profile(y), matches)
		if err != nil {
			t.Fatalf("Estimate() error: %v", err)
		}
		if res.Avg < prev {
			t.Errorf("estimate decreased at %v years: %v < %v", y, res.Avg, prev)
		}
		prev = res.Avg
	}
}

func TestEstimateClampsToPlausibleRange(t *testing.T) {
	est := New(multiplier.Default(), Config{ClampMin: 5, ClampMax: 100})

	res, err := est.Estimate(profile(20), []domain.CandidateMatch{match("Head of Everything", 900, 0.9)})
	if err != nil {
		t.Fatalf("Estimate() error: %v", err)
	}
	if res.Max > 100 || res.Avg > 100 {
		t.Errorf("estimate not clamped: %+v", res)
	}
	if res.Min > res.Avg || res.Avg > res.Max {
		t.Errorf("range out of order after clamp: %+v", res)
	}

	res, err = est.Estimate(domain.Profile{YearsExperience: 0, Education: domain.EducationHighSchool, Location: "elsewhere"},
		[]domain.CandidateMatch{match("Intern", 1, 0.9)})
	if err != nil {
		t.Fatalf("Estimate() error: %v", err)
	}
	if res.Min < 5 {
		t.Errorf("min %v below clamp floor", res.Min)
	}
}

func TestBaseSalaryBlendsTiedMatches(t *testing.T) {
	e := newEstimator()

	// Clear winner: base equals the top salary.
	res, err := e.Estimate(profile(5), []domain.CandidateMatch{
		match("Full-stack Developer", 30, 0.9),
		match("Tech Lead", 40, 0.4),
		match("Back-end Developer", 25, 0.3),
	})
	if err != nil {
		t.Fatalf("Estimate() error: %v", err)
	}
	if math.Abs(res.Avg-30) > 1e-9 {
		t.Errorf("avg = %v, want top match salary 30", res.Avg)
	}

	// Scores within tolerance: base lies between the blended salaries.
	res, err = e.Estimate(profile(5), []domain.CandidateMatch{
		match("Full-stack Developer", 30, 0.90),
		match("Back-end Developer", 20, 0.88),
	})
	if err != nil {
		t.Fatalf("Estimate() error: %v", err)
	}
	if res.Avg <= 20 || res.Avg >= 30 {
		t.Errorf("blended avg = %v, want in (20, 30)", res.Avg)
	}
}

func TestZeroTieToleranceBlendsExactTiesOnly(t *testing.T) {
	zero := 0.0
	e := New(multiplier.Default(), Config{TieTolerance: &zero})

	// Near ties are no longer blended.
	res, err := e.Estimate(profile(5), []domain.CandidateMatch{
		match("Full-stack Developer", 30, 0.90),
		match("Back-end Developer", 20, 0.88),
	})
	if err != nil {
		t.Fatalf("Estimate() error: %v", err)
	}
	if math.Abs(res.Avg-30) > 1e-9 {
		t.Errorf("avg = %v, want top match salary 30", res.Avg)
	}

	// Exact ties still are.
	res, err = e.Estimate(profile(5), []domain.CandidateMatch{
		match("Full-stack Developer", 30, 0.90),
		match("Back-end Developer", 20, 0.90),
	})
	if err != nil {
		t.Fatalf("Estimate() error: %v", err)
	}
	if math.Abs(res.Avg-25) > 1e-9 {
		t.Errorf("avg = %v, want equal-weight blend 25", res.Avg)
	}
}

func TestConfidenceDiscountedWhenSparse(t *testing.T) {
	e := newEstimator()
	full := []domain.CandidateMatch{
		match("A", 30, 0.8), match("B", 28, 0.6), match("C", 25, 0.5),
	}
	res, err := e.Estimate(profile(5), full)
	if err != nil {
		t.Fatalf("Estimate() error: %v", err)
	}
	if math.Abs(res.Confidence-0.8) > 1e-9 {
		t.Errorf("confidence = %v, want top score 0.8", res.Confidence)
	}

	res, err = e.Estimate(profile(5), full[:1])
	if err != nil {
		t.Fatalf("Estimate() error: %v", err)
	}
	if math.Abs(res.Confidence-0.8*0.8) > 1e-9 {
		t.Errorf("sparse confidence = %v, want 0.64", res.Confidence)
	}
}

func TestRecommendations(t *testing.T) {
	e := newEstimator()

	junior := domain.Profile{YearsExperience: 1, Education: domain.EducationBachelor}
	res, err := e.Estimate(junior, []domain.CandidateMatch{match("Junior Developer", 15, 0.7)})
	if err != nil {
		t.Fatalf("Estimate() error: %v", err)
	}
	if len(res.Recommendations) == 0 {
		t.Error("expected recommendations for an entry-level profile without certifications")
	}

	senior := domain.Profile{YearsExperience: 15, Education: domain.EducationMaster, Certifications: []string{"PMP"}}
	res, err = e.Estimate(senior, []domain.CandidateMatch{match("Engineering Manager", 67, 0.8)})
	if err != nil {
		t.Fatalf("Estimate() error: %v", err)
	}
	found := false
	for _, r := range res.Recommendations {
		if r != "" {
			found = true
		}
	}
	if !found {
		t.Error("expected senior-bracket recommendation for a 67M match")
	}
}
