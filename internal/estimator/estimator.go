package estimator

import (
	"errors"

	"gaji/internal/domain"
	"gaji/internal/multiplier"
)

// ErrNoMatch signals that no candidate records were available to base
// an estimate on. Callers surface this as an "insufficient data"
// message rather than a numeric result.
var ErrNoMatch = errors.New("no matching salary records")

// Config tunes the estimation policy. Zero values pick the defaults,
// except TieTolerance, where nil means default and an explicit zero
// blends exact ties only.
type Config struct {
	// TieTolerance is the score band below the best match within which
	// candidates are blended into the base salary.
	TieTolerance *float64
	// BlendLimit caps how many tied candidates are blended.
	BlendLimit int
	// MinCandidates is the match count under which confidence is discounted.
	MinCandidates int
	// ClampMin and ClampMax bound the output range, in millions IDR/month.
	ClampMin float64
	ClampMax float64
}

const (
	defaultTieTolerance  = 0.05
	defaultBlendLimit    = 3
	defaultMinCandidates = 3
	defaultClampMin      = 5
	defaultClampMax      = 500

	// Range spread around the blended base salary.
	rangeLow  = 0.8
	rangeHigh = 1.2

	// Confidence discount applied when too few candidates were found.
	sparseDiscount = 0.8
)

// Estimator turns a profile and its ranked candidate matches into a
// salary range. It is a pure function of its inputs.
type Estimator struct {
	table        *multiplier.Table
	tieTolerance float64
	cfg          Config
}

func New(table *multiplier.Table, cfg Config) *Estimator {
	tieTolerance := defaultTieTolerance
	if cfg.TieTolerance != nil && *cfg.TieTolerance >= 0 {
		tieTolerance = *cfg.TieTolerance
	}
	if cfg.BlendLimit <= 0 {
		cfg.BlendLimit = defaultBlendLimit
	}
	if cfg.MinCandidates <= 0 {
		cfg.MinCandidates = defaultMinCandidates
	}
	if cfg.ClampMin <= 0 {
		cfg.ClampMin = defaultClampMin
	}
	if cfg.ClampMax <= cfg.ClampMin {
		cfg.ClampMax = defaultClampMax
	}
	return &Estimator{table: table, tieTolerance: tieTolerance, cfg: cfg}
}

// Estimate computes the salary range for a profile from its candidate
// matches. Matches must already be sorted by descending score. Returns
// ErrNoMatch when the candidate list is empty.
func (e *Estimator) Estimate(p domain.Profile, matches []domain.CandidateMatch) (domain.EstimateResult, error) {
	if len(matches) == 0 {
		return domain.EstimateResult{}, ErrNoMatch
	}

	base := e.baseSalary(matches)
	set := e.table.ForProfile(p)
	factor := set.Product()

	res := domain.EstimateResult{
		Min:            clamp(base*rangeLow*factor, e.cfg.ClampMin, e.cfg.ClampMax),
		Avg:            clamp(base*factor, e.cfg.ClampMin, e.cfg.ClampMax),
		Max:            clamp(base*rangeHigh*factor, e.cfg.ClampMin, e.cfg.ClampMax),
		Confidence:     e.confidence(matches),
		Multipliers:    set,
		BestMatchTitle: matches[0].Record.JobTitle,
		Matches:        matches,
	}
	res.Recommendations = e.recommendations(p, matches)
	return res, nil
}

// baseSalary blends the salaries of the leading matches whose score is
// within the tie tolerance of the best one, weighted by score. With a
// clear winner this degenerates to the top match's salary.
func (e *Estimator) baseSalary(matches []domain.CandidateMatch) float64 {
	best := matches[0].Score
	var sum, weight float64
	for i, m := range matches {
		if i >= e.cfg.BlendLimit || best-m.Score > e.tieTolerance {
			break
		}
		sum += m.Record.MonthlySalary * m.Score
		weight += m.Score
	}
	if weight <= 0 {
		return matches[0].Record.MonthlySalary
	}
	return sum / weight
}

func (e *Estimator) confidence(matches []domain.CandidateMatch) float64 {
	conf := clamp(matches[0].Score, 0, 1)
	if len(matches) < e.cfg.MinCandidates {
		conf *= sparseDiscount
	}
	return conf
}

func (e *Estimator) recommendations(p domain.Profile, matches []domain.CandidateMatch) []string {
	var recs []string
	level := multiplier.LevelFromYears(p.YearsExperience)
	if level == domain.ExperienceEntry || level == domain.ExperienceJunior {
		recs = append(recs, "Focus on building technical expertise and obtaining relevant certifications to accelerate career progression.")
	}
	if len(p.Certifications) == 0 {
		recs = append(recs, "Consider obtaining industry-relevant certifications to increase market value and salary potential.")
	}
	if matches[0].Record.MonthlySalary > 50 {
		recs = append(recs, "Your profile matches senior-level positions. Consider negotiating for leadership roles or exploring executive opportunities.")
	}
	if len(recs) > 5 {
		recs = recs[:5]
	}
	return recs
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
