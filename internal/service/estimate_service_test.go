package service

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"gaji/internal/domain"
	"gaji/internal/embedding/tfidf"
	"gaji/internal/estimator"
	"gaji/internal/multiplier"
	"gaji/internal/records"
	"gaji/internal/retrieval"
	"gaji/internal/vectorstore/memory"
)

type stubNarrator struct {
	narrative domain.Narrative
	err       error
	calls     int
}

func (s *stubNarrator) AnalyzeEstimate(ctx context.Context, p domain.Profile, est domain.EstimateResult) (domain.Narrative, error) {
	s.calls++
	return s.narrative, s.err
}

func (s *stubNarrator) SkillRecommendations(ctx context.Context, skills []string, targetRole, industry string) ([]string, error) {
	return []string{"Kubernetes"}, s.err
}

func newService(t *testing.T, narrator domain.Narrator) *EstimateService {
	t.Helper()
	store := records.NewStore()
	retriever := retrieval.New(tfidf.NewEmbedder(), memory.NewStorage())
	est := estimator.New(multiplier.Default(), estimator.Config{})
	svc := NewEstimateService(store, retriever, est, narrator, 10)
	// Point at a path that does not exist so the built-in sample loads.
	if _, err := svc.IndexRecords(filepath.Join(t.TempDir(), "none.json")); err != nil {
		t.Fatalf("IndexRecords() error: %v", err)
	}
	return svc
}

func sampleProfile() domain.Profile {
	return domain.Profile{
		Title:           "Full-stack Developer",
		YearsExperience: 5,
		Education:       domain.EducationBachelor,
		Industry:        "Technology",
		Location:        "Jakarta",
		Skills:          []string{"Go", "React", "SQL", "Docker", "AWS"},
	}
}

func TestEstimateProfileEndToEnd(t *testing.T) {
	svc := newService(t, nil)
	res, err := svc.EstimateProfile(context.Background(), sampleProfile())
	if err != nil {
		t.Fatalf("EstimateProfile() error: %v", err)
	}
	if !(res.Min > 0 && res.Min <= res.Avg && res.Avg <= res.Max) {
		t.Errorf("range invalid: min %v, avg %v, max %v", res.Min, res.Avg, res.Max)
	}
	if res.Confidence <= 0 || res.Confidence > 1 {
		t.Errorf("confidence = %v, want in (0,1]", res.Confidence)
	}
	if len(res.Matches) == 0 {
		t.Error("expected candidate matches for a guide job title")
	}
	if res.Narrative != nil {
		t.Error("narrative should be nil when narration is disabled")
	}
}

func TestEstimateProfileNoMatch(t *testing.T) {
	svc := newService(t, nil)
	p := domain.Profile{Title: "zzqqx", YearsExperience: 3, Education: domain.EducationBachelor}
	_, err := svc.EstimateProfile(context.Background(), p)
	if !errors.Is(err, estimator.ErrNoMatch) {
		t.Fatalf("error = %v, want ErrNoMatch", err)
	}
}

func TestEstimateProfileEmptyCorpusSignalsNoMatch(t *testing.T) {
	store := records.NewStore()
	store.LoadRecords(nil)
	retriever := retrieval.New(tfidf.NewEmbedder(), memory.NewStorage())
	if err := retriever.Index(store.Records()); err != nil {
		t.Fatalf("Index() error: %v", err)
	}
	est := estimator.New(multiplier.Default(), estimator.Config{})
	svc := NewEstimateService(store, retriever, est, nil, 10)

	_, err := svc.EstimateProfile(context.Background(), sampleProfile())
	if !errors.Is(err, estimator.ErrNoMatch) {
		t.Fatalf("error = %v, want ErrNoMatch", err)
	}
}

func TestNarrativeFailureKeepsNumericEstimate(t *testing.T) {
	failing := &stubNarrator{err: errors.New("service timeout")}
	svc := newService(t, failing)
	withNarrator, err := svc.EstimateProfile(context.Background(), sampleProfile())
	if err != nil {
		t.Fatalf("EstimateProfile() error: %v", err)
	}
	if failing.calls != 1 {
		t.Fatalf("narrator called %d times, want 1", failing.calls)
	}
	if withNarrator.Narrative != nil {
		t.Error("narrative should be nil after narrator failure")
	}

	plain := newService(t, nil)
	baseline, err := plain.EstimateProfile(context.Background(), sampleProfile())
	if err != nil {
		t.Fatalf("EstimateProfile() error: %v", err)
	}
	withNarrator.Narrative, baseline.Narrative = nil, nil
	if !reflect.DeepEqual(withNarrator, baseline) {
		t.Errorf("numeric estimate changed by narrator failure:\n got %+v\nwant %+v", withNarrator, baseline)
	}
}

func TestEstimateNumericSkipsNarrator(t *testing.T) {
	n := &stubNarrator{narrative: domain.Narrative{Explanation: "unused"}}
	svc := newService(t, n)
	res, err := svc.EstimateNumeric(sampleProfile())
	if err != nil {
		t.Fatalf("EstimateNumeric() error: %v", err)
	}
	if n.calls != 0 {
		t.Errorf("narrator called %d times, want 0", n.calls)
	}
	if res.Narrative != nil {
		t.Error("numeric estimate should carry no narrative")
	}
	if !(res.Min > 0 && res.Min <= res.Avg && res.Avg <= res.Max) {
		t.Errorf("range invalid: min %v, avg %v, max %v", res.Min, res.Avg, res.Max)
	}
}

func TestNarrativeSuccessAttached(t *testing.T) {
	n := &stubNarrator{narrative: domain.Narrative{Explanation: "strong profile"}}
	svc := newService(t, n)
	res, err := svc.EstimateProfile(context.Background(), sampleProfile())
	if err != nil {
		t.Fatalf("EstimateProfile() error: %v", err)
	}
	if res.Narrative == nil || res.Narrative.Explanation != "strong profile" {
		t.Errorf("narrative = %+v", res.Narrative)
	}
}

func TestSimilarRolesExcludesQueriedTitle(t *testing.T) {
	svc := newService(t, nil)
	roles, err := svc.SimilarRoles("Full-stack Developer", "Technology", 3)
	if err != nil {
		t.Fatalf("SimilarRoles() error: %v", err)
	}
	if len(roles) == 0 {
		t.Fatal("expected related roles")
	}
	if len(roles) > 3 {
		t.Fatalf("got %d roles, want at most 3", len(roles))
	}
	seen := map[string]bool{}
	for _, r := range roles {
		if r.Record.JobTitle == "Full-stack Developer" {
			t.Error("queried title returned as related role")
		}
		if seen[r.Record.JobTitle] {
			t.Errorf("duplicate role %q", r.Record.JobTitle)
		}
		seen[r.Record.JobTitle] = true
	}
}

func TestQueryReturnsRankedMatches(t *testing.T) {
	svc := newService(t, nil)
	res, err := svc.Query("marketing manager", 5)
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	if len(res) == 0 {
		t.Fatal("expected matches")
	}
	for i := 1; i < len(res); i++ {
		if res[i].Score > res[i-1].Score {
			t.Errorf("results not sorted descending at %d", i)
		}
	}
}

func TestSkillRecommendationsDisabled(t *testing.T) {
	svc := newService(t, nil)
	recs, err := svc.SkillRecommendations(context.Background(), sampleProfile())
	if err != nil {
		t.Fatalf("SkillRecommendations() error: %v", err)
	}
	if recs != nil {
		t.Errorf("expected nil recommendations without a narrator, got %v", recs)
	}
}
