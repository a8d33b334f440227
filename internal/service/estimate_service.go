package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"gaji/internal/domain"
	"gaji/internal/estimator"
	"gaji/internal/multiplier"
	"gaji/internal/records"
	"gaji/internal/retrieval"
)

// EstimateService wires the salary table, retrieval and estimation
// together. One instance serves one loaded salary guide; all state
// after IndexRecords is read-only.
type EstimateService struct {
	store     *records.Store
	retriever domain.Retriever
	estimator *estimator.Estimator
	narrator  domain.Narrator // nil disables narrative generation
	topK      int
}

func NewEstimateService(store *records.Store, retriever domain.Retriever, est *estimator.Estimator, narrator domain.Narrator, topK int) *EstimateService {
	if topK <= 0 {
		topK = 10
	}
	return &EstimateService{store: store, retriever: retriever, estimator: est, narrator: narrator, topK: topK}
}

// IndexRecords loads the salary guide from path and builds the
// similarity index. Returns the number of records indexed.
func (s *EstimateService) IndexRecords(path string) (int, error) {
	if err := s.store.LoadFile(path); err != nil {
		return 0, err
	}
	if err := s.retriever.Index(s.store.Records()); err != nil {
		return 0, fmt.Errorf("index salary records: %w", err)
	}
	return s.store.Len(), nil
}

// Query runs an ad-hoc similarity search against the salary table.
func (s *EstimateService) Query(query string, topK int) ([]domain.CandidateMatch, error) {
	if topK <= 0 {
		topK = s.topK
	}
	return s.retriever.Search(query, topK)
}

// EstimateNumeric retrieves candidate positions for the profile and
// computes the salary estimate without contacting the narrative
// service. Callers that only need the numbers use this directly.
func (s *EstimateService) EstimateNumeric(p domain.Profile) (domain.EstimateResult, error) {
	level := multiplier.LevelFromYears(p.YearsExperience)
	query := retrieval.BuildQuery(p, level)
	matches, err := s.retriever.Search(query, s.topK)
	if err != nil {
		return domain.EstimateResult{}, err
	}
	return s.estimator.Estimate(p, matches)
}

// EstimateProfile computes the salary estimate and adds the narrative
// analysis. The narrative is best-effort: on failure the numeric
// result is returned unchanged with no narrative.
func (s *EstimateService) EstimateProfile(ctx context.Context, p domain.Profile) (domain.EstimateResult, error) {
	result, err := s.EstimateNumeric(p)
	if err != nil {
		return domain.EstimateResult{}, err
	}
	if s.narrator != nil {
		narrative, nerr := s.narrator.AnalyzeEstimate(ctx, p, result)
		if nerr != nil {
			log.Printf("narrative generation failed, returning numeric estimate only: %v", nerr)
		} else {
			result.Narrative = &narrative
		}
	}
	return result, nil
}

// SimilarRoles returns up to limit records related to the given title,
// deduplicated by title and excluding the title itself.
func (s *EstimateService) SimilarRoles(title, industry string, limit int) ([]domain.CandidateMatch, error) {
	if limit <= 0 {
		limit = 5
	}
	query := strings.TrimSpace(title + " " + industry)
	// Over-fetch so dedup and self-exclusion still fill the limit.
	matches, err := s.retriever.Search(query, limit*2+1)
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{strings.ToLower(title): {}}
	var out []domain.CandidateMatch
	for _, m := range matches {
		key := strings.ToLower(m.Record.JobTitle)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, m)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

// SkillRecommendations asks the narrative service for skill advice,
// falling back to nothing when narration is disabled. Callers decide
// what to show when the list is empty.
func (s *EstimateService) SkillRecommendations(ctx context.Context, p domain.Profile) ([]string, error) {
	if s.narrator == nil {
		return nil, nil
	}
	return s.narrator.SkillRecommendations(ctx, p.Skills, p.Title, p.Industry)
}

// RecordCount returns the number of loaded salary records.
func (s *EstimateService) RecordCount() int { return s.store.Len() }
