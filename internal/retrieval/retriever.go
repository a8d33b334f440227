package retrieval

import (
	"fmt"
	"strings"

	"gaji/internal/domain"
	"gaji/internal/records"
)

// scoreEpsilon separates genuine term overlap from floating-point noise.
const scoreEpsilon = 1e-9

// VectorRetriever indexes salary records through an embedder into a
// vector store and answers similarity queries. The store backend is
// fixed at construction; an unusable backend surfaces as an error, not
// a silent switch to another one.
type VectorRetriever struct {
	embedder domain.Embedder
	store    domain.VectorStore
	indexed  bool
}

func New(embedder domain.Embedder, store domain.VectorStore) *VectorRetriever {
	return &VectorRetriever{embedder: embedder, store: store}
}

// Index prepares the embedder over the record corpus and upserts the
// vectors. An empty record set is not an error: the retriever simply
// answers every search with no candidates.
func (r *VectorRetriever) Index(recs []domain.SalaryRecord) error {
	corpus := make([]string, len(recs))
	for i, rec := range recs {
		corpus[i] = records.SearchText(rec)
	}
	if err := r.embedder.Prepare(corpus); err != nil {
		return fmt.Errorf("prepare embedder: %w", err)
	}
	if r.embedder.Dimension() == 0 {
		r.indexed = false
		return nil
	}
	if err := r.store.Init(r.embedder.Dimension()); err != nil {
		return fmt.Errorf("init vector store: %w", err)
	}
	vectors := make([][]float64, len(recs))
	for i := range recs {
		vec, err := r.embedder.Embed(corpus[i])
		if err != nil {
			return fmt.Errorf("embed record %q: %w", recs[i].JobTitle, err)
		}
		vectors[i] = vec
	}
	if err := r.store.Upsert(recs, vectors); err != nil {
		return fmt.Errorf("upsert vectors: %w", err)
	}
	r.indexed = true
	return nil
}

// Search returns the top-K records by descending cosine similarity.
// A query with no term overlap with the corpus returns an empty slice;
// callers must handle zero candidates.
func (r *VectorRetriever) Search(query string, topK int) ([]domain.CandidateMatch, error) {
	if !r.indexed || strings.TrimSpace(query) == "" {
		return nil, nil
	}
	vec, err := r.embedder.Embed(query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if isZero(vec) {
		return nil, nil
	}
	res, err := r.store.Search(vec, topK)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	// Drop no-overlap hits so callers only see real candidates.
	out := res[:0]
	for _, m := range res {
		if m.Score > scoreEpsilon {
			out = append(out, m)
		}
	}
	return out, nil
}

func isZero(vec []float64) bool {
	for _, v := range vec {
		if v != 0 {
			return false
		}
	}
	return true
}

// BuildQuery assembles the retrieval query for a profile: current
// title, industry, the leading skills and the seniority band.
func BuildQuery(p domain.Profile, level domain.ExperienceLevel) string {
	var parts []string
	if p.Title != "" {
		parts = append(parts, p.Title)
	}
	if p.Industry != "" {
		parts = append(parts, p.Industry)
	}
	skills := p.Skills
	if len(skills) > 5 {
		skills = skills[:5]
	}
	parts = append(parts, skills...)
	parts = append(parts, string(level)+" level")
	return strings.Join(parts, " ")
}
