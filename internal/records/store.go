package records

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"gaji/internal/domain"
)

// Store holds the salary guide table in memory. Records are immutable
// once loaded and keep their file order, which downstream retrieval
// uses as the tie-break key.
type Store struct {
	records []domain.SalaryRecord
}

// NewStore creates an empty store.
func NewStore() *Store { return &Store{} }

// LoadFile reads salary records from a JSON file. Malformed entries are
// skipped with a warning rather than failing the load. A missing file
// falls back to the built-in sample of the salary guide.
func (s *Store) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("salary guide not found at %s, using built-in sample data", path)
			s.records = SampleRecords()
			return nil
		}
		return fmt.Errorf("read salary guide: %w", err)
	}
	var raw []domain.SalaryRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse salary guide JSON: %w", err)
	}
	s.records = s.records[:0]
	for i, r := range raw {
		if err := validate(r); err != nil {
			log.Printf("skipping salary record %d: %v", i, err)
			continue
		}
		s.records = append(s.records, r)
	}
	return nil
}

// LoadRecords replaces the store contents with the given records,
// applying the same validation as LoadFile.
func (s *Store) LoadRecords(recs []domain.SalaryRecord) {
	s.records = s.records[:0]
	for i, r := range recs {
		if err := validate(r); err != nil {
			log.Printf("skipping salary record %d: %v", i, err)
			continue
		}
		s.records = append(s.records, r)
	}
}

// Records returns the loaded records in insertion order.
func (s *Store) Records() []domain.SalaryRecord { return s.records }

// Len returns the number of loaded records.
func (s *Store) Len() int { return len(s.records) }

func validate(r domain.SalaryRecord) error {
	if strings.TrimSpace(r.JobTitle) == "" {
		return errors.New("empty job title")
	}
	if strings.TrimSpace(r.Industry) == "" {
		return errors.New("empty industry")
	}
	if r.MonthlySalary <= 0 {
		return fmt.Errorf("non-positive salary %v for %q", r.MonthlySalary, r.JobTitle)
	}
	return nil
}

// SearchText builds the text indexed for a record: title, industry and
// category enriched with related terms so that near-synonym queries
// ("programmer" for "Developer") still overlap.
func SearchText(r domain.SalaryRecord) string {
	parts := []string{r.JobTitle, r.Industry, r.Category}
	if v := titleVariations(r.JobTitle); v != "" {
		parts = append(parts, v)
	}
	out := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

var variationTerms = map[string]string{
	"developer": "programmer engineer coder software development coding",
	"manager":   "lead head supervisor coordinator management leader",
	"analyst":   "specialist expert consultant analysis analytics",
	"director":  "head vp vice president executive leadership",
	"engineer":  "developer specialist technical engineering",
	"marketing": "brand digital social media advertising promotion",
	"finance":   "accounting financial controller treasury audit",
	"hr":        "human resources people talent recruitment organizational",
}

func titleVariations(title string) string {
	lower := strings.ToLower(title)
	var result []string
	for key, terms := range variationTerms {
		if strings.Contains(lower, key) {
			result = append(result, terms)
		}
	}
	return strings.Join(result, " ")
}
