package engine

import (
	"slices"
	"strings"
)

// Record accumulates the violations found for a single commit. Field order
// mirrors the alphabetical key order of the JSON report.
type Record struct {
	Violations []string `json:"errors"`
	ID         string   `json:"id"`
	Summary    string   `json:"summary"`
}

func (r *Record) add(violation string) {
	r.Violations = append(r.Violations, violation)
}

// recordSet is the working map shared by the evaluator phases. Records are
// created on first touch and only ever extended afterwards; phases never
// replace an existing record.
type recordSet struct {
	records map[string]*Record
}

func newRecordSet() *recordSet {
	return &recordSet{records: make(map[string]*Record)}
}

func (s *recordSet) ensure(id, summary string) *Record {
	if record, ok := s.records[id]; ok {
		return record
	}
	record := &Record{ID: id, Summary: summary}
	s.records[id] = record
	return record
}

func (s *recordSet) get(id string) *Record {
	return s.records[id]
}

func (s *recordSet) outcome() *Outcome {
	var failing []Record
	for _, record := range s.records {
		if len(record.Violations) > 0 {
			failing = append(failing, *record)
		}
	}
	slices.SortFunc(failing, func(a, b Record) int {
		return strings.Compare(a.ID, b.ID)
	})

	return &Outcome{Failing: failing, Total: len(s.records)}
}

// Outcome is the aggregated result of a check run.
type Outcome struct {
	// Failing holds the records with at least one violation, sorted
	// ascending by commit id for reproducible output.
	Failing []Record
	// Total counts every commit any evaluator touched, including a root
	// commit pulled in from outside the checked window.
	Total int
}

// Failed reports whether the run should signal failure.
func (o *Outcome) Failed() bool {
	return len(o.Failing) > 0
}
