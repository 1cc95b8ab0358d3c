package engine

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode"

	"github.com/noxpardalis/gitch/internal/config"
	"github.com/noxpardalis/gitch/internal/fuzzy"
	"github.com/noxpardalis/gitch/internal/gitrepo"
)

// checkSequential runs the per-commit rules in one pass. Every checked
// commit gets a record, violations or not, so the aggregate total is exact.
func (e *Engine) checkSequential(commits []gitrepo.Commit, records *recordSet) {
	e.reporter.StartPhase("Performing sequential checks", len(commits))
	defer e.reporter.EndPhase()

	trailerKeys := slices.Sorted(maps.Keys(e.cfg.Trailers))

	for _, commit := range commits {
		record := records.ensure(commit.ID, commit.Summary)
		e.checkCapitalization(commit, record)
		e.checkTrailers(commit, trailerKeys, record)
		e.reporter.Advance(commit.ID)
	}
}

func (e *Engine) checkCapitalization(commit gitrepo.Commit, record *Record) {
	mode := e.cfg.Summary.FirstWordCapitalization

	if commit.Summary == "" {
		if mode != config.CapitalizationUnset || e.cfg.Summary.FirstWordIsSimpleVerb {
			record.add("summary is empty")
		}
		return
	}

	first := []rune(commit.Summary)[0]
	switch mode {
	case config.CapitalizationLower:
		if !unicode.IsLower(first) {
			record.add("summary does not begin with a lower case letter")
		}
	case config.CapitalizationUpper:
		if !unicode.IsUpper(first) {
			record.add("summary does not begin with an upper case letter")
		}
	}
}

func (e *Engine) checkTrailers(commit gitrepo.Commit, trailerKeys []string, record *Record) {
	for _, key := range trailerKeys {
		rule := e.cfg.Trailers[key]
		values := commit.Trailers[key]

		if len(values) == 0 {
			if !rule.Mandatory {
				continue
			}
			if match := fuzzy.DidYouMean(key, commit.TrailerKeys, fuzzy.DefaultThreshold); match != "" {
				record.add(fmt.Sprintf(
					"trailers['%s'] not found but '%s' is mandatory (found similar field: '%s')",
					key, key, match))
			} else {
				record.add(fmt.Sprintf("trailers['%s'] not found but '%s' is mandatory", key, key))
			}
			continue
		}

		if rule.Singular && len(values) != 1 {
			record.add(fmt.Sprintf(
				"expected trailers['%s'] to be singular instead it has length %d",
				key, len(values)))
		}

		if len(rule.Values) > 0 {
			var offending []string
			for _, value := range values {
				if !rule.AllowsValue(value) {
					offending = append(offending, fmt.Sprintf("'%s'", value))
				}
			}
			if len(offending) > 0 {
				slices.Sort(offending)
				record.add(fmt.Sprintf(
					"trailers['%s'] has non-configured values {%s}",
					key, strings.Join(offending, ", ")))
			}
		}
	}
}
