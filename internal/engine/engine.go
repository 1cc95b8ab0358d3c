package engine

import (
	"github.com/rs/zerolog/log"

	"github.com/noxpardalis/gitch/internal/config"
	"github.com/noxpardalis/gitch/internal/gitrepo"
	"github.com/noxpardalis/gitch/internal/nlp"
)

// Source supplies the repository lookups the evaluators need beyond the
// commits they were handed. *gitrepo.Repository satisfies it.
type Source interface {
	FirstCommit() (gitrepo.Commit, error)
	DiffWithParent(commit gitrepo.Commit, algorithm gitrepo.Algorithm) (string, error)
}

// Options carries the engine's collaborators.
type Options struct {
	Source   Source
	Loader   nlp.Loader
	Reporter Reporter
	// Offline forbids fetching tagging models that are missing on disk.
	Offline bool
}

// Engine runs the configured rules over a slice of commits and aggregates
// the violations per commit.
type Engine struct {
	cfg      *config.Schema
	source   Source
	loader   nlp.Loader
	reporter Reporter
	offline  bool
}

func New(cfg *config.Schema, opts Options) *Engine {
	reporter := opts.Reporter
	if reporter == nil {
		reporter = NopReporter()
	}
	return &Engine{
		cfg:      cfg,
		source:   opts.Source,
		loader:   opts.Loader,
		reporter: reporter,
		offline:  opts.Offline,
	}
}

// Check evaluates every configured rule against commits. Per-commit checks
// run first in a single sequential pass, then the batched verb-form check,
// then the first-commit check which may reach outside the given slice.
func (e *Engine) Check(commits []gitrepo.Commit) (*Outcome, error) {
	records := newRecordSet()

	e.checkSequential(commits, records)

	if e.cfg.Summary.FirstWordIsSimpleVerb {
		if err := e.checkVerbForms(commits, records); err != nil {
			return nil, err
		}
	}

	if e.cfg.FirstCommitIsEmpty {
		if err := e.checkFirstCommit(records); err != nil {
			return nil, err
		}
	}

	outcome := records.outcome()
	log.Debug().
		Int("commits", outcome.Total).
		Int("failing", len(outcome.Failing)).
		Msg("check complete")
	return outcome, nil
}
