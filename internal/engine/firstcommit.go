package engine

import (
	"fmt"

	"github.com/noxpardalis/gitch/internal/gitrepo"
)

// checkFirstCommit verifies that the repository's root commit introduced no
// content. The root commit is looked up directly, so it is checked even when
// the requested window excludes it; its record then joins the aggregate.
func (e *Engine) checkFirstCommit(records *recordSet) error {
	e.reporter.StartPhase("Performing special-case checks", 1)
	defer e.reporter.EndPhase()

	first, err := e.source.FirstCommit()
	if err != nil {
		return fmt.Errorf("failed to resolve first commit: %w", err)
	}

	diff, err := e.source.DiffWithParent(first, gitrepo.AlgorithmMyers)
	if err != nil {
		return fmt.Errorf("failed to diff first commit: %w", err)
	}

	record := records.ensure(first.ID, first.Summary)
	if diff != "" {
		record.add("expected first commit to be an empty commit")
	}
	e.reporter.Advance(first.ID)
	return nil
}
