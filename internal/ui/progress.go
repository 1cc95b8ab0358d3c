// Package ui renders interactive progress for long check runs.
package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Progress reports evaluation phases with a spinner and a running commit
// counter. It only animates when stderr is a terminal; otherwise every call
// is a no-op so piped output stays clean.
type Progress struct {
	s       *spinner.Spinner
	enabled bool

	phase string
	done  int
	total int
}

// NewProgress creates a progress reporter bound to stderr.
func NewProgress() *Progress {
	enabled := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	if !enabled {
		return &Progress{}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	return &Progress{s: s, enabled: true}
}

// StartPhase begins a new phase over total commits.
func (p *Progress) StartPhase(description string, total int) {
	if !p.enabled {
		return
	}
	p.phase = description
	p.done = 0
	p.total = total
	p.s.Suffix = p.suffix("")
	p.s.Start()
}

// Advance marks one commit as processed.
func (p *Progress) Advance(commitID string) {
	if !p.enabled {
		return
	}
	p.done++
	p.s.Suffix = p.suffix(commitID)
}

// EndPhase stops the spinner and prints the completed phase.
func (p *Progress) EndPhase() {
	if !p.enabled {
		return
	}
	p.s.Stop()
	fmt.Fprintf(os.Stderr, "%s %s (%d/%d)\n",
		color.GreenString("✓"), p.phase, p.done, p.total)
}

func (p *Progress) suffix(commitID string) string {
	if commitID == "" {
		return fmt.Sprintf(" %s (%d/%d)", p.phase, p.done, p.total)
	}
	return fmt.Sprintf(" %s (%d/%d) %s", p.phase, p.done, p.total, shortID(commitID))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
