// Package report renders check and extract results as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/noxpardalis/gitch/internal/gitrepo"
)

// timeLayout is the local wall-clock format used for extracted commits.
const timeLayout = "2006-01-02T15:04:05"

// ExtractedCommit is the JSON shape of a single commit in extract output.
// Fields are declared in the alphabetical order of their keys.
type ExtractedCommit struct {
	Author    string              `json:"author"`
	Body      string              `json:"body"`
	Committer string              `json:"committer"`
	Diff      *string             `json:"diff,omitempty"`
	ID        string              `json:"id"`
	Summary   string              `json:"summary"`
	Time      string              `json:"time"`
	Trailers  map[string][]string `json:"trailers"`
}

// NewExtractedCommit converts a commit for output. diff is nil when diffs
// were not requested; an empty non-nil diff still serializes, marking a
// commit that introduced no changes.
func NewExtractedCommit(commit gitrepo.Commit, diff *string) ExtractedCommit {
	trailers := commit.Trailers
	if trailers == nil {
		trailers = map[string][]string{}
	}
	return ExtractedCommit{
		Author:    formatSignature(commit.Author),
		Body:      commit.Body,
		Committer: formatSignature(commit.Committer),
		Diff:      diff,
		ID:        commit.ID,
		Summary:   commit.Summary,
		Time:      commit.Time.Local().Format(timeLayout),
		Trailers:  trailers,
	}
}

func formatSignature(sig gitrepo.Signature) string {
	return fmt.Sprintf("%s <%s>", sig.Name, sig.Email)
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
