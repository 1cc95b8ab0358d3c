package gitrepo

import (
	"regexp"
	"strings"
	"time"

	"github.com/go-git/go-git/v5/plumbing/object"
)

// Signature identifies the author or committer of a commit.
type Signature struct {
	Name  string
	Email string
}

// Commit is the engine's view of a single commit. It is populated directly
// by the repository walk and never mutated afterwards.
type Commit struct {
	ID        string
	Summary   string
	Body      string
	Author    Signature
	Committer Signature
	Time      time.Time

	// Trailers maps a trailer key to its unique values in message order.
	// TrailerKeys preserves the first-seen order of keys so fuzzy
	// suggestions stay deterministic.
	Trailers    map[string][]string
	TrailerKeys []string
}

// HasTrailer reports whether the commit carries at least one value for key.
// Keys are case-sensitive, matching git's trailer handling.
func (c Commit) HasTrailer(key string) bool {
	return len(c.Trailers[key]) > 0
}

func newCommit(obj *object.Commit) Commit {
	summary, body := splitMessage(obj.Message)
	trailers, keys, remainder := parseTrailers(body)

	return Commit{
		ID:          obj.Hash.String(),
		Summary:     summary,
		Body:        remainder,
		Author:      Signature{Name: obj.Author.Name, Email: obj.Author.Email},
		Committer:   Signature{Name: obj.Committer.Name, Email: obj.Committer.Email},
		Time:        obj.Committer.When,
		Trailers:    trailers,
		TrailerKeys: keys,
	}
}

// splitMessage separates the summary (first line) from the rest of the
// message.
func splitMessage(message string) (summary, body string) {
	message = strings.TrimRight(message, "\n")
	summary, body, _ = strings.Cut(message, "\n")
	return strings.TrimSpace(summary), strings.TrimSpace(body)
}

var trailerLine = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9-]*):[ \t]*(.+)$`)

// parseTrailers extracts the trailer block from a commit body. Following
// git's convention, trailers live in the last paragraph of the message and
// the paragraph only counts when every line is a "Key: value" pair. The
// returned remainder is the body with the trailer paragraph removed.
func parseTrailers(body string) (map[string][]string, []string, string) {
	if body == "" {
		return nil, nil, ""
	}

	paragraphs := splitParagraphs(body)
	last := paragraphs[len(paragraphs)-1]

	trailers := make(map[string][]string)
	var keys []string
	for _, line := range strings.Split(last, "\n") {
		match := trailerLine.FindStringSubmatch(line)
		if match == nil {
			return nil, nil, body
		}

		key, value := match[1], strings.TrimSpace(match[2])
		if _, seen := trailers[key]; !seen {
			keys = append(keys, key)
		}
		if !contains(trailers[key], value) {
			trailers[key] = append(trailers[key], value)
		}
	}

	remainder := strings.TrimSpace(strings.Join(paragraphs[:len(paragraphs)-1], "\n\n"))
	return trailers, keys, remainder
}

func splitParagraphs(text string) []string {
	var paragraphs []string
	for _, block := range strings.Split(text, "\n\n") {
		block = strings.TrimSpace(block)
		if block != "" {
			paragraphs = append(paragraphs, block)
		}
	}
	if len(paragraphs) == 0 {
		return []string{""}
	}
	return paragraphs
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
