package engine

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/noxpardalis/gitch/internal/clierr"
	"github.com/noxpardalis/gitch/internal/gitrepo"
	"github.com/noxpardalis/gitch/internal/nlp"
)

// verbCheckPrefix anchors every summary in a declarative sentence so the
// tagger sees the first word in a verb position. The prefix tokenizes to
// exactly two tokens, leaving the word under test at index 2.
const verbCheckPrefix = "I will "

const summaryTokenIndex = 2

// checkVerbForms tags every non-empty summary in one batch and flags those
// that do not begin with an infinitive verb.
func (e *Engine) checkVerbForms(commits []gitrepo.Commit, records *recordSet) error {
	tagger, err := e.loadTagger()
	if err != nil {
		return err
	}
	if closer, ok := tagger.(io.Closer); ok {
		defer closer.Close()
	}

	e.reporter.StartPhase("Performing batch checks", len(commits))
	defer e.reporter.EndPhase()

	// Empty summaries were already flagged during the sequential pass.
	var batch []string
	var checked []gitrepo.Commit
	for _, commit := range commits {
		if commit.Summary == "" {
			e.reporter.Advance(commit.ID)
			continue
		}
		batch = append(batch, verbCheckPrefix+strings.ToLower(commit.Summary))
		checked = append(checked, commit)
	}
	if len(batch) == 0 {
		return nil
	}

	tagged, err := tagger.Tag(batch)
	if err != nil {
		return fmt.Errorf("failed to tag commit summaries: %w", err)
	}
	if len(tagged) != len(batch) {
		return fmt.Errorf("tagger returned %d results for %d sentences", len(tagged), len(batch))
	}

	for i, commit := range checked {
		evaluateVerbForm(tagged[i], records.get(commit.ID))
		e.reporter.Advance(commit.ID)
	}
	return nil
}

func evaluateVerbForm(tokens []nlp.Token, record *Record) {
	if len(tokens) <= summaryTokenIndex {
		log.Warn().Str("commit", record.ID).Msg("tagger dropped summary tokens")
		return
	}

	token := tokens[summaryTokenIndex]
	if token.POS == nlp.POSVerb {
		if token.VerbForm == nlp.VerbFormInfinitive {
			return
		}
		form := token.VerbForm
		if form == "" {
			form = "unknown"
		}
		record.add(fmt.Sprintf(
			"summary does not begin with a simple verb: '%s' is conjugated as %s",
			token.Text, form))
		return
	}

	record.add(fmt.Sprintf(
		"summary does not begin with a verb: '%s' is a %s",
		token.Text, token.POS))
}

// loadTagger loads the tagging model, fetching it once when it is missing
// from the cache. Offline runs fail instead of fetching.
func (e *Engine) loadTagger() (nlp.Tagger, error) {
	tagger, err := e.loader.Load()
	if err == nil {
		return tagger, nil
	}

	var unavailable *nlp.ModelUnavailableError
	if !errors.As(err, &unavailable) {
		return nil, fmt.Errorf("failed to load tagging model: %w", err)
	}

	if e.offline {
		return nil, clierr.FatalWrap(err,
			"parts-of-speech tagging model is not available",
			"running with '--offline' so the model cannot be fetched",
			fmt.Sprintf("rerun without '--offline' or place the model under '%s'", unavailable.Dir))
	}

	log.Info().Str("dir", unavailable.Dir).Msg("fetching tagging model")
	if err := e.loader.Fetch(); err != nil {
		return nil, clierr.FatalWrap(err,
			"failed to fetch parts-of-speech tagging model",
			fmt.Sprintf("the model could not be materialized under '%s'", unavailable.Dir),
			"check that the directory is writable or set GITCH_MODEL_DIR")
	}

	tagger, err = e.loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load tagging model after fetch: %w", err)
	}
	return tagger, nil
}
