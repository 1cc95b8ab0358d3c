package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noxpardalis/gitch/internal/clierr"
	"github.com/noxpardalis/gitch/internal/config"
	"github.com/noxpardalis/gitch/internal/gitrepo"
	"github.com/noxpardalis/gitch/internal/nlp"
)

type fakeSource struct {
	first   gitrepo.Commit
	diff    string
	diffErr error
}

func (s *fakeSource) FirstCommit() (gitrepo.Commit, error) {
	return s.first, nil
}

func (s *fakeSource) DiffWithParent(gitrepo.Commit, gitrepo.Algorithm) (string, error) {
	return s.diff, s.diffErr
}

// wordTagger tags the third token of each sentence from a canned table and
// fills the rest with pronoun/auxiliary placeholders.
type wordTagger struct {
	words   map[string]nlp.Token
	batches [][]string
}

func (t *wordTagger) Tag(sentences []string) ([][]nlp.Token, error) {
	t.batches = append(t.batches, sentences)

	tagged := make([][]nlp.Token, len(sentences))
	for i, sentence := range sentences {
		fields := strings.Fields(sentence)
		tokens := make([]nlp.Token, len(fields))
		for j, field := range fields {
			if canned, ok := t.words[field]; ok {
				canned.Text = field
				tokens[j] = canned
			} else {
				tokens[j] = nlp.Token{Text: field, POS: nlp.POSOther}
			}
		}
		tagged[i] = tokens
	}
	return tagged, nil
}

type fakeLoader struct {
	tagger   nlp.Tagger
	loadErrs []error
	fetchErr error

	loads   int
	fetches int
}

func (l *fakeLoader) Load() (nlp.Tagger, error) {
	l.loads++
	if len(l.loadErrs) > 0 {
		err := l.loadErrs[0]
		l.loadErrs = l.loadErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	return l.tagger, nil
}

func (l *fakeLoader) Fetch() error {
	l.fetches++
	return l.fetchErr
}

func commitWith(id, summary string, trailers map[string][]string, keys ...string) gitrepo.Commit {
	return gitrepo.Commit{
		ID:          id,
		Summary:     summary,
		Trailers:    trailers,
		TrailerKeys: keys,
	}
}

func verbTagger() *wordTagger {
	return &wordTagger{words: map[string]nlp.Token{
		"i":       {POS: "PRON"},
		"will":    {POS: "AUX"},
		"add":     {POS: nlp.POSVerb, VerbForm: nlp.VerbFormInfinitive},
		"fix":     {POS: nlp.POSVerb, VerbForm: nlp.VerbFormInfinitive},
		"added":   {POS: nlp.POSVerb, VerbForm: nlp.VerbFormFinite},
		"adding":  {POS: nlp.POSVerb, VerbForm: nlp.VerbFormParticiple},
		"support": {POS: "NOUN"},
	}}
}

func TestCheckCapitalization(t *testing.T) {
	commits := []gitrepo.Commit{
		commitWith("a1", "Add support for X", nil),
		commitWith("b2", "add support for X", nil),
	}

	t.Run("upper", func(t *testing.T) {
		cfg := &config.Schema{Summary: config.SummaryRule{
			FirstWordCapitalization: config.CapitalizationUpper,
		}}
		outcome, err := New(cfg, Options{}).Check(commits)
		require.NoError(t, err)

		require.Len(t, outcome.Failing, 1)
		assert.Equal(t, "b2", outcome.Failing[0].ID)
		assert.Equal(t, []string{"summary does not begin with an upper case letter"},
			outcome.Failing[0].Violations)
		assert.Equal(t, 2, outcome.Total)
	})

	t.Run("lower", func(t *testing.T) {
		cfg := &config.Schema{Summary: config.SummaryRule{
			FirstWordCapitalization: config.CapitalizationLower,
		}}
		outcome, err := New(cfg, Options{}).Check(commits)
		require.NoError(t, err)

		require.Len(t, outcome.Failing, 1)
		assert.Equal(t, "a1", outcome.Failing[0].ID)
		assert.Equal(t, []string{"summary does not begin with a lower case letter"},
			outcome.Failing[0].Violations)
	})

	t.Run("unset checks nothing", func(t *testing.T) {
		outcome, err := New(&config.Schema{}, Options{}).Check(commits)
		require.NoError(t, err)
		assert.False(t, outcome.Failed())
		assert.Equal(t, 2, outcome.Total)
	})
}

func TestCheckEmptySummary(t *testing.T) {
	cfg := &config.Schema{Summary: config.SummaryRule{
		FirstWordCapitalization: config.CapitalizationUpper,
	}}
	outcome, err := New(cfg, Options{}).Check([]gitrepo.Commit{
		commitWith("a1", "", nil),
	})
	require.NoError(t, err)

	require.Len(t, outcome.Failing, 1)
	assert.Equal(t, []string{"summary is empty"}, outcome.Failing[0].Violations)
}

func TestCheckTrailerMandatory(t *testing.T) {
	cfg := &config.Schema{Trailers: map[string]config.TrailerRule{
		"Reviewed-by": {Mandatory: true},
	}}

	t.Run("present passes", func(t *testing.T) {
		outcome, err := New(cfg, Options{}).Check([]gitrepo.Commit{
			commitWith("a1", "add thing",
				map[string][]string{"Reviewed-by": {"Dev <dev@example.com>"}},
				"Reviewed-by"),
		})
		require.NoError(t, err)
		assert.False(t, outcome.Failed())
	})

	t.Run("near miss suggests the similar field", func(t *testing.T) {
		outcome, err := New(cfg, Options{}).Check([]gitrepo.Commit{
			commitWith("a1", "add thing",
				map[string][]string{"Reviewd-by": {"Dev <dev@example.com>"}},
				"Reviewd-by"),
		})
		require.NoError(t, err)

		require.Len(t, outcome.Failing, 1)
		assert.Equal(t, []string{
			"trailers['Reviewed-by'] not found but 'Reviewed-by' is mandatory (found similar field: 'Reviewd-by')",
		}, outcome.Failing[0].Violations)
	})

	t.Run("missing without lookalike", func(t *testing.T) {
		outcome, err := New(cfg, Options{}).Check([]gitrepo.Commit{
			commitWith("a1", "add thing", nil),
		})
		require.NoError(t, err)

		require.Len(t, outcome.Failing, 1)
		assert.Equal(t, []string{
			"trailers['Reviewed-by'] not found but 'Reviewed-by' is mandatory",
		}, outcome.Failing[0].Violations)
	})
}

func TestCheckTrailerSingular(t *testing.T) {
	cfg := &config.Schema{Trailers: map[string]config.TrailerRule{
		"Change-Id": {Singular: true},
	}}
	outcome, err := New(cfg, Options{}).Check([]gitrepo.Commit{
		commitWith("a1", "add thing",
			map[string][]string{"Change-Id": {"I111", "I222"}},
			"Change-Id"),
	})
	require.NoError(t, err)

	require.Len(t, outcome.Failing, 1)
	assert.Equal(t, []string{
		"expected trailers['Change-Id'] to be singular instead it has length 2",
	}, outcome.Failing[0].Violations)
}

func TestCheckTrailerValues(t *testing.T) {
	cfg := &config.Schema{Trailers: map[string]config.TrailerRule{
		"Signed-off-by": {Values: []string{"Dev <dev@example.com>"}},
	}}
	outcome, err := New(cfg, Options{}).Check([]gitrepo.Commit{
		commitWith("a1", "add thing",
			map[string][]string{"Signed-off-by": {"Someone Else <other@example.com>"}},
			"Signed-off-by"),
	})
	require.NoError(t, err)

	require.Len(t, outcome.Failing, 1)
	assert.Equal(t, []string{
		"trailers['Signed-off-by'] has non-configured values {'Someone Else <other@example.com>'}",
	}, outcome.Failing[0].Violations)
}

func TestCheckTrailerOptionalAbsent(t *testing.T) {
	cfg := &config.Schema{Trailers: map[string]config.TrailerRule{
		"Signed-off-by": {Singular: true, Values: []string{"Dev <dev@example.com>"}},
	}}
	outcome, err := New(cfg, Options{}).Check([]gitrepo.Commit{
		commitWith("a1", "add thing", nil),
	})
	require.NoError(t, err)
	assert.False(t, outcome.Failed())
}

func TestCheckVerbForms(t *testing.T) {
	cfg := &config.Schema{Summary: config.SummaryRule{FirstWordIsSimpleVerb: true}}
	tagger := verbTagger()
	loader := &fakeLoader{tagger: tagger}

	outcome, err := New(cfg, Options{Loader: loader}).Check([]gitrepo.Commit{
		commitWith("a1", "Add support for X", nil),
		commitWith("b2", "Added support for X", nil),
		commitWith("c3", "Support for X", nil),
		commitWith("d4", "", nil),
	})
	require.NoError(t, err)

	require.Len(t, outcome.Failing, 3)
	assert.Equal(t, "b2", outcome.Failing[0].ID)
	assert.Equal(t, []string{
		"summary does not begin with a simple verb: 'added' is conjugated as Fin",
	}, outcome.Failing[0].Violations)
	assert.Equal(t, "c3", outcome.Failing[1].ID)
	assert.Equal(t, []string{
		"summary does not begin with a verb: 'support' is a NOUN",
	}, outcome.Failing[1].Violations)
	assert.Equal(t, "d4", outcome.Failing[2].ID)
	assert.Equal(t, []string{"summary is empty"}, outcome.Failing[2].Violations)

	// One batch, empty summary excluded, summaries lowercased behind the
	// declarative prefix.
	require.Len(t, tagger.batches, 1)
	assert.Equal(t, []string{
		"I will add support for x",
		"I will added support for x",
		"I will support for x",
	}, tagger.batches[0])
}

func TestCheckVerbFormsFetchesMissingModel(t *testing.T) {
	cfg := &config.Schema{Summary: config.SummaryRule{FirstWordIsSimpleVerb: true}}
	loader := &fakeLoader{
		tagger:   verbTagger(),
		loadErrs: []error{&nlp.ModelUnavailableError{Dir: "/tmp/models"}, nil},
	}

	outcome, err := New(cfg, Options{Loader: loader}).Check([]gitrepo.Commit{
		commitWith("a1", "add support for X", nil),
	})
	require.NoError(t, err)
	assert.False(t, outcome.Failed())
	assert.Equal(t, 1, loader.fetches)
	assert.Equal(t, 2, loader.loads)
}

func TestCheckVerbFormsOffline(t *testing.T) {
	cfg := &config.Schema{Summary: config.SummaryRule{FirstWordIsSimpleVerb: true}}
	loader := &fakeLoader{
		loadErrs: []error{&nlp.ModelUnavailableError{Dir: "/tmp/models"}},
	}

	_, err := New(cfg, Options{Loader: loader, Offline: true}).Check([]gitrepo.Commit{
		commitWith("a1", "add support for X", nil),
	})
	require.Error(t, err)
	assert.Equal(t, clierr.CodeFatal, clierr.ExitCodeOf(err))
	assert.Zero(t, loader.fetches)
}

func TestCheckVerbFormsLoadErrorIsNotRetried(t *testing.T) {
	cfg := &config.Schema{Summary: config.SummaryRule{FirstWordIsSimpleVerb: true}}
	loader := &fakeLoader{loadErrs: []error{errors.New("corrupt model")}}

	_, err := New(cfg, Options{Loader: loader}).Check([]gitrepo.Commit{
		commitWith("a1", "add support for X", nil),
	})
	require.ErrorContains(t, err, "corrupt model")
	assert.Zero(t, loader.fetches)
}

func TestCheckFirstCommit(t *testing.T) {
	cfg := &config.Schema{FirstCommitIsEmpty: true}

	t.Run("empty root passes", func(t *testing.T) {
		source := &fakeSource{first: commitWith("root", "initial commit", nil)}
		outcome, err := New(cfg, Options{Source: source}).Check(nil)
		require.NoError(t, err)
		assert.False(t, outcome.Failed())
		assert.Equal(t, 1, outcome.Total)
	})

	t.Run("non-empty root fails even outside the window", func(t *testing.T) {
		source := &fakeSource{
			first: commitWith("root", "initial commit", nil),
			diff:  "diff --git a/f b/f\n",
		}
		outcome, err := New(cfg, Options{Source: source}).Check([]gitrepo.Commit{
			commitWith("a1", "add thing", nil),
		})
		require.NoError(t, err)

		require.Len(t, outcome.Failing, 1)
		assert.Equal(t, "root", outcome.Failing[0].ID)
		assert.Equal(t, []string{"expected first commit to be an empty commit"},
			outcome.Failing[0].Violations)
		assert.Equal(t, 2, outcome.Total)
	})

	t.Run("diff failure is reported", func(t *testing.T) {
		source := &fakeSource{
			first:   commitWith("root", "initial commit", nil),
			diffErr: errors.New("object not found"),
		}
		_, err := New(cfg, Options{Source: source}).Check(nil)
		require.ErrorContains(t, err, "object not found")
	})
}

func TestCheckAccumulatesAcrossPhases(t *testing.T) {
	cfg := &config.Schema{
		Summary: config.SummaryRule{
			FirstWordIsSimpleVerb:   true,
			FirstWordCapitalization: config.CapitalizationUpper,
		},
		Trailers: map[string]config.TrailerRule{
			"Reviewed-by": {Mandatory: true},
		},
	}
	loader := &fakeLoader{tagger: verbTagger()}

	outcome, err := New(cfg, Options{Loader: loader}).Check([]gitrepo.Commit{
		commitWith("a1", "added support for X", nil),
	})
	require.NoError(t, err)

	require.Len(t, outcome.Failing, 1)
	assert.Equal(t, []string{
		"summary does not begin with an upper case letter",
		"trailers['Reviewed-by'] not found but 'Reviewed-by' is mandatory",
		"summary does not begin with a simple verb: 'added' is conjugated as Fin",
	}, outcome.Failing[0].Violations)
}

func TestOutcomeSortedByCommitID(t *testing.T) {
	cfg := &config.Schema{Summary: config.SummaryRule{
		FirstWordCapitalization: config.CapitalizationLower,
	}}
	outcome, err := New(cfg, Options{}).Check([]gitrepo.Commit{
		commitWith("c3", "Wrong", nil),
		commitWith("a1", "Wrong", nil),
		commitWith("b2", "Wrong", nil),
	})
	require.NoError(t, err)

	require.Len(t, outcome.Failing, 3)
	assert.Equal(t, "a1", outcome.Failing[0].ID)
	assert.Equal(t, "b2", outcome.Failing[1].ID)
	assert.Equal(t, "c3", outcome.Failing[2].ID)
}
