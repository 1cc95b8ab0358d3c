package nlp

import (
	"fmt"

	"github.com/jdkato/prose/v2"
)

// ProseTagger tags sentences with a prose perceptron model. Only the tagger
// stage runs; entity extraction and sentence segmentation are disabled since
// every input is a single synthetic sentence.
type ProseTagger struct {
	model *prose.Model
}

// Tag implements Tagger.
func (t *ProseTagger) Tag(sentences []string) ([][]Token, error) {
	results := make([][]Token, 0, len(sentences))

	for _, sentence := range sentences {
		doc, err := prose.NewDocument(sentence,
			prose.UsingModel(t.model),
			prose.WithExtraction(false),
			prose.WithSegmentation(false),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to tag sentence %q: %w", sentence, err)
		}

		var tokens []Token
		for _, token := range doc.Tokens() {
			tokens = append(tokens, fromPenn(token.Text, token.Tag))
		}
		results = append(results, tokens)
	}

	return results, nil
}
