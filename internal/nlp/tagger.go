// Package nlp provides batched part-of-speech tagging for commit summaries.
package nlp

// Coarse part-of-speech categories and verb forms. The categories follow
// the Universal POS tag set; only the ones the checker inspects are named
// here, everything else collapses into POSOther.
const (
	POSVerb  = "VERB"
	POSOther = "X"

	VerbFormInfinitive = "Inf"
	VerbFormFinite     = "Fin"
	VerbFormParticiple = "Part"
)

// Token is a single tagged word.
type Token struct {
	// Text is the token as it appeared in the sentence.
	Text string `json:"text"`
	// POS is the coarse part-of-speech category.
	POS string `json:"pos"`
	// VerbForm is the morphological verb form, empty for non-verbs.
	VerbForm string `json:"verb-form,omitempty"`
}

// Tagger tags a batch of sentences. The result sequence matches the input
// order, one token sequence per sentence.
type Tagger interface {
	Tag(sentences []string) ([][]Token, error)
}

// Loader materializes and loads a Tagger. Load failures are reported
// distinctly from tagging failures so callers can attempt a Fetch and retry.
type Loader interface {
	Load() (Tagger, error)
	Fetch() error
}

// pennMapping projects Penn Treebank tags onto coarse categories plus a
// verb form for the verb rows.
var pennMapping = map[string]Token{
	"VB":  {POS: POSVerb, VerbForm: VerbFormInfinitive},
	"VBD": {POS: POSVerb, VerbForm: VerbFormFinite},
	"VBG": {POS: POSVerb, VerbForm: VerbFormParticiple},
	"VBN": {POS: POSVerb, VerbForm: VerbFormParticiple},
	"VBP": {POS: POSVerb, VerbForm: VerbFormFinite},
	"VBZ": {POS: POSVerb, VerbForm: VerbFormFinite},

	"MD": {POS: "AUX"},

	"NN":   {POS: "NOUN"},
	"NNS":  {POS: "NOUN"},
	"NNP":  {POS: "PROPN"},
	"NNPS": {POS: "PROPN"},

	"JJ":  {POS: "ADJ"},
	"JJR": {POS: "ADJ"},
	"JJS": {POS: "ADJ"},

	"RB":  {POS: "ADV"},
	"RBR": {POS: "ADV"},
	"RBS": {POS: "ADV"},
	"WRB": {POS: "ADV"},

	"IN":   {POS: "ADP"},
	"DT":   {POS: "DET"},
	"PDT":  {POS: "DET"},
	"WDT":  {POS: "DET"},
	"PRP":  {POS: "PRON"},
	"PRP$": {POS: "PRON"},
	"WP":   {POS: "PRON"},
	"WP$":  {POS: "PRON"},
	"EX":   {POS: "PRON"},
	"CC":   {POS: "CCONJ"},
	"CD":   {POS: "NUM"},
	"UH":   {POS: "INTJ"},
	"RP":   {POS: "PART"},
	"TO":   {POS: "PART"},
	"POS":  {POS: "PART"},
	"SYM":  {POS: "SYM"},

	",": {POS: "PUNCT"},
	".": {POS: "PUNCT"},
	":": {POS: "PUNCT"},
	"(": {POS: "PUNCT"},
	")": {POS: "PUNCT"},
	"“": {POS: "PUNCT"},
	"”": {POS: "PUNCT"},
	"#": {POS: "SYM"},
	"$": {POS: "SYM"},
}

// fromPenn converts a Penn tag into a coarse token for text.
func fromPenn(text, penn string) Token {
	mapped, ok := pennMapping[penn]
	if !ok {
		mapped = Token{POS: POSOther}
	}
	mapped.Text = text
	return mapped
}
