package sentiment

import (
	"strings"
	"unicode"

	"github.com/spec-kit/chatbot-service/internal/domain"
)

// Result is the outcome of scoring one text.
type Result struct {
	Label domain.SentimentLabel
	Score int
}

// Scorer computes a sentiment label by summing per-word polarity weights
// from a lexicon. Deterministic: the same text always yields the same
// result. Safe for concurrent use.
type Scorer struct {
	lexicon Lexicon
}

// NewScorer builds a scorer over the given lexicon. A nil lexicon falls
// back to the default one.
func NewScorer(lexicon Lexicon) *Scorer {
	if lexicon == nil {
		lexicon = DefaultLexicon()
	}
	return &Scorer{lexicon: lexicon}
}

// Score sums the polarity of every recognized word in text. Sum > 0 maps
// to positive, sum < 0 to negative, and exactly zero to neutral.
func (s *Scorer) Score(text string) Result {
	sum := 0
	for _, word := range tokenize(text) {
		sum += s.lexicon[word]
	}

	label := domain.SentimentNeutral
	switch {
	case sum > 0:
		label = domain.SentimentPositive
	case sum < 0:
		label = domain.SentimentNegative
	}
	return Result{Label: label, Score: sum}
}

// tokenize lower-cases the text and splits it on anything that is not a
// letter or digit, so punctuation never hides a lexicon word.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
