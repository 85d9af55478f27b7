package sentiment

// Lexicon maps lower-case words to polarity weights. Positive weights push
// the label towards positive, negative weights towards negative. The
// scorer treats the lexicon as read-only after construction, so a lexicon
// shared between scorers must not be mutated.
type Lexicon map[string]int

// DefaultLexicon returns the built-in polarity lexicon. Weights follow the
// AFINN convention of small signed integers.
func DefaultLexicon() Lexicon {
	return Lexicon{
		// positive
		"amazing":    4,
		"awesome":    4,
		"excellent":  3,
		"fantastic":  4,
		"great":      3,
		"good":       3,
		"love":       3,
		"loved":      3,
		"delicious":  3,
		"tasty":      2,
		"fresh":      2,
		"friendly":   2,
		"helpful":    2,
		"nice":       3,
		"pleasant":   3,
		"happy":      3,
		"enjoyed":    2,
		"perfect":    3,
		"best":       3,
		"clean":      2,
		"quick":      1,
		"fast":       1,
		"recommend":  2,
		"thanks":     2,
		"thank":      2,
		"wonderful":  4,
		"superb":     5,

		// negative
		"awful":         -3,
		"bad":           -3,
		"terrible":      -3,
		"horrible":      -3,
		"hate":          -3,
		"hated":         -3,
		"disgusting":    -3,
		"dirty":         -2,
		"slow":          -2,
		"cold":          -1,
		"rude":          -2,
		"unfriendly":    -2,
		"wrong":         -2,
		"worst":         -3,
		"disappointed":  -2,
		"disappointing": -2,
		"poor":          -2,
		"stale":         -2,
		"overpriced":    -2,
		"wait":          -1,
		"waiting":       -1,
		"never":         -1,
		"complaint":     -1,
		"refund":        -1,
		"broken":        -1,
	}
}
