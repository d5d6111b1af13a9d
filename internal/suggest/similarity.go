package suggest

import (
	"strings"
	"unicode"

	"github.com/aioutlet/variant-service/pkg/utils"
)

// prefixSimilarity scores a token that is a prefix of the other, e.g.
// "zapat" typed while "zapatos" is the keyword.
const (
	prefixSimilarity = 0.85
	minPrefixLength  = 4
)

// stopwords carry no category meaning and are ignored when scoring
var stopwords = map[string]struct{}{
	"de": {}, "del": {}, "la": {}, "el": {}, "los": {}, "las": {}, "y": {},
	"e": {}, "o": {}, "para": {}, "con": {}, "sin": {}, "en": {}, "por": {},
	"un": {}, "una": {}, "a": {}, "al": {},
	"and": {}, "the": {}, "of": {}, "for": {}, "with": {},
}

// foldText lower-cases and strips diacritics so "Electrónica" matches "electronica"
func foldText(s string) string {
	return strings.ToLower(utils.FoldDiacritics(s))
}

// tokenize splits folded text on anything that is not a letter or digit and
// drops stopwords
func tokenize(s string) []string {
	fields := strings.FieldsFunc(foldText(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, skip := stopwords[f]; skip {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// tokenSimilarity returns a score in [0,1] between two folded tokens:
// 1 - levenshtein/maxLen, raised to prefixSimilarity when one token starts
// the other and is long enough to be meaningful.
func tokenSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}
	ra, rb := []rune(a), []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 0
	}

	sim := 1 - float64(levenshtein(ra, rb))/float64(longest)

	shorter := len(ra)
	if len(rb) < shorter {
		shorter = len(rb)
	}
	if shorter >= minPrefixLength && (strings.HasPrefix(a, b) || strings.HasPrefix(b, a)) && sim < prefixSimilarity {
		sim = prefixSimilarity
	}
	return sim
}

func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// distance scores query tokens against an entry's keyword tokens.
// Each query token contributes its best keyword similarity when that reaches
// minTokenSimilarity; the distance is one minus the mean contribution, so a
// query fully covered by keywords scores 0 and an empty query scores 1.
func distance(query, keywords []string, minTokenSimilarity float64) (float64, int) {
	if len(query) == 0 || len(keywords) == 0 {
		return 1, 0
	}

	var covered float64
	matched := 0
	for _, q := range query {
		best := 0.0
		for _, k := range keywords {
			if s := tokenSimilarity(q, k); s > best {
				best = s
				if best == 1 {
					break
				}
			}
		}
		if best >= minTokenSimilarity {
			covered += best
			matched++
		}
	}

	return 1 - covered/float64(len(query)), matched
}
