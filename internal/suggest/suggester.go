package suggest

import (
	"sort"
	"strings"

	"github.com/aioutlet/variant-service/internal/models"
	"go.uber.org/zap"
)

const (
	// DefaultThreshold is the highest distance still accepted as a match
	DefaultThreshold = 0.6
	// DefaultMinTokenSimilarity is the lowest token similarity that counts as a hit
	DefaultMinTokenSimilarity = 0.75
)

// Options tunes the matcher
type Options struct {
	Threshold          float64
	MinTokenSimilarity float64
}

// Match is a scored taxonomy entry
type Match struct {
	Index    int      `json:"index"`
	Blob     string   `json:"blob"`
	Distance float64  `json:"distance"`
	Matched  int      `json:"matchedTokens"`
	Options  []string `json:"options"`
}

type indexedEntry struct {
	blob    string
	tokens  []string
	options []string
}

// Suggester maps category names to suggested option type names
type Suggester struct {
	entries  []indexedEntry
	defaults []string
	opts     Options
	logger   *zap.Logger
}

// NewSuggester indexes the taxonomy. Zero option values fall back to defaults.
func NewSuggester(taxonomy Taxonomy, opts Options, logger *zap.Logger) *Suggester {
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultThreshold
	}
	if opts.MinTokenSimilarity <= 0 {
		opts.MinTokenSimilarity = DefaultMinTokenSimilarity
	}

	entries := make([]indexedEntry, 0, len(taxonomy.Entries))
	for _, e := range taxonomy.Entries {
		blob := strings.Join(e.Keywords, " ")
		entries = append(entries, indexedEntry{
			blob:    blob,
			tokens:  uniqueTokens(tokenize(blob)),
			options: append([]string(nil), e.Options...),
		})
	}

	return &Suggester{
		entries:  entries,
		defaults: append([]string(nil), taxonomy.DefaultOptions...),
		opts:     opts,
		logger:   logger,
	}
}

// Rank scores every entry against the category name, best first.
// Equal distances keep table order.
func (s *Suggester) Rank(category string) []Match {
	query := tokenize(category)
	matches := make([]Match, 0, len(s.entries))
	for i, e := range s.entries {
		d, hits := distance(query, e.tokens, s.opts.MinTokenSimilarity)
		matches = append(matches, Match{
			Index:    i,
			Blob:     e.blob,
			Distance: d,
			Matched:  hits,
			Options:  e.options,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})
	return matches
}

// Suggest returns the options of the best entry within the threshold, or the
// default list when nothing matches
func (s *Suggester) Suggest(category string) models.Suggestion {
	result := models.Suggestion{
		Category: category,
		Options:  append([]string(nil), s.defaults...),
		Distance: 1,
	}

	ranked := s.Rank(category)
	if len(ranked) > 0 && ranked[0].Matched > 0 && ranked[0].Distance <= s.opts.Threshold {
		best := ranked[0]
		result.Options = append([]string(nil), best.Options...)
		result.Matched = true
		result.Distance = best.Distance

		s.logger.Debug("Category matched taxonomy entry",
			zap.String("category", category),
			zap.Int("entry", best.Index),
			zap.Float64("distance", best.Distance))
		return result
	}

	if len(ranked) > 0 {
		result.Distance = ranked[0].Distance
	}
	s.logger.Debug("No taxonomy entry matched, using default options",
		zap.String("category", category))
	return result
}

// DefaultOptions returns a copy of the fallback option list
func (s *Suggester) DefaultOptions() []string {
	return append([]string(nil), s.defaults...)
}

func uniqueTokens(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
