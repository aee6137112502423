package duplicates

import (
	"strings"
	"sync"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// ExactScore is the score ExactScorer gives equal names
const ExactScore = 100

// Scorer rates how similar a candidate name is to a pattern name
type Scorer interface {
	// Score returns the similarity and whether the names match at all
	Score(candidate, pattern string) (int, bool)
}

var algoInit sync.Once

// FuzzyScorer scores names with fzf's V2 local-alignment matcher, ignoring case
type FuzzyScorer struct{}

// NewFuzzyScorer creates a fuzzy scorer using the default scoring scheme
func NewFuzzyScorer() *FuzzyScorer {
	algoInit.Do(func() {
		algo.Init("default")
	})
	return &FuzzyScorer{}
}

// Score implements Scorer
func (s *FuzzyScorer) Score(candidate, pattern string) (int, bool) {
	if pattern == "" {
		return 0, false
	}

	chars := util.ToChars([]byte(candidate))
	result, _ := algo.FuzzyMatchV2(false, false, true, &chars, []rune(strings.ToLower(pattern)), false, nil)
	if result.Start < 0 {
		return 0, false
	}
	return result.Score, true
}

// ExactScorer matches names that are equal ignoring case
type ExactScorer struct{}

// Score implements Scorer
func (ExactScorer) Score(candidate, pattern string) (int, bool) {
	if pattern == "" || !strings.EqualFold(candidate, pattern) {
		return 0, false
	}
	return ExactScore, true
}
