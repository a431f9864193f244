package validation

import (
	"regexp"
	"strings"
)

// ContradictionChecker flags answers that may contradict the developmental
// fact injected into the prompt. The result only lowers confidence.
type ContradictionChecker interface {
	Contradicts(text, ageFact string) bool
}

var defaultContradictionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)kann.*nicht.*entwicklung`),
	regexp.MustCompile(`(?i)zu.*jung.*verstehen`),
	regexp.MustCompile(`(?i)bereits.*können.*sollte`),
}

type RegexContradictionChecker struct {
	patterns []*regexp.Regexp
}

func NewRegexContradictionChecker(patterns ...*regexp.Regexp) *RegexContradictionChecker {
	if len(patterns) == 0 {
		patterns = defaultContradictionPatterns
	}
	return &RegexContradictionChecker{patterns: patterns}
}

// Contradicts reports a match only when the text does not also quote the age
// fact. An empty age fact never contradicts.
func (c *RegexContradictionChecker) Contradicts(text, ageFact string) bool {
	if strings.Contains(strings.ToLower(text), strings.ToLower(ageFact)) {
		return false
	}
	for _, p := range c.patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}
