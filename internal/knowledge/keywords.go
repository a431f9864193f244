package knowledge

import (
	"slices"
	"strings"

	"github.com/samber/lo"
)

// vocabulary is the controlled set of terms ExtractKeywords can return.
var vocabulary = []string{
	"wutanfall", "trotz", "nein", "schlafen", "essen", "teilen", "freunde",
	"angst", "weinen", "hauen", "schreien", "aufräumen", "zähneputzen",
	"anziehen", "kindergarten", "geschwister", "eifersucht", "lügen",
	"respekt", "grenzen", "regeln", "konsequenzen", "strafen", "belohnung",
	"motivation", "konzentration", "hyperaktiv", "sensibel", "schüchtern",
	"aggressiv", "traurig", "fröhlich", "wütend", "frustriert", "müde",
	"überfordert", "stress", "trennung", "abschied", "eingewöhnung",
}

// ExtractKeywords returns the vocabulary terms contained in message, in
// vocabulary order. There is no tokenization or stemming.
func ExtractKeywords(message string) []string {
	lower := strings.ToLower(message)
	return lo.Filter(vocabulary, func(term string, _ int) bool {
		return strings.Contains(lower, term)
	})
}

func Vocabulary() []string {
	return slices.Clone(vocabulary)
}
