package knowledge

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

type CitationType string

const (
	CitationJournal CitationType = "journal"
	CitationBook    CitationType = "book"
	CitationReport  CitationType = "report"
	CitationWebsite CitationType = "website"
)

// LinkMarker is appended to short citations that have a resolvable URL.
const LinkMarker = "⧉"

// Citation is a full literature reference. For books Journal holds the publisher.
type Citation struct {
	ID          string       `json:"id"`
	Authors     string       `json:"authors"`
	Title       string       `json:"title"`
	Journal     string       `json:"journal"`
	Year        int          `json:"year"`
	DOI         string       `json:"doi,omitempty"`
	URL         string       `json:"url,omitempty"`
	Type        CitationType `json:"type"`
	Summary     string       `json:"summary"`
	Reliability Reliability  `json:"reliability"`
}

func (c *Catalog) Citation(id string) (Citation, bool) {
	citation, ok := c.citations[id]
	return citation, ok
}

// FormatCitation renders "Authors (Year)", followed by the link marker when
// withLink is set and the citation has a URL. Unknown ids give "".
func (c *Catalog) FormatCitation(id string, withLink bool) string {
	citation, ok := c.citations[id]
	if !ok {
		return ""
	}
	short := fmt.Sprintf("%s (%d)", citation.Authors, citation.Year)
	if withLink && citation.URL != "" {
		return short + " " + LinkMarker
	}
	return short
}

// FullReference renders the long form used in reference lists.
func (c *Catalog) FullReference(id string) string {
	citation, ok := c.citations[id]
	if !ok {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d). %s", citation.Authors, citation.Year, citation.Title)
	if citation.Type == CitationJournal || citation.Type == CitationBook {
		b.WriteString(". ")
		b.WriteString(citation.Journal)
	}
	if citation.DOI != "" {
		b.WriteString(". DOI: ")
		b.WriteString(citation.DOI)
	}
	return b.String()
}

// CitationsByReliability returns matching citations ordered by id.
func (c *Catalog) CitationsByReliability(reliability Reliability) []Citation {
	return lo.Filter(c.sortedCitations(), func(ct Citation, _ int) bool { return ct.Reliability == reliability })
}

func (c *Catalog) RandomCitation() (Citation, bool) {
	all := c.sortedCitations()
	if len(all) == 0 {
		return Citation{}, false
	}
	return pick(c.rng, all), true
}

func (c *Catalog) sortedCitations() []Citation {
	all := lo.Values(c.citations)
	slices.SortFunc(all, func(a, b Citation) int { return strings.Compare(a.ID, b.ID) })
	return all
}

var citations = []Citation{
	{
		ID:          "steinberg2013_prefrontal",
		Authors:     "Steinberg, L.",
		Title:       "The influence of neuroscience on US Supreme Court decisions about adolescents' criminal culpability",
		Journal:     "Nature Reviews Neuroscience",
		Year:        2013,
		DOI:         "10.1038/nrn3407",
		URL:         "https://www.nature.com/articles/nrn3407",
		Type:        CitationJournal,
		Summary:     "Grundlegende Forschung zur Gehirnentwicklung zeigt, dass der präfrontale Kortex bis zum 25. Lebensjahr reift.",
		Reliability: ReliabilityEstablished,
	},
	{
		ID:          "lupien2009_stress",
		Authors:     "Lupien, S. J., et al.",
		Title:       "Effects of stress throughout the lifespan on the brain, behaviour and cognition",
		Journal:     "Nature Reviews Neuroscience",
		Year:        2009,
		DOI:         "10.1038/nrn2639",
		URL:         "https://www.nature.com/articles/nrn2639",
		Type:        CitationJournal,
		Summary:     "Umfassende Analyse der Auswirkungen von chronischem Stress auf die Gehirnentwicklung.",
		Reliability: ReliabilityHigh,
	},
	{
		ID:          "rizzolatti2004_mirror",
		Authors:     "Rizzolatti, G. & Craighero, L.",
		Title:       "The mirror-neuron system",
		Journal:     "Annual Review of Neuroscience",
		Year:        2004,
		DOI:         "10.1146/annurev.neuro.27.070203.144230",
		URL:         "https://www.annualreviews.org/doi/10.1146/annurev.neuro.27.070203.144230",
		Type:        CitationJournal,
		Summary:     "Grundlegende Forschung zu Spiegelneuronen und deren Rolle beim sozialen Lernen.",
		Reliability: ReliabilityEstablished,
	},
	{
		ID:          "groh2017_attachment",
		Authors:     "Groh, A. M., et al.",
		Title:       "Attachment and developmental psychopathology",
		Journal:     "Development and Psychopathology",
		Year:        2017,
		DOI:         "10.1017/S0954579417000013",
		URL:         "https://doi.org/10.1017/S0954579417000013",
		Type:        CitationJournal,
		Summary:     "Meta-Analyse zu den langfristigen Auswirkungen sicherer Bindung auf die Entwicklung.",
		Reliability: ReliabilityHigh,
	},
	{
		ID:          "siegel2003_coregulation",
		Authors:     "Siegel, D. J. & Hartzell, M.",
		Title:       "Parenting from the inside out",
		Journal:     "Tarcher",
		Year:        2003,
		Type:        CitationBook,
		Summary:     "Grundlegendes Werk zur Co-Regulation und deren Bedeutung für die emotionale Entwicklung.",
		Reliability: ReliabilityEstablished,
	},
	{
		ID:          "wellman2001_tom",
		Authors:     "Wellman, H. M., et al.",
		Title:       "Meta-analysis of theory-of-mind development: The truth about false belief",
		Journal:     "Child Development",
		Year:        2001,
		DOI:         "10.1111/1467-8624.00304",
		URL:         "https://onlinelibrary.wiley.com/doi/10.1111/1467-8624.00304",
		Type:        CitationJournal,
		Summary:     "Umfassende Meta-Analyse zur Entwicklung von Theory of Mind zwischen 3-5 Jahren.",
		Reliability: ReliabilityEstablished,
	},
	{
		ID:          "diamond2013_executive",
		Authors:     "Diamond, A.",
		Title:       "Executive functions",
		Journal:     "Annual Review of Psychology",
		Year:        2013,
		DOI:         "10.1146/annurev-psych-113011-143750",
		URL:         "https://www.annualreviews.org/doi/10.1146/annurev-psych-113011-143750",
		Type:        CitationJournal,
		Summary:     "Umfassender Überblick über die Entwicklung exekutiver Funktionen im Kindesalter.",
		Reliability: ReliabilityEstablished,
	},
	{
		ID:          "bloom2000_language",
		Authors:     "Bloom, P.",
		Title:       "How children learn the meanings of words",
		Journal:     "MIT Press",
		Year:        2000,
		Type:        CitationBook,
		Summary:     "Klassische Forschung zum Spracherwerb und dem Wortschatz-Spurt im Kleinkindalter.",
		Reliability: ReliabilityEstablished,
	},
	{
		ID:          "potegal2003_tantrums",
		Authors:     "Potegal, M. & Davidson, R. J.",
		Title:       "Temper tantrums in young children: 1. Behavioral composition",
		Journal:     "Journal of Developmental & Behavioral Pediatrics",
		Year:        2003,
		DOI:         "10.1097/00004703-200302000-00007",
		URL:         "https://journals.lww.com/jrnldbp/Abstract/2003/02000/Temper_Tantrums_in_Young_Children__1__Behavioral.7.aspx",
		Type:        CitationJournal,
		Summary:     "Detaillierte Verhaltensanalyse von Wutanfällen bei Kleinkindern - zeigt diese als normale Kommunikation.",
		Reliability: ReliabilityHigh,
	},
	{
		ID:          "gershoff2016_discipline",
		Authors:     "Gershoff, E. T. & Grogan-Kaylor, A.",
		Title:       "Spanking and child outcomes: Old controversies and new meta-analyses",
		Journal:     "Journal of Family Psychology",
		Year:        2016,
		DOI:         "10.1037/fam0000191",
		URL:         "https://psycnet.apa.org/record/2016-16130-001",
		Type:        CitationJournal,
		Summary:     "Große Meta-Analyse zeigt die Überlegenheit positiver Erziehungsmethoden gegenüber Bestrafung.",
		Reliability: ReliabilityHigh,
	},
	{
		ID:          "gray2013_play",
		Authors:     "Gray, P.",
		Title:       "Free to learn: Why unleashing the instinct to play will make our children happier",
		Journal:     "Basic Books",
		Year:        2013,
		Type:        CitationBook,
		Summary:     "Umfassende Darstellung der Bedeutung von freiem Spiel für die kindliche Entwicklung.",
		Reliability: ReliabilityEstablished,
	},
	{
		ID:          "christakis2018_screen",
		Authors:     "Christakis, D. A., et al.",
		Title:       "Screen time and young children: The complex question of when, how much, and what",
		Journal:     "JAMA Pediatrics",
		Year:        2018,
		DOI:         "10.1001/jamapediatrics.2018.1556",
		URL:         "https://jamanetwork.com/journals/jamapediatrics/fullarticle/2688381",
		Type:        CitationJournal,
		Summary:     "Aktuelle Forschung zu den Auswirkungen von Bildschirmzeit auf die kindliche Entwicklung.",
		Reliability: ReliabilityHigh,
	},
	{
		ID:          "katz2012_validation",
		Authors:     "Katz, L. F., et al.",
		Title:       "Emotion coaching by mothers: Associations with adolescent problem behavior",
		Journal:     "Journal of Abnormal Child Psychology",
		Year:        2012,
		DOI:         "10.1007/s10802-012-9648-2",
		URL:         "https://link.springer.com/article/10.1007/s10802-012-9648-2",
		Type:        CitationJournal,
		Summary:     "Studie zeigt die positiven Auswirkungen von Emotionsvalidierung auf die kindliche Entwicklung.",
		Reliability: ReliabilityHigh,
	},
	{
		ID:          "hatfield1994_contagion",
		Authors:     "Hatfield, E., et al.",
		Title:       "Emotional contagion",
		Journal:     "Cambridge University Press",
		Year:        1994,
		Type:        CitationBook,
		Summary:     "Grundlegende Forschung zur emotionalen Ansteckung und deren Bedeutung in Beziehungen.",
		Reliability: ReliabilityEstablished,
	},
	{
		ID:          "meltzer2006_sleep",
		Authors:     "Meltzer, L. J. & Mindell, J. A.",
		Title:       "Sleep and sleep disorders in children and adolescents",
		Journal:     "Psychiatric Clinics of North America",
		Year:        2006,
		DOI:         "10.1016/j.psc.2006.06.004",
		URL:         "https://www.sciencedirect.com/science/article/pii/S0193953X06000471",
		Type:        CitationJournal,
		Summary:     "Umfassender Überblick über Schlaf und dessen Auswirkungen auf die kindliche Entwicklung.",
		Reliability: ReliabilityEstablished,
	},
	{
		ID:          "crnic2005_stress",
		Authors:     "Crnic, K. A., et al.",
		Title:       "Everyday stresses and parenting",
		Journal:     "Lawrence Erlbaum Associates",
		Year:        2005,
		Type:        CitationBook,
		Summary:     "Longitudinalstudie zu den Auswirkungen von elterlichem Stress auf die Eltern-Kind-Beziehung.",
		Reliability: ReliabilityHigh,
	},
	{
		ID:          "wood1976_scaffolding",
		Authors:     "Wood, D., et al.",
		Title:       "The role of tutoring in problem solving",
		Journal:     "Journal of Child Psychology and Psychiatry",
		Year:        1976,
		DOI:         "10.1111/j.1469-7610.1976.tb00381.x",
		URL:         "https://onlinelibrary.wiley.com/doi/10.1111/j.1469-7610.1976.tb00381.x",
		Type:        CitationJournal,
		Summary:     "Klassische Studie zur Zone of Proximal Development und dem Konzept des Scaffolding.",
		Reliability: ReliabilityEstablished,
	},
}
