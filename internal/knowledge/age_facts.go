package knowledge

import (
	"slices"

	"github.com/samber/lo"
)

type AgeFactCategory string

const (
	AgeFactCognitive  AgeFactCategory = "cognitive"
	AgeFactEmotional  AgeFactCategory = "emotional"
	AgeFactSocial     AgeFactCategory = "social"
	AgeFactPhysical   AgeFactCategory = "physical"
	AgeFactLanguage   AgeFactCategory = "language"
	AgeFactBehavioral AgeFactCategory = "behavioral"
)

// AgeFact is a developmental fact for an age window.
type AgeFact struct {
	ID           string          `json:"id"`
	Ages         AgeRange        `json:"age_range"`
	Category     AgeFactCategory `json:"category"`
	Fact         string          `json:"fact"`
	Implications []string        `json:"implications"`
	Keywords     []string        `json:"keywords"`
}

func (f AgeFact) ageRange() AgeRange { return f.Ages }
func (f AgeFact) terms() []string    { return f.Keywords }

const DefaultMaxAgeFacts = 3

// RelevantAgeFacts returns age-eligible facts matching the keywords, most
// keyword matches first.
func (c *Catalog) RelevantAgeFacts(ageInMonths int, keywords []string, max int) []AgeFact {
	facts := eligible(c.ageFacts, ageInMonths, keywords)
	slices.SortStableFunc(facts, func(a, b AgeFact) int {
		return matchCount(b.Keywords, keywords) - matchCount(a.Keywords, keywords)
	})
	return truncate(facts, max)
}

// AgeContextFact picks one age-eligible fact at random, ignoring keywords.
// It returns the zero value and false when nothing covers the age.
func (c *Catalog) AgeContextFact(ageInMonths int) (AgeFact, bool) {
	facts := inAgeRange(c.ageFacts, ageInMonths)
	if len(facts) == 0 {
		return AgeFact{}, false
	}
	return pick(c.rng, facts), true
}

// AgeContextFactText is AgeContextFact reduced to the fact sentence, or "".
func (c *Catalog) AgeContextFactText(ageInMonths int) string {
	fact, ok := c.AgeContextFact(ageInMonths)
	if !ok {
		return ""
	}
	return fact.Fact
}

func (c *Catalog) AgeFacts() []AgeFact {
	return slices.Clone(c.ageFacts)
}

func (c *Catalog) AgeFactsByCategory(category AgeFactCategory) []AgeFact {
	return lo.Filter(c.ageFacts, func(f AgeFact, _ int) bool { return f.Category == category })
}

var ageFacts = []AgeFact{
	// 12-24 months
	{
		ID:           "toddler_autonomy_1",
		Ages:         AgeRange{Min: 12, Max: 24},
		Category:     AgeFactEmotional,
		Fact:         "Kleinkinder entwickeln in diesem Alter das Bedürfnis nach Autonomie, können aber ihre Emotionen noch nicht selbst regulieren.",
		Implications: []string{"Wutanfälle sind normal", "Brauchen äußere Regulation", "Testen Grenzen konstant"},
		Keywords:     []string{"wutanfall", "trotz", "nein", "selbst machen"},
	},
	{
		ID:           "toddler_language_1",
		Ages:         AgeRange{Min: 18, Max: 24},
		Category:     AgeFactLanguage,
		Fact:         "Der Wortschatz explodiert von 50 auf 200+ Wörter, aber das Verständnis übertrifft die Ausdrucksfähigkeit bei weitem.",
		Implications: []string{"Frustration durch Kommunikationslücken", "Verstehen mehr als sie sagen können", "Körpersprache noch wichtig"},
		Keywords:     []string{"sprechen", "worte", "kommunikation", "verstehen"},
	},
	{
		ID:           "toddler_separation_1",
		Ages:         AgeRange{Min: 12, Max: 36},
		Category:     AgeFactSocial,
		Fact:         "Trennungsangst erreicht ihren Höhepunkt - Kleinkinder haben noch kein Konzept von Zeit und Rückkehr.",
		Implications: []string{"Abschied schwierig", "Anklammern normal", "Rituale helfen"},
		Keywords:     []string{"trennung", "weinen", "mama", "angst", "verlassen"},
	},

	// 24-36 months
	{
		ID:           "toddler_prefrontal_2",
		Ages:         AgeRange{Min: 24, Max: 36},
		Category:     AgeFactCognitive,
		Fact:         "Der präfrontale Kortex ist noch unreif - Impulskontrolle und logisches Denken entwickeln sich erst.",
		Implications: []string{"Impulsives Verhalten normal", "Können Konsequenzen nicht voraussehen", "Brauchen externe Struktur"},
		Keywords:     []string{"impulsiv", "sofort", "warten", "geduld", "konsequenzen"},
	},
	{
		ID:           "toddler_parallel_play_2",
		Ages:         AgeRange{Min: 24, Max: 42},
		Category:     AgeFactSocial,
		Fact:         "Parallelspiel dominiert noch - Kinder spielen nebeneinander, aber nicht miteinander.",
		Implications: []string{"Teilen ist schwierig", "Territoriales Verhalten", "Soziale Regeln noch nicht verstanden"},
		Keywords:     []string{"teilen", "meins", "spielen", "freunde", "zusammen"},
	},

	// 36-48 months
	{
		ID:           "preschool_theory_mind_3",
		Ages:         AgeRange{Min: 36, Max: 48},
		Category:     AgeFactCognitive,
		Fact:         "Theory of Mind entwickelt sich - Kinder beginnen zu verstehen, dass andere Menschen andere Gedanken haben.",
		Implications: []string{"Erste Empathie möglich", "Lügen als Entwicklungsschritt", "Perspektivwechsel schwierig"},
		Keywords:     []string{"lügen", "empathie", "verstehen", "andere", "denken"},
	},
	{
		ID:           "preschool_magical_thinking_3",
		Ages:         AgeRange{Min: 30, Max: 60},
		Category:     AgeFactCognitive,
		Fact:         "Magisches Denken ist dominant - Ursache und Wirkung werden nicht logisch verstanden.",
		Implications: []string{"Irrationale Ängste", "Fantasie und Realität vermischt", "Rituale besonders wichtig"},
		Keywords:     []string{"angst", "monster", "dunkel", "fantasie", "ritual"},
	},

	// 48-60 months
	{
		ID:           "preschool_emotional_regulation_4",
		Ages:         AgeRange{Min: 48, Max: 60},
		Category:     AgeFactEmotional,
		Fact:         "Erste bewusste Emotionsregulationsstrategien entwickeln sich, aber sind noch sehr grundlegend.",
		Implications: []string{"Können erste Beruhigungsstrategien lernen", "Noch abhängig von Co-Regulation", "Benennen von Gefühlen wichtig"},
		Keywords:     []string{"gefühle", "beruhigen", "wut", "traurig", "regulation"},
	},
	{
		ID:           "preschool_rule_understanding_4",
		Ages:         AgeRange{Min: 42, Max: 66},
		Category:     AgeFactBehavioral,
		Fact:         "Regelverständnis entwickelt sich, aber Regeln werden noch sehr rigid und wörtlich interpretiert.",
		Implications: []string{"Gerechtigkeit sehr wichtig", "Regeln gelten absolut", "Ausnahmen schwer verstehbar"},
		Keywords:     []string{"regeln", "unfair", "gerechtigkeit", "erlaubt", "verboten"},
	},

	// 60-84 months
	{
		ID:           "school_age_executive_function_5",
		Ages:         AgeRange{Min: 60, Max: 84},
		Category:     AgeFactCognitive,
		Fact:         "Exekutive Funktionen reifen - Arbeitsgedächtnis, Flexibilität und Impulskontrolle verbessern sich deutlich.",
		Implications: []string{"Können komplexere Aufgaben lösen", "Planen wird möglich", "Aufmerksamkeitsspanne länger"},
		Keywords:     []string{"konzentration", "aufgaben", "planen", "vergessen", "fokus"},
	},
	{
		ID:           "school_age_peer_relationships_5",
		Ages:         AgeRange{Min: 60, Max: 96},
		Category:     AgeFactSocial,
		Fact:         "Peer-Beziehungen werden zentral - Freundschaften und Gruppenzugehörigkeit gewinnen an Bedeutung.",
		Implications: []string{"Soziale Ablehnung schmerzhaft", "Gruppendynamiken wichtig", "Loyalitätskonflikte möglich"},
		Keywords:     []string{"freunde", "ausgeschlossen", "beliebt", "gruppe", "loyal"},
	},

	// 72-144 months
	{
		ID:           "school_age_concrete_operations_6",
		Ages:         AgeRange{Min: 72, Max: 108},
		Category:     AgeFactCognitive,
		Fact:         "Konkret-operationales Denken entwickelt sich - logisches Denken mit konkreten Objekten wird möglich.",
		Implications: []string{"Können Ursache-Wirkung verstehen", "Fairness wird komplex", "Abstrakte Konzepte noch schwierig"},
		Keywords:     []string{"logik", "verstehen", "erklären", "warum", "zusammenhang"},
	},
	{
		ID:           "school_age_competence_6",
		Ages:         AgeRange{Min: 72, Max: 144},
		Category:     AgeFactEmotional,
		Fact:         "Kompetenzgefühl vs. Minderwertigkeit (Erikson) - Erfolge und Misserfolge prägen das Selbstbild stark.",
		Implications: []string{"Leistung wird wichtig", "Vergleiche mit anderen", "Selbstwert durch Können"},
		Keywords:     []string{"leistung", "können", "besser", "schlechter", "vergleich"},
	},

	// Spanning several stages
	{
		ID:           "stress_response_general",
		Ages:         AgeRange{Min: 12, Max: 144},
		Category:     AgeFactEmotional,
		Fact:         "Chronischer Stress aktiviert das Stresshormonsystem und kann die Gehirnentwicklung beeinträchtigen.",
		Implications: []string{"Sicherheit ist Grundbedürfnis", "Vorhersagbarkeit reduziert Stress", "Co-Regulation essentiell"},
		Keywords:     []string{"stress", "sicherheit", "routine", "vorhersagbar", "chaos"},
	},
	{
		ID:           "attachment_general",
		Ages:         AgeRange{Min: 6, Max: 216},
		Category:     AgeFactSocial,
		Fact:         "Sichere Bindung bildet die Basis für emotionale Regulation und spätere Beziehungsfähigkeit.",
		Implications: []string{"Vertrauen muss aufgebaut werden", "Konstante Bezugspersonen wichtig", "Bindungsverhalten bei Stress"},
		Keywords:     []string{"bindung", "vertrauen", "sicherheit", "verlässlich", "trennung"},
	},
	{
		ID:           "sleep_importance_general",
		Ages:         AgeRange{Min: 12, Max: 216},
		Category:     AgeFactPhysical,
		Fact:         "Schlafmangel beeinträchtigt Emotionsregulation, Aufmerksamkeit und Lernfähigkeit erheblich.",
		Implications: []string{"Müdigkeit verstärkt alle Probleme", "Schlafhygiene essentiell", "Individuelle Schlafbedürfnisse"},
		Keywords:     []string{"müde", "schlaf", "erschöpft", "aufmerksamkeit", "gereizt"},
	},
}
