package knowledge

import (
	"slices"

	"github.com/samber/lo"
)

type NeedCategory string

const (
	NeedAutonomie   NeedCategory = "autonomie"
	NeedSicherheit  NeedCategory = "sicherheit"
	NeedVerbindung  NeedCategory = "verbindung"
	NeedAnerkennung NeedCategory = "anerkennung"
	NeedStimulation NeedCategory = "stimulation"
	NeedRegulation  NeedCategory = "regulation"
)

var needCategories = []NeedCategory{
	NeedAutonomie,
	NeedSicherheit,
	NeedVerbindung,
	NeedAnerkennung,
	NeedStimulation,
	NeedRegulation,
}

func (c NeedCategory) IsValid() bool {
	return slices.Contains(needCategories, c)
}

func NeedCategories() []NeedCategory {
	return slices.Clone(needCategories)
}

// Need is a psychological need a behavior can point to.
type Need struct {
	ID              string       `json:"id"`
	Category        NeedCategory `json:"category"`
	Name            string       `json:"name"`
	Description     string       `json:"description"`
	BehaviorSignals []string     `json:"behavior_signals"`
	ParentResponse  string       `json:"parent_response"`
	Ages            AgeRange     `json:"age_relevance"`
	Keywords        []string     `json:"keywords"`
}

func (n Need) ageRange() AgeRange { return n.Ages }
func (n Need) terms() []string    { return n.Keywords }

const DefaultMaxNeeds = 2

// RelevantNeeds returns matching needs whose developmental peak is closest
// to the child's age first.
func (c *Catalog) RelevantNeeds(keywords []string, ageInMonths int, max int) []Need {
	needs := eligible(c.needs, ageInMonths, keywords)
	slices.SortStableFunc(needs, func(a, b Need) int {
		return abs(a.Ages.Peak-ageInMonths) - abs(b.Ages.Peak-ageInMonths)
	})
	return truncate(needs, max)
}

func (c *Catalog) NeedsByCategory(category NeedCategory) []Need {
	return lo.Filter(c.needs, func(n Need, _ int) bool { return n.Category == category })
}

func (c *Catalog) Needs() []Need {
	return slices.Clone(c.needs)
}

// NeedBadge is the display metadata clients show next to an identified need.
type NeedBadge struct {
	Category    NeedCategory `json:"category" msgpack:"category"`
	Label       string       `json:"label" msgpack:"label"`
	Description string       `json:"description" msgpack:"description"`
	Color       string       `json:"color" msgpack:"color"`
	Emoji       string       `json:"emoji" msgpack:"emoji"`
}

var needBadges = map[NeedCategory]NeedBadge{
	NeedAutonomie: {
		Category:    NeedAutonomie,
		Label:       "Autonomie",
		Description: "Dein Kind möchte selbst entscheiden",
		Color:       "bg-orange-100 text-orange-800 border-orange-200",
		Emoji:       "🧡",
	},
	NeedSicherheit: {
		Category:    NeedSicherheit,
		Label:       "Sicherheit",
		Description: "Dein Kind braucht Schutz und Vorhersagbarkeit",
		Color:       "bg-blue-100 text-blue-800 border-blue-200",
		Emoji:       "💙",
	},
	NeedVerbindung: {
		Category:    NeedVerbindung,
		Label:       "Verbindung",
		Description: "Dein Kind sehnt sich nach Nähe",
		Color:       "bg-green-100 text-green-800 border-green-200",
		Emoji:       "💚",
	},
	NeedAnerkennung: {
		Category:    NeedAnerkennung,
		Label:       "Anerkennung",
		Description: "Dein Kind möchte gesehen werden",
		Color:       "bg-purple-100 text-purple-800 border-purple-200",
		Emoji:       "💜",
	},
	NeedStimulation: {
		Category:    NeedStimulation,
		Label:       "Stimulation",
		Description: "Dein Kind braucht Herausforderung und Neues",
		Color:       "bg-yellow-100 text-yellow-800 border-yellow-200",
		Emoji:       "💛",
	},
	NeedRegulation: {
		Category:    NeedRegulation,
		Label:       "Regulation",
		Description: "Dein Kind braucht Hilfe bei der Selbstregulation",
		Color:       "bg-red-100 text-red-800 border-red-200",
		Emoji:       "❤️",
	},
}

func Badge(category NeedCategory) (NeedBadge, bool) {
	b, ok := needBadges[category]
	return b, ok
}

// Badges lists every badge in category order.
func Badges() []NeedBadge {
	return lo.Map(needCategories, func(c NeedCategory, _ int) NeedBadge { return needBadges[c] })
}

var needs = []Need{
	// Autonomie
	{
		ID:              "autonomie_choices",
		Category:        NeedAutonomie,
		Name:            "Eigene Entscheidungen treffen",
		Description:     "Das Kind möchte selbst wählen und entscheiden können",
		BehaviorSignals: []string{`Sagt "Nein" zu Vorschlägen`, "Besteht auf eigene Ideen", "Widerstand gegen Hilfe"},
		ParentResponse:  "Bieten Sie begrenzte Wahlmöglichkeiten an",
		Ages:            AgeRange{Min: 18, Max: 144, Peak: 30},
		Keywords:        []string{"nein", "selbst", "alleine", "wählen", "entscheiden"},
	},
	{
		ID:              "autonomie_competence",
		Category:        NeedAutonomie,
		Name:            "Kompetenz erleben",
		Description:     "Das Kind will Dinge selbst schaffen und meistern",
		BehaviorSignals: []string{"Will alles alleine machen", "Frustriert bei Misserfolg", "Stolz auf Errungenschaften"},
		ParentResponse:  "Ermöglichen Sie altersentsprechende Herausforderungen",
		Ages:            AgeRange{Min: 24, Max: 144, Peak: 60},
		Keywords:        []string{"schaffen", "können", "alleine machen", "stolz", "frustriert"},
	},
	{
		ID:              "autonomie_boundaries",
		Category:        NeedAutonomie,
		Name:            "Grenzen testen",
		Description:     "Das Kind erkundet seine Macht und Einflussbereich",
		BehaviorSignals: []string{"Testet Regeln konstant", "Provoziert bewusst", "Schaut nach Reaktionen"},
		ParentResponse:  "Bleiben Sie bei klaren, liebevollen Grenzen",
		Ages:            AgeRange{Min: 18, Max: 96, Peak: 36},
		Keywords:        []string{"grenzen", "testen", "provozieren", "macht", "trotz"},
	},
	{
		ID:              "autonomie_identity",
		Category:        NeedAutonomie,
		Name:            "Eigene Identität entwickeln",
		Description:     "Das Kind will als eigenständige Person wahrgenommen werden",
		BehaviorSignals: []string{"Betont Unterschiede", "Will nicht verglichen werden", "Eigene Präferenzen stark"},
		ParentResponse:  "Würdigen Sie die Einzigartigkeit Ihres Kindes",
		Ages:            AgeRange{Min: 36, Max: 144, Peak: 72},
		Keywords:        []string{"anders", "einzigartig", "ich", "eigen", "individuell"},
	},
	{
		ID:              "autonomie_privacy",
		Category:        NeedAutonomie,
		Name:            "Privatsphäre haben",
		Description:     "Das Kind braucht eigene Bereiche und Geheimnisse",
		BehaviorSignals: []string{"Will Türe schließen", "Geheime Spiele", "Abgrenzung von Eltern"},
		ParentResponse:  "Respektieren Sie altersgemäße Privatsphäre",
		Ages:            AgeRange{Min: 48, Max: 144, Peak: 84},
		Keywords:        []string{"privat", "geheim", "alleine", "türe", "eigener raum"},
	},
	{
		ID:              "autonomie_movement",
		Category:        NeedAutonomie,
		Name:            "Bewegungsfreiheit",
		Description:     "Das Kind will sich frei bewegen und erkunden",
		BehaviorSignals: []string{"Unruhe bei Einschränkung", "Drang zu rennen/klettern", "Widerstand gegen Stillsitzen"},
		ParentResponse:  "Schaffen Sie sichere Bewegungsräume",
		Ages:            AgeRange{Min: 12, Max: 144, Peak: 42},
		Keywords:        []string{"bewegen", "rennen", "klettern", "stillsitzen", "unruhe"},
	},
	{
		ID:              "autonomie_tempo",
		Category:        NeedAutonomie,
		Name:            "Eigenes Tempo bestimmen",
		Description:     "Das Kind braucht Zeit für seine Prozesse",
		BehaviorSignals: []string{"Trödelt bei Übergängen", "Widerstand gegen Zeitdruck", "Braucht Vorlaufzeit"},
		ParentResponse:  "Planen Sie mehr Zeit ein und kündigen Sie Übergänge an",
		Ages:            AgeRange{Min: 24, Max: 144, Peak: 48},
		Keywords:        []string{"trödeln", "zeit", "langsam", "übergang", "tempo"},
	},
	{
		ID:              "autonomie_responsibility",
		Category:        NeedAutonomie,
		Name:            "Verantwortung übernehmen",
		Description:     "Das Kind will für Dinge verantwortlich sein",
		BehaviorSignals: []string{"Will Aufgaben haben", "Stolz auf Pflichten", "Kümmert sich um Haustiere/Pflanzen"},
		ParentResponse:  "Geben Sie altersgemäße Verantwortlichkeiten",
		Ages:            AgeRange{Min: 36, Max: 144, Peak: 72},
		Keywords:        []string{"verantwortung", "aufgabe", "pflicht", "kümmern", "helfen"},
	},

	// Sicherheit
	{
		ID:              "sicherheit_physical",
		Category:        NeedSicherheit,
		Name:            "Körperliche Sicherheit",
		Description:     "Das Kind braucht Schutz vor Gefahren und Verletzungen",
		BehaviorSignals: []string{"Angst vor Höhen/Dunkelheit", "Klammert bei Fremden", "Sucht Schutz bei Gefahr"},
		ParentResponse:  "Schaffen Sie eine sichere Umgebung und bleiben Sie ruhig",
		Ages:            AgeRange{Min: 6, Max: 144, Peak: 24},
		Keywords:        []string{"angst", "gefahr", "verletzung", "sicher", "schutz"},
	},
	{
		ID:              "sicherheit_emotional",
		Category:        NeedSicherheit,
		Name:            "Emotionale Sicherheit",
		Description:     "Das Kind braucht vorhersagbare, liebevolle Beziehungen",
		BehaviorSignals: []string{"Unsicherheit bei Veränderung", "Sucht Nähe bei Stress", "Regressive Verhaltensweisen"},
		ParentResponse:  "Bleiben Sie emotional verfügbar und vorhersagbar",
		Ages:            AgeRange{Min: 6, Max: 144, Peak: 36},
		Keywords:        []string{"unsicher", "veränderung", "nähe", "stress", "regressiv"},
	},
	{
		ID:              "sicherheit_routine",
		Category:        NeedSicherheit,
		Name:            "Vorhersagbare Struktur",
		Description:     "Das Kind braucht Routinen und klare Abläufe",
		BehaviorSignals: []string{"Widerstand gegen Planänderungen", "Beruhigt durch Rituale", "Fragt nach dem Ablauf"},
		ParentResponse:  "Halten Sie verlässliche Routinen ein",
		Ages:            AgeRange{Min: 12, Max: 144, Peak: 48},
		Keywords:        []string{"routine", "ritual", "ablauf", "plan", "struktur"},
	},
	{
		ID:              "sicherheit_consistency",
		Category:        NeedSicherheit,
		Name:            "Konsistente Grenzen",
		Description:     "Das Kind braucht klare, verlässliche Regeln",
		BehaviorSignals: []string{"Verunsicherung bei wechselnden Regeln", "Testet Grenzen wiederholt", "Fragt nach Erlaubnis"},
		ParentResponse:  "Setzen Sie klare, konsistente Grenzen",
		Ages:            AgeRange{Min: 18, Max: 144, Peak: 42},
		Keywords:        []string{"regeln", "grenzen", "konsistent", "verlässlich", "erlaubnis"},
	},
	{
		ID:              "sicherheit_presence",
		Category:        NeedSicherheit,
		Name:            "Anwesenheit der Bezugsperson",
		Description:     "Das Kind braucht die Gewissheit, dass Bezugspersonen da sind",
		BehaviorSignals: []string{"Trennungsangst", "Ruft nach Eltern", "Prüft ständig Anwesenheit"},
		ParentResponse:  "Kündigen Sie Abwesenheiten an und halten Sie Kontakt",
		Ages:            AgeRange{Min: 6, Max: 72, Peak: 18},
		Keywords:        []string{"trennung", "da sein", "weg", "alleine", "verlassen"},
	},
	{
		ID:              "sicherheit_calm",
		Category:        NeedSicherheit,
		Name:            "Ruhige Atmosphäre",
		Description:     "Das Kind braucht eine stressfreie Umgebung",
		BehaviorSignals: []string{"Überstimulation bei Lärm", "Rückzug bei Chaos", "Ruhe-Suchverhalten"},
		ParentResponse:  "Schaffen Sie ruhige Räume und Zeiten",
		Ages:            AgeRange{Min: 6, Max: 144, Peak: 30},
		Keywords:        []string{"lärm", "chaos", "ruhe", "überstimulation", "rückzug"},
	},
	{
		ID:              "sicherheit_health",
		Category:        NeedSicherheit,
		Name:            "Körperliches Wohlbefinden",
		Description:     "Das Kind braucht Grundversorgung für Gesundheit",
		BehaviorSignals: []string{"Unruhe bei Hunger/Müdigkeit", "Krankheitsverhalten", "Komfort-Suchverhalten"},
		ParentResponse:  "Achten Sie auf Grundbedürfnisse wie Schlaf und Ernährung",
		Ages:            AgeRange{Min: 0, Max: 144, Peak: 12},
		Keywords:        []string{"hunger", "müde", "krank", "wohlbefinden", "komfort"},
	},

	// Verbindung
	{
		ID:              "verbindung_attachment",
		Category:        NeedVerbindung,
		Name:            "Sichere Bindung",
		Description:     "Das Kind braucht eine verlässliche emotionale Verbindung",
		BehaviorSignals: []string{"Sucht Nähe bei Stress", "Teilt Erlebnisse mit", "Orientiert sich an Bezugsperson"},
		ParentResponse:  "Sein Sie emotional verfügbar und responsiv",
		Ages:            AgeRange{Min: 0, Max: 144, Peak: 18},
		Keywords:        []string{"nähe", "bindung", "teilen", "orientierung", "verfügbar"},
	},
	{
		ID:              "verbindung_belonging",
		Category:        NeedVerbindung,
		Name:            "Zugehörigkeit zur Familie",
		Description:     "Das Kind will Teil der Familiengemeinschaft sein",
		BehaviorSignals: []string{"Will bei allem dabei sein", "Imitiert Familienmitglieder", "Widerstand gegen Ausschluss"},
		ParentResponse:  "Beziehen Sie das Kind in Familienaktivitäten ein",
		Ages:            AgeRange{Min: 12, Max: 144, Peak: 36},
		Keywords:        []string{"dabei sein", "imitieren", "ausschluss", "familie", "zugehörigkeit"},
	},
	{
		ID:              "verbindung_friendship",
		Category:        NeedVerbindung,
		Name:            "Freundschaften",
		Description:     "Das Kind braucht Gleichaltrige und Peer-Beziehungen",
		BehaviorSignals: []string{"Sucht Kontakt zu anderen Kindern", "Trauer bei sozialer Ablehnung", "Freude bei gemeinsamen Aktivitäten"},
		ParentResponse:  "Ermöglichen Sie soziale Kontakte zu Gleichaltrigen",
		Ages:            AgeRange{Min: 24, Max: 144, Peak: 72},
		Keywords:        []string{"freunde", "andere kinder", "ablehnung", "spielen", "kontakt"},
	},
	{
		ID:              "verbindung_intimacy",
		Category:        NeedVerbindung,
		Name:            "Emotionale Intimität",
		Description:     "Das Kind will tiefe, vertrauensvolle Beziehungen",
		BehaviorSignals: []string{"Teilt Geheimnisse", "Sucht private Gespräche", "Will Aufmerksamkeit"},
		ParentResponse:  "Schaffen Sie Zeiten für intensive Zweisamkeit",
		Ages:            AgeRange{Min: 36, Max: 144, Peak: 60},
		Keywords:        []string{"geheimnis", "vertrauen", "aufmerksamkeit", "zweisamkeit", "privat"},
	},
	{
		ID:              "verbindung_cooperation",
		Category:        NeedVerbindung,
		Name:            "Kooperation",
		Description:     "Das Kind will mit anderen zusammenarbeiten",
		BehaviorSignals: []string{"Will helfen und beitragen", "Freude an Teamarbeit", "Widerstand gegen Konkurrenz"},
		ParentResponse:  "Schaffen Sie Gelegenheiten für gemeinsame Projekte",
		Ages:            AgeRange{Min: 36, Max: 144, Peak: 72},
		Keywords:        []string{"helfen", "zusammenarbeiten", "team", "gemeinsam", "beitragen"},
	},
	{
		ID:              "verbindung_empathy",
		Category:        NeedVerbindung,
		Name:            "Empathie geben und erhalten",
		Description:     "Das Kind will verstanden werden und andere verstehen",
		BehaviorSignals: []string{"Tröstet andere", "Will eigene Gefühle erklärt bekommen", "Reagiert auf Emotionen anderer"},
		ParentResponse:  "Benennen und validieren Sie Gefühle",
		Ages:            AgeRange{Min: 24, Max: 144, Peak: 48},
		Keywords:        []string{"verstehen", "trösten", "gefühle", "empathie", "validierung"},
	},
	{
		ID:              "verbindung_physical_affection",
		Category:        NeedVerbindung,
		Name:            "Körperliche Zuneigung",
		Description:     "Das Kind braucht altersgerechte körperliche Nähe",
		BehaviorSignals: []string{"Sucht Umarmungen", "Kuschelt sich an", "Will auf den Arm"},
		ParentResponse:  "Bieten Sie körperliche Zuneigung nach Bedarf des Kindes an",
		Ages:            AgeRange{Min: 0, Max: 144, Peak: 24},
		Keywords:        []string{"umarmung", "kuscheln", "arm", "körperlich", "nähe"},
	},

	// Anerkennung
	{
		ID:              "anerkennung_seen",
		Category:        NeedAnerkennung,
		Name:            "Gesehen werden",
		Description:     "Das Kind will wahrgenommen und beachtet werden",
		BehaviorSignals: []string{`Ruft "Schau mal!"`, "Zeigt Leistungen vor", "Aufmerksamkeits-Suchverhalten"},
		ParentResponse:  "Schenken Sie dem Kind bewusste Aufmerksamkeit",
		Ages:            AgeRange{Min: 18, Max: 144, Peak: 48},
		Keywords:        []string{"schau mal", "zeigen", "aufmerksamkeit", "beachten", "sehen"},
	},
	{
		ID:              "anerkennung_achievement",
		Category:        NeedAnerkennung,
		Name:            "Leistung gewürdigt",
		Description:     "Das Kind will für seine Anstrengungen anerkannt werden",
		BehaviorSignals: []string{"Stolz auf Errungenschaften", "Will Lob für Versuche", "Enttäuschung bei Nicht-Beachtung"},
		ParentResponse:  "Würdigen Sie Anstrengung und Fortschritt",
		Ages:            AgeRange{Min: 24, Max: 144, Peak: 72},
		Keywords:        []string{"stolz", "lob", "anstrengung", "leistung", "errungenschaft"},
	},
	{
		ID:              "anerkennung_uniqueness",
		Category:        NeedAnerkennung,
		Name:            "Einzigartigkeit geschätzt",
		Description:     "Das Kind will für seine besonderen Eigenschaften geschätzt werden",
		BehaviorSignals: []string{"Betont Besonderheiten", "Will nicht verglichen werden", "Zeigt individuelle Talente"},
		ParentResponse:  "Schätzen Sie die individuellen Stärken Ihres Kindes",
		Ages:            AgeRange{Min: 36, Max: 144, Peak: 84},
		Keywords:        []string{"besonders", "einzigartig", "talent", "stärken", "individuell"},
	},
	{
		ID:              "anerkennung_voice",
		Category:        NeedAnerkennung,
		Name:            "Stimme gehört",
		Description:     "Das Kind will dass seine Meinung zählt",
		BehaviorSignals: []string{"Will mitreden", "Besteht auf eigene Sichtweise", "Frustriert wenn übergangen"},
		ParentResponse:  "Hören Sie aktiv zu und nehmen Sie Meinungen ernst",
		Ages:            AgeRange{Min: 30, Max: 144, Peak: 60},
		Keywords:        []string{"meinung", "mitreden", "zuhören", "sichtweise", "übergangen"},
	},
	{
		ID:              "anerkennung_respect",
		Category:        NeedAnerkennung,
		Name:            "Respekt als Person",
		Description:     "Das Kind will als vollwertige Person respektiert werden",
		BehaviorSignals: []string{"Widerstand gegen Herablassung", "Will ernstgenommen werden", "Reagiert auf Ton"},
		ParentResponse:  "Sprechen Sie respektvoll auf Augenhöhe",
		Ages:            AgeRange{Min: 36, Max: 144, Peak: 72},
		Keywords:        []string{"respekt", "ernstnehmen", "augenhöhe", "herablassung", "person"},
	},
	{
		ID:              "anerkennung_growth",
		Category:        NeedAnerkennung,
		Name:            "Wachstum anerkannt",
		Description:     "Das Kind will dass sein Fortschritt bemerkt wird",
		BehaviorSignals: []string{"Zeigt neue Fähigkeiten", "Erinnert an Verbesserungen", "Stolz auf Entwicklung"},
		ParentResponse:  "Bemerken und würdigen Sie Entwicklungsschritte",
		Ages:            AgeRange{Min: 24, Max: 144, Peak: 48},
		Keywords:        []string{"fortschritt", "wachstum", "entwicklung", "fähigkeiten", "verbesserung"},
	},

	// Stimulation
	{
		ID:              "stimulation_novelty",
		Category:        NeedStimulation,
		Name:            "Neue Erfahrungen",
		Description:     "Das Kind braucht Abwechslung und neue Eindrücke",
		BehaviorSignals: []string{"Langeweile bei Routine", "Sucht neue Aktivitäten", "Neugier auf Unbekanntes"},
		ParentResponse:  "Bieten Sie altersgerechte neue Erfahrungen",
		Ages:            AgeRange{Min: 6, Max: 144, Peak: 36},
		Keywords:        []string{"langweilig", "neu", "aktivität", "neugier", "abwechslung"},
	},
	{
		ID:              "stimulation_learning",
		Category:        NeedStimulation,
		Name:            "Lernen und Verstehen",
		Description:     "Das Kind will die Welt verstehen und Neues lernen",
		BehaviorSignals: []string{"Stellt viele Fragen", "Experimentiert gerne", "Freude an Entdeckungen"},
		ParentResponse:  "Beantworten Sie Fragen und ermutigen Sie Neugier",
		Ages:            AgeRange{Min: 18, Max: 144, Peak: 48},
		Keywords:        []string{"fragen", "warum", "lernen", "verstehen", "entdecken"},
	},
	{
		ID:              "stimulation_challenge",
		Category:        NeedStimulation,
		Name:            "Angemessene Herausforderung",
		Description:     "Das Kind braucht Aufgaben die weder zu leicht noch zu schwer sind",
		BehaviorSignals: []string{"Frustriert bei zu schweren Aufgaben", "Gelangweilt bei zu leichten", "Flow-Zustand bei passenden"},
		ParentResponse:  "Finden Sie die richtige Balance bei Herausforderungen",
		Ages:            AgeRange{Min: 24, Max: 144, Peak: 72},
		Keywords:        []string{"herausforderung", "schwer", "leicht", "frustriert", "gelangweilt"},
	},
	{
		ID:              "stimulation_creativity",
		Category:        NeedStimulation,
		Name:            "Kreative Ausdrucksmöglichkeiten",
		Description:     "Das Kind will kreativ sein und sich ausdrücken",
		BehaviorSignals: []string{"Liebt Basteln/Malen", "Erfindet Geschichten", "Experimentiert mit Materialien"},
		ParentResponse:  "Stellen Sie Materialien für kreative Aktivitäten bereit",
		Ages:            AgeRange{Min: 18, Max: 144, Peak: 60},
		Keywords:        []string{"basteln", "malen", "kreativ", "geschichten", "erfinden"},
	},
	{
		ID:              "stimulation_mastery",
		Category:        NeedStimulation,
		Name:            "Meisterschaft entwickeln",
		Description:     "Das Kind will in bestimmten Bereichen richtig gut werden",
		BehaviorSignals: []string{"Übung macht Spaß", "Perfektionistische Tendenzen", "Stolz auf Können"},
		ParentResponse:  "Unterstützen Sie Interessensgebiete mit Geduld",
		Ages:            AgeRange{Min: 48, Max: 144, Peak: 84},
		Keywords:        []string{"üben", "perfekt", "meisterschaft", "können", "expertise"},
	},
	{
		ID:              "stimulation_exploration",
		Category:        NeedStimulation,
		Name:            "Umgebung erkunden",
		Description:     "Das Kind will seine Umwelt erforschen und verstehen",
		BehaviorSignals: []string{"Klettert überall hin", "Öffnet alle Schränke", "Untersucht Gegenstände"},
		ParentResponse:  "Schaffen Sie sichere Erkundungsmöglichkeiten",
		Ages:            AgeRange{Min: 12, Max: 96, Peak: 30},
		Keywords:        []string{"erkunden", "klettern", "untersuchen", "erforschen", "neugierig"},
	},

	// Regulation
	{
		ID:              "regulation_emotional_support",
		Category:        NeedRegulation,
		Name:            "Emotionale Co-Regulation",
		Description:     "Das Kind braucht Hilfe beim Regulieren seiner Emotionen",
		BehaviorSignals: []string{"Wutanfälle", "Überwältigt von Gefühlen", "Sucht Trost bei Stress"},
		ParentResponse:  "Bleiben Sie ruhig und helfen Sie beim Beruhigen",
		Ages:            AgeRange{Min: 12, Max: 144, Peak: 36},
		Keywords:        []string{"wutanfall", "überwältigt", "trost", "beruhigen", "emotion"},
	},
	{
		ID:              "regulation_sensory",
		Category:        NeedRegulation,
		Name:            "Sensorische Regulation",
		Description:     "Das Kind braucht Hilfe bei der Verarbeitung von Sinneseindrücken",
		BehaviorSignals: []string{"Überstimulation in lauten Umgebungen", "Sucht bestimmte Texturen", "Sensitivität gegenüber Licht/Geräuschen"},
		ParentResponse:  "Passen Sie die Umgebung an die sensorischen Bedürfnisse an",
		Ages:            AgeRange{Min: 6, Max: 144, Peak: 42},
		Keywords:        []string{"laut", "überstimulation", "sensibel", "textur", "geräusch"},
	},
	{
		ID:              "regulation_sleep",
		Category:        NeedRegulation,
		Name:            "Schlafregulation",
		Description:     "Das Kind braucht Unterstützung bei gesunden Schlafmustern",
		BehaviorSignals: []string{"Widerstand gegen Schlafenszeit", "Müdigkeit/Überdrehtheit", "Einschlafprobleme"},
		ParentResponse:  "Etablieren Sie beruhigende Schlafrituale",
		Ages:            AgeRange{Min: 6, Max: 144, Peak: 30},
		Keywords:        []string{"schlaf", "müde", "überdreht", "einschlafen", "schlafenszeit"},
	},
	{
		ID:              "regulation_impulse",
		Category:        NeedRegulation,
		Name:            "Impulskontrolle",
		Description:     "Das Kind lernt noch, Impulse zu kontrollieren",
		BehaviorSignals: []string{"Handelt ohne nachzudenken", "Schwierigkeiten beim Warten", "Impulsive Reaktionen"},
		ParentResponse:  "Helfen Sie mit Struktur und Vorhersagbarkeit",
		Ages:            AgeRange{Min: 18, Max: 144, Peak: 48},
		Keywords:        []string{"impulsiv", "warten", "nachdenken", "spontan", "reaktion"},
	},
	{
		ID:              "regulation_attention",
		Category:        NeedRegulation,
		Name:            "Aufmerksamkeitsregulation",
		Description:     "Das Kind braucht Hilfe beim Fokussieren und Aufmerksamkeit steuern",
		BehaviorSignals: []string{"Leicht ablenkbar", "Schwierigkeiten bei längeren Aufgaben", "Hyperfokus oder Unaufmerksamkeit"},
		ParentResponse:  "Strukturieren Sie Aufgaben und minimieren Sie Ablenkungen",
		Ages:            AgeRange{Min: 24, Max: 144, Peak: 60},
		Keywords:        []string{"ablenkung", "fokus", "aufmerksamkeit", "konzentration", "aufgaben"},
	},
	{
		ID:              "regulation_transition",
		Category:        NeedRegulation,
		Name:            "Übergangshilfe",
		Description:     "Das Kind braucht Unterstützung bei Wechseln zwischen Aktivitäten",
		BehaviorSignals: []string{"Schwierigkeiten beim Aufhören", "Widerstand gegen Wechsel", "Braucht Vorwarnzeit"},
		ParentResponse:  "Kündigen Sie Übergänge an und nutzen Sie Rituale",
		Ages:            AgeRange{Min: 18, Max: 144, Peak: 42},
		Keywords:        []string{"übergang", "aufhören", "wechsel", "aktivität", "ritual"},
	},
	{
		ID:              "regulation_physical",
		Category:        NeedRegulation,
		Name:            "Körperliche Bedürfnisse",
		Description:     "Das Kind braucht Hilfe bei der Wahrnehmung und Befriedigung körperlicher Bedürfnisse",
		BehaviorSignals: []string{"Vergisst zu essen/trinken", "Merkt nicht dass es müde ist", "Körperliche Unruhe"},
		ParentResponse:  "Helfen Sie beim Erkennen und Befriedigen körperlicher Signale",
		Ages:            AgeRange{Min: 12, Max: 144, Peak: 36},
		Keywords:        []string{"hunger", "durst", "müdigkeit", "körperlich", "bedürfnis"},
	},
}
