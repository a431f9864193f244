package knowledge

import (
	"slices"

	"github.com/samber/lo"
)

type InterventionCategory string

const (
	InterventionRegulation    InterventionCategory = "regulation"
	InterventionConnection    InterventionCategory = "connection"
	InterventionCommunication InterventionCategory = "communication"
	InterventionBoundary      InterventionCategory = "boundary"
	InterventionAttention     InterventionCategory = "attention"
	InterventionTransition    InterventionCategory = "transition"
)

type Difficulty string

const (
	DifficultyEasy     Difficulty = "easy"
	DifficultyMedium   Difficulty = "medium"
	DifficultyAdvanced Difficulty = "advanced"
)

var difficultyRank = map[Difficulty]int{
	DifficultyEasy:     0,
	DifficultyMedium:   1,
	DifficultyAdvanced: 2,
}

type ParentingStyle string

const (
	StyleAuthoritative ParentingStyle = "authoritative"
	StyleGentle        ParentingStyle = "gentle"
	StyleConscious     ParentingStyle = "conscious"
	StyleAll           ParentingStyle = "all"
)

// MicroIntervention is a short exercise a parent can do on the spot.
type MicroIntervention struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	Description    string               `json:"description"`
	Duration       string               `json:"duration"`
	Ages           AgeRange             `json:"age_range"`
	Category       InterventionCategory `json:"category"`
	Difficulty     Difficulty           `json:"difficulty"`
	Materials      []string             `json:"materials"`
	Steps          []string             `json:"steps"`
	Purpose        string               `json:"purpose"`
	Keywords       []string             `json:"keywords"`
	ParentingStyle ParentingStyle       `json:"parenting_style"`
	Situations     []string             `json:"situation"`
	EvidenceBased  bool                 `json:"evidence_based"`
}

func (m MicroIntervention) ageRange() AgeRange { return m.Ages }
func (m MicroIntervention) terms() []string    { return m.Keywords }

const DefaultMaxInterventions = 2

// compareInterventions orders evidence-based first, then easier first.
func compareInterventions(a, b MicroIntervention) int {
	if a.EvidenceBased != b.EvidenceBased {
		if a.EvidenceBased {
			return -1
		}
		return 1
	}
	return difficultyRank[a.Difficulty] - difficultyRank[b.Difficulty]
}

// RelevantMicroInterventions filters by age, keywords and an optional
// category, then ranks with compareInterventions.
func (c *Catalog) RelevantMicroInterventions(keywords []string, ageInMonths int, category InterventionCategory, max int) []MicroIntervention {
	items := eligible(c.interventions, ageInMonths, keywords)
	if category != "" {
		items = lo.Filter(items, func(m MicroIntervention, _ int) bool { return m.Category == category })
	}
	slices.SortStableFunc(items, compareInterventions)
	return truncate(items, max)
}

// RandomMicroIntervention picks one age-eligible intervention of the category.
func (c *Catalog) RandomMicroIntervention(category InterventionCategory, ageInMonths int) (MicroIntervention, bool) {
	items := lo.Filter(inAgeRange(c.interventions, ageInMonths), func(m MicroIntervention, _ int) bool {
		return m.Category == category
	})
	if len(items) == 0 {
		return MicroIntervention{}, false
	}
	return pick(c.rng, items), true
}

func (c *Catalog) InterventionsByDifficulty(difficulty Difficulty) []MicroIntervention {
	return lo.Filter(c.interventions, func(m MicroIntervention, _ int) bool { return m.Difficulty == difficulty })
}

func (c *Catalog) MicroInterventions() []MicroIntervention {
	return slices.Clone(c.interventions)
}

var microInterventions = []MicroIntervention{
	// Regulation
	{
		ID:          "breathing_bear",
		Name:        "Atmender Bär",
		Description: "Gemeinsam mit dem Kind wie ein Bär atmen, um zur Ruhe zu kommen",
		Duration:    "1-2 Minuten",
		Ages:        AgeRange{Min: 24, Max: 72},
		Category:    InterventionRegulation,
		Difficulty:  DifficultyEasy,
		Materials:   []string{},
		Steps: []string{
			"Setzen Sie sich mit Ihrem Kind gemütlich hin",
			`Sagen Sie: "Wir atmen jetzt wie ein großer, starker Bär"`,
			`Atmen Sie gemeinsam tief ein und lassen die Luft langsam mit einem "Hoooo" entweichen`,
			"Wiederholen Sie dies 5-8 Mal im ruhigen Rhythmus",
			`Fragen Sie: "Wie fühlt sich dein Bauch jetzt an?"`,
		},
		Purpose:        "Aktiviert das parasympathische Nervensystem und reduziert Stresshormone",
		Keywords:       []string{"wutanfall", "aufregung", "beruhigen", "stress", "angst"},
		ParentingStyle: StyleAll,
		Situations:     []string{"Nach Wutanfall", "Bei Überstimulation", "Vor dem Schlafengehen"},
		EvidenceBased:  true,
	},
	{
		ID:          "butterfly_hug",
		Name:        "Schmetterlings-Umarmung",
		Description: "Selbstberuhigungs-Technik durch bilaterale Stimulation",
		Duration:    "30-60 Sekunden",
		Ages:        AgeRange{Min: 36, Max: 144},
		Category:    InterventionRegulation,
		Difficulty:  DifficultyEasy,
		Materials:   []string{},
		Steps: []string{
			"Zeigen Sie Ihrem Kind, wie es die Hände wie Schmetterlingsflügel über die Brust kreuzt",
			"Abwechselnd mit beiden Händen sanft auf die Schultern klopfen",
			"Dabei ruhig atmen und bis 10 zählen",
			`Fragen Sie: "Spürst du, wie der Schmetterling dich beruhigt?"`,
		},
		Purpose:        "Bilaterale Stimulation beruhigt das Nervensystem (EMDR-basiert)",
		Keywords:       []string{"selbstberuhigung", "nervös", "aufregung", "beruhigen"},
		ParentingStyle: StyleConscious,
		Situations:     []string{"Bei Anspannung", "Vor schwierigen Situationen", "Bei Ängsten"},
		EvidenceBased:  true,
	},
	{
		ID:          "emotion_thermometer",
		Name:        "Gefühls-Thermometer",
		Description: "Emotionen auf einer Skala von 1-10 einordnen",
		Duration:    "1-2 Minuten",
		Ages:        AgeRange{Min: 48, Max: 144},
		Category:    InterventionRegulation,
		Difficulty:  DifficultyMedium,
		Materials:   []string{"Papier", "Stifte (optional)"},
		Steps: []string{
			"Malen Sie schnell ein Thermometer oder zeigen Sie mit Ihren Händen die Skala",
			`Fragen Sie: "Wie groß ist dein Gefühl gerade? 1 ist ganz klein, 10 ist riesig"`,
			"Lassen Sie das Kind zeigen oder sagen",
			`Fragen Sie: "Was würde helfen, damit es auf eine 5 oder 3 geht?"`,
			"Probieren Sie gemeinsam Ideen aus",
		},
		Purpose:        "Entwickelt emotionale Selbstwahrnehmung und Regulationsstrategien",
		Keywords:       []string{"gefühle", "wut", "trauer", "emotion", "verstehen"},
		ParentingStyle: StyleConscious,
		Situations:     []string{"Bei starken Emotionen", "Nach Konflikten", "Zum Verständnis"},
		EvidenceBased:  true,
	},
	{
		ID:          "five_finger_breathing",
		Name:        "5-Finger-Atmung",
		Description: "Atemübung mit der Hand als visueller Hilfe",
		Duration:    "1-2 Minuten",
		Ages:        AgeRange{Min: 48, Max: 144},
		Category:    InterventionRegulation,
		Difficulty:  DifficultyEasy,
		Materials:   []string{},
		Steps: []string{
			"Strecken Sie eine Hand aus",
			"Mit dem anderen Zeigefinger am Daumen beginnen",
			"Beim Hochfahren am Finger einatmen, beim Runterfahren ausatmen",
			`Alle fünf Finger so "ablaufen"`,
			`Fragen Sie: "Merkst du, wie ruhig dein Atem geworden ist?"`,
		},
		Purpose:        "Kombiniert Atemregulation mit visueller und taktiler Wahrnehmung",
		Keywords:       []string{"atmung", "beruhigen", "konzentration", "focus"},
		ParentingStyle: StyleAll,
		Situations:     []string{"Bei Aufregung", "Vor Tests", "Bei Nervosität"},
		EvidenceBased:  true,
	},

	// Connection
	{
		ID:          "special_time",
		Name:        "Besondere Zeit",
		Description: "10 Minuten ungeteilte Aufmerksamkeit nur für das Kind",
		Duration:    "10 Minuten",
		Ages:        AgeRange{Min: 18, Max: 144},
		Category:    InterventionConnection,
		Difficulty:  DifficultyEasy,
		Materials:   []string{},
		Steps: []string{
			`Sagen Sie: "Jetzt haben wir unsere besondere Zeit"`,
			"Handy weglegen, andere Ablenkungen ausschalten",
			"Lassen Sie das Kind bestimmen, was gespielt wird",
			"Kommentieren Sie positiv, was das Kind tut",
			"Keine Fragen, Anweisungen oder Korrekturen - nur beobachten und wertschätzen",
		},
		Purpose:        "Stärkt die Bindung und das Selbstwertgefühl des Kindes",
		Keywords:       []string{"bindung", "aufmerksamkeit", "verbindung", "beziehung"},
		ParentingStyle: StyleAll,
		Situations:     []string{"Täglich", "Nach Konflikten", "Bei Distanz"},
		EvidenceBased:  true,
	},
	{
		ID:          "feeling_check_in",
		Name:        "Gefühls-Check",
		Description: "Kurzer emotionaler Austausch zwischen Eltern und Kind",
		Duration:    "2-3 Minuten",
		Ages:        AgeRange{Min: 36, Max: 144},
		Category:    InterventionConnection,
		Difficulty:  DifficultyEasy,
		Materials:   []string{},
		Steps: []string{
			"Setzen Sie sich auf Augenhöhe zum Kind",
			`Fragen Sie: "Wie geht es dir gerade? Was fühlst du?"`,
			"Hören Sie ohne zu bewerten zu",
			"Teilen Sie auch ein eigenes Gefühl mit",
			"Bedanken Sie sich fürs Teilen",
		},
		Purpose:        "Fördert emotionale Intimität und Kommunikationsbereitschaft",
		Keywords:       []string{"gefühle", "kommunikation", "austausch", "vertrauen"},
		ParentingStyle: StyleConscious,
		Situations:     []string{"Morgens", "Nach der Schule", "Vor dem Schlafengehen"},
		EvidenceBased:  true,
	},
	{
		ID:          "gratitude_moment",
		Name:        "Dankbarkeits-Moment",
		Description: "Gemeinsam drei schöne Dinge des Tages teilen",
		Duration:    "2-3 Minuten",
		Ages:        AgeRange{Min: 36, Max: 144},
		Category:    InterventionConnection,
		Difficulty:  DifficultyEasy,
		Materials:   []string{},
		Steps: []string{
			`Sagen Sie: "Lass uns drei schöne Sachen von heute finden"`,
			"Jeder nennt abwechselnd etwas Schönes",
			"Hören Sie aufmerksam zu und zeigen Sie Interesse",
			"Bedanken Sie sich beim Kind fürs Teilen",
			`Enden Sie mit: "Ich bin dankbar für dich"`,
		},
		Purpose:        "Stärkt positive Emotionen und die Eltern-Kind-Bindung",
		Keywords:       []string{"positiv", "dankbarkeit", "verbindung", "schön"},
		ParentingStyle: StyleConscious,
		Situations:     []string{"Abends", "Nach schwierigen Tagen", "Regelmäßig"},
		EvidenceBased:  true,
	},

	// Communication
	{
		ID:          "active_listening",
		Name:        "Aktives Zuhören",
		Description: "Dem Kind zeigen, dass es wirklich gehört wird",
		Duration:    "1-2 Minuten",
		Ages:        AgeRange{Min: 24, Max: 144},
		Category:    InterventionCommunication,
		Difficulty:  DifficultyMedium,
		Materials:   []string{},
		Steps: []string{
			"Gehen Sie auf Augenhöhe des Kindes",
			`Wiederholen Sie, was das Kind gesagt hat: "Du meinst also..."`,
			`Benennen Sie das Gefühl: "Du klingst frustriert/traurig/wütend"`,
			`Fragen Sie: "Habe ich dich richtig verstanden?"`,
			"Warten Sie die Antwort ab, bevor Sie reagieren",
		},
		Purpose:        "Validiert die Erfahrung des Kindes und reduziert Missverständnisse",
		Keywords:       []string{"verstehen", "zuhören", "kommunikation", "validation"},
		ParentingStyle: StyleConscious,
		Situations:     []string{"Bei Konflikten", "Wenn das Kind frustriert ist", "Bei Missverständnissen"},
		EvidenceBased:  true,
	},
	{
		ID:          "choice_offering",
		Name:        "Wahlmöglichkeiten anbieten",
		Description: "Dem Kind kontrollierte Entscheidungsfreiheit geben",
		Duration:    "30 Sekunden",
		Ages:        AgeRange{Min: 18, Max: 96},
		Category:    InterventionCommunication,
		Difficulty:  DifficultyEasy,
		Materials:   []string{},
		Steps: []string{
			"Statt Anweisungen: Bieten Sie 2-3 akzeptable Optionen",
			`Sagen Sie: "Möchtest du X oder Y? Du kannst wählen"`,
			"Warten Sie auf die Entscheidung des Kindes",
			"Respektieren Sie die Wahl des Kindes",
			"Bedanken Sie sich für die Entscheidung",
		},
		Purpose:        "Reduziert Machtkämpfe und fördert Kooperationsbereitschaft",
		Keywords:       []string{"trotz", "widerstand", "kooperation", "autonomie", "wählen"},
		ParentingStyle: StyleAll,
		Situations:     []string{"Bei Widerstand", "Vor Übergängen", "Bei Machtkämpfen"},
		EvidenceBased:  true,
	},
	{
		ID:          "emotion_coaching",
		Name:        "Gefühls-Begleitung",
		Description: "Emotionen benennen und normalisieren",
		Duration:    "1-2 Minuten",
		Ages:        AgeRange{Min: 18, Max: 144},
		Category:    InterventionCommunication,
		Difficulty:  DifficultyMedium,
		Materials:   []string{},
		Steps: []string{
			`Benennen Sie das Gefühl: "Du bist wütend, weil..."`,
			`Normalisieren Sie: "Es ist ok, wütend zu sein"`,
			`Setzen Sie Grenzen für Verhalten: "Aber hauen ist nicht ok"`,
			"Bieten Sie alternative Ausdrucksformen an",
			"Bleiben Sie ruhig und präsent",
		},
		Purpose:        "Entwickelt emotionale Intelligenz und Regulationsfähigkeiten",
		Keywords:       []string{"gefühle", "emotion", "wut", "trauer", "validation"},
		ParentingStyle: StyleConscious,
		Situations:     []string{"Bei starken Emotionen", "Während Wutanfällen", "Nach Konflikten"},
		EvidenceBased:  true,
	},

	// Boundary
	{
		ID:          "calm_limit_setting",
		Name:        "Ruhige Grenzensetzung",
		Description: "Klare Grenzen ohne Machtkampf kommunizieren",
		Duration:    "30-60 Sekunden",
		Ages:        AgeRange{Min: 18, Max: 144},
		Category:    InterventionBoundary,
		Difficulty:  DifficultyMedium,
		Materials:   []string{},
		Steps: []string{
			"Sprechen Sie ruhig und bestimmt (nicht laut)",
			`Sagen Sie einmal klar, was nicht geht: "Das geht nicht"`,
			`Erklären Sie kurz warum: "Weil es gefährlich ist"`,
			`Bieten Sie eine Alternative: "Du kannst stattdessen..."`,
			"Bleiben Sie konsequent, auch wenn das Kind protestiert",
		},
		Purpose:        "Vermittelt Sicherheit durch klare Struktur ohne Beziehungsschäden",
		Keywords:       []string{"grenzen", "regeln", "konsequenz", "sicherheit", "struktur"},
		ParentingStyle: StyleAuthoritative,
		Situations:     []string{"Bei Regelüberschreitung", "Bei Sicherheitsrisiken", "Bei Tests von Grenzen"},
		EvidenceBased:  true,
	},
	{
		ID:          "natural_consequences",
		Name:        "Natürliche Konsequenzen",
		Description: "Lernen durch logische Folgen statt Bestrafung",
		Duration:    "1-2 Minuten",
		Ages:        AgeRange{Min: 36, Max: 144},
		Category:    InterventionBoundary,
		Difficulty:  DifficultyAdvanced,
		Materials:   []string{},
		Steps: []string{
			"Identifizieren Sie die natürliche Konsequenz des Verhaltens",
			`Erklären Sie den Zusammenhang: "Wenn..., dann..."`,
			"Geben Sie dem Kind die Chance zu wählen",
			"Lassen Sie die Konsequenz ohne Drama eintreten",
			"Unterstützen Sie beim Problemlösen für das nächste Mal",
		},
		Purpose:        "Fördert intrinsische Motivation und Problemlösefähigkeiten",
		Keywords:       []string{"konsequenz", "lernen", "problemlösung", "verantwortung"},
		ParentingStyle: StyleConscious,
		Situations:     []string{"Bei wiederholten Problemen", "Zum Lernen von Verantwortung", "Bei Unordnung"},
		EvidenceBased:  true,
	},

	// Attention
	{
		ID:          "attention_focusing",
		Name:        "Aufmerksamkeits-Fokus",
		Description: "Kurze Übung zur Konzentrationssteigerung",
		Duration:    "1-2 Minuten",
		Ages:        AgeRange{Min: 36, Max: 144},
		Category:    InterventionAttention,
		Difficulty:  DifficultyEasy,
		Materials:   []string{},
		Steps: []string{
			`Sagen Sie: "Wir machen jetzt einen Aufmerksamkeits-Check"`,
			`Fragen Sie: "Was hörst du gerade?" (3 Geräusche finden)`,
			`Dann: "Was siehst du?" (3 Dinge beschreiben)`,
			`Schließlich: "Wie fühlst du dich?" (1 Gefühl benennen)`,
			"Loben Sie die Aufmerksamkeit",
		},
		Purpose:        "Trainiert Achtsamkeit und Konzentrationsfähigkeit",
		Keywords:       []string{"konzentration", "aufmerksamkeit", "fokus", "achtsamkeit"},
		ParentingStyle: StyleConscious,
		Situations:     []string{"Bei Unruhe", "Vor Aufgaben", "Bei Ablenkung"},
		EvidenceBased:  true,
	},
	{
		ID:          "body_scan",
		Name:        "Körper-Spürcheck",
		Description: "Kurze Körperreise zur Erdung und Entspannung",
		Duration:    "2-3 Minuten",
		Ages:        AgeRange{Min: 48, Max: 144},
		Category:    InterventionAttention,
		Difficulty:  DifficultyMedium,
		Materials:   []string{},
		Steps: []string{
			"Gemeinsam hinsetzen oder hinlegen",
			`Sagen Sie: "Wir gehen auf Körperreise"`,
			`Von den Zehen aufwärts: "Wie fühlen sich deine Zehen an?"`,
			"Jeden Körperteil kurz spüren lassen",
			`Enden mit: "Wie fühlt sich dein ganzer Körper jetzt an?"`,
		},
		Purpose:        "Fördert Körperwahrnehmung und Entspannung, reduziert Stress",
		Keywords:       []string{"entspannung", "körper", "spüren", "ruhe", "wahrnehmung"},
		ParentingStyle: StyleConscious,
		Situations:     []string{"Bei Überstimulation", "Vor dem Schlafengehen", "Bei Anspannung"},
		EvidenceBased:  true,
	},

	// Transition
	{
		ID:          "transition_warning",
		Name:        "Übergangs-Ankündigung",
		Description: "Vorbereitung auf Aktivitätswechsel zur Reduktion von Widerstand",
		Duration:    "30 Sekunden",
		Ages:        AgeRange{Min: 18, Max: 144},
		Category:    InterventionTransition,
		Difficulty:  DifficultyEasy,
		Materials:   []string{"Timer (optional)"},
		Steps: []string{
			`Kündigen Sie 10 Minuten vorher an: "In 10 Minuten räumen wir auf"`,
			`5-Minuten-Warnung: "Noch 5 Minuten spielen"`,
			`2-Minuten-Warnung: "Gleich ist Spielzeit vorbei"`,
			`Dann: "Jetzt ist es Zeit aufzuräumen"`,
			"Bleiben Sie freundlich aber bestimmt",
		},
		Purpose:        "Reduziert Übergangs-Stress durch Vorhersagbarkeit",
		Keywords:       []string{"übergang", "aufhören", "wechsel", "aktivität", "zeit"},
		ParentingStyle: StyleAll,
		Situations:     []string{"Vor allen Übergängen", "Bei Aktivitätswechseln", "Vor dem Weggehen"},
		EvidenceBased:  true,
	},
	{
		ID:          "closing_ritual",
		Name:        "Abschluss-Ritual",
		Description: "Bewusster Abschied von einer Aktivität",
		Duration:    "1 Minute",
		Ages:        AgeRange{Min: 24, Max: 96},
		Category:    InterventionTransition,
		Difficulty:  DifficultyEasy,
		Materials:   []string{},
		Steps: []string{
			`Sagen Sie: "Wir verabschieden uns jetzt vom Spielen"`,
			"Gemeinsam den Spielbereich anschauen",
			`Sagen Sie: "Danke, Spielsachen, das war schön"`,
			"Dem Kind Zeit geben für eigenen Abschied",
			"Dann zum nächsten Schritt übergehen",
		},
		Purpose:        "Hilft bei emotionalem Übergang und reduziert Trennungsschmerz",
		Keywords:       []string{"abschied", "übergang", "ritual", "beenden", "trauer"},
		ParentingStyle: StyleGentle,
		Situations:     []string{"Bei schwierigen Übergängen", "Beim Verlassen von Spielplätzen", "Bei Lieblingssachen"},
		EvidenceBased:  false,
	},
}
