package knowledge

import (
	"slices"

	"github.com/samber/lo"
)

type EvidenceCategory string

const (
	EvidenceNeuroscience EvidenceCategory = "neuroscience"
	EvidenceAttachment   EvidenceCategory = "attachment"
	EvidenceDevelopment  EvidenceCategory = "development"
	EvidenceBehavior     EvidenceCategory = "behavior"
	EvidenceLearning     EvidenceCategory = "learning"
	EvidenceEmotion      EvidenceCategory = "emotion"
)

var evidenceCategories = []EvidenceCategory{
	EvidenceNeuroscience,
	EvidenceAttachment,
	EvidenceDevelopment,
	EvidenceBehavior,
	EvidenceLearning,
	EvidenceEmotion,
}

type Reliability string

const (
	ReliabilityHigh        Reliability = "high"
	ReliabilityMedium      Reliability = "medium"
	ReliabilityEstablished Reliability = "established"
)

type StudyType string

const (
	StudyMetaAnalysis  StudyType = "meta-analysis"
	StudyLongitudinal  StudyType = "longitudinal"
	StudyExperimental  StudyType = "experimental"
	StudyObservational StudyType = "observational"
	StudyReview        StudyType = "review"
)

// EvidenceFact is a short research finding meant to be embedded in an answer.
type EvidenceFact struct {
	ID          string           `json:"id"`
	Category    EvidenceCategory `json:"category"`
	Fact        string           `json:"fact"`
	FullContext string           `json:"full_context"`
	Source      string           `json:"source"`
	StudyType   StudyType        `json:"study_type"`
	Reliability Reliability      `json:"reliability"`
	Ages        AgeRange         `json:"age_relevance"`
	Keywords    []string         `json:"keywords"`
	CitationID  string           `json:"citation_id"`
}

func (f EvidenceFact) ageRange() AgeRange { return f.Ages }
func (f EvidenceFact) terms() []string    { return f.Keywords }

func (c *Catalog) eligibleEvidence(keywords []string, ageInMonths int, category EvidenceCategory) []EvidenceFact {
	facts := eligible(c.evidence, ageInMonths, keywords)
	if category != "" {
		facts = lo.Filter(facts, func(f EvidenceFact, _ int) bool { return f.Category == category })
	}
	return facts
}

// preferHigh narrows to high-reliability facts when there are any.
func preferHigh(facts []EvidenceFact) []EvidenceFact {
	high := lo.Filter(facts, func(f EvidenceFact, _ int) bool { return f.Reliability == ReliabilityHigh })
	if len(high) > 0 {
		return high
	}
	return facts
}

// RelevantEvidenceFact picks one matching fact, drawn only from the
// high-reliability subset when that subset is non-empty. An empty category
// means any. It returns nil when nothing matches.
func (c *Catalog) RelevantEvidenceFact(keywords []string, ageInMonths int, category EvidenceCategory) *EvidenceFact {
	facts := preferHigh(c.eligibleEvidence(keywords, ageInMonths, category))
	if len(facts) == 0 {
		return nil
	}
	fact := pick(c.rng, facts)
	return &fact
}

// RelevantEvidenceFacts is the bounded list form: high reliability first,
// shuffled within each tier.
func (c *Catalog) RelevantEvidenceFacts(keywords []string, ageInMonths int, category EvidenceCategory, max int) []EvidenceFact {
	facts := c.eligibleEvidence(keywords, ageInMonths, category)
	high, rest := lo.FilterReject(facts, func(f EvidenceFact, _ int) bool { return f.Reliability == ReliabilityHigh })
	c.shuffle(high)
	c.shuffle(rest)
	return truncate(append(high, rest...), max)
}

func (c *Catalog) shuffle(facts []EvidenceFact) {
	for i := len(facts) - 1; i > 0; i-- {
		j := c.rng.IntN(i + 1)
		facts[i], facts[j] = facts[j], facts[i]
	}
}

func (c *Catalog) EvidenceFacts() []EvidenceFact {
	return slices.Clone(c.evidence)
}

func (c *Catalog) EvidenceByCategory(category EvidenceCategory) []EvidenceFact {
	return lo.Filter(c.evidence, func(f EvidenceFact, _ int) bool { return f.Category == category })
}

func EvidenceCategories() []EvidenceCategory {
	return slices.Clone(evidenceCategories)
}

var evidenceFacts = []EvidenceFact{
	// Neuroscience
	{
		ID:          "prefrontal_development",
		Category:    EvidenceNeuroscience,
		Fact:        "Der präfrontale Kortex entwickelt sich bis zum 25. Lebensjahr - Impulskontrolle ist bei Kindern neurologisch unreif.",
		FullContext: "Die Gehirnentwicklung erfolgt von hinten nach vorne, wobei der präfrontale Kortex, der für exekutive Funktionen zuständig ist, erst sehr spät vollständig ausreift. Dies erklärt, warum Kinder Schwierigkeiten mit Impulskontrolle, Planung und emotionaler Regulation haben.",
		Source:      "Steinberg, L. (2013). The influence of neuroscience on US Supreme Court decisions",
		StudyType:   StudyReview,
		Reliability: ReliabilityEstablished,
		Ages:        AgeRange{Min: 0, Max: 216},
		Keywords:    []string{"impulskontrolle", "verhalten", "unreif", "gehirn", "entwicklung"},
		CitationID:  "steinberg2013_prefrontal",
	},
	{
		ID:          "stress_cortisol",
		Category:    EvidenceNeuroscience,
		Fact:        "Chronischer Stress erhöht Cortisol und kann die Hippocampus-Entwicklung beeinträchtigen, was Lernen und Gedächtnis beeinflusst.",
		FullContext: "Anhaltende Stressbelastung führt zu erhöhten Cortisolspiegeln, die neurotoxisch auf den sich entwickelnden Hippocampus wirken können. Dies kann langfristige Auswirkungen auf Lern- und Gedächtnisfähigkeiten haben.",
		Source:      "Lupien et al. (2009). Effects of stress throughout the lifespan on the brain",
		StudyType:   StudyMetaAnalysis,
		Reliability: ReliabilityHigh,
		Ages:        AgeRange{Min: 0, Max: 216},
		Keywords:    []string{"stress", "lernen", "gedächtnis", "entwicklung", "cortisol"},
		CitationID:  "lupien2009_stress",
	},
	{
		ID:          "mirror_neurons",
		Category:    EvidenceNeuroscience,
		Fact:        "Spiegelneuronen aktivieren sich beim Beobachten von Emotionen - Kinder lernen emotionale Regulation durch Nachahmung.",
		FullContext: "Das Spiegelneuronensystem ermöglicht es Kindern, durch Beobachtung und Imitation emotionale und soziale Fähigkeiten zu erlernen. Die Co-Regulation durch Bezugspersonen ist daher neurobiologisch fundiert.",
		Source:      "Rizzolatti & Craighero (2004). The mirror-neuron system",
		StudyType:   StudyReview,
		Reliability: ReliabilityEstablished,
		Ages:        AgeRange{Min: 0, Max: 144},
		Keywords:    []string{"nachahmung", "emotion", "regulation", "lernen", "beobachten"},
		CitationID:  "rizzolatti2004_mirror",
	},

	// Attachment
	{
		ID:          "secure_attachment_outcomes",
		Category:    EvidenceAttachment,
		Fact:        "Sichere Bindung in der Kindheit korreliert mit besserer emotionaler Regulation und sozialer Kompetenz im Erwachsenenalter.",
		FullContext: "Longitudinalstudien zeigen, dass Kinder mit sicherer Bindung zu ihren primären Bezugspersonen später bessere Beziehungsfähigkeiten, emotionale Stabilität und Resilienz entwickeln.",
		Source:      "Groh et al. (2017). Attachment and developmental psychopathology",
		StudyType:   StudyMetaAnalysis,
		Reliability: ReliabilityHigh,
		Ages:        AgeRange{Min: 0, Max: 72},
		Keywords:    []string{"bindung", "regulation", "sozial", "beziehung", "entwicklung"},
		CitationID:  "groh2017_attachment",
	},
	{
		ID:          "co_regulation",
		Category:    EvidenceAttachment,
		Fact:        "Co-Regulation durch Bezugspersonen ist die Basis für die Entwicklung von Selbstregulationsfähigkeiten bei Kindern.",
		FullContext: "Kinder entwickeln die Fähigkeit zur Selbstregulation durch wiederholte Erfahrungen der Co-Regulation mit einfühlsamen Bezugspersonen. Dieser Prozess ist fundamental für emotionale Entwicklung.",
		Source:      "Siegel & Hartzell (2003). Parenting from the inside out",
		StudyType:   StudyReview,
		Reliability: ReliabilityEstablished,
		Ages:        AgeRange{Min: 0, Max: 144},
		Keywords:    []string{"regulation", "bezugsperson", "entwicklung", "emotion", "basis"},
		CitationID:  "siegel2003_coregulation",
	},

	// Developmental psychology
	{
		ID:          "theory_of_mind",
		Category:    EvidenceDevelopment,
		Fact:        "Theory of Mind entwickelt sich zwischen 3-5 Jahren - vorher können Kinder nicht verstehen, dass andere anders denken.",
		FullContext: "Die Fähigkeit zu verstehen, dass andere Menschen eigene Überzeugungen, Wünsche und Gedanken haben (Theory of Mind), entwickelt sich typischerweise zwischen dem 3. und 5. Lebensjahr.",
		Source:      "Wellman et al. (2001). Meta-analysis of theory-of-mind development",
		StudyType:   StudyMetaAnalysis,
		Reliability: ReliabilityEstablished,
		Ages:        AgeRange{Min: 24, Max: 72},
		Keywords:    []string{"verstehen", "andere", "denken", "empathie", "perspektive"},
		CitationID:  "wellman2001_tom",
	},
	{
		ID:          "executive_function_development",
		Category:    EvidenceDevelopment,
		Fact:        "Exekutive Funktionen entwickeln sich rapide zwischen 3-7 Jahren, mit Arbeitsgedächtnis als früher Komponente.",
		FullContext: "Die Entwicklung exekutiver Funktionen (Arbeitsgedächtnis, Inhibition, kognitive Flexibilität) zeigt eine kritische Entwicklungsphase im Vorschulalter, wobei das Arbeitsgedächtnis als erste Komponente reift.",
		Source:      "Diamond (2013). Executive functions",
		StudyType:   StudyReview,
		Reliability: ReliabilityEstablished,
		Ages:        AgeRange{Min: 36, Max: 84},
		Keywords:    []string{"konzentration", "aufmerksamkeit", "gedächtnis", "flexibilität", "kontrolle"},
		CitationID:  "diamond2013_executive",
	},
	{
		ID:          "language_explosion",
		Category:    EvidenceDevelopment,
		Fact:        "Der Wortschatz-Spurt zwischen 18-24 Monaten ermöglicht das Lernen von 6-10 neuen Wörtern täglich.",
		FullContext: "In der Phase des Wortschatz-Spurts können Kleinkinder durch fast mapping und statistische Lernmechanismen extrem schnell neue Wörter erwerben und deren Bedeutung approximieren.",
		Source:      "Bloom (2000). How children learn the meanings of words",
		StudyType:   StudyReview,
		Reliability: ReliabilityEstablished,
		Ages:        AgeRange{Min: 18, Max: 36},
		Keywords:    []string{"sprache", "wörter", "lernen", "kommunikation", "entwicklung"},
		CitationID:  "bloom2000_language",
	},

	// Behavior
	{
		ID:          "tantrum_function",
		Category:    EvidenceBehavior,
		Fact:        "Wutanfälle bei 1-4-Jährigen sind normale Kommunikation über unerfüllte Bedürfnisse, nicht manipulatives Verhalten.",
		FullContext: "Entwicklungspsychologische Forschung zeigt, dass Wutanfälle in der frühen Kindheit primär Kommunikationsversuche über Bedürfnisse darstellen, nicht bewusst manipulatives Verhalten, da Kinder noch nicht über die kognitiven Fähigkeiten für komplexe Manipulation verfügen.",
		Source:      "Potegal & Davidson (2003). Temper tantrums in young children",
		StudyType:   StudyObservational,
		Reliability: ReliabilityHigh,
		Ages:        AgeRange{Min: 12, Max: 60},
		Keywords:    []string{"wutanfall", "kommunikation", "bedürfnis", "manipulation", "verhalten"},
		CitationID:  "potegal2003_tantrums",
	},
	{
		ID:          "positive_discipline",
		Category:    EvidenceBehavior,
		Fact:        "Positive Erziehungsmethoden sind effektiver als Bestrafung und fördern internale Motivation sowie Selbstregulation.",
		FullContext: "Meta-Analysen zeigen konsistent, dass positive Erziehungsansätze (Verstärkung, natürliche Konsequenzen, problemlösendes Vorgehen) zu besseren Verhaltensergebnissen führen als punitive Methoden.",
		Source:      "Gershoff & Grogan-Kaylor (2016). Spanking and child outcomes",
		StudyType:   StudyMetaAnalysis,
		Reliability: ReliabilityHigh,
		Ages:        AgeRange{Min: 18, Max: 144},
		Keywords:    []string{"disziplin", "bestrafung", "motivation", "verhalten", "erziehung"},
		CitationID:  "gershoff2016_discipline",
	},

	// Learning
	{
		ID:          "play_based_learning",
		Category:    EvidenceLearning,
		Fact:        "Freies Spiel ist der wichtigste Lernmodus für Kinder und fördert Kreativität, Problemlösung und soziale Fähigkeiten.",
		FullContext: "Neurowissenschaftliche und entwicklungspsychologische Studien belegen, dass unstrukturiertes, freies Spiel essentielle kognitive, emotionale und soziale Lernprozesse ermöglicht, die durch strukturierte Aktivitäten nicht ersetzt werden können.",
		Source:      "Gray (2013). Free to learn: Why unleashing the instinct to play",
		StudyType:   StudyReview,
		Reliability: ReliabilityEstablished,
		Ages:        AgeRange{Min: 12, Max: 144},
		Keywords:    []string{"spiel", "lernen", "kreativität", "problemlösung", "entwicklung"},
		CitationID:  "gray2013_play",
	},
	{
		ID:          "screen_time_effects",
		Category:    EvidenceLearning,
		Fact:        "Übermäßige Bildschirmzeit vor dem 3. Lebensjahr kann Sprachentwicklung und Aufmerksamkeitsfähigkeiten beeinträchtigen.",
		FullContext: "Longitudinalstudien zeigen, dass frühe und excessive Medienexposition mit verzögerter Sprachentwicklung und Aufmerksamkeitsproblemen korreliert, wahrscheinlich durch reduzierte soziale Interaktion.",
		Source:      "Christakis et al. (2018). Screen time and young children",
		StudyType:   StudyLongitudinal,
		Reliability: ReliabilityHigh,
		Ages:        AgeRange{Min: 6, Max: 60},
		Keywords:    []string{"bildschirm", "medien", "sprache", "aufmerksamkeit", "entwicklung"},
		CitationID:  "christakis2018_screen",
	},

	// Emotion
	{
		ID:          "emotion_validation",
		Category:    EvidenceEmotion,
		Fact:        "Emotionsvalidierung durch Eltern reduziert die Intensität und Dauer negativer Emotionen bei Kindern signifikant.",
		FullContext: "Experimentelle Studien zeigen, dass empathische Validierung von Kindergefühlen durch Bezugspersonen zu schnellerer emotionaler Erholung und besserer langfristiger Regulationsfähigkeit führt.",
		Source:      "Katz et al. (2012). Emotion coaching by mothers",
		StudyType:   StudyExperimental,
		Reliability: ReliabilityHigh,
		Ages:        AgeRange{Min: 24, Max: 144},
		Keywords:    []string{"validation", "emotion", "gefühle", "empathie", "regulation"},
		CitationID:  "katz2012_validation",
	},
	{
		ID:          "emotional_contagion",
		Category:    EvidenceEmotion,
		Fact:        "Emotionale Ansteckung ist bei Kindern stark ausgeprägt - die Emotionsregulation der Eltern beeinflusst das Kind direkt.",
		FullContext: "Kinder übernehmen automatisch die emotionalen Zustände ihrer Bezugspersonen durch emotionale Ansteckung. Dies unterstreicht die Wichtigkeit der elterlichen Selbstregulation für das kindliche Wohlbefinden.",
		Source:      "Hatfield et al. (1994). Emotional contagion",
		StudyType:   StudyReview,
		Reliability: ReliabilityEstablished,
		Ages:        AgeRange{Min: 0, Max: 144},
		Keywords:    []string{"ansteckung", "emotion", "eltern", "regulation", "übertragung"},
		CitationID:  "hatfield1994_contagion",
	},

	// Sleep and physical regulation
	{
		ID:          "sleep_regulation",
		Category:    EvidenceDevelopment,
		Fact:        "Schlafmangel beeinträchtigt die Emotionsregulation bei Kindern stärker als bei Erwachsenen und verstärkt alle Verhaltensprobleme.",
		FullContext: "Neurobiologische Studien zeigen, dass Schlafmangel bei Kindern besonders stark die präfrontale Kontrolle schwächt und das limbische System aktiviert, was zu erhöhter Emotionalität und reduzierter Impulskontrolle führt.",
		Source:      "Meltzer & Mindell (2006). Sleep and sleep disorders in children",
		StudyType:   StudyReview,
		Reliability: ReliabilityEstablished,
		Ages:        AgeRange{Min: 6, Max: 144},
		Keywords:    []string{"schlaf", "müdigkeit", "emotion", "verhalten", "regulation"},
		CitationID:  "meltzer2006_sleep",
	},

	// Parenting
	{
		ID:          "parental_stress",
		Category:    EvidenceAttachment,
		Fact:        "Chronischer Elternstress reduziert die Sensitivität für kindliche Signale und beeinträchtigt die Eltern-Kind-Beziehung.",
		FullContext: "Forschung zur elterlichen Belastung zeigt, dass chronischer Stress die Fähigkeit zur empathischen Wahrnehmung kindlicher Bedürfnisse reduziert und zu weniger responsivem Verhalten führt.",
		Source:      "Crnic et al. (2005). Everyday stresses and parenting",
		StudyType:   StudyLongitudinal,
		Reliability: ReliabilityHigh,
		Ages:        AgeRange{Min: 0, Max: 144},
		Keywords:    []string{"elternstress", "sensitivität", "beziehung", "belastung", "responsiv"},
		CitationID:  "crnic2005_stress",
	},
	{
		ID:          "scaffolding_learning",
		Category:    EvidenceLearning,
		Fact:        "Zone of Proximal Development: Kinder lernen am besten mit leichter Unterstützung bei moderat herausfordernden Aufgaben.",
		FullContext: "Vygotskys Konzept der Zone of Proximal Development wurde empirisch bestätigt: Optimales Lernen findet statt, wenn Aufgaben leicht über dem aktuellen Niveau liegen und sensible Unterstützung geboten wird.",
		Source:      "Wood et al. (1976). The role of tutoring in problem solving",
		StudyType:   StudyExperimental,
		Reliability: ReliabilityEstablished,
		Ages:        AgeRange{Min: 24, Max: 144},
		Keywords:    []string{"lernen", "unterstützung", "herausforderung", "entwicklung", "förderung"},
		CitationID:  "wood1976_scaffolding",
	},
}
