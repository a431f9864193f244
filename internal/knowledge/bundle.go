package knowledge

// Bundle is everything the selector found for one message.
type Bundle struct {
	Keywords           []string            `json:"keywords"`
	AgeFact            string              `json:"ageFact"`
	RelevantNeeds      []Need              `json:"relevantNeeds"`
	EvidenceFact       *EvidenceFact       `json:"evidenceFact"`
	MicroInterventions []MicroIntervention `json:"microInterventions"`
	Citation           string              `json:"citation"`
}

// EnhancedResponse runs every selector for the message. The age fact is the
// random age-context fact, not the keyword-ranked one.
func (c *Catalog) EnhancedResponse(message string, ageInMonths int) Bundle {
	keywords := ExtractKeywords(message)

	b := Bundle{
		Keywords:           keywords,
		AgeFact:            c.AgeContextFactText(ageInMonths),
		RelevantNeeds:      c.RelevantNeeds(keywords, ageInMonths, DefaultMaxNeeds),
		EvidenceFact:       c.RelevantEvidenceFact(keywords, ageInMonths, ""),
		MicroInterventions: c.RelevantMicroInterventions(keywords, ageInMonths, "", DefaultMaxInterventions),
	}
	if b.EvidenceFact != nil {
		b.Citation = c.FormatCitation(b.EvidenceFact.CitationID, true)
	}
	return b
}

// NeedCategories returns the distinct categories of the selected needs.
func (b Bundle) NeedCategories() []NeedCategory {
	seen := make(map[NeedCategory]bool)
	var out []NeedCategory
	for _, n := range b.RelevantNeeds {
		if !seen[n.Category] {
			seen[n.Category] = true
			out = append(out, n.Category)
		}
	}
	return out
}
