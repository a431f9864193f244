package knowledge

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Catalog holds the fact stores. It is built once and only read afterwards,
// so a single instance is shared by all requests.
type Catalog struct {
	ageFacts      []AgeFact
	evidence      []EvidenceFact
	needs         []Need
	interventions []MicroIntervention
	citations     map[string]Citation
	rng           RandomSource
}

// NewCatalog seeds the stores. A nil rng uses the process-wide source.
func NewCatalog(rng RandomSource) *Catalog {
	if rng == nil {
		rng = NewRandomSource()
	}
	return &Catalog{
		ageFacts:      ageFacts,
		evidence:      evidenceFacts,
		needs:         needs,
		interventions: microInterventions,
		citations:     lo.KeyBy(citations, func(c Citation) string { return c.ID }),
		rng:           rng,
	}
}

// Validate checks the static data: age ranges, keyword sets and citation
// references. It is run at startup.
func (c *Catalog) Validate() error {
	var errs []string

	checkRecord := func(kind, id string, r AgeRange, keywords []string) {
		if r.Min > r.Max {
			errs = append(errs, fmt.Sprintf("%s %s: age min %d > max %d", kind, id, r.Min, r.Max))
		}
		if r.Peak != 0 && (r.Peak < r.Min || r.Peak > r.Max) {
			errs = append(errs, fmt.Sprintf("%s %s: peak %d outside [%d, %d]", kind, id, r.Peak, r.Min, r.Max))
		}
		if len(keywords) == 0 {
			errs = append(errs, fmt.Sprintf("%s %s: no keywords", kind, id))
		}
		for _, k := range keywords {
			if k == "" || k != strings.ToLower(k) {
				errs = append(errs, fmt.Sprintf("%s %s: keyword %q must be non-empty lowercase", kind, id, k))
			}
		}
	}

	for _, f := range c.ageFacts {
		checkRecord("age fact", f.ID, f.Ages, f.Keywords)
	}
	for _, f := range c.evidence {
		checkRecord("evidence fact", f.ID, f.Ages, f.Keywords)
		if _, ok := c.citations[f.CitationID]; !ok {
			errs = append(errs, fmt.Sprintf("evidence fact %s: unknown citation %q", f.ID, f.CitationID))
		}
	}
	for _, n := range c.needs {
		checkRecord("need", n.ID, n.Ages, n.Keywords)
	}
	for _, m := range c.interventions {
		checkRecord("intervention", m.ID, m.Ages, m.Keywords)
	}

	if len(errs) > 0 {
		return errors.New("knowledge catalog errors: " + strings.Join(errs, "; "))
	}
	return nil
}
