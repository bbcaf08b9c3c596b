// Package decision implements the Analytic Hierarchy Process: pairwise
// comparisons on the 1-9 Saaty scale are recorded against a goal's criteria
// and alternatives, and priorities are derived from the principal
// eigenvectors of the resulting reciprocal matrices.
package decision

import "github.com/google/uuid"

const (
	minimumChars     = 3
	minimumItems     = 2
	unknownGoal      = "unknown"
	summaryPrecision = 3

	// Equal is the Saaty weight expressing no preference between a pair.
	Equal = 1

	// GoalColumn and TotalsRow key the aggregate column and row of the
	// summary breakdown table.
	GoalColumn = "Goal"
	TotalsRow  = "Totals"
)

// saatyScale lists every legal pairwise intensity value.
var saatyScale = [...]int{1, 2, 3, 4, 5, 6, 7, 8, 9}

func inSaatyScale(w int) bool {
	for _, v := range saatyScale {
		if w == v {
			return true
		}
	}
	return false
}

// IDFunc produces unique identifiers for decisions, criteria and
// alternatives. The default is uuid.NewString.
type IDFunc func() string

// Measurement is one pairwise judgment slot against a peer entity. A nil
// Weight means the pair has not been judged yet; it is omitted from the wire
// form rather than serialized as null.
type Measurement struct {
	PairID string `json:"pairId"`
	Weight *int   `json:"weight,omitempty"`
}

// Comparison holds the measurement slots for one comparison dimension.
// Criterion comparisons leave CriterionID empty (criteria are compared in a
// single undifferentiated dimension); alternative comparisons carry the id of
// the criterion they are judged under. Priority is the local eigenvector
// weight, attached by Evaluate to alternative comparisons only.
type Comparison struct {
	CriterionID  string        `json:"criterionId,omitempty"`
	Measurements []Measurement `json:"measurements"`
	Priority     *float64      `json:"priority,omitempty"`
}

// Criterion is one dimension the alternatives are judged on. Priority is set
// by Evaluate and is nil until then.
type Criterion struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Comparisons []Comparison `json:"comparisons"`
	Priority    *float64     `json:"priority,omitempty"`
}

// Alternative is one candidate choice. Priority is the overall weighted
// score, set by Evaluate and nil until then.
type Alternative struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Comparisons []Comparison `json:"comparisons"`
	Priority    *float64     `json:"priority,omitempty"`
}

// Summary is the evaluation outcome: the winning alternative plus the
// breakdown table, keyed by alternative name (and TotalsRow) then by
// criterion name (and GoalColumn), each cell rounded to three decimals.
type Summary struct {
	RecommendedChoice string                        `json:"recommendedChoice"`
	Breakdown         map[string]map[string]float64 `json:"breakdown"`
}

// Decision owns a goal, its criteria and its alternatives. All mutation goes
// through AddCriterion/AddAlternative, RemoveCriterion/RemoveAlternative and
// Compare; Fill keeps the comparison skeleton consistent after each one.
// Decisions are not safe for concurrent use.
type Decision struct {
	ID           string         `json:"id"`
	Goal         string         `json:"goal"`
	Criteria     []*Criterion   `json:"criteria"`
	Alternatives []*Alternative `json:"alternatives"`
	Summary      *Summary       `json:"summary,omitempty"`

	gen IDFunc

	// Secondary lookup indexes, rebuilt by Fill after every structural
	// mutation. Resolution by id wins over resolution by name.
	critByID   map[string]*Criterion
	critByName map[string]*Criterion
	altByID    map[string]*Alternative
	altByName  map[string]*Alternative
}

// New constructs an empty decision for the given goal. A nil gen falls back
// to uuid.NewString.
func New(goal string, gen IDFunc) *Decision {
	d := &Decision{Goal: goal, gen: gen}
	d.Fill()
	return d
}

func (d *Decision) nextID() string {
	if d.gen == nil {
		d.gen = uuid.NewString
	}
	return d.gen()
}

func (d *Decision) resolveCriterion(ref string) *Criterion {
	if c, ok := d.critByID[ref]; ok {
		return c
	}
	return d.critByName[ref]
}

func (d *Decision) resolveAlternative(ref string) *Alternative {
	if a, ok := d.altByID[ref]; ok {
		return a
	}
	return d.altByName[ref]
}

func findMeasurement(measurements []Measurement, pairID string) *Measurement {
	for i := range measurements {
		if measurements[i].PairID == pairID {
			return &measurements[i]
		}
	}
	return nil
}

func findComparison(comparisons []Comparison, criterionID string) *Comparison {
	for i := range comparisons {
		if comparisons[i].CriterionID == criterionID {
			return &comparisons[i]
		}
	}
	return nil
}
