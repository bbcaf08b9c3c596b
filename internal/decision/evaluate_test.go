package decision

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

const sumTolerance = 1e-9

// newLeaderDecision builds the classic choose-a-leader fixture: four criteria,
// three alternatives, fully judged. Its priorities are well known, which makes
// it a good end-to-end probe of the matrix and eigenvector pipeline.
func newLeaderDecision(t *testing.T) *Decision {
	t.Helper()
	d := newTestDecision(t, "choose the most suitable leader",
		[]string{"Experience", "Education", "Charisma", "Age"},
		[]string{"Tom", "Dick", "Harry"})

	mustCompare(t, d, "Experience", "Education", "", 4)
	mustCompare(t, d, "Experience", "Charisma", "", 3)
	mustCompare(t, d, "Experience", "Age", "", 7)
	mustCompare(t, d, "Charisma", "Education", "", 3)
	mustCompare(t, d, "Education", "Age", "", 3)
	mustCompare(t, d, "Charisma", "Age", "", 5)

	mustCompare(t, d, "Dick", "Tom", "Experience", 4)
	mustCompare(t, d, "Tom", "Harry", "Experience", 4)
	mustCompare(t, d, "Dick", "Harry", "Experience", 9)

	mustCompare(t, d, "Tom", "Dick", "Education", 3)
	mustCompare(t, d, "Harry", "Tom", "Education", 5)
	mustCompare(t, d, "Harry", "Dick", "Education", 7)

	mustCompare(t, d, "Tom", "Dick", "Charisma", 5)
	mustCompare(t, d, "Tom", "Harry", "Charisma", 9)
	mustCompare(t, d, "Dick", "Harry", "Charisma", 4)

	mustCompare(t, d, "Dick", "Tom", "Age", 3)
	mustCompare(t, d, "Tom", "Harry", "Age", 5)
	mustCompare(t, d, "Dick", "Harry", "Age", 9)

	return d
}

func TestEvaluateRefusesIncompleteDecision(t *testing.T) {
	d := newTestDecision(t, "choose a hire", []string{"Exp", "Edu"}, []string{"Tom", "Dick"})

	err := d.Evaluate()
	if err == nil {
		t.Fatal("expected evaluation to fail before any matrix math runs")
	}
	var aggregate ValidationErrors
	if !errors.As(err, &aggregate) {
		t.Fatalf("expected the aggregate validation failure, got %T", err)
	}
	for _, c := range d.Criteria {
		if c.Priority != nil {
			t.Fatal("no partial priorities may be produced on failure")
		}
	}
	if d.Summary != nil {
		t.Fatal("no summary may be produced on failure")
	}
}

func TestEvaluatePrioritiesSumToOne(t *testing.T) {
	d := newLeaderDecision(t)
	if err := d.Evaluate(); err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	var criteriaSum, alternativesSum float64
	for _, c := range d.Criteria {
		if c.Priority == nil {
			t.Fatalf("criterion %s has no priority", c.Name)
		}
		criteriaSum += *c.Priority
	}
	for _, a := range d.Alternatives {
		if a.Priority == nil {
			t.Fatalf("alternative %s has no priority", a.Name)
		}
		alternativesSum += *a.Priority
	}
	if math.Abs(criteriaSum-1) > sumTolerance {
		t.Fatalf("criteria priorities sum to %.12f", criteriaSum)
	}
	if math.Abs(alternativesSum-1) > sumTolerance {
		t.Fatalf("alternative priorities sum to %.12f", alternativesSum)
	}

	for _, crit := range d.Criteria {
		var localSum float64
		for _, a := range d.Alternatives {
			comp := findComparison(a.Comparisons, crit.ID)
			if comp.Priority == nil {
				t.Fatalf("alternative %s has no local priority under %s", a.Name, crit.Name)
			}
			localSum += *comp.Priority
		}
		if math.Abs(localSum-1) > sumTolerance {
			t.Fatalf("local priorities under %s sum to %.12f", crit.Name, localSum)
		}
	}
}

func TestEvaluateLeaderFixture(t *testing.T) {
	d := newLeaderDecision(t)
	if err := d.Evaluate(); err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	expectedCriteria := map[string]float64{
		"Experience": 0.547,
		"Education":  0.127,
		"Charisma":   0.270,
		"Age":        0.056,
	}
	for _, c := range d.Criteria {
		if math.Abs(*c.Priority-expectedCriteria[c.Name]) > 0.001 {
			t.Errorf("criterion %s: expected %.3f got %.4f", c.Name, expectedCriteria[c.Name], *c.Priority)
		}
	}

	expectedAlternatives := map[string]float64{
		"Tom":   0.358,
		"Dick":  0.492,
		"Harry": 0.149,
	}
	for _, a := range d.Alternatives {
		if math.Abs(*a.Priority-expectedAlternatives[a.Name]) > 0.001 {
			t.Errorf("alternative %s: expected %.3f got %.4f", a.Name, expectedAlternatives[a.Name], *a.Priority)
		}
	}
}

func TestEvaluateBuildsSummary(t *testing.T) {
	d := newLeaderDecision(t)
	if err := d.Evaluate(); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if d.Summary == nil {
		t.Fatal("expected a summary")
	}
	if d.Summary.RecommendedChoice != "Dick" {
		t.Fatalf("expected Dick to be recommended, got %s", d.Summary.RecommendedChoice)
	}

	for _, row := range d.BreakdownRows() {
		cells, ok := d.Summary.Breakdown[row]
		if !ok {
			t.Fatalf("breakdown row %s missing", row)
		}
		for _, column := range d.BreakdownColumns() {
			if _, ok := cells[column]; !ok {
				t.Fatalf("breakdown cell %s/%s missing", row, column)
			}
		}
	}

	// Each goal cell is the rounded overall priority; the totals column is
	// within rounding error of one.
	for _, a := range d.Alternatives {
		cell := d.Summary.Breakdown[a.Name][GoalColumn]
		if math.Abs(cell-roundTo(*a.Priority, summaryPrecision)) > sumTolerance {
			t.Fatalf("goal cell for %s is %.4f, priority %.4f", a.Name, cell, *a.Priority)
		}
	}
	if total := d.Summary.Breakdown[TotalsRow][GoalColumn]; math.Abs(total-1) > 0.005 {
		t.Fatalf("goal totals should approximate 1, got %.4f", total)
	}
}

func TestPrincipalEigenvector(t *testing.T) {
	// A perfectly consistent 2x2 reciprocal matrix has the closed-form
	// priority vector (w/(w+1), 1/(w+1)).
	m := mat.NewDense(2, 2, []float64{1, 3, 1.0 / 3.0, 1})
	vec, err := principalEigenvector(m)
	if err != nil {
		t.Fatalf("eigenvector: %v", err)
	}
	if math.Abs(vec[0]-0.75) > 1e-9 || math.Abs(vec[1]-0.25) > 1e-9 {
		t.Fatalf("expected [0.75 0.25], got %v", vec)
	}
}
