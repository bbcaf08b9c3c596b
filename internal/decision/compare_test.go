package decision

import (
	"errors"
	"testing"
)

func TestCompareScaleMembership(t *testing.T) {
	for w := 1; w <= 9; w++ {
		d := newTestDecision(t, "weekend trip", []string{"Cost", "Fun"}, []string{"Coast", "Hills"})
		if err := d.Compare(Judgment{Item: "Cost", Pair: "Fun", Weight: w}); err != nil {
			t.Fatalf("weight %d should be accepted: %v", w, err)
		}
	}

	d := newTestDecision(t, "weekend trip", []string{"Cost", "Fun"}, []string{"Coast", "Hills"})
	for _, w := range []int{0, 10, -1, -9, 100} {
		err := d.Compare(Judgment{Item: "Cost", Pair: "Fun", Weight: w})
		if err == nil {
			t.Fatalf("weight %d should be rejected", w)
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("weight %d: expected ValidationError, got %T", w, err)
		}
	}
}

func TestCompareEnforcesReciprocal(t *testing.T) {
	d := newTestDecision(t, "weekend trip", []string{"Cost", "Fun"}, []string{"Coast", "Hills"})

	mustCompare(t, d, "Cost", "Fun", "", 3)
	if w := weightBetween(t, d, "Cost", "Fun", ""); w == nil || *w != 3 {
		t.Fatalf("forward weight not stored: %v", w)
	}
	if w := weightBetween(t, d, "Fun", "Cost", ""); w == nil || *w != 1 {
		t.Fatalf("reverse weight not forced to 1: %v", w)
	}

	// Last judgment wins: reversing the preference flips the stored pair.
	mustCompare(t, d, "Fun", "Cost", "", 7)
	if w := weightBetween(t, d, "Fun", "Cost", ""); w == nil || *w != 7 {
		t.Fatalf("new forward weight not stored: %v", w)
	}
	if w := weightBetween(t, d, "Cost", "Fun", ""); w == nil || *w != 1 {
		t.Fatalf("old forward weight not overwritten with 1: %v", w)
	}

	// Writing Equal leaves the reverse side untouched.
	mustCompare(t, d, "Cost", "Fun", "", 1)
	if w := weightBetween(t, d, "Fun", "Cost", ""); w == nil || *w != 7 {
		t.Fatalf("reverse weight should be untouched by an Equal write: %v", w)
	}
}

func TestCompareAlternativeMode(t *testing.T) {
	d := newTestDecision(t, "weekend trip", []string{"Cost", "Fun"}, []string{"Coast", "Hills"})

	mustCompare(t, d, "Hills", "Coast", "Cost", 5)
	if w := weightBetween(t, d, "Hills", "Coast", "Cost"); w == nil || *w != 5 {
		t.Fatalf("alternative weight not stored: %v", w)
	}
	if w := weightBetween(t, d, "Coast", "Hills", "Cost"); w == nil || *w != 1 {
		t.Fatalf("reverse alternative weight not forced to 1: %v", w)
	}
	// Judgments are scoped per criterion.
	if w := weightBetween(t, d, "Hills", "Coast", "Fun"); w != nil {
		t.Fatalf("judgment leaked across criteria: %d", *w)
	}
}

func TestCompareUnknownReferences(t *testing.T) {
	d := newTestDecision(t, "weekend trip", []string{"Cost", "Fun"}, []string{"Coast", "Hills"})

	tests := []struct {
		name     string
		judgment Judgment
	}{
		{"unknown criterion", Judgment{Item: "Coast", Pair: "Hills", Criterion: "Nope", Weight: 3}},
		{"unknown item", Judgment{Item: "Nope", Pair: "Fun", Weight: 3}},
		{"unknown pair", Judgment{Item: "Cost", Pair: "Nope", Weight: 3}},
		{"alternative as criterion item", Judgment{Item: "Coast", Pair: "Fun", Weight: 3}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := d.Compare(tc.judgment)
			if err == nil {
				t.Fatal("expected an error")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
		})
	}
}

func TestCompareResolvesByID(t *testing.T) {
	d := newTestDecision(t, "weekend trip", []string{"Cost", "Fun"}, []string{"Coast", "Hills"})
	cost := d.resolveCriterion("Cost")
	fun := d.resolveCriterion("Fun")

	mustCompare(t, d, cost.ID, fun.ID, "", 4)
	if w := weightBetween(t, d, "Cost", "Fun", ""); w == nil || *w != 4 {
		t.Fatalf("comparison by id failed: %v", w)
	}
}

func TestFullyComparedDecisionValidates(t *testing.T) {
	d := newTestDecision(t, "choose a hire", []string{"Exp", "Edu"}, []string{"Tom", "Dick"})

	mustCompare(t, d, "Exp", "Edu", "", 3)
	mustCompare(t, d, "Dick", "Tom", "Exp", 3)
	mustCompare(t, d, "Tom", "Dick", "Edu", 3)

	report := d.Validate()
	if !report.Valid {
		t.Fatalf("expected a valid decision, got defects: %v", report.Errors)
	}
}
