package decision

import "fmt"

// Judgment expresses that Item is preferred over Pair with the given Saaty
// intensity. Item, Pair and Criterion accept either an id or a name. A set
// Criterion scopes the judgment to the alternatives under that criterion; an
// empty Criterion compares two criteria instead.
type Judgment struct {
	Item      string
	Pair      string
	Criterion string
	Weight    int
}

// Compare records a single pairwise judgment. Writing a weight other than
// Equal forces the reverse slot to Equal, so at most one direction of any
// pair carries a preference and the last judgment wins. Writing Equal leaves
// the reverse slot untouched.
func (d *Decision) Compare(j Judgment) error {
	d.Fill()

	var comparisonID string
	var itemComps, pairComps []Comparison
	var itemID, pairID string

	if j.Criterion != "" {
		crit := d.resolveCriterion(j.Criterion)
		if crit == nil {
			return &ValidationError{Message: fmt.Sprintf("criterion %q not found", j.Criterion)}
		}
		item := d.resolveAlternative(j.Item)
		pair := d.resolveAlternative(j.Pair)
		if item == nil || pair == nil {
			return &ValidationError{Message: fmt.Sprintf("item %q and/or pair %q not found among alternatives", j.Item, j.Pair)}
		}
		comparisonID = crit.ID
		itemComps, pairComps = item.Comparisons, pair.Comparisons
		itemID, pairID = item.ID, pair.ID
	} else {
		item := d.resolveCriterion(j.Item)
		pair := d.resolveCriterion(j.Pair)
		if item == nil || pair == nil {
			return &ValidationError{Message: fmt.Sprintf("item %q and/or pair %q not found among criteria", j.Item, j.Pair)}
		}
		itemComps, pairComps = item.Comparisons, pair.Comparisons
		itemID, pairID = item.ID, pair.ID
	}

	if !inSaatyScale(j.Weight) {
		return &ValidationError{Message: fmt.Sprintf("weight %d is not on the Saaty scale; valid values are %v", j.Weight, saatyScale)}
	}

	if err := setWeight(itemComps, comparisonID, pairID, j.Weight); err != nil {
		return err
	}
	if j.Weight != Equal {
		if err := setWeight(pairComps, comparisonID, itemID, Equal); err != nil {
			return err
		}
	}
	return nil
}

// setWeight stores w into the measurement slot for pairID inside the
// comparison keyed by criterionID (empty for criteria comparisons). A missing
// slot is an internal invariant violation: Fill guarantees one slot per peer.
func setWeight(comparisons []Comparison, criterionID, pairID string, w int) error {
	var comp *Comparison
	for i := range comparisons {
		if comparisons[i].CriterionID == criterionID {
			comp = &comparisons[i]
			break
		}
	}
	if comp == nil {
		return &ValidationError{Message: fmt.Sprintf("unexpected missing comparison for criterion %q", criterionID)}
	}
	slot := findMeasurement(comp.Measurements, pairID)
	if slot == nil {
		return &ValidationError{Message: fmt.Sprintf("unexpected missing measurement slot for pair %q", pairID)}
	}
	value := w
	slot.Weight = &value
	return nil
}
