package decision

import "strings"

// Fill completes the structural skeleton of the decision: it assigns missing
// ids, defaults an empty goal, coerces nil collections, and rebuilds every
// comparison so each criterion holds exactly one measurement slot per other
// criterion and each alternative holds one comparison per criterion with one
// slot per other alternative. Weights recorded against peers that still exist
// are preserved; slots for removed peers are dropped. Fill is deterministic
// and idempotent, and runs after every structural mutation and at the start
// of every Compare.
func (d *Decision) Fill() {
	if d.ID == "" {
		d.ID = d.nextID()
	}
	if strings.TrimSpace(d.Goal) == "" {
		d.Goal = unknownGoal
	}
	if d.Criteria == nil {
		d.Criteria = []*Criterion{}
	}
	if d.Alternatives == nil {
		d.Alternatives = []*Alternative{}
	}
	for _, c := range d.Criteria {
		if c.ID == "" {
			c.ID = d.nextID()
		}
	}
	for _, a := range d.Alternatives {
		if a.ID == "" {
			a.ID = d.nextID()
		}
	}

	criterionIDs := make([]string, 0, len(d.Criteria))
	for _, c := range d.Criteria {
		criterionIDs = append(criterionIDs, c.ID)
	}
	alternativeIDs := make([]string, 0, len(d.Alternatives))
	for _, a := range d.Alternatives {
		alternativeIDs = append(alternativeIDs, a.ID)
	}

	for _, c := range d.Criteria {
		var prev Comparison
		if len(c.Comparisons) > 0 {
			prev = c.Comparisons[0]
		}
		c.Comparisons = []Comparison{{
			Measurements: rebuildSlots(c.ID, criterionIDs, prev.Measurements),
			Priority:     prev.Priority,
		}}
	}

	for _, a := range d.Alternatives {
		rebuilt := make([]Comparison, 0, len(d.Criteria))
		for _, crit := range d.Criteria {
			var prev Comparison
			if existing := findComparison(a.Comparisons, crit.ID); existing != nil {
				prev = *existing
			}
			rebuilt = append(rebuilt, Comparison{
				CriterionID:  crit.ID,
				Measurements: rebuildSlots(a.ID, alternativeIDs, prev.Measurements),
				Priority:     prev.Priority,
			})
		}
		a.Comparisons = rebuilt
	}

	d.reindex()
}

// rebuildSlots returns one measurement slot per peer, in peer order, carrying
// over any weight already recorded for a still-valid pair. The entity never
// holds a slot against itself.
func rebuildSlots(selfID string, peerIDs []string, prev []Measurement) []Measurement {
	slots := make([]Measurement, 0, len(peerIDs))
	for _, id := range peerIDs {
		if id == selfID {
			continue
		}
		slot := Measurement{PairID: id}
		if existing := findMeasurement(prev, id); existing != nil {
			slot.Weight = existing.Weight
		}
		slots = append(slots, slot)
	}
	return slots
}

func (d *Decision) reindex() {
	d.critByID = make(map[string]*Criterion, len(d.Criteria))
	d.critByName = make(map[string]*Criterion, len(d.Criteria))
	for _, c := range d.Criteria {
		d.critByID[c.ID] = c
		if c.Name != "" {
			d.critByName[c.Name] = c
		}
	}
	d.altByID = make(map[string]*Alternative, len(d.Alternatives))
	d.altByName = make(map[string]*Alternative, len(d.Alternatives))
	for _, a := range d.Alternatives {
		d.altByID[a.ID] = a
		if a.Name != "" {
			d.altByName[a.Name] = a
		}
	}
}
