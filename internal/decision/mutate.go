package decision

import (
	"fmt"
	"strings"
)

// AddCriterion appends a new criterion. The name is required and must not
// duplicate an existing criterion name (case-sensitive). The comparison
// skeleton is rebuilt before returning.
func (d *Decision) AddCriterion(c Criterion) error {
	if strings.TrimSpace(c.Name) == "" {
		return &ValidationError{Message: "a criterion name is required"}
	}
	for _, existing := range d.Criteria {
		if existing.Name == c.Name {
			return &ValidationError{Message: fmt.Sprintf("criterion %q already exists", c.Name)}
		}
	}
	added := c
	d.Criteria = append(d.Criteria, &added)
	d.Fill()
	return nil
}

// AddAlternative appends a new alternative under the same rules as
// AddCriterion.
func (d *Decision) AddAlternative(a Alternative) error {
	if strings.TrimSpace(a.Name) == "" {
		return &ValidationError{Message: "an alternative name is required"}
	}
	for _, existing := range d.Alternatives {
		if existing.Name == a.Name {
			return &ValidationError{Message: fmt.Sprintf("alternative %q already exists", a.Name)}
		}
	}
	added := a
	d.Alternatives = append(d.Alternatives, &added)
	d.Fill()
	return nil
}

// RemoveCriterion deletes the criterion matching the given id or name.
// Unknown references are a no-op. Weights other items recorded against the
// removed criterion are discarded when the skeleton is rebuilt.
func (d *Decision) RemoveCriterion(ref string) {
	target := d.resolveCriterion(ref)
	if target == nil {
		return
	}
	kept := make([]*Criterion, 0, len(d.Criteria)-1)
	for _, c := range d.Criteria {
		if c != target {
			kept = append(kept, c)
		}
	}
	d.Criteria = kept
	d.Fill()
}

// RemoveAlternative deletes the alternative matching the given id or name,
// with the same no-op and pruning semantics as RemoveCriterion.
func (d *Decision) RemoveAlternative(ref string) {
	target := d.resolveAlternative(ref)
	if target == nil {
		return
	}
	kept := make([]*Alternative, 0, len(d.Alternatives)-1)
	for _, a := range d.Alternatives {
		if a != target {
			kept = append(kept, a)
		}
	}
	d.Alternatives = kept
	d.Fill()
}
