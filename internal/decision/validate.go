package decision

import "strings"

// Report is the non-throwing output of Validate: every defect found, never
// just the first.
type Report struct {
	Valid  bool               `json:"valid"`
	Errors []*ValidationError `json:"errors"`
}

// Validate checks the decision for completeness: ids and names present,
// enough criteria and alternatives, and every pairwise slot judged with a
// weight on the Saaty scale. Defects accumulate independently so a caller
// can present the full punch-list.
func (d *Decision) Validate() Report {
	var errs []*ValidationError
	add := func(kind Kind, format string, args ...any) {
		errs = append(errs, newValidationError(kind, format, args...))
	}

	if strings.TrimSpace(d.ID) == "" {
		add(KindMissingDecisionID, "decision has no id")
	}
	if len(strings.TrimSpace(d.Goal)) < minimumChars {
		add(KindMissingDecisionGoal, "decision goal must be at least %d characters", minimumChars)
	}
	if len(d.Criteria) < minimumItems {
		add(KindInsufficientCriteria, "at least %d criteria are required, found %d", minimumItems, len(d.Criteria))
	}
	if len(d.Alternatives) < minimumItems {
		add(KindInsufficientAlternatives, "at least %d alternatives are required, found %d", minimumItems, len(d.Alternatives))
	}

	for _, c := range d.Criteria {
		label := entityLabel(c.Name, c.ID)
		if strings.TrimSpace(c.ID) == "" {
			add(KindMissingCriterionID, "criterion %s has no id", label)
		}
		if len(strings.TrimSpace(c.Name)) < minimumChars {
			add(KindMissingCriterionName, "criterion %s needs a name of at least %d characters", label, minimumChars)
		}
		if len(c.Comparisons) != 1 {
			add(KindMissingCriterionComparisons, "criterion %s must carry exactly one comparison set", label)
			continue
		}
		for _, other := range d.Criteria {
			if other.ID == c.ID {
				continue
			}
			m := findMeasurement(c.Comparisons[0].Measurements, other.ID)
			if m == nil || m.Weight == nil || !inSaatyScale(*m.Weight) {
				add(KindMissingCriterionMeasurement, "criterion %s has no valid weighting against %s", label, entityLabel(other.Name, other.ID))
			}
		}
	}

	for _, a := range d.Alternatives {
		label := entityLabel(a.Name, a.ID)
		if strings.TrimSpace(a.ID) == "" {
			add(KindMissingAlternativeID, "alternative %s has no id", label)
		}
		if len(strings.TrimSpace(a.Name)) < minimumChars {
			add(KindMissingAlternativeName, "alternative %s needs a name of at least %d characters", label, minimumChars)
		}
		if len(a.Comparisons) != len(d.Criteria) {
			add(KindMissingAlternativeComparisons, "alternative %s must carry one comparison set per criterion", label)
		}
		for _, crit := range d.Criteria {
			comp := findComparison(a.Comparisons, crit.ID)
			if comp == nil {
				add(KindMissingAlternativeComparison, "alternative %s has no comparison set for criterion %s", label, entityLabel(crit.Name, crit.ID))
				continue
			}
			for _, other := range d.Alternatives {
				if other.ID == a.ID {
					continue
				}
				m := findMeasurement(comp.Measurements, other.ID)
				if m == nil || m.Weight == nil || !inSaatyScale(*m.Weight) {
					add(KindMissingAlternativeMeasurement, "alternative %s has no valid weighting against %s under criterion %s",
						label, entityLabel(other.Name, other.ID), entityLabel(crit.Name, crit.ID))
				}
			}
		}
	}

	return Report{Valid: len(errs) == 0, Errors: errs}
}

// AssertValid returns every accumulated defect as a single aggregate error,
// or nil when the decision is complete.
func (d *Decision) AssertValid() error {
	report := d.Validate()
	if report.Valid {
		return nil
	}
	return ValidationErrors(report.Errors)
}

func entityLabel(name, id string) string {
	if strings.TrimSpace(name) != "" {
		return name
	}
	if strings.TrimSpace(id) != "" {
		return id
	}
	return "(unnamed)"
}
