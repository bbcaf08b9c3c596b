package decision

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Evaluate derives priorities for every criterion and alternative and builds
// the summary. It refuses to run on an incomplete decision: AssertValid runs
// first and its aggregate failure is returned unchanged, so no partial
// priorities are ever produced.
//
// Criteria priorities come from the principal eigenvector of the criteria
// reciprocal matrix. For each criterion, the alternatives' local priorities
// come from that criterion's reciprocal matrix; the overall priority of an
// alternative is the sum over criteria of local priority times criterion
// priority. Both priority sets sum to one.
func (d *Decision) Evaluate() error {
	if err := d.AssertValid(); err != nil {
		return err
	}

	criteriaMatrix, err := d.criteriaMatrix()
	if err != nil {
		return err
	}
	criteriaWeights, err := principalEigenvector(criteriaMatrix)
	if err != nil {
		return err
	}
	for i, c := range d.Criteria {
		weight := criteriaWeights[i]
		c.Priority = &weight
	}

	for _, a := range d.Alternatives {
		overall := 0.0
		a.Priority = &overall
	}
	for _, crit := range d.Criteria {
		matrix, err := d.alternativeMatrix(crit)
		if err != nil {
			return err
		}
		local, err := principalEigenvector(matrix)
		if err != nil {
			return err
		}
		for i, a := range d.Alternatives {
			weight := local[i]
			comp := findComparison(a.Comparisons, crit.ID)
			comp.Priority = &weight
			*a.Priority += weight * *crit.Priority
		}
	}

	d.Summary = d.buildSummary()
	return nil
}

// criteriaMatrix builds the square reciprocal matrix over criteria. Entry
// (i,j) is weight(i->j)/weight(j->i): dividing the two stored sides keeps the
// result correct even when both were written independently, e.g. through a
// bulk import that bypassed Compare.
func (d *Decision) criteriaMatrix() (*mat.Dense, error) {
	n := len(d.Criteria)
	m := mat.NewDense(n, n, nil)
	for i, row := range d.Criteria {
		for j, col := range d.Criteria {
			if i == j {
				m.Set(i, j, 1)
				continue
			}
			ratio, err := measuredRatio(
				row.Comparisons[0].Measurements, col.ID,
				col.Comparisons[0].Measurements, row.ID,
				entityLabel(row.Name, row.ID), entityLabel(col.Name, col.ID),
			)
			if err != nil {
				return nil, err
			}
			m.Set(i, j, ratio)
		}
	}
	return m, nil
}

// alternativeMatrix builds the reciprocal matrix over alternatives restricted
// to the given criterion's measurements.
func (d *Decision) alternativeMatrix(crit *Criterion) (*mat.Dense, error) {
	n := len(d.Alternatives)
	m := mat.NewDense(n, n, nil)
	for i, row := range d.Alternatives {
		for j, col := range d.Alternatives {
			if i == j {
				m.Set(i, j, 1)
				continue
			}
			rowComp := findComparison(row.Comparisons, crit.ID)
			colComp := findComparison(col.Comparisons, crit.ID)
			if rowComp == nil || colComp == nil {
				return nil, &ValidationError{Message: fmt.Sprintf("unexpected missing comparison under criterion %s", entityLabel(crit.Name, crit.ID))}
			}
			ratio, err := measuredRatio(
				rowComp.Measurements, col.ID,
				colComp.Measurements, row.ID,
				entityLabel(row.Name, row.ID), entityLabel(col.Name, col.ID),
			)
			if err != nil {
				return nil, err
			}
			m.Set(i, j, ratio)
		}
	}
	return m, nil
}

func measuredRatio(forward []Measurement, forwardPair string, backward []Measurement, backwardPair, rowLabel, colLabel string) (float64, error) {
	f := findMeasurement(forward, forwardPair)
	b := findMeasurement(backward, backwardPair)
	if f == nil || f.Weight == nil || b == nil || b.Weight == nil {
		return 0, &ValidationError{Message: fmt.Sprintf("unexpected missing weight between %s and %s", rowLabel, colLabel)}
	}
	return float64(*f.Weight) / float64(*b.Weight), nil
}

// buildSummary assembles the breakdown table. Each cell is the alternative's
// local priority under the criterion scaled by the criterion's own priority;
// the GoalColumn holds the overall priority and the TotalsRow sums each
// column. Ties for the recommendation go to the earliest alternative.
func (d *Decision) buildSummary() *Summary {
	breakdown := make(map[string]map[string]float64, len(d.Alternatives)+1)
	totals := make(map[string]float64, len(d.Criteria)+1)
	best := d.Alternatives[0]

	for _, a := range d.Alternatives {
		row := make(map[string]float64, len(d.Criteria)+1)
		for _, crit := range d.Criteria {
			comp := findComparison(a.Comparisons, crit.ID)
			cell := roundTo((*comp.Priority)*(*crit.Priority), summaryPrecision)
			row[crit.Name] = cell
			totals[crit.Name] += cell
		}
		goal := roundTo(*a.Priority, summaryPrecision)
		row[GoalColumn] = goal
		totals[GoalColumn] += goal
		breakdown[a.Name] = row
		if *a.Priority > *best.Priority {
			best = a
		}
	}

	totalsRow := make(map[string]float64, len(totals))
	for column, sum := range totals {
		totalsRow[column] = roundTo(sum, summaryPrecision)
	}
	breakdown[TotalsRow] = totalsRow

	return &Summary{RecommendedChoice: best.Name, Breakdown: breakdown}
}

// BreakdownRows returns the summary row keys in presentation order:
// alternatives as declared, then the totals row.
func (d *Decision) BreakdownRows() []string {
	rows := make([]string, 0, len(d.Alternatives)+1)
	for _, a := range d.Alternatives {
		rows = append(rows, a.Name)
	}
	return append(rows, TotalsRow)
}

// BreakdownColumns returns the summary column keys in presentation order:
// criteria as declared, then the goal column.
func (d *Decision) BreakdownColumns() []string {
	columns := make([]string, 0, len(d.Criteria)+1)
	for _, c := range d.Criteria {
		columns = append(columns, c.Name)
	}
	return append(columns, GoalColumn)
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
