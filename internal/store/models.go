package store

import (
	"errors"
	"strings"
	"time"

	"ahp-decide/internal/decision"
)

// DecisionRecord persists a decision document. The wire-form JSON is stored
// whole in PayloadJSON; the remaining columns are denormalized from it so
// listings never need to decode payloads.
type DecisionRecord struct {
	ID                string `gorm:"primaryKey;size:64"`
	Goal              string `gorm:"size:255;index"`
	PayloadJSON       string `gorm:"type:text"`
	RecommendedChoice string `gorm:"size:255"`
	Evaluated         bool   `gorm:"index"`
	CriteriaCount     int
	AlternativesCount int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// SetPayload stores the decision wire form and refreshes the denormalized
// columns from it.
func (r *DecisionRecord) SetPayload(d *decision.Decision) error {
	if d == nil {
		return errors.New("decision is nil")
	}
	data, err := d.JSON()
	if err != nil {
		return err
	}
	r.ID = d.ID
	r.Goal = d.Goal
	r.PayloadJSON = string(data)
	r.CriteriaCount = len(d.Criteria)
	r.AlternativesCount = len(d.Alternatives)
	r.Evaluated = d.Summary != nil
	if d.Summary != nil {
		r.RecommendedChoice = d.Summary.RecommendedChoice
	} else {
		r.RecommendedChoice = ""
	}
	return nil
}

// Decision decodes the stored payload back into the engine model.
func (r *DecisionRecord) Decision() (*decision.Decision, error) {
	if strings.TrimSpace(r.PayloadJSON) == "" {
		return nil, errors.New("decision payload is empty")
	}
	return decision.Load([]byte(r.PayloadJSON), nil)
}
