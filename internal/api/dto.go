package api

import (
	"time"

	"ahp-decide/internal/store"
)

// DecisionDTO is the listing representation of a stored decision.
type DecisionDTO struct {
	ID                string    `json:"id"`
	Goal              string    `json:"goal"`
	Criteria          int       `json:"criteria"`
	Alternatives      int       `json:"alternatives"`
	Evaluated         bool      `json:"evaluated"`
	RecommendedChoice string    `json:"recommended_choice,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// FromRecord converts a store.DecisionRecord into the DTO representation.
func FromRecord(r store.DecisionRecord) DecisionDTO {
	return DecisionDTO{
		ID:                r.ID,
		Goal:              r.Goal,
		Criteria:          r.CriteriaCount,
		Alternatives:      r.AlternativesCount,
		Evaluated:         r.Evaluated,
		RecommendedChoice: r.RecommendedChoice,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

// DecisionsResponse is the paginated listing payload.
type DecisionsResponse struct {
	Items []DecisionDTO `json:"items"`
	Total int64         `json:"total"`
}

// CreateDecisionRequest seeds a new decision. Criteria and alternatives are
// optional shortcuts for adding named items in one call.
type CreateDecisionRequest struct {
	Goal         string   `json:"goal"`
	Criteria     []string `json:"criteria"`
	Alternatives []string `json:"alternatives"`
}

// ItemRequest names a criterion or alternative to add.
type ItemRequest struct {
	Name string `json:"name"`
}

// CompareRequest records one pairwise judgment. Item, Pair and Criterion
// accept ids or names; Criterion present selects alternative-comparison mode.
type CompareRequest struct {
	Item      string `json:"item"`
	Pair      string `json:"pair"`
	Criterion string `json:"criterion,omitempty"`
	Weight    int    `json:"weight"`
}
