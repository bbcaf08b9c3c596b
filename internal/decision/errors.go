package decision

import (
	"fmt"
	"strings"
)

// Kind labels the category of a validation defect.
type Kind string

// The closed set of completeness defects reported by Validate.
const (
	KindInsufficientCriteria          Kind = "InsufficientCriteria"
	KindInsufficientAlternatives      Kind = "InsufficientAlternatives"
	KindMissingDecisionID             Kind = "MissingDecisionId"
	KindMissingDecisionGoal           Kind = "MissingDecisionGoal"
	KindMissingCriterionID            Kind = "MissingCriterionId"
	KindMissingCriterionName          Kind = "MissingCriterionName"
	KindMissingCriterionComparisons   Kind = "MissingCriterionComparisons"
	KindMissingCriterionMeasurement   Kind = "MissingCriterionMeasurement"
	KindMissingAlternativeID          Kind = "MissingAlternativeId"
	KindMissingAlternativeName        Kind = "MissingAlternativeName"
	KindMissingAlternativeComparisons Kind = "MissingAlternativeComparisons"
	KindMissingAlternativeComparison  Kind = "MissingAlternativeComparison"
	KindMissingAlternativeMeasurement Kind = "MissingAlternativeMeasurement"
)

// Error marks failures raised by the decision engine.
type Error interface {
	error
	engineError()
}

var (
	_ Error = (*ValidationError)(nil)
	_ Error = ValidationErrors(nil)
)

// ValidationError reports a single contract or completeness violation. Kind
// is set for defects found by Validate; fail-fast errors from Add/Compare
// carry only a message.
type ValidationError struct {
	Kind    Kind   `json:"kind,omitempty"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) engineError() {}

func newValidationError(kind Kind, format string, args ...any) *ValidationError {
	return &ValidationError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// ValidationErrors aggregates every defect found by a validation pass.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, v := range e {
		msgs = append(msgs, v.Message)
	}
	return "invalid decision: " + strings.Join(msgs, "; ")
}

func (e ValidationErrors) engineError() {}

// Messages returns the individual defect descriptions.
func (e ValidationErrors) Messages() []string {
	msgs := make([]string, 0, len(e))
	for _, v := range e {
		msgs = append(msgs, v.Message)
	}
	return msgs
}
