package decision

import (
	"encoding/json"
	"fmt"
)

// Load builds a decision from its JSON wire form and completes the skeleton,
// so the result always satisfies the structural invariants regardless of how
// partial the input was. A nil gen falls back to uuid.NewString.
func Load(data []byte, gen IDFunc) (*Decision, error) {
	var d Decision
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode decision: %w", err)
	}
	d.gen = gen
	d.Fill()
	return &d, nil
}

// JSON serializes the decision in its wire form. Unjudged measurement slots
// omit the weight key entirely; priorities and the summary appear only after
// a successful Evaluate.
func (d *Decision) JSON() ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode decision: %w", err)
	}
	return data, nil
}
