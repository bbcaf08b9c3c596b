package decision

import (
	"bytes"
	"testing"
)

func TestJSONOmitsUnsetWeights(t *testing.T) {
	d := newTestDecision(t, "Choose a pet", []string{"Exp", "Edu"}, []string{"Frog", "Eagle"})
	mustCompare(t, d, "Frog", "Eagle", "Exp", 3)

	got, err := d.JSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	// Unjudged slots carry no weight key at all; the judged pair stores 3 on
	// the preferred side and the forced reciprocal 1 on the other.
	expected := `{"id":"1","goal":"Choose a pet",` +
		`"criteria":[` +
		`{"id":"2","name":"Exp","comparisons":[{"measurements":[{"pairId":"3"}]}]},` +
		`{"id":"3","name":"Edu","comparisons":[{"measurements":[{"pairId":"2"}]}]}],` +
		`"alternatives":[` +
		`{"id":"4","name":"Frog","comparisons":[` +
		`{"criterionId":"2","measurements":[{"pairId":"5","weight":3}]},` +
		`{"criterionId":"3","measurements":[{"pairId":"5"}]}]},` +
		`{"id":"5","name":"Eagle","comparisons":[` +
		`{"criterionId":"2","measurements":[{"pairId":"4","weight":1}]},` +
		`{"criterionId":"3","measurements":[{"pairId":"4"}]}]}]}`
	if string(got) != expected {
		t.Fatalf("wire form mismatch:\nexpected %s\ngot      %s", expected, got)
	}
}

func TestLoadRoundTrip(t *testing.T) {
	d := newTestDecision(t, "Choose a pet", []string{"Exp", "Edu"}, []string{"Frog", "Eagle"})
	mustCompare(t, d, "Exp", "Edu", "", 5)
	mustCompare(t, d, "Frog", "Eagle", "Exp", 3)

	data, err := d.JSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	loaded, err := Load(data, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	reencoded, err := loaded.JSON()
	if err != nil {
		t.Fatalf("re-marshal: %v", err)
	}
	if !bytes.Equal(data, reencoded) {
		t.Fatalf("round trip changed the document:\nbefore %s\nafter  %s", data, reencoded)
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	if _, err := Load([]byte(`{"goal":`), nil); err == nil {
		t.Fatal("expected a decode error")
	}
}

func TestEvaluatedDecisionSerializesSummary(t *testing.T) {
	d := newLeaderDecision(t)
	if err := d.Evaluate(); err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	data, err := d.JSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	loaded, err := Load(data, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Summary == nil || loaded.Summary.RecommendedChoice != d.Summary.RecommendedChoice {
		t.Fatalf("summary lost in round trip: %+v", loaded.Summary)
	}
	for _, c := range loaded.Criteria {
		if c.Priority == nil {
			t.Fatalf("criterion %s lost its priority", c.Name)
		}
	}
}
