package commonModels

import (
	"encoding/json"
	"testing"
)

func TestRelevanceLevelOrder(t *testing.T) {
	if !(NotRelevant < Low && Low < Medium && Medium < High) {
		t.Fatal("relevance levels are not totally ordered")
	}
}

func TestParseRelevanceLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    RelevanceLevel
		wantErr bool
	}{
		{"high", High, false},
		{"MEDIUM", Medium, false},
		{"low", Low, false},
		{"not_relevant", NotRelevant, false},
		{"critical", NotRelevant, true},
	}
	for _, tt := range tests {
		got, err := ParseRelevanceLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRelevanceLevel(%q) err = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseRelevanceLevel(%q) = %v; want %v", tt.in, got, tt.want)
		}
	}
}

func TestRelevanceLevelJSON(t *testing.T) {
	type wrapper struct {
		Level RelevanceLevel `json:"level"`
	}
	data, err := json.Marshal(wrapper{Level: Medium})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"level":"medium"}` {
		t.Errorf("got %s", data)
	}

	var w wrapper
	if err := json.Unmarshal([]byte(`{"level":"low"}`), &w); err != nil {
		t.Fatal(err)
	}
	if w.Level != Low {
		t.Errorf("got %v, want low", w.Level)
	}
	if err := json.Unmarshal([]byte(`{"level":"bogus"}`), &w); err == nil {
		t.Error("expected error for unknown level")
	}
}
