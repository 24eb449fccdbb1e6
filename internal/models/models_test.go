package models

import (
	"encoding/json"
	"math"
	"testing"
)

func TestConfidence_UnmarshalNormalizesScale(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"0.82", 0.82},
		{"82", 0.82},
		{"100", 1},
		{"1", 1},
		{"0", 0},
		{"null", 0},
		{"-5", 0},
		{"250", 1},
	}
	for _, tt := range tests {
		var c Confidence
		if err := json.Unmarshal([]byte(tt.raw), &c); err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.raw, err)
		}
		if math.Abs(float64(c)-tt.want) > 1e-9 {
			t.Errorf("%s: expected %v, got %v", tt.raw, tt.want, float64(c))
		}
	}
}

func TestConfidence_RejectsNonNumbers(t *testing.T) {
	var c Confidence
	if err := json.Unmarshal([]byte(`"high"`), &c); err == nil {
		t.Fatal("expected error for string confidence")
	}
}

func TestRecommendation_TeamAndMarketTogether(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		hasPick    bool
		team       string
		confidence Confidence
	}{
		{"both present", `{"team":"Arsenal","market":"2UP","confidence":72,"reasons":["form"]}`, true, "Arsenal", 0.72},
		{"both null", `{"team":null,"market":null,"confidence":40}`, false, "", 0.4},
		{"team only", `{"team":"Arsenal","confidence":72}`, false, "", 0.72},
		{"market only", `{"market":"1UP","confidence":72}`, false, "", 0.72},
		{"empty team", `{"team":"","market":"1UP","confidence":72}`, false, "", 0.72},
		{"one percent", `{"team":"A","market":"1UP","confidence":1}`, true, "A", 0.01},
		{"half a percent", `{"team":"A","market":"1UP","confidence":0.5}`, true, "A", 0.005},
		{"over 100 clamps", `{"team":"A","market":"1UP","confidence":120}`, true, "A", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Recommendation
			if err := json.Unmarshal([]byte(tt.raw), &r); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.HasPick() != tt.hasPick {
				t.Errorf("expected HasPick %v, got %v", tt.hasPick, r.HasPick())
			}
			if r.Team != tt.team {
				t.Errorf("expected team %q, got %q", tt.team, r.Team)
			}
			if !tt.hasPick && r.Market != "" {
				t.Errorf("expected market cleared, got %q", r.Market)
			}
			if math.Abs(float64(r.Confidence-tt.confidence)) > 1e-9 {
				t.Errorf("expected confidence %v, got %v", tt.confidence, r.Confidence)
			}
		})
	}
}

func TestMatchesResponse_AllFlattensByLeague(t *testing.T) {
	raw := `{
		"totalMatches": 3,
		"leagues": ["La Liga", "Premier League"],
		"byLeague": {
			"Premier League": [{"id":"p1"},{"id":"p2"}],
			"La Liga": [{"id":"l1"}]
		}
	}`
	var resp MatchesResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	all := resp.All()
	want := []string{"l1", "p1", "p2"}
	if len(all) != len(want) {
		t.Fatalf("expected %d matches, got %d", len(want), len(all))
	}
	for i, id := range want {
		if all[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, all[i].ID)
		}
	}
}

func TestMatchesResponse_AllPrefersFlatList(t *testing.T) {
	resp := &MatchesResponse{
		Matches:  []MatchAnalysis{{ID: "a"}},
		Leagues:  []string{"Serie A"},
		ByLeague: map[string][]MatchAnalysis{"Serie A": {{ID: "b"}}},
	}
	all := resp.All()
	if len(all) != 1 || all[0].ID != "a" {
		t.Fatalf("expected flat list to win, got %+v", all)
	}

	var nilResp *MatchesResponse
	if nilResp.All() != nil {
		t.Error("expected nil for nil response")
	}
}
