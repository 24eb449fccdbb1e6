package derive

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/omarshaarawi/scorebot/internal/models"
)

func TestScoreBand_Boundaries(t *testing.T) {
	tests := []struct {
		pct  float64
		want Band
	}{
		{0, BandLow},
		{49, BandLow},
		{49.99, BandLow},
		{50, BandMedium},
		{59, BandMedium},
		{59.99, BandMedium},
		{60, BandHigh},
		{61, BandHigh},
		{100, BandHigh},
	}
	for _, tt := range tests {
		if got := ScoreBand(tt.pct); got != tt.want {
			t.Errorf("ScoreBand(%v): expected %s, got %s", tt.pct, tt.want, got)
		}
	}
}

func TestConfidenceBand_Boundaries(t *testing.T) {
	tests := []struct {
		c    models.Confidence
		want Band
	}{
		{0, BandLow},
		{0.649, BandLow},
		{0.65, BandMid},
		{0.749, BandMid},
		{0.75, BandHigh},
		{1, BandHigh},
	}
	for _, tt := range tests {
		if got := ConfidenceBand(tt.c); got != tt.want {
			t.Errorf("ConfidenceBand(%v): expected %s, got %s", tt.c, tt.want, got)
		}
	}
}

const fixtureMatches = `{
	"lastUpdated": "2025-03-01T08:00:00Z",
	"totalMatches": 4,
	"matches": [
		{"id":"m1","homeTeam":"Arsenal","awayTeam":"Brighton","league":"Premier League","kickoff":"2025-03-01T15:00:00Z",
		 "home2UP":64,"away2UP":31,"home1UP":71,"away1UP":40,
		 "recommendation":{"team":"Arsenal","market":"2UP","confidence":72,"reasons":["home form"]}},
		{"id":"m2","homeTeam":"Getafe","awayTeam":"Real Madrid","league":"La Liga","kickoff":"2025-03-01T20:00:00Z",
		 "home2UP":22,"away2UP":55,"home1UP":30,"away1UP":58,
		 "recommendation":{"team":"Real Madrid","market":"1UP","confidence":55}},
		{"id":"m3","homeTeam":"Liverpool","awayTeam":"Burnley","league":"Premier League","kickoff":"2025-03-02T14:00:00Z",
		 "home2UP":70,"away2UP":12,"home1UP":75,"away1UP":20,
		 "recommendation":{"team":null,"market":null,"confidence":0}},
		{"id":"m4","homeTeam":"Ajax","awayTeam":"PSV","league":"Eredivisie","kickoff":"2025-03-02T11:30:00Z",
		 "home2UP":48,"away2UP":46,"home1UP":52,"away1UP":51,
		 "recommendation":{"team":"Ajax","market":"1UP","confidence":80}}
	]
}`

func loadFixture(t *testing.T) []models.MatchAnalysis {
	t.Helper()
	var resp models.MatchesResponse
	if err := json.Unmarshal([]byte(fixtureMatches), &resp); err != nil {
		t.Fatalf("decoding fixture: %v", err)
	}
	return resp.All()
}

func ids(matches []models.MatchAnalysis) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.ID
	}
	return out
}

func TestGroupByLeague_PriorityOrderAndOriginalOrder(t *testing.T) {
	matches := loadFixture(t)[:3]

	groups := GroupByLeague(matches, DefaultLeaguePriority)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].League != "Premier League" || groups[1].League != "La Liga" {
		t.Fatalf("unexpected league order: %s, %s", groups[0].League, groups[1].League)
	}
	if got := ids(groups[0].Matches); !reflect.DeepEqual(got, []string{"m1", "m3"}) {
		t.Errorf("premier league: expected [m1 m3], got %v", got)
	}
	if got := ids(groups[1].Matches); !reflect.DeepEqual(got, []string{"m2"}) {
		t.Errorf("la liga: expected [m2], got %v", got)
	}
}

func TestGroupByLeague_ExcludesUnlistedLeagues(t *testing.T) {
	matches := loadFixture(t)

	groups := GroupByLeague(matches, DefaultLeaguePriority)
	for _, g := range groups {
		for _, m := range g.Matches {
			if m.League == "Eredivisie" {
				t.Fatalf("unlisted league leaked into %s bucket", g.League)
			}
		}
	}

	var regrouped []models.MatchAnalysis
	for _, g := range groups {
		regrouped = append(regrouped, g.Matches...)
	}
	again := GroupByLeague(regrouped, DefaultLeaguePriority)
	if !reflect.DeepEqual(groups, again) {
		t.Error("grouping an already grouped set should be stable")
	}
}

func TestGroupByLeague_CustomPriority(t *testing.T) {
	matches := loadFixture(t)

	groups := GroupByLeague(matches, []string{"Eredivisie", "La Liga", "Eredivisie"})
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].League != "Eredivisie" || groups[1].League != "La Liga" {
		t.Errorf("unexpected order: %s, %s", groups[0].League, groups[1].League)
	}
}

func TestGroupByDate(t *testing.T) {
	matches := loadFixture(t)

	groups := GroupByDate(matches, time.UTC)
	if len(groups) != 2 {
		t.Fatalf("expected 2 date groups, got %d", len(groups))
	}
	if groups[0].Date != "2025-03-01" || groups[1].Date != "2025-03-02" {
		t.Errorf("unexpected dates: %s, %s", groups[0].Date, groups[1].Date)
	}
	if got := ids(groups[1].Matches); !reflect.DeepEqual(got, []string{"m3", "m4"}) {
		t.Errorf("expected original order [m3 m4], got %v", got)
	}
}

func TestGroupByDate_UsesDisplayLocation(t *testing.T) {
	matches := loadFixture(t)

	// Every fixture kickoff falls on the 2nd in Tokyo.
	tokyo := time.FixedZone("JST", 9*60*60)
	groups := GroupByDate(matches, tokyo)
	if len(groups) != 1 || groups[0].Date != "2025-03-02" {
		t.Fatalf("expected a single 2025-03-02 bucket, got %+v", groups)
	}
	if got := ids(groups[0].Matches); !reflect.DeepEqual(got, []string{"m1", "m2", "m3", "m4"}) {
		t.Errorf("expected [m1 m2 m3 m4], got %v", got)
	}
}

func TestRecommended_ThresholdIsConfigurable(t *testing.T) {
	matches := loadFixture(t)

	tests := []struct {
		threshold float64
		want      []string
	}{
		{50, []string{"m1", "m2", "m4"}},
		{70, []string{"m1", "m4"}},
		{72, []string{"m1", "m4"}},
		{90, []string{}},
	}
	for _, tt := range tests {
		got := Recommended(matches, models.ConfidenceFromPercent(tt.threshold))
		if !reflect.DeepEqual(ids(got), tt.want) {
			t.Errorf("threshold %v: expected %v, got %v", tt.threshold, tt.want, ids(got))
		}
	}
}

func TestRecommended_LowPercentagesStayLow(t *testing.T) {
	raw := `{"matches":[
		{"id":"one","recommendation":{"team":"A","market":"1UP","confidence":1}},
		{"id":"half","recommendation":{"team":"B","market":"2UP","confidence":0.5}},
		{"id":"strong","recommendation":{"team":"C","market":"2UP","confidence":71}}]}`
	var resp models.MatchesResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("decoding: %v", err)
	}

	got := Recommended(resp.All(), models.ConfidenceFromPercent(70))
	if !reflect.DeepEqual(ids(got), []string{"strong"}) {
		t.Errorf("expected [strong], got %v", ids(got))
	}
}

func TestRecommended_Idempotent(t *testing.T) {
	matches := loadFixture(t)
	threshold := models.ConfidenceFromPercent(50)

	once := Recommended(matches, threshold)
	twice := Recommended(once, threshold)
	if !reflect.DeepEqual(once, twice) {
		t.Error("filtering twice should yield the same set")
	}
}

func TestStrongestSide(t *testing.T) {
	matches := loadFixture(t)

	side := StrongestSide(matches[0])
	if side.Team != "Arsenal" || side.Market != models.Market1Up || side.Score != 71 || side.Band != BandHigh {
		t.Errorf("unexpected side for m1: %+v", side)
	}

	side = StrongestSide(matches[1])
	if side.Team != "Real Madrid" || side.Band != BandMedium {
		t.Errorf("unexpected side for m2: %+v", side)
	}

	low := InScoreBand(matches, BandMedium)
	if got := ids(low); !reflect.DeepEqual(got, []string{"m2", "m4"}) {
		t.Errorf("expected medium band [m2 m4], got %v", got)
	}
	if got := InScoreBand(matches, All); len(got) != len(matches) {
		t.Errorf("expected all %d matches, got %d", len(matches), len(got))
	}
}

func samplePredictions() []models.Prediction {
	return []models.Prediction{
		{ID: "p1", League: "Premier League", Market: "2UP", Confidence: 0.81, Is2UpFriendly: true},
		{ID: "p2", League: "La Liga", Market: "1UP", Confidence: 0.66},
		{ID: "p3", League: "Premier League", Market: "1UP", Confidence: 0.74, Is2UpFriendly: true},
		{ID: "p4", League: "Serie A", Market: "2UP", Confidence: 0.66},
	}
}

func predictionIDs(preds []models.Prediction) []string {
	out := make([]string, len(preds))
	for i, p := range preds {
		out[i] = p.ID
	}
	return out
}

func TestByMarket(t *testing.T) {
	preds := samplePredictions()

	if got := predictionIDs(ByMarket(preds, "1UP")); !reflect.DeepEqual(got, []string{"p2", "p3"}) {
		t.Errorf("1UP: got %v", got)
	}
	if got := predictionIDs(ByMarket(preds, All)); !reflect.DeepEqual(got, []string{"p1", "p2", "p3", "p4"}) {
		t.Errorf("all: got %v", got)
	}
	if got := ByMarket(preds, "btts_yes"); len(got) != 0 {
		t.Errorf("expected no btts picks, got %d", len(got))
	}
}

func TestTwoUpFriendly(t *testing.T) {
	preds := samplePredictions()

	once := TwoUpFriendly(preds)
	if got := predictionIDs(once); !reflect.DeepEqual(got, []string{"p1", "p3"}) {
		t.Errorf("got %v", got)
	}
	if twice := TwoUpFriendly(once); !reflect.DeepEqual(once, twice) {
		t.Error("expected idempotent filter")
	}
}

func TestFilterPicks(t *testing.T) {
	preds := samplePredictions()

	got := FilterPicks(preds, PickFilters{League: "Premier League", MinConfidence: 0.75})
	if ids := predictionIDs(got); !reflect.DeepEqual(ids, []string{"p1"}) {
		t.Errorf("expected [p1], got %v", ids)
	}

	got = FilterPicks(preds, PickFilters{})
	if len(got) != len(preds) {
		t.Errorf("zero filters should keep everything, got %d", len(got))
	}

	got = FilterPicks(preds, PickFilters{Market: "2UP", TwoUpOnly: true})
	if ids := predictionIDs(got); !reflect.DeepEqual(ids, []string{"p1"}) {
		t.Errorf("expected [p1], got %v", ids)
	}
}

func TestTopByConfidence_StableAndBounded(t *testing.T) {
	preds := samplePredictions()

	got := TopByConfidence(preds, 0)
	if ids := predictionIDs(got); !reflect.DeepEqual(ids, []string{"p1", "p3", "p2", "p4"}) {
		t.Errorf("unexpected order %v", ids)
	}
	if preds[0].ID != "p1" || preds[1].ID != "p2" {
		t.Error("input slice was reordered")
	}

	if got := TopByConfidence(preds, 2); len(got) != 2 {
		t.Errorf("expected 2 picks, got %d", len(got))
	}
}

func accaPicks() []models.AccumulatorPick {
	return []models.AccumulatorPick{
		{MatchID: "m1", Market: "1x2", Confidence: 0.82, Odds: 1.28, Is2UpFriendly: true},
		{MatchID: "m2", Market: "1x2", Confidence: 0.85, Odds: 1.22, Is2UpFriendly: true},
		{MatchID: "m4", Market: "1x2", Confidence: 0.80, Odds: 1.30, Is2UpFriendly: true},
		{MatchID: "m6", Market: "1x2", Confidence: 0.79, Odds: 1.32, Is2UpFriendly: true},
	}
}

func TestCombinedOddsAndConfidence(t *testing.T) {
	picks := accaPicks()

	if got := CombinedOdds(picks); got != 2.68 {
		t.Errorf("expected combined odds 2.68, got %v", got)
	}
	if got := CombinedConfidence(picks); math.Abs(float64(got)-0.440504) > 1e-9 {
		t.Errorf("expected combined confidence 0.440504, got %v", got)
	}
	if CombinedOdds(nil) != 0 || CombinedConfidence(nil) != 0 {
		t.Error("expected zero totals for empty picks")
	}
}

func TestTotals_PrefersServerValues(t *testing.T) {
	acca := models.Accumulator{Picks: accaPicks(), TotalOdds: 2.7, CombinedConfidence: 0.44}
	odds, conf := Totals(acca)
	if odds != 2.7 || conf != 0.44 {
		t.Errorf("expected server totals, got %v %v", odds, conf)
	}

	acca.TotalOdds, acca.CombinedConfidence = 0, 0
	odds, _ = Totals(acca)
	if odds != 2.68 {
		t.Errorf("expected computed odds 2.68, got %v", odds)
	}
}

func TestAccumulatorsByType(t *testing.T) {
	accas := []models.Accumulator{
		{ID: "a1", Type: models.AccumulatorSafe},
		{ID: "a2", Type: models.AccumulatorStandard},
		{ID: "a3", Type: models.AccumulatorSafe},
	}

	if got := AccumulatorsByType(accas, "safe"); len(got) != 2 || got[1].ID != "a3" {
		t.Errorf("unexpected safe accas %+v", got)
	}
	if got := AccumulatorsByType(accas, All); len(got) != 3 {
		t.Errorf("expected all accas, got %d", len(got))
	}
	if got := AccumulatorsByType(accas, "high_odds"); len(got) != 0 {
		t.Errorf("expected none, got %d", len(got))
	}
}

func TestEventsForTab(t *testing.T) {
	all := []models.PolymarketEvent{{ID: "e1"}, {ID: "e2"}}
	live := []models.PolymarketEvent{{ID: "e2", IsLive: true}}

	if got := EventsForTab(all, live, "live"); len(got) != 1 {
		t.Errorf("expected live events, got %d", len(got))
	}
	if got := EventsForTab(all, live, "all"); len(got) != 2 {
		t.Errorf("expected all events, got %d", len(got))
	}
}

func TestTeamNamesAndInvolvingTeam(t *testing.T) {
	matches := loadFixture(t)

	names := TeamNames(matches)
	if len(names) != 8 || names[0] != "Arsenal" || names[1] != "Brighton" {
		t.Errorf("unexpected names %v", names)
	}
	if got := ids(InvolvingTeam(matches, "Real Madrid")); !reflect.DeepEqual(got, []string{"m2"}) {
		t.Errorf("expected [m2], got %v", got)
	}
}

func TestSortByKickoff(t *testing.T) {
	matches := loadFixture(t)

	sorted := SortByKickoff(matches)
	if got := ids(sorted); !reflect.DeepEqual(got, []string{"m1", "m2", "m4", "m3"}) {
		t.Errorf("unexpected order %v", got)
	}
}
