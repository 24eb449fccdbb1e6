package models

import (
	"encoding/json"
	"time"
)

type RecommendationMarket string

const (
	Market1Up RecommendationMarket = "1UP"
	Market2Up RecommendationMarket = "2UP"
)

type MatchesResponse struct {
	LastUpdated  time.Time                  `json:"lastUpdated"`
	DateRange    *DateRange                 `json:"dateRange,omitempty"`
	TotalMatches int                        `json:"totalMatches"`
	Matches      []MatchAnalysis            `json:"matches,omitempty"`
	Leagues      []string                   `json:"leagues,omitempty"`
	ByLeague     map[string][]MatchAnalysis `json:"byLeague,omitempty"`
}

type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// All returns every match in the response. Older API revisions send a flat
// matches list, newer ones send leagues plus a byLeague map; the latter is
// walked in leagues order.
func (r *MatchesResponse) All() []MatchAnalysis {
	if r == nil {
		return nil
	}
	if len(r.Matches) > 0 || len(r.ByLeague) == 0 {
		return r.Matches
	}

	var all []MatchAnalysis
	seen := make(map[string]bool, len(r.Leagues))
	for _, league := range r.Leagues {
		if seen[league] {
			continue
		}
		seen[league] = true
		all = append(all, r.ByLeague[league]...)
	}
	return all
}

type MatchAnalysis struct {
	ID             string         `json:"id"`
	HomeTeam       string         `json:"homeTeam"`
	AwayTeam       string         `json:"awayTeam"`
	League         string         `json:"league"`
	Kickoff        time.Time      `json:"kickoff"`
	HomeStats      SideStats      `json:"homeStats"`
	AwayStats      SideStats      `json:"awayStats"`
	Home1Up        float64        `json:"home1UP"`
	Away1Up        float64        `json:"away1UP"`
	Home2Up        float64        `json:"home2UP"`
	Away2Up        float64        `json:"away2UP"`
	Recommendation Recommendation `json:"recommendation"`
	IsDerby        bool           `json:"isDerby"`
	IsEuropean     bool           `json:"isEuropean"`
	Injuries       bool           `json:"injuries"`
	H2H            *HeadToHead    `json:"h2h,omitempty"`
	HomeForm       []string       `json:"homeForm,omitempty"`
	AwayForm       []string       `json:"awayForm,omitempty"`
}

func (m MatchAnalysis) LeagueName() string { return m.League }

type SideStats struct {
	ScoredFirstPct     float64 `json:"scoredFirstPct"`
	ConcededFirstPct   float64 `json:"concededFirstPct"`
	AvgFirstGoalMinute float64 `json:"avgFirstGoalMinute"`
}

type HeadToHead struct {
	Played   int `json:"played"`
	HomeWins int `json:"homeWins"`
	AwayWins int `json:"awayWins"`
	Draws    int `json:"draws"`
}

// Recommendation has either both Team and Market set or neither.
type Recommendation struct {
	Team       string               `json:"team,omitempty"`
	Market     RecommendationMarket `json:"market,omitempty"`
	Confidence Confidence           `json:"confidence"`
	Reasons    []string             `json:"reasons,omitempty"`
}

func (r Recommendation) HasPick() bool {
	return r.Team != "" && r.Market != ""
}

func (r *Recommendation) UnmarshalJSON(data []byte) error {
	type wire struct {
		Team       *string               `json:"team"`
		Market     *RecommendationMarket `json:"market"`
		Confidence float64               `json:"confidence"`
		Reasons    []string              `json:"reasons"`
	}

	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	// Always a 0-100 percentage, even for values at or below 1.
	*r = Recommendation{Confidence: clampConfidence(ConfidenceFromPercent(w.Confidence)), Reasons: w.Reasons}
	if w.Team != nil && *w.Team != "" && w.Market != nil && *w.Market != "" {
		r.Team = *w.Team
		r.Market = *w.Market
	}
	return nil
}
