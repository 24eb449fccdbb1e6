// Package derive builds filtered, grouped and sorted views over a loaded
// snapshot. Nothing here touches the network or mutates its input.
package derive

import (
	"sort"
	"time"

	"github.com/omarshaarawi/scorebot/internal/models"
)

// All is the sentinel that disables a market, league or type filter.
const All = "all"

var DefaultLeaguePriority = []string{
	"Premier League",
	"La Liga",
	"Bundesliga",
	"Serie A",
	"Ligue 1",
	"Champions League",
	"Europa League",
	"Conference League",
}

type DateGroup struct {
	Date    string
	Matches []models.MatchAnalysis
}

type LeagueGroup struct {
	League  string
	Matches []models.MatchAnalysis
}

// GroupByDate buckets matches by kickoff date in loc. Buckets appear in the
// order their first match is encountered.
func GroupByDate(matches []models.MatchAnalysis, loc *time.Location) []DateGroup {
	if loc == nil {
		loc = time.UTC
	}

	var groups []DateGroup
	index := make(map[string]int)
	for _, m := range matches {
		key := m.Kickoff.In(loc).Format(time.DateOnly)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, DateGroup{Date: key})
		}
		groups[i].Matches = append(groups[i].Matches, m)
	}
	return groups
}

// GroupByLeague buckets matches by league in priority order. Leagues missing
// from priority are dropped and empty buckets are omitted.
func GroupByLeague(matches []models.MatchAnalysis, priority []string) []LeagueGroup {
	byLeague := make(map[string][]models.MatchAnalysis, len(priority))
	for _, m := range matches {
		byLeague[m.League] = append(byLeague[m.League], m)
	}

	var groups []LeagueGroup
	seen := make(map[string]bool, len(priority))
	for _, league := range priority {
		if seen[league] || len(byLeague[league]) == 0 {
			continue
		}
		seen[league] = true
		groups = append(groups, LeagueGroup{League: league, Matches: byLeague[league]})
	}
	return groups
}

// Recommended keeps matches with a recommended team whose confidence reaches
// threshold.
func Recommended(matches []models.MatchAnalysis, threshold models.Confidence) []models.MatchAnalysis {
	out := make([]models.MatchAnalysis, 0, len(matches))
	for _, m := range matches {
		if m.Recommendation.Team != "" && m.Recommendation.Confidence >= threshold {
			out = append(out, m)
		}
	}
	return out
}

func AccumulatorsByType(accas []models.Accumulator, accaType string) []models.Accumulator {
	if accaType == "" || accaType == All {
		return accas
	}
	out := make([]models.Accumulator, 0, len(accas))
	for _, a := range accas {
		if string(a.Type) == accaType {
			out = append(out, a)
		}
	}
	return out
}

// EventsForTab picks the event list shown for the selected tab.
func EventsForTab(all, live []models.PolymarketEvent, tab string) []models.PolymarketEvent {
	if tab == "live" {
		return live
	}
	return all
}

// TeamNames lists each distinct team once, in first-seen order.
func TeamNames(matches []models.MatchAnalysis) []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range matches {
		for _, name := range []string{m.HomeTeam, m.AwayTeam} {
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

func InvolvingTeam(matches []models.MatchAnalysis, team string) []models.MatchAnalysis {
	out := make([]models.MatchAnalysis, 0)
	for _, m := range matches {
		if m.HomeTeam == team || m.AwayTeam == team {
			out = append(out, m)
		}
	}
	return out
}

func SortByKickoff(matches []models.MatchAnalysis) []models.MatchAnalysis {
	out := append([]models.MatchAnalysis(nil), matches...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Kickoff.Before(out[j].Kickoff)
	})
	return out
}
