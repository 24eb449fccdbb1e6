package derive

import "github.com/omarshaarawi/scorebot/internal/models"

type Band string

const (
	BandHigh   Band = "high"
	BandMedium Band = "medium"
	BandMid    Band = "mid"
	BandLow    Band = "low"
)

// ScoreBand buckets a 0-100 percentage score.
func ScoreBand(pct float64) Band {
	switch {
	case pct >= 60:
		return BandHigh
	case pct >= 50:
		return BandMedium
	default:
		return BandLow
	}
}

func ConfidenceBand(c models.Confidence) Band {
	switch {
	case c >= 0.75:
		return BandHigh
	case c >= 0.65:
		return BandMid
	default:
		return BandLow
	}
}

type Side struct {
	Team   string
	Market models.RecommendationMarket
	Score  float64
	Band   Band
}

// StrongestSide returns the team and market with the highest of the four
// early-lead scores. Ties keep the first in home 2UP, away 2UP, home 1UP,
// away 1UP order.
func StrongestSide(m models.MatchAnalysis) Side {
	candidates := []Side{
		{Team: m.HomeTeam, Market: models.Market2Up, Score: m.Home2Up},
		{Team: m.AwayTeam, Market: models.Market2Up, Score: m.Away2Up},
		{Team: m.HomeTeam, Market: models.Market1Up, Score: m.Home1Up},
		{Team: m.AwayTeam, Market: models.Market1Up, Score: m.Away1Up},
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Score > best.Score {
			best = c
		}
	}
	best.Band = ScoreBand(best.Score)
	return best
}

// InScoreBand keeps matches whose strongest side falls in band. The empty
// band and All keep everything.
func InScoreBand(matches []models.MatchAnalysis, band Band) []models.MatchAnalysis {
	if band == "" || band == All {
		return matches
	}
	out := make([]models.MatchAnalysis, 0, len(matches))
	for _, m := range matches {
		if StrongestSide(m).Band == band {
			out = append(out, m)
		}
	}
	return out
}
