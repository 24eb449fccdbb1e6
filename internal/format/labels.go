package format

import "github.com/omarshaarawi/scorebot/internal/models"

var marketNames = map[string]string{
	"1x2":           "Match Result",
	"over_2.5":      "Over 2.5 Goals",
	"under_2.5":     "Under 2.5 Goals",
	"btts_yes":      "Both Teams Score",
	"btts_no":       "Clean Sheet",
	"corners_over":  "Corners Over",
	"corners_under": "Corners Under",
	"correct_score": "Correct Score",
	"double_chance": "Double Chance",
	"1UP":           "1UP Early Payout",
	"2UP":           "2UP Early Payout",
}

// MarketName returns the label for a market tag. Unknown tags are returned
// unchanged.
func MarketName(market string) string {
	if name, ok := marketNames[market]; ok {
		return name
	}
	return market
}

func PredictionName(prediction, homeTeam, awayTeam string) string {
	switch prediction {
	case "home_win":
		return homeTeam + " Win"
	case "away_win":
		return awayTeam + " Win"
	case "draw":
		return "Draw"
	case "over_2.5":
		return "Over 2.5 Goals"
	case "under_2.5":
		return "Under 2.5 Goals"
	case "btts_yes":
		return "Both Teams to Score"
	case "btts_no":
		return "No BTTS"
	}
	return prediction
}

var accumulatorLabels = map[models.AccumulatorType][2]string{
	models.AccumulatorSafe:         {"Safe Acca", "High probability, steady returns"},
	models.AccumulatorStandard:     {"Standard Acca", "Balanced risk and reward"},
	models.AccumulatorHighOdds:     {"High Odds Acca", "Higher risk, bigger potential"},
	models.AccumulatorCorrectScore: {"Score Special", "Jackpot potential"},
}

func AccumulatorLabel(t models.AccumulatorType) string {
	if l, ok := accumulatorLabels[t]; ok {
		return l[0]
	}
	return string(t)
}

func AccumulatorSubtitle(t models.AccumulatorType) string {
	return accumulatorLabels[t][1]
}
