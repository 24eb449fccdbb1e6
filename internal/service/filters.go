package service

import (
	"fmt"
	"strings"

	"github.com/omarshaarawi/scorebot/internal/derive"
	"github.com/omarshaarawi/scorebot/internal/format"
	"github.com/omarshaarawi/scorebot/internal/models"
	"github.com/omarshaarawi/scorebot/internal/view"
)

// Filter commands only touch the chat's stored selections. None of them
// fetch.

var knownMarkets = []string{
	string(models.Market1Up),
	string(models.Market2Up),
	string(models.Market1X2),
	string(models.MarketOver25),
	string(models.MarketUnder25),
	string(models.MarketBTTSYes),
	string(models.MarketBTTSNo),
	string(models.MarketCornersOver),
	string(models.MarketCornersUnder),
	string(models.MarketCorrectScore),
	string(models.MarketDoubleChance),
}

func (s *PredictionService) SetMarket(chatID int64, market string) (string, error) {
	market = strings.TrimSpace(market)
	tag, ok := "", false
	if strings.EqualFold(market, derive.All) {
		tag, ok = derive.All, true
	}
	for _, known := range knownMarkets {
		if strings.EqualFold(market, known) {
			tag, ok = known, true
		}
	}
	if !ok {
		return "", fmt.Errorf("unknown market %q", market)
	}

	f := s.repo.GetFilters(chatID)
	f.Market = tag
	s.repo.SaveFilters(chatID, f)

	if tag == derive.All {
		return "✅ Showing all markets.", nil
	}
	return fmt.Sprintf("✅ Market filter set to %s.", format.Bold(format.MarketName(tag))), nil
}

// SetLeague restricts views to one league. Names from the priority list are
// matched case-insensitively.
func (s *PredictionService) SetLeague(chatID int64, league string) string {
	league = strings.TrimSpace(league)
	if league == "" || strings.EqualFold(league, derive.All) {
		league = derive.All
	}
	for _, known := range s.priority {
		if strings.EqualFold(league, known) {
			league = known
		}
	}

	f := s.repo.GetFilters(chatID)
	f.League = league
	s.repo.SaveFilters(chatID, f)

	if league == derive.All {
		return "✅ Showing all leagues."
	}
	return fmt.Sprintf("✅ League filter set to %s.", format.Bold(league))
}

// SetMinConfidence takes a percentage.
func (s *PredictionService) SetMinConfidence(chatID int64, pct float64) (string, error) {
	if pct < 0 || pct > 100 {
		return "", fmt.Errorf("minimum confidence must be between 0 and 100, got %v", pct)
	}

	f := s.repo.GetFilters(chatID)
	f.MinConfidence = models.ConfidenceFromPercent(pct)
	s.repo.SaveFilters(chatID, f)

	return fmt.Sprintf("✅ Minimum confidence set to %s.", format.Bold(format.Confidence(f.MinConfidence))), nil
}

func (s *PredictionService) SetTwoUpOnly(chatID int64, on bool) string {
	f := s.repo.GetFilters(chatID)
	f.TwoUpOnly = on
	s.repo.SaveFilters(chatID, f)

	if on {
		return "✅ Showing 2UP-friendly picks only."
	}
	return "✅ Showing all picks."
}

func (s *PredictionService) SetRecommendedOnly(chatID int64, on bool) string {
	f := s.repo.GetFilters(chatID)
	f.RecommendedOnly = on
	s.repo.SaveFilters(chatID, f)

	if on {
		return fmt.Sprintf("✅ Showing matches recommended at %s+ only.", format.Confidence(s.threshold))
	}
	return "✅ Showing all matches."
}

// SetScoreBand restricts match views to matches whose strongest side falls
// in band.
func (s *PredictionService) SetScoreBand(chatID int64, band string) (string, error) {
	var b derive.Band
	switch strings.ToLower(strings.TrimSpace(band)) {
	case derive.All:
		b = derive.All
	case string(derive.BandHigh):
		b = derive.BandHigh
	case string(derive.BandMedium), string(derive.BandMid):
		b = derive.BandMedium
	case string(derive.BandLow):
		b = derive.BandLow
	default:
		return "", fmt.Errorf("unknown band %q", band)
	}

	f := s.repo.GetFilters(chatID)
	f.ScoreBand = string(b)
	s.repo.SaveFilters(chatID, f)

	if b == derive.All {
		return "✅ Showing matches in every band.", nil
	}
	return fmt.Sprintf("✅ Showing %s band matches only.", format.Bold(string(b))), nil
}

func (s *PredictionService) ResetFilters(chatID int64) string {
	s.repo.ResetFilters(chatID)
	return "✅ Filters reset."
}

func (s *PredictionService) DescribeFilters(chatID int64) string {
	return describeFilters(s.repo.GetFilters(chatID))
}

func describeFilters(f view.Filters) string {
	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}

	var sb strings.Builder
	sb.WriteString("⚙️ *Filters*\n\n")
	sb.WriteString(fmt.Sprintf("Market: %s\n", format.Escape(format.MarketName(f.Market))))
	sb.WriteString(fmt.Sprintf("League: %s\n", format.Escape(f.League)))
	sb.WriteString(fmt.Sprintf("Min confidence: %s\n", format.Confidence(f.MinConfidence)))
	sb.WriteString(fmt.Sprintf("2UP only: %s\n", onOff(f.TwoUpOnly)))
	sb.WriteString(fmt.Sprintf("Recommended only: %s\n", onOff(f.RecommendedOnly)))
	sb.WriteString(fmt.Sprintf("Score band: %s\n", format.Escape(f.ScoreBand)))
	sb.WriteString(fmt.Sprintf("Accumulators: %s\n", format.Escape(f.AccumulatorType)))
	sb.WriteString(fmt.Sprintf("Events tab: %s\n", format.Escape(f.Tab)))
	sb.WriteString(fmt.Sprintf("Accuracy period: %s\n", format.Escape(string(f.Period))))
	return sb.String()
}
