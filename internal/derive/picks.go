package derive

import (
	"sort"

	"github.com/omarshaarawi/scorebot/internal/models"
	"github.com/shopspring/decimal"
)

type Marketed interface {
	MarketTag() string
}

type TwoUpFlagged interface {
	TwoUpFriendly() bool
}

type Scored interface {
	Probability() models.Confidence
}

type Leagued interface {
	LeagueName() string
}

// Pick is anything the pick filters can run over.
type Pick interface {
	Marketed
	TwoUpFlagged
	Scored
	Leagued
}

func ByMarket[T Marketed](items []T, market string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if market == All || item.MarketTag() == market {
			out = append(out, item)
		}
	}
	return out
}

func TwoUpFriendly[T TwoUpFlagged](items []T) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if item.TwoUpFriendly() {
			out = append(out, item)
		}
	}
	return out
}

func InLeague[T Leagued](items []T, league string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if league == "" || league == All || item.LeagueName() == league {
			out = append(out, item)
		}
	}
	return out
}

func MinConfidence[T Scored](items []T, floor models.Confidence) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if item.Probability() >= floor {
			out = append(out, item)
		}
	}
	return out
}

// TopByConfidence sorts by confidence, highest first, keeping the original
// order between equals. n <= 0 keeps everything.
func TopByConfidence[T Scored](items []T, n int) []T {
	out := append([]T(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Probability() > out[j].Probability()
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

type PickFilters struct {
	Market        string
	League        string
	MinConfidence models.Confidence
	TwoUpOnly     bool
}

// FilterPicks applies every pick filter in turn.
func FilterPicks[T Pick](items []T, f PickFilters) []T {
	market := f.Market
	if market == "" {
		market = All
	}

	out := ByMarket(items, market)
	out = InLeague(out, f.League)
	out = MinConfidence(out, f.MinConfidence)
	if f.TwoUpOnly {
		out = TwoUpFriendly(out)
	}
	return out
}

// CombinedOdds multiplies the pick odds.
func CombinedOdds(picks []models.AccumulatorPick) float64 {
	if len(picks) == 0 {
		return 0
	}
	total := decimal.NewFromInt(1)
	for _, p := range picks {
		total = total.Mul(decimal.NewFromFloat(p.Odds))
	}
	return total.Round(2).InexactFloat64()
}

func CombinedConfidence(picks []models.AccumulatorPick) models.Confidence {
	if len(picks) == 0 {
		return 0
	}
	total := decimal.NewFromInt(1)
	for _, p := range picks {
		total = total.Mul(decimal.NewFromFloat(float64(p.Confidence)))
	}
	return models.Confidence(total.InexactFloat64())
}

// Totals returns the accumulator's odds and confidence, computing them from
// the picks when the API left them out.
func Totals(a models.Accumulator) (float64, models.Confidence) {
	odds, conf := a.TotalOdds, a.CombinedConfidence
	if odds == 0 {
		odds = CombinedOdds(a.Picks)
	}
	if conf == 0 {
		conf = CombinedConfidence(a.Picks)
	}
	return odds, conf
}
