package models

import "time"

type MarketType string

const (
	Market1X2          MarketType = "1x2"
	MarketOver25       MarketType = "over_2.5"
	MarketUnder25      MarketType = "under_2.5"
	MarketBTTSYes      MarketType = "btts_yes"
	MarketBTTSNo       MarketType = "btts_no"
	MarketCornersOver  MarketType = "corners_over"
	MarketCornersUnder MarketType = "corners_under"
	MarketCorrectScore MarketType = "correct_score"
	MarketDoubleChance MarketType = "double_chance"
)

type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodAllTime Period = "all_time"
)

type AccumulatorType string

const (
	AccumulatorSafe         AccumulatorType = "safe"
	AccumulatorStandard     AccumulatorType = "standard"
	AccumulatorHighOdds     AccumulatorType = "high_odds"
	AccumulatorCorrectScore AccumulatorType = "correct_score"
)

var AccumulatorTypes = []AccumulatorType{
	AccumulatorSafe,
	AccumulatorStandard,
	AccumulatorHighOdds,
	AccumulatorCorrectScore,
}

// Prediction is a published pick from /api/predictions.
type Prediction struct {
	ID            string     `json:"id"`
	MatchID       string     `json:"matchId"`
	HomeTeam      string     `json:"homeTeam"`
	AwayTeam      string     `json:"awayTeam"`
	League        string     `json:"league"`
	Kickoff       time.Time  `json:"kickoff"`
	Team          string     `json:"team"`
	Market        string     `json:"market"`
	Confidence    Confidence `json:"confidence"`
	Factors       []string   `json:"factors"`
	Is1UpFriendly bool       `json:"is1UpFriendly"`
	Is2UpFriendly bool       `json:"is2UpFriendly"`
}

func (p Prediction) MarketTag() string       { return p.Market }
func (p Prediction) TwoUpFriendly() bool     { return p.Is2UpFriendly }
func (p Prediction) LeagueName() string      { return p.League }
func (p Prediction) Probability() Confidence { return p.Confidence }

type PredictionsResponse struct {
	Date             string       `json:"date"`
	LastUpdated      time.Time    `json:"lastUpdated"`
	StatsLastUpdated time.Time    `json:"statsLastUpdated"`
	TotalFixtures    int          `json:"totalFixtures"`
	PredictionsCount int          `json:"predictionsCount"`
	Predictions      []Prediction `json:"predictions"`
}

type Team struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Logo             string  `json:"logo,omitempty"`
	Form             string  `json:"form"`
	Position         int     `json:"position"`
	AvgGoalsScored   float64 `json:"avgGoalsScored"`
	AvgGoalsConceded float64 `json:"avgGoalsConceded"`
	HomeWinRate      float64 `json:"homeWinRate,omitempty"`
	AwayWinRate      float64 `json:"awayWinRate,omitempty"`
	CleanSheets      int     `json:"cleanSheets"`
	ScoredInMatches  float64 `json:"scoredInMatches"`
}

type PredictionFactor struct {
	Name        string  `json:"name"`
	Impact      float64 `json:"impact"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
}

type MatchResult struct {
	HomeScore int       `json:"homeScore"`
	AwayScore int       `json:"awayScore"`
	IsCorrect bool      `json:"isCorrect"`
	SettledAt time.Time `json:"settledAt"`
}

// MatchPrediction is the detailed pick served by the daily and single-match
// endpoints.
type MatchPrediction struct {
	ID            string             `json:"id"`
	MatchID       string             `json:"matchId"`
	HomeTeam      Team               `json:"homeTeam"`
	AwayTeam      Team               `json:"awayTeam"`
	League        string             `json:"league"`
	LeagueLogo    string             `json:"leagueLogo,omitempty"`
	Kickoff       time.Time          `json:"kickoff"`
	Market        MarketType         `json:"market"`
	Prediction    string             `json:"prediction"`
	Confidence    Confidence         `json:"confidence"`
	Odds          float64            `json:"odds"`
	Factors       []PredictionFactor `json:"factors"`
	Is2UpFriendly bool               `json:"is2UpFriendly"`
	Is1UpFriendly bool               `json:"is1UpFriendly"`
	Status        string             `json:"status"`
	Result        *MatchResult       `json:"result,omitempty"`
}

func (p MatchPrediction) MarketTag() string       { return string(p.Market) }
func (p MatchPrediction) TwoUpFriendly() bool     { return p.Is2UpFriendly }
func (p MatchPrediction) LeagueName() string      { return p.League }
func (p MatchPrediction) Probability() Confidence { return p.Confidence }

type DailyPredictionsResponse struct {
	Date           string            `json:"date"`
	Predictions    []MatchPrediction `json:"predictions"`
	Accumulators   []Accumulator     `json:"accumulators"`
	TotalAnalyzed  int               `json:"totalAnalyzed"`
	PublishedCount int               `json:"publishedCount"`
}

type Accumulator struct {
	ID                 string            `json:"id"`
	Type               AccumulatorType   `json:"type"`
	Picks              []AccumulatorPick `json:"picks"`
	TotalOdds          float64           `json:"totalOdds"`
	CombinedConfidence Confidence        `json:"combinedConfidence"`
	Status             string            `json:"status"`
	CreatedAt          time.Time         `json:"createdAt"`
}

type AccumulatorPick struct {
	MatchID       string     `json:"matchId"`
	HomeTeam      string     `json:"homeTeam"`
	AwayTeam      string     `json:"awayTeam"`
	Market        MarketType `json:"market"`
	Prediction    string     `json:"prediction"`
	Confidence    Confidence `json:"confidence"`
	Odds          float64    `json:"odds"`
	Status        string     `json:"status"`
	Is2UpFriendly bool       `json:"is2UpFriendly"`
}

func (p AccumulatorPick) MarketTag() string       { return string(p.Market) }
func (p AccumulatorPick) TwoUpFriendly() bool     { return p.Is2UpFriendly }
func (p AccumulatorPick) Probability() Confidence { return p.Confidence }

type AccuracyStats struct {
	Period             Period                 `json:"period"`
	TotalPredictions   int                    `json:"totalPredictions"`
	CorrectPredictions int                    `json:"correctPredictions"`
	AccuracyRate       Confidence             `json:"accuracyRate"`
	AvgConfidence      Confidence             `json:"avgConfidence"`
	ProfitLoss         *float64               `json:"profitLoss,omitempty"`
	ByConfidenceRange  []ConfidenceRangeStats `json:"byConfidenceRange"`
	ByMarket           []MarketStats          `json:"byMarket"`
	ByLeague           []LeagueStats          `json:"byLeague"`
}

type ConfidenceRangeStats struct {
	Range    string     `json:"range"`
	Total    int        `json:"total"`
	Correct  int        `json:"correct"`
	Accuracy Confidence `json:"accuracy"`
}

type MarketStats struct {
	Market   MarketType `json:"market"`
	Total    int        `json:"total"`
	Correct  int        `json:"correct"`
	Accuracy Confidence `json:"accuracy"`
}

type LeagueStats struct {
	League   string     `json:"league"`
	Total    int        `json:"total"`
	Correct  int        `json:"correct"`
	Accuracy Confidence `json:"accuracy"`
}
