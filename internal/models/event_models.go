package models

import "time"

// PolymarketEvent is an external prediction-market event relayed by the API.
type PolymarketEvent struct {
	ID          string             `json:"id"`
	Slug        string             `json:"slug"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Category    string             `json:"category"`
	Tags        []string           `json:"tags"`
	StartDate   string             `json:"startDate"`
	EndDate     string             `json:"endDate"`
	IsLive      bool               `json:"isLive"`
	Status      string             `json:"status"`
	Volume      float64            `json:"volume"`
	Liquidity   float64            `json:"liquidity"`
	Image       string             `json:"image"`
	Markets     []PolymarketMarket `json:"markets"`
}

type PolymarketMarket struct {
	ID       string              `json:"id"`
	Question string              `json:"question"`
	Outcomes []PolymarketOutcome `json:"outcomes"`
}

type PolymarketOutcome struct {
	Name        string  `json:"name"`
	Probability float64 `json:"probability"`
	Odds        *string `json:"odds"`
}

type EventsResponse struct {
	Count       int               `json:"count"`
	Events      []PolymarketEvent `json:"events"`
	LastUpdated time.Time         `json:"lastUpdated"`
}
