package models

import "time"

// Empty payloads. A page starts with these and keeps them when its fetch
// fails.

func EmptyMatches() *MatchesResponse {
	return &MatchesResponse{Matches: []MatchAnalysis{}}
}

func EmptyPredictions() *PredictionsResponse {
	return &PredictionsResponse{Predictions: []Prediction{}}
}

func EmptyDailyPredictions(now time.Time) *DailyPredictionsResponse {
	return &DailyPredictionsResponse{
		Date:         now.Format(time.DateOnly),
		Predictions:  []MatchPrediction{},
		Accumulators: []Accumulator{},
	}
}

func EmptyAccumulators() []Accumulator {
	return []Accumulator{}
}

func EmptyEvents(now time.Time) *EventsResponse {
	return &EventsResponse{Events: []PolymarketEvent{}, LastUpdated: now}
}
