package predict

import (
	"context"
	"fmt"
	"net/url"

	"github.com/omarshaarawi/scorebot/internal/models"
)

type API struct {
	client *Client
}

func NewAPI(client *Client) *API {
	return &API{client: client}
}

func (a *API) Matches(ctx context.Context) (*models.MatchesResponse, error) {
	var resp models.MatchesResponse
	if err := a.client.Get(ctx, "/api/matches", nil, &resp); err != nil {
		return nil, fmt.Errorf("fetching matches: %w", err)
	}
	return &resp, nil
}

func (a *API) Predictions(ctx context.Context) (*models.PredictionsResponse, error) {
	var resp models.PredictionsResponse
	if err := a.client.Get(ctx, "/api/predictions", nil, &resp); err != nil {
		return nil, fmt.Errorf("fetching predictions: %w", err)
	}
	return &resp, nil
}

// DailyPredictions fetches the published card for date (YYYY-MM-DD). An empty
// date means today.
func (a *API) DailyPredictions(ctx context.Context, date string) (*models.DailyPredictionsResponse, error) {
	endpoint := "/api/predictions/today"
	if date != "" {
		endpoint = "/api/predictions/" + url.PathEscape(date)
	}

	var resp models.DailyPredictionsResponse
	if err := a.client.Get(ctx, endpoint, nil, &resp); err != nil {
		return nil, fmt.Errorf("fetching daily predictions: %w", err)
	}
	return &resp, nil
}

func (a *API) Accumulators(ctx context.Context, date string) ([]models.Accumulator, error) {
	endpoint := "/api/accumulators/today"
	var params map[string]string
	if date != "" {
		endpoint = "/api/accumulators"
		params = map[string]string{"date": date}
	}

	var accas []models.Accumulator
	if err := a.client.Get(ctx, endpoint, params, &accas); err != nil {
		return nil, fmt.Errorf("fetching accumulators: %w", err)
	}
	if accas == nil {
		accas = models.EmptyAccumulators()
	}
	return accas, nil
}

func (a *API) Accuracy(ctx context.Context, period models.Period) (*models.AccuracyStats, error) {
	var params map[string]string
	if period != "" && period != models.PeriodAllTime {
		params = map[string]string{"period": string(period)}
	}

	var stats models.AccuracyStats
	if err := a.client.Get(ctx, "/api/accuracy", params, &stats); err != nil {
		return nil, fmt.Errorf("fetching accuracy: %w", err)
	}
	return &stats, nil
}

func (a *API) Events(ctx context.Context) (*models.EventsResponse, error) {
	var resp models.EventsResponse
	if err := a.client.Get(ctx, "/api/events", nil, &resp); err != nil {
		return nil, fmt.Errorf("fetching events: %w", err)
	}
	return &resp, nil
}

func (a *API) LiveEvents(ctx context.Context) (*models.EventsResponse, error) {
	var resp models.EventsResponse
	if err := a.client.Get(ctx, "/api/events/live", nil, &resp); err != nil {
		return nil, fmt.Errorf("fetching live events: %w", err)
	}
	return &resp, nil
}

func (a *API) Match(ctx context.Context, matchID string) (*models.MatchPrediction, error) {
	if matchID == "" {
		return nil, fmt.Errorf("match id is required")
	}

	var pred models.MatchPrediction
	if err := a.client.Get(ctx, "/api/matches/"+url.PathEscape(matchID), nil, &pred); err != nil {
		return nil, fmt.Errorf("fetching match %s: %w", matchID, err)
	}
	return &pred, nil
}
