package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/omarshaarawi/scorebot/internal/config"
	"github.com/omarshaarawi/scorebot/internal/derive"
	"github.com/omarshaarawi/scorebot/internal/format"
	"github.com/omarshaarawi/scorebot/internal/models"
	"github.com/omarshaarawi/scorebot/internal/repository/memory"
	"github.com/omarshaarawi/scorebot/internal/view"
)

const maxEvents = 10

// Source is the read side of the prediction API.
type Source interface {
	Matches(ctx context.Context) (*models.MatchesResponse, error)
	Predictions(ctx context.Context) (*models.PredictionsResponse, error)
	DailyPredictions(ctx context.Context, date string) (*models.DailyPredictionsResponse, error)
	Accumulators(ctx context.Context, date string) ([]models.Accumulator, error)
	Accuracy(ctx context.Context, period models.Period) (*models.AccuracyStats, error)
	Events(ctx context.Context) (*models.EventsResponse, error)
	LiveEvents(ctx context.Context) (*models.EventsResponse, error)
	Match(ctx context.Context, matchID string) (*models.MatchPrediction, error)
}

type PredictionService struct {
	api       Source
	repo      *memory.Repository
	clock     clockwork.Clock
	threshold models.Confidence
	priority  []string
	loc       *time.Location
}

func NewPredictionService(api Source, repo *memory.Repository, views config.Views, clock clockwork.Clock) *PredictionService {
	priority := views.LeaguePriority
	if len(priority) == 0 {
		priority = derive.DefaultLeaguePriority
	}
	return &PredictionService{
		api:       api,
		repo:      repo,
		clock:     clock,
		threshold: models.ConfidenceFromPercent(views.RecommendThreshold),
		priority:  priority,
		loc:       views.Location(),
	}
}

// load mounts a page, waits for its single fetch and unmounts it.
func load[T any](ctx context.Context, name string, empty T, filters view.Filters, fetch func(context.Context) (T, error)) (view.State[T], error) {
	store := view.Mount(ctx, name, empty, filters, fetch)
	defer store.Unmount()

	st := store.Wait(ctx)
	switch st.Status {
	case view.Failed:
		return st, fmt.Errorf("error loading %s: %s", name, st.Err)
	case view.Loading:
		return st, fmt.Errorf("error loading %s: %w", name, ctx.Err())
	}
	return st, nil
}

func (s *PredictionService) Today(ctx context.Context, chatID int64) (string, error) {
	return s.today(ctx, s.repo.GetFilters(chatID))
}

// Digest renders today's card with default filters for the scheduled push.
func (s *PredictionService) Digest(ctx context.Context) (string, error) {
	return s.today(ctx, view.DefaultFilters())
}

func (s *PredictionService) today(ctx context.Context, filters view.Filters) (string, error) {
	now := s.clock.Now()
	st, err := load(ctx, "today", models.EmptyDailyPredictions(now.In(s.loc)), filters,
		func(ctx context.Context) (*models.DailyPredictionsResponse, error) {
			return s.api.DailyPredictions(ctx, "")
		})
	if err != nil {
		return "", err
	}

	picks := derive.TopByConfidence(derive.FilterPicks(st.Data.Predictions, st.Filters.Picks()), 0)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📅 %s\n\n", format.Bold("Predictions for "+st.Data.Date)))
	if len(picks) == 0 {
		sb.WriteString(noResults)
		return sb.String(), nil
	}
	for _, p := range picks {
		writeMatchPrediction(&sb, p, now, s.loc)
	}
	return sb.String(), nil
}

func (s *PredictionService) Predictions(ctx context.Context, chatID int64) (string, error) {
	st, err := load(ctx, "predictions", models.EmptyPredictions(), s.repo.GetFilters(chatID), s.api.Predictions)
	if err != nil {
		return "", err
	}

	picks := derive.TopByConfidence(derive.FilterPicks(st.Data.Predictions, st.Filters.Picks()), 0)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🎯 *Published Picks* (%d of %d fixtures)\n\n", len(picks), st.Data.TotalFixtures))
	if len(picks) == 0 {
		sb.WriteString(noResults)
		return sb.String(), nil
	}

	now := s.clock.Now()
	for _, p := range picks {
		sb.WriteString(fmt.Sprintf("%s vs %s\n", format.Bold(p.HomeTeam), format.Bold(p.AwayTeam)))
		sb.WriteString(fmt.Sprintf("%s · %s (%s)\n", format.Escape(p.League), format.Kickoff(p.Kickoff, s.loc), format.TimeUntil(p.Kickoff, now)))
		sb.WriteString(fmt.Sprintf("%s %s · %s\n", format.Escape(p.Team), format.Escape(format.MarketName(p.Market)), format.Confidence(p.Confidence)))
		for _, f := range p.Factors {
			sb.WriteString(fmt.Sprintf("  • %s\n", format.Escape(f)))
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func (s *PredictionService) loadMatches(ctx context.Context, name string, filters view.Filters) (view.State[*models.MatchesResponse], error) {
	return load(ctx, name, models.EmptyMatches(), filters, s.api.Matches)
}

func (s *PredictionService) visibleMatches(st view.State[*models.MatchesResponse]) []models.MatchAnalysis {
	matches := derive.InLeague(st.Data.All(), st.Filters.League)
	matches = derive.InScoreBand(matches, derive.Band(st.Filters.ScoreBand))
	if st.Filters.RecommendedOnly {
		matches = derive.Recommended(matches, s.threshold)
	}
	return derive.SortByKickoff(matches)
}

// Matches renders the match analysis grouped by kickoff date.
func (s *PredictionService) Matches(ctx context.Context, chatID int64) (string, error) {
	st, err := s.loadMatches(ctx, "matches", s.repo.GetFilters(chatID))
	if err != nil {
		return "", err
	}

	groups := derive.GroupByDate(s.visibleMatches(st), s.loc)

	var sb strings.Builder
	sb.WriteString("⚽ *Match Analysis*\n\n")
	if len(groups) == 0 {
		sb.WriteString(noResults)
		return sb.String(), nil
	}

	now := s.clock.Now()
	for _, g := range groups {
		sb.WriteString(fmt.Sprintf("🗓 *%s*\n\n", g.Date))
		for _, m := range g.Matches {
			writeMatch(&sb, m, now, s.loc)
		}
	}
	return sb.String(), nil
}

// Leagues renders the match analysis grouped by league in priority order.
func (s *PredictionService) Leagues(ctx context.Context, chatID int64) (string, error) {
	st, err := s.loadMatches(ctx, "leagues", s.repo.GetFilters(chatID))
	if err != nil {
		return "", err
	}

	groups := derive.GroupByLeague(s.visibleMatches(st), s.priority)

	var sb strings.Builder
	sb.WriteString("🏟 *Matches by League*\n\n")
	if len(groups) == 0 {
		sb.WriteString(noResults)
		return sb.String(), nil
	}

	now := s.clock.Now()
	for _, g := range groups {
		sb.WriteString(fmt.Sprintf("%s (%d)\n\n", format.Bold(g.League), len(g.Matches)))
		for _, m := range g.Matches {
			writeMatch(&sb, m, now, s.loc)
		}
	}
	return sb.String(), nil
}

// Picks renders matches whose recommendation reaches the configured
// threshold.
func (s *PredictionService) Picks(ctx context.Context) (string, error) {
	st, err := s.loadMatches(ctx, "picks", view.DefaultFilters())
	if err != nil {
		return "", err
	}

	picks := derive.SortByKickoff(derive.Recommended(st.Data.All(), s.threshold))

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("⭐ *Recommended Picks* (%s+)\n\n", format.Confidence(s.threshold)))
	if len(picks) == 0 {
		sb.WriteString("No recommendations reach the threshold today.")
		return sb.String(), nil
	}

	now := s.clock.Now()
	for _, m := range picks {
		writeMatch(&sb, m, now, s.loc)
	}
	return sb.String(), nil
}

type accaPage = view.Pair[*models.DailyPredictionsResponse, []models.Accumulator]

// Accumulators renders today's accumulators. A non-empty accaType is stored
// as the chat's accumulator filter.
func (s *PredictionService) Accumulators(ctx context.Context, chatID int64, accaType string) (string, error) {
	filters := s.repo.GetFilters(chatID)
	if accaType != "" {
		if !validAccumulatorType(accaType) {
			return "", fmt.Errorf("unknown accumulator type %q", accaType)
		}
		filters.AccumulatorType = accaType
		s.repo.SaveFilters(chatID, filters)
	}
	return s.accumulators(ctx, filters)
}

// AccumulatorDigest renders every accumulator type for the scheduled push.
func (s *PredictionService) AccumulatorDigest(ctx context.Context) (string, error) {
	return s.accumulators(ctx, view.DefaultFilters())
}

func (s *PredictionService) accumulators(ctx context.Context, filters view.Filters) (string, error) {
	now := s.clock.Now()
	empty := accaPage{First: models.EmptyDailyPredictions(now.In(s.loc)), Second: models.EmptyAccumulators()}
	fetch := view.Join(
		func(ctx context.Context) (*models.DailyPredictionsResponse, error) {
			return s.api.DailyPredictions(ctx, "")
		},
		func(ctx context.Context) ([]models.Accumulator, error) {
			return s.api.Accumulators(ctx, "")
		},
	)

	st, err := load(ctx, "accumulators", empty, filters, fetch)
	if err != nil {
		return "", err
	}

	daily := st.Data.First
	accas := st.Data.Second
	if len(accas) == 0 {
		accas = daily.Accumulators
	}
	accas = derive.AccumulatorsByType(accas, st.Filters.AccumulatorType)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🎰 %s\n\n", format.Bold("Accumulators for "+daily.Date)))
	if len(accas) == 0 {
		sb.WriteString("No accumulators published yet.")
		return sb.String(), nil
	}

	for _, a := range accas {
		odds, conf := derive.Totals(a)
		sb.WriteString(format.Bold(format.AccumulatorLabel(a.Type)))
		if sub := format.AccumulatorSubtitle(a.Type); sub != "" {
			sb.WriteString(fmt.Sprintf(" · _%s_", sub))
		}
		sb.WriteString("\n")
		for _, p := range a.Picks {
			sb.WriteString(fmt.Sprintf("• %s vs %s: %s (%s) @ %s · %s\n",
				format.Escape(p.HomeTeam), format.Escape(p.AwayTeam),
				format.Escape(format.PredictionName(p.Prediction, p.HomeTeam, p.AwayTeam)),
				format.Escape(format.MarketName(string(p.Market))),
				format.Odds(p.Odds),
				format.Confidence(p.Confidence)))
		}
		sb.WriteString(fmt.Sprintf("Total odds: *%s* · Confidence: *%s*\n\n", format.Odds(odds), format.Confidence(conf)))
	}
	return sb.String(), nil
}

func validAccumulatorType(t string) bool {
	if t == derive.All {
		return true
	}
	for _, known := range models.AccumulatorTypes {
		if string(known) == t {
			return true
		}
	}
	return false
}

// Accuracy renders the track record. An empty period uses the chat's last
// selection.
func (s *PredictionService) Accuracy(ctx context.Context, chatID int64, period models.Period) (string, error) {
	filters := s.repo.GetFilters(chatID)
	if period != "" {
		filters.Period = period
		s.repo.SaveFilters(chatID, filters)
	}
	return s.accuracy(ctx, filters)
}

// AccuracyDigest renders the weekly track record for the scheduled push.
func (s *PredictionService) AccuracyDigest(ctx context.Context) (string, error) {
	filters := view.DefaultFilters()
	filters.Period = models.PeriodWeekly
	return s.accuracy(ctx, filters)
}

func (s *PredictionService) accuracy(ctx context.Context, filters view.Filters) (string, error) {
	st, err := load(ctx, "accuracy", (*models.AccuracyStats)(nil), filters,
		func(ctx context.Context) (*models.AccuracyStats, error) {
			return s.api.Accuracy(ctx, filters.Period)
		})
	if err != nil {
		return "", err
	}
	stats := st.Data

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📊 %s\n\n", format.Bold("Accuracy ("+strings.ReplaceAll(string(filters.Period), "_", " ")+")")))
	if stats.TotalPredictions == 0 {
		sb.WriteString("No settled predictions for this period.")
		return sb.String(), nil
	}

	sb.WriteString(fmt.Sprintf("Correct: *%d/%d* (%s)\n", stats.CorrectPredictions, stats.TotalPredictions, format.Confidence(stats.AccuracyRate)))
	sb.WriteString(fmt.Sprintf("Avg confidence: %s\n", format.Confidence(stats.AvgConfidence)))
	if stats.ProfitLoss != nil {
		sb.WriteString(fmt.Sprintf("Profit/loss: %+.2fu\n", *stats.ProfitLoss))
	}

	if len(stats.ByConfidenceRange) > 0 {
		sb.WriteString("\n*By confidence*\n")
		for _, r := range stats.ByConfidenceRange {
			sb.WriteString(fmt.Sprintf("• %s: %d/%d (%s)\n", format.Escape(r.Range), r.Correct, r.Total, format.Confidence(r.Accuracy)))
		}
	}
	if len(stats.ByMarket) > 0 {
		sb.WriteString("\n*By market*\n")
		for _, m := range stats.ByMarket {
			sb.WriteString(fmt.Sprintf("• %s: %d/%d (%s)\n", format.Escape(format.MarketName(string(m.Market))), m.Correct, m.Total, format.Confidence(m.Accuracy)))
		}
	}
	if len(stats.ByLeague) > 0 {
		sb.WriteString("\n*By league*\n")
		for _, l := range stats.ByLeague {
			sb.WriteString(fmt.Sprintf("• %s: %d/%d (%s)\n", format.Escape(l.League), l.Correct, l.Total, format.Confidence(l.Accuracy)))
		}
	}
	return sb.String(), nil
}

type eventsPage = view.Pair[*models.EventsResponse, *models.EventsResponse]

// Events renders prediction-market events. tab is "all" or "live".
func (s *PredictionService) Events(ctx context.Context, chatID int64, tab string) (string, error) {
	filters := s.repo.GetFilters(chatID)
	if tab != "" {
		filters.Tab = tab
		s.repo.SaveFilters(chatID, filters)
	}

	now := s.clock.Now()
	empty := eventsPage{First: models.EmptyEvents(now), Second: models.EmptyEvents(now)}
	st, err := load(ctx, "events", empty, filters, view.Join(s.api.Events, s.api.LiveEvents))
	if err != nil {
		return "", err
	}

	events := derive.EventsForTab(st.Data.First.Events, st.Data.Second.Events, st.Filters.Tab)

	var sb strings.Builder
	if st.Filters.Tab == "live" {
		sb.WriteString(fmt.Sprintf("🔴 *Live Markets* (%d)\n\n", len(events)))
	} else {
		sb.WriteString(fmt.Sprintf("🌐 *Prediction Markets* (%d)\n\n", len(events)))
	}
	if len(events) == 0 {
		sb.WriteString("No events right now.")
		return sb.String(), nil
	}

	for i, e := range events {
		if i == maxEvents {
			sb.WriteString(fmt.Sprintf("…and %d more\n", len(events)-maxEvents))
			break
		}
		sb.WriteString(format.Bold(e.Title))
		if e.IsLive {
			sb.WriteString(" 🔴")
		}
		sb.WriteString(fmt.Sprintf("\nVolume: %s · Liquidity: %s\n", format.Volume(e.Volume), format.Volume(e.Liquidity)))
		if len(e.Markets) > 0 {
			for _, o := range e.Markets[0].Outcomes {
				sb.WriteString(fmt.Sprintf("  %s: %s", format.Escape(o.Name), format.Probability(o.Probability)))
				if o.Odds != nil {
					sb.WriteString(fmt.Sprintf(" (%s)", format.Escape(*o.Odds)))
				}
				sb.WriteString("\n")
			}
		}
		sb.WriteString(fmt.Sprintf("[View market](%s)\n\n", format.EventURL(e.Slug)))
	}
	return sb.String(), nil
}

func (s *PredictionService) Match(ctx context.Context, matchID string) (string, error) {
	matchID = strings.TrimSpace(matchID)
	st, err := load(ctx, "match", (*models.MatchPrediction)(nil), view.DefaultFilters(),
		func(ctx context.Context) (*models.MatchPrediction, error) {
			return s.api.Match(ctx, matchID)
		})
	if err != nil {
		return "", err
	}
	p := st.Data

	var sb strings.Builder
	writeMatchPrediction(&sb, *p, s.clock.Now(), s.loc)

	home, away := p.HomeTeam, p.AwayTeam
	for _, t := range []models.Team{home, away} {
		sb.WriteString(fmt.Sprintf("%s: pos %d · form %s · %.1f scored / %.1f conceded\n", format.Bold(t.Name), t.Position, format.Escape(t.Form), t.AvgGoalsScored, t.AvgGoalsConceded))
	}

	if len(p.Factors) > 0 {
		sb.WriteString("\n*Factors*\n")
		for _, f := range p.Factors {
			sb.WriteString(fmt.Sprintf("• %s (%s): %s\n", format.Escape(f.Name), format.Impact(f.Impact), format.Escape(f.Description)))
		}
	}
	if p.Result != nil {
		outcome := "❌"
		if p.Result.IsCorrect {
			outcome = "✅"
		}
		sb.WriteString(fmt.Sprintf("\nResult: %d-%d %s\n", p.Result.HomeScore, p.Result.AwayScore, outcome))
	}
	return sb.String(), nil
}

// FindTeam renders the upcoming matches of the team best matching query.
func (s *PredictionService) FindTeam(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", fmt.Errorf("team name is required")
	}

	st, err := s.loadMatches(ctx, "find", view.DefaultFilters())
	if err != nil {
		return "", err
	}

	all := st.Data.All()
	team, ok := matchTeam(query, derive.TeamNames(all))
	if !ok {
		return fmt.Sprintf("🔍 No team found matching '%s'.", format.Escape(query)), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🔍 %s\n\n", format.Bold(team)))
	now := s.clock.Now()
	for _, m := range derive.SortByKickoff(derive.InvolvingTeam(all, team)) {
		writeMatch(&sb, m, now, s.loc)
	}
	return sb.String(), nil
}

func matchTeam(query string, names []string) (string, bool) {
	ranks := fuzzy.RankFindFold(query, names)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target, true
	}

	var best string
	bestScore := 0.0
	threshold := 0.7

	for _, name := range names {
		distance := fuzzy.LevenshteinDistance(strings.ToLower(query), strings.ToLower(name))
		maxLen := float64(max(len(query), len(name)))
		similarity := 1 - float64(distance)/maxLen

		if similarity > threshold && similarity > bestScore {
			best = name
			bestScore = similarity
		}
	}
	return best, best != ""
}

const noResults = "Nothing matches your filters. Use /filters to review them or /reset to clear them."

func writeMatchPrediction(sb *strings.Builder, p models.MatchPrediction, now time.Time, loc *time.Location) {
	sb.WriteString(fmt.Sprintf("%s vs %s\n", format.Bold(p.HomeTeam.Name), format.Bold(p.AwayTeam.Name)))
	sb.WriteString(fmt.Sprintf("%s · %s (%s)\n", format.Escape(p.League), format.Kickoff(p.Kickoff, loc), format.TimeUntil(p.Kickoff, now)))
	sb.WriteString(fmt.Sprintf("%s: %s",
		format.Escape(format.MarketName(string(p.Market))),
		format.Escape(format.PredictionName(p.Prediction, p.HomeTeam.Name, p.AwayTeam.Name))))
	if p.Odds > 0 {
		sb.WriteString(" @ " + format.Odds(p.Odds))
	}
	sb.WriteString(fmt.Sprintf("\nConfidence: %s (%s)", format.Confidence(p.Confidence), derive.ConfidenceBand(p.Confidence)))
	if p.Is2UpFriendly {
		sb.WriteString(" · 2UP ✅")
	}
	sb.WriteString("\n\n")
}

func writeMatch(sb *strings.Builder, m models.MatchAnalysis, now time.Time, loc *time.Location) {
	sb.WriteString(fmt.Sprintf("%s vs %s", format.Bold(m.HomeTeam), format.Bold(m.AwayTeam)))
	if m.IsDerby {
		sb.WriteString(" 🔥")
	}
	sb.WriteString(fmt.Sprintf("\n%s · %s (%s)\n", format.Escape(m.League), format.Kickoff(m.Kickoff, loc), format.TimeUntil(m.Kickoff, now)))

	side := derive.StrongestSide(m)
	sb.WriteString(fmt.Sprintf("Best: %s %s %s (%s)\n", format.Escape(side.Team), side.Market, format.Probability(side.Score/100), side.Band))
	if m.Recommendation.HasPick() {
		r := m.Recommendation
		sb.WriteString(fmt.Sprintf("Pick: %s · %s\n", format.Bold(r.Team+" "+string(r.Market)), format.Confidence(r.Confidence)))
	}
	sb.WriteString("\n")
}
