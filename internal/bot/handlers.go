package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/omarshaarawi/scorebot/internal/models"
	"github.com/omarshaarawi/scorebot/internal/service"
)

// Telegram rejects longer messages.
const maxMessageLen = 4096

const helpText = `Available commands:
/today - Today's predictions
/predictions - All published picks
/matches - Match analysis by date
/leagues - Match analysis by league
/picks - Recommended picks
/accas [safe|standard|high_odds|correct_score|all] - Accumulators
/accuracy [day|week|month|all] - Prediction accuracy
/events - Prediction markets
/live - Live prediction markets
/match <id> - Single match prediction
/find <team> - Upcoming matches for a team

Filters:
/market <market|all> - Filter by market (e.g. 2UP, over_2.5)
/league <name|all> - Filter by league
/minconf <percent> - Minimum confidence
/twoup on|off - 2UP-friendly picks only
/recommended on|off - Recommended matches only
/band <high|medium|low|all> - Matches by strongest-side band
/filters - Show your filters
/reset - Clear your filters`

type Handler struct {
	predictionService *service.PredictionService
}

func NewHandler(predictionService *service.PredictionService) *Handler {
	return &Handler{predictionService: predictionService}
}

func (h *Handler) HandleCommand(ctx context.Context, update tgbotapi.Update) tgbotapi.MessageConfig {
	chatID := update.Message.Chat.ID
	msg := tgbotapi.NewMessage(chatID, "")
	command := strings.ToLower(update.Message.Command())
	args := strings.TrimSpace(update.Message.CommandArguments())
	msg.ParseMode = "Markdown"
	msg.DisableWebPagePreview = true

	svc := h.predictionService
	switch command {
	case "start":
		msg.Text = "Welcome to ScoreBot! Use /help to see available commands."
	case "help":
		msg.Text = helpText
		msg.ParseMode = ""
	case "today":
		text, err := svc.Today(ctx, chatID)
		reply(&msg, "today's predictions", text, err)
	case "predictions":
		text, err := svc.Predictions(ctx, chatID)
		reply(&msg, "predictions", text, err)
	case "matches":
		text, err := svc.Matches(ctx, chatID)
		reply(&msg, "matches", text, err)
	case "leagues":
		text, err := svc.Leagues(ctx, chatID)
		reply(&msg, "matches", text, err)
	case "picks":
		text, err := svc.Picks(ctx)
		reply(&msg, "picks", text, err)
	case "accas":
		text, err := svc.Accumulators(ctx, chatID, strings.ToLower(args))
		reply(&msg, "accumulators", text, err)
	case "accuracy":
		h.handleAccuracy(ctx, &msg, args)
	case "events":
		text, err := svc.Events(ctx, chatID, "all")
		reply(&msg, "events", text, err)
	case "live":
		text, err := svc.Events(ctx, chatID, "live")
		reply(&msg, "live events", text, err)
	case "match":
		if args == "" {
			usage(&msg, "/match <id>")
			return msg
		}
		text, err := svc.Match(ctx, args)
		reply(&msg, "match", text, err)
	case "find":
		if args == "" {
			usage(&msg, "/find <team name>")
			return msg
		}
		text, err := svc.FindTeam(ctx, args)
		reply(&msg, "team", text, err)
	case "market":
		if args == "" {
			usage(&msg, "/market <market|all>")
			return msg
		}
		text, err := svc.SetMarket(chatID, args)
		confirm(&msg, text, err)
	case "league":
		if args == "" {
			usage(&msg, "/league <name|all>")
			return msg
		}
		msg.Text = svc.SetLeague(chatID, args)
	case "minconf":
		h.handleMinConfidence(&msg, args)
	case "twoup":
		on, err := parseToggle(args)
		if err != nil {
			usage(&msg, "/twoup on|off")
			return msg
		}
		msg.Text = svc.SetTwoUpOnly(chatID, on)
	case "recommended":
		on, err := parseToggle(args)
		if err != nil {
			usage(&msg, "/recommended on|off")
			return msg
		}
		msg.Text = svc.SetRecommendedOnly(chatID, on)
	case "band":
		if args == "" {
			usage(&msg, "/band <high|medium|low|all>")
			return msg
		}
		text, err := svc.SetScoreBand(chatID, args)
		confirm(&msg, text, err)
	case "filters":
		msg.Text = svc.DescribeFilters(chatID)
	case "reset":
		msg.Text = svc.ResetFilters(chatID)
	default:
		msg.Text = "Unknown command. Use /help to see available commands."
	}

	msg.Text = truncate(msg.Text)
	return msg
}

func (h *Handler) handleAccuracy(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	period, ok := parsePeriod(args)
	if !ok {
		usage(msg, "/accuracy [day|week|month|all]")
		return
	}
	text, err := h.predictionService.Accuracy(ctx, msg.ChatID, period)
	reply(msg, "accuracy", text, err)
}

func (h *Handler) handleMinConfidence(msg *tgbotapi.MessageConfig, args string) {
	pct, err := strconv.ParseFloat(strings.TrimSuffix(args, "%"), 64)
	if err != nil {
		usage(msg, "/minconf <percent>")
		return
	}
	text, err := h.predictionService.SetMinConfidence(msg.ChatID, pct)
	confirm(msg, text, err)
}

// reply fills msg with text, or with a plain-text warning when err is set.
func reply(msg *tgbotapi.MessageConfig, what, text string, err error) {
	if err != nil {
		msg.ParseMode = ""
		msg.Text = fmt.Sprintf("⚠️ Error fetching %s: %v", what, err)
		return
	}
	msg.Text = text
}

func confirm(msg *tgbotapi.MessageConfig, text string, err error) {
	if err != nil {
		msg.ParseMode = ""
		msg.Text = "⚠️ " + err.Error()
		return
	}
	msg.Text = text
}

func usage(msg *tgbotapi.MessageConfig, form string) {
	msg.ParseMode = ""
	msg.Text = "Usage: " + form
}

func parsePeriod(arg string) (models.Period, bool) {
	switch strings.ToLower(arg) {
	case "":
		return "", true
	case "day", "daily", "today":
		return models.PeriodDaily, true
	case "week", "weekly":
		return models.PeriodWeekly, true
	case "month", "monthly":
		return models.PeriodMonthly, true
	case "all", "all_time", "alltime":
		return models.PeriodAllTime, true
	}
	return "", false
}

func parseToggle(arg string) (bool, error) {
	switch strings.ToLower(arg) {
	case "on", "yes", "true", "1":
		return true, nil
	case "off", "no", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", arg)
}

func truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= maxMessageLen {
		return text
	}
	return string(runes[:maxMessageLen-1]) + "…"
}
