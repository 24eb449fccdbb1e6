// Package format turns raw API values into display strings.
package format

import (
	"fmt"
	"time"

	"github.com/omarshaarawi/scorebot/internal/models"
	"github.com/shopspring/decimal"
)

const Started = "Started"

// TimeUntil renders the time left before kickoff. Every unit is truncated.
func TimeUntil(kickoff, now time.Time) string {
	diff := kickoff.Sub(now)
	if diff < 0 {
		return Started
	}

	hours := int64(diff / time.Hour)
	minutes := int64((diff % time.Hour) / time.Minute)

	if hours >= 24 {
		return fmt.Sprintf("%dd %dh", hours/24, hours%24)
	}
	if hours >= 1 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

func Odds(odds float64) string {
	return decimal.NewFromFloat(odds).StringFixed(2)
}

// Volume abbreviates a USD amount. Halves round away from zero.
func Volume(volume float64) string {
	v := decimal.NewFromFloat(volume)
	switch {
	case volume >= 1_000_000:
		return "$" + v.Div(decimal.NewFromInt(1_000_000)).StringFixed(1) + "M"
	case volume >= 1_000:
		return "$" + v.Div(decimal.NewFromInt(1_000)).StringFixed(0) + "K"
	default:
		return "$" + v.StringFixed(0)
	}
}

func Confidence(c models.Confidence) string {
	return percent(c.Percent())
}

// Probability formats a 0-1 market probability.
func Probability(p float64) string {
	return percent(p * 100)
}

// Impact formats a signed factor weight such as 0.12 as "+12%".
func Impact(impact float64) string {
	pct := decimal.NewFromFloat(impact * 100).Round(0)
	if pct.IsPositive() {
		return "+" + pct.String() + "%"
	}
	return pct.String() + "%"
}

func percent(pct float64) string {
	return decimal.NewFromFloat(pct).StringFixed(0) + "%"
}

func Kickoff(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("Mon 02 Jan 15:04")
}

func EventURL(slug string) string {
	return "https://polymarket.com/event/" + slug
}
