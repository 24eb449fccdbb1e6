package config

import (
	"fmt"
	"net/url"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

type Config struct {
	TelegramBot TelegramBot
	PredictAPI  PredictAPI
	Views       Views
	Schedule    Schedule
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`
}

type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_TOKEN" required:"true"`
	ChatID int64  `envconfig:"CHAT_ID" required:"true"`
}

type PredictAPI struct {
	BaseURL string        `envconfig:"API_BASE_URL" default:"https://score-predict-api.devsiten.workers.dev"`
	Timeout time.Duration `envconfig:"API_TIMEOUT" default:"10s"`
}

type Views struct {
	// RecommendThreshold is a percentage (0-100).
	RecommendThreshold float64  `envconfig:"RECOMMEND_THRESHOLD" default:"70"`
	LeaguePriority     []string `envconfig:"LEAGUE_PRIORITY"`
	Timezone           string   `envconfig:"TIMEZONE" default:"Europe/London"`
	File               string   `envconfig:"VIEWS_FILE"`
}

type Schedule struct {
	DigestCron      string `envconfig:"DIGEST_CRON" default:"0 9 * * *"`
	AccumulatorCron string `envconfig:"ACCA_CRON" default:"30 9 * * *"`
	AccuracyCron    string `envconfig:"ACCURACY_CRON" default:"0 10 * * 1"`
}

// viewsFile is the optional YAML overlay for the views section.
type viewsFile struct {
	RecommendThreshold *float64 `yaml:"recommend_threshold"`
	LeaguePriority     []string `yaml:"league_priority"`
	Timezone           string   `yaml:"timezone"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}

	if c.Views.File != "" {
		if err := c.Views.overlay(c.Views.File); err != nil {
			return nil, err
		}
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// overlay applies the YAML views file. Explicitly set environment variables
// win over the file.
func (v *Views) overlay(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read views file: %w", err)
	}

	var f viewsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse views file: %w", err)
	}

	if _, set := os.LookupEnv("RECOMMEND_THRESHOLD"); !set && f.RecommendThreshold != nil {
		v.RecommendThreshold = *f.RecommendThreshold
	}
	if _, set := os.LookupEnv("LEAGUE_PRIORITY"); !set && len(f.LeaguePriority) > 0 {
		v.LeaguePriority = f.LeaguePriority
	}
	if _, set := os.LookupEnv("TIMEZONE"); !set && f.Timezone != "" {
		v.Timezone = f.Timezone
	}
	return nil
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.PredictAPI.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("API_BASE_URL must be an absolute URL, got %q", c.PredictAPI.BaseURL)
	}
	if c.PredictAPI.Timeout < 0 {
		return fmt.Errorf("API_TIMEOUT must not be negative")
	}
	if c.Views.RecommendThreshold < 0 || c.Views.RecommendThreshold > 100 {
		return fmt.Errorf("RECOMMEND_THRESHOLD must be between 0 and 100, got %v", c.Views.RecommendThreshold)
	}
	if _, err := time.LoadLocation(c.Views.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Views.Timezone, err)
	}

	crons := map[string]string{
		"DIGEST_CRON":   c.Schedule.DigestCron,
		"ACCA_CRON":     c.Schedule.AccumulatorCron,
		"ACCURACY_CRON": c.Schedule.AccuracyCron,
	}
	for name, expr := range crons {
		if _, err := cron.ParseStandard(expr); err != nil {
			return fmt.Errorf("invalid %s %q: %w", name, expr, err)
		}
	}
	return nil
}

// Location returns the display timezone, falling back to UTC.
func (v Views) Location() *time.Location {
	loc, err := time.LoadLocation(v.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
