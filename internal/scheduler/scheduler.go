package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/omarshaarawi/scorebot/internal/config"
)

const jobTimeout = 30 * time.Second

// Reports builds the scheduled pushes.
type Reports interface {
	Digest(ctx context.Context) (string, error)
	AccumulatorDigest(ctx context.Context) (string, error)
	AccuracyDigest(ctx context.Context) (string, error)
}

type Scheduler struct {
	s           gocron.Scheduler
	reports     Reports
	schedule    config.Schedule
	sendMessage func(string) error
}

func NewScheduler(reports Reports, sendMessage func(string) error, schedule config.Schedule, location *time.Location, options ...gocron.SchedulerOption) (*Scheduler, error) {
	if location == nil {
		location = time.UTC
	}

	s, err := gocron.NewScheduler(
		append([]gocron.SchedulerOption{gocron.WithLocation(location)}, options...)...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:           s,
		reports:     reports,
		schedule:    schedule,
		sendMessage: sendMessage,
	}, nil
}

func (s *Scheduler) Start() error {
	jobs := []struct {
		name    string
		crontab string
		task    func()
	}{
		{"daily digest", s.schedule.DigestCron, s.sendDigest},
		{"accumulators", s.schedule.AccumulatorCron, s.sendAccumulators},
		{"weekly accuracy", s.schedule.AccuracyCron, s.sendAccuracy},
	}

	for _, j := range jobs {
		_, err := s.s.NewJob(
			gocron.CronJob(j.crontab, false),
			gocron.NewTask(j.task),
			gocron.WithName(j.name),
		)
		if err != nil {
			return fmt.Errorf("failed to create %s job: %w", j.name, err)
		}
	}

	s.s.Start()
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) sendDigest() {
	s.run("daily digest", s.reports.Digest)
}

func (s *Scheduler) sendAccumulators() {
	s.run("accumulators", s.reports.AccumulatorDigest)
}

func (s *Scheduler) sendAccuracy() {
	s.run("weekly accuracy", s.reports.AccuracyDigest)
}

func (s *Scheduler) run(job string, report func(context.Context) (string, error)) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	text, err := report(ctx)
	if err != nil {
		slog.Error("Failed to build report", "job", job, "error", err)
		return
	}
	if err := s.sendMessage(text); err != nil {
		slog.Error("Failed to send report", "job", job, "error", err)
	}
}
