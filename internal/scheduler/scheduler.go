package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/mixlog/internal/config"
	"github.com/mamadbah2/mixlog/internal/domain/models"
	"github.com/mamadbah2/mixlog/pkg/clients/notify"
)

// SnapshotBuilder produces the daily summary of an owner.
type SnapshotBuilder interface {
	DailySnapshot(ctx context.Context, owner string, day time.Time) (models.SummarySnapshot, string, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron      *cron.Cron
	reporting SnapshotBuilder
	notifier  notify.Client
	cfg       config.ReportingConfig
	logger    *zap.Logger
	now       func() time.Time
}

// NewScheduler creates a new scheduler instance. notifier may be nil.
func NewScheduler(cfg config.ReportingConfig, reporting SnapshotBuilder, notifier notify.Client, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	location, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("load scheduler timezone: %w", err)
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(location)),
		reporting: reporting,
		notifier:  notifier,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}, nil
}

// Start registers the daily summary job and starts the scheduler.
func (s *Scheduler) Start() error {
	if s.cfg.OwnerID == "" {
		s.logger.Warn("REPORT_OWNER_ID not set, daily summary disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.runDailySummary); err != nil {
		return fmt.Errorf("schedule daily summary: %w", err)
	}

	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule), zap.String("timezone", s.cfg.Timezone))
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runDailySummary() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.dailySummary(ctx); err != nil {
		s.logger.Error("daily summary failed", zap.Error(err))
	}
}

func (s *Scheduler) dailySummary(ctx context.Context) error {
	s.logger.Info("generating daily summary", zap.String("owner", s.cfg.OwnerID))

	_, digest, err := s.reporting.DailySnapshot(ctx, s.cfg.OwnerID, s.now())
	if err != nil {
		return fmt.Errorf("build daily snapshot: %w", err)
	}

	if s.notifier == nil {
		return nil
	}

	if err := s.notifier.SendText(ctx, notify.SendTextRequest{Title: "Daily production summary", Body: digest}); err != nil {
		return fmt.Errorf("send daily summary: %w", err)
	}

	s.logger.Info("daily summary sent successfully")
	return nil
}
