package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/azure/market-research-agent/internal/models"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Researcher is the part of the monitoring service driven by the scheduler
type Researcher interface {
	RequireAPIKey() error
	Tick(ctx context.Context)
	Interval() time.Duration
	LogActivity(logType, message string)
}

// Service handles scheduling of research cycles
type Service struct {
	researcher Researcher
	cron       *cron.Cron
	ctx        context.Context
	cancel     context.CancelFunc

	mu       sync.Mutex
	running  bool
	entryID  cron.EntryID
	interval time.Duration
}

// NewService creates a new scheduler service. The timer is disarmed until Start.
func NewService(researcher Researcher) *Service {
	logger := cron.PrintfLogger(logrus.StandardLogger())
	ctx, cancel := context.WithCancel(context.Background())

	s := &Service{
		researcher: researcher,
		cron:       cron.New(cron.WithLogger(logger), cron.WithChain(cron.Recover(logger))),
		ctx:        ctx,
		cancel:     cancel,
	}
	s.cron.Start()
	return s
}

// Start runs one research cycle immediately and arms the repeating timer.
// Starting an already running scheduler is a no-op.
func (s *Service) Start() error {
	if err := s.researcher.RequireAPIKey(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	s.arm()
	s.running = true
	s.researcher.LogActivity(models.LogInfo, fmt.Sprintf("Starting continuous monitoring (%ds intervals)", int(s.interval.Seconds())))

	go s.researcher.Tick(s.ctx)
	return nil
}

// Stop disarms the timer. A cycle already in flight runs to completion.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.cron.Remove(s.entryID)
	s.running = false
	s.researcher.LogActivity(models.LogInfo, "Monitoring stopped")
}

// Reschedule re-arms the timer with the researcher's current interval
func (s *Service) Reschedule() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.cron.Remove(s.entryID)
	s.arm()
	logrus.Infof("Research timer rescheduled every %v", s.interval)
}

// Running reports whether the timer is armed
func (s *Service) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Close disarms the timer, cancels in-flight cycles and waits for running
// jobs until ctx is done
func (s *Service) Close(ctx context.Context) {
	s.cancel()
	done := s.cron.Stop()

	select {
	case <-done.Done():
		logrus.Info("Scheduler stopped")
	case <-ctx.Done():
		logrus.Warn("Scheduler stop timed out waiting for running jobs")
	}
}

func (s *Service) arm() {
	s.interval = s.researcher.Interval()
	s.entryID = s.cron.Schedule(cron.Every(s.interval), cron.FuncJob(func() {
		logrus.Info("Starting scheduled research cycle")
		s.researcher.Tick(s.ctx)
	}))
}
