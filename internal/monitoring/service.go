package monitoring

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/azure/market-research-agent/internal/alerts"
	"github.com/azure/market-research-agent/internal/config"
	"github.com/azure/market-research-agent/internal/metrics"
	"github.com/azure/market-research-agent/internal/models"
	"github.com/azure/market-research-agent/internal/notifications"
	"github.com/azure/market-research-agent/internal/reports"
	"github.com/azure/market-research-agent/internal/search"
	"github.com/azure/market-research-agent/internal/storage"
	"github.com/azure/market-research-agent/internal/store"
	"github.com/sirupsen/logrus"
)

var (
	// ErrMissingAPIKey is returned when research is requested without a search credential
	ErrMissingAPIKey = errors.New("search API key is not configured")
	// ErrCycleInProgress is returned when a research cycle is already running
	ErrCycleInProgress = errors.New("research cycle already in progress")
	// ErrUnknownIndustry is returned when selecting an industry outside the directory
	ErrUnknownIndustry = errors.New("unknown industry")
	// ErrArchiveDisabled is returned by archive reads when no report archive is configured
	ErrArchiveDisabled = errors.New("report archive is not configured")
	// ErrInvalidArchiveName is returned for archive names outside the report prefix
	ErrInvalidArchiveName = errors.New("invalid archive name")
)

const cycleTimeout = 10 * time.Minute

// Service runs research cycles for the active industry and compiles reports
type Service struct {
	config      *config.Config
	searcher    search.Searcher
	store       *store.Store
	synthesizer *alerts.Synthesizer
	compiler    *reports.Compiler
	archive     storage.StorageInterface
	notifier    notifications.NotificationInterface
	metrics     metrics.MetricsCollector
	industries  []models.Industry
	now         func() time.Time

	cycle atomic.Bool

	mu              sync.RWMutex
	industry        string
	intervalSeconds int
	lastRun         time.Time
	lastRunDuration time.Duration
}

// Counts is the number of records currently held per collection
type Counts struct {
	Trends      int `json:"trends"`
	Competitors int `json:"competitors"`
	Sentiment   int `json:"sentiment"`
	Alerts      int `json:"alerts"`
	Reports     int `json:"reports"`
}

// Status describes the current research configuration and state
type Status struct {
	Industry        string     `json:"industry"`
	IndustryName    string     `json:"industry_name"`
	IntervalSeconds int        `json:"interval_seconds"`
	HasAPIKey       bool       `json:"has_api_key"`
	CycleInProgress bool       `json:"cycle_in_progress"`
	LastRun         *time.Time `json:"last_run,omitempty"`
	LastRunDuration string     `json:"last_run_duration,omitempty"`
	Counts          Counts     `json:"counts"`
}

// NewService creates a new monitoring service. archive and notifier may be nil.
func NewService(
	cfg *config.Config,
	searcher search.Searcher,
	st *store.Store,
	archive storage.StorageInterface,
	notifier notifications.NotificationInterface,
	collector metrics.MetricsCollector,
) *Service {
	if collector == nil {
		collector = metrics.NopCollector{}
	}

	return &Service{
		config:          cfg,
		searcher:        searcher,
		store:           st,
		synthesizer:     alerts.NewSynthesizer(),
		compiler:        reports.NewCompiler(),
		archive:         archive,
		notifier:        notifier,
		metrics:         collector,
		industries:      models.Industries,
		now:             time.Now,
		industry:        cfg.Industry,
		intervalSeconds: int(cfg.Interval() / time.Second),
	}
}

// Store returns the rolling store backing the service
func (s *Service) Store() *store.Store {
	return s.store
}

// HasAPIKey reports whether the search gateway holds a credential
func (s *Service) HasAPIKey() bool {
	return s.searcher.HasAPIKey()
}

// SetAPIKey replaces the search credential used by subsequent requests
func (s *Service) SetAPIKey(key string) {
	s.searcher.SetAPIKey(key)
	if key == "" {
		s.log(models.LogWarning, "Tavily API key cleared")
		return
	}
	s.log(models.LogSuccess, "Tavily API key configured")
}

// Industry returns the active industry id
func (s *Service) Industry() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.industry
}

// SetIndustry switches the active industry. Unknown ids are rejected.
func (s *Service) SetIndustry(id string) error {
	if _, ok := models.FindIndustry(s.industries, id); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownIndustry, id)
	}

	s.mu.Lock()
	s.industry = id
	s.mu.Unlock()

	s.log(models.LogInfo, fmt.Sprintf("Active industry set to %s", models.IndustryName(s.industries, id)))
	return nil
}

// Interval returns the research interval
func (s *Service) Interval() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return time.Duration(s.intervalSeconds) * time.Second
}

// SetInterval clamps seconds to the allowed bounds and returns the value applied
func (s *Service) SetInterval(seconds int) int {
	clamped := config.ClampInterval(seconds)

	s.mu.Lock()
	s.intervalSeconds = clamped
	s.mu.Unlock()

	s.log(models.LogInfo, fmt.Sprintf("Search interval set to %ds", clamped))
	return clamped
}

// CycleInProgress reports whether a research cycle is running
func (s *Service) CycleInProgress() bool {
	return s.cycle.Load()
}

// Status returns a snapshot of the service configuration and store counts
func (s *Service) Status() Status {
	snapshot := s.store.Snapshot()

	s.mu.RLock()
	defer s.mu.RUnlock()

	status := Status{
		Industry:        s.industry,
		IndustryName:    models.IndustryName(s.industries, s.industry),
		IntervalSeconds: s.intervalSeconds,
		HasAPIKey:       s.searcher.HasAPIKey(),
		CycleInProgress: s.cycle.Load(),
		Counts: Counts{
			Trends:      len(snapshot.Trends),
			Competitors: len(snapshot.Competitors),
			Sentiment:   len(snapshot.Sentiment),
			Alerts:      len(snapshot.Alerts),
			Reports:     len(snapshot.Reports),
		},
	}
	if !s.lastRun.IsZero() {
		lastRun := s.lastRun
		status.LastRun = &lastRun
		status.LastRunDuration = s.lastRunDuration.String()
	}

	return status
}

// RunResearch performs one research cycle and blocks until it completes
func (s *Service) RunResearch(ctx context.Context) error {
	if err := s.acquire(); err != nil {
		return err
	}
	defer s.cycle.Store(false)

	s.research(ctx)
	return nil
}

// StartResearch acquires the cycle guard and runs the cycle in the background
func (s *Service) StartResearch(ctx context.Context) error {
	if err := s.acquire(); err != nil {
		return err
	}

	go func() {
		defer s.cycle.Store(false)
		s.research(ctx)
	}()
	return nil
}

// Tick runs a scheduled cycle. A tick that finds a cycle running is skipped.
func (s *Service) Tick(ctx context.Context) {
	err := s.RunResearch(ctx)
	switch {
	case errors.Is(err, ErrCycleInProgress):
		s.metrics.RecordSkippedCycle()
		s.log(models.LogWarning, "Skipped scheduled research: previous cycle still running")
	case err != nil:
		logrus.Errorf("Scheduled research failed: %v", err)
	}
}

// RequireAPIKey records an error log entry and returns ErrMissingAPIKey when
// no search credential is configured
func (s *Service) RequireAPIKey() error {
	if !s.searcher.HasAPIKey() {
		s.log(models.LogError, "Please configure Tavily API key first")
		return ErrMissingAPIKey
	}
	return nil
}

// LogActivity records an entry in the activity log
func (s *Service) LogActivity(logType, message string) {
	s.log(logType, message)
}

func (s *Service) acquire() error {
	if err := s.RequireAPIKey(); err != nil {
		return err
	}
	if !s.cycle.CompareAndSwap(false, true) {
		return ErrCycleInProgress
	}
	return nil
}

func (s *Service) research(ctx context.Context) {
	start := s.now()
	industry := s.Industry()

	ctx, cancel := context.WithTimeout(ctx, cycleTimeout)
	defer cancel()

	s.log(models.LogInfo, fmt.Sprintf("Starting comprehensive market research for %s industry", industry))

	trends := s.searcher.Search(ctx, fmt.Sprintf("%s industry trends 2024 2025 emerging technologies innovation", industry), search.CategoryTrends)
	if trends.Success {
		s.store.AppendTrends(trends.Trends)
		s.log(models.LogSuccess, fmt.Sprintf("Found %d new market trends", len(trends.Trends)))
	}

	competitors := s.searcher.Search(ctx, fmt.Sprintf("%s companies product launches partnerships acquisitions 2024 2025", industry), search.CategoryCompetitors)
	if competitors.Success {
		s.store.AppendCompetitors(competitors.Competitors)
		s.log(models.LogSuccess, fmt.Sprintf("Found %d competitor updates", len(competitors.Competitors)))
	}

	sentiment := s.searcher.Search(ctx, fmt.Sprintf("%s market sentiment customer satisfaction reviews 2024", industry), search.CategorySentiment)
	if sentiment.Success {
		s.store.AppendSentiment(sentiment.Sentiment)
		s.log(models.LogSuccess, fmt.Sprintf("Analyzed %d sentiment indicators", len(sentiment.Sentiment)))
	}

	generated := s.synthesizer.Synthesize(trends.Trends, competitors.Competitors, sentiment.Sentiment)
	if len(generated) > 0 {
		s.store.AppendAlerts(generated)
		s.log(models.LogInfo, fmt.Sprintf("Generated %d intelligent alerts", len(generated)))
		s.dispatchAlerts(ctx, generated)
	}
	s.metrics.RecordAlerts(len(generated))

	duration := s.now().Sub(start)
	s.mu.Lock()
	s.lastRun = start
	s.lastRunDuration = duration
	s.mu.Unlock()

	s.metrics.RecordCycle(duration)
	logrus.Infof("Research cycle for %s completed in %v", industry, duration)
}

func (s *Service) dispatchAlerts(ctx context.Context, generated []models.Alert) {
	if s.notifier == nil {
		return
	}
	for i := range generated {
		if err := s.notifier.SendAlert(ctx, &generated[i]); err != nil {
			logrus.Errorf("Failed to dispatch alert %s: %v", generated[i].ID, err)
		}
	}
}

// GenerateReport compiles the current store contents into a report, records
// it and fans it out to the archive and notification channels
func (s *Service) GenerateReport(ctx context.Context) models.Report {
	industry := s.Industry()
	report := s.compiler.Compile(s.store.Snapshot(), industry, s.industries)

	s.store.AppendReport(report)
	s.metrics.RecordReport()
	s.log(models.LogSuccess, fmt.Sprintf("Comprehensive market intelligence report generated for %s", industry))

	s.publishReport(ctx, report)
	return report
}

func (s *Service) publishReport(ctx context.Context, report models.Report) {
	if s.archive == nil && s.notifier == nil {
		return
	}

	pdf, err := reports.RenderPDFBytes(report)
	if err != nil {
		logrus.Errorf("Failed to render report %s: %v", report.ID, err)
	}

	if s.archive != nil {
		s.archiveReport(ctx, report, pdf)
	}

	if s.notifier != nil {
		if err := s.notifier.SendReport(ctx, &report, pdf); err != nil {
			logrus.Errorf("Failed to send report %s: %v", report.ID, err)
		}
	}
}

const archivePrefix = "reports/"

// ArchivePath returns the archive object name for a report export
func ArchivePath(report models.Report, ext string) string {
	return archivePrefix + report.ID + "/" + reports.FileName(report, ext)
}

// ArchivedReports lists every archived report export, sorted by name
func (s *Service) ArchivedReports(ctx context.Context) ([]string, error) {
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}
	return s.archive.List(ctx, archivePrefix)
}

// ArchivedReport downloads one export of an archived report
func (s *Service) ArchivedReport(ctx context.Context, reportID, filename string) ([]byte, error) {
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}
	if !validArchiveSegment(reportID) || !validArchiveSegment(filename) {
		return nil, ErrInvalidArchiveName
	}
	return s.archive.Retrieve(ctx, archivePrefix+reportID+"/"+filename)
}

func validArchiveSegment(segment string) bool {
	return segment != "" && segment != "." && segment != ".." &&
		!strings.ContainsAny(segment, "/\\")
}

func (s *Service) archiveReport(ctx context.Context, report models.Report, pdf []byte) {
	data, err := reports.MarshalJSON(report)
	if err != nil {
		logrus.Errorf("Failed to marshal report %s: %v", report.ID, err)
		return
	}

	if err := s.archive.Store(ctx, ArchivePath(report, "json"), data); err != nil {
		logrus.Errorf("Failed to archive report %s: %v", report.ID, err)
		return
	}

	if len(pdf) > 0 {
		if err := s.archive.Store(ctx, ArchivePath(report, "pdf"), pdf); err != nil {
			logrus.Errorf("Failed to archive report PDF %s: %v", report.ID, err)
		}
	}
}

// log records an activity log entry and mirrors it to logrus
func (s *Service) log(logType, message string) {
	s.store.AppendLog(logType, message)

	switch logType {
	case models.LogError:
		logrus.Error(message)
	case models.LogWarning:
		logrus.Warn(message)
	default:
		logrus.Info(message)
	}
}
