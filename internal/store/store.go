// Package store keeps the bounded in-memory collections shown on the
// dashboard: trends, competitors, sentiment, alerts, reports and the
// activity log. All mutations are serialized by a single mutex.
package store

import (
	"sync"
	"time"

	"github.com/azure/market-research-agent/internal/models"
)

// Collection caps
const (
	DataCap   = 25
	ReportCap = 10
	LogCap    = 50
)

// Snapshot is a point-in-time copy of the store's collections, newest first
type Snapshot struct {
	Trends      []models.Trend           `json:"trends"`
	Competitors []models.Competitor      `json:"competitors"`
	Sentiment   []models.SentimentSample `json:"sentiment"`
	Alerts      []models.Alert           `json:"alerts"`
	Reports     []models.Report          `json:"reports"`
}

// Store owns every record after insertion. Records are never modified, only
// evicted from the tail when a collection exceeds its cap.
type Store struct {
	mu          sync.RWMutex
	trends      []models.Trend
	competitors []models.Competitor
	sentiment   []models.SentimentSample
	alerts      []models.Alert
	reports     []models.Report

	logMu     sync.RWMutex
	logs      []models.LogEntry
	lastLogID int64
	now       func() time.Time
}

// New creates an empty store
func New() *Store {
	return &Store{now: time.Now}
}

// AppendTrends prepends trends and truncates to DataCap
func (s *Store) AppendTrends(trends []models.Trend) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trends = prependCapped(trends, s.trends, DataCap)
}

// AppendCompetitors prepends competitors and truncates to DataCap
func (s *Store) AppendCompetitors(competitors []models.Competitor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.competitors = prependCapped(competitors, s.competitors, DataCap)
}

// AppendSentiment prepends samples and truncates to DataCap
func (s *Store) AppendSentiment(samples []models.SentimentSample) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sentiment = prependCapped(samples, s.sentiment, DataCap)
}

// AppendAlerts prepends alerts and truncates to DataCap
func (s *Store) AppendAlerts(alerts []models.Alert) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = prependCapped(alerts, s.alerts, DataCap)
}

// AppendReport prepends report and truncates to ReportCap
func (s *Store) AppendReport(report models.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = prependCapped([]models.Report{report}, s.reports, ReportCap)
}

// Snapshot returns copies of all data collections
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Trends:      clone(s.trends),
		Competitors: clone(s.competitors),
		Sentiment:   clone(s.sentiment),
		Alerts:      clone(s.alerts),
		Reports:     clone(s.reports),
	}
}

// Report returns the stored report with id
func (s *Store) Report(id string) (models.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, report := range s.reports {
		if report.ID == id {
			return report, true
		}
	}
	return models.Report{}, false
}

// AppendLog adds an entry to the activity log, keeping the newest LogCap
// entries. IDs are based on the creation time in milliseconds and strictly
// increase even when several entries share a millisecond.
func (s *Store) AppendLog(logType, message string) models.LogEntry {
	s.logMu.Lock()
	defer s.logMu.Unlock()

	now := s.now().UTC()
	id := now.UnixMilli()
	if id <= s.lastLogID {
		id = s.lastLogID + 1
	}
	s.lastLogID = id

	entry := models.LogEntry{
		ID:        id,
		Type:      logType,
		Message:   message,
		Timestamp: now,
	}
	s.logs = prependCapped([]models.LogEntry{entry}, s.logs, LogCap)

	return entry
}

// Logs returns a copy of the activity log, newest first
func (s *Store) Logs() []models.LogEntry {
	s.logMu.RLock()
	defer s.logMu.RUnlock()
	return clone(s.logs)
}

// prependCapped returns incoming followed by existing, cut to limit entries
func prependCapped[T any](incoming, existing []T, limit int) []T {
	merged := make([]T, 0, min(len(incoming)+len(existing), limit))
	for _, item := range incoming {
		if len(merged) == limit {
			return merged
		}
		merged = append(merged, item)
	}
	for _, item := range existing {
		if len(merged) == limit {
			return merged
		}
		merged = append(merged, item)
	}
	return merged
}

func clone[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
