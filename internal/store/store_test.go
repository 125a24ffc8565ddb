package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/azure/market-research-agent/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTrends(prefix string, n int) []models.Trend {
	trends := make([]models.Trend, n)
	for i := range trends {
		trends[i] = models.Trend{ID: fmt.Sprintf("%s%d", prefix, i)}
	}
	return trends
}

func TestStore_AppendPrependsNewestFirst(t *testing.T) {
	s := New()

	s.AppendTrends(makeTrends("old", 3))
	s.AppendTrends(makeTrends("new", 2))

	trends := s.Snapshot().Trends
	require.Len(t, trends, 5)
	assert.Equal(t, "new0", trends[0].ID)
	assert.Equal(t, "new1", trends[1].ID)
	assert.Equal(t, "old0", trends[2].ID)
	assert.Equal(t, "old2", trends[4].ID)
}

func TestStore_AppendNeverExceedsCap(t *testing.T) {
	tests := []struct {
		name    string
		batches []int
	}{
		{"Single small batch", []int{4}},
		{"Exactly the cap", []int{DataCap}},
		{"Batch larger than cap", []int{DataCap * 3}},
		{"Many batches", []int{10, 10, 10, 10}},
		{"Empty batch", []int{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			for i, n := range tt.batches {
				s.AppendTrends(makeTrends(fmt.Sprintf("b%d_", i), n))
				s.AppendAlerts(make([]models.Alert, n))
				s.AppendCompetitors(make([]models.Competitor, n))
				s.AppendSentiment(make([]models.SentimentSample, n))

				snapshot := s.Snapshot()
				assert.LessOrEqual(t, len(snapshot.Trends), DataCap)
				assert.LessOrEqual(t, len(snapshot.Alerts), DataCap)
				assert.LessOrEqual(t, len(snapshot.Competitors), DataCap)
				assert.LessOrEqual(t, len(snapshot.Sentiment), DataCap)
			}
		})
	}
}

func TestStore_OversizedBatchKeepsHead(t *testing.T) {
	s := New()
	s.AppendTrends(makeTrends("old", 5))
	s.AppendTrends(makeTrends("big", 30))

	trends := s.Snapshot().Trends
	require.Len(t, trends, DataCap)
	assert.Equal(t, "big0", trends[0].ID)
	assert.Equal(t, "big24", trends[DataCap-1].ID)
}

func TestStore_ReportCap(t *testing.T) {
	s := New()
	for i := 0; i < 15; i++ {
		s.AppendReport(models.Report{ID: fmt.Sprintf("r%d", i)})
	}

	reports := s.Snapshot().Reports
	require.Len(t, reports, ReportCap)
	assert.Equal(t, "r14", reports[0].ID)

	_, ok := s.Report("r14")
	assert.True(t, ok)
	_, ok = s.Report("r0")
	assert.False(t, ok, "oldest report is evicted")
}

func TestStore_LogCapAndIDs(t *testing.T) {
	s := New()
	fixed := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	for i := 0; i < 60; i++ {
		s.AppendLog(models.LogInfo, fmt.Sprintf("message %d", i))
	}

	logs := s.Logs()
	require.Len(t, logs, LogCap)
	assert.Equal(t, "message 59", logs[0].Message)

	for i := 0; i < len(logs)-1; i++ {
		assert.Greater(t, logs[i].ID, logs[i+1].ID, "ids strictly increase with creation order")
	}
	assert.Equal(t, fixed.UnixMilli()+59, logs[0].ID)
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	s := New()
	s.AppendTrends(makeTrends("t", 1))

	snapshot := s.Snapshot()
	snapshot.Trends[0].ID = "mutated"

	assert.Equal(t, "t0", s.Snapshot().Trends[0].ID)
}

func TestStore_ConcurrentAppends(t *testing.T) {
	s := New()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.AppendTrends(makeTrends(fmt.Sprintf("g%d_", n), 7))
			s.AppendLog(models.LogInfo, "appended")
		}(i)
	}
	wg.Wait()

	assert.Len(t, s.Snapshot().Trends, DataCap)
	assert.Len(t, s.Logs(), 20)
}
