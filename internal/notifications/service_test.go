package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/azure/market-research-agent/internal/config"
	"github.com/azure/market-research-agent/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishAlert(alert *models.Alert) error {
	args := m.Called(alert)
	return args.Error(0)
}

func sampleReport() *models.Report {
	return &models.Report{
		ID:           "rep-1",
		Industry:     "technology",
		IndustryName: "Technology",
		GeneratedAt:  time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
		Period:       "Weekly Analysis",
		Summary: models.ReportSummary{
			TrendsFound:       4,
			PositiveTrends:    2,
			CompetitorUpdates: 3,
			HighImpactMoves:   1,
			AlertsRaised:      2,
		},
		TopTrends: []models.TopTrend{
			{Keyword: "AI Integration", Growth: "+45%", Sentiment: models.SentimentPositive, Source: "techcrunch.com"},
		},
		KeyCompetitorMoves: []models.CompetitorMove{
			{Company: "TechCorp", Action: models.ActionProductLaunch, Details: "Launched a new platform", Impact: models.ImpactHigh},
		},
		MarketSentiment: models.SentimentHistogram{Positive: 2, Negative: 1, Neutral: 1},
	}
}

func sampleAlert() *models.Alert {
	return &models.Alert{
		ID:          "alert_trend_1",
		Type:        models.AlertOpportunity,
		Title:       "High Growth Trend Detected",
		Description: "AI Integration is showing +45% growth",
		Priority:    models.PriorityHigh,
		Source:      "techcrunch.com",
		Timestamp:   time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
		Actionable:  true,
	}
}

func TestSendAlert_TeamsAndPublisher(t *testing.T) {
	var received TeamsMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	alert := sampleAlert()
	publisher := new(MockPublisher)
	publisher.On("PublishAlert", alert).Return(nil)

	service := NewService(&config.Config{TeamsWebhookURL: server.URL}, publisher)
	require.NoError(t, service.SendAlert(context.Background(), alert))

	assert.Equal(t, "MessageCard", received.Type)
	assert.Equal(t, "High Growth Trend Detected", received.Title)
	assert.Equal(t, "0078D4", received.ThemeColor)
	publisher.AssertExpectations(t)
}

func TestSendAlert_PublisherError(t *testing.T) {
	alert := sampleAlert()
	publisher := new(MockPublisher)
	publisher.On("PublishAlert", alert).Return(errors.New("no responders"))

	service := NewService(&config.Config{}, publisher)
	err := service.SendAlert(context.Background(), alert)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "NATS: no responders")
}

func TestSendReport_TeamsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	service := NewService(&config.Config{TeamsWebhookURL: server.URL}, nil)
	err := service.SendReport(context.Background(), sampleReport(), nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}

func TestSendReport_EmailAttachesPDF(t *testing.T) {
	cfg := &config.Config{
		NotificationEmail: "team@example.com",
		SMTPHost:          "smtp.example.com",
		SMTPPort:          587,
		SMTPUsername:      "agent@example.com",
	}
	service := NewService(cfg, nil)

	var sent strings.Builder
	service.sendMail = func(m *gomail.Message) error {
		_, err := m.WriteTo(&sent)
		return err
	}

	require.NoError(t, service.SendReport(context.Background(), sampleReport(), []byte("%PDF-1.3 test")))

	out := sent.String()
	assert.Contains(t, out, "team@example.com")
	assert.Contains(t, out, "market-intelligence-technology-2025-03-14.pdf")
	assert.Contains(t, out, "text/html")
}

func TestSendReport_NoChannelsConfigured(t *testing.T) {
	service := NewService(&config.Config{}, nil)
	assert.NoError(t, service.SendReport(context.Background(), sampleReport(), nil))
}

func TestBuildReportMessage(t *testing.T) {
	service := NewService(&config.Config{}, nil)
	message := service.buildReportMessage(sampleReport())

	assert.Equal(t, "Market Intelligence Report - Technology", message.Title)
	require.Len(t, message.Sections, 2)
	assert.Equal(t, "Top Trends", message.Sections[1].ActivityTitle)
	assert.Contains(t, message.Sections[1].ActivityText, "AI Integration")
}

func TestBuildEmailText(t *testing.T) {
	text := buildEmailText(sampleReport())

	assert.Contains(t, text, "Market Intelligence Report - Technology")
	assert.Contains(t, text, "Trends Found: 4 (2 positive)")
	assert.Contains(t, text, "1. TechCorp - Product Launch: Launched a new platform")
}
