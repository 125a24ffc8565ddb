package reports

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/azure/market-research-agent/internal/models"
	"github.com/azure/market-research-agent/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var generatedAt = time.Date(2025, 6, 30, 14, 0, 0, 0, time.UTC)

func newTestCompiler() *Compiler {
	c := NewCompiler()
	c.now = func() time.Time { return generatedAt }
	return c
}

func highImpactCompetitors(n int) []models.Competitor {
	competitors := make([]models.Competitor, n)
	for i := range competitors {
		competitors[i] = models.Competitor{
			ID:      fmt.Sprintf("c%d", i),
			Name:    fmt.Sprintf("Company %d", i),
			Action:  models.ActionProductLaunch,
			Details: "details",
			Impact:  models.ImpactHigh,
		}
	}
	return competitors
}

func sampleSnapshot() store.Snapshot {
	return store.Snapshot{
		Trends: []models.Trend{
			{Keyword: "Edge Computing", Growth: "+12%", Sentiment: models.SentimentNeutral, Source: "wired.com"},
			{Keyword: "AI Agents", Growth: "+38%", Sentiment: models.SentimentPositive, Source: "techcrunch.com"},
			{Keyword: "Quantum Computing", Growth: "N/A", Sentiment: models.SentimentNegative, Source: "forbes.com"},
			{Keyword: "Sustainability", Growth: "+52%", Sentiment: models.SentimentPositive, Source: "theverge.com"},
			{Keyword: "IoT", Growth: "+31%", Sentiment: models.SentimentNeutral, Source: "venturebeat.com"},
			{Keyword: "Automation", Growth: "+45%", Sentiment: models.SentimentPositive, Source: "forbes.com"},
		},
		Competitors: []models.Competitor{
			{Name: "Initech", Action: models.ActionPriceChange, Impact: models.ImpactMedium},
			{Name: "Globex Corp", Action: models.ActionAcquisition, Details: "Buys rival", Impact: models.ImpactHigh},
			{Name: "Hooli", Action: models.ActionFunding, Impact: models.ImpactLow},
		},
		Sentiment: []models.SentimentSample{
			{Sentiment: models.SentimentPositive},
			{Sentiment: models.SentimentPositive},
			{Sentiment: models.SentimentNegative},
			{Sentiment: models.SentimentNeutral},
		},
		Alerts: []models.Alert{
			{Priority: models.PriorityHigh},
			{Priority: models.PriorityMedium},
		},
	}
}

func TestCompile_EmptyStore(t *testing.T) {
	c := newTestCompiler()

	report := c.Compile(store.New().Snapshot(), "technology", models.Industries)

	assert.Equal(t, models.ReportSummary{}, report.Summary)
	assert.Empty(t, report.TopTrends)
	assert.Empty(t, report.KeyCompetitorMoves)
	assert.Equal(t, models.SentimentHistogram{}, report.MarketSentiment)
	assert.Empty(t, report.Recommendations)
	assert.Empty(t, report.RiskFactors)
	assert.Empty(t, report.Opportunities)
	assert.Equal(t, "Technology", report.IndustryName)
	assert.Equal(t, DefaultPeriod, report.Period)
	assert.NotEmpty(t, report.ID)
}

func TestCompile_Summary(t *testing.T) {
	c := newTestCompiler()

	report := c.Compile(sampleSnapshot(), "fintech", models.Industries)

	assert.Equal(t, models.ReportSummary{
		TrendsFound:       6,
		PositiveTrends:    3,
		CompetitorUpdates: 3,
		HighImpactMoves:   1,
		AlertsRaised:      2,
		CriticalAlerts:    1,
		SentimentAnalyzed: 4,
	}, report.Summary)
	assert.Equal(t, "FinTech", report.IndustryName)
	assert.Equal(t, models.SentimentHistogram{Positive: 2, Negative: 1, Neutral: 1}, report.MarketSentiment)
}

func TestCompile_TopTrendsSortedByGrowth(t *testing.T) {
	c := newTestCompiler()

	report := c.Compile(sampleSnapshot(), "technology", models.Industries)

	require.Len(t, report.TopTrends, 5)
	keywords := make([]string, 0, 5)
	for _, trend := range report.TopTrends {
		keywords = append(keywords, trend.Keyword)
	}
	assert.Equal(t, []string{"Sustainability", "Automation", "AI Agents", "IoT", "Edge Computing"}, keywords)
}

func TestCompile_DoesNotReorderSnapshot(t *testing.T) {
	c := newTestCompiler()
	snapshot := sampleSnapshot()

	c.Compile(snapshot, "technology", models.Industries)

	assert.Equal(t, "Edge Computing", snapshot.Trends[0].Keyword)
}

func TestCompile_RecommendationsAndOpportunities(t *testing.T) {
	c := newTestCompiler()

	report := c.Compile(sampleSnapshot(), "technology", models.Industries)

	require.Len(t, report.Recommendations, 2)
	assert.Equal(t, "strategic", report.Recommendations[0].Type)
	assert.Equal(t, "Consider investing in AI Agents (+38% growth)", report.Recommendations[0].Description)
	assert.Equal(t, "competitive", report.Recommendations[1].Type)
	assert.Equal(t, "Monitor Globex Corp's Acquisition strategy closely", report.Recommendations[1].Description)

	require.Len(t, report.Opportunities, 3)
	assert.Equal(t, "AI Agents", report.Opportunities[0].Area)
	assert.Equal(t, "+38% growth with positive sentiment", report.Opportunities[0].Description)
	assert.Equal(t, "Sustainability", report.Opportunities[1].Area)
	assert.Equal(t, "Automation", report.Opportunities[2].Area)

	require.Len(t, report.KeyCompetitorMoves, 1)
	assert.Equal(t, "Globex Corp", report.KeyCompetitorMoves[0].Company)
	assert.Empty(t, report.RiskFactors)
}

func TestCompile_RiskFactorBoundary(t *testing.T) {
	c := newTestCompiler()

	t.Run("Six high impact moves", func(t *testing.T) {
		report := c.Compile(store.Snapshot{Competitors: highImpactCompetitors(6)}, "technology", models.Industries)

		require.Len(t, report.RiskFactors, 1)
		assert.Equal(t, "high", report.RiskFactors[0].Severity)
		assert.Contains(t, report.RiskFactors[0].Description, "6")
		assert.Len(t, report.KeyCompetitorMoves, 3)
		assert.Equal(t, "Company 0", report.KeyCompetitorMoves[0].Company)
	})

	t.Run("Two high impact moves", func(t *testing.T) {
		report := c.Compile(store.Snapshot{Competitors: highImpactCompetitors(2)}, "technology", models.Industries)

		assert.Empty(t, report.RiskFactors)
		assert.Len(t, report.KeyCompetitorMoves, 2)
	})
}

func TestCompile_Idempotent(t *testing.T) {
	c := newTestCompiler()
	s := store.New()
	snapshot := sampleSnapshot()
	s.AppendTrends(snapshot.Trends)
	s.AppendCompetitors(snapshot.Competitors)
	s.AppendSentiment(snapshot.Sentiment)
	s.AppendAlerts(snapshot.Alerts)

	first := c.Compile(s.Snapshot(), "technology", models.Industries)
	s.AppendReport(first)
	second := c.Compile(s.Snapshot(), "technology", models.Industries)

	assert.Equal(t, first.Summary, second.Summary)
	assert.Equal(t, first.TopTrends, second.TopTrends)
	assert.Equal(t, first.KeyCompetitorMoves, second.KeyCompetitorMoves)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestCompile_UnknownIndustryUsesID(t *testing.T) {
	c := newTestCompiler()

	report := c.Compile(store.Snapshot{}, "aerospace", models.Industries)

	assert.Equal(t, "aerospace", report.IndustryName)
}

func TestFileName(t *testing.T) {
	report := models.Report{Industry: "real-estate", GeneratedAt: generatedAt}

	assert.Equal(t, "market-intelligence-real-estate-2025-06-30.json", FileName(report, "json"))
	assert.Equal(t, "market-intelligence-real-estate-2025-06-30.pdf", FileName(report, "pdf"))
}

func TestMarshalJSON(t *testing.T) {
	c := newTestCompiler()
	report := c.Compile(sampleSnapshot(), "technology", models.Industries)

	data, err := MarshalJSON(report)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "technology", decoded["industry"])
	assert.Contains(t, decoded, "market_sentiment")
	assert.Contains(t, decoded, "key_competitor_moves")
}

func TestRenderPDF(t *testing.T) {
	c := newTestCompiler()

	tests := []struct {
		name     string
		snapshot store.Snapshot
	}{
		{"Populated report", sampleSnapshot()},
		{"Empty report", store.Snapshot{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := c.Compile(tt.snapshot, "technology", models.Industries)

			data, err := RenderPDFBytes(report)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
		})
	}
}

func TestSentimentPercentages(t *testing.T) {
	positive, negative, neutral := SentimentPercentages(models.SentimentHistogram{Positive: 2, Negative: 1, Neutral: 1})
	assert.Equal(t, 50, positive)
	assert.Equal(t, 25, negative)
	assert.Equal(t, 25, neutral)

	positive, negative, neutral = SentimentPercentages(models.SentimentHistogram{})
	assert.Zero(t, positive+negative+neutral)
}
