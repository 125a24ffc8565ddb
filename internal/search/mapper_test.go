package search

import (
	"strings"
	"testing"
	"time"

	"github.com/azure/market-research-agent/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMapper() *Mapper {
	m := NewMapper(FixedSynthetic{GrowthValue: "+25%", ConfidenceValue: 0.75})
	m.now = func() time.Time { return time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC) }
	return m
}

func TestMapper_MapTrendResults(t *testing.T) {
	m := newTestMapper()

	results := []RawResult{
		{
			Title:   "AI spending surges",
			Content: "Enterprise AI adoption saw 47% growth as innovation accelerates",
			URL:     "https://techcrunch.com/2025/03/ai-spending",
		},
		{
			Title:   "Quarterly Market Review",
			Content: "Analysts flag a decline in hardware orders",
			URL:     "https://www.forbes.com/review",
		},
	}

	trends := m.MapTrendResults(results, "technology industry trends")
	require.Len(t, trends, 2)

	first := trends[0]
	assert.Equal(t, "AI", first.Keyword)
	assert.Contains(t, first.Growth, "47%")
	assert.Equal(t, models.SentimentPositive, first.Sentiment)
	assert.Equal(t, "techcrunch.com", first.Source)
	assert.Equal(t, "technology industry trends", first.Query)
	assert.True(t, strings.HasSuffix(first.Content, "..."))
	assert.Equal(t, "trend_1741944600000_0", first.ID)

	second := trends[1]
	assert.Equal(t, "Quarterly Market", second.Keyword)
	assert.Equal(t, "+25%", second.Growth, "synthetic growth when no metric is found")
	assert.Equal(t, models.SentimentNegative, second.Sentiment)
	assert.Equal(t, "www.forbes.com", second.Source)
	assert.Equal(t, "trend_1741944600000_1", second.ID)
}

func TestMapper_ExcerptIsTruncated(t *testing.T) {
	m := newTestMapper()

	long := strings.Repeat("x", 500)
	trends := m.MapTrendResults([]RawResult{{Title: "Edge Computing", Content: long, URL: "https://wired.com/a"}}, "q")
	competitors := m.MapCompetitorResults([]RawResult{{Title: "Acme Corp launches", Content: long, URL: "https://reuters.com/a"}}, "q")

	assert.Equal(t, 200+len("..."), len(trends[0].Content))
	assert.Equal(t, 300+len("..."), len(competitors[0].Content))
}

func TestMapper_StripsMarkup(t *testing.T) {
	m := newTestMapper()

	trends := m.MapTrendResults([]RawResult{{
		Title:   "<b>Cloud Computing</b> &amp; more",
		Content: "<p>Spending <em>grew 30</em> points</p>",
		URL:     "https://venturebeat.com/cloud",
	}}, "q")

	require.Len(t, trends, 1)
	assert.Equal(t, "Cloud Computing", trends[0].Keyword)
	assert.Equal(t, "grew 30", trends[0].Growth)
	assert.NotContains(t, trends[0].Content, "<p>")
}

func TestMapper_MapCompetitorResults(t *testing.T) {
	m := newTestMapper()

	competitors := m.MapCompetitorResults([]RawResult{{
		Title:   "Globex Corp unveils revolutionary analytics suite",
		Content: "The major release targets enterprise buyers",
		URL:     "https://www.reuters.com/technology/globex",
	}}, "technology companies")

	require.Len(t, competitors, 1)
	c := competitors[0]
	assert.Equal(t, "Globex Corp", c.Name)
	assert.Equal(t, models.ActionProductLaunch, c.Action)
	assert.Equal(t, models.ImpactHigh, c.Impact)
	assert.Equal(t, "Globex Corp unveils revolutionary analytics suite", c.Details)
	assert.Equal(t, "www.reuters.com", c.Source)
	assert.Equal(t, "competitor_1741944600000_0", c.ID)
}

func TestMapper_MapSentimentResults(t *testing.T) {
	m := newTestMapper()

	samples := m.MapSentimentResults([]RawResult{
		{Title: "Customers praise support", Content: "A success story of growth", URL: "https://bloomberg.com/a"},
		{Title: "Reviews sour", Content: "Buyers voice concern over a problem", URL: "not a url"},
	}, "fintech market sentiment")

	require.Len(t, samples, 2)
	assert.Equal(t, models.SentimentPositive, samples[0].Sentiment)
	assert.Equal(t, 0.75, samples[0].Confidence)
	assert.Equal(t, "fintech market sentiment", samples[0].Topic)
	assert.Equal(t, "Customers praise support", samples[0].Headline)
	assert.Equal(t, "bloomberg.com", samples[0].Source)

	assert.Equal(t, models.SentimentNegative, samples[1].Sentiment)
	assert.Equal(t, unknownSource, samples[1].Source)
}

func TestRandomSynthetic_Bounds(t *testing.T) {
	r := NewRandomSynthetic(42)

	for i := 0; i < 200; i++ {
		growth := r.Growth()
		assert.True(t, strings.HasPrefix(growth, "+"))
		assert.True(t, strings.HasSuffix(growth, "%"))

		confidence := r.Confidence()
		assert.GreaterOrEqual(t, confidence, 0.6)
		assert.Less(t, confidence, 1.0)
	}
}
