package search

import (
	"fmt"
	"html"
	"net/url"
	"strings"
	"time"

	"github.com/azure/market-research-agent/internal/classifier"
	"github.com/azure/market-research-agent/internal/models"
	"github.com/microcosm-cc/bluemonday"
)

const (
	trendExcerptLength      = 200
	competitorExcerptLength = 300
	unknownSource           = "unknown"
)

// Mapper turns raw search hits into typed records
type Mapper struct {
	synthetic Synthetic
	policy    *bluemonday.Policy
	now       func() time.Time
}

// NewMapper creates a Mapper that fills missing metrics from synthetic
func NewMapper(synthetic Synthetic) *Mapper {
	if synthetic == nil {
		synthetic = NewRandomSynthetic(0)
	}
	return &Mapper{
		synthetic: synthetic,
		policy:    bluemonday.StrictPolicy(),
		now:       time.Now,
	}
}

// MapTrendResults builds one trend per raw hit
func (m *Mapper) MapTrendResults(results []RawResult, query string) []models.Trend {
	now := m.now().UTC()
	trends := make([]models.Trend, 0, len(results))

	for index, result := range results {
		title, content := m.clean(result.Title), m.clean(result.Content)

		keyword := classifier.ExtractKeywords(content, title)[0]
		if keyword == "" {
			keyword = classifier.FirstWords(query, 3)
		}

		growth, ok := classifier.ExtractGrowthMetric(content)
		if !ok {
			growth = m.synthetic.Growth()
		}

		trends = append(trends, models.Trend{
			ID:        recordID("trend", now, index),
			Keyword:   keyword,
			Growth:    growth,
			Sentiment: classifier.ClassifySentiment(content),
			Timestamp: now,
			Source:    hostname(result.URL),
			URL:       result.URL,
			Content:   excerpt(content, trendExcerptLength),
			Query:     query,
		})
	}

	return trends
}

// MapCompetitorResults builds one competitor record per raw hit
func (m *Mapper) MapCompetitorResults(results []RawResult, query string) []models.Competitor {
	now := m.now().UTC()
	competitors := make([]models.Competitor, 0, len(results))

	for index, result := range results {
		title, content := m.clean(result.Title), m.clean(result.Content)

		competitors = append(competitors, models.Competitor{
			ID:        recordID("competitor", now, index),
			Name:      classifier.ExtractCompanyName(title, content),
			Action:    classifier.ClassifyAction(title, content),
			Details:   title,
			Impact:    classifier.ClassifyImpact(content),
			Timestamp: now,
			Source:    hostname(result.URL),
			URL:       result.URL,
			Content:   excerpt(content, competitorExcerptLength),
			Query:     query,
		})
	}

	return competitors
}

// MapSentimentResults builds one sentiment sample per raw hit
func (m *Mapper) MapSentimentResults(results []RawResult, query string) []models.SentimentSample {
	now := m.now().UTC()
	samples := make([]models.SentimentSample, 0, len(results))

	for index, result := range results {
		content := m.clean(result.Content)

		samples = append(samples, models.SentimentSample{
			ID:         recordID("sentiment", now, index),
			Source:     hostname(result.URL),
			Sentiment:  classifier.ClassifySentiment(content),
			Confidence: m.synthetic.Confidence(),
			Topic:      query,
			Timestamp:  now,
			Headline:   m.clean(result.Title),
			URL:        result.URL,
		})
	}

	return samples
}

// clean strips markup from a snippet and restores entities escaped by the
// sanitizer
func (m *Mapper) clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(m.policy.Sanitize(s)))
}

// recordID is unique within one batch only
func recordID(prefix string, now time.Time, index int) string {
	return fmt.Sprintf("%s_%d_%d", prefix, now.UnixMilli(), index)
}

func hostname(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Hostname() == "" {
		return unknownSource
	}
	return parsed.Hostname()
}

// excerpt cuts s to limit runes and marks it as an excerpt
func excerpt(s string, limit int) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	if len(runes) > limit {
		runes = runes[:limit]
	}
	return string(runes) + "..."
}
