package search

import (
	"time"

	"github.com/azure/market-research-agent/internal/models"
)

// fallbackResult returns the canned dataset for category. It is used when no
// API key is configured or the search call fails.
func fallbackResult(category Category, query string, now time.Time) Result {
	now = now.UTC()
	result := Result{Success: true, Fallback: true}

	switch category {
	case CategoryTrends:
		result.Trends = []models.Trend{
			{ID: "1", Keyword: "AI Automation", Growth: "+45%", Sentiment: models.SentimentPositive, Timestamp: now, Source: "TechCrunch", Query: query},
			{ID: "2", Keyword: "Sustainable Tech", Growth: "+32%", Sentiment: models.SentimentPositive, Timestamp: now, Source: "Forbes", Query: query},
			{ID: "3", Keyword: "Remote Work Tools", Growth: "+28%", Sentiment: models.SentimentNeutral, Timestamp: now, Source: "Wired", Query: query},
			{ID: "4", Keyword: "Cybersecurity Mesh", Growth: "+38%", Sentiment: models.SentimentPositive, Timestamp: now, Source: "MIT Review", Query: query},
		}
	case CategoryCompetitors:
		result.Competitors = []models.Competitor{
			{ID: "1", Name: "TechCorp Inc", Action: models.ActionProductLaunch, Details: "New AI-powered analytics platform", Impact: models.ImpactHigh, Timestamp: now, Query: query},
			{ID: "2", Name: "InnovateTech", Action: models.ActionPriceChange, Details: "Reduced SaaS pricing by 20%", Impact: models.ImpactMedium, Timestamp: now, Query: query},
			{ID: "3", Name: "StartupXYZ", Action: models.ActionPartnership, Details: "Strategic alliance with Microsoft", Impact: models.ImpactHigh, Timestamp: now, Query: query},
		}
	}

	return result
}
