package search

import (
	"context"

	"github.com/azure/market-research-agent/internal/models"
)

// Category selects how raw results are mapped
type Category string

const (
	CategoryGeneral     Category = "general"
	CategoryTrends      Category = "trends"
	CategoryCompetitors Category = "competitors"
	CategorySentiment   Category = "sentiment"
)

// RawResult is a single hit returned by the search API
type RawResult struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

// Result is the success envelope returned by every search. Only the slice
// matching the requested category is populated.
type Result struct {
	Success     bool                     `json:"success"`
	Trends      []models.Trend           `json:"trends,omitempty"`
	Competitors []models.Competitor      `json:"competitors,omitempty"`
	Sentiment   []models.SentimentSample `json:"sentiment,omitempty"`
	Answer      string                   `json:"answer,omitempty"`
	Fallback    bool                     `json:"fallback"`
}

// Len returns the number of records in the result
func (r Result) Len() int {
	return len(r.Trends) + len(r.Competitors) + len(r.Sentiment)
}

// Searcher defines the contract of the search gateway. Search never fails;
// errors are replaced by canned data.
type Searcher interface {
	Search(ctx context.Context, query string, category Category) Result
	HasAPIKey() bool
	SetAPIKey(key string)
}
