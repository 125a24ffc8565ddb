package search

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/azure/market-research-agent/internal/config"
	"github.com/azure/market-research-agent/internal/metrics"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

var (
	trendDomains    = []string{"techcrunch.com", "forbes.com", "wired.com", "venturebeat.com", "theverge.com"}
	businessDomains = []string{"crunchbase.com", "reuters.com", "bloomberg.com", "businesswire.com"}
	excludedDomains = []string{"wikipedia.org", "reddit.com"}
)

// Fallback reasons reported to metrics
const (
	reasonMissingKey = "missing_api_key"
	reasonRateLimit  = "rate_limit"
	reasonTransport  = "transport"
	reasonStatus     = "http_status"
	reasonDecode     = "decode"
)

type tavilyRequest struct {
	Query             string   `json:"query"`
	SearchDepth       string   `json:"search_depth"`
	IncludeAnswer     bool     `json:"include_answer"`
	IncludeRawContent bool     `json:"include_raw_content"`
	MaxResults        int      `json:"max_results"`
	IncludeDomains    []string `json:"include_domains"`
	ExcludeDomains    []string `json:"exclude_domains"`
}

// Results is a pointer so a missing or null field can be told apart from an
// empty list.
type tavilyResponse struct {
	Results *[]RawResult `json:"results"`
	Answer  string       `json:"answer"`
}

// Gateway implements Searcher against the Tavily search API
type Gateway struct {
	client   *resty.Client
	endpoint string
	limiter  *rate.Limiter
	mapper   *Mapper
	metrics  metrics.MetricsCollector
	now      func() time.Time

	mu     sync.RWMutex
	apiKey string
}

// Ensure Gateway implements Searcher
var _ Searcher = (*Gateway)(nil)

// NewGateway creates a new search gateway
func NewGateway(cfg *config.Config, mapper *Mapper, collector metrics.MetricsCollector) *Gateway {
	if collector == nil {
		collector = metrics.NopCollector{}
	}
	if mapper == nil {
		mapper = NewMapper(nil)
	}

	perMinute := cfg.SearchRatePerMinute
	if perMinute <= 0 {
		perMinute = 30
	}

	endpoint := cfg.TavilyEndpoint
	if endpoint == "" {
		endpoint = config.DefaultTavilyEndpoint
	}

	return &Gateway{
		client: resty.New().
			SetTimeout(30*time.Second).
			SetHeader("User-Agent", "Market-Research-Agent/1.0"),
		endpoint: endpoint,
		limiter:  rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 3),
		mapper:   mapper,
		metrics:  collector,
		now:      time.Now,
		apiKey:   cfg.TavilyAPIKey,
	}
}

// SetAPIKey replaces the credential used for subsequent searches
func (g *Gateway) SetAPIKey(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.apiKey = key
}

// HasAPIKey reports whether a credential is configured
func (g *Gateway) HasAPIKey() bool {
	return g.key() != ""
}

func (g *Gateway) key() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.apiKey
}

// Search runs query against the search API and maps the hits for category.
// It always returns a successful Result: a missing key or any failure yields
// the canned dataset for category instead.
func (g *Gateway) Search(ctx context.Context, query string, category Category) Result {
	start := g.now()
	defer func() {
		g.metrics.RecordSearch(string(category), time.Since(start))
	}()

	apiKey := g.key()
	if apiKey == "" {
		logrus.Info("Tavily API key not configured, using fallback data")
		return g.fallback(category, query, reasonMissingKey)
	}

	logrus.Debugf("Searching with Tavily: %s (type: %s)", query, category)

	if err := g.limiter.Wait(ctx); err != nil {
		logrus.Warnf("Search rate limiter aborted for %s: %v", category, err)
		return g.fallback(category, query, reasonRateLimit)
	}

	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Api-Key", apiKey).
		SetBody(buildRequest(query, category)).
		Post(g.endpoint)

	if err != nil {
		logrus.Errorf("Tavily API error: %v", err)
		return g.fallback(category, query, reasonTransport)
	}

	if !resp.IsSuccess() {
		logrus.Errorf("Tavily API returned status %d: %s", resp.StatusCode(), string(resp.Body()))
		return g.fallback(category, query, reasonStatus)
	}

	var data tavilyResponse
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		logrus.Errorf("Failed to decode Tavily response: %v", err)
		return g.fallback(category, query, reasonDecode)
	}

	if data.Results == nil {
		logrus.Errorf("Tavily response for %s has no results field", category)
		return g.fallback(category, query, reasonDecode)
	}
	results := *data.Results

	result := Result{Success: true, Answer: data.Answer}

	switch category {
	case CategoryTrends:
		result.Trends = g.mapper.MapTrendResults(results, query)
	case CategoryCompetitors:
		result.Competitors = g.mapper.MapCompetitorResults(results, query)
	case CategorySentiment:
		result.Sentiment = g.mapper.MapSentimentResults(results, query)
	}

	return result
}

func (g *Gateway) fallback(category Category, query, reason string) Result {
	logrus.Infof("Using fallback data for %s search (%s)", category, reason)
	g.metrics.RecordSearchFallback(string(category), reason)
	return fallbackResult(category, query, g.now())
}

func buildRequest(query string, category Category) tavilyRequest {
	req := tavilyRequest{
		Query:             query,
		SearchDepth:       "advanced",
		IncludeAnswer:     true,
		IncludeRawContent: false,
		MaxResults:        10,
		IncludeDomains:    businessDomains,
		ExcludeDomains:    excludedDomains,
	}

	if category == CategoryTrends {
		req.MaxResults = 15
		req.IncludeDomains = trendDomains
	}

	return req
}
