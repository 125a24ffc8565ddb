package models

import "time"

// Sentiment polarity values
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// Impact levels for competitor moves
const (
	ImpactHigh   = "High"
	ImpactMedium = "Medium"
	ImpactLow    = "Low"
)

// Competitor action categories, in classification priority order
const (
	ActionProductLaunch  = "Product Launch"
	ActionPartnership    = "Partnership"
	ActionAcquisition    = "Acquisition"
	ActionFunding        = "Funding"
	ActionPriceChange    = "Price Change"
	ActionExpansion      = "Expansion"
	ActionMarketActivity = "Market Activity"
)

// Alert types and priorities
const (
	AlertOpportunity = "opportunity"
	AlertThreat      = "threat"
	AlertTrend       = "trend"

	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Log entry types
const (
	LogInfo    = "info"
	LogSuccess = "success"
	LogWarning = "warning"
	LogError   = "error"
)

// Trend represents an emerging market trend found in a search result
type Trend struct {
	ID        string    `json:"id"`
	Keyword   string    `json:"keyword"`
	Growth    string    `json:"growth"`    // "+45%", "12 percent", ...
	Sentiment string    `json:"sentiment"` // "positive", "negative", "neutral"
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"` // hostname of the result URL
	URL       string    `json:"url,omitempty"`
	Content   string    `json:"content,omitempty"`
	Query     string    `json:"query"`
}

// Competitor represents a competitor move found in a search result
type Competitor struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	Impact    string    `json:"impact"` // "High", "Medium", "Low"
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source,omitempty"`
	URL       string    `json:"url,omitempty"`
	Content   string    `json:"content,omitempty"`
	Query     string    `json:"query"`
}

// SentimentSample represents a single market sentiment indicator
type SentimentSample struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	Sentiment  string    `json:"sentiment"`
	Confidence float64   `json:"confidence"` // [0.6, 1.0)
	Topic      string    `json:"topic"`
	Timestamp  time.Time `json:"timestamp"`
	Headline   string    `json:"headline"`
	URL        string    `json:"url"`
}

// Alert represents a threshold-crossing condition raised from a research batch.
// Exactly one of Trend or Competitor is set; both are copies, not references
// into the store.
type Alert struct {
	ID          string      `json:"id"`
	Type        string      `json:"type"`     // "opportunity", "threat", "trend"
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Priority    string      `json:"priority"` // "high", "medium", "low"
	Timestamp   time.Time   `json:"timestamp"`
	Source      string      `json:"source"`
	Actionable  bool        `json:"actionable"`
	Trend       *Trend      `json:"trend,omitempty"`
	Competitor  *Competitor `json:"competitor,omitempty"`
}

// LogEntry is a line in the activity log shown on the dashboard
type LogEntry struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"` // "info", "success", "warning", "error"
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// ReportSummary holds the headline counters of a report
type ReportSummary struct {
	TrendsFound       int `json:"trends_found"`
	PositiveTrends    int `json:"positive_trends"`
	CompetitorUpdates int `json:"competitor_updates"`
	HighImpactMoves   int `json:"high_impact_moves"`
	AlertsRaised      int `json:"alerts_raised"`
	CriticalAlerts    int `json:"critical_alerts"`
	SentimentAnalyzed int `json:"sentiment_analyzed"`
}

// TopTrend is the report view of a trend
type TopTrend struct {
	Keyword   string `json:"keyword"`
	Growth    string `json:"growth"`
	Sentiment string `json:"sentiment"`
	Source    string `json:"source"`
}

// CompetitorMove is the report view of a competitor record
type CompetitorMove struct {
	Company string `json:"company"`
	Action  string `json:"action"`
	Details string `json:"details"`
	Impact  string `json:"impact"`
}

// SentimentHistogram counts sentiment samples per polarity
type SentimentHistogram struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// Total returns the number of samples counted
func (h SentimentHistogram) Total() int {
	return h.Positive + h.Negative + h.Neutral
}

// Recommendation is a suggested action derived from the current data
type Recommendation struct {
	Type        string `json:"type"` // "strategic", "competitive"
	Priority    string `json:"priority"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// RiskFactor is a risk identified from the current data
type RiskFactor struct {
	Factor      string `json:"factor"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

// Opportunity is a high-growth positive trend worth pursuing
type Opportunity struct {
	Area        string `json:"area"`
	Potential   string `json:"potential"`
	Description string `json:"description"`
	Source      string `json:"source"`
}

// Report represents a compiled market intelligence report
type Report struct {
	ID                 string             `json:"id"`
	Industry           string             `json:"industry"`
	IndustryName       string             `json:"industry_name"`
	GeneratedAt        time.Time          `json:"generated_at"`
	Period             string             `json:"period"`
	Summary            ReportSummary      `json:"summary"`
	TopTrends          []TopTrend         `json:"top_trends"`
	KeyCompetitorMoves []CompetitorMove   `json:"key_competitor_moves"`
	MarketSentiment    SentimentHistogram `json:"market_sentiment"`
	Recommendations    []Recommendation   `json:"recommendations"`
	RiskFactors        []RiskFactor       `json:"risk_factors"`
	Opportunities      []Opportunity      `json:"opportunities"`
}
