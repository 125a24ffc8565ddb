// Package reports compiles market intelligence reports from a store snapshot
// and exports them as JSON and PDF documents.
package reports

import (
	"fmt"
	"sort"
	"time"

	"github.com/azure/market-research-agent/internal/classifier"
	"github.com/azure/market-research-agent/internal/models"
	"github.com/azure/market-research-agent/internal/store"
	"github.com/google/uuid"
)

const (
	topTrendsLimit       = 5
	keyMovesLimit        = 3
	strategicGrowth      = 35
	opportunityGrowth    = 30
	competitionRiskCount = 2

	// DefaultPeriod is the period label printed on compiled reports
	DefaultPeriod = "Weekly Analysis"
)

// Compiler reduces a store snapshot into a report
type Compiler struct {
	now   func() time.Time
	newID func() string
}

// NewCompiler creates a new report compiler
func NewCompiler() *Compiler {
	return &Compiler{
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

// Compile builds a report for industryID from snapshot. It does not modify
// the snapshot or the store it came from.
func (c *Compiler) Compile(snapshot store.Snapshot, industryID string, directory []models.Industry) models.Report {
	highImpact := highImpactMoves(snapshot.Competitors)

	return models.Report{
		ID:                 c.newID(),
		Industry:           industryID,
		IndustryName:       models.IndustryName(directory, industryID),
		GeneratedAt:        c.now().UTC(),
		Period:             DefaultPeriod,
		Summary:            summarize(snapshot, len(highImpact)),
		TopTrends:          topTrends(snapshot.Trends),
		KeyCompetitorMoves: keyMoves(highImpact),
		MarketSentiment:    histogram(snapshot.Sentiment),
		Recommendations:    recommendations(snapshot.Trends, highImpact),
		RiskFactors:        riskFactors(highImpact),
		Opportunities:      opportunities(snapshot.Trends),
	}
}

func summarize(snapshot store.Snapshot, highImpactCount int) models.ReportSummary {
	summary := models.ReportSummary{
		TrendsFound:       len(snapshot.Trends),
		CompetitorUpdates: len(snapshot.Competitors),
		HighImpactMoves:   highImpactCount,
		AlertsRaised:      len(snapshot.Alerts),
		SentimentAnalyzed: len(snapshot.Sentiment),
	}

	for _, trend := range snapshot.Trends {
		if trend.Sentiment == models.SentimentPositive {
			summary.PositiveTrends++
		}
	}

	for _, alert := range snapshot.Alerts {
		if alert.Priority == models.PriorityHigh {
			summary.CriticalAlerts++
		}
	}

	return summary
}

// topTrends sorts a copy of trends by parsed growth, highest first. Equal
// growth keeps store order.
func topTrends(trends []models.Trend) []models.TopTrend {
	sorted := make([]models.Trend, len(trends))
	copy(sorted, trends)
	sort.SliceStable(sorted, func(i, j int) bool {
		return classifier.ParseGrowth(sorted[i].Growth) > classifier.ParseGrowth(sorted[j].Growth)
	})

	if len(sorted) > topTrendsLimit {
		sorted = sorted[:topTrendsLimit]
	}

	top := make([]models.TopTrend, 0, len(sorted))
	for _, trend := range sorted {
		top = append(top, models.TopTrend{
			Keyword:   trend.Keyword,
			Growth:    trend.Growth,
			Sentiment: trend.Sentiment,
			Source:    trend.Source,
		})
	}
	return top
}

func highImpactMoves(competitors []models.Competitor) []models.Competitor {
	var moves []models.Competitor
	for _, competitor := range competitors {
		if competitor.Impact == models.ImpactHigh {
			moves = append(moves, competitor)
		}
	}
	return moves
}

func keyMoves(highImpact []models.Competitor) []models.CompetitorMove {
	limit := keyMovesLimit
	if len(highImpact) < limit {
		limit = len(highImpact)
	}

	moves := make([]models.CompetitorMove, 0, limit)
	for _, competitor := range highImpact[:limit] {
		moves = append(moves, models.CompetitorMove{
			Company: competitor.Name,
			Action:  competitor.Action,
			Details: competitor.Details,
			Impact:  competitor.Impact,
		})
	}
	return moves
}

func histogram(samples []models.SentimentSample) models.SentimentHistogram {
	var h models.SentimentHistogram
	for _, sample := range samples {
		switch sample.Sentiment {
		case models.SentimentPositive:
			h.Positive++
		case models.SentimentNegative:
			h.Negative++
		case models.SentimentNeutral:
			h.Neutral++
		}
	}
	return h
}

// recommendations scans trends in store order (newest first), not in growth
// order, so the strategic recommendation names the newest trend above the
// threshold rather than the fastest-growing one.
func recommendations(trends []models.Trend, highImpact []models.Competitor) []models.Recommendation {
	recs := []models.Recommendation{}

	for _, trend := range trends {
		if classifier.ParseGrowth(trend.Growth) > strategicGrowth {
			recs = append(recs, models.Recommendation{
				Type:        "strategic",
				Priority:    models.PriorityHigh,
				Title:       "Capitalize on High-Growth Trends",
				Description: fmt.Sprintf("Consider investing in %s (%s growth)", trend.Keyword, trend.Growth),
			})
			break
		}
	}

	if len(highImpact) > 0 {
		move := highImpact[0]
		recs = append(recs, models.Recommendation{
			Type:        "competitive",
			Priority:    models.PriorityHigh,
			Title:       "Respond to Competitor Actions",
			Description: fmt.Sprintf("Monitor %s's %s strategy closely", move.Name, move.Action),
		})
	}

	return recs
}

func riskFactors(highImpact []models.Competitor) []models.RiskFactor {
	risks := []models.RiskFactor{}

	if len(highImpact) > competitionRiskCount {
		risks = append(risks, models.RiskFactor{
			Factor:      "Increased Competition",
			Severity:    "high",
			Description: fmt.Sprintf("%d major competitor moves detected", len(highImpact)),
		})
	}

	return risks
}

// opportunities keeps store order; they are not ranked by growth
func opportunities(trends []models.Trend) []models.Opportunity {
	opps := []models.Opportunity{}

	for _, trend := range trends {
		if classifier.ParseGrowth(trend.Growth) > opportunityGrowth && trend.Sentiment == models.SentimentPositive {
			opps = append(opps, models.Opportunity{
				Area:        trend.Keyword,
				Potential:   "high",
				Description: fmt.Sprintf("%s growth with positive sentiment", trend.Growth),
				Source:      trend.Source,
			})
		}
	}

	return opps
}
