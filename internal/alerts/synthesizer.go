// Package alerts raises opportunity and threat alerts from a research batch.
package alerts

import (
	"fmt"
	"time"

	"github.com/azure/market-research-agent/internal/classifier"
	"github.com/azure/market-research-agent/internal/models"
)

// HighGrowthThreshold is the growth percentage a trend must exceed to raise
// an opportunity alert
const HighGrowthThreshold = 40

// Synthesizer scans a batch for threshold-crossing records
type Synthesizer struct {
	now func() time.Time
}

// NewSynthesizer creates a new alert synthesizer
func NewSynthesizer() *Synthesizer {
	return &Synthesizer{now: time.Now}
}

// Synthesize returns at most one opportunity alert, for the first trend whose
// growth exceeds 40%, and at most one threat alert, for the first High impact
// competitor. Records are taken in batch order. The sentiment batch does not
// raise alerts.
func (s *Synthesizer) Synthesize(trends []models.Trend, competitors []models.Competitor, sentiment []models.SentimentSample) []models.Alert {
	now := s.now().UTC()
	var alerts []models.Alert

	for _, trend := range trends {
		if classifier.ParseGrowth(trend.Growth) <= HighGrowthThreshold {
			continue
		}
		trend := trend
		alerts = append(alerts, models.Alert{
			ID:          fmt.Sprintf("alert_trend_%d", now.UnixMilli()),
			Type:        models.AlertOpportunity,
			Title:       "High-Growth Trend Detected",
			Description: fmt.Sprintf("%s showing %s growth - potential market opportunity", trend.Keyword, trend.Growth),
			Priority:    models.PriorityHigh,
			Timestamp:   now,
			Source:      "Trend Analysis",
			Actionable:  true,
			Trend:       &trend,
		})
		break
	}

	for _, competitor := range competitors {
		if competitor.Impact != models.ImpactHigh {
			continue
		}
		competitor := competitor
		alerts = append(alerts, models.Alert{
			ID:          fmt.Sprintf("alert_competitor_%d", now.UnixMilli()),
			Type:        models.AlertThreat,
			Title:       "Major Competitor Move",
			Description: fmt.Sprintf("%s - %s: %s", competitor.Name, competitor.Action, competitor.Details),
			Priority:    models.PriorityHigh,
			Timestamp:   now,
			Source:      "Competitor Intelligence",
			Actionable:  true,
			Competitor:  &competitor,
		})
		break
	}

	return alerts
}
