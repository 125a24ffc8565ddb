package notifications

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/azure/market-research-agent/internal/config"
	"github.com/azure/market-research-agent/internal/models"
	"github.com/azure/market-research-agent/internal/reports"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// AlertPublisher forwards alerts to a message bus
type AlertPublisher interface {
	PublishAlert(alert *models.Alert) error
}

// Service handles sending notifications via various channels
type Service struct {
	config    *config.Config
	client    *resty.Client
	publisher AlertPublisher
	sendMail  func(m *gomail.Message) error
}

// Ensure Service implements NotificationInterface
var _ NotificationInterface = (*Service)(nil)

// TeamsMessage represents a Microsoft Teams message
type TeamsMessage struct {
	Type       string         `json:"@type"`
	Context    string         `json:"@context"`
	ThemeColor string         `json:"themeColor,omitempty"`
	Title      string         `json:"title"`
	Text       string         `json:"text"`
	Sections   []TeamsSection `json:"sections,omitempty"`
}

type TeamsSection struct {
	ActivityTitle    string      `json:"activityTitle,omitempty"`
	ActivitySubtitle string      `json:"activitySubtitle,omitempty"`
	ActivityText     string      `json:"activityText,omitempty"`
	Facts            []TeamsFact `json:"facts,omitempty"`
	Markdown         bool        `json:"markdown,omitempty"`
}

type TeamsFact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewService creates a new notification service. publisher may be nil.
func NewService(cfg *config.Config, publisher AlertPublisher) *Service {
	s := &Service{
		config:    cfg,
		client:    resty.New().SetTimeout(30 * time.Second),
		publisher: publisher,
	}
	s.sendMail = func(m *gomail.Message) error {
		d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
		return d.DialAndSend(m)
	}
	return s
}

// SendReport sends a compiled report via configured notification channels
func (s *Service) SendReport(ctx context.Context, report *models.Report, pdf []byte) error {
	var errors []string

	if s.config.TeamsWebhookURL != "" {
		if err := s.postToTeams(ctx, s.buildReportMessage(report)); err != nil {
			logrus.Errorf("Failed to send Teams report: %v", err)
			errors = append(errors, fmt.Sprintf("Teams: %v", err))
		} else {
			logrus.Info("Successfully sent report to Teams")
		}
	}

	if s.config.NotificationEmail != "" {
		if err := s.sendEmail(report, pdf); err != nil {
			logrus.Errorf("Failed to send email notification: %v", err)
			errors = append(errors, fmt.Sprintf("Email: %v", err))
		} else {
			logrus.Info("Successfully sent report via email")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("notification errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

// SendAlert forwards an alert to Teams and the message bus
func (s *Service) SendAlert(ctx context.Context, alert *models.Alert) error {
	var errors []string

	if s.config.TeamsWebhookURL != "" {
		if err := s.postToTeams(ctx, s.buildAlertMessage(alert)); err != nil {
			errors = append(errors, fmt.Sprintf("Teams: %v", err))
		}
	}

	if s.publisher != nil {
		if err := s.publisher.PublishAlert(alert); err != nil {
			errors = append(errors, fmt.Sprintf("NATS: %v", err))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("alert notification errors: %s", strings.Join(errors, "; "))
	}

	logrus.Debugf("Alert dispatched: %s - %s", alert.Type, alert.Title)
	return nil
}

func (s *Service) postToTeams(ctx context.Context, message *TeamsMessage) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(message).
		Post(s.config.TeamsWebhookURL)

	if err != nil {
		return fmt.Errorf("failed to send Teams message: %w", err)
	}

	if resp.StatusCode() != 200 {
		return fmt.Errorf("Teams webhook returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	return nil
}

func (s *Service) buildReportMessage(report *models.Report) *TeamsMessage {
	message := &TeamsMessage{
		Type:    "MessageCard",
		Context: "https://schema.org/extensions",
		Title:   fmt.Sprintf("Market Intelligence Report - %s", report.IndustryName),
		Text: fmt.Sprintf("%d trends, %d competitor updates and %d alerts in the current window",
			report.Summary.TrendsFound, report.Summary.CompetitorUpdates, report.Summary.AlertsRaised),
	}

	positive, negative, neutral := reports.SentimentPercentages(report.MarketSentiment)
	message.Sections = append(message.Sections, TeamsSection{
		ActivityTitle: "Summary",
		Facts: []TeamsFact{
			{Name: "Period", Value: report.Period},
			{Name: "Generated", Value: report.GeneratedAt.Format("2006-01-02 15:04:05 UTC")},
			{Name: "Positive Trends", Value: fmt.Sprintf("%d", report.Summary.PositiveTrends)},
			{Name: "High-Impact Moves", Value: fmt.Sprintf("%d", report.Summary.HighImpactMoves)},
			{Name: "Critical Alerts", Value: fmt.Sprintf("%d", report.Summary.CriticalAlerts)},
			{Name: "Sentiment", Value: fmt.Sprintf("%d%% positive / %d%% negative / %d%% neutral", positive, negative, neutral)},
		},
		Markdown: true,
	})

	if len(report.TopTrends) > 0 {
		var lines []string
		for _, trend := range report.TopTrends {
			lines = append(lines, fmt.Sprintf("**%s** %s (%s, %s)", trend.Keyword, trend.Growth, trend.Sentiment, trend.Source))
		}
		message.Sections = append(message.Sections, TeamsSection{
			ActivityTitle: "Top Trends",
			ActivityText:  strings.Join(lines, "\n\n"),
			Markdown:      true,
		})
	}

	return message
}

func (s *Service) buildAlertMessage(alert *models.Alert) *TeamsMessage {
	color := "0078D4"
	if alert.Type == models.AlertThreat {
		color = "D13438"
	}

	return &TeamsMessage{
		Type:       "MessageCard",
		Context:    "https://schema.org/extensions",
		ThemeColor: color,
		Title:      alert.Title,
		Text:       alert.Description,
		Sections: []TeamsSection{{
			Facts: []TeamsFact{
				{Name: "Type", Value: alert.Type},
				{Name: "Priority", Value: alert.Priority},
				{Name: "Source", Value: alert.Source},
				{Name: "Raised", Value: alert.Timestamp.Format("2006-01-02 15:04:05 UTC")},
			},
		}},
	}
}

func (s *Service) sendEmail(report *models.Report, pdf []byte) error {
	subject := fmt.Sprintf("Market Intelligence Report - %s (%d trends, %d alerts)",
		report.IndustryName, report.Summary.TrendsFound, report.Summary.AlertsRaised)

	htmlBody, err := buildEmailHTML(report)
	if err != nil {
		return fmt.Errorf("failed to build email HTML: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.config.SMTPUsername)
	m.SetHeader("To", s.config.NotificationEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", buildEmailText(report))
	m.AddAlternative("text/html", htmlBody)

	if len(pdf) > 0 {
		m.Attach(reports.FileName(*report, "pdf"), gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(pdf)
			return err
		}))
	}

	if err := s.sendMail(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

const emailTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Market Intelligence Report</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        .header { background-color: #1e40af; color: white; padding: 20px; border-radius: 5px; }
        .summary { background-color: #f5f5f5; padding: 15px; margin: 20px 0; border-radius: 5px; }
        .item { border-left: 4px solid #1e40af; padding: 10px; margin: 10px 0; background-color: #fafafa; }
        .positive { border-left-color: #10b981; }
        .negative { border-left-color: #dc2626; }
        .neutral { border-left-color: #64748b; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Market Intelligence Report</h1>
        <p>{{.IndustryName}} - {{.Period}} generated on {{.GeneratedAt.Format "January 2, 2006 at 3:04 PM UTC"}}</p>
    </div>

    <div class="summary">
        <h2>Summary</h2>
        <p><strong>Trends Found:</strong> {{.Summary.TrendsFound}} ({{.Summary.PositiveTrends}} positive)</p>
        <p><strong>Competitor Updates:</strong> {{.Summary.CompetitorUpdates}} ({{.Summary.HighImpactMoves}} high impact)</p>
        <p><strong>Alerts:</strong> {{.Summary.AlertsRaised}} ({{.Summary.CriticalAlerts}} critical)</p>
    </div>

    {{if .TopTrends}}
    <h2>Top Trends</h2>
    {{range .TopTrends}}
        <div class="item {{.Sentiment}}"><strong>{{.Keyword}}</strong> {{.Growth}} | {{.Source}}</div>
    {{end}}
    {{end}}

    {{if .Recommendations}}
    <h2>Recommendations</h2>
    {{range .Recommendations}}
        <div class="item"><strong>{{.Title}}</strong><p>{{.Description}}</p></div>
    {{end}}
    {{end}}

    <hr>
    <p><small>Generated by Market Research Agent | Confidential &amp; Proprietary</small></p>
</body>
</html>
`

func buildEmailHTML(report *models.Report) (string, error) {
	t, err := template.New("email").Parse(emailTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, report); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func buildEmailText(report *models.Report) string {
	var text strings.Builder

	text.WriteString(fmt.Sprintf("Market Intelligence Report - %s\n", report.IndustryName))
	text.WriteString(fmt.Sprintf("Generated: %s | Period: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC"), report.Period))

	text.WriteString("SUMMARY\n")
	text.WriteString("=======\n")
	text.WriteString(fmt.Sprintf("Trends Found: %d (%d positive)\n", report.Summary.TrendsFound, report.Summary.PositiveTrends))
	text.WriteString(fmt.Sprintf("Competitor Updates: %d (%d high impact)\n", report.Summary.CompetitorUpdates, report.Summary.HighImpactMoves))
	text.WriteString(fmt.Sprintf("Alerts: %d (%d critical)\n", report.Summary.AlertsRaised, report.Summary.CriticalAlerts))

	if len(report.TopTrends) > 0 {
		text.WriteString("\nTOP TRENDS\n")
		text.WriteString("==========\n")
		for i, trend := range report.TopTrends {
			text.WriteString(fmt.Sprintf("%d. %s %s (%s, %s)\n", i+1, trend.Keyword, trend.Growth, trend.Sentiment, trend.Source))
		}
	}

	if len(report.KeyCompetitorMoves) > 0 {
		text.WriteString("\nKEY COMPETITOR MOVES\n")
		text.WriteString("====================\n")
		for i, move := range report.KeyCompetitorMoves {
			text.WriteString(fmt.Sprintf("%d. %s - %s: %s\n", i+1, move.Company, move.Action, move.Details))
		}
	}

	text.WriteString("\n---\nGenerated by Market Research Agent | Confidential & Proprietary\n")

	return text.String()
}
