package reports

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/azure/market-research-agent/internal/models"
	"github.com/go-pdf/fpdf"
)

type rgb struct{ r, g, b int }

var (
	primaryColor   = rgb{30, 64, 175}
	secondaryColor = rgb{100, 116, 139}
	accentColor    = rgb{16, 185, 129}
	dangerColor    = rgb{220, 38, 38}
	warningColor   = rgb{245, 158, 11}
	textColor      = rgb{0, 0, 0}
)

const (
	pageMargin = 20.0
	lineHeight = 5.0
	footerText = "Generated by Market Research Agent | Confidential & Proprietary"
)

// pdfWriter wraps an fpdf document with the report's layout helpers
type pdfWriter struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// RenderPDF lays out report as a printable document and writes it to w
func RenderPDF(report models.Report, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, 25)

	doc := &pdfWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		doc.font("", 8, secondaryColor)
		pdf.CellFormat(0, 10, footerText, "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	doc.header(report)
	doc.executiveSummary(report)
	doc.kpiGrid(report.Summary)
	doc.topTrends(report.TopTrends)
	doc.competitors(report.KeyCompetitorMoves)
	doc.sentiment(report.MarketSentiment)
	doc.recommendations(report.Recommendations)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render PDF for report %s: %w", report.ID, err)
	}
	return nil
}

// RenderPDFBytes renders report into memory
func RenderPDFBytes(report models.Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := RenderPDF(report, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (d *pdfWriter) font(style string, size float64, color rgb) {
	d.pdf.SetFont("Helvetica", style, size)
	d.pdf.SetTextColor(color.r, color.g, color.b)
}

func (d *pdfWriter) line(text string) {
	d.pdf.MultiCell(0, lineHeight, d.tr(text), "", "L", false)
}

func (d *pdfWriter) indented(indent float64, text string) {
	d.pdf.SetX(pageMargin + indent)
	d.pdf.MultiCell(0, lineHeight, d.tr(text), "", "L", false)
}

func (d *pdfWriter) section(title string) {
	d.pdf.Ln(6)
	d.font("B", 14, primaryColor)
	d.pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	d.pdf.Ln(2)
}

func (d *pdfWriter) header(report models.Report) {
	d.font("B", 24, primaryColor)
	d.pdf.CellFormat(0, 12, "MARKET INTELLIGENCE REPORT", "", 1, "C", false, 0, "")

	d.font("", 14, secondaryColor)
	d.pdf.CellFormat(0, 8, d.tr(report.IndustryName+" Industry Analysis"), "", 1, "C", false, 0, "")

	d.font("", 10, secondaryColor)
	generated := fmt.Sprintf("Generated: %s | Period: %s", report.GeneratedAt.Format("January 2, 2006"), report.Period)
	d.pdf.CellFormat(0, 6, d.tr(generated), "", 1, "C", false, 0, "")

	d.pdf.Ln(4)
	pageWidth, _ := d.pdf.GetPageSize()
	y := d.pdf.GetY()
	d.pdf.SetDrawColor(primaryColor.r, primaryColor.g, primaryColor.b)
	d.pdf.Line(pageMargin, y, pageWidth-pageMargin, y)
	d.pdf.Ln(4)
}

func (d *pdfWriter) executiveSummary(report models.Report) {
	d.section("EXECUTIVE SUMMARY")
	d.font("", 10, textColor)
	d.line(fmt.Sprintf(
		"This comprehensive market intelligence report provides strategic insights for the %s industry. "+
			"Our analysis identified %d market trends, monitored %d competitor activities, and generated %d strategic alerts during the reporting period.",
		report.IndustryName, report.Summary.TrendsFound, report.Summary.CompetitorUpdates, report.Summary.AlertsRaised,
	))
}

func (d *pdfWriter) kpiGrid(summary models.ReportSummary) {
	d.section("KEY PERFORMANCE INDICATORS")

	metrics := []struct {
		label string
		value int
	}{
		{"Market Trends Identified", summary.TrendsFound},
		{"Positive Trend Signals", summary.PositiveTrends},
		{"Competitor Activities", summary.CompetitorUpdates},
		{"High-Impact Moves", summary.HighImpactMoves},
		{"Strategic Alerts", summary.AlertsRaised},
		{"Critical Alerts", summary.CriticalAlerts},
	}

	pageWidth, _ := d.pdf.GetPageSize()
	columnWidth := (pageWidth - 2*pageMargin) / 2

	for i, metric := range metrics {
		lineBreak := 0
		if i%2 == 1 {
			lineBreak = 1
		}
		d.font("", 10, textColor)
		d.pdf.CellFormat(columnWidth-20, 8, metric.label+":", "", 0, "L", false, 0, "")
		d.font("B", 10, accentColor)
		d.pdf.CellFormat(20, 8, fmt.Sprintf("%d", metric.value), "", lineBreak, "L", false, 0, "")
	}
}

func (d *pdfWriter) topTrends(trends []models.TopTrend) {
	d.section("TOP MARKET TRENDS")

	if len(trends) == 0 {
		d.font("", 10, secondaryColor)
		d.line("No significant trends identified in the current reporting period.")
		return
	}

	for i, trend := range trends {
		d.font("B", 10, textColor)
		d.indented(5, fmt.Sprintf("%d. %s", i+1, trend.Keyword))
		d.font("", 10, secondaryColor)
		d.indented(10, fmt.Sprintf("Growth: %s | Sentiment: %s | Source: %s", trend.Growth, trend.Sentiment, trend.Source))
		d.pdf.Ln(2)
	}
}

func (d *pdfWriter) competitors(moves []models.CompetitorMove) {
	d.section("COMPETITIVE INTELLIGENCE")

	if len(moves) == 0 {
		d.font("", 10, secondaryColor)
		d.line("No significant competitor activities identified in the current reporting period.")
		return
	}

	for i, move := range moves {
		d.font("B", 10, textColor)
		d.indented(5, fmt.Sprintf("%d. %s", i+1, move.Company))
		d.font("", 10, secondaryColor)
		d.indented(10, fmt.Sprintf("Action: %s - %s", move.Action, move.Details))
		d.font("", 10, impactColor(move.Impact))
		d.indented(10, "Impact Level: "+move.Impact)
		d.pdf.Ln(2)
	}
}

func (d *pdfWriter) sentiment(h models.SentimentHistogram) {
	d.section("MARKET SENTIMENT ANALYSIS")

	if h.Total() == 0 {
		d.font("", 10, secondaryColor)
		d.line("Insufficient sentiment data for comprehensive analysis.")
		return
	}

	positive, negative, neutral := SentimentPercentages(h)
	d.font("", 10, textColor)
	d.indented(5, fmt.Sprintf("Positive Sentiment: %d%% (%d indicators)", positive, h.Positive))
	d.indented(5, fmt.Sprintf("Negative Sentiment: %d%% (%d indicators)", negative, h.Negative))
	d.indented(5, fmt.Sprintf("Neutral Sentiment: %d%% (%d indicators)", neutral, h.Neutral))
}

func (d *pdfWriter) recommendations(recs []models.Recommendation) {
	d.section("STRATEGIC RECOMMENDATIONS")

	if len(recs) == 0 {
		d.font("", 10, secondaryColor)
		d.line("Continue monitoring current trends and competitor activities for emerging opportunities.")
		return
	}

	for i, rec := range recs {
		d.font("B", 10, textColor)
		d.indented(5, fmt.Sprintf("%d. %s", i+1, rec.Title))
		d.font("", 10, secondaryColor)
		d.indented(10, rec.Description)
		d.pdf.Ln(3)
	}
}

// SentimentPercentages returns the rounded share of each polarity in h
func SentimentPercentages(h models.SentimentHistogram) (positive, negative, neutral int) {
	total := h.Total()
	if total == 0 {
		return 0, 0, 0
	}
	share := func(n int) int {
		return int(math.Round(float64(n) / float64(total) * 100))
	}
	return share(h.Positive), share(h.Negative), share(h.Neutral)
}

func impactColor(impact string) rgb {
	switch impact {
	case models.ImpactHigh:
		return dangerColor
	case models.ImpactMedium:
		return warningColor
	default:
		return accentColor
	}
}
