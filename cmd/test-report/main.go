package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/azure/market-research-agent/internal/config"
	"github.com/azure/market-research-agent/internal/models"
	"github.com/azure/market-research-agent/internal/monitoring"
	"github.com/azure/market-research-agent/internal/reports"
	"github.com/azure/market-research-agent/internal/search"
	"github.com/azure/market-research-agent/internal/storage"
	"github.com/azure/market-research-agent/internal/store"
	"github.com/sirupsen/logrus"
)

const outputDir = "test_output"

// TestNotificationService prints reports and alerts to the terminal
type TestNotificationService struct{}

func (t *TestNotificationService) SendReport(ctx context.Context, report *models.Report, pdf []byte) error {
	fmt.Println("\n" + strings.Repeat("=", 70))
	fmt.Printf("📊 MARKET INTELLIGENCE REPORT - %s\n", report.IndustryName)
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("📅 Period: %s\n", report.Period)
	fmt.Printf("🕒 Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Printf("📈 Trends: %d (%d positive)\n", report.Summary.TrendsFound, report.Summary.PositiveTrends)
	fmt.Printf("🏢 Competitor updates: %d (%d high impact)\n", report.Summary.CompetitorUpdates, report.Summary.HighImpactMoves)
	fmt.Printf("🚨 Alerts: %d (%d critical)\n", report.Summary.AlertsRaised, report.Summary.CriticalAlerts)

	if len(report.TopTrends) > 0 {
		fmt.Println("\n🔥 Top Trends:")
		for i, trend := range report.TopTrends {
			fmt.Printf("   %d. %-30s %s (%s)\n", i+1, trend.Keyword, trend.Growth, trend.Sentiment)
		}
	}

	if len(report.Recommendations) > 0 {
		fmt.Println("\n💡 Recommendations:")
		for _, rec := range report.Recommendations {
			fmt.Printf("   • [%s] %s\n", rec.Priority, rec.Title)
		}
	}

	fmt.Printf("\n📄 PDF size: %d bytes\n", len(pdf))
	fmt.Println(strings.Repeat("=", 70))
	return nil
}

func (t *TestNotificationService) SendAlert(ctx context.Context, alert *models.Alert) error {
	fmt.Printf("🚨 ALERT [%s] %s: %s\n", alert.Priority, alert.Title, alert.Description)
	return nil
}

func main() {
	fmt.Println("🤖 Market Research Agent - Test Report Generator")
	fmt.Println("================================================")

	logrus.SetLevel(logrus.WarnLevel)
	ctx := context.Background()

	cfg := &config.Config{Industry: "technology", SearchInterval: config.DefaultSearchInterval}

	// Without an API key the gateway answers with its canned dataset
	gateway := search.NewGateway(cfg, search.NewMapper(search.NewRandomSynthetic(42)), nil)
	st := store.New()

	trends := gateway.Search(ctx, "technology industry trends 2024 2025 emerging technologies innovation", search.CategoryTrends)
	competitors := gateway.Search(ctx, "technology companies product launches partnerships acquisitions 2024 2025", search.CategoryCompetitors)
	st.AppendTrends(trends.Trends)
	st.AppendCompetitors(competitors.Competitors)
	st.AppendSentiment([]models.SentimentSample{
		{ID: "sentiment_sample_0", Source: "forbes.com", Sentiment: models.SentimentPositive, Confidence: 0.82, Topic: "technology"},
		{ID: "sentiment_sample_1", Source: "reuters.com", Sentiment: models.SentimentNeutral, Confidence: 0.71, Topic: "technology"},
		{ID: "sentiment_sample_2", Source: "bloomberg.com", Sentiment: models.SentimentNegative, Confidence: 0.64, Topic: "technology"},
	})

	fmt.Printf("\n📊 Loaded %d trends and %d competitor updates\n", len(trends.Trends), len(competitors.Competitors))

	archive := storage.NewFileStorage(outputDir)
	service := monitoring.NewService(cfg, gateway, st, archive, &TestNotificationService{}, nil)

	report := service.GenerateReport(ctx)

	names, err := archive.List(ctx, "reports/")
	if err != nil {
		fmt.Printf("❌ Error listing archive: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\n💾 Archived files:")
	for _, name := range names {
		fmt.Printf("   • %s/%s\n", outputDir, name)
	}

	fmt.Printf("\n✅ Test report %s generated!\n", reports.FileName(report, "pdf"))
	fmt.Println("\n💡 Next steps:")
	fmt.Println("   • Open the PDF in the 'test_output' directory")
	fmt.Println("   • Run 'go test ./internal/reports -v' for more detailed tests")
	fmt.Println("   • Configure TAVILY_API_KEY and run the agent with 'go run cmd/agent/main.go'")
}
