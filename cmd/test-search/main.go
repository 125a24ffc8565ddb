package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/azure/market-research-agent/internal/config"
	"github.com/azure/market-research-agent/internal/search"
	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("🔍 Market Research Agent - Search API Test")
	fmt.Println("==========================================")

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.TavilyAPIKey == "" {
		fmt.Println("⚠️  TAVILY_API_KEY is not set; results below are the canned fallback dataset")
	}

	industry := cfg.Industry
	if len(os.Args) > 1 {
		industry = os.Args[1]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	gateway := search.NewGateway(cfg, search.NewMapper(search.NewRandomSynthetic(time.Now().UnixNano())), nil)

	queries := []struct {
		name     string
		query    string
		category search.Category
	}{
		{"Trends", fmt.Sprintf("%s industry trends 2024 2025 emerging technologies innovation", industry), search.CategoryTrends},
		{"Competitors", fmt.Sprintf("%s companies product launches partnerships acquisitions 2024 2025", industry), search.CategoryCompetitors},
		{"Sentiment", fmt.Sprintf("%s market sentiment customer satisfaction reviews 2024", industry), search.CategorySentiment},
	}

	fmt.Printf("\n📡 Researching %s...\n", industry)
	fmt.Println(strings.Repeat("-", 40))

	for _, q := range queries {
		fmt.Printf("🔸 %s... ", q.name)
		start := time.Now()
		result := gateway.Search(ctx, q.query, q.category)

		status := "LIVE"
		if result.Fallback {
			status = "FALLBACK"
		}
		fmt.Printf("%s - %d records in %v\n", status, result.Len(), time.Since(start).Round(time.Millisecond))

		for i, trend := range result.Trends {
			if i >= 3 {
				break
			}
			fmt.Printf("   • %s %s (%s)\n", trend.Keyword, trend.Growth, trend.Source)
		}
		for i, comp := range result.Competitors {
			if i >= 3 {
				break
			}
			fmt.Printf("   • %s - %s [%s]\n", comp.Name, comp.Action, comp.Impact)
		}
		for i, sample := range result.Sentiment {
			if i >= 3 {
				break
			}
			fmt.Printf("   • %s %s (%.2f)\n", sample.Source, sample.Sentiment, sample.Confidence)
		}
	}

	fmt.Println("\n✅ Search API test completed!")
}
