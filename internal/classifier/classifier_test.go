package classifier

import (
	"math"
	"testing"

	"github.com/azure/market-research-agent/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestClassifySentiment(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "Positive content",
			text:     "Strong growth and expansion despite some risk",
			expected: models.SentimentPositive,
		},
		{
			name:     "Negative content",
			text:     "Analysts see decline, risk and concern ahead",
			expected: models.SentimentNegative,
		},
		{
			name:     "No keywords",
			text:     "Quarterly filing published today",
			expected: models.SentimentNeutral,
		},
		{
			name:     "Empty text",
			text:     "",
			expected: models.SentimentNeutral,
		},
		{
			name:     "Equal counts",
			text:     "Growth comes with risk",
			expected: models.SentimentNeutral,
		},
		{
			name:     "Case insensitive",
			text:     "BREAKTHROUGH INNOVATION",
			expected: models.SentimentPositive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifySentiment(tt.text))
		})
	}
}

func TestClassifySentiment_WordOrder(t *testing.T) {
	permutations := []string{
		"risk growth opportunity",
		"opportunity growth risk",
		"growth risk opportunity",
	}

	for _, text := range permutations {
		assert.Equal(t, models.SentimentPositive, ClassifySentiment(text), text)
	}
}

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		title    string
		expected []string
	}{
		{
			name:     "Terms from content in list order",
			content:  "Teams use machine learning and AI together",
			title:    "Weekly digest",
			expected: []string{"AI", "Machine Learning"},
		},
		{
			name:     "Term from title",
			content:  "Nothing relevant here",
			title:    "IoT pilots expand",
			expected: []string{"IoT"},
		},
		{
			// terms match as case-insensitive substrings, so "blockchAIn" also yields AI
			name:     "Substring match inside a longer word",
			content:  "Nothing relevant here",
			title:    "Blockchain pilots expand",
			expected: []string{"AI", "Blockchain"},
		},
		{
			name:     "Fallback to first two title words",
			content:  "Nothing relevant here",
			title:    "Quarterly Report Released Today",
			expected: []string{"Quarterly Report"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractKeywords(tt.content, tt.title))
		})
	}
}

func TestExtractGrowthMetric(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
		found    bool
	}{
		{"Percentage", "The segment saw 47% growth this year", "47%", true},
		{"Signed percentage", "Revenue up +12% year over year", "+12%", true},
		{"Percent word", "Adoption rose 15 percent", "15 percent", true},
		{"Increased by", "Sales increased by 30 units", "increased by 30", true},
		{"Grew", "The market grew 20 points", "grew 20", true},
		{"First match wins", "Up 10% then 55%", "10%", true},
		{"No metric", "No figures were disclosed", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metric, ok := ExtractGrowthMetric(tt.content)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, metric)
		})
	}
}

func TestExtractCompanyName(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		content  string
		expected string
	}{
		{
			name:     "Suffix in title",
			title:    "Acme Widgets Inc announces new product",
			content:  "",
			expected: "Acme Widgets Inc",
		},
		{
			name:     "Suffix in content",
			title:    "new product announced",
			content:  "The launch by Globex Corp surprised analysts",
			expected: "Globex Corp",
		},
		{
			name:     "Two capitalized words",
			title:    "Microsoft Azure expands footprint",
			content:  "",
			expected: "Microsoft Azure",
		},
		{
			name:     "Single capitalized word",
			title:    "the OpenAI deal is done",
			content:  "",
			expected: "OpenAI",
		},
		{
			name:     "Nothing recognizable",
			title:    "a quiet week",
			content:  "nothing to report",
			expected: UnknownCompany,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractCompanyName(tt.title, tt.content))
		})
	}
}

func TestClassifyAction(t *testing.T) {
	tests := []struct {
		title    string
		content  string
		expected string
	}{
		{"Company unveils new phone", "", models.ActionProductLaunch},
		{"Firm forms alliance with rival", "", models.ActionPartnership},
		{"Bank to acquire startup", "", models.ActionAcquisition},
		{"Startup closes Series B", "", models.ActionFunding},
		{"Vendor cuts pricing", "", models.ActionPriceChange},
		{"Retailer expands into Europe", "", models.ActionExpansion},
		{"Quarterly results", "", models.ActionMarketActivity},
		{"Quarterly results", "the device will launch soon", models.ActionProductLaunch},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyAction(tt.title, tt.content))
		})
	}
}

func TestClassifyImpact(t *testing.T) {
	assert.Equal(t, models.ImpactHigh, ClassifyImpact("A major shift in the market"))
	assert.Equal(t, models.ImpactHigh, ClassifyImpact("a notable and massive change"))
	assert.Equal(t, models.ImpactMedium, ClassifyImpact("A notable change"))
	assert.Equal(t, models.ImpactLow, ClassifyImpact("A minor update"))
}

func TestParseGrowth(t *testing.T) {
	assert.Equal(t, 45, ParseGrowth("+45%"))
	assert.Equal(t, 20, ParseGrowth("increased by 20"))
	assert.Equal(t, 0, ParseGrowth("N/A"))
	assert.Equal(t, 0, ParseGrowth(""))
	assert.Equal(t, math.MaxInt, ParseGrowth("increased by 123456789012345678901234"))
}
