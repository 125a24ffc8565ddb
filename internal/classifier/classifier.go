// Package classifier holds the keyword heuristics that turn a search snippet
// into coarse labels: sentiment, trend keywords, growth figure, company name,
// competitor action and impact level. Every function is pure.
package classifier

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/azure/market-research-agent/internal/models"
)

var (
	positiveWords = []string{"growth", "increase", "opportunity", "success", "innovation", "breakthrough", "expansion"}
	negativeWords = []string{"decline", "decrease", "threat", "challenge", "risk", "concern", "problem"}

	trendTerms = []string{
		"AI", "Machine Learning", "Blockchain", "Cloud Computing", "IoT",
		"Cybersecurity", "Remote Work", "Sustainability", "Digital Transformation",
		"Automation", "Data Analytics", "Edge Computing", "Quantum Computing",
	}

	highImpactWords   = []string{"major", "significant", "massive", "huge", "revolutionary", "breakthrough"}
	mediumImpactWords = []string{"notable", "important", "considerable", "substantial"}

	growthPattern  = regexp.MustCompile(`(?i)(\+?\d{1,3}%|\d{1,3}\s*percent|increased?\s+by\s+\d+|grew?\s+\d+)`)
	companyPattern = regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s+(?:Inc|Corp|LLC|Ltd|Company)`)
	nonDigits      = regexp.MustCompile(`[^\d]`)
)

// actionRule maps a competitor action category to the words that signal it
type actionRule struct {
	action   string
	keywords []string
}

// actionRules is evaluated in order; the first matching rule wins
var actionRules = []actionRule{
	{models.ActionProductLaunch, []string{"launch", "unveil", "introduce", "release", "debut"}},
	{models.ActionPartnership, []string{"partner", "alliance", "collaboration", "joint venture", "team up"}},
	{models.ActionAcquisition, []string{"acquire", "buy", "purchase", "merge", "takeover"}},
	{models.ActionFunding, []string{"funding", "investment", "raise", "capital", "series"}},
	{models.ActionPriceChange, []string{"price", "cost", "pricing", "fee", "discount"}},
	{models.ActionExpansion, []string{"expand", "growth", "scale", "enter market", "international"}},
}

// UnknownCompany is returned when no company name can be extracted
const UnknownCompany = "Unknown Company"

// ClassifySentiment returns the polarity whose keyword set has strictly more
// hits in text. Ties, including no hits at all, are neutral.
func ClassifySentiment(text string) string {
	text = strings.ToLower(text)

	positiveCount := countMatches(text, positiveWords)
	negativeCount := countMatches(text, negativeWords)

	if positiveCount > negativeCount {
		return models.SentimentPositive
	} else if negativeCount > positiveCount {
		return models.SentimentNegative
	}

	return models.SentimentNeutral
}

// ExtractKeywords returns the known trend terms found in content or title,
// in list order. When none match it returns the first two words of the title.
func ExtractKeywords(content, title string) []string {
	lowerContent := strings.ToLower(content)
	lowerTitle := strings.ToLower(title)

	var found []string
	for _, term := range trendTerms {
		lowerTerm := strings.ToLower(term)
		if strings.Contains(lowerContent, lowerTerm) || strings.Contains(lowerTitle, lowerTerm) {
			found = append(found, term)
		}
	}

	if len(found) > 0 {
		return found
	}

	return []string{FirstWords(title, 2)}
}

// ExtractGrowthMetric returns the first growth expression in content, such as
// "47%", "12 percent", "increased by 30" or "grew 20".
func ExtractGrowthMetric(content string) (string, bool) {
	match := growthPattern.FindString(content)
	if match == "" {
		return "", false
	}
	return match, true
}

// ExtractCompanyName finds "<Capitalized Words> Inc|Corp|LLC|Ltd|Company" in
// the title, then the content. Failing that it takes the first capitalized
// title word longer than two characters, joined with the following word when
// that one is capitalized too.
func ExtractCompanyName(title, content string) string {
	if match := companyPattern.FindString(title); match != "" {
		return match
	}
	if match := companyPattern.FindString(content); match != "" {
		return match
	}

	words := strings.Fields(title)
	for i := 0; i < len(words)-1; i++ {
		if startsUpper(words[i]) && utf8.RuneCountInString(words[i]) > 2 {
			if startsUpper(words[i+1]) {
				return words[i] + " " + words[i+1]
			}
			return words[i]
		}
	}

	return UnknownCompany
}

// ClassifyAction returns the first action category whose keywords appear in
// the title or content, or "Market Activity".
func ClassifyAction(title, content string) string {
	text := strings.ToLower(title + " " + content)

	for _, rule := range actionRules {
		if countMatches(text, rule.keywords) > 0 {
			return rule.action
		}
	}

	return models.ActionMarketActivity
}

// ClassifyImpact rates content High when it uses a high-impact word, Medium
// for a medium-impact word, Low otherwise.
func ClassifyImpact(content string) string {
	text := strings.ToLower(content)

	if countMatches(text, highImpactWords) > 0 {
		return models.ImpactHigh
	}
	if countMatches(text, mediumImpactWords) > 0 {
		return models.ImpactMedium
	}
	return models.ImpactLow
}

// ParseGrowth reads the digits out of a growth string ("+45%" is 45).
// Strings without digits parse as 0; values too large for an int saturate
// at math.MaxInt.
func ParseGrowth(growth string) int {
	digits := nonDigits.ReplaceAllString(growth, "")
	if digits == "" {
		return 0
	}
	value, err := strconv.Atoi(digits)
	if errors.Is(err, strconv.ErrRange) {
		return math.MaxInt
	}
	if err != nil {
		return 0
	}
	return value
}

// FirstWords returns the first n whitespace-separated words of s
func FirstWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

// countMatches counts how many of words occur in the already lower-cased text
func countMatches(text string, words []string) int {
	count := 0
	for _, word := range words {
		if strings.Contains(text, word) {
			count++
		}
	}
	return count
}

func startsUpper(word string) bool {
	r, _ := utf8.DecodeRuneInString(word)
	return unicode.IsUpper(r)
}
