package reports

import (
	"encoding/json"
	"fmt"

	"github.com/azure/market-research-agent/internal/models"
)

// ReportKind prefixes every exported report file name
const ReportKind = "market-intelligence"

// FileName returns "<kind>-<industry>-<YYYY-MM-DD>.<ext>" for report
func FileName(report models.Report, ext string) string {
	return fmt.Sprintf("%s-%s-%s.%s", ReportKind, report.Industry, report.GeneratedAt.UTC().Format("2006-01-02"), ext)
}

// MarshalJSON renders report as the indented structured-data download
func MarshalJSON(report models.Report) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report %s: %w", report.ID, err)
	}
	return data, nil
}
