package notifications

import (
	"context"

	"github.com/azure/market-research-agent/internal/models"
)

// NotificationInterface defines the contract for notification services
type NotificationInterface interface {
	SendReport(ctx context.Context, report *models.Report, pdf []byte) error
	SendAlert(ctx context.Context, alert *models.Alert) error
}
