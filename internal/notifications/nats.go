package notifications

import (
	"encoding/json"
	"fmt"

	"github.com/azure/market-research-agent/internal/models"
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// NATSPublisher publishes alerts as JSON on a NATS subject
type NATSPublisher struct {
	conn    *nats.Conn
	subject string
}

// Ensure NATSPublisher implements AlertPublisher
var _ AlertPublisher = (*NATSPublisher)(nil)

// NewNATSPublisher connects to url and publishes on subject
func NewNATSPublisher(url, subject string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url, nats.Name("market-research-agent"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}

	logrus.Infof("Publishing alerts to NATS subject %s", subject)
	return &NATSPublisher{conn: conn, subject: subject}, nil
}

// PublishAlert publishes alert on the configured subject
func (p *NATSPublisher) PublishAlert(alert *models.Alert) error {
	data, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to marshal alert: %w", err)
	}

	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("failed to publish alert %s: %w", alert.ID, err)
	}
	return nil
}

// Close drains pending messages and closes the connection
func (p *NATSPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		logrus.Warnf("NATS drain failed: %v", err)
		p.conn.Close()
	}
}
