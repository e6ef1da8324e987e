package report

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// Publisher sends a message on a subject. *nats.Conn satisfies it.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Publish sends r as JSON on subject.
func Publish(p Publisher, subject string, r *Report) error {
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	if err := p.Publish(subject, b); err != nil {
		return fmt.Errorf("report: publish %s: %w", subject, err)
	}
	return nil
}

// Connect dials a NATS server for publishing reports.
func Connect(url string) (*nats.Conn, error) {
	return nats.Connect(
		url,
		nats.Name("htrdetect"),
		nats.Timeout(3*time.Second),
		nats.ReconnectWait(500*time.Millisecond),
		nats.MaxReconnects(-1),
	)
}
