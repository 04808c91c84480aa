package out

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"vclock/internal/modules/feedback/domain"
)

type publisher interface {
	Publish(subject string, data []byte) error
}

// NATSNotifier publishes notifications as JSON on a core NATS subject so
// other devices can pick them up.
type NATSNotifier struct {
	pub     publisher
	conn    *nats.Conn
	subject string
	now     func() time.Time
}

type natsMessage struct {
	domain.Notification
	SentAt time.Time `json:"sentAt"`
}

func NewNATSNotifier(url, subject string) (*NATSNotifier, error) {
	conn, err := nats.Connect(url, nats.Name("vclock"), nats.MaxReconnects(-1))
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}
	n := newNATSNotifier(conn, subject)
	n.conn = conn
	return n, nil
}

func newNATSNotifier(pub publisher, subject string) *NATSNotifier {
	return &NATSNotifier{pub: pub, subject: subject, now: time.Now}
}

func (n *NATSNotifier) Notify(_ context.Context, msg domain.Notification) error {
	data, err := json.Marshal(natsMessage{Notification: msg, SentAt: n.now().UTC()})
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	if err := n.pub.Publish(n.subject, data); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

// Close drains pending messages before closing the connection.
func (n *NATSNotifier) Close() error {
	if n.conn == nil {
		return nil
	}
	return n.conn.Drain()
}
