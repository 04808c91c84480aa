package out

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"vclock/internal/modules/feedback/domain"
)

type recordingPublisher struct {
	subject string
	data    []byte
	err     error
}

func (r *recordingPublisher) Publish(subject string, data []byte) error {
	r.subject = subject
	r.data = data
	return r.err
}

func TestNATSNotifierPublishesJSON(t *testing.T) {
	t.Parallel()
	pub := &recordingPublisher{}
	n := newNATSNotifier(pub, "vclock.notifications")
	n.now = func() time.Time { return time.Date(2026, 3, 1, 7, 0, 0, 0, time.UTC) }

	err := n.Notify(context.Background(), domain.Notification{Title: "Timer", Body: "Your timer has finished!", Tag: "timer-finished"})
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	if pub.subject != "vclock.notifications" {
		t.Fatalf("unexpected subject %q", pub.subject)
	}
	var got map[string]any
	if err := json.Unmarshal(pub.data, &got); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if got["title"] != "Timer" || got["tag"] != "timer-finished" || got["sentAt"] != "2026-03-01T07:00:00Z" {
		t.Fatalf("unexpected payload: %s", pub.data)
	}
}

func TestNATSNotifierWrapsPublishError(t *testing.T) {
	t.Parallel()
	boom := errors.New("connection closed")
	n := newNATSNotifier(&recordingPublisher{err: boom}, "s")
	if err := n.Notify(context.Background(), domain.Notification{Title: "x"}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped publish error, got %v", err)
	}
	if err := n.Close(); err != nil {
		t.Fatalf("close without connection: %v", err)
	}
}
