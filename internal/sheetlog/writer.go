package sheetlog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
	"unicode/utf8"
)

// ErrBackendUnavailable reports that the connector never resolved; no
// network call was attempted and none will succeed this process lifetime.
var ErrBackendUnavailable = errors.New("log backend unavailable")

const (
	defaultAttempts = 3
	defaultInterval = 2 * time.Second
)

// Writer appends records with bounded retry. Delivery is at-least-once:
// a retry after a lost acknowledgment can commit a duplicate row, which
// the store tolerates rather than deduplicates.
type Writer struct {
	connector *Connector
	attempts  int
	interval  time.Duration
	now       func() time.Time
	sleep     func(time.Duration)
}

func NewWriter(connector *Connector) *Writer {
	return &Writer{
		connector: connector,
		attempts:  defaultAttempts,
		interval:  defaultInterval,
		now:       time.Now,
		sleep:     time.Sleep,
	}
}

// Append writes one record. Content beyond MaxContentLen is cut and
// marked before anything touches the network. Transient backend failures
// retry with a fixed interval; an unavailable backend fails immediately.
func (w *Writer) Append(ctx context.Context, role, tag, content string) error {
	store, ok := w.connector.Resolve(ctx)
	if !ok {
		return ErrBackendUnavailable
	}

	ts := w.now().In(logLocation).Format(TimestampLayout)
	row := []string{ts, role, tag, Truncate(content)}

	var err error
	for attempt := 1; attempt <= w.attempts; attempt++ {
		if err = store.AppendRow(ctx, row); err == nil {
			return nil
		}
		log.Printf("⚠️ log append attempt %d/%d failed: %v", attempt, w.attempts, err)
		if attempt < w.attempts {
			w.sleep(w.interval)
		}
	}
	return fmt.Errorf("log append failed after %d attempts: %w", w.attempts, err)
}

// Truncate enforces the content bound. The limit counts characters, as
// the backend's cell limit does, and the cut lands on a rune boundary so
// CJK content stays valid UTF-8. Lossy and irreversible.
func Truncate(content string) string {
	if utf8.RuneCountInString(content) <= MaxContentLen {
		return content
	}
	return string([]rune(content)[:MaxContentLen]) + TruncationMarker
}
