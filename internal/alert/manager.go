// Package alert raises and dismisses notifications for sustained blood
// pressure trends.
package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jwulff/bptrack/internal/bloodpressure"
	"github.com/jwulff/bptrack/internal/storage"
)

// Kind is the trend an alert reports.
type Kind string

const (
	KindHigh Kind = "high"
	KindLow  Kind = "low"
)

// Messages shown for each alert kind.
var Messages = map[Kind]string{
	KindHigh: "You've had high blood pressure readings for 7 consecutive days. Please consult with a healthcare professional as soon as possible.",
	KindLow:  "You've had low blood pressure readings for 7 consecutive days. Please consult with a healthcare professional as soon as possible.",
}

// Alert is a user-facing trend notification.
type Alert struct {
	Type    Kind      `json:"type"`
	Message string    `json:"message"`
	Date    time.Time `json:"date"` // when the alert was raised
}

// ID identifies the alert for dismissal: kind plus the day it was raised.
func (a Alert) ID() string {
	return ID(a.Type, a.Date)
}

// ID builds the dismissal identifier "{kind}-{YYYY-MM-DD}".
func ID(kind Kind, day time.Time) string {
	return fmt.Sprintf("%s-%s", kind, day.Format(bloodpressure.DateLayout))
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the source of "today".
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// Manager holds at most one active alert and the set of alert ids that were
// dismissed. Alerts are raised by Evaluate and cleared only by Dismiss; a
// trend that breaks after an alert was raised leaves the alert in place.
//
// A Manager is not safe for concurrent use.
type Manager struct {
	kv        storage.KV
	now       func() time.Time
	logger    *slog.Logger
	active    *Alert
	dismissed []string
	seen      map[string]bool
}

// NewManager loads the dismissed alert ids from kv.
func NewManager(ctx context.Context, kv storage.KV, opts ...Option) (*Manager, error) {
	m := &Manager{
		kv:     kv,
		now:    time.Now,
		logger: slog.New(slog.DiscardHandler),
		seen:   make(map[string]bool),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With("component", "alert")

	raw, err := kv.Get(ctx, storage.KeyDismissedAlerts)
	if storage.IsNotFound(err) {
		return m, nil
	}
	if err != nil {
		return nil, &storage.PersistenceError{Op: "load", Key: storage.KeyDismissedAlerts, Err: err}
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, &storage.PersistenceError{
			Op:  "load",
			Key: storage.KeyDismissedAlerts,
			Err: fmt.Errorf("failed to unmarshal dismissed alerts: %w", err),
		}
	}
	for _, id := range ids {
		m.remember(id)
	}
	return m, nil
}

// Evaluate re-runs trend detection over readings and raises an alert when a
// trend holds and today's alert of that kind was not dismissed. High is
// checked before low.
func (m *Manager) Evaluate(readings []bloodpressure.Reading) {
	trend := bloodpressure.DetectTrend(readings)
	now := m.now()

	switch {
	case trend.IsHigh:
		m.raise(KindHigh, now)
	case trend.IsLow:
		m.raise(KindLow, now)
	}
}

func (m *Manager) raise(kind Kind, now time.Time) {
	id := ID(kind, now)
	if m.seen[id] {
		return
	}
	if m.active != nil && m.active.ID() == id {
		return
	}
	m.active = &Alert{Type: kind, Message: Messages[kind], Date: now}
	m.logger.Info("alert raised", "id", id)
}

// Active returns the current alert, if any.
func (m *Manager) Active() (Alert, bool) {
	if m.active == nil {
		return Alert{}, false
	}
	return *m.active, true
}

// Dismiss acknowledges the active alert so it is not shown again on the day
// it was raised. Without an active alert it does nothing. When the write
// fails the dismissal still applies in memory and a
// *storage.PersistenceError is returned.
func (m *Manager) Dismiss(ctx context.Context) error {
	if m.active == nil {
		return nil
	}
	id := m.active.ID()
	m.active = nil
	m.remember(id)
	m.logger.Info("alert dismissed", "id", id)

	data, err := json.Marshal(m.dismissed)
	if err != nil {
		return &storage.PersistenceError{Op: "save", Key: storage.KeyDismissedAlerts, Err: err}
	}
	if err := m.kv.Set(ctx, storage.KeyDismissedAlerts, string(data)); err != nil {
		m.logger.Error("failed to persist dismissed alerts", "error", err)
		return &storage.PersistenceError{Op: "save", Key: storage.KeyDismissedAlerts, Err: err}
	}
	return nil
}

// IsDismissed reports whether id was dismissed.
func (m *Manager) IsDismissed(id string) bool {
	return m.seen[id]
}

// Dismissed returns the dismissed ids in the order they were recorded.
func (m *Manager) Dismissed() []string {
	out := make([]string, len(m.dismissed))
	copy(out, m.dismissed)
	return out
}

func (m *Manager) remember(id string) {
	if m.seen[id] {
		return
	}
	m.seen[id] = true
	m.dismissed = append(m.dismissed, id)
}
