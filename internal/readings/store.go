// Package readings owns the collection of recorded blood pressure readings.
package readings

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"

	"github.com/jwulff/bptrack/internal/bloodpressure"
	"github.com/jwulff/bptrack/internal/storage"
)

// Listener is notified with a fresh snapshot after every change.
type Listener func(snapshot []bloodpressure.Reading)

// Store is the ordered reading collection. Insertion order carries no
// meaning; consumers sort by date and time for display.
//
// A Store is not safe for concurrent use.
type Store struct {
	kv        storage.KV
	logger    *slog.Logger
	items     []bloodpressure.Reading
	listeners []Listener
}

// Open loads the persisted collection. A missing record yields an empty store.
func Open(ctx context.Context, kv storage.KV, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Store{kv: kv, logger: logger.With("component", "readings")}

	raw, err := kv.Get(ctx, storage.KeyReadings)
	if storage.IsNotFound(err) {
		return s, nil
	}
	if err != nil {
		return nil, &storage.PersistenceError{Op: "load", Key: storage.KeyReadings, Err: err}
	}

	items, err := Decode(raw)
	if err != nil {
		return nil, &storage.PersistenceError{Op: "load", Key: storage.KeyReadings, Err: err}
	}
	s.items = items
	s.logger.Debug("loaded readings", "count", len(items))
	return s, nil
}

// Subscribe registers l for change notifications.
func (s *Store) Subscribe(l Listener) {
	s.listeners = append(s.listeners, l)
}

// Add appends a validated reading. Invalid readings leave the store
// unchanged. When the write fails the reading stays in memory and a
// *storage.PersistenceError is returned.
func (s *Store) Add(ctx context.Context, r bloodpressure.Reading) error {
	if err := bloodpressure.Validate(r); err != nil {
		return err
	}
	if _, exists := s.Get(r.ID); exists {
		return &bloodpressure.ValidationError{Fields: map[string]string{"id": "Reading id already exists"}}
	}

	s.items = append(s.items, r)
	s.logger.Debug("reading added", "id", r.ID, "systolic", r.Systolic, "diastolic", r.Diastolic)
	return s.changed(ctx)
}

// Remove deletes every reading with id. Unknown ids are ignored.
func (s *Store) Remove(ctx context.Context, id string) error {
	items := make([]bloodpressure.Reading, 0, len(s.items))
	for _, r := range s.items {
		if r.ID != id {
			items = append(items, r)
		}
	}
	if len(items) == len(s.items) {
		return nil
	}
	removed := len(s.items) - len(items)
	s.items = items

	s.logger.Debug("reading removed", "id", id, "count", removed)
	return s.changed(ctx)
}

// Get returns the reading with id.
func (s *Store) Get(id string) (bloodpressure.Reading, bool) {
	for _, r := range s.items {
		if r.ID == id {
			return r, true
		}
	}
	return bloodpressure.Reading{}, false
}

// All returns a snapshot of the collection.
func (s *Store) All() []bloodpressure.Reading {
	snapshot := make([]bloodpressure.Reading, len(s.items))
	copy(snapshot, s.items)
	return snapshot
}

// Len returns the number of readings.
func (s *Store) Len() int {
	return len(s.items)
}

func (s *Store) changed(ctx context.Context) error {
	for _, l := range s.listeners {
		l(s.All())
	}
	return s.persist(ctx)
}

func (s *Store) persist(ctx context.Context) error {
	raw, err := Encode(s.items)
	if err != nil {
		return &storage.PersistenceError{Op: "save", Key: storage.KeyReadings, Err: err}
	}
	if err := s.kv.Set(ctx, storage.KeyReadings, raw); err != nil {
		s.logger.Error("failed to persist readings", "error", err)
		return &storage.PersistenceError{Op: "save", Key: storage.KeyReadings, Err: err}
	}
	return nil
}

// Encode serializes readings to the persisted JSON array form.
func Encode(items []bloodpressure.Reading) (string, error) {
	if items == nil {
		items = []bloodpressure.Reading{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("failed to marshal readings: %w", err)
	}
	return string(data), nil
}

// Decode parses the persisted JSON array form. Fractional pressures from
// older records are rounded to the nearest whole mmHg.
func Decode(raw string) ([]bloodpressure.Reading, error) {
	var stored []storedReading
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, fmt.Errorf("failed to unmarshal readings: %w", err)
	}

	items := make([]bloodpressure.Reading, 0, len(stored))
	for i, sr := range stored {
		sys, err := wholeNumber(sr.Systolic)
		if err != nil {
			return nil, fmt.Errorf("reading %d: systolic: %w", i, err)
		}
		dia, err := wholeNumber(sr.Diastolic)
		if err != nil {
			return nil, fmt.Errorf("reading %d: diastolic: %w", i, err)
		}
		items = append(items, bloodpressure.Reading{
			ID:        sr.ID,
			Systolic:  sys,
			Diastolic: dia,
			Date:      sr.Date,
			Time:      sr.Time,
			Notes:     sr.Notes,
		})
	}
	return items, nil
}

type storedReading struct {
	ID        string      `json:"id"`
	Systolic  json.Number `json:"systolic"`
	Diastolic json.Number `json:"diastolic"`
	Date      string      `json:"date"`
	Time      string      `json:"time"`
	Notes     string      `json:"notes"`
}

// wholeNumber rounds n and clamps it to the int32 range so that absurd
// historical values keep their sign and still classify.
func wholeNumber(n json.Number) (int, error) {
	if n == "" {
		return 0, nil
	}
	f, err := n.Float64()
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a finite number: %q", n)
	}
	f = math.Max(math.MinInt32, math.Min(math.Round(f), math.MaxInt32))
	return int(f), nil
}
