// Package usage counts diagnostic outcomes per day. No inquiry text is ever stored.
package usage

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Kind is the entry point that produced an outcome
type Kind string

const (
	KindText      Kind = "text"
	KindSelection Kind = "selection"
	KindChat      Kind = "chat"
)

// Event is one counted outcome: a template id, heuristic tier, selection branch or chat topic
type Event struct {
	Kind    Kind
	Outcome string
	At      time.Time
}

// Field is the counter name of an event
func (e Event) Field() string {
	return string(e.Kind) + ":" + e.Outcome
}

// SplitField reverses Field
func SplitField(field string) (Kind, string) {
	kind, outcome, _ := strings.Cut(field, ":")
	return Kind(kind), outcome
}

// DayKey formats the UTC day of t
func DayKey(t time.Time) string {
	return t.UTC().Format("20060102")
}

// Recorder stores daily counters
type Recorder interface {
	Record(ctx context.Context, e Event) error
	Snapshot(ctx context.Context, day time.Time) (map[string]int, error)
	Health(ctx context.Context) error
}

// MemoryRecorder keeps counters in process
type MemoryRecorder struct {
	mu   sync.Mutex
	days map[string]map[string]int
}

// NewMemoryRecorder creates an empty in-memory recorder
func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{days: make(map[string]map[string]int)}
}

func (m *MemoryRecorder) Record(ctx context.Context, e Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	day := DayKey(e.At)
	counters, ok := m.days[day]
	if !ok {
		counters = make(map[string]int)
		m.days[day] = counters
	}
	counters[e.Field()]++
	return nil
}

func (m *MemoryRecorder) Snapshot(ctx context.Context, day time.Time) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]int, len(m.days[DayKey(day)]))
	for k, v := range m.days[DayKey(day)] {
		out[k] = v
	}
	return out, nil
}

func (m *MemoryRecorder) Health(ctx context.Context) error {
	return nil
}
