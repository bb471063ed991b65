// Package memory implementa el Store en memoria, para tests y corridas
// efímeras sin persistencia real.
package memory

import (
	"context"
	"sync"

	"github.com/dropDatabas3/eventeye/internal/domain"
	"github.com/dropDatabas3/eventeye/internal/store"
)

type Mem struct {
	mu     sync.Mutex
	events []domain.Event
}

func New() *Mem { return &Mem{} }

func (m *Mem) LoadAll(ctx context.Context) ([]domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Event, len(m.events))
	copy(out, m.events)
	return out, nil
}

func (m *Mem) SaveEvent(ctx context.Context, event domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.events {
		if m.events[i].ID == event.ID {
			m.events[i] = event
			return nil
		}
	}
	m.events = append(m.events, event)
	return nil
}

func (m *Mem) DeleteEvent(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.events[:0]
	for _, e := range m.events {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	m.events = kept
	return nil
}

var _ store.Store = (*Mem)(nil)
