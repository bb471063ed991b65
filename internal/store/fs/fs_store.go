// Package fs implementa el Store sobre un único documento JSON en disco,
// el equivalente local de la clave única de un key-value store de browser.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/dropDatabas3/eventeye/internal/domain"
	"github.com/dropDatabas3/eventeye/internal/observability/logger"
	"github.com/dropDatabas3/eventeye/internal/store"
	"github.com/dropDatabas3/eventeye/internal/util/atomicwrite"
)

// eventsFile es el nombre fijo del documento dentro del root dir.
const eventsFile = "events.json"

// FSStore persiste la colección de eventos como JSON en disco.
type FSStore struct {
	root string
}

// New crea un FSStore con root como directorio de datos.
func New(root string) *FSStore {
	return &FSStore{root: filepath.Clean(root)}
}

func (s *FSStore) path() string {
	return filepath.Join(s.root, eventsFile)
}

// LoadAll lee la colección completa. Archivo ausente o JSON corrupto
// degradan a colección vacía, nunca a error.
func (s *FSStore) LoadAll(ctx context.Context) ([]domain.Event, error) {
	b, err := os.ReadFile(s.path())
	if err != nil {
		if !os.IsNotExist(err) {
			logger.From(ctx).Warn("events file unreadable, starting empty",
				logger.Component("fs_store"), logger.Err(err))
		}
		return []domain.Event{}, nil
	}

	var events []domain.Event
	if err := json.Unmarshal(b, &events); err != nil {
		logger.From(ctx).Warn("events file corrupt, starting empty",
			logger.Component("fs_store"), logger.Err(err))
		return []domain.Event{}, nil
	}
	return events, nil
}

// SaveEvent hace upsert por id y persiste la colección completa de forma
// atómica.
func (s *FSStore) SaveEvent(ctx context.Context, event domain.Event) error {
	events, _ := s.LoadAll(ctx)

	replaced := false
	for i := range events {
		if events[i].ID == event.ID {
			events[i] = event
			replaced = true
			break
		}
	}
	if !replaced {
		events = append(events, event)
	}

	return s.persist(events)
}

// DeleteEvent elimina el evento con ese id, si existe, y persiste.
func (s *FSStore) DeleteEvent(ctx context.Context, id string) error {
	events, _ := s.LoadAll(ctx)

	kept := events[:0]
	for _, e := range events {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	return s.persist(kept)
}

func (s *FSStore) persist(events []domain.Event) error {
	b, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return err
	}
	return atomicwrite.AtomicWriteFile(s.path(), b, 0o600)
}

var _ store.Store = (*FSStore)(nil)
