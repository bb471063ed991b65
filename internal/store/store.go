// Package store define la persistencia de eventos con sus participantes.
//
// El store es single-writer por construcción (un contexto de UI): no hay
// control de concurrencia entre escritores y el último save gana. El Event
// se persiste siempre como unidad completa, nunca campo a campo.
package store

import (
	"context"
	"errors"

	"github.com/dropDatabas3/eventeye/internal/domain"
)

var (
	// ErrEventNotFound indica que no existe un evento con ese id.
	ErrEventNotFound = errors.New("store: event not found")
)

// Store es la colección persistida de eventos.
//
// LoadAll nunca falla por ausencia o corrupción del backing store: ambos
// casos degradan a colección vacía.
type Store interface {
	// LoadAll retorna todos los eventos persistidos.
	LoadAll(ctx context.Context) ([]domain.Event, error)

	// SaveEvent hace upsert por id: reemplaza si el id existe en la
	// colección, agrega al final si no, y persiste la colección completa.
	SaveEvent(ctx context.Context, event domain.Event) error

	// DeleteEvent elimina un evento por id y persiste la colección.
	DeleteEvent(ctx context.Context, id string) error
}

// FindEvent busca un evento por id en el resultado de LoadAll.
func FindEvent(ctx context.Context, s Store, id string) (*domain.Event, error) {
	events, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range events {
		if events[i].ID == id {
			return &events[i], nil
		}
	}
	return nil, ErrEventNotFound
}
