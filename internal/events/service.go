// Package events arma y administra eventos con sus participantes.
package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dropDatabas3/eventeye/internal/domain"
	"github.com/dropDatabas3/eventeye/internal/format"
	"github.com/dropDatabas3/eventeye/internal/ingest"
	"github.com/dropDatabas3/eventeye/internal/observability/logger"
	"github.com/dropDatabas3/eventeye/internal/store"
)

var (
	ErrMissingDetails = errors.New("events: event name, date and organizer name are required")
	ErrNoParticipants = errors.New("events: at least one participant row is required")
)

// CreateInput son los datos para crear un evento desde filas parseadas.
type CreateInput struct {
	EventName             string
	EventDate             string
	OrganizerName         string
	OrganizerTitle        string
	OrganizerOrganization string
	Rows                  []ingest.Row
}

// Service administra el ciclo de vida de eventos sobre el Store.
type Service struct {
	store     store.Store
	formatter *format.Service
}

// NewService crea el service de eventos.
func NewService(st store.Store, formatter *format.Service) *Service {
	return &Service{store: st, formatter: formatter}
}

// Create construye el evento con un participante por fila, todos en estado
// pending, formatea los nombres (con fallback local si el remoto falla) y
// persiste el evento como unidad. El nombre original de cada fila se guarda
// intacto; el formateado es solo para display.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Event, error) {
	if in.EventName == "" || in.EventDate == "" || in.OrganizerName == "" {
		return nil, ErrMissingDetails
	}
	if len(in.Rows) == 0 {
		return nil, ErrNoParticipants
	}

	ev := &domain.Event{
		ID:                    fmt.Sprintf("event-%s", uuid.NewString()),
		EventName:             in.EventName,
		EventDate:             in.EventDate,
		OrganizerName:         in.OrganizerName,
		OrganizerTitle:        in.OrganizerTitle,
		OrganizerOrganization: in.OrganizerOrganization,
		CreatedAt:             time.Now().UTC(),
	}

	for _, row := range in.Rows {
		ev.Participants = append(ev.Participants, domain.Participant{
			ID:            fmt.Sprintf("participant-%s", uuid.NewString()),
			Name:          row.Name,
			Email:         row.Email,
			FormattedName: s.formatter.Format(ctx, row.Name),
			Status:        domain.StatusPending,
		})
	}
	ev.Recount()

	if err := s.store.SaveEvent(ctx, *ev); err != nil {
		return nil, err
	}

	logger.From(ctx).Info("event created",
		logger.Layer("service"), logger.EventID(ev.ID), logger.Count(len(ev.Participants)))
	return ev, nil
}

// List retorna todos los eventos persistidos.
func (s *Service) List(ctx context.Context) ([]domain.Event, error) {
	return s.store.LoadAll(ctx)
}

// Get retorna un evento por id.
func (s *Service) Get(ctx context.Context, id string) (*domain.Event, error) {
	return store.FindEvent(ctx, s.store, id)
}

// Delete elimina un evento por id.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.DeleteEvent(ctx, id)
}
