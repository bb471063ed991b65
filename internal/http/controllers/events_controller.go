// Package controllers implementa los handlers del API HTTP.
package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/eventeye/internal/events"
	"github.com/dropDatabas3/eventeye/internal/http/dto"
	"github.com/dropDatabas3/eventeye/internal/http/helpers"
	"github.com/dropDatabas3/eventeye/internal/observability/logger"
	"github.com/dropDatabas3/eventeye/internal/store"
)

// EventsController maneja el CRUD de eventos.
type EventsController struct {
	service *events.Service
}

// NewEventsController crea el controller de eventos.
func NewEventsController(service *events.Service) *EventsController {
	return &EventsController{service: service}
}

// Create maneja POST /v1/events.
func (c *EventsController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("EventsController.Create"))

	var req dto.CreateEventRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	ev, err := c.service.Create(ctx, events.CreateInput{
		EventName:             req.EventName,
		EventDate:             req.EventDate,
		OrganizerName:         req.OrganizerName,
		OrganizerTitle:        req.OrganizerTitle,
		OrganizerOrganization: req.OrganizerOrganization,
		Rows:                  req.Participants,
	})
	if err != nil {
		switch {
		case errors.Is(err, events.ErrMissingDetails), errors.Is(err, events.ErrNoParticipants):
			helpers.WriteErrorJSON(w, http.StatusBadRequest, err.Error())
		default:
			log.Error("create event failed", logger.Err(err))
			helpers.WriteErrorJSON(w, http.StatusInternalServerError, "failed to create event")
		}
		return
	}

	helpers.WriteJSON(w, http.StatusCreated, ev)
}

// List maneja GET /v1/events.
func (c *EventsController) List(w http.ResponseWriter, r *http.Request) {
	evs, err := c.service.List(r.Context())
	if err != nil {
		helpers.WriteErrorJSON(w, http.StatusInternalServerError, "failed to load events")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, evs)
}

// Get maneja GET /v1/events/{eventID}.
func (c *EventsController) Get(w http.ResponseWriter, r *http.Request) {
	ev, err := c.service.Get(r.Context(), chi.URLParam(r, "eventID"))
	if err != nil {
		if errors.Is(err, store.ErrEventNotFound) {
			helpers.WriteErrorJSON(w, http.StatusNotFound, "event not found")
			return
		}
		helpers.WriteErrorJSON(w, http.StatusInternalServerError, "failed to load event")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, ev)
}

// Delete maneja DELETE /v1/events/{eventID}.
func (c *EventsController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Delete(r.Context(), chi.URLParam(r, "eventID")); err != nil {
		helpers.WriteErrorJSON(w, http.StatusInternalServerError, "failed to delete event")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
