package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/eventeye/internal/cache"
	"github.com/dropDatabas3/eventeye/internal/certificate"
	"github.com/dropDatabas3/eventeye/internal/delivery"
	"github.com/dropDatabas3/eventeye/internal/domain"
	"github.com/dropDatabas3/eventeye/internal/events"
	"github.com/dropDatabas3/eventeye/internal/http/dto"
	"github.com/dropDatabas3/eventeye/internal/http/helpers"
	"github.com/dropDatabas3/eventeye/internal/observability/logger"
	"github.com/dropDatabas3/eventeye/internal/store"
)

// DeliveryController maneja generación y envío de certificados.
type DeliveryController struct {
	events    *events.Service
	delivery  *delivery.Service
	artifacts *cache.ArtifactCache
}

// NewDeliveryController crea el controller de delivery.
func NewDeliveryController(ev *events.Service, dl *delivery.Service, artifacts *cache.ArtifactCache) *DeliveryController {
	return &DeliveryController{events: ev, delivery: dl, artifacts: artifacts}
}

func (c *DeliveryController) loadEvent(w http.ResponseWriter, r *http.Request) *domain.Event {
	ev, err := c.events.Get(r.Context(), chi.URLParam(r, "eventID"))
	if err != nil {
		if errors.Is(err, store.ErrEventNotFound) {
			helpers.WriteErrorJSON(w, http.StatusNotFound, "event not found")
		} else {
			helpers.WriteErrorJSON(w, http.StatusInternalServerError, "failed to load event")
		}
		return nil
	}
	return ev
}

// Generate maneja POST /v1/events/{eventID}/certificates.
func (c *DeliveryController) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("DeliveryController.Generate"))

	ev := c.loadEvent(w, r)
	if ev == nil {
		return
	}

	if err := c.delivery.GenerateCertificates(ctx, ev); err != nil {
		log.Error("generation failed", logger.Err(err))
		helpers.WriteErrorJSON(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	helpers.WriteJSON(w, http.StatusOK, ev)
}

// SendIndividual maneja POST /v1/events/{eventID}/send.
func (c *DeliveryController) SendIndividual(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("DeliveryController.SendIndividual"))

	ev := c.loadEvent(w, r)
	if ev == nil {
		return
	}

	results, err := c.delivery.SendIndividual(ctx, ev, func(completed, total int) {
		log.Debug("send progress", logger.Int("completed", completed), logger.Int("total", total))
	})
	if err != nil {
		if errors.Is(err, delivery.ErrNoEligibleParticipants) {
			helpers.WriteJSON(w, http.StatusOK, dto.SendResponse{
				Success: true,
				Message: "all participants have already received their certificates",
			})
			return
		}
		log.Error("individual send failed", logger.Err(err))
		helpers.WriteErrorJSON(w, http.StatusInternalServerError, "send failed")
		return
	}

	var sent, failed int
	for _, res := range results {
		if res.Success {
			sent++
		} else {
			failed++
		}
	}
	helpers.WriteJSON(w, http.StatusOK, dto.SendResponse{Success: failed == 0, Sent: sent, Failed: failed})
}

// SendToOwner maneja POST /v1/events/{eventID}/send-to-owner.
func (c *DeliveryController) SendToOwner(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("DeliveryController.SendToOwner"))

	var req dto.SendToOwnerRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	ev := c.loadEvent(w, r)
	if ev == nil {
		return
	}

	receipt, err := c.delivery.SendToOwner(ctx, ev, req.OwnerEmail)
	if err != nil {
		switch {
		case errors.Is(err, delivery.ErrInvalidOwnerEmail):
			helpers.WriteErrorJSON(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, delivery.ErrNoEligibleParticipants):
			helpers.WriteJSON(w, http.StatusOK, dto.SendResponse{
				Success: true,
				Message: "all participants have already received their certificates",
			})
		default:
			log.Error("batched send failed", logger.Err(err))
			helpers.WriteErrorJSON(w, http.StatusBadGateway, err.Error())
		}
		return
	}

	helpers.WriteJSON(w, http.StatusOK, dto.SendResponse{
		Success: true,
		EmailID: receipt.ID,
		Sent:    ev.DeliveredCount,
	})
}

// Certificate maneja GET /v1/events/{eventID}/participants/{participantID}/certificate.
// Sirve el SVG desde el cache de artefactos, con fallback a decodificar la
// data URI persistida.
func (c *DeliveryController) Certificate(w http.ResponseWriter, r *http.Request) {
	ev := c.loadEvent(w, r)
	if ev == nil {
		return
	}

	pid := chi.URLParam(r, "participantID")
	var p *domain.Participant
	for i := range ev.Participants {
		if ev.Participants[i].ID == pid {
			p = &ev.Participants[i]
			break
		}
	}
	if p == nil {
		helpers.WriteErrorJSON(w, http.StatusNotFound, "participant not found")
		return
	}
	if p.ArtifactURI == "" {
		helpers.WriteErrorJSON(w, http.StatusNotFound, "certificate not generated yet")
		return
	}

	svg, ok := c.artifacts.Get(p.CertificateID)
	if !ok {
		var err error
		svg, err = certificate.DecodeDataURI(p.ArtifactURI)
		if err != nil {
			helpers.WriteErrorJSON(w, http.StatusInternalServerError, "stored artifact is corrupt")
			return
		}
		c.artifacts.Set(p.CertificateID, svg)
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}
