package controllers

import (
	"net/http"

	"github.com/dropDatabas3/eventeye/internal/http/helpers"
	"github.com/dropDatabas3/eventeye/internal/store"
)

// HealthController expone readiness del servicio.
type HealthController struct {
	store store.Store
}

// NewHealthController crea el controller de health.
func NewHealthController(st store.Store) *HealthController {
	return &HealthController{store: st}
}

// Ready maneja GET /readyz. Verifica que el store responde.
func (c *HealthController) Ready(w http.ResponseWriter, r *http.Request) {
	if _, err := c.store.LoadAll(r.Context()); err != nil {
		helpers.WriteErrorJSON(w, http.StatusServiceUnavailable, "store unavailable")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
