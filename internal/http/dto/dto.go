// Package dto define los requests/responses del API HTTP.
package dto

import "github.com/dropDatabas3/eventeye/internal/ingest"

// CreateEventRequest crea un evento desde filas ya parseadas.
type CreateEventRequest struct {
	EventName             string       `json:"eventName"`
	EventDate             string       `json:"eventDate"`
	OrganizerName         string       `json:"organizerName"`
	OrganizerTitle        string       `json:"organizerTitle,omitempty"`
	OrganizerOrganization string       `json:"organizerOrganization,omitempty"`
	Participants          []ingest.Row `json:"participants"`
}

// SendToOwnerRequest dispara el envío batched al organizador.
type SendToOwnerRequest struct {
	OwnerEmail string `json:"ownerEmail"`
}

// SendResponse es el resultado de un envío.
type SendResponse struct {
	Success bool   `json:"success"`
	EmailID string `json:"emailId,omitempty"`
	Sent    int    `json:"sent,omitempty"`
	Failed  int    `json:"failed,omitempty"`
	Message string `json:"message,omitempty"`
}

// ParseResponse es el resultado del parse de un archivo subido.
type ParseResponse struct {
	Rows  []ingest.Row `json:"rows"`
	Count int          `json:"count"`
}
