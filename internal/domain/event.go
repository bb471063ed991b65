// Package domain define los tipos de dominio del pipeline de certificados.
package domain

import (
	"errors"
	"time"
)

var (
	// ErrNameImmutable indica un intento de reescribir el nombre original.
	ErrNameImmutable = errors.New("domain: participant original name is write-once")

	// ErrInvalidTransition indica una transición de estado ilegal.
	ErrInvalidTransition = errors.New("domain: invalid status transition")
)

// Participant representa un participante de un evento y el estado de entrega
// de su certificado. El nombre original (Name) es write-once y nunca se
// reescribe; FormattedName es derivado y solo informativo.
type Participant struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	FormattedName string     `json:"formattedName,omitempty"`
	Status        Status     `json:"status"`
	CertificateID string     `json:"certificateId,omitempty"`
	Verification  string     `json:"verification,omitempty"`
	ArtifactURI   string     `json:"certificateUrl,omitempty"`
	DeliveredAt   *time.Time `json:"deliveredAt,omitempty"`
	Error         string     `json:"error,omitempty"`
	EmailID       string     `json:"emailId,omitempty"`
	EmailSentAt   *time.Time `json:"emailSentAt,omitempty"`
}

// DisplayName retorna el nombre a mostrar en el certificado:
// prefiere FormattedName, con fallback al nombre original.
func (p *Participant) DisplayName() string {
	if p.FormattedName != "" {
		return p.FormattedName
	}
	return p.Name
}

// Eligible retorna true si el participante es elegible para (re)envío:
// tiene artefacto e identificador, y nunca fue enviado o su último envío falló.
func (p *Participant) Eligible() bool {
	if p.ArtifactURI == "" || p.CertificateID == "" {
		return false
	}
	return p.EmailSentAt == nil || p.Status == StatusFailed
}

// Transition cambia el status validando contra la máquina de estados.
func (p *Participant) Transition(to Status) error {
	if !p.Status.CanTransition(to) {
		return ErrInvalidTransition
	}
	p.Status = to
	return nil
}

// Event representa un evento con su lista ordenada de participantes y los
// contadores agregados. Los contadores son caches denormalizados: deben
// recomputarse (Recount) después de toda mutación de participantes.
type Event struct {
	ID                    string        `json:"id"`
	EventName             string        `json:"eventName"`
	EventDate             string        `json:"eventDate"`
	OrganizerName         string        `json:"organizerName"`
	OrganizerTitle        string        `json:"organizerTitle,omitempty"`
	OrganizerOrganization string        `json:"organizerOrganization,omitempty"`
	Participants          []Participant `json:"participants"`
	CreatedAt             time.Time     `json:"createdAt"`
	TotalParticipants     int           `json:"totalParticipants"`
	DeliveredCount        int           `json:"deliveredCount"`
	BouncedCount          int           `json:"bouncedCount"`
	PendingCount          int           `json:"pendingCount"`
}

// Recount recomputa los contadores agregados desde los statuses actuales.
// pending agrupa pending, failed y generating (todo lo no-terminal).
func (e *Event) Recount() {
	var delivered, bounced, pending int
	for i := range e.Participants {
		switch e.Participants[i].Status {
		case StatusDelivered:
			delivered++
		case StatusBounced:
			bounced++
		default:
			pending++
		}
	}
	e.TotalParticipants = len(e.Participants)
	e.DeliveredCount = delivered
	e.BouncedCount = bounced
	e.PendingCount = pending
}

// EligibleParticipants retorna los índices de participantes elegibles para
// envío, en orden de lista.
func (e *Event) EligibleParticipants() []int {
	var idx []int
	for i := range e.Participants {
		if e.Participants[i].Eligible() {
			idx = append(idx, i)
		}
	}
	return idx
}
