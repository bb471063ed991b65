package certificate

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"text/template"
	"time"

	"github.com/dropDatabas3/eventeye/internal/domain"
)

var (
	ErrMissingEventName     = errors.New("certificate: event name is required")
	ErrMissingEventDate     = errors.New("certificate: event date is required")
	ErrMissingOrganizerName = errors.New("certificate: organizer name is required")
	ErrMissingCertificateID = errors.New("certificate: participant has no certificate id")
)

// defaultOrganizerTitle se usa cuando el evento no trae título del organizador.
const defaultOrganizerTitle = "Event Organizer"

// Artifact es el certificado renderizado: un SVG autocontenido (sin
// referencias externas) identificado por su certificate id.
type Artifact struct {
	CertificateID string
	SVG           []byte
}

// svgTemplate es el layout 800x600 del certificado. El marcador QR es un
// placeholder gráfico; la verificación real viaja en el payload embebido.
var svgTemplate = template.Must(template.New("certificate").Parse(`<svg width="800" height="600" xmlns="http://www.w3.org/2000/svg">
  <rect width="800" height="600" fill="#ffffff"/>
  <rect x="20" y="20" width="760" height="560" fill="none" stroke="#2563eb" stroke-width="3"/>
  <rect x="30" y="30" width="740" height="540" fill="none" stroke="#2563eb" stroke-width="1"/>
  <text x="400" y="100" text-anchor="middle" font-size="36" font-weight="bold" fill="#1e40af">CERTIFICATE OF PARTICIPATION</text>
  <line x1="200" y1="130" x2="600" y2="130" stroke="#2563eb" stroke-width="2"/>
  <text x="400" y="180" text-anchor="middle" font-size="18" fill="#374151">This is to certify that</text>
  <text x="400" y="240" text-anchor="middle" font-size="32" font-weight="bold" fill="#1e40af">{{.ParticipantName}}</text>
  <text x="400" y="290" text-anchor="middle" font-size="18" fill="#374151">has successfully participated in</text>
  <text x="400" y="340" text-anchor="middle" font-size="24" font-weight="600" fill="#1e40af">{{.EventName}}</text>
  <text x="400" y="380" text-anchor="middle" font-size="16" fill="#6b7280">held on {{.EventDate}}</text>
  <text x="150" y="480" text-anchor="start" font-size="14" font-weight="600" fill="#374151">{{.OrganizerName}}</text>
  <text x="150" y="500" text-anchor="start" font-size="12" fill="#6b7280">{{.OrganizerTitle}}</text>
{{- if .OrganizerOrganization}}
  <text x="150" y="515" text-anchor="start" font-size="12" fill="#6b7280">{{.OrganizerOrganization}}</text>
{{- end}}
  <g transform="translate(650, 450)">
    <rect x="0" y="0" width="100" height="100" fill="white"/>
    <rect x="10" y="10" width="80" height="80" fill="black"/>
    <rect x="20" y="20" width="60" height="60" fill="white"/>
    <text x="50" y="55" text-anchor="middle" font-size="8" fill="black">QR</text>
  </g>
  <text x="400" y="550" text-anchor="middle" font-size="10" fill="#9ca3af">Certificate ID: {{.CertificateID}}</text>
</svg>
`))

type templateData struct {
	ParticipantName       string
	EventName             string
	EventDate             string
	OrganizerName         string
	OrganizerTitle        string
	OrganizerOrganization string
	CertificateID         string
}

// Render produce el artefacto SVG para un participante de un evento.
// Determinista dado el mismo participante/evento/identificador. No muta sus
// inputs. Falla solo con input malformado (campos requeridos del evento
// ausentes); nunca produce un certificado en blanco silenciosamente.
func Render(p *domain.Participant, e *domain.Event) (*Artifact, error) {
	if e.EventName == "" {
		return nil, ErrMissingEventName
	}
	if e.EventDate == "" {
		return nil, ErrMissingEventDate
	}
	if e.OrganizerName == "" {
		return nil, ErrMissingOrganizerName
	}
	if p.CertificateID == "" {
		return nil, ErrMissingCertificateID
	}

	title := e.OrganizerTitle
	if title == "" {
		title = defaultOrganizerTitle
	}

	data := templateData{
		ParticipantName:       html.EscapeString(p.DisplayName()),
		EventName:             html.EscapeString(e.EventName),
		EventDate:             html.EscapeString(humanDate(e.EventDate)),
		OrganizerName:         html.EscapeString(e.OrganizerName),
		OrganizerTitle:        html.EscapeString(title),
		OrganizerOrganization: html.EscapeString(e.OrganizerOrganization),
		CertificateID:         html.EscapeString(p.CertificateID),
	}

	var buf bytes.Buffer
	if err := svgTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("certificate: render template: %w", err)
	}

	return &Artifact{CertificateID: p.CertificateID, SVG: buf.Bytes()}, nil
}

// humanDate convierte la fecha del evento a formato legible ("January 2, 2006").
// Si no se puede parsear, se embebe el texto original tal cual.
func humanDate(date string) string {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "01/02/2006"} {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Format("January 2, 2006")
		}
	}
	return date
}
