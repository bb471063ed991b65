// Package delivery implementa el orquestador de entrega: genera los
// certificados de un evento y maneja el envío por email en modo individual
// o batched-to-owner, manteniendo la máquina de estados por participante.
package delivery

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	htemplate "html/template"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dropDatabas3/eventeye/internal/cache"
	"github.com/dropDatabas3/eventeye/internal/certificate"
	"github.com/dropDatabas3/eventeye/internal/domain"
	"github.com/dropDatabas3/eventeye/internal/email"
	"github.com/dropDatabas3/eventeye/internal/metrics"
	"github.com/dropDatabas3/eventeye/internal/observability/logger"
	"github.com/dropDatabas3/eventeye/internal/store"
)

var (
	ErrNoEligibleParticipants = errors.New("delivery: no eligible participants to send")
	ErrBatchSendFailed        = errors.New("delivery: batched send failed")
	ErrInvalidOwnerEmail      = errors.New("delivery: owner email is required")
)

// ProgressFunc recibe (completados, total elegible) después de cada envío
// individual.
type ProgressFunc func(completed, total int)

// Config contiene las dependencias del orquestador.
type Config struct {
	Store  store.Store
	Sender email.Sender
	From   string

	// SendDelay es el throttle fijo entre envíos individuales. Es un
	// rate-limit deliberado hacia el proveedor, no una optimización.
	SendDelay time.Duration

	// RenderConcurrency limita el fan-out de renders (default 8).
	RenderConcurrency int

	// Artifacts es opcional: cache de SVGs para el preview endpoint.
	Artifacts *cache.ArtifactCache
}

// Service es el orquestador de entrega.
type Service struct {
	store     store.Store
	sender    email.Sender
	from      string
	delay     time.Duration
	renderers int
	artifacts *cache.ArtifactCache
}

// NewService crea el orquestador.
func NewService(cfg Config) (*Service, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("delivery: store is required")
	}
	if cfg.Sender == nil {
		return nil, fmt.Errorf("delivery: sender is required")
	}
	if cfg.RenderConcurrency <= 0 {
		cfg.RenderConcurrency = 8
	}
	if cfg.SendDelay <= 0 {
		cfg.SendDelay = 500 * time.Millisecond
	}
	return &Service{
		store:     cfg.Store,
		sender:    cfg.Sender,
		from:      cfg.From,
		delay:     cfg.SendDelay,
		renderers: cfg.RenderConcurrency,
		artifacts: cfg.Artifacts,
	}, nil
}

// ─── Generación ───

// GenerateCertificates asigna identificador y payload de verificación a cada
// participante que no los tenga y renderiza todos los artefactos. Un
// identificador ya asignado nunca se reasigna. Los renders corren en
// paralelo acotado; cada render es función pura de su participante+evento,
// así que el resultado por participante es determinista sin importar el
// interleaving. Al final recomputa contadores y persiste el evento entero.
func (s *Service) GenerateCertificates(ctx context.Context, event *domain.Event) error {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Op("GenerateCertificates"),
		logger.EventID(event.ID),
	)

	for i := range event.Participants {
		p := &event.Participants[i]
		if p.CertificateID == "" {
			p.CertificateID = certificate.NewCertificateID()
			p.Verification = certificate.NewVerification(p.CertificateID, p.Email)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.renderers)
	for i := range event.Participants {
		p := &event.Participants[i]
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			art, err := certificate.Render(p, event)
			if err != nil {
				return fmt.Errorf("participant %s: %w", p.ID, err)
			}
			p.ArtifactURI = art.DataURI()
			if s.artifacts != nil {
				s.artifacts.Set(p.CertificateID, art.SVG)
			}
			metrics.CertificatesRendered.Inc()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("certificate generation failed", logger.Err(err))
		return err
	}

	event.Recount()
	if err := s.store.SaveEvent(ctx, *event); err != nil {
		return err
	}

	log.Info("certificates generated", logger.Count(len(event.Participants)))
	return nil
}

// ─── Envío individual ───

// SendResult es el resultado por participante de un envío individual.
type SendResult struct {
	ParticipantID string
	Success       bool
	EmailID       string
	Error         string
}

// SendIndividual itera el conjunto elegible en orden de lista enviando un
// mensaje por participante, secuencialmente, con el delay fijo entre envíos.
// Cada envío registra éxito o fallo de forma independiente; un fallo no
// aborta el resto. onProgress (opcional) se llama después de completar cada
// envío. Al final recomputa contadores y persiste el evento como unidad.
func (s *Service) SendIndividual(ctx context.Context, event *domain.Event, onProgress ProgressFunc) ([]SendResult, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Op("SendIndividual"),
		logger.EventID(event.ID),
		logger.Mode("individual"),
	)

	eligible := event.EligibleParticipants()
	if len(eligible) == 0 {
		return nil, ErrNoEligibleParticipants
	}

	total := len(eligible)
	results := make([]SendResult, 0, total)

	for n, idx := range eligible {
		p := &event.Participants[idx]
		_ = p.Transition(domain.StatusGenerating)

		start := time.Now()
		receipt, err := s.sendOne(ctx, p, event)
		metrics.SendDuration.Observe(float64(time.Since(start).Milliseconds()))

		now := time.Now().UTC()
		if err != nil {
			_ = p.Transition(domain.StatusFailed)
			p.Error = err.Error()
			metrics.EmailsSent.WithLabelValues("individual", "failed").Inc()
			log.Warn("send failed",
				logger.ParticipantID(p.ID), logger.Email(p.Email), logger.Err(err))
			results = append(results, SendResult{ParticipantID: p.ID, Error: err.Error()})
		} else {
			_ = p.Transition(domain.StatusDelivered)
			p.Error = ""
			p.EmailID = receipt.ID
			p.EmailSentAt = &now
			p.DeliveredAt = &now
			metrics.EmailsSent.WithLabelValues("individual", "delivered").Inc()
			results = append(results, SendResult{ParticipantID: p.ID, Success: true, EmailID: receipt.ID})
		}

		if onProgress != nil {
			onProgress(n+1, total)
		}

		// throttle fijo entre envíos (no después del último)
		if n < total-1 {
			select {
			case <-time.After(s.delay):
			case <-ctx.Done():
				return results, ctx.Err()
			}
		}
	}

	event.Recount()
	if err := s.store.SaveEvent(ctx, *event); err != nil {
		return results, err
	}

	log.Info("individual send finished",
		logger.Count(total), logger.Int("delivered", event.DeliveredCount))
	return results, nil
}

func (s *Service) sendOne(ctx context.Context, p *domain.Participant, event *domain.Event) (email.Receipt, error) {
	payload, err := certificate.PayloadFromDataURI(p.ArtifactURI)
	if err != nil {
		return email.Receipt{}, err
	}

	html, err := renderBody(participantBodyTmpl, map[string]any{
		"Name":          p.DisplayName(),
		"EventName":     event.EventName,
		"CertificateID": p.CertificateID,
	})
	if err != nil {
		return email.Receipt{}, err
	}

	return s.sender.Send(ctx, email.Message{
		From:    s.from,
		To:      []string{p.Email},
		Subject: fmt.Sprintf("Your Certificate for %s", event.EventName),
		HTML:    html,
		Attachments: []email.Attachment{{
			Filename: fmt.Sprintf("certificate-%s.svg", p.CertificateID),
			Content:  payload,
		}},
	})
}

// ─── Envío batched-to-owner ───

// SendToOwner envía un único mensaje al organizador con el certificado de
// cada participante elegible como adjunto más un manifiesto nombre/email.
// El batch es atómico: si el envío falla, ningún status cambia; si tiene
// éxito, todos los elegibles pasan a delivered con el mismo timestamp y el
// mismo message id del proveedor.
func (s *Service) SendToOwner(ctx context.Context, event *domain.Event, ownerEmail string) (email.Receipt, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Op("SendToOwner"),
		logger.EventID(event.ID),
		logger.Mode("owner"),
	)

	if strings.TrimSpace(ownerEmail) == "" {
		return email.Receipt{}, ErrInvalidOwnerEmail
	}

	eligible := event.EligibleParticipants()
	if len(eligible) == 0 {
		return email.Receipt{}, ErrNoEligibleParticipants
	}

	attachments := make([]email.Attachment, 0, len(eligible))
	type manifestEntry struct{ Name, Email string }
	manifest := make([]manifestEntry, 0, len(eligible))

	for _, idx := range eligible {
		p := &event.Participants[idx]
		payload, err := certificate.PayloadFromDataURI(p.ArtifactURI)
		if err != nil {
			return email.Receipt{}, fmt.Errorf("participant %s: %w", p.ID, err)
		}
		attachments = append(attachments, email.Attachment{
			Filename: fmt.Sprintf("%s-%s.svg", dashed(p.DisplayName()), p.CertificateID),
			Content:  payload,
		})
		manifest = append(manifest, manifestEntry{Name: p.DisplayName(), Email: p.Email})
	}

	html, err := renderBody(ownerBodyTmpl, map[string]any{
		"EventName":    event.EventName,
		"Participants": manifest,
		"Count":        len(manifest),
	})
	if err != nil {
		return email.Receipt{}, err
	}

	receipt, err := s.sender.Send(ctx, email.Message{
		From:        s.from,
		To:          []string{ownerEmail},
		Subject:     fmt.Sprintf("All Certificates for %s", event.EventName),
		HTML:        html,
		Attachments: attachments,
	})
	if err != nil {
		// atómico: ningún participante cambia de estado
		metrics.EmailsSent.WithLabelValues("owner", "failed").Inc()
		log.Error("batched send failed", logger.Err(err))
		return email.Receipt{}, fmt.Errorf("%w: %v", ErrBatchSendFailed, err)
	}

	now := time.Now().UTC()
	for _, idx := range eligible {
		p := &event.Participants[idx]
		_ = p.Transition(domain.StatusDelivered)
		p.Error = ""
		p.EmailID = receipt.ID
		p.EmailSentAt = &now
		p.DeliveredAt = &now
	}
	metrics.EmailsSent.WithLabelValues("owner", "delivered").Inc()

	event.Recount()
	if err := s.store.SaveEvent(ctx, *event); err != nil {
		return receipt, err
	}

	log.Info("batched send finished",
		logger.Count(len(eligible)), logger.Email(ownerEmail), logger.ID(receipt.ID))
	return receipt, nil
}

// ─── Cuerpos de email ───

var participantBodyTmpl = htemplate.Must(htemplate.New("participant").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333;">Congratulations, {{.Name}}!</h2>
  <p style="color: #666; line-height: 1.6;">
    Thank you for participating in <strong>{{.EventName}}</strong>.
    Your certificate of participation is attached to this email.
  </p>
  <p style="color: #666; line-height: 1.6;">
    Certificate ID: <code style="background: #f4f4f4; padding: 2px 6px; border-radius: 3px;">{{.CertificateID}}</code>
  </p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;" />
  <p style="color: #999; font-size: 12px;">
    This is an automated email. Please do not reply to this message.
  </p>
</div>`))

var ownerBodyTmpl = htemplate.Must(htemplate.New("owner").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333;">Certificates for {{.EventName}}</h2>
  <p style="color: #666; line-height: 1.6;">
    All certificates for your event have been generated and are attached to this email.
  </p>
  <div style="background: #f8f9fa; padding: 15px; border-radius: 8px; margin: 20px 0;">
    <h3 style="color: #333; margin-top: 0;">Participants ({{.Count}})</h3>
    <ul style="color: #666; line-height: 1.8;">
      {{range .Participants}}<li><strong>{{.Name}}</strong> ({{.Email}})</li>{{end}}
    </ul>
  </div>
  <p style="color: #666; line-height: 1.6;">
    You can forward these certificates to the respective participants.
  </p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;" />
  <p style="color: #999; font-size: 12px;">
    This is an automated email from the EventEye certificate generation system.
  </p>
</div>`))

func renderBody(t *htemplate.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("delivery: render email body: %w", err)
	}
	return buf.String(), nil
}

func dashed(s string) string {
	return strings.Join(strings.Fields(s), "-")
}
