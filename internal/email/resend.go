package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dropDatabas3/eventeye/internal/observability/logger"
)

// DefaultResendBaseURL es el endpoint público de Resend.
const DefaultResendBaseURL = "https://api.resend.com"

// ResendSender implementa Sender contra la API HTTP de Resend.
type ResendSender struct {
	APIKey  string
	BaseURL string
	HTTP    *http.Client
}

// NewResendSender crea un ResendSender con defaults razonables.
func NewResendSender(apiKey string) *ResendSender {
	return &ResendSender{
		APIKey:  apiKey,
		BaseURL: DefaultResendBaseURL,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

type resendRequest struct {
	From        string       `json:"from"`
	To          []string     `json:"to"`
	Subject     string       `json:"subject"`
	HTML        string       `json:"html"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

type resendResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Send envía el mensaje vía POST /emails. Una respuesta no-2xx se convierte
// en error con el mensaje del proveedor.
func (s *ResendSender) Send(ctx context.Context, msg Message) (Receipt, error) {
	if err := validate(msg); err != nil {
		return Receipt{}, err
	}

	log := logger.From(ctx).With(
		logger.Component("resend"),
		logger.Email(msg.To[0]),
		logger.String("subject", msg.Subject),
	)

	body, err := json.Marshal(resendRequest{
		From:        msg.From,
		To:          msg.To,
		Subject:     msg.Subject,
		HTML:        msg.HTML,
		Attachments: msg.Attachments,
	})
	if err != nil {
		return Receipt{}, fmt.Errorf("%w: marshal request: %v", ErrSendFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return Receipt{}, fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+s.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.HTTP.Do(req)
	if err != nil {
		log.Error("resend request failed", logger.Err(err))
		return Receipt{}, fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	defer resp.Body.Close()

	var out resendResponse
	_ = json.NewDecoder(resp.Body).Decode(&out)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := out.Message
		if detail == "" {
			detail = resp.Status
		}
		log.Error("resend rejected message", logger.Status(resp.StatusCode), logger.String("detail", detail))
		return Receipt{}, fmt.Errorf("%w: %s", ErrSendFailed, detail)
	}

	log.Info("email sent", logger.ID(out.ID))
	return Receipt{ID: out.ID}, nil
}

var _ Sender = (*ResendSender)(nil)
