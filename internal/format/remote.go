package format

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dropDatabas3/eventeye/internal/config"
)

var ErrRemoteUnavailable = errors.New("format: remote formatter unavailable")

// DefaultBaseURL es el endpoint OpenAI-compatible por defecto.
const DefaultBaseURL = "https://api.openai.com/v1"

// namePrompt es la instrucción estricta del formatter: formatear para un
// certificado preservando la ortografía, devolviendo solo el nombre.
const namePrompt = `Format this person's name for a formal certificate.

Rules:
- Capitalize first letter of each word
- Keep the original spelling exactly as provided
- Remove extra spaces
- Do not translate or change the name
- Return ONLY the formatted name, nothing else

Name: %s

Formatted name:`

// Formatter es la capability de formateo de un nombre.
type Formatter interface {
	Format(ctx context.Context, name string) (string, error)
}

// Remote implementa Formatter contra un endpoint chat-completions
// OpenAI-compatible.
type Remote struct {
	APIKey  string
	BaseURL string
	Model   string
	HTTP    *http.Client
}

// NewRemote crea un Remote desde la configuración.
func NewRemote(cfg config.Formatter) *Remote {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return &Remote{
		APIKey:  cfg.APIKey,
		BaseURL: base,
		Model:   cfg.Model,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Format pide el nombre formateado al servicio remoto. Cualquier falla
// (red, status no-2xx, respuesta vacía) se reporta como error: el caller
// decide el fallback.
func (r *Remote) Format(ctx context.Context, name string) (string, error) {
	if r.APIKey == "" {
		return "", ErrRemoteUnavailable
	}

	body, err := json.Marshal(chatRequest{
		Model:       r.Model,
		Messages:    []chatMessage{{Role: "user", Content: fmt.Sprintf(namePrompt, name)}},
		MaxTokens:   100,
		Temperature: 0.1,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+r.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %d", ErrRemoteUnavailable, resp.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrRemoteUnavailable)
	}

	formatted := strings.TrimSpace(out.Choices[0].Message.Content)
	if formatted == "" {
		return "", fmt.Errorf("%w: empty response", ErrRemoteUnavailable)
	}
	return formatted, nil
}

var _ Formatter = (*Remote)(nil)
