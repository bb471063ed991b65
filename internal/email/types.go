// Package email define el boundary hacia el proveedor de email transaccional.
//
// El proveedor se trata como caja negra detrás de la interface Sender; los
// drivers disponibles son Resend (HTTP), SMTP (go-mail) y un modo simulado
// para cuando no hay credencial configurada.
package email

import (
	"context"
	"errors"
)

var (
	ErrSendFailed   = errors.New("email: send failed")
	ErrInvalidInput = errors.New("email: invalid input")
)

// Attachment es un adjunto del mensaje. Content es el cuerpo en base64,
// exactamente el payload de la data URI del artefacto.
type Attachment struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// Message es el mensaje saliente.
type Message struct {
	From        string
	To          []string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Receipt es el resultado de un envío exitoso.
type Receipt struct {
	// ID es el identificador de mensaje del proveedor. En modo simulado es
	// sintético (simulated-<unix-ms>) para que las transiciones de estado
	// downstream se comporten igual que con un envío real.
	ID string
}

// Sender envía un mensaje y retorna el receipt del proveedor.
type Sender interface {
	Send(ctx context.Context, msg Message) (Receipt, error)
}

func validate(msg Message) error {
	if msg.From == "" || len(msg.To) == 0 || msg.Subject == "" {
		return ErrInvalidInput
	}
	return nil
}
