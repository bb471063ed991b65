package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/dropDatabas3/eventeye/internal/observability/logger"
	mail "github.com/go-mail/mail"
	"github.com/google/uuid"
)

// SMTPSender implementa Sender usando SMTP directo.
type SMTPSender struct {
	Host               string
	Port               int
	User               string
	Pass               string
	TLSMode            string // "auto" | "starttls" | "ssl" | "none"
	InsecureSkipVerify bool
}

// NewSMTPSender crea un nuevo SMTPSender con los parámetros dados.
func NewSMTPSender(host string, port int, user, pass string) *SMTPSender {
	return &SMTPSender{
		Host:    host,
		Port:    port,
		User:    user,
		Pass:    pass,
		TLSMode: "auto",
	}
}

// Send envía el mensaje con sus adjuntos decodificados desde base64.
// SMTP no retorna message id utilizable, así que el receipt lleva uno local.
func (s *SMTPSender) Send(ctx context.Context, msg Message) (Receipt, error) {
	if err := validate(msg); err != nil {
		return Receipt{}, err
	}

	log := logger.From(ctx).With(
		logger.Component("smtp"),
		logger.String("host", s.Host),
		logger.Int("port", s.Port),
		logger.Email(msg.To[0]),
	)

	m := mail.NewMessage()
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	for _, att := range msg.Attachments {
		raw, err := base64.StdEncoding.DecodeString(att.Content)
		if err != nil {
			return Receipt{}, fmt.Errorf("%w: attachment %s is not base64", ErrInvalidInput, att.Filename)
		}
		m.AttachReader(att.Filename, bytes.NewReader(raw))
	}

	d := mail.NewDialer(s.Host, s.Port, s.User, s.Pass)
	d.TLSConfig = &tls.Config{
		ServerName:         s.Host,
		InsecureSkipVerify: s.InsecureSkipVerify, // solo dev
	}

	switch s.TLSMode {
	case "ssl":
		d.SSL = true
	case "none":
		d.TLSConfig = &tls.Config{InsecureSkipVerify: s.InsecureSkipVerify}
	default:
		// "auto"/"starttls": go-mail negocia STARTTLS si corresponde
	}

	if err := d.DialAndSend(m); err != nil {
		log.Error("smtp send failed", logger.Err(err))
		return Receipt{}, fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	id := fmt.Sprintf("smtp-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
	log.Info("email sent", logger.ID(id))
	return Receipt{ID: id}, nil
}

var _ Sender = (*SMTPSender)(nil)
