package email

import (
	"github.com/dropDatabas3/eventeye/internal/config"
	"github.com/dropDatabas3/eventeye/internal/observability/logger"
)

// FromConfig selecciona el driver de envío según la configuración:
// "resend" con api key, "smtp" con host, y simulado en cualquier otro caso.
func FromConfig(cfg config.Sender) Sender {
	switch cfg.Driver {
	case "resend":
		if cfg.Resend.APIKey != "" {
			s := NewResendSender(cfg.Resend.APIKey)
			if cfg.Resend.BaseURL != "" {
				s.BaseURL = cfg.Resend.BaseURL
			}
			return s
		}
	case "smtp":
		if cfg.SMTP.Host != "" {
			s := NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Pass)
			if cfg.SMTP.TLSMode != "" {
				s.TLSMode = cfg.SMTP.TLSMode
			}
			return s
		}
	}
	logger.L().Warn("no email provider configured, using simulated sender",
		logger.Component("email"), logger.String("driver", cfg.Driver))
	return SimulatedSender{}
}
