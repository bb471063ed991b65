package logger

import (
	"time"

	"go.uber.org/zap"

	"github.com/dropDatabas3/eventeye/internal/util"
)

// =================================================================================
// CAMPOS ESTÁNDAR - HTTP
// =================================================================================

// RequestID crea un campo para el ID del request.
func RequestID(v string) zap.Field {
	return zap.String("request_id", v)
}

// Method crea un campo para el método HTTP.
func Method(v string) zap.Field {
	return zap.String("method", v)
}

// Path crea un campo para el path del request.
func Path(v string) zap.Field {
	return zap.String("path", v)
}

// Status crea un campo para el status code HTTP.
func Status(v int) zap.Field {
	return zap.Int("status", v)
}

// Duration crea un campo para la duración del request.
func Duration(v time.Duration) zap.Field {
	return zap.Duration("duration", v)
}

// =================================================================================
// CAMPOS ESTÁNDAR - NEGOCIO
// =================================================================================

// EventID crea un campo para el ID del evento.
func EventID(v string) zap.Field {
	return zap.String("event_id", v)
}

// ParticipantID crea un campo para el ID del participante.
func ParticipantID(v string) zap.Field {
	return zap.String("participant_id", v)
}

// CertificateID crea un campo para el ID del certificado.
func CertificateID(v string) zap.Field {
	return zap.String("certificate_id", v)
}

// Email crea un campo para el email. Siempre enmascarado: los logs
// nunca llevan direcciones completas.
func Email(v string) zap.Field {
	return zap.String("email", util.MaskEmail(v))
}

// Mode crea un campo para el modo de envío (individual | owner).
func Mode(v string) zap.Field {
	return zap.String("mode", v)
}

// =================================================================================
// CAMPOS ESTÁNDAR - SISTEMA
// =================================================================================

// Component crea un campo para el componente/módulo.
func Component(v string) zap.Field {
	return zap.String("component", v)
}

// Op crea un campo para la operación actual.
func Op(v string) zap.Field {
	return zap.String("op", v)
}

// Layer crea un campo para la capa (controller, service, store).
func Layer(v string) zap.Field {
	return zap.String("layer", v)
}

// Err crea un campo para un error.
func Err(err error) zap.Field {
	return zap.Error(err)
}

// =================================================================================
// CAMPOS ESTÁNDAR - DATOS
// =================================================================================

// Count crea un campo para un conteo.
func Count(v int) zap.Field {
	return zap.Int("count", v)
}

// ID crea un campo genérico para un ID.
func ID(v string) zap.Field {
	return zap.String("id", v)
}

// Any crea un campo genérico para cualquier tipo.
func Any(key string, v any) zap.Field {
	return zap.Any(key, v)
}

// String crea un campo string genérico.
func String(key, v string) zap.Field {
	return zap.String(key, v)
}

// Int crea un campo int genérico.
func Int(key string, v int) zap.Field {
	return zap.Int(key, v)
}

// Bool crea un campo bool genérico.
func Bool(key string, v bool) zap.Field {
	return zap.Bool(key, v)
}
