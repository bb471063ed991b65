package format

import (
	"context"

	"github.com/dropDatabas3/eventeye/internal/observability/logger"
)

// Service compone el formatter remoto con el fallback local. Nunca retorna
// error al caller: una falla remota se loguea y degrada al formateo local.
type Service struct {
	remote Formatter
}

// NewService crea un Service. remote puede ser nil (solo fallback local).
func NewService(remote Formatter) *Service {
	return &Service{remote: remote}
}

// Format retorna el nombre formateado para el certificado.
func (s *Service) Format(ctx context.Context, name string) string {
	if s.remote != nil {
		formatted, err := s.remote.Format(ctx, name)
		if err == nil {
			return formatted
		}
		logger.From(ctx).Debug("remote formatter failed, using local fallback",
			logger.Component("format"), logger.Err(err))
	}
	return Local(name)
}

// FormatAll formatea una lista de nombres en orden.
func (s *Service) FormatAll(ctx context.Context, names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = s.Format(ctx, n)
	}
	return out
}
