package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey struct{}

// ToContext inyecta un logger en el contexto. El middleware HTTP lo usa
// para propagar un logger scoped con los campos del request.
func ToContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// From extrae el logger del contexto, o el singleton si no hay ninguno.
// Seguro de llamar desde cualquier capa, con o sin middleware.
func From(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return L()
	}
	if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok {
		return l
	}
	return L()
}
