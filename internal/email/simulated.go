package email

import (
	"context"
	"fmt"
	"time"

	"github.com/dropDatabas3/eventeye/internal/observability/logger"
)

// SimulatedSender implementa Sender sin red: se usa cuando no hay credencial
// de proveedor configurada. Popula un message id sintético para que las
// transiciones de estado downstream sean idénticas a un envío real.
type SimulatedSender struct{}

func (SimulatedSender) Send(ctx context.Context, msg Message) (Receipt, error) {
	if err := validate(msg); err != nil {
		return Receipt{}, err
	}
	id := fmt.Sprintf("simulated-%d", time.Now().UnixMilli())
	logger.From(ctx).Info("email simulated (no provider credential configured)",
		logger.Component("simulated"),
		logger.Email(msg.To[0]),
		logger.String("subject", msg.Subject),
		logger.ID(id),
	)
	return Receipt{ID: id}, nil
}

var _ Sender = SimulatedSender{}
