package domain

// Status representa el estado de entrega del certificado de un participante.
type Status string

const (
	// StatusPending es el estado inicial: certificado aún no enviado.
	StatusPending Status = "pending"
	// StatusGenerating indica que el certificado está siendo generado/enviado.
	StatusGenerating Status = "generating"
	// StatusDelivered indica entrega exitosa. Terminal para el retry ordinario.
	StatusDelivered Status = "delivered"
	// StatusBounced queda reservado para un canal de delivery-receipts futuro.
	// Hoy ningún código lo asigna.
	StatusBounced Status = "bounced"
	// StatusFailed indica un fallo de envío. Re-elegible para retry.
	StatusFailed Status = "failed"
)

// IsValid retorna true si el status es uno de los definidos.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusGenerating, StatusDelivered, StatusBounced, StatusFailed:
		return true
	}
	return false
}

// CanTransition retorna true si la transición s -> to es válida según la
// máquina de estados: pending → generating → delivered, con pending/generating
// pudiendo terminar en failed o bounced, y failed/bounced re-entrando al flujo.
func (s Status) CanTransition(to Status) bool {
	if s == to {
		return true
	}
	switch s {
	case StatusPending:
		return to == StatusGenerating || to == StatusDelivered || to == StatusFailed || to == StatusBounced
	case StatusGenerating:
		return to == StatusDelivered || to == StatusFailed || to == StatusBounced
	case StatusFailed, StatusBounced:
		// Re-elegibles: vuelven al flujo de envío.
		return to == StatusPending || to == StatusGenerating || to == StatusDelivered || to == StatusFailed
	case StatusDelivered:
		// Terminal para el retry ordinario.
		return false
	}
	return false
}
