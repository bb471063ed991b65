// Package certificate genera identificadores de certificado, payloads de
// verificación y el artefacto SVG del certificado.
package certificate

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Issuer es el tag de emisor embebido en los payloads de verificación.
const Issuer = "EventEye"

// NewCertificateID retorna un identificador con forma CERT-<ts36>-<rand>,
// en mayúsculas. El componente de tiempo solo no garantiza unicidad entre
// llamadas del mismo tick: el sufijo random (derivado de un UUID v4) cubre
// las colisiones same-tick. No es criptográficamente seguro.
func NewCertificateID() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:7]
	return strings.ToUpper(fmt.Sprintf("CERT-%s-%s", ts, suffix))
}

// Verification es el registro embebido en el certificado que permite
// confirmar después que un identificador fue emitido para un email dado.
type Verification struct {
	CertificateID string `json:"certificateId"`
	Email         string `json:"email"`
	Timestamp     string `json:"timestamp"`
	Issuer        string `json:"issuer"`
}

// NewVerification serializa el payload de verificación para un certificado.
// Función pura de sus inputs más el instante actual.
func NewVerification(certificateID, email string) string {
	v := Verification{
		CertificateID: certificateID,
		Email:         email,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Issuer:        Issuer,
	}
	b, _ := json.Marshal(v)
	return string(b)
}
