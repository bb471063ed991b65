package certificate

import (
	"encoding/base64"
	"errors"
	"strings"
)

// dataURIPrefix es el marcador de esquema/encoding del artefacto embebible.
// El payload después de la coma es base64 puro: exactamente el cuerpo que
// los senders de email usan como attachment.
const dataURIPrefix = "data:image/svg+xml;base64,"

var ErrNotDataURI = errors.New("certificate: not an embeddable svg data uri")

// DataURI codifica el artefacto como URI autocontenida, usable como fuente
// de imagen y como payload de attachment.
func (a *Artifact) DataURI() string {
	return dataURIPrefix + base64.StdEncoding.EncodeToString(a.SVG)
}

// PayloadFromDataURI separa el payload base64 de una data URI embebible.
// El contenido original se recupera decodificando el retorno.
func PayloadFromDataURI(uri string) (string, error) {
	if !strings.HasPrefix(uri, dataURIPrefix) {
		return "", ErrNotDataURI
	}
	return strings.TrimPrefix(uri, dataURIPrefix), nil
}

// DecodeDataURI recupera el SVG original desde una data URI embebible.
func DecodeDataURI(uri string) ([]byte, error) {
	payload, err := PayloadFromDataURI(uri)
	if err != nil {
		return nil, err
	}
	b, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, errors.New("certificate: corrupt data uri payload")
	}
	return b, nil
}
