// Package ingest parsea el archivo de participantes (CSV) hacia filas
// name/email.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

var (
	// ErrTooFewRows indica que falta el header o la primera fila de datos.
	ErrTooFewRows = errors.New("ingest: file must contain headers and at least one data row")
	// ErrMissingColumns indica que no se resolvieron las columnas requeridas.
	ErrMissingColumns = errors.New(`ingest: file must contain "name" and "email" columns`)
	// ErrUnsupportedFormat indica una extensión de archivo no soportada.
	ErrUnsupportedFormat = errors.New("ingest: unsupported file format, upload a CSV file")
)

// Row es una fila resuelta del archivo subido.
type Row struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ParseCSV lee un CSV y resuelve la columna de nombre (cualquier header que
// contenga "name") y la de email (cualquier header que contenga "email" o
// "mail"). Filas con nombre o email vacíos se saltean.
func ParseCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("ingest: read csv: %w", err)
	}

	// descartar líneas totalmente vacías
	var lines [][]string
	for _, rec := range records {
		if !isBlank(rec) {
			lines = append(lines, rec)
		}
	}
	if len(lines) < 2 {
		return nil, ErrTooFewRows
	}

	nameIdx, emailIdx := -1, -1
	for i, h := range lines[0] {
		h = strings.ToLower(strings.TrimSpace(h))
		if nameIdx == -1 && strings.Contains(h, "name") {
			nameIdx = i
		}
		if emailIdx == -1 && (strings.Contains(h, "email") || strings.Contains(h, "mail")) {
			emailIdx = i
		}
	}
	if nameIdx == -1 || emailIdx == -1 {
		return nil, ErrMissingColumns
	}

	var rows []Row
	for _, rec := range lines[1:] {
		if len(rec) <= nameIdx || len(rec) <= emailIdx {
			continue
		}
		name := strings.TrimSpace(rec[nameIdx])
		email := strings.TrimSpace(rec[emailIdx])
		if name == "" || email == "" {
			continue
		}
		rows = append(rows, Row{Name: name, Email: email})
	}
	return rows, nil
}

// ParseFile despacha por extensión. Solo CSV está soportado; xlsx/xls se
// rechazan con un error explicativo.
func ParseFile(filename string, r io.Reader) ([]Row, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ParseCSV(r)
	case ".xlsx", ".xls":
		return nil, errors.New("ingest: excel parsing is not supported, convert the file to CSV")
	default:
		return nil, ErrUnsupportedFormat
	}
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
