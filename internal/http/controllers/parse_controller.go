package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dropDatabas3/eventeye/internal/http/dto"
	"github.com/dropDatabas3/eventeye/internal/http/helpers"
	"github.com/dropDatabas3/eventeye/internal/ingest"
	"github.com/dropDatabas3/eventeye/internal/observability/logger"
)

// maxUploadBytes limita el tamaño del archivo subido (5MB).
const maxUploadBytes = 5 << 20

// ParseController maneja el parseo de archivos de participantes.
type ParseController struct{}

// NewParseController crea el controller de parse.
func NewParseController() *ParseController {
	return &ParseController{}
}

// Parse maneja POST /v1/parse. Acepta multipart/form-data con un campo
// "file", o el CSV crudo como body (text/csv).
func (c *ParseController) Parse(w http.ResponseWriter, r *http.Request) {
	log := logger.From(r.Context()).With(logger.Layer("controller"), logger.Op("ParseController.Parse"))

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	var (
		rows []ingest.Row
		err  error
	)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		file, header, ferr := r.FormFile("file")
		if ferr != nil {
			helpers.WriteErrorJSON(w, http.StatusBadRequest, `missing "file" field`)
			return
		}
		defer file.Close()
		rows, err = ingest.ParseFile(header.Filename, file)
	} else {
		rows, err = ingest.ParseCSV(r.Body)
	}

	if err != nil {
		switch {
		case errors.Is(err, ingest.ErrTooFewRows),
			errors.Is(err, ingest.ErrMissingColumns),
			errors.Is(err, ingest.ErrUnsupportedFormat):
			helpers.WriteErrorJSON(w, http.StatusUnprocessableEntity, err.Error())
		default:
			log.Error("parse failed", logger.Err(err))
			helpers.WriteErrorJSON(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	helpers.WriteJSON(w, http.StatusOK, dto.ParseResponse{Rows: rows, Count: len(rows)})
}
