package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"loan-underwriter/apperrors"
	"loan-underwriter/logger"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error *apperrors.StandardError `json:"error"`
}

// writeJSON encodes into a buffer first so a failed encode never leaves a
// half-written 200 behind.
func writeJSON(w http.ResponseWriter, log logger.Logger, status int, v interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		log.WithError(err).Error("encoding response", nil)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.WithError(err).Warn("writing response", nil)
	}
}

func writeError(w http.ResponseWriter, log logger.Logger, err error) {
	se := apperrors.From(err)
	status := apperrors.HTTPStatus(se)
	if status >= http.StatusInternalServerError {
		log.WithError(err).Error("request failed", map[string]interface{}{"code": se.Code})
	} else {
		log.Debug("request rejected", map[string]interface{}{"code": se.Code, "details": se.Details})
	}
	writeJSON(w, log, status, errorResponse{Error: se})
}

// readJSONBody enforces a JSON content type and returns the raw body.
func readJSONBody(w http.ResponseWriter, r *http.Request) ([]byte, int, error) {
	if !strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return nil, http.StatusUnsupportedMediaType, errors.New("content type must be application/json")
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("reading request body: %w", err)
	}
	return body, http.StatusOK, nil
}
