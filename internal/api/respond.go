package api

import (
	"net/http"

	"github.com/goccy/go-json"
)

// Error codes returned in the error envelope.
const (
	codeValidation        = "VALIDATION_ERROR"
	codeSourceUnavailable = "SOURCE_UNAVAILABLE"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type dataResponse struct {
	Data any `json:"data"`
}

type errorResponse struct {
	Error apiError `json:"error"`
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("marshal response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		h.logger.Error("write response", "error", err)
	}
}

func (h *Handler) respondData(w http.ResponseWriter, data any) {
	h.respondJSON(w, http.StatusOK, dataResponse{Data: data})
}

func (h *Handler) respondError(w http.ResponseWriter, status int, code, message string, err error) {
	if err != nil {
		h.logger.Warn("api error", "code", code, "error", err)
	}
	h.respondJSON(w, status, errorResponse{Error: apiError{Code: code, Message: message}})
}
