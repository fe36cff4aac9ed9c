package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
	orchestratorx "github.com/tanpawarit/insurance-callcenter-agent/agent/agents/orchestrator"
	contractx "github.com/tanpawarit/insurance-callcenter-agent/agent/contract"
	storex "github.com/tanpawarit/insurance-callcenter-agent/agent/store"
)

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Code    int    `json:"code,omitempty"`
}

func WriteError(w http.ResponseWriter, code int, message string) {
	WriteJSON(w, code, ErrorResponse{
		Status:  "error",
		Message: message,
		Code:    code,
	})
}

func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("write response")
	}
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, contractx.ErrValidation),
		errors.Is(err, orchestratorx.ErrInvalidMessage),
		errors.Is(err, orchestratorx.ErrInvalidSession):
		return http.StatusBadRequest
	case errors.Is(err, contractx.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, storex.ErrDuplicate),
		errors.Is(err, storex.ErrForeignKey),
		errors.Is(err, storex.ErrIntegrity):
		return http.StatusConflict
	case errors.Is(err, contractx.ErrModelInvoke),
		errors.Is(err, contractx.ErrSchemaViolation):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeErr(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		WriteError(w, code, http.StatusText(code))
		return
	}
	WriteError(w, code, err.Error())
}
