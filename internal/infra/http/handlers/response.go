package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xavierca1/creator-deals/internal/logger"
	"github.com/xavierca1/creator-deals/internal/usecase"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.L().WithError(err).Warn("⚠️ falha ao serializar resposta")
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}

// decodeJSON escreve o 400 sozinho e devolve false se o corpo for inválido.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON: "+err.Error())
		return false
	}
	return true
}

var statusByCode = map[string]int{
	usecase.CodeValidation:        http.StatusBadRequest,
	usecase.CodeUnknownAction:     http.StatusBadRequest,
	usecase.CodeNotFound:          http.StatusNotFound,
	usecase.CodeInvalidTransition: http.StatusConflict,
	usecase.CodeConflict:          http.StatusConflict,
	usecase.CodeGeneration:        http.StatusBadGateway,
	usecase.CodeMalformed:         http.StatusBadGateway,
	usecase.CodeDelivery:          http.StatusBadGateway,
	usecase.CodeDatabase:          http.StatusInternalServerError,
}

// writeUsecaseError traduz DomainError/TechnicalError em status HTTP.
func writeUsecaseError(w http.ResponseWriter, r *http.Request, err error) {
	code := usecase.ErrorCode(err)
	status, ok := statusByCode[code]
	if !ok {
		code, status = "INTERNAL_ERROR", http.StatusInternalServerError
	}

	if status >= 500 {
		logger.L().WithError(err).WithField("path", r.URL.Path).Error("❌ erro na requisição")
	}
	writeErrorResponse(w, status, code, err.Error())
}
