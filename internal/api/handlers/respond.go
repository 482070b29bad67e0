package handlers

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse стандартный формат ошибки API
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// BusinessRuleResponse формат отказа по бизнес-правилу
// Отличается от ошибки валидации флагом businessRuleViolation —
// клиент показывает message пользователю как есть
type BusinessRuleResponse struct {
	Success               bool   `json:"success"`
	Message               string `json:"message"`
	BusinessRuleViolation bool   `json:"businessRuleViolation"`
}

// RespondJSON отправляет JSON ответ с указанным статус-кодом
func RespondJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if payload != nil {
		// Ошибку кодирования уже не вернуть клиенту: заголовки отправлены
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondBadRequest отправляет 400 Bad Request
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondJSON(w, http.StatusBadRequest, ErrorResponse{Success: false, Message: message})
}

// RespondBusinessRuleViolation отправляет 400 с флагом бизнес-правила
func RespondBusinessRuleViolation(w http.ResponseWriter, message string) {
	RespondJSON(w, http.StatusBadRequest, BusinessRuleResponse{
		Success:               false,
		Message:               message,
		BusinessRuleViolation: true,
	})
}

// RespondUnauthorized отправляет 401 Unauthorized
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondJSON(w, http.StatusUnauthorized, ErrorResponse{Success: false, Message: message})
}

// RespondForbidden отправляет 403 Forbidden
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondJSON(w, http.StatusForbidden, ErrorResponse{Success: false, Message: message})
}

// RespondNotFound отправляет 404 Not Found
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondJSON(w, http.StatusNotFound, ErrorResponse{Success: false, Message: message})
}

// RespondConflict отправляет 409 Conflict
func RespondConflict(w http.ResponseWriter, message string) {
	RespondJSON(w, http.StatusConflict, ErrorResponse{Success: false, Message: message})
}

// RespondInternalError отправляет 500 Internal Server Error
func RespondInternalError(w http.ResponseWriter) {
	RespondJSON(w, http.StatusInternalServerError, ErrorResponse{Success: false, Message: "internal server error"})
}
