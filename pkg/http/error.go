package http

import (
	"encoding/json"
	"net/http"
)

// ErrorBody - тело ответа с ошибкой
type ErrorBody struct {
	Error string `json:"error"`
}

// ErrorResponse отправляет JSON с текстом ошибки и кодом статуса
func ErrorResponse(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorBody{Error: message})
}
