package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error APIError `json:"error"`
}

func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Error("failed to encode response", zap.Error(err))
	}
}

func RespondError(w http.ResponseWriter, status int, code string, message string) {
	RespondJSON(w, status, errorResponse{Error: APIError{Code: code, Message: message}})
}
