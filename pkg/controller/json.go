package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"whoisresolver/pkg/logger"

	"go.uber.org/zap"
)

// WriteJSON writes body as JSON with the given status code.
func WriteJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn(ctx, "could not write response body", zap.Error(err))
	}
}
