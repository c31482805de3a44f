package v1handler

import (
	"net/http"
	"whoisresolver/pkg/controller"
	"whoisresolver/pkg/logger"
	"whoisresolver/pkg/whois"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// GetWhois handles GET /v1/whois/{domain}.
//
// Registered and available verdicts are 200. An unresolvable verdict is 502
// with the result itself as body so callers still see the source and error.
func (h *Handler) GetWhois(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "domain")

	res, err := h.deps.Resolver.Resolve(ctx, name)
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}

	status := http.StatusOK
	if res.IsUnresolvable() {
		status = http.StatusBadGateway
	}
	logger.Debug(ctx, "lookup finished",
		logger.Domain(res.Domain),
		zap.String("source", string(res.Source)),
		zap.Bool("available", res.Available))

	controller.WriteJSON(ctx, w, status, whois.NewReport(res, h.deps.Now()))
}
