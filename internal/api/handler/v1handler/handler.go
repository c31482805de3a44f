// Package v1handler implements the version 1 lookup API.
package v1handler

import (
	"context"
	"errors"
	"net/http"
	"time"
	"whoisresolver/internal/resolver"
	"whoisresolver/pkg/controller"
	"whoisresolver/pkg/logger"
	"whoisresolver/pkg/serrors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Deps groups the services the handlers call into.
type Deps struct {
	Resolver resolver.Resolver
	// Now is used for expiration classification; nil means time.Now.
	Now func() time.Time
}

type Handler struct {
	deps Deps
}

func New(deps Deps) *Handler {
	if deps.Now == nil {
		deps.Now = time.Now
	}

	return &Handler{deps: deps}
}

// Register mounts the v1 endpoints on r. Paths are relative to the /v1 prefix.
func (h *Handler) Register(r chi.Router) {
	r.Get("/whois/{domain}", h.GetWhois)
}

// ErrorResponse is the body of every non-lookup error.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorMapping struct {
	status  int
	message string
}

var errorMappings = map[serrors.Kind]errorMapping{ //nolint: gochecknoglobals
	serrors.ErrNotFound:         {http.StatusNotFound, "resource not found"},
	serrors.ErrBadRequest:       {http.StatusBadRequest, "bad request"},
	serrors.ErrTimeout:          {http.StatusGatewayTimeout, "lookup timed out"},
	serrors.ErrUnavailable:      {http.StatusServiceUnavailable, "upstream unavailable"},
	serrors.ErrUpstream:         {http.StatusBadGateway, "upstream error"},
	serrors.ErrParse:            {http.StatusBadGateway, "malformed upstream response"},
	serrors.ErrOperationalBlock: {http.StatusBadGateway, "upstream refused the request"},
	serrors.ErrConfiguration:    {http.StatusInternalServerError, "internal error"},
	serrors.ErrInternal:         {http.StatusInternalServerError, "internal error"},
}

// NewError maps err to a status code and response body. Semantic errors
// expose their message; anything else is reported as an internal error.
func (h *Handler) NewError(ctx context.Context, err error) (int, ErrorResponse) {
	kind := serrors.KindOf(err)
	mapping, ok := errorMappings[kind]
	if !ok {
		logger.Error(ctx, "unhandled error", zap.Error(err))

		return http.StatusInternalServerError, ErrorResponse{
			Code:    serrors.ErrInternal.Error(),
			Message: errorMappings[serrors.ErrInternal].message,
		}
	}

	msg := mapping.message
	var se *serrors.Error
	if errors.As(err, &se) && se.Message() != "" && mapping.status < http.StatusInternalServerError {
		msg = se.Error()
	}
	if mapping.status >= http.StatusInternalServerError {
		logger.Error(ctx, "request failed", logger.ErrorKind(err), zap.Error(err))
	}

	return mapping.status, ErrorResponse{Code: serrors.Code(err), Message: msg}
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status, body := h.NewError(ctx, err)
	controller.WriteJSON(ctx, w, status, body)
}
