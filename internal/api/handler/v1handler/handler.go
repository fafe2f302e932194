package v1handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"webguard/internal/inspector"
	"webguard/pkg/controller"
	"webguard/pkg/logger"
	"webguard/pkg/serrors"

	"go.uber.org/zap"
)

// Deps are the services used by the v1 handlers.
type Deps struct {
	Inspector inspector.Inspector
}

// Handler implements the v1 HTTP endpoints on top of the inspector.
type Handler struct {
	deps Deps
}

func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// Error is the body of every non-2xx response.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorStatusCode pairs an Error body with its HTTP status.
type ErrorStatusCode struct {
	StatusCode int
	Response   Error
}

type kindStatus struct {
	status  int
	message string
}

var kindStatuses = map[serrors.Kind]kindStatus{ //nolint: gochecknoglobals
	serrors.ErrBadRequest:      {http.StatusBadRequest, "invalid request"},
	serrors.ErrUnauthorized:    {http.StatusUnauthorized, "authentication required"},
	serrors.ErrForbidden:       {http.StatusForbidden, "forbidden"},
	serrors.ErrNotFound:        {http.StatusNotFound, "resource not found"},
	serrors.ErrConflict:        {http.StatusConflict, "conflict"},
	serrors.ErrRateLimited:     {http.StatusTooManyRequests, "rate limit exceeded"},
	serrors.ErrPayloadTooLarge: {http.StatusRequestEntityTooLarge, "request payload too large"},
	serrors.ErrTimeout:         {http.StatusGatewayTimeout, "request timed out"},
	serrors.ErrUnavailable:     {http.StatusServiceUnavailable, "service unavailable"},
}

// NewError maps err to an HTTP status and body. Semantic errors keep their
// message; anything else is logged and reported as a bare internal error so
// that causes never leak to clients.
func (h Handler) NewError(ctx context.Context, err error) *ErrorStatusCode {
	kind := serrors.KindOf(err)
	ks, ok := kindStatuses[kind]
	if !ok {
		logger.Error(ctx, "internal error", zap.Error(err))

		return &ErrorStatusCode{
			StatusCode: http.StatusInternalServerError,
			Response:   Error{Code: serrors.ErrInternal.Error(), Message: "internal error"},
		}
	}

	msg := ks.message
	var se *serrors.Error
	if errors.As(err, &se) && se.Message() != "" {
		msg = se.Message()
	}

	return &ErrorStatusCode{
		StatusCode: ks.status,
		Response:   Error{Code: kind.Error(), Message: msg},
	}
}

func (h Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	res := h.NewError(r.Context(), err)
	controller.WriteError(w, res.StatusCode, res.Response.Code, res.Response.Message)
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn(ctx, "could not write response", zap.Error(err))
	}
}

// decodeJSON reads the request body into v. Oversized and malformed bodies are
// reported as semantic errors.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return serrors.With(serrors.ErrBadRequest, "request body is required")
	}

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return serrors.Wrap(serrors.ErrPayloadTooLarge, err, "request payload too large")
		}

		return serrors.Wrap(serrors.ErrBadRequest, err, "invalid JSON body")
	}

	return nil
}
