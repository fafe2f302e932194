package v1handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
	"webguard/pkg/domain"
	"webguard/pkg/logger"
	"webguard/pkg/serrors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// KeepAliveInterval is how often an idle settings stream sends a comment line.
const KeepAliveInterval = 25 * time.Second

// UpdateSettingRequest is the body of PUT /settings/{key}.
type UpdateSettingRequest struct {
	Value *bool `json:"value"`
}

// GetSettings returns the caller's feature toggles.
func (h Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	toggles, err := h.deps.Inspector.Settings(r.Context(), GetUserIDFromContext(r.Context()))
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, toggles)
}

// UpdateSetting persists one toggle and returns the resulting change event.
func (h Handler) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)

		return
	}
	if req.Value == nil {
		h.writeError(w, r, serrors.With(serrors.ErrBadRequest, "value is required"))

		return
	}

	change, err := h.deps.Inspector.UpdateSetting(r.Context(),
		GetUserIDFromContext(r.Context()), chi.URLParam(r, "key"), *req.Value)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, change)
}

// SettingsEvents streams the caller's setting changes as server-sent events.
// The stream opens with a "settings" event carrying the current toggles,
// followed by one "change" event per persisted update.
func (h Handler) SettingsEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := GetUserIDFromContext(ctx)

	changes, err := h.deps.Inspector.SubscribeSettings(ctx, userID)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	toggles, err := h.deps.Inspector.Settings(ctx, userID)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	rc := http.NewResponseController(w)
	_ = rc.SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	if err := writeEvent(w, "settings", toggles); err != nil {
		logger.Debug(ctx, "settings stream closed", zap.Error(err))

		return
	}
	if err := rc.Flush(); err != nil {
		logger.Warn(ctx, "response writer cannot flush", zap.Error(err))

		return
	}

	ticker := time.NewTicker(KeepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case change, ok := <-changes:
			if !ok {
				return
			}
			if err := writeEvent(w, "change", change); err != nil {
				logger.Debug(ctx, "settings stream closed", zap.Error(err))

				return
			}
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
		}

		if err := rc.Flush(); err != nil {
			return
		}
	}
}

func writeEvent(w http.ResponseWriter, event string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("could not encode event: %w", err)
	}

	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return fmt.Errorf("could not write event: %w", err)
	}

	return nil
}

// UsageResponse is returned by GET /stats.
type UsageResponse struct {
	UserID   domain.UserID         `json:"userId"`
	Usage    domain.QuotaUsage     `json:"usage"`
	Settings domain.FeatureToggles `json:"settings"`
}

// Stats returns the caller's quota usage together with their toggles.
func (h Handler) Stats(w http.ResponseWriter, r *http.Request) {
	userID := GetUserIDFromContext(r.Context())

	usage, err := h.deps.Inspector.Usage(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)

		return
	}
	toggles, err := h.deps.Inspector.Settings(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, UsageResponse{UserID: userID, Usage: usage, Settings: toggles})
}

// Limits returns the caller's quota usage for today.
func (h Handler) Limits(w http.ResponseWriter, r *http.Request) {
	usage, err := h.deps.Inspector.Usage(r.Context(), GetUserIDFromContext(r.Context()))
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	setUsageHeaders(w, usage)
	writeJSON(r.Context(), w, http.StatusOK, usage)
}
