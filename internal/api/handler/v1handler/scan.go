package v1handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"
	"webguard/pkg/domain"
	"webguard/pkg/logger"
	"webguard/pkg/serrors"

	"go.uber.org/zap"
)

// ScanRequest is the body of POST /scan.
type ScanRequest struct {
	URL string `json:"url"`
}

// BatchScanRequest is the body of POST /scan/batch.
type BatchScanRequest struct {
	URLs []string `json:"urls"`
}

// BatchScanResponse is returned by POST /scan/batch.
type BatchScanResponse struct {
	Results []domain.URLCheckResult `json:"results"`
}

// Scan checks the reputation of one URL. A failed lookup still answers 200
// with status unknown.
func (h Handler) Scan(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)

		return
	}

	userID := GetUserIDFromContext(r.Context())
	check, err := h.deps.Inspector.CheckURL(r.Context(), userID, req.URL)
	if err != nil {
		if errors.Is(err, serrors.ErrRateLimited) {
			h.setRateLimitHeaders(w, r, userID)
		}
		h.writeError(w, r, err)

		return
	}

	setUsageHeaders(w, check.Usage)
	writeJSON(r.Context(), w, http.StatusOK, check)
}

// ScanBatch checks several URLs; per-URL failures are reported inline.
func (h Handler) ScanBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchScanRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)

		return
	}

	results, err := h.deps.Inspector.CheckURLs(r.Context(), GetUserIDFromContext(r.Context()), req.URLs)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, BatchScanResponse{Results: results})
}

func (h Handler) setRateLimitHeaders(w http.ResponseWriter, r *http.Request, userID domain.UserID) {
	usage, err := h.deps.Inspector.Usage(r.Context(), userID)
	if err != nil {
		logger.Warn(r.Context(), "could not get quota usage", zap.Error(err))

		return
	}
	setUsageHeaders(w, usage)
	if !usage.ResetAt.IsZero() {
		w.Header().Set("Retry-After", strconv.Itoa(int(max(0, time.Until(usage.ResetAt).Seconds()))))
	}
}

func setUsageHeaders(w http.ResponseWriter, usage domain.QuotaUsage) {
	if usage.DailyLimit <= 0 {
		return
	}
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(usage.DailyLimit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(usage.Remaining))
	if !usage.ResetAt.IsZero() {
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(usage.ResetAt.Unix(), 10))
	}
}
