package api

import (
	"net/http"
	"time"

	"github.com/hafljin/inquiry-automation/internal/logger"
	"github.com/hafljin/inquiry-automation/internal/usage"
)

// adminUsage returns the outcome counters of one day.
// Query: day (YYYY-MM-DD, default today UTC)
func (h *Handler) adminUsage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	day := time.Now().UTC()
	if v := r.URL.Query().Get("day"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			h.writeErrorResponse(w, r, http.StatusBadRequest, "invalid day format: "+v)
			return
		}
		day = t
	}

	counters, source, err := h.loadUsage(r, day)
	if err != nil {
		logger.WithContext(ctx).Error("Failed to load usage", "error", err, "day", usage.DayKey(day))
		h.writeErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	byKind := map[string]map[string]int{}
	total := 0
	for field, n := range counters {
		kind, outcome := usage.SplitField(field)
		if byKind[string(kind)] == nil {
			byKind[string(kind)] = map[string]int{}
		}
		byKind[string(kind)][outcome] = n
		total += n
	}

	h.writeJSONResponse(w, http.StatusOK, map[string]any{
		"day":     day.Format("2006-01-02"),
		"source":  source,
		"total":   total,
		"by_kind": byKind,
	})
}

// loadUsage prefers live counters and falls back to persisted totals
func (h *Handler) loadUsage(r *http.Request, day time.Time) (map[string]int, string, error) {
	ctx := r.Context()

	if rec := h.service.Usage(); rec != nil {
		counters, err := rec.Snapshot(ctx, day)
		if err == nil && len(counters) > 0 {
			return counters, "live", nil
		}
		if err != nil && h.flusher == nil {
			return nil, "", err
		}
	}

	if h.flusher != nil {
		counters, err := h.flusher.Load(ctx, day)
		return counters, "database", err
	}

	return map[string]int{}, "none", nil
}
