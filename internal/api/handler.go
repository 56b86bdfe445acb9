package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hafljin/inquiry-automation/internal/database"
	"github.com/hafljin/inquiry-automation/internal/diagnostic"
	middlewares "github.com/hafljin/inquiry-automation/internal/middleware"
	"github.com/hafljin/inquiry-automation/internal/ratelimit"
	"github.com/hafljin/inquiry-automation/internal/usage"
)

// maxBodyBytes caps request bodies of the diagnostic endpoints
const maxBodyBytes = 64 << 10

// Handler handles HTTP requests for the API
type Handler struct {
	service     *diagnostic.Service
	db          *database.DB
	flusher     *usage.Flusher
	limiter     ratelimit.Limiter
	version     string
	buildTime   string
	gitCommit   string
	startTime   time.Time
	adminSecret string
}

// Options are the optional collaborators of a Handler
type Options struct {
	DB          *database.DB
	Flusher     *usage.Flusher
	Limiter     ratelimit.Limiter
	AdminSecret string
}

// NewHandler creates a new API handler
func NewHandler(service *diagnostic.Service, opts Options, version, buildTime, gitCommit string) *Handler {
	return &Handler{
		service:     service,
		db:          opts.DB,
		flusher:     opts.Flusher,
		limiter:     opts.Limiter,
		version:     version,
		buildTime:   buildTime,
		gitCommit:   gitCommit,
		startTime:   time.Now(),
		adminSecret: opts.AdminSecret,
	}
}

// RegisterRoutes registers all API routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		// Health check endpoints
		r.Get("/health", h.healthHandler)
		r.Get("/health/ready", h.readinessHandler)
		r.Get("/health/live", h.livenessHandler)

		// Catalog
		r.Get("/tiers", h.tiersHandler)
		r.Get("/options", h.optionsHandler)

		// Validation is cheap and not rate limited
		r.Post("/inquiries/validate", h.validateHandler)

		r.Group(func(r chi.Router) {
			r.Use(middlewares.RateLimit(h.limiter))
			r.Post("/inquiries/analyze", h.analyzeHandler)
			r.Post("/diagnostics/selection", h.selectionHandler)
			r.Post("/chat/messages", h.chatHandler)
		})

		// System info
		r.Get("/version", h.versionHandler)
	})

	// Admin routes (protected by shared secret middleware)
	r.Route("/v1/admin", func(r chi.Router) {
		r.Use(middlewares.AdminSecret(h.adminSecret))
		r.Get("/usage", h.adminUsage)
	})

	// Root health check
	r.Get("/health", h.healthHandler)
}

// healthHandler provides basic health check
func (h *Handler) healthHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
		"version":   h.version,
		"engine":    h.service.EngineName(),
	}

	h.writeJSONResponse(w, http.StatusOK, response)
}

// readinessHandler checks if the application is ready to serve traffic
func (h *Handler) readinessHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	checks := map[string]string{}
	statusCode := http.StatusOK

	if rec := h.service.Usage(); rec != nil {
		checks["usage"] = "ok"
		if err := rec.Health(ctx); err != nil {
			checks["usage"] = "error: " + err.Error()
			statusCode = http.StatusServiceUnavailable
		}
	}

	if h.db.IsConfigured() {
		checks["database"] = "ok"
		if err := h.db.Health(ctx); err != nil {
			checks["database"] = "error: " + err.Error()
			statusCode = http.StatusServiceUnavailable
		}
	}

	status := "ready"
	if statusCode != http.StatusOK {
		status = "not_ready"
	}

	response := map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().UTC(),
		"checks":    checks,
	}

	h.writeJSONResponse(w, statusCode, response)
}

// livenessHandler checks if the application is alive
func (h *Handler) livenessHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "alive",
		"timestamp": time.Now().UTC(),
		"uptime":    time.Since(h.startTime).String(),
	}

	h.writeJSONResponse(w, http.StatusOK, response)
}

// versionHandler returns version information
func (h *Handler) versionHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"version":    h.version,
		"build_time": h.buildTime,
		"git_commit": h.gitCommit,
	}

	h.writeJSONResponse(w, http.StatusOK, response)
}

// decodeJSON reads a JSON body into v; false means a 400 was written
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.writeErrorResponse(w, r, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// writeJSONResponse writes a JSON response
func (h *Handler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeErrorResponse writes a standardized error response
func (h *Handler) writeErrorResponse(w http.ResponseWriter, r *http.Request, statusCode int, message string) {
	response := ErrorResponse{
		Error:     http.StatusText(statusCode),
		Message:   message,
		Timestamp: time.Now().UTC(),
		RequestID: r.Header.Get("X-Request-ID"),
	}

	h.writeJSONResponse(w, statusCode, response)
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
}
