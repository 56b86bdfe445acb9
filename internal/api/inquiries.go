package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/hafljin/inquiry-automation/internal/catalog"
	apperrors "github.com/hafljin/inquiry-automation/internal/errors"
	"github.com/hafljin/inquiry-automation/internal/logger"
	"github.com/hafljin/inquiry-automation/internal/models"
)

// InquiryRequest is the body of the free-text and chat endpoints
type InquiryRequest struct {
	Text string `json:"text"`
}

// ChatResponse is the body returned by POST /v1/chat/messages
type ChatResponse struct {
	Message     string             `json:"message"`
	Timestamp   time.Time          `json:"timestamp"`
	UserMessage models.ChatMessage `json:"userMessage"`
	BotMessage  models.ChatMessage `json:"botMessage"`
}

// tiersHandler handles GET /v1/tiers
func (h *Handler) tiersHandler(w http.ResponseWriter, r *http.Request) {
	tiers := catalog.All()
	w.Header().Set("Cache-Control", "public, max-age=300")
	h.writeJSONResponse(w, http.StatusOK, map[string]any{
		"data":  tiers,
		"count": len(tiers),
	})
}

// optionsHandler handles GET /v1/options
func (h *Handler) optionsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=300")
	h.writeJSONResponse(w, http.StatusOK, map[string]any{
		"inquiryTypes": catalog.InquiryTypeOptions(),
		"channels":     catalog.ChannelOptions(),
	})
}

// validateHandler handles POST /v1/inquiries/validate
func (h *Handler) validateHandler(w http.ResponseWriter, r *http.Request) {
	var req InquiryRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	h.writeJSONResponse(w, http.StatusOK, h.service.ValidateInquiry(req.Text))
}

// analyzeHandler handles POST /v1/inquiries/analyze
func (h *Handler) analyzeHandler(w http.ResponseWriter, r *http.Request) {
	var req InquiryRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.AnalyzeInquiry(r.Context(), req.Text)
	if err != nil {
		var verr *apperrors.InquiryValidationError
		if errors.As(err, &verr) {
			h.writeErrorResponse(w, r, http.StatusUnprocessableEntity, verr.Message)
			return
		}
		logger.WithContext(r.Context()).Error("Failed to analyze inquiry", "error", err)
		h.writeErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSONResponse(w, http.StatusOK, resp)
}

// selectionHandler handles POST /v1/diagnostics/selection
func (h *Handler) selectionHandler(w http.ResponseWriter, r *http.Request) {
	var sel models.DiagnosticSelection
	if !h.decodeJSON(w, r, &sel) {
		return
	}
	h.writeJSONResponse(w, http.StatusOK, h.service.AnalyzeBySelection(r.Context(), sel))
}

// chatHandler handles POST /v1/chat/messages
func (h *Handler) chatHandler(w http.ResponseWriter, r *http.Request) {
	var req InquiryRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	userMsg := models.NewChatMessage(models.SenderUser, req.Text, time.Now())
	reply := h.service.GetBotResponse(r.Context(), req.Text)
	botMsg := models.NewChatMessage(models.SenderBot, reply.Message, reply.Timestamp)

	h.writeJSONResponse(w, http.StatusOK, ChatResponse{
		Message:     reply.Message,
		Timestamp:   reply.Timestamp,
		UserMessage: userMsg,
		BotMessage:  botMsg,
	})
}
