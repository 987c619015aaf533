package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"chatbot/internal/service"

	"go.uber.org/zap"
)

const maxChatBodyBytes = 1 << 20

// Chatter answers one chat message.
type Chatter interface {
	Chat(ctx context.Context, message string) (service.ChatResult, error)
}

// Pinger reports store health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Handler serves the chat page and the JSON chat API.
type Handler struct {
	chat   Chatter
	store  Pinger
	logger *zap.Logger
}

func New(chat Chatter, store Pinger, logger *zap.Logger) *Handler {
	return &Handler{chat: chat, store: store, logger: logger}
}

// Chat handles POST /chat with a {"message": "..."} body.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r.Context(), h.logger)

	var req ChatRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxChatBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Debug("invalid chat payload", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON payload"})
		return
	}

	res, err := h.chat.Chat(r.Context(), req.Message)
	switch {
	case errors.Is(err, service.ErrEmptyMessage):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "No message provided"})
		return
	case err != nil:
		log.Error("chat failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Could not log the conversation, please try again."})
		return
	}

	log.Info("chat answered",
		zap.String("rule", res.Rule),
		zap.Int64("exchange_id", res.Exchange.ID),
		zap.Bool("logged", res.Logged))
	writeJSON(w, http.StatusOK, ChatResponse{Response: res.Response})
}

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		requestLogger(r.Context(), h.logger).Warn("health check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
