package handler

import (
	"log/slog"
	"net/http"

	llmSvc "chatbackend/internal/domain/services/llm"
	"chatbackend/internal/httputil"
)

// ChatHandler handles chat HTTP requests.
// Handlers only talk to services, never to repositories.
type ChatHandler struct {
	chatService     llmSvc.ChatService
	exchangeService llmSvc.ExchangeService
	logger          *slog.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(
	chatService llmSvc.ChatService,
	exchangeService llmSvc.ExchangeService,
	logger *slog.Logger,
) *ChatHandler {
	return &ChatHandler{
		chatService:     chatService,
		exchangeService: exchangeService,
		logger:          logger,
	}
}

// CreateChat creates a new chat session. The body is optional.
// POST /api/chats
func (h *ChatHandler) CreateChat(w http.ResponseWriter, r *http.Request) {
	var req llmSvc.CreateChatRequest
	if err := httputil.ParseOptionalJSON(w, r, &req); err != nil {
		handleBodyError(w, err)
		return
	}

	chat, err := h.chatService.CreateChat(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, chat)
}

// ListChats returns chat summaries, most recently active first
// GET /api/chats
func (h *ChatHandler) ListChats(w http.ResponseWriter, r *http.Request) {
	chats, err := h.chatService.ListChats(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, chats)
}

// GetChat retrieves a chat with its messages
// GET /api/chats/{id}
func (h *ChatHandler) GetChat(w http.ResponseWriter, r *http.Request) {
	chatID, ok := PathParam(w, r, "id", "Chat ID")
	if !ok {
		return
	}

	chat, err := h.chatService.GetChat(r.Context(), chatID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, chat)
}

// UpdateChat renames a chat
// PUT /api/chats/{id}
func (h *ChatHandler) UpdateChat(w http.ResponseWriter, r *http.Request) {
	chatID, ok := PathParam(w, r, "id", "Chat ID")
	if !ok {
		return
	}

	var req llmSvc.UpdateChatRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		handleBodyError(w, err)
		return
	}

	chat, err := h.chatService.UpdateChat(r.Context(), chatID, &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, chat)
}

// DeleteChat deletes a chat and all of its messages
// DELETE /api/chats/{id}
func (h *ChatHandler) DeleteChat(w http.ResponseWriter, r *http.Request) {
	chatID, ok := PathParam(w, r, "id", "Chat ID")
	if !ok {
		return
	}

	if err := h.chatService.DeleteChat(r.Context(), chatID); err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// SendMessage runs one exchange: the user's message in, the AI reply out
// POST /api/chats/{id}/messages
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	chatID, ok := PathParam(w, r, "id", "Chat ID")
	if !ok {
		return
	}

	var req llmSvc.ExchangeRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		handleBodyError(w, err)
		return
	}
	req.ChatID = chatID

	result, err := h.exchangeService.Exchange(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// ListMessages returns a chat's messages for display
// GET /api/chats/{id}/messages
func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	chatID, ok := PathParam(w, r, "id", "Chat ID")
	if !ok {
		return
	}

	messages, err := h.chatService.ListMessages(r.Context(), chatID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, messages)
}
