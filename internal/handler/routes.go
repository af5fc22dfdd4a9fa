package handler

import "net/http"

// RegisterRoutes mounts every endpoint on mux (Go 1.22+ patterns)
func RegisterRoutes(mux *http.ServeMux, chats *ChatHandler, health *HealthHandler) {
	mux.HandleFunc("GET /health", health.Health)
	mux.HandleFunc("GET /api/{$}", health.Root)

	mux.HandleFunc("POST /api/chats", chats.CreateChat)
	mux.HandleFunc("GET /api/chats", chats.ListChats)
	mux.HandleFunc("GET /api/chats/{id}", chats.GetChat)
	mux.HandleFunc("PUT /api/chats/{id}", chats.UpdateChat)
	mux.HandleFunc("DELETE /api/chats/{id}", chats.DeleteChat)
	mux.HandleFunc("POST /api/chats/{id}/messages", chats.SendMessage)
	mux.HandleFunc("GET /api/chats/{id}/messages", chats.ListMessages)
}
