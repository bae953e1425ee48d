// Package httpapi exposes the query service over HTTP: a chat
// endpoint for persona-tailored questions and a health check.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/custodia-labs/histora/internal/core/ports/driven"
	"github.com/custodia-labs/histora/internal/core/ports/driving"
	"github.com/custodia-labs/histora/internal/logger"
)

// errorAnswer is what clients see when answering fails. The endpoint
// still returns 200 so chat frontends render it as a normal message
// instead of breaking the conversation.
const errorAnswer = "I'm sorry, I encountered an unexpected error. Please try again in a moment."

// Handler serves the chat API.
type Handler struct {
	query driving.QueryService
	mux   *http.ServeMux
}

// NewHandler creates the HTTP handler.
func NewHandler(query driving.QueryService) *Handler {
	h := &Handler{query: query, mux: http.NewServeMux()}
	h.mux.HandleFunc("GET /health", h.health)
	h.mux.HandleFunc("POST /chat", h.chat)
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	h.mux.ServeHTTP(w, r)
}

type chatRequest struct {
	// Message is the current field name; Question is kept for older
	// clients. Message wins when both are set.
	Message  string `json:"message"`
	Question string `json:"question"`
	Persona  string `json:"persona"`
}

type chatResponse struct {
	// Message duplicates Answer; clients read one or the other.
	Message string            `json:"message"`
	Answer  string            `json:"answer"`
	Sources []driven.Citation `json:"sources"`
	Error   bool              `json:"error,omitempty"`
}

func (h *Handler) chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	question := req.Message
	if question == "" {
		question = req.Question
	}
	if question == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Message is required"})
		return
	}

	persona := req.Persona
	if persona == "" {
		persona = "general"
	}

	answer, err := h.query.Ask(r.Context(), question, persona)
	if err != nil {
		logger.Error("chat: %v", err)
		writeJSON(w, http.StatusOK, chatResponse{
			Message: errorAnswer,
			Answer:  errorAnswer,
			Sources: []driven.Citation{},
			Error:   true,
		})
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Message: answer.Text,
		Answer:  answer.Text,
		Sources: answer.Sources,
	})
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "histora-chat",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("write response: %v", err)
	}
}
