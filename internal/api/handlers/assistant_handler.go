package handlers

import (
	"net/http"

	"github.com/isdelr/todo-sync-be/internal/models"
	"github.com/isdelr/todo-sync-be/internal/services"
)

// AssistantHandler serves the conversational smart-parse endpoint.
type AssistantHandler struct {
	service services.AssistantServiceProvider
}

// NewAssistantHandler creates a new AssistantHandler.
func NewAssistantHandler(service services.AssistantServiceProvider) *AssistantHandler {
	return &AssistantHandler{service: service}
}

// SmartParsePayload is the body of smart_parse.
type SmartParsePayload struct {
	Text    string               `json:"text"`
	History []models.ChatMessage `json:"history"`
	Tasks   []models.Task        `json:"tasks"`
}

// SmartParse relays the conversation to the text generator.
func (h *AssistantHandler) SmartParse(w http.ResponseWriter, r *http.Request) {
	var payload SmartParsePayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	reply, err := h.service.SmartParse(r.Context(), payload.Text, payload.History, payload.Tasks)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, map[string]interface{}{"reply": reply})
}
