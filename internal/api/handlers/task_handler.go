package handlers

import (
	"net/http"

	"github.com/isdelr/todo-sync-be/internal/models"
	"github.com/isdelr/todo-sync-be/internal/services"
)

// TaskHandler handles task synchronization requests.
type TaskHandler struct {
	service services.TaskServiceProvider
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(service services.TaskServiceProvider) *TaskHandler {
	return &TaskHandler{service: service}
}

// SyncPayload is the body of sync.
type SyncPayload struct {
	Username string        `json:"username"`
	Tasks    []models.Task `json:"tasks"`
}

// Sync replaces the caller's task set with the submitted one.
func (h *TaskHandler) Sync(w http.ResponseWriter, r *http.Request) {
	var payload SyncPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, r, err)
		return
	}
	if err := checkOwner(r, payload.Username); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.service.SyncTasks(r.Context(), payload.Username, payload.Tasks); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, map[string]interface{}{"msg": services.MsgSynced})
}

// GetAll returns every task of the user named in the query string.
func (h *TaskHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if err := checkOwner(r, username); err != nil {
		writeError(w, r, err)
		return
	}

	tasks, err := h.service.GetTasks(r.Context(), username)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, map[string]interface{}{"tasks": tasks})
}
