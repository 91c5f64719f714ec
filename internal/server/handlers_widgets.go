package server

import (
	"encoding/json"
	"net/http"

	stderrors "loandesk/internal/common/errors"
	"loandesk/internal/widgets"
)

// Widget reads always succeed: corrupt or missing payloads degrade to empty
// lists inside the store. Writes are best-effort and acknowledged anyway.

func (h *Handlers) GetTodos(w http.ResponseWriter, r *http.Request) {
	sid := r.PathValue("sid")
	writeJSON(w, http.StatusOK, map[string]interface{}{"todos": h.widgets.Todos(r.Context(), sid)})
}

func (h *Handlers) PutTodos(w http.ResponseWriter, r *http.Request) {
	sid := r.PathValue("sid")

	var body struct {
		Todos []widgets.TodoItem `json:"todos"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, stderrors.NewValidationFailedError("invalid request body"))
		return
	}

	h.widgets.SaveTodos(r.Context(), sid, body.Todos)
	writeJSON(w, http.StatusOK, map[string]interface{}{"todos": body.Todos})
}

func (h *Handlers) GetSchedules(w http.ResponseWriter, r *http.Request) {
	sid := r.PathValue("sid")
	writeJSON(w, http.StatusOK, map[string]interface{}{"schedules": h.widgets.Schedules(r.Context(), sid)})
}

func (h *Handlers) PutSchedules(w http.ResponseWriter, r *http.Request) {
	sid := r.PathValue("sid")

	var body struct {
		Schedules []widgets.ScheduleItem `json:"schedules"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, stderrors.NewValidationFailedError("invalid request body"))
		return
	}

	h.widgets.SaveSchedules(r.Context(), sid, body.Schedules)
	writeJSON(w, http.StatusOK, map[string]interface{}{"schedules": body.Schedules})
}

func (h *Handlers) GetNews(w http.ResponseWriter, r *http.Request) {
	sid := r.PathValue("sid")
	writeJSON(w, http.StatusOK, map[string]interface{}{"news": h.widgets.News(r.Context(), sid)})
}

func (h *Handlers) PutNews(w http.ResponseWriter, r *http.Request) {
	sid := r.PathValue("sid")

	var body struct {
		News []widgets.NewsItem `json:"news"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, stderrors.NewValidationFailedError("invalid request body"))
		return
	}

	h.widgets.SaveNews(r.Context(), sid, body.News)
	writeJSON(w, http.StatusOK, map[string]interface{}{"news": body.News})
}
