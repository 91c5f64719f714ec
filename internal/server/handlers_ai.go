package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"loandesk/internal/ai"
	stderrors "loandesk/internal/common/errors"
	"loandesk/internal/common/metrics"
)

// Consult runs one AI consultation. Session state is never touched. On
// failure the client receives the fixed user-facing message alongside the
// error status.
func (h *Handlers) Consult(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SessionID    string `json:"sessionId"`
		Prompt       string `json:"prompt"`
		ExtraContext string `json:"extraContext"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, stderrors.NewValidationFailedError("invalid request body"))
		return
	}
	if body.Prompt == "" {
		writeError(w, stderrors.NewValidationFailedError("prompt is required"))
		return
	}

	// Request-level context wins; otherwise fall back to the stored
	// admin-uploaded guideline context.
	extraContext := body.ExtraContext
	if extraContext == "" && h.admin != nil {
		extraContext = h.admin.Context(r.Context())
	}

	start := time.Now()
	answer, err := h.ai.Consult(r.Context(), body.Prompt, extraContext)
	metrics.ConsultDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.ConsultRequestsTotal.WithLabelValues("failed").Inc()
		h.log.WithError(err).Error("consultation failed", map[string]interface{}{
			"session_id": body.SessionID,
		})
		writeJSON(w, stderrors.HTTPStatus(err), map[string]interface{}{
			"answer": ai.ConsultFailureMessage,
		})
		return
	}

	metrics.ConsultRequestsTotal.WithLabelValues("ok").Inc()
	h.archive.IndexConsultation(r.Context(), body.SessionID, body.Prompt, answer)

	writeJSON(w, http.StatusOK, map[string]interface{}{"answer": answer})
}

// RefreshNews fetches a fresh news summary, replaces the session's news
// cache and returns the parsed items. Lenient: an upstream failure yields an
// empty list, not an error.
func (h *Handlers) RefreshNews(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, stderrors.NewValidationFailedError("invalid request body"))
		return
	}

	raw, err := h.ai.FetchLatestNews(r.Context())
	if err != nil {
		metrics.NewsRefreshTotal.WithLabelValues("failed").Inc()
		h.log.WithError(err).Warn("news fetch failed, returning empty list", nil)
		writeJSON(w, http.StatusOK, map[string]interface{}{"news": []interface{}{}})
		return
	}

	items := ai.ParseNewsItems(raw)
	metrics.NewsRefreshTotal.WithLabelValues("ok").Inc()

	if body.SessionID != "" {
		h.widgets.SaveNews(r.Context(), body.SessionID, items)
	}
	for _, item := range items {
		h.archive.IndexNews(r.Context(), item.Content)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"news": items})
}

// --- Admin ---

func (h *Handlers) AdminUnlock(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Passphrase string `json:"passphrase"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, stderrors.NewValidationFailedError("invalid request body"))
		return
	}

	token, err := h.admin.Unlock(r.Context(), body.Passphrase)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"token": token})
}

// PutAdminContext stores the uploaded guideline context. Gated by a live
// admin token.
func (h *Handlers) PutAdminContext(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.Verify(r.Context(), r.Header.Get("X-Admin-Token")); err != nil {
		writeError(w, err)
		return
	}

	var body struct {
		Context string `json:"context"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, stderrors.NewValidationFailedError("invalid request body"))
		return
	}

	if err := h.admin.SaveContext(r.Context(), body.Context); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"stored": true})
}

// --- Archive ---

func (h *Handlers) SearchArchive(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, stderrors.NewValidationFailedError("q is required"))
		return
	}

	size := 20
	if s := r.URL.Query().Get("size"); s != "" {
		if parsed, err := strconv.Atoi(s); err == nil {
			size = parsed
		}
	}

	docs, err := h.archive.Search(r.Context(), query, size)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"results": docs})
}
