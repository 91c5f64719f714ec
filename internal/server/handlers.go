// Package server exposes the dashboard operations over HTTP.
package server

import (
	"encoding/json"
	"net/http"

	"loandesk/internal/ai"
	"loandesk/internal/auth"
	"loandesk/internal/catalog"
	stderrors "loandesk/internal/common/errors"
	"loandesk/internal/common/logger"
	"loandesk/internal/loan"
	"loandesk/internal/search"
	"loandesk/internal/widgets"
)

// Handlers carries the wired components behind the HTTP surface.
type Handlers struct {
	sessions *loan.Sessions
	widgets  *widgets.Store
	ai       *ai.Client
	admin    *auth.Admin
	archive  *search.Archive
	log      logger.Logger
}

func NewHandlers(sessions *loan.Sessions, widgetStore *widgets.Store, aiClient *ai.Client, admin *auth.Admin, archive *search.Archive, log logger.Logger) *Handlers {
	return &Handlers{
		sessions: sessions,
		widgets:  widgetStore,
		ai:       aiClient,
		admin:    admin,
		archive:  archive,
		log:      log,
	}
}

// --- Catalog ---

func (h *Handlers) ListCities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"cities": catalog.Cities()})
}

func (h *Handlers) ListDistricts(w http.ResponseWriter, r *http.Request) {
	city := r.PathValue("city")
	writeJSON(w, http.StatusOK, map[string]interface{}{"districts": catalog.DistrictsOf(city)})
}

func (h *Handlers) ListNeighborhoods(w http.ResponseWriter, r *http.Request) {
	city := r.PathValue("city")
	district := r.PathValue("district")
	writeJSON(w, http.StatusOK, map[string]interface{}{"neighborhoods": catalog.NeighborhoodsOf(city, district)})
}

func (h *Handlers) ListVillages(w http.ResponseWriter, r *http.Request) {
	neighborhood := r.PathValue("neighborhood")
	writeJSON(w, http.StatusOK, map[string]interface{}{"villages": catalog.VillagesOf(neighborhood)})
}

func (h *Handlers) ListMajorCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"majorCategories": catalog.MajorCategories()})
}

func (h *Handlers) ListMinorCategories(w http.ResponseWriter, r *http.Request) {
	major := r.PathValue("major")
	writeJSON(w, http.StatusOK, map[string]interface{}{"minorCategories": catalog.MinorCategoriesOf(major)})
}

// --- Session / loan state ---

func (h *Handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	sid := r.PathValue("sid")
	writeJSON(w, http.StatusOK, h.sessions.Snapshot(r.Context(), sid))
}

func (h *Handlers) SetLocation(w http.ResponseWriter, r *http.Request) {
	sid := r.PathValue("sid")

	var body struct {
		Field string `json:"field"`
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, stderrors.NewValidationFailedError("invalid request body"))
		return
	}
	if err := validateBody(body, locationEditSchema); err != nil {
		writeError(w, err)
		return
	}

	view, err := h.sessions.SetLocationField(r.Context(), sid, body.Field, body.Value)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handlers) AddProperty(w http.ResponseWriter, r *http.Request) {
	sid := r.PathValue("sid")

	property, view := h.sessions.AddProperty(r.Context(), sid)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"property": property,
		"state":    view,
	})
}

func (h *Handlers) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	sid := r.PathValue("sid")
	propertyID := r.PathValue("id")

	var patch map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, stderrors.NewValidationFailedError("invalid request body"))
		return
	}

	view, err := h.sessions.UpdateProperty(r.Context(), sid, propertyID, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handlers) RemoveProperty(w http.ResponseWriter, r *http.Request) {
	sid := r.PathValue("sid")
	propertyID := r.PathValue("id")

	// Destructive: the client must confirm explicitly.
	if r.URL.Query().Get("confirm") != "true" {
		writeError(w, stderrors.NewConfirmRequiredError("remove_property"))
		return
	}

	view, err := h.sessions.RemoveProperty(r.Context(), sid, propertyID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handlers) SelectProperty(w http.ResponseWriter, r *http.Request) {
	sid := r.PathValue("sid")

	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, stderrors.NewValidationFailedError("invalid request body"))
		return
	}

	view, err := h.sessions.Select(r.Context(), sid, body.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handlers) ClearSelection(w http.ResponseWriter, r *http.Request) {
	sid := r.PathValue("sid")
	writeJSON(w, http.StatusOK, h.sessions.ClearSelection(r.Context(), sid))
}

func (h *Handlers) SetRates(w http.ResponseWriter, r *http.Request) {
	sid := r.PathValue("sid")

	var body struct {
		InterestRate float64 `json:"interestRate"`
		AnnualIncome float64 `json:"annualIncome"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, stderrors.NewValidationFailedError("invalid request body"))
		return
	}

	writeJSON(w, http.StatusOK, h.sessions.SetRates(r.Context(), sid, body.InterestRate, body.AnnualIncome))
}

func (h *Handlers) AddRental(w http.ResponseWriter, r *http.Request) {
	sid := r.PathValue("sid")

	var unit loan.RentalUnit
	if err := json.NewDecoder(r.Body).Decode(&unit); err != nil {
		writeError(w, stderrors.NewValidationFailedError("invalid request body"))
		return
	}
	if err := validateBody(unit, rentalUnitSchema); err != nil {
		writeError(w, err)
		return
	}

	added, view := h.sessions.AddRental(r.Context(), sid, unit)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"rental": added,
		"state":  view,
	})
}

func (h *Handlers) RemoveRental(w http.ResponseWriter, r *http.Request) {
	sid := r.PathValue("sid")
	rentalID := r.PathValue("id")

	view, err := h.sessions.RemoveRental(r.Context(), sid, rentalID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
