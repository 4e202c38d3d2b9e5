package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ticketly-gateway/internal/auth"
	"ticketly-gateway/internal/dashboard"
	"ticketly-gateway/internal/models"
	"ticketly-gateway/internal/utils"
)

// requireOrganizer resolves the gate for the signed-in email. It writes
// the failure response itself and reports whether the handler may
// proceed.
func (g *Gateway) requireOrganizer(w http.ResponseWriter, r *http.Request) bool {
	session := g.requestSession(r)
	if session == nil {
		g.writeError(w, auth.ErrAuthRequired)
		return false
	}

	ok, err := g.gate.IsOrganizer(r.Context(), session.Email)
	if err != nil {
		g.writeError(w, err)
		return false
	}
	if !ok {
		utils.WriteJSON(w, http.StatusForbidden, utils.ErrorResponse("organizer access required", session.Email))
		return false
	}
	return true
}

func (g *Gateway) handleOrganizerDashboard(w http.ResponseWriter, r *http.Request) {
	if !g.requireOrganizer(w, r) {
		return
	}

	board := dashboard.NewOrganizer(g.requestClient(r), g.logger)
	view, err := board.Fetch(r.Context())
	if err != nil {
		g.writeError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("organizer dashboard", view))
}

func (g *Gateway) handleMyEvents(w http.ResponseWriter, r *http.Request) {
	if !g.requireOrganizer(w, r) {
		return
	}

	events, err := g.requestClient(r).MyEvents(r.Context())
	if err != nil {
		g.writeError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("my events", events))
}

// handleEventStatus patches one event's status, then refetches the full
// list so derived counts stay consistent; the refreshed list is returned.
func (g *Gateway) handleEventStatus(w http.ResponseWriter, r *http.Request) {
	if !g.requireOrganizer(w, r) {
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Status == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("status is required", ""))
		return
	}

	client := g.requestClient(r)
	id := chi.URLParam(r, "id")
	if err := client.UpdateEventStatus(r.Context(), id, body.Status); err != nil {
		g.writeError(w, err)
		return
	}

	events, err := client.MyEvents(r.Context())
	if err != nil {
		g.writeError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("status updated", events))
}

func (g *Gateway) handleOrganizerDeleteEvent(w http.ResponseWriter, r *http.Request) {
	if !g.requireOrganizer(w, r) {
		return
	}

	if err := g.requestClient(r).DeleteOrganizerEvent(r.Context(), chi.URLParam(r, "id")); err != nil {
		g.writeError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("event deleted", nil))
}

type addEventRequest struct {
	models.Event
	Promote bool `json:"promote,omitempty"`
}

func (g *Gateway) handleAddEvent(w http.ResponseWriter, r *http.Request) {
	if !g.requireOrganizer(w, r) {
		return
	}

	var req addEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body", err.Error()))
		return
	}

	client := g.requestClient(r)
	created, err := client.CreateEvent(r.Context(), req.Event)
	if err != nil {
		g.writeError(w, err)
		return
	}

	if req.Promote {
		if err := client.PromoteEvent(r.Context(), *created); err != nil {
			// Promotion is best effort; the event itself is created.
			g.logger.Warn("EVENT", "Promotion failed: "+err.Error())
		}
	}
	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse("event created", created))
}

func (g *Gateway) handleOrganizerProfile(w http.ResponseWriter, r *http.Request) {
	organizer, err := g.requestClient(r).CurrentOrganizer(r.Context())
	if err != nil {
		g.writeError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("profile", organizer))
}

func (g *Gateway) handleOrganizerUpsert(w http.ResponseWriter, r *http.Request) {
	var organizer models.Organizer
	if err := json.NewDecoder(r.Body).Decode(&organizer); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body", err.Error()))
		return
	}

	saved, err := g.requestClient(r).UpsertOrganizer(r.Context(), organizer)
	if err != nil {
		g.writeError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("profile saved", saved))
}
