package gateway

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"ticketly-gateway/internal/dashboard"
	"ticketly-gateway/internal/utils"
)

func (g *Gateway) handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	board := dashboard.NewAdmin(g.requestClient(r), g.logger)
	results := board.Fetch(r.Context())

	view := make([]map[string]interface{}, 0, len(results))
	for _, result := range results {
		tile := map[string]interface{}{
			"name":   result.Name,
			"value":  result.Value,
			"source": result.Source,
		}
		if result.Err != nil {
			tile["error"] = result.Err.Error()
		}
		view = append(view, tile)
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("dashboard", view))
}

func (g *Gateway) handleAdminUsers(w http.ResponseWriter, r *http.Request) {
	users, err := g.requestClient(r).ListUsers(r.Context())
	if err != nil {
		g.writeError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("users", users))
}

func (g *Gateway) handleAdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := g.requestClient(r).DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		g.writeError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("user deleted", nil))
}

func (g *Gateway) handleAdminEvents(w http.ResponseWriter, r *http.Request) {
	events, err := g.requestClient(r).ListAdminEvents(r.Context())
	if err != nil {
		g.writeError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("events", events))
}

func (g *Gateway) handleAdminDeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := g.requestClient(r).DeleteAdminEvent(r.Context(), chi.URLParam(r, "id")); err != nil {
		g.writeError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("event deleted", nil))
}

func (g *Gateway) handleAdminOrganizers(w http.ResponseWriter, r *http.Request) {
	organizers, err := g.requestClient(r).ListOrganizers(r.Context())
	if err != nil {
		g.writeError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("organizers", organizers))
}

func (g *Gateway) handleAdminDeleteOrganizer(w http.ResponseWriter, r *http.Request) {
	if err := g.requestClient(r).DeleteOrganizer(r.Context(), chi.URLParam(r, "id")); err != nil {
		g.writeError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("organizer deleted", nil))
}

// handleTicketsSold aggregates per-event sales for the admin report.
func (g *Gateway) handleTicketsSold(w http.ResponseWriter, r *http.Request) {
	events, err := g.requestClient(r).ListAdminEvents(r.Context())
	if err != nil {
		g.writeError(w, err)
		return
	}

	rows := make([]map[string]interface{}, 0, len(events))
	totalSold := 0
	for _, event := range events {
		rows = append(rows, map[string]interface{}{
			"event":       event.Title,
			"sold":        event.TicketsSold,
			"capacity":    event.Capacity(),
			"sellThrough": event.SellThrough(),
		})
		totalSold += event.TicketsSold
	}

	view := map[string]interface{}{
		"rows":      rows,
		"totalSold": totalSold,
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("tickets sold", view))
}
