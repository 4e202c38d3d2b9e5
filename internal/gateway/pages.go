package gateway

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"ticketly-gateway/internal/browser"
	"ticketly-gateway/internal/models"
	"ticketly-gateway/internal/utils"
)

// handleHome serves the landing view: upcoming published events plus the
// filter vocabularies for the browser.
func (g *Gateway) handleHome(w http.ResponseWriter, r *http.Request) {
	events, err := g.client.ListEvents(r.Context())
	if err != nil {
		g.writeError(w, err)
		return
	}

	var featured []models.Event
	categories := map[string]bool{}
	locations := map[string]bool{}
	for _, event := range events {
		if event.Status == "" || event.Status == models.EventPublished {
			if len(featured) < 6 {
				featured = append(featured, event)
			}
		}
		if event.Category != "" {
			categories[event.Category] = true
		}
		if event.Location != "" {
			locations[event.Location] = true
		}
	}

	view := map[string]interface{}{
		"featured":   featured,
		"categories": keys(categories),
		"locations":  keys(locations),
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("home", view))
}

func keys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}

// handleEvents serves the event browser with the filter conjunction
// applied server-side from query parameters.
func (g *Gateway) handleEvents(w http.ResponseWriter, r *http.Request) {
	events, err := g.client.ListEvents(r.Context())
	if err != nil {
		g.writeError(w, err)
		return
	}

	filter := browser.Filter{
		Category: r.URL.Query().Get("category"),
		Location: r.URL.Query().Get("location"),
		Search:   r.URL.Query().Get("search"),
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("events", browser.Apply(events, filter)))
}

func (g *Gateway) handleEventDetail(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")
	event, err := g.client.GetEvent(r.Context(), eventID)
	if err != nil {
		g.writeError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("event", event))
}

func (g *Gateway) handleContact(w http.ResponseWriter, r *http.Request) {
	var req models.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body", err.Error()))
		return
	}

	var missing []string
	for field, value := range map[string]string{
		"firstName": req.FirstName,
		"email":     req.Email,
		"message":   req.Message,
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		resp := utils.ErrorResponse("validation failed", "missing required fields")
		resp.Data = map[string]interface{}{"missing": missing}
		utils.WriteJSON(w, http.StatusBadRequest, resp)
		return
	}

	if err := g.requestClient(r).CreateContact(r.Context(), req); err != nil {
		g.writeError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse("message sent", nil))
}
