// Package gateway mounts the marketplace's client-side routes on a chi
// router and serves each page's view-model as JSON. Callers authenticate
// with the same bearer token the backend expects; the gateway forwards
// it.
package gateway

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ticketly-gateway/internal/api"
	"ticketly-gateway/internal/auth"
	"ticketly-gateway/internal/booking"
	"ticketly-gateway/internal/collection"
	"ticketly-gateway/internal/config"
	"ticketly-gateway/internal/logger"
	"ticketly-gateway/internal/organizer"
	"ticketly-gateway/internal/ticket"
	"ticketly-gateway/internal/utils"
)

type Gateway struct {
	cfg      *config.Config
	client   *api.Client
	provider *auth.Provider
	gate     *organizer.Gate
	renderer *ticket.Renderer
	logger   *logger.Logger
}

func New(cfg *config.Config, client *api.Client, provider *auth.Provider, gate *organizer.Gate, log *logger.Logger) *Gateway {
	return &Gateway{
		cfg:      cfg,
		client:   client,
		provider: provider,
		gate:     gate,
		renderer: ticket.NewRenderer(),
		logger:   log,
	}
}

// Router wires every client-side route.
func (g *Gateway) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(g.requestLogger)

	r.Get("/", g.handleHome)
	r.Get("/events", g.handleEvents)
	r.Get("/events/{eventID}", g.handleEventDetail)
	r.Post("/contact", g.handleContact)

	r.Post("/login", g.handleLogin)
	r.Post("/register", g.handleRegister)
	r.Post("/logout", g.handleLogout)

	r.Get("/payment/{eventID}", g.handlePaymentLoad)
	r.Post("/payment/{eventID}", g.handlePaymentSubmit)

	r.Get("/my-bookings", g.handleMyBookings)
	r.Get("/my-bookings/{bookingID}/ticket", g.handleTicketDownload)

	r.Route("/admin", func(r chi.Router) {
		r.Get("/dashboard", g.handleAdminDashboard)
		r.Get("/users", g.handleAdminUsers)
		r.Delete("/users/{id}", g.handleAdminDeleteUser)
		r.Get("/events", g.handleAdminEvents)
		r.Delete("/events/{id}", g.handleAdminDeleteEvent)
		r.Get("/organizers", g.handleAdminOrganizers)
		r.Delete("/organizers/{id}", g.handleAdminDeleteOrganizer)
		r.Get("/tickets-sold", g.handleTicketsSold)
	})

	r.Route("/organizer", func(r chi.Router) {
		r.Get("/dashboard", g.handleOrganizerDashboard)
		r.Get("/my-events", g.handleMyEvents)
		r.Patch("/my-events/{id}/status", g.handleEventStatus)
		r.Delete("/my-events/{id}", g.handleOrganizerDeleteEvent)
		r.Post("/add-event", g.handleAddEvent)
		r.Get("/profile", g.handleOrganizerProfile)
		r.Post("/profile", g.handleOrganizerUpsert)
	})

	return r
}

// requestClient binds the REST client to the caller's bearer token. An
// absent header yields a client whose authenticated calls fail with
// ErrAuthRequired.
func (g *Gateway) requestClient(r *http.Request) *api.Client {
	token, err := auth.ExtractTokenFromRequest(r)
	if err != nil {
		return g.client.WithTokenSource(api.StaticToken(""))
	}
	return g.client.WithTokenSource(api.StaticToken(token))
}

// requestSession derives a session view from the caller's token, nil when
// unauthenticated.
func (g *Gateway) requestSession(r *http.Request) *auth.Session {
	token, err := auth.ExtractTokenFromRequest(r)
	if err != nil {
		return nil
	}
	session, err := auth.SessionFromIDToken(token)
	if err != nil {
		return nil
	}
	return session
}

type staticSession struct {
	session *auth.Session
}

func (s staticSession) Session() *auth.Session { return s.session }

// writeError maps the error taxonomy onto HTTP statuses with the shared
// response envelope.
func (g *Gateway) writeError(w http.ResponseWriter, err error) {
	var validationErr *booking.ValidationError
	var httpErr *api.HTTPError
	var renderErr *ticket.RenderError

	switch {
	case errors.Is(err, auth.ErrAuthRequired):
		resp := utils.ErrorResponse("login required", err.Error())
		resp.Data = map[string]string{"redirect": "/login"}
		utils.WriteJSON(w, http.StatusUnauthorized, resp)
	case errors.As(err, &validationErr):
		resp := utils.ErrorResponse("validation failed", validationErr.Error())
		resp.Data = map[string]interface{}{"missing": validationErr.Missing}
		utils.WriteJSON(w, http.StatusBadRequest, resp)
	case errors.As(err, &httpErr):
		utils.WriteJSON(w, httpErr.Status, utils.ErrorResponse("backend error", httpErr.Message))
	case errors.As(err, &renderErr):
		utils.WriteJSON(w, http.StatusInternalServerError, utils.ErrorResponse("ticket render failed", err.Error()))
	case errors.Is(err, collection.ErrRowBusy):
		utils.WriteJSON(w, http.StatusConflict, utils.ErrorResponse("row busy", err.Error()))
	default:
		utils.WriteJSON(w, http.StatusInternalServerError, utils.ErrorResponse("internal error", err.Error()))
	}
}
