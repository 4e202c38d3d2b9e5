package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"ticketly-gateway/internal/booking"
	"ticketly-gateway/internal/utils"
)

// handlePaymentLoad serves the booking creator's pre-filled form for an
// event.
func (g *Gateway) handlePaymentLoad(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")
	creator := booking.NewCreator(g.requestClient(r), staticSession{g.requestSession(r)}, g.logger)

	draft, err := creator.Load(r.Context(), eventID)
	if err != nil {
		g.writeError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("booking form", draft))
}

// handlePaymentSubmit posts the booking and returns the confirmed ticket
// state, including when the UI should auto-navigate to the bookings list.
func (g *Gateway) handlePaymentSubmit(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")

	var form booking.Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body", err.Error()))
		return
	}

	client := g.requestClient(r)
	creator := booking.NewCreator(client, staticSession{g.requestSession(r)}, g.logger)

	draft, err := creator.Load(r.Context(), eventID)
	if err != nil {
		g.writeError(w, err)
		return
	}

	conf, err := creator.Submit(r.Context(), draft, form)
	if err != nil {
		g.writeError(w, err)
		return
	}

	view := map[string]interface{}{
		"booking":              conf.Booking,
		"event":                conf.Event,
		"ticketId":             conf.TicketID,
		"redirectTo":           "/my-bookings",
		"redirectAfterSeconds": int(conf.RedirectAfter / time.Second),
	}
	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse("booking confirmed", view))
}

func (g *Gateway) handleMyBookings(w http.ResponseWriter, r *http.Request) {
	list := booking.NewList(g.requestClient(r), staticSession{g.requestSession(r)}, g.logger)
	items, err := list.Fetch(r.Context())
	if err != nil {
		g.writeError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("bookings", items))
}

// handleTicketDownload renders the booking's ticket file. Failures leave
// no partial response body behind: the PDF is rendered fully before any
// byte is written.
func (g *Gateway) handleTicketDownload(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "bookingID")

	list := booking.NewList(g.requestClient(r), staticSession{g.requestSession(r)}, g.logger)
	items, err := list.Fetch(r.Context())
	if err != nil {
		g.writeError(w, err)
		return
	}

	for _, item := range items {
		if item.Booking.ID != bookingID {
			continue
		}
		data, err := g.renderer.Render(item.Payload(time.Now()))
		if err != nil {
			g.writeError(w, err)
			return
		}
		g.logger.LogTicket("DOWNLOAD", item.TicketID, fmt.Sprintf("booking %s, %d bytes", bookingID, len(data)))
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", item.TicketID))
		w.Write(data)
		return
	}

	utils.WriteJSON(w, http.StatusNotFound, utils.ErrorResponse("booking not found", bookingID))
}
