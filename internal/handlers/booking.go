package handlers

import (
	"errors"
	"log"
	"net/http"

	"ticketbooth/internal/middleware"
	"ticketbooth/internal/models"
	"ticketbooth/internal/services"
)

// BookingHandler handles ticket purchase requests
type BookingHandler struct {
	bookingService *services.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *services.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// Create handles POST /events/{id}/bookings
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	eventID, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.bookingService.AttemptBooking(&services.BookingRequest{
		EventID:  eventID,
		Quantity: req.Quantity,
		UserID:   user.ID,
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrEventNotFound):
			respondError(w, http.StatusNotFound, "event not found")
		case errors.Is(err, models.ErrInvalidQuantity):
			respondError(w, http.StatusBadRequest, "quantity must be at least 1")
		case errors.Is(err, models.ErrEventNotBookable):
			respondError(w, http.StatusConflict, "this event is not open for booking")
		case errors.Is(err, models.ErrInsufficientCapacity):
			respondError(w, http.StatusConflict, "not enough tickets remaining")
		default:
			log.Printf("booking failed for event %d: %v", eventID, err)
			respondError(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	respondJSON(w, http.StatusCreated, order)
}
