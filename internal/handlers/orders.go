package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ticketbooth/internal/middleware"
	"ticketbooth/internal/models"
	"ticketbooth/internal/services"
)

// OrderHandler handles order history requests
type OrderHandler struct {
	orderService *services.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// List handles GET /orders, returning the logged-in user's orders
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	orders, err := h.orderService.GetUserOrders(user.ID)
	if err != nil {
		log.Printf("failed to list orders for user %d: %v", user.ID, err)
		respondError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

// Get handles GET /orders/{reference}
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	reference := chi.URLParam(r, "reference")

	if !models.ValidOrderReference(reference) {
		respondError(w, http.StatusBadRequest, "invalid order reference")
		return
	}

	order, err := h.orderService.GetOrderByReference(reference, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrOrderNotFound):
			respondError(w, http.StatusNotFound, "order not found")
		case errors.Is(err, models.ErrUnauthorized):
			// Do not reveal that the reference exists.
			respondError(w, http.StatusNotFound, "order not found")
		default:
			log.Printf("failed to get order %s: %v", reference, err)
			respondError(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	respondJSON(w, http.StatusOK, order)
}
