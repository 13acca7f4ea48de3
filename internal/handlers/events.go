package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ticketbooth/internal/middleware"
	"ticketbooth/internal/models"
	"ticketbooth/internal/services"
)

// EventHandler handles event browsing, lifecycle and comment requests
type EventHandler struct {
	eventService *services.EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// List handles GET /events with optional category and q filters
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	query := r.URL.Query().Get("q")

	events, err := h.eventService.BrowseEvents(category, query)
	if err != nil {
		log.Printf("failed to list events: %v", err)
		respondError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	respondJSON(w, http.StatusOK, events)
}

// Get handles GET /events/{id}
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	eventID, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	event, err := h.eventService.GetEvent(eventID)
	if err != nil {
		if errors.Is(err, models.ErrEventNotFound) {
			respondError(w, http.StatusNotFound, "event not found")
			return
		}
		log.Printf("failed to get event %d: %v", eventID, err)
		respondError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	respondJSON(w, http.StatusOK, event)
}

// Create handles POST /events
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req models.EventCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.OwnerID = user.ID

	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	event, err := h.eventService.CreateEvent(&req)
	if err != nil {
		log.Printf("failed to create event: %v", err)
		respondError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	respondJSON(w, http.StatusCreated, event)
}

// Cancel handles POST /events/{id}/cancel
func (h *EventHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	eventID, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	if err := h.eventService.CancelEvent(eventID, user.ID); err != nil {
		switch {
		case errors.Is(err, models.ErrEventNotFound):
			respondError(w, http.StatusNotFound, "event not found")
		case errors.Is(err, models.ErrUnauthorized):
			respondError(w, http.StatusForbidden, "only the event owner can cancel it")
		default:
			log.Printf("failed to cancel event %d: %v", eventID, err)
			respondError(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// Delete handles DELETE /events/{id}
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	eventID, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	if err := h.eventService.DeleteEvent(eventID, user.ID); err != nil {
		switch {
		case errors.Is(err, models.ErrEventNotFound):
			respondError(w, http.StatusNotFound, "event not found")
		case errors.Is(err, models.ErrUnauthorized):
			respondError(w, http.StatusForbidden, "only the event owner can delete it")
		default:
			log.Printf("failed to delete event %d: %v", eventID, err)
			respondError(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// Categories handles GET /events/categories
func (h *EventHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.eventService.Categories()
	if err != nil {
		log.Printf("failed to list categories: %v", err)
		respondError(w, http.StatusInternalServerError, "something went wrong")
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

// ListComments handles GET /events/{id}/comments
func (h *EventHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	eventID, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	comments, err := h.eventService.GetComments(eventID)
	if err != nil {
		if errors.Is(err, models.ErrEventNotFound) {
			respondError(w, http.StatusNotFound, "event not found")
			return
		}
		log.Printf("failed to list comments for event %d: %v", eventID, err)
		respondError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	respondJSON(w, http.StatusOK, comments)
}

// CreateComment handles POST /events/{id}/comments
func (h *EventHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	eventID, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	var req models.CommentCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.UserID = user.ID
	req.EventID = eventID

	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	comment, err := h.eventService.AddComment(&req)
	if err != nil {
		if errors.Is(err, models.ErrEventNotFound) {
			respondError(w, http.StatusNotFound, "event not found")
			return
		}
		log.Printf("failed to add comment to event %d: %v", eventID, err)
		respondError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	respondJSON(w, http.StatusCreated, comment)
}

func parseIDParam(r *http.Request, name string) (int, error) {
	return strconv.Atoi(chi.URLParam(r, name))
}
