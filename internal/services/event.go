package services

import (
	"fmt"
	"time"

	"ticketbooth/internal/models"
	"ticketbooth/internal/repositories"
)

// EventRepository interface for event data operations
type EventRepository interface {
	Create(req *models.EventCreateRequest) (*models.Event, error)
	GetByID(id int) (*models.Event, error)
	Search(filters repositories.EventSearchFilters) ([]*models.Event, error)
	Categories() ([]string, error)
	SetCancelled(id int) error
	Delete(id int) error
}

// CommentRepository interface for comment data operations
type CommentRepository interface {
	Create(req *models.CommentCreateRequest) (*models.Comment, error)
	GetByEvent(eventID int) ([]*models.Comment, error)
}

// EventWithStatus pairs an event with its derived status for display
type EventWithStatus struct {
	*models.Event
	Status models.EventStatus `json:"status"`
}

// EventService handles event browsing and lifecycle operations
type EventService struct {
	eventRepo   EventRepository
	commentRepo CommentRepository
	now         func() time.Time
}

// NewEventService creates a new event service
func NewEventService(eventRepo EventRepository, commentRepo CommentRepository) *EventService {
	return &EventService{
		eventRepo:   eventRepo,
		commentRepo: commentRepo,
		now:         time.Now,
	}
}

// CreateEvent creates a new event owned by the given user
func (s *EventService) CreateEvent(req *models.EventCreateRequest) (*models.Event, error) {
	event, err := s.eventRepo.Create(req)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

// GetEvent retrieves an event with its derived status
func (s *EventService) GetEvent(id int) (*EventWithStatus, error) {
	event, err := s.eventRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return &EventWithStatus{Event: event, Status: event.StatusOn(s.now())}, nil
}

// BrowseEvents lists events matching a category filter and/or a substring
// query, each with its derived status
func (s *EventService) BrowseEvents(category, query string) ([]*EventWithStatus, error) {
	events, err := s.eventRepo.Search(repositories.EventSearchFilters{
		Category: category,
		Query:    query,
	})
	if err != nil {
		return nil, err
	}

	today := s.now()
	listed := make([]*EventWithStatus, 0, len(events))
	for _, event := range events {
		listed = append(listed, &EventWithStatus{Event: event, Status: event.StatusOn(today)})
	}
	return listed, nil
}

// Categories returns the distinct categories currently in use
func (s *EventService) Categories() ([]string, error) {
	return s.eventRepo.Categories()
}

// CancelEvent marks an event as cancelled. Only the owner may cancel.
func (s *EventService) CancelEvent(eventID, requestingUserID int) error {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		return err
	}
	if event.OwnerID != requestingUserID {
		return models.ErrUnauthorized
	}
	return s.eventRepo.SetCancelled(eventID)
}

// DeleteEvent removes an event and, through the repository's cascading
// delete, its orders and comments. Only the owner may delete.
func (s *EventService) DeleteEvent(eventID, requestingUserID int) error {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		return err
	}
	if event.OwnerID != requestingUserID {
		return models.ErrUnauthorized
	}
	return s.eventRepo.Delete(eventID)
}

// AddComment posts a comment on an event
func (s *EventService) AddComment(req *models.CommentCreateRequest) (*models.Comment, error) {
	// The event must exist; commenting on a cancelled or past event is
	// allowed, matching browsing behaviour.
	if _, err := s.eventRepo.GetByID(req.EventID); err != nil {
		return nil, err
	}
	return s.commentRepo.Create(req)
}

// GetComments lists an event's comments
func (s *EventService) GetComments(eventID int) ([]*models.Comment, error) {
	if _, err := s.eventRepo.GetByID(eventID); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByEvent(eventID)
}
