package models

import (
	"errors"
	"strings"
	"time"
)

// Comment represents a user comment on an event
type Comment struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"user_id" db:"user_id"`
	EventID   int       `json:"event_id" db:"event_id"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// Related data
	UserName string `json:"user_name,omitempty" db:"user_name"`
}

// CommentCreateRequest represents the data needed to post a comment
type CommentCreateRequest struct {
	UserID  int    `json:"user_id"`
	EventID int    `json:"event_id"`
	Body    string `json:"body"`
}

// Validate validates comment creation data
func (req *CommentCreateRequest) Validate() error {
	if req.UserID <= 0 {
		return errors.New("user is required")
	}
	if req.EventID <= 0 {
		return errors.New("event is required")
	}
	if strings.TrimSpace(req.Body) == "" {
		return errors.New("comment body is required")
	}
	if len(req.Body) > 2000 {
		return errors.New("comment body must be less than 2000 characters")
	}
	return nil
}
