package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"ticketbooth/internal/models"
)

// CommentRepository handles comment data operations
type CommentRepository struct {
	db *sql.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *sql.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create posts a new comment on an event
func (r *CommentRepository) Create(req *models.CommentCreateRequest) (*models.Comment, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO comments (user_id, event_id, body, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, event_id, body, created_at`

	comment := &models.Comment{}
	err := r.db.QueryRow(query, req.UserID, req.EventID, req.Body, time.Now()).Scan(
		&comment.ID,
		&comment.UserID,
		&comment.EventID,
		&comment.Body,
		&comment.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return comment, nil
}

// GetByEvent retrieves the comments on an event, oldest first, with the
// commenter's name joined in for display
func (r *CommentRepository) GetByEvent(eventID int) ([]*models.Comment, error) {
	query := `
		SELECT c.id, c.user_id, c.event_id, c.body, c.created_at, u.name
		FROM comments c
		JOIN users u ON c.user_id = u.id
		WHERE c.event_id = $1
		ORDER BY c.created_at ASC, c.id ASC`

	rows, err := r.db.Query(query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		comment := &models.Comment{}
		err := rows.Scan(
			&comment.ID,
			&comment.UserID,
			&comment.EventID,
			&comment.Body,
			&comment.CreatedAt,
			&comment.UserName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}

	return comments, nil
}
