package models

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// User represents a registered user
type User struct {
	ID            int       `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Email         string    `json:"email" db:"email"`
	PasswordHash  string    `json:"-" db:"password_hash"`
	Phone         string    `json:"phone" db:"phone"`
	StreetAddress string    `json:"street_address" db:"street_address"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// UserRegisterRequest represents the data needed to register a new user
type UserRegisterRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Phone         string `json:"phone"`
	StreetAddress string `json:"street_address"`
}

var userEmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Validate validates user registration data
func (req *UserRegisterRequest) Validate() error {
	if strings.TrimSpace(req.Name) == "" {
		return errors.New("name is required")
	}
	if len(req.Name) > 80 {
		return errors.New("name must be less than 80 characters")
	}
	if req.Email == "" {
		return errors.New("email is required")
	}
	if len(req.Email) > 80 || !userEmailRegex.MatchString(req.Email) {
		return errors.New("email format is invalid")
	}
	if len(req.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}
