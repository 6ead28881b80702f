package domain

import (
	"errors"
	"time"
)

var (
	ErrEntityNotFound   = errors.New("entity not found")
	ErrDuplicateEntity  = errors.New("entity already exists")
	ErrInvalidEntity    = errors.New("invalid entity data")
	ErrCategoryNotFound = errors.New("category not found")
)

// Category groups entities by topic.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Slug        string    `json:"slug"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Entity is a person or organization that can be asked questions.
type Entity struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Slug        string    `json:"slug"`
	Bio         string    `json:"bio,omitempty"`
	Categories  []string  `json:"categories,omitempty"` // category slugs
	IsVerified  bool      `json:"is_verified"`
	IsAvailable bool      `json:"is_available"`
	// QuestionCount is maintained by the question pipeline and drives the
	// top-entities ranking.
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
