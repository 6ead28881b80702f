package domain

import (
	"errors"
	"time"
)

// ModerationStatus represents the review lifecycle of submitted content.
type ModerationStatus string

const (
	StatusPending  ModerationStatus = "pending"
	StatusApproved ModerationStatus = "approved"
	StatusRejected ModerationStatus = "rejected"
)

// validModerationTransitions defines the allowed review decisions.
var validModerationTransitions = map[ModerationStatus][]ModerationStatus{
	StatusPending: {StatusApproved, StatusRejected},
}

var ErrInvalidModeration = errors.New("invalid moderation transition")
var ErrInvalidQuestion = errors.New("invalid question data")
var ErrQuestionNotFound = errors.New("question not found")
var ErrAnswerNotFound = errors.New("answer not found")
var ErrForbidden = errors.New("access forbidden")

// Valid reports whether s is a known moderation status.
func (s ModerationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// CanTransitionTo reports whether a moderation decision from the current
// status to next is valid.
func (s ModerationStatus) CanTransitionTo(next ModerationStatus) bool {
	for _, allowed := range validModerationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Reputation deltas applied to content authors on votes.
const (
	ReputationUpvote   = 10
	ReputationDownvote = -2
)

// VoteDirection is either an upvote or a downvote.
type VoteDirection string

const (
	VoteUp   VoteDirection = "up"
	VoteDown VoteDirection = "down"
)

// Delta returns the reputation change the vote applies to the author.
func (v VoteDirection) Delta() int {
	if v == VoteDown {
		return ReputationDownvote
	}
	return ReputationUpvote
}

// Tag labels a question with a topic.
type Tag struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Question is a question directed at an entity.
type Question struct {
	ID         string           `json:"id"`
	Title      string           `json:"title"`
	Content    string           `json:"content"`
	EntityID   string           `json:"entity_id"`
	AskedByID  string           `json:"asked_by_id"`
	Tags       []Tag            `json:"tags,omitempty"`
	Upvotes    int              `json:"upvotes"`
	Downvotes  int              `json:"downvotes"`
	ViewCount  int              `json:"view_count"`
	Status     ModerationStatus `json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// Answer is an entity's response to a question.
type Answer struct {
	ID           string    `json:"id"`
	QuestionID   string    `json:"question_id"`
	Content      string    `json:"content"`
	AnsweredByID string    `json:"answered_by_id"`
	Upvotes      int       `json:"upvotes"`
	Downvotes    int       `json:"downvotes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
