package ports

import (
	"context"

	"github.com/asklynk/qa-platform/internal/core/domain"
)

// AskQuestionInput carries all data needed to submit a question.
type AskQuestionInput struct {
	Title    string
	Content  string
	EntityID string
	AskedBy  string // authenticated user ID
	Tags     []string
}

// AnswerInput carries the data needed to answer a question.
type AnswerInput struct {
	QuestionID string
	Content    string
	AnsweredBy string // authenticated user ID
}

// VoteInput identifies the target of a vote and the voter.
type VoteInput struct {
	TargetID  string
	VoterID   string
	Direction domain.VoteDirection
}

// ListQuestionsResult is returned by ListQuestions.
type ListQuestionsResult struct {
	Items      []*domain.Question
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// QuestionService defines use-case operations for questions and answers.
type QuestionService interface {
	Ask(ctx context.Context, input AskQuestionInput) (*domain.Question, error)
	Get(ctx context.Context, id string) (*domain.Question, error)
	ListQuestions(ctx context.Context, filter ListQuestionsFilter) (*ListQuestionsResult, error)
	VoteQuestion(ctx context.Context, input VoteInput) error
	Answer(ctx context.Context, input AnswerInput) (*domain.Answer, error)
	ListAnswers(ctx context.Context, questionID string) ([]*domain.Answer, error)
	VoteAnswer(ctx context.Context, input VoteInput) error
}
