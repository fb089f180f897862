package repository

import (
	"context"
	"errors"

	"github.com/TanushreeSarkar/InterVista/pkg/model"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// Store is the narrow document-store surface the handlers depend on.
// It is implemented by Mongo (primary), Memory (best-effort standby and
// test double) and Failover (primary with degraded-mode standby).
type Store interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)

	CreateSession(ctx context.Context, session *model.InterviewSession) error
	GetSession(ctx context.Context, id string) (*model.InterviewSession, error)
	ListSessionsByUser(ctx context.Context, userID string) ([]model.InterviewSession, error)
	UpdateSession(ctx context.Context, id string, updates map[string]interface{}) error

	CreateQuestions(ctx context.Context, questions []model.Question) error
	GetQuestion(ctx context.Context, id string) (*model.Question, error)
	ListQuestionsBySession(ctx context.Context, sessionID string) ([]model.Question, error)

	CreateAnswer(ctx context.Context, answer *model.Answer) error
	CreateEvaluation(ctx context.Context, evaluation *model.Evaluation) error
	ListEvaluationsBySession(ctx context.Context, sessionID string) ([]model.Evaluation, error)
}
