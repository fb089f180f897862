package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/TanushreeSarkar/InterVista/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errUnreachable = errors.New("primary store unreachable")

// brokenStore simulates an unreachable primary.
type brokenStore struct{}

func (brokenStore) CreateUser(context.Context, *model.User) error { return errUnreachable }
func (brokenStore) GetUserByEmail(context.Context, string) (*model.User, error) {
	return nil, errUnreachable
}
func (brokenStore) GetUserByID(context.Context, string) (*model.User, error) {
	return nil, errUnreachable
}
func (brokenStore) CreateSession(context.Context, *model.InterviewSession) error {
	return errUnreachable
}
func (brokenStore) GetSession(context.Context, string) (*model.InterviewSession, error) {
	return nil, errUnreachable
}
func (brokenStore) ListSessionsByUser(context.Context, string) ([]model.InterviewSession, error) {
	return nil, errUnreachable
}
func (brokenStore) UpdateSession(context.Context, string, map[string]interface{}) error {
	return errUnreachable
}
func (brokenStore) CreateQuestions(context.Context, []model.Question) error { return errUnreachable }
func (brokenStore) GetQuestion(context.Context, string) (*model.Question, error) {
	return nil, errUnreachable
}
func (brokenStore) ListQuestionsBySession(context.Context, string) ([]model.Question, error) {
	return nil, errUnreachable
}
func (brokenStore) CreateAnswer(context.Context, *model.Answer) error         { return errUnreachable }
func (brokenStore) CreateEvaluation(context.Context, *model.Evaluation) error { return errUnreachable }
func (brokenStore) ListEvaluationsBySession(context.Context, string) ([]model.Evaluation, error) {
	return nil, errUnreachable
}

func TestFailover_SessionSurvivesPrimaryOutage(t *testing.T) {
	ctx := context.Background()
	f := NewFailover(brokenStore{}, zap.NewNop())

	s := newSession("u1", time.Now().UTC())
	require.NoError(t, f.CreateSession(ctx, s))

	got, err := f.GetSession(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)

	questions := []model.Question{
		{ID: "q1", SessionID: s.ID, Text: "first", Order: 1},
		{ID: "q2", SessionID: s.ID, Text: "second", Order: 2},
	}
	require.NoError(t, f.CreateQuestions(ctx, questions))

	listed, err := f.ListQuestionsBySession(ctx, s.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	sessions, err := f.ListSessionsByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, sessions, 1)

	require.NoError(t, f.UpdateSession(ctx, s.ID, map[string]interface{}{
		"status": model.StatusInProgress,
	}))
	got, err = f.GetSession(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusInProgress, got.Status)
}

func TestFailover_PrimaryPreferredWhenHealthy(t *testing.T) {
	ctx := context.Background()
	primary := NewMemory()
	f := NewFailover(primary, zap.NewNop())

	s := newSession("u1", time.Now().UTC())
	require.NoError(t, f.CreateSession(ctx, s))

	// the record must live in the primary, not the standby
	got, err := primary.GetSession(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)

	_, err = f.standby.GetSession(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFailover_UsersNeverFallBack(t *testing.T) {
	ctx := context.Background()
	f := NewFailover(brokenStore{}, zap.NewNop())

	err := f.CreateUser(ctx, newUser("a@example.com"))
	assert.ErrorIs(t, err, errUnreachable)

	_, err = f.GetUserByEmail(ctx, "a@example.com")
	assert.ErrorIs(t, err, errUnreachable)
}

func TestFailover_AnswersNeverFallBack(t *testing.T) {
	ctx := context.Background()
	f := NewFailover(brokenStore{}, zap.NewNop())

	err := f.CreateAnswer(ctx, &model.Answer{ID: "a1"})
	assert.ErrorIs(t, err, errUnreachable)

	err = f.CreateEvaluation(ctx, &model.Evaluation{ID: "e1"})
	assert.ErrorIs(t, err, errUnreachable)
}

func TestFailover_NotFoundIsNotAnOutage(t *testing.T) {
	ctx := context.Background()
	f := NewFailover(NewMemory(), zap.NewNop())

	_, err := f.GetSession(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
