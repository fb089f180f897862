package repository

import (
	"context"
	"errors"

	"github.com/TanushreeSarkar/InterVista/pkg/model"
	"go.uber.org/zap"
)

// Failover wraps the primary store with a best-effort in-memory standby for
// the session/question path. When a primary write fails, the record lands in
// the standby instead so an interview in flight can continue; reads consult
// the primary first and fall back to the standby. The standby is single
// instance and non-durable. It is a safety net, not a second store: users,
// answers and evaluations go to the primary only.
type Failover struct {
	primary Store
	standby *Memory
	logger  *zap.Logger
}

func NewFailover(primary Store, logger *zap.Logger) *Failover {
	return &Failover{
		primary: primary,
		standby: NewMemory(),
		logger:  logger,
	}
}

func (f *Failover) CreateUser(ctx context.Context, user *model.User) error {
	return f.primary.CreateUser(ctx, user)
}

func (f *Failover) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return f.primary.GetUserByEmail(ctx, email)
}

func (f *Failover) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return f.primary.GetUserByID(ctx, id)
}

func (f *Failover) CreateSession(ctx context.Context, session *model.InterviewSession) error {
	err := f.primary.CreateSession(ctx, session)
	if err == nil {
		return nil
	}
	f.logger.Warn("degraded mode: session kept in memory only",
		zap.String("session_id", session.ID),
		zap.Error(err),
	)
	return f.standby.CreateSession(ctx, session)
}

func (f *Failover) GetSession(ctx context.Context, id string) (*model.InterviewSession, error) {
	sess, err := f.primary.GetSession(ctx, id)
	if err == nil {
		return sess, nil
	}
	if errors.Is(err, ErrNotFound) {
		// the primary answered; only consult the standby for records
		// that never reached it
		if s, serr := f.standby.GetSession(ctx, id); serr == nil {
			return s, nil
		}
		return nil, ErrNotFound
	}
	f.logger.Warn("degraded mode: session read served from memory", zap.String("session_id", id), zap.Error(err))
	return f.standby.GetSession(ctx, id)
}

func (f *Failover) ListSessionsByUser(ctx context.Context, userID string) ([]model.InterviewSession, error) {
	sessions, err := f.primary.ListSessionsByUser(ctx, userID)
	if err == nil {
		return sessions, nil
	}
	f.logger.Warn("degraded mode: session list served from memory", zap.String("user_id", userID), zap.Error(err))
	return f.standby.ListSessionsByUser(ctx, userID)
}

func (f *Failover) UpdateSession(ctx context.Context, id string, updates map[string]interface{}) error {
	err := f.primary.UpdateSession(ctx, id, updates)
	if err == nil || errors.Is(err, ErrNotFound) {
		if errors.Is(err, ErrNotFound) {
			if serr := f.standby.UpdateSession(ctx, id, updates); serr == nil {
				return nil
			}
		}
		return err
	}
	f.logger.Warn("degraded mode: session update applied in memory only", zap.String("session_id", id), zap.Error(err))
	return f.standby.UpdateSession(ctx, id, updates)
}

func (f *Failover) CreateQuestions(ctx context.Context, questions []model.Question) error {
	err := f.primary.CreateQuestions(ctx, questions)
	if err == nil {
		return nil
	}
	f.logger.Warn("degraded mode: questions kept in memory only", zap.Int("count", len(questions)), zap.Error(err))
	return f.standby.CreateQuestions(ctx, questions)
}

func (f *Failover) GetQuestion(ctx context.Context, id string) (*model.Question, error) {
	q, err := f.primary.GetQuestion(ctx, id)
	if err == nil {
		return q, nil
	}
	if q, serr := f.standby.GetQuestion(ctx, id); serr == nil {
		return q, nil
	}
	return nil, err
}

func (f *Failover) ListQuestionsBySession(ctx context.Context, sessionID string) ([]model.Question, error) {
	questions, err := f.primary.ListQuestionsBySession(ctx, sessionID)
	if err == nil && len(questions) > 0 {
		return questions, nil
	}
	if standby, serr := f.standby.ListQuestionsBySession(ctx, sessionID); serr == nil && len(standby) > 0 {
		if err != nil {
			f.logger.Warn("degraded mode: question list served from memory", zap.String("session_id", sessionID), zap.Error(err))
		}
		return standby, nil
	}
	return questions, err
}

func (f *Failover) CreateAnswer(ctx context.Context, answer *model.Answer) error {
	return f.primary.CreateAnswer(ctx, answer)
}

func (f *Failover) CreateEvaluation(ctx context.Context, evaluation *model.Evaluation) error {
	return f.primary.CreateEvaluation(ctx, evaluation)
}

func (f *Failover) ListEvaluationsBySession(ctx context.Context, sessionID string) ([]model.Evaluation, error) {
	return f.primary.ListEvaluationsBySession(ctx, sessionID)
}
