package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/TanushreeSarkar/InterVista/pkg/model"
)

// Memory implements Store with in-process maps. It backs the degraded mode
// behind Failover and serves as the store double in handler tests. Contents
// are lost on restart and invisible to other processes.
type Memory struct {
	mu          sync.RWMutex
	users       map[string]model.User
	sessions    map[string]model.InterviewSession
	questions   map[string]model.Question
	answers     map[string]model.Answer
	evaluations map[string]model.Evaluation
}

func NewMemory() *Memory {
	return &Memory{
		users:       make(map[string]model.User),
		sessions:    make(map[string]model.InterviewSession),
		questions:   make(map[string]model.Question),
		answers:     make(map[string]model.Answer),
		evaluations: make(map[string]model.Evaluation),
	}
}

func (s *Memory) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	s.users[user.ID] = *user
	return nil
}

func (s *Memory) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Memory) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := u
	return &out, nil
}

func (s *Memory) CreateSession(ctx context.Context, session *model.InterviewSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = *session
	return nil
}

func (s *Memory) GetSession(ctx context.Context, id string) (*model.InterviewSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := sess
	return &out, nil
}

func (s *Memory) ListSessionsByUser(ctx context.Context, userID string) ([]model.InterviewSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.InterviewSession{}
	for _, sess := range s.sessions {
		if sess.UserID == userID {
			out = append(out, sess)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Memory) UpdateSession(ctx context.Context, id string, updates map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return ErrNotFound
	}
	for col, val := range updates {
		switch col {
		case "status":
			if st, ok := val.(model.SessionStatus); ok {
				sess.Status = st
			}
		case "score":
			if n, ok := val.(int); ok {
				sess.Score = &n
			}
		case "completed_at":
			if t, ok := val.(time.Time); ok {
				sess.CompletedAt = &t
			}
		case "updated_at":
			if t, ok := val.(time.Time); ok {
				sess.UpdatedAt = t
			}
		}
	}
	s.sessions[id] = sess
	return nil
}

func (s *Memory) CreateQuestions(ctx context.Context, questions []model.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range questions {
		s.questions[q.ID] = q
	}
	return nil
}

func (s *Memory) GetQuestion(ctx context.Context, id string) (*model.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.questions[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := q
	return &out, nil
}

func (s *Memory) ListQuestionsBySession(ctx context.Context, sessionID string) ([]model.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.Question{}
	for _, q := range s.questions {
		if q.SessionID == sessionID {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (s *Memory) CreateAnswer(ctx context.Context, answer *model.Answer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers[answer.ID] = *answer
	return nil
}

func (s *Memory) CreateEvaluation(ctx context.Context, evaluation *model.Evaluation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evaluations[evaluation.ID] = *evaluation
	return nil
}

func (s *Memory) ListEvaluationsBySession(ctx context.Context, sessionID string) ([]model.Evaluation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.Evaluation{}
	for _, e := range s.evaluations {
		if e.SessionID == sessionID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
