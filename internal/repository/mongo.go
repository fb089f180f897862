package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/TanushreeSarkar/InterVista/pkg/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collUsers       = "users"
	collSessions    = "sessions"
	collQuestions   = "questions"
	collAnswers     = "answers"
	collEvaluations = "evaluations"
)

// Mongo is the primary Store implementation over a MongoDB database.
type Mongo struct {
	db *mongo.Database
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{db: db}
}

// EnsureIndexes creates the unique email index. Call once at startup.
func (r *Mongo) EnsureIndexes(ctx context.Context) error {
	_, err := r.db.Collection(collUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

func (r *Mongo) CreateUser(ctx context.Context, user *model.User) error {
	_, err := r.db.Collection(collUsers).InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *Mongo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.db.Collection(collUsers).FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &u, nil
}

func (r *Mongo) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := r.db.Collection(collUsers).FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &u, nil
}

func (r *Mongo) CreateSession(ctx context.Context, session *model.InterviewSession) error {
	if _, err := r.db.Collection(collSessions).InsertOne(ctx, session); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *Mongo) GetSession(ctx context.Context, id string) (*model.InterviewSession, error) {
	var s model.InterviewSession
	err := r.db.Collection(collSessions).FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	return &s, nil
}

func (r *Mongo) ListSessionsByUser(ctx context.Context, userID string) ([]model.InterviewSession, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.db.Collection(collSessions).Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer cur.Close(ctx)

	out := []model.InterviewSession{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode sessions: %w", err)
	}
	return out, nil
}

var validSessionCols = map[string]bool{
	"status": true, "score": true, "completed_at": true, "updated_at": true,
}

func (r *Mongo) UpdateSession(ctx context.Context, id string, updates map[string]interface{}) error {
	set := bson.M{}
	for col, val := range updates {
		if !validSessionCols[col] {
			continue
		}
		set[col] = val
	}
	if len(set) == 0 {
		return nil
	}

	res, err := r.db.Collection(collSessions).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateQuestions inserts a session's question set as one batch write.
func (r *Mongo) CreateQuestions(ctx context.Context, questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}

	docs := make([]interface{}, len(questions))
	for i := range questions {
		docs[i] = questions[i]
	}
	if _, err := r.db.Collection(collQuestions).InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("batch insert questions: %w", err)
	}
	return nil
}

func (r *Mongo) GetQuestion(ctx context.Context, id string) (*model.Question, error) {
	var q model.Question
	err := r.db.Collection(collQuestions).FindOne(ctx, bson.M{"_id": id}).Decode(&q)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find question: %w", err)
	}
	return &q, nil
}

func (r *Mongo) ListQuestionsBySession(ctx context.Context, sessionID string) ([]model.Question, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cur, err := r.db.Collection(collQuestions).Find(ctx, bson.M{"session_id": sessionID}, opts)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer cur.Close(ctx)

	out := []model.Question{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	return out, nil
}

func (r *Mongo) CreateAnswer(ctx context.Context, answer *model.Answer) error {
	if _, err := r.db.Collection(collAnswers).InsertOne(ctx, answer); err != nil {
		return fmt.Errorf("insert answer: %w", err)
	}
	return nil
}

func (r *Mongo) CreateEvaluation(ctx context.Context, evaluation *model.Evaluation) error {
	if _, err := r.db.Collection(collEvaluations).InsertOne(ctx, evaluation); err != nil {
		return fmt.Errorf("insert evaluation: %w", err)
	}
	return nil
}

func (r *Mongo) ListEvaluationsBySession(ctx context.Context, sessionID string) ([]model.Evaluation, error) {
	cur, err := r.db.Collection(collEvaluations).Find(ctx, bson.M{"session_id": sessionID})
	if err != nil {
		return nil, fmt.Errorf("query evaluations: %w", err)
	}
	defer cur.Close(ctx)

	out := []model.Evaluation{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode evaluations: %w", err)
	}
	return out, nil
}
