package model

import "time"

type Answer struct {
	ID         string    `json:"id" bson:"_id"`
	SessionID  string    `json:"sessionId" bson:"session_id"`
	QuestionID string    `json:"questionId" bson:"question_id"`
	AudioURL   *string   `json:"audioUrl" bson:"audio_url"`
	Transcript string    `json:"transcript" bson:"transcript"`
	CreatedAt  time.Time `json:"createdAt" bson:"created_at"`
}

type Evaluation struct {
	ID           string    `json:"id" bson:"_id"`
	SessionID    string    `json:"sessionId" bson:"session_id"`
	QuestionID   string    `json:"questionId" bson:"question_id"`
	Score        int       `json:"score" bson:"score"`
	Feedback     string    `json:"feedback" bson:"feedback"`
	Strengths    []string  `json:"strengths" bson:"strengths"`
	Improvements []string  `json:"improvements" bson:"improvements"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
}

type SubmitAnswerRes struct {
	Answer     Answer     `json:"answer"`
	Evaluation Evaluation `json:"evaluation"`
}
