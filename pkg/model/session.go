package model

import "time"

type SessionStatus string

const (
	StatusPending    SessionStatus = "pending"
	StatusInProgress SessionStatus = "in_progress"
	StatusCompleted  SessionStatus = "completed"
	// StatusFailed is declared for a future failure-reporting path; no
	// exposed operation sets it today.
	StatusFailed SessionStatus = "failed"
)

type InterviewSession struct {
	ID          string        `json:"id" bson:"_id"`
	UserID      string        `json:"userId" bson:"user_id"`
	Role        string        `json:"role" bson:"role"`
	Level       string        `json:"level" bson:"level"`
	Status      SessionStatus `json:"status" bson:"status"`
	Score       *int          `json:"score,omitempty" bson:"score,omitempty"`
	CreatedAt   time.Time     `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time     `json:"updatedAt" bson:"updated_at"`
	CompletedAt *time.Time    `json:"completedAt,omitempty" bson:"completed_at,omitempty"`
}

type CreateSessionReq struct {
	Role  string `json:"role" binding:"required"`
	Level string `json:"level" binding:"required"`
}
