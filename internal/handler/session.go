package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/TanushreeSarkar/InterVista/internal/repository"
	"github.com/TanushreeSarkar/InterVista/internal/templates"
	"github.com/TanushreeSarkar/InterVista/pkg/model"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateSession starts an interview for a role/level and batch-creates its
// question set from the role template.
func (h *Handler) CreateSession(c *gin.Context) {
	var req model.CreateSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role and level are required"})
		return
	}

	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ctx := c.Request.Context()
	now := time.Now().UTC()
	session := &model.InterviewSession{
		ID:        uuid.NewString(),
		UserID:    claims.UserID,
		Role:      req.Role,
		Level:     req.Level,
		Status:    model.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	prompts := templates.QuestionsForRole(req.Role)
	questions := make([]model.Question, len(prompts))
	for i, text := range prompts {
		questions[i] = model.Question{
			ID:        uuid.NewString(),
			SessionID: session.ID,
			Text:      text,
			Order:     i + 1,
			CreatedAt: now,
		}
	}

	if err := h.Store.CreateSession(ctx, session); err != nil {
		h.Logger.Error("create_session: failed to create",
			zap.String("user_id", claims.UserID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	if err := h.Store.CreateQuestions(ctx, questions); err != nil {
		h.Logger.Error("create_session: failed to create questions",
			zap.String("session_id", session.ID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	h.SessionCache.Set(ctx, session)

	h.Logger.Info("create_session: session created",
		zap.String("session_id", session.ID),
		zap.String("role", req.Role),
		zap.String("level", req.Level),
	)

	c.JSON(http.StatusCreated, session)
}

// GetSession returns one session by id
func (h *Handler) GetSession(c *gin.Context) {
	sessionID := c.Param("id")
	ctx := c.Request.Context()

	if cached, ok := h.SessionCache.Get(ctx, sessionID); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	session, err := h.Store.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		h.Logger.Error("get_session: failed to fetch", zap.String("session_id", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch session"})
		return
	}

	h.SessionCache.Set(ctx, session)
	c.JSON(http.StatusOK, session)
}

// ListSessions returns the caller's sessions, newest first
func (h *Handler) ListSessions(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	sessions, err := h.Store.ListSessionsByUser(c.Request.Context(), claims.UserID)
	if err != nil {
		h.Logger.Error("list_sessions: failed to fetch", zap.String("user_id", claims.UserID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch sessions"})
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// ListQuestions returns a session's questions ordered by their position
func (h *Handler) ListQuestions(c *gin.Context) {
	sessionID := c.Param("id")

	questions, err := h.Store.ListQuestionsBySession(c.Request.Context(), sessionID)
	if err != nil {
		h.Logger.Error("list_questions: failed to fetch", zap.String("session_id", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch questions"})
		return
	}

	c.JSON(http.StatusOK, questions)
}
