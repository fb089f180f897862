package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/TanushreeSarkar/InterVista/internal/repository"
	"github.com/TanushreeSarkar/InterVista/pkg"
	"github.com/TanushreeSarkar/InterVista/pkg/model"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SignUp creates a new user and returns a token
func (h *Handler) SignUp(c *gin.Context) {
	var req model.SignUpReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Logger.Sugar().Warnw("signup bad request", "err", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email, password, and name are required"})
		return
	}

	ctx := c.Request.Context()
	pwHash, err := pkg.HashPassword(req.Password)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to hash password", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: pwHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.Store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
			return
		}
		h.Logger.Sugar().Errorw("user create failed", "email", req.Email, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user"})
		return
	}

	token, _, err := h.TokenMaker.GenerateToken(user.ID, user.Email)
	if err != nil {
		h.Logger.Sugar().Errorw("error creating token", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusCreated, model.AuthRes{
		User:  model.UserRes{ID: user.ID, Email: user.Email, Name: user.Name},
		Token: token,
	})
}

// SignIn verifies credentials and returns a token
func (h *Handler) SignIn(c *gin.Context) {
	var req model.SignInReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Logger.Sugar().Warnw("signin bad request", "err", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.Store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		h.Logger.Sugar().Warnw("signin user not found", "email", req.Email, "err", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if err := pkg.ComparePassword(user.PasswordHash, req.Password); err != nil {
		h.Logger.Sugar().Warnw("signin password mismatch", "email", req.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, _, err := h.TokenMaker.GenerateToken(user.ID, user.Email)
	if err != nil {
		h.Logger.Sugar().Errorw("error creating token", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, model.AuthRes{
		User:  model.UserRes{ID: user.ID, Email: user.Email, Name: user.Name},
		Token: token,
	})
}

// ResetPassword acknowledges a reset request. The response is the same
// whether or not the email exists.
func (h *Handler) ResetPassword(c *gin.Context) {
	var req model.ResetPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	if _, err := h.Store.GetUserByEmail(c.Request.Context(), req.Email); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			h.Logger.Sugar().Errorw("reset password lookup failed", "err", err)
		}
	}
	// TODO: send the actual reset email once the mailer service lands

	c.JSON(http.StatusOK, gin.H{"message": "If the email exists, a reset link has been sent"})
}
