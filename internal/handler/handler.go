package handler

import (
	"context"

	"github.com/TanushreeSarkar/InterVista/internal/auth"
	"github.com/TanushreeSarkar/InterVista/internal/cache"
	"github.com/TanushreeSarkar/InterVista/internal/evaluator"
	"github.com/TanushreeSarkar/InterVista/internal/repository"
	"github.com/TanushreeSarkar/InterVista/internal/storage"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Transcriber is the speech-to-text collaborator. A nil Transcriber means
// the service runs without STT and answers fall back to the placeholder
// transcript.
type Transcriber interface {
	TranscribeFile(ctx context.Context, path, model string) (string, error)
}

type Handler struct {
	Logger       *zap.Logger
	Store        repository.Store
	TokenMaker   *auth.JWTMaker
	Evaluator    *evaluator.Evaluator
	Transcriber  Transcriber
	STTModel     string
	Uploader     storage.Uploader
	SessionCache *cache.Sessions
}

// GetClaimsFromContext retrieves the verified token claims set by the auth
// middleware.
func (h *Handler) GetClaimsFromContext(c *gin.Context) *auth.UserClaims {
	contextClaims, exists := c.Get("claims")
	if !exists {
		return nil
	}

	claims, ok := contextClaims.(*auth.UserClaims)
	if !ok {
		return nil
	}

	return claims
}
