package handler

import (
	"math"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/TanushreeSarkar/InterVista/pkg/model"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// transcriptPlaceholder stands in when neither a transcript nor a usable
// transcription is available.
const transcriptPlaceholder = "Audio transcript not available..."

// questionPlaceholder stands in when the question lookup fails; the
// evaluation still proceeds against the transcript alone.
const questionPlaceholder = "Interview question"

// SubmitAnswer accepts an audio blob and/or a transcript for one
// (session, question) pair. Upstream failures degrade: a failed upload
// yields a null audio reference, a failed transcription yields the
// placeholder transcript, a failed evaluation yields a mock result. The
// request itself only fails on validation or persistence errors.
func (h *Handler) SubmitAnswer(c *gin.Context) {
	sessionID := c.PostForm("sessionId")
	questionID := c.PostForm("questionId")
	transcript := c.PostForm("transcript")

	audioFile, err := c.FormFile("audio")
	if err != nil {
		audioFile = nil
	}

	if sessionID == "" || questionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session ID and question ID are required"})
		return
	}
	if audioFile == nil && transcript == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "An audio file or transcript is required"})
		return
	}

	ctx := c.Request.Context()

	questionText := questionPlaceholder
	if question, err := h.Store.GetQuestion(ctx, questionID); err == nil {
		questionText = question.Text
	} else {
		h.Logger.Warn("submit_answer: question lookup failed",
			zap.String("question_id", questionID),
			zap.Error(err),
		)
	}

	var audioURL *string
	if audioFile != nil && h.Uploader != nil {
		if url, err := h.uploadAudio(c, audioFile); err != nil {
			h.Logger.Warn("submit_answer: audio upload failed",
				zap.String("session_id", sessionID),
				zap.Error(err),
			)
		} else {
			audioURL = &url
		}
	}

	resolved := transcript
	if resolved == "" && audioFile != nil {
		resolved = h.transcribe(c, audioFile)
	}
	if resolved == "" {
		resolved = transcriptPlaceholder
	}

	evaluation := h.Evaluator.Evaluate(ctx, questionText, resolved)

	now := time.Now().UTC()
	answer := &model.Answer{
		ID:         uuid.NewString(),
		SessionID:  sessionID,
		QuestionID: questionID,
		AudioURL:   audioURL,
		Transcript: resolved,
		CreatedAt:  now,
	}
	if err := h.Store.CreateAnswer(ctx, answer); err != nil {
		h.Logger.Error("submit_answer: failed to save answer", zap.String("session_id", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save answer"})
		return
	}

	eval := &model.Evaluation{
		ID:           uuid.NewString(),
		SessionID:    sessionID,
		QuestionID:   questionID,
		Score:        evaluation.Score,
		Feedback:     evaluation.Feedback,
		Strengths:    evaluation.Strengths,
		Improvements: evaluation.Improvements,
		CreatedAt:    now,
	}
	if err := h.Store.CreateEvaluation(ctx, eval); err != nil {
		h.Logger.Error("submit_answer: failed to save evaluation", zap.String("session_id", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save evaluation"})
		return
	}

	if err := h.Store.UpdateSession(ctx, sessionID, map[string]interface{}{
		"status":     model.StatusInProgress,
		"updated_at": now,
	}); err != nil {
		h.Logger.Warn("submit_answer: failed to update session status",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
	}
	h.SessionCache.Invalidate(ctx, sessionID)

	c.JSON(http.StatusCreated, model.SubmitAnswerRes{Answer: *answer, Evaluation: *eval})
}

func (h *Handler) uploadAudio(c *gin.Context, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return h.Uploader.Upload(c.Request.Context(), fh.Filename, contentType, f, fh.Size)
}

// transcribe writes the uploaded audio to a temporary file, runs the
// speech-to-text collaborator on it and removes the file in all cases.
// Any failure yields an empty transcript for the caller to substitute.
func (h *Handler) transcribe(c *gin.Context, fh *multipart.FileHeader) string {
	if h.Transcriber == nil {
		return ""
	}

	tmpPath := filepath.Join(os.TempDir(), uuid.NewString()+filepath.Ext(fh.Filename))
	if err := c.SaveUploadedFile(fh, tmpPath); err != nil {
		h.Logger.Warn("submit_answer: failed to stage audio for transcription", zap.Error(err))
		return ""
	}
	defer os.Remove(tmpPath)

	text, err := h.Transcriber.TranscribeFile(c.Request.Context(), tmpPath, h.STTModel)
	if err != nil {
		h.Logger.Warn("submit_answer: transcription failed", zap.Error(err))
		return ""
	}
	return text
}

// GetEvaluations returns a session's evaluations and, as a side effect,
// marks the session completed with the rounded mean score.
func (h *Handler) GetEvaluations(c *gin.Context) {
	sessionID := c.Param("sessionId")
	ctx := c.Request.Context()

	evaluations, err := h.Store.ListEvaluationsBySession(ctx, sessionID)
	if err != nil {
		h.Logger.Error("get_evaluations: failed to fetch", zap.String("session_id", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch evaluations"})
		return
	}

	overallScore := 0
	if len(evaluations) > 0 {
		sum := 0
		for _, e := range evaluations {
			sum += e.Score
		}
		overallScore = int(math.Round(float64(sum) / float64(len(evaluations))))
	}

	now := time.Now().UTC()
	if err := h.Store.UpdateSession(ctx, sessionID, map[string]interface{}{
		"status":       model.StatusCompleted,
		"completed_at": now,
		"score":        overallScore,
		"updated_at":   now,
	}); err != nil {
		h.Logger.Error("get_evaluations: failed to complete session",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update session"})
		return
	}
	h.SessionCache.Invalidate(ctx, sessionID)

	c.JSON(http.StatusOK, evaluations)
}
