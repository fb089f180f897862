package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/TanushreeSarkar/InterVista/internal/auth"
	"github.com/TanushreeSarkar/InterVista/internal/evaluator"
	"github.com/TanushreeSarkar/InterVista/internal/openai"
	"github.com/TanushreeSarkar/InterVista/internal/repository"
	"github.com/TanushreeSarkar/InterVista/pkg/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type testApp struct {
	router *gin.Engine
	store  *repository.Memory
	maker  *auth.JWTMaker
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemory()
	maker := auth.NewJWTMaker(testSecret, time.Hour)

	h := &Handler{
		Logger:     zap.NewNop(),
		Store:      store,
		TokenMaker: maker,
		Evaluator:  evaluator.New(openai.NewClient("", time.Second), "gpt-4o-mini", zap.NewNop()),
		STTModel:   "whisper-1",
	}

	authRequired := func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}
		var token string
		if _, err := fmt.Sscanf(header, "Bearer %s", &token); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}
		claims, err := maker.VerifyToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set("claims", claims)
		c.Next()
	}

	r := gin.New()
	r.POST("/api/auth/signup", h.SignUp)
	r.POST("/api/auth/signin", h.SignIn)
	r.POST("/api/auth/reset-password", h.ResetPassword)

	sessions := r.Group("/api/sessions", authRequired)
	sessions.POST("", h.CreateSession)
	sessions.GET("", h.ListSessions)
	sessions.GET("/:id", h.GetSession)
	sessions.GET("/:id/questions", h.ListQuestions)

	answers := r.Group("/api/answers", authRequired)
	answers.POST("", h.SubmitAnswer)
	answers.GET("/evaluation/:sessionId", h.GetEvaluations)

	return &testApp{router: r, store: store, maker: maker}
}

func (app *testApp) doJSON(t *testing.T, method, url string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	return w
}

func (app *testApp) doMultipart(t *testing.T, fields map[string]string, audio []byte, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if audio != nil {
		part, err := mw.CreateFormFile("audio", "answer.webm")
		require.NoError(t, err)
		_, err = part.Write(audio)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/answers", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	return w
}

func (app *testApp) signUp(t *testing.T, email string) string {
	t.Helper()
	w := app.doJSON(t, http.MethodPost, "/api/auth/signup", model.SignUpReq{
		Email:    email,
		Password: "secret123",
		Name:     "Test User",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var res model.AuthRes
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotEmpty(t, res.Token)
	return res.Token
}

func (app *testApp) createSession(t *testing.T, token, role, level string) model.InterviewSession {
	t.Helper()
	w := app.doJSON(t, http.MethodPost, "/api/sessions", model.CreateSessionReq{Role: role, Level: level}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	var s model.InterviewSession
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &s))
	return s
}

func TestSignUp(t *testing.T) {
	app := newTestApp(t)

	w := app.doJSON(t, http.MethodPost, "/api/auth/signup", model.SignUpReq{
		Email:    "jo@example.com",
		Password: "secret123",
		Name:     "Jo",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var res model.AuthRes
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "jo@example.com", res.User.Email)
	assert.Equal(t, "Jo", res.User.Name)
	assert.NotEmpty(t, res.User.ID)

	claims, err := app.maker.VerifyToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.Equal(t, "jo@example.com", claims.Email)
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	app := newTestApp(t)
	app.signUp(t, "jo@example.com")

	w := app.doJSON(t, http.MethodPost, "/api/auth/signup", model.SignUpReq{
		Email:    "jo@example.com",
		Password: "secret123",
		Name:     "Jo Again",
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSignUp_MissingFields(t *testing.T) {
	app := newTestApp(t)

	w := app.doJSON(t, http.MethodPost, "/api/auth/signup", gin.H{"email": "jo@example.com"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignIn(t *testing.T) {
	app := newTestApp(t)
	app.signUp(t, "jo@example.com")

	w := app.doJSON(t, http.MethodPost, "/api/auth/signin", model.SignInReq{
		Email:    "jo@example.com",
		Password: "secret123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var res model.AuthRes
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	claims, err := app.maker.VerifyToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "jo@example.com", claims.Email)
}

func TestSignIn_WrongPassword(t *testing.T) {
	app := newTestApp(t)
	app.signUp(t, "jo@example.com")

	w := app.doJSON(t, http.MethodPost, "/api/auth/signin", model.SignInReq{
		Email:    "jo@example.com",
		Password: "wrong-password",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSignIn_UnknownUser(t *testing.T) {
	app := newTestApp(t)

	w := app.doJSON(t, http.MethodPost, "/api/auth/signin", model.SignInReq{
		Email:    "nobody@example.com",
		Password: "secret123",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestResetPassword_NoExistenceLeak(t *testing.T) {
	app := newTestApp(t)
	app.signUp(t, "jo@example.com")

	known := app.doJSON(t, http.MethodPost, "/api/auth/reset-password", model.ResetPasswordReq{Email: "jo@example.com"}, "")
	unknown := app.doJSON(t, http.MethodPost, "/api/auth/reset-password", model.ResetPasswordReq{Email: "nobody@example.com"}, "")

	assert.Equal(t, http.StatusOK, known.Code)
	assert.Equal(t, http.StatusOK, unknown.Code)
	assert.Equal(t, known.Body.String(), unknown.Body.String())
}

func TestAuthMiddleware(t *testing.T) {
	app := newTestApp(t)

	missing := app.doJSON(t, http.MethodGet, "/api/sessions", nil, "")
	assert.Equal(t, http.StatusUnauthorized, missing.Code)

	invalid := app.doJSON(t, http.MethodGet, "/api/sessions", nil, "not-a-token")
	assert.Equal(t, http.StatusForbidden, invalid.Code)

	expired := auth.NewJWTMaker(testSecret, -time.Minute)
	tok, _, err := expired.GenerateToken("u1", "jo@example.com")
	require.NoError(t, err)
	w := app.doJSON(t, http.MethodGet, "/api/sessions", nil, tok)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateSession(t *testing.T) {
	app := newTestApp(t)
	token := app.signUp(t, "jo@example.com")

	s := app.createSession(t, token, "Software Engineer", "Senior")
	assert.Equal(t, model.StatusPending, s.Status)
	assert.Equal(t, "Software Engineer", s.Role)
	assert.Equal(t, "Senior", s.Level)
	assert.Nil(t, s.Score)

	w := app.doJSON(t, http.MethodGet, "/api/sessions/"+s.ID+"/questions", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var questions []model.Question
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &questions))
	require.Len(t, questions, 5)
	for i, q := range questions {
		assert.Equal(t, i+1, q.Order)
		assert.Equal(t, s.ID, q.SessionID)
		assert.NotEmpty(t, q.Text)
	}
	assert.Equal(t, "Tell me about yourself and your background in software development.", questions[0].Text)
}

func TestCreateSession_UnknownRoleUsesDefaultTemplate(t *testing.T) {
	app := newTestApp(t)
	token := app.signUp(t, "jo@example.com")

	s := app.createSession(t, token, "Llama Herder", "Junior")

	w := app.doJSON(t, http.MethodGet, "/api/sessions/"+s.ID+"/questions", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var questions []model.Question
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &questions))
	require.Len(t, questions, 5)
	assert.Equal(t, "Tell me about yourself and your background in software development.", questions[0].Text)
}

func TestCreateSession_MissingRole(t *testing.T) {
	app := newTestApp(t)
	token := app.signUp(t, "jo@example.com")

	w := app.doJSON(t, http.MethodPost, "/api/sessions", gin.H{"level": "Senior"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSession_NotFound(t *testing.T) {
	app := newTestApp(t)
	token := app.signUp(t, "jo@example.com")

	w := app.doJSON(t, http.MethodGet, "/api/sessions/does-not-exist", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListSessions_ReturnsCallersSessions(t *testing.T) {
	app := newTestApp(t)
	token := app.signUp(t, "jo@example.com")

	app.createSession(t, token, "Software Engineer", "Junior")
	app.createSession(t, token, "Product Manager", "Senior")

	w := app.doJSON(t, http.MethodGet, "/api/sessions", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var sessions []model.InterviewSession
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sessions))
	require.Len(t, sessions, 2)
}

func TestSubmitAnswer_TranscriptOnly(t *testing.T) {
	app := newTestApp(t)
	token := app.signUp(t, "jo@example.com")
	s := app.createSession(t, token, "Software Engineer", "Senior")

	w := app.doJSON(t, http.MethodGet, "/api/sessions/"+s.ID+"/questions", nil, token)
	var questions []model.Question
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &questions))

	const transcript = "I have five years of experience"
	res := app.doMultipart(t, map[string]string{
		"sessionId":  s.ID,
		"questionId": questions[0].ID,
		"transcript": transcript,
	}, nil, token)
	require.Equal(t, http.StatusCreated, res.Code)

	var out model.SubmitAnswerRes
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &out))
	assert.Equal(t, transcript, out.Answer.Transcript)
	assert.Nil(t, out.Answer.AudioURL)
	assert.Equal(t, s.ID, out.Evaluation.SessionID)
	assert.GreaterOrEqual(t, out.Evaluation.Score, 0)
	assert.LessOrEqual(t, out.Evaluation.Score, 100)

	// first answer moves the session to in_progress
	w = app.doJSON(t, http.MethodGet, "/api/sessions/"+s.ID, nil, token)
	var got model.InterviewSession
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, model.StatusInProgress, got.Status)
}

func TestSubmitAnswer_MockEvaluationWhenProviderUnavailable(t *testing.T) {
	app := newTestApp(t)
	token := app.signUp(t, "jo@example.com")
	s := app.createSession(t, token, "Software Engineer", "Senior")

	res := app.doMultipart(t, map[string]string{
		"sessionId":  s.ID,
		"questionId": "whatever",
		"transcript": "an answer",
	}, nil, token)
	require.Equal(t, http.StatusCreated, res.Code)

	var out model.SubmitAnswerRes
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &out))
	assert.GreaterOrEqual(t, out.Evaluation.Score, 70)
	assert.Less(t, out.Evaluation.Score, 90)
	assert.NotEmpty(t, out.Evaluation.Feedback)
}

func TestSubmitAnswer_AudioWithoutTranscriberGetsPlaceholder(t *testing.T) {
	app := newTestApp(t)
	token := app.signUp(t, "jo@example.com")
	s := app.createSession(t, token, "Software Engineer", "Senior")

	res := app.doMultipart(t, map[string]string{
		"sessionId":  s.ID,
		"questionId": "q1",
	}, []byte("fake-webm-bytes"), token)
	require.Equal(t, http.StatusCreated, res.Code)

	var out model.SubmitAnswerRes
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &out))
	assert.Equal(t, "Audio transcript not available...", out.Answer.Transcript)
}

func TestSubmitAnswer_Validation(t *testing.T) {
	app := newTestApp(t)
	token := app.signUp(t, "jo@example.com")

	noIDs := app.doMultipart(t, map[string]string{"transcript": "hello"}, nil, token)
	assert.Equal(t, http.StatusBadRequest, noIDs.Code)

	noPayload := app.doMultipart(t, map[string]string{
		"sessionId":  "s1",
		"questionId": "q1",
	}, nil, token)
	assert.Equal(t, http.StatusBadRequest, noPayload.Code)
}

func TestGetEvaluations_AggregatesAndCompletes(t *testing.T) {
	app := newTestApp(t)
	token := app.signUp(t, "jo@example.com")
	s := app.createSession(t, token, "Software Engineer", "Senior")

	for i, score := range []int{70, 80, 90} {
		require.NoError(t, app.store.CreateEvaluation(context.Background(), &model.Evaluation{
			ID:        fmt.Sprintf("e%d", i),
			SessionID: s.ID,
			Score:     score,
			CreatedAt: time.Now().UTC(),
		}))
	}

	w := app.doJSON(t, http.MethodGet, "/api/answers/evaluation/"+s.ID, nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var evals []model.Evaluation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &evals))
	assert.Len(t, evals, 3)

	got, err := app.store.GetSession(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, got.Status)
	require.NotNil(t, got.Score)
	assert.Equal(t, 80, *got.Score)
	assert.NotNil(t, got.CompletedAt)
}

func TestGetEvaluations_EmptySessionScoresZero(t *testing.T) {
	app := newTestApp(t)
	token := app.signUp(t, "jo@example.com")
	s := app.createSession(t, token, "Software Engineer", "Senior")

	w := app.doJSON(t, http.MethodGet, "/api/answers/evaluation/"+s.ID, nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var evals []model.Evaluation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &evals))
	assert.Empty(t, evals)

	got, err := app.store.GetSession(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, got.Status)
	require.NotNil(t, got.Score)
	assert.Equal(t, 0, *got.Score)
}

func TestEndToEndInterviewFlow(t *testing.T) {
	app := newTestApp(t)

	token := app.signUp(t, "candidate@example.com")
	s := app.createSession(t, token, "Software Engineer", "Senior")
	require.Equal(t, model.StatusPending, s.Status)

	w := app.doJSON(t, http.MethodGet, "/api/sessions/"+s.ID+"/questions", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var questions []model.Question
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &questions))
	require.Len(t, questions, 5)

	const transcript = "I have five years of experience"
	res := app.doMultipart(t, map[string]string{
		"sessionId":  s.ID,
		"questionId": questions[0].ID,
		"transcript": transcript,
	}, nil, token)
	require.Equal(t, http.StatusCreated, res.Code)

	var out model.SubmitAnswerRes
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &out))
	assert.Equal(t, transcript, out.Answer.Transcript)
	require.GreaterOrEqual(t, out.Evaluation.Score, 0)
	require.LessOrEqual(t, out.Evaluation.Score, 100)

	w = app.doJSON(t, http.MethodGet, "/api/answers/evaluation/"+s.ID, nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	got, err := app.store.GetSession(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, got.Status)
	require.NotNil(t, got.Score)
	assert.Equal(t, out.Evaluation.Score, *got.Score)
}
