package evaluator

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"

	"github.com/TanushreeSarkar/InterVista/internal/openai"
	"go.uber.org/zap"
)

const systemPrompt = `You are an expert interviewer. Evaluate the candidate's answer based on clarity, technical accuracy, and completeness.
Return a JSON object with:
- score (integer 0-100)
- feedback (string summary, max 2 sentences)
- strengths (array of strings, max 3 items)
- improvements (array of strings, max 3 items)`

// Result is the structured outcome of evaluating one answer.
type Result struct {
	Score        int      `json:"score"`
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// Evaluator scores answers through the LLM provider, degrading to a mock
// result on any failure. Evaluate never returns an error: it is the
// terminal error boundary for the evaluation path.
type Evaluator struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

func New(client *openai.Client, model string, logger *zap.Logger) *Evaluator {
	return &Evaluator{client: client, model: model, logger: logger}
}

func (e *Evaluator) Evaluate(ctx context.Context, question, transcript string) Result {
	if !e.client.Configured() {
		e.logger.Warn("evaluation: no api key configured, using mock result")
		return Mock()
	}

	res, err := e.evaluate(ctx, question, transcript)
	if err != nil {
		e.logger.Warn("evaluation failed, using mock result", zap.Error(err))
		return Mock()
	}
	return res
}

func (e *Evaluator) evaluate(ctx context.Context, question, transcript string) (Result, error) {
	content, err := e.client.Chat(ctx, openai.ChatRequest{
		Model: e.model,
		Messages: []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": fmt.Sprintf("Question: %s\nAnswer: %s", question, transcript)},
		},
		ResponseFormat: &openai.ResponseFormat{Type: "json_object"},
	})
	if err != nil {
		return Result{}, err
	}

	var res Result
	if err := json.Unmarshal([]byte(content), &res); err != nil {
		return Result{}, fmt.Errorf("parse evaluation response: %w", err)
	}

	if res.Score < 0 {
		res.Score = 0
	}
	if res.Score > 100 {
		res.Score = 100
	}
	if len(res.Strengths) > 3 {
		res.Strengths = res.Strengths[:3]
	}
	if len(res.Improvements) > 3 {
		res.Improvements = res.Improvements[:3]
	}
	return res, nil
}

// Mock returns the fixed-shape fallback evaluation with a score in [70,90).
func Mock() Result {
	return Result{
		Score:    rand.Intn(20) + 70,
		Feedback: "This is a mock evaluation because the AI provider is unavailable. The system detected good speech patterns but requires a configured provider for content analysis.",
		Strengths: []string{
			"Clear pronunciation",
			"Good pacing",
			"Confident delivery",
		},
		Improvements: []string{
			"Connect more to the specific question",
			"Provide concrete examples",
			"Structure the answer more logically",
		},
	}
}
