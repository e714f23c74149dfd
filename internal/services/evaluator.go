package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strings"

	"alfredoptarigan/ai-interviewer/internal/models"
)

// followUpSentinel is the literal the model returns when no follow-up question
// is warranted.
const followUpSentinel = "NONE"

type InterviewEvaluator interface {
	SpokenAck(ctx context.Context, question, answer string) (string, error)
	GenerateFeedback(ctx context.Context, question, answer string, priorContext []string) (string, error)
	FollowUpQuestion(ctx context.Context, question, answer string) (string, error)
	GenerateReport(ctx context.Context, candidateName, sessionID string, qas []models.QA) (*models.Report, error)
	QuestionIntro(index, total int) string
}

type interviewEvaluator struct {
	gateway       ChatGateway
	promptBuilder *PromptBuilder
	intn          func(n int) int
}

func NewInterviewEvaluator(gateway ChatGateway) InterviewEvaluator {
	return &interviewEvaluator{
		gateway:       gateway,
		promptBuilder: NewPromptBuilder(),
		intn:          rand.IntN,
	}
}

// SpokenAck implements InterviewEvaluator. Best effort: whatever the model
// says comes back as-is.
func (e *interviewEvaluator) SpokenAck(ctx context.Context, question, answer string) (string, error) {
	result, err := e.gateway.Chat(ctx, e.promptBuilder.BuildAckPrompt(question, answer))
	if err != nil {
		return "", fmt.Errorf("failed to generate acknowledgment: %w", err)
	}
	return result.Content, nil
}

// GenerateFeedback implements InterviewEvaluator.
func (e *interviewEvaluator) GenerateFeedback(ctx context.Context, question, answer string, priorContext []string) (string, error) {
	result, err := e.gateway.Chat(ctx, e.promptBuilder.BuildFeedbackPrompt(question, answer, priorContext))
	if err != nil {
		return "", fmt.Errorf("failed to generate feedback: %w", err)
	}
	return strings.TrimSpace(result.Content), nil
}

// FollowUpQuestion implements InterviewEvaluator. An empty return with nil
// error means the model decided no follow-up is needed.
func (e *interviewEvaluator) FollowUpQuestion(ctx context.Context, question, answer string) (string, error) {
	result, err := e.gateway.Chat(ctx, e.promptBuilder.BuildFollowUpPrompt(question, answer))
	if err != nil {
		return "", fmt.Errorf("failed to generate follow-up: %w", err)
	}

	trimmed := strings.TrimSpace(result.Content)
	if strings.EqualFold(trimmed, followUpSentinel) {
		return "", nil
	}
	return trimmed, nil
}

// reportPayload is the wire shape the model returns for a report request.
// Criterion handles the bare-number vs. object inconsistency; totals and the
// final score are recomputed locally regardless of what the model claims.
type reportPayload struct {
	Questions       []models.QuestionEvaluation `json:"questions"`
	OverallFeedback string                      `json:"overall_feedback"`
}

// GenerateReport implements InterviewEvaluator. A malformed report is worse
// than no report, so any parse failure is fatal - there is no degraded path.
func (e *interviewEvaluator) GenerateReport(ctx context.Context, candidateName, sessionID string, qas []models.QA) (*models.Report, error) {
	if len(qas) == 0 {
		return nil, fmt.Errorf("cannot generate report without questions")
	}

	result, err := e.gateway.Chat(ctx, e.promptBuilder.BuildReportPrompt(candidateName, qas))
	if err != nil {
		return nil, fmt.Errorf("failed to generate report: %w", err)
	}

	cleaned := stripCodeFences(result.Content)

	var payload reportPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("invalid JSON in report response: %w", err)
	}

	report := &models.Report{
		Candidate: models.Candidate{
			Name:      candidateName,
			SessionID: sessionID,
		},
		Questions:       payload.Questions,
		OverallFeedback: payload.OverallFeedback,
	}
	report.Recompute()

	return report, nil
}

var (
	firstIntros = []string{
		"Let's start with your first question.",
		"Here is your opening question.",
		"We'll kick things off with this one.",
	}
	lastIntros = []string{
		"Last question, make it count.",
		"Here is the final question.",
		"One more question before we wrap up.",
	}
	middleIntros = []string{
		"Moving on to the next question.",
		"Here is your next question.",
		"Let's keep going.",
		"On to the next one.",
	}
)

// QuestionIntro implements InterviewEvaluator. Purely presentational, no
// network call.
func (e *interviewEvaluator) QuestionIntro(index, total int) string {
	pool := middleIntros
	switch {
	case index <= 0:
		pool = firstIntros
	case index >= total-1:
		pool = lastIntros
	}
	return pool[e.intn(len(pool))]
}

// stripCodeFences removes a leading ```json or ``` fence and a trailing ```
// fence. Models routinely wrap "pure JSON" responses in markdown anyway.
func stripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
