package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"alfredoptarigan/ai-interviewer/internal/models"
	"alfredoptarigan/ai-interviewer/internal/repositories"
	"alfredoptarigan/ai-interviewer/internal/services"
)

type InterviewHandler struct {
	sessionRepo repositories.SessionRepository
	evaluator   services.InterviewEvaluator
	memory      services.MemoryStore
}

func NewInterviewHandler(
	sessionRepo repositories.SessionRepository,
	evaluator services.InterviewEvaluator,
	memory services.MemoryStore,
) *InterviewHandler {
	return &InterviewHandler{
		sessionRepo: sessionRepo,
		evaluator:   evaluator,
		memory:      memory,
	}
}

// HandleCreateSession handles POST /sessions
func (h *InterviewHandler) HandleCreateSession(c *fiber.Ctx) error {
	var req models.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.CandidateName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "candidate_name is required",
		})
	}

	session := &models.InterviewSession{
		ID:            uuid.New(),
		CandidateName: req.CandidateName,
		Role:          req.Role,
		Status:        models.SessionActive,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := h.sessionRepo.CreateSession(session); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create session",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(models.CreateSessionResponse{
		ID:     session.ID.String(),
		Status: string(session.Status),
	})
}

// HandleTurn handles POST /sessions/:id/turns. One call evaluates one
// question/answer pair: spoken acknowledgment, rubric feedback, and an
// optional follow-up question.
func (h *InterviewHandler) HandleTurn(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session ID format",
		})
	}

	var req models.TurnRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Question == "" || req.Answer == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "question and answer are required",
		})
	}

	session, err := h.sessionRepo.FindSessionByID(sessionID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found",
		})
	}

	ctx := c.UserContext()

	// Prior-session context is optional: a broken memory store must never
	// block the turn.
	priorContext, err := h.memory.RecallContext(ctx, req.Question, 3)
	if err != nil {
		log.WithError(err).WithField("session_id", sessionID).Warn("context recall failed, continuing without")
		priorContext = nil
	}

	ack, err := h.evaluator.SpokenAck(ctx, req.Question, req.Answer)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Evaluation backends are unavailable",
		})
	}

	feedback, err := h.evaluator.GenerateFeedback(ctx, req.Question, req.Answer, priorContext)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Evaluation backends are unavailable",
		})
	}

	followUp, err := h.evaluator.FollowUpQuestion(ctx, req.Question, req.Answer)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Evaluation backends are unavailable",
		})
	}

	count, err := h.sessionRepo.CountTurns(sessionID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load session turns",
		})
	}

	turn := &models.InterviewTurn{
		ID:        uuid.New(),
		SessionID: session.ID,
		Position:  int(count),
		Question:  req.Question,
		Answer:    req.Answer,
		Feedback:  feedback,
		FollowUp:  followUp,
		CreatedAt: time.Now(),
	}

	if err := h.sessionRepo.CreateTurn(turn); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to record turn",
		})
	}

	// Remember the exchange for future sessions, best effort.
	note := "Q: " + req.Question + "\nA: " + req.Answer + "\nFeedback: " + feedback
	if err := h.memory.StoreSnippet(ctx, session.ID.String(), services.DocTypeSessionNote, note); err != nil {
		log.WithError(err).WithField("session_id", sessionID).Warn("failed to store session note")
	}

	return c.JSON(models.TurnResponse{
		TurnID:      turn.ID.String(),
		Acknowledge: ack,
		Feedback:    feedback,
		FollowUp:    followUp,
		Position:    turn.Position,
	})
}

// HandleIntro handles GET /sessions/:id/intro. Purely presentational.
func (h *InterviewHandler) HandleIntro(c *fiber.Ctx) error {
	if _, err := uuid.Parse(c.Params("id")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session ID format",
		})
	}

	index := c.QueryInt("index", 0)
	total := c.QueryInt("total", 0)

	return c.JSON(models.IntroResponse{
		Intro: h.evaluator.QuestionIntro(index, total),
	})
}
