package handlers

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"alfredoptarigan/ai-interviewer/internal/models"
	"alfredoptarigan/ai-interviewer/internal/repositories"
	"alfredoptarigan/ai-interviewer/internal/services"
)

type ReportHandler struct {
	jobRepo     repositories.ReportJobRepository
	sessionRepo repositories.SessionRepository
	worker      services.Worker
}

func NewReportHandler(
	jobRepo repositories.ReportJobRepository,
	sessionRepo repositories.SessionRepository,
	worker services.Worker,
) *ReportHandler {
	return &ReportHandler{
		jobRepo:     jobRepo,
		sessionRepo: sessionRepo,
		worker:      worker,
	}
}

// HandleRequestReport handles POST /sessions/:id/report
func (h *ReportHandler) HandleRequestReport(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session ID format",
		})
	}

	session, err := h.sessionRepo.FindSessionByID(sessionID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found",
		})
	}

	count, err := h.sessionRepo.CountTurns(sessionID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load session turns",
		})
	}
	if count == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Session has no recorded answers",
		})
	}

	job := &models.ReportJob{
		ID:        uuid.New(),
		SessionID: session.ID,
		Status:    models.ReportQueued,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := h.jobRepo.Create(job); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create report job",
		})
	}

	h.worker.EnqueueJob(job.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.ReportJobResponse{
		ID:     job.ID.String(),
		Status: string(job.Status),
	})
}

// HandleGetReport handles GET /reports/:id
func (h *ReportHandler) HandleGetReport(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid report ID format",
		})
	}

	job, err := h.jobRepo.FindByID(jobID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Report not found",
		})
	}

	response := models.ReportResultResponse{
		ID:     job.ID.String(),
		Status: string(job.Status),
	}

	if job.Status == models.ReportCompleted && job.ReportJSON != nil {
		var report models.Report
		if err := json.Unmarshal([]byte(*job.ReportJSON), &report); err != nil {
			log.WithError(err).WithField("job_id", jobID).Error("stored report is unreadable")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Stored report is unreadable",
			})
		}
		response.Report = &report
	}

	if job.Status == models.ReportFailed && job.ErrorMessage != nil {
		response.ErrorMessage = job.ErrorMessage
	}

	return c.JSON(response)
}
