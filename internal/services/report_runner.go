package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"alfredoptarigan/ai-interviewer/internal/models"
	"alfredoptarigan/ai-interviewer/internal/repositories"
)

// ReportService drives one queued report job end to end: load the session's
// turns, run the evaluator, persist the result.
type ReportService interface {
	ProcessReportJob(ctx context.Context, jobID uuid.UUID) error
}

type reportService struct {
	jobRepo     repositories.ReportJobRepository
	sessionRepo repositories.SessionRepository
	evaluator   InterviewEvaluator
}

func NewReportService(
	jobRepo repositories.ReportJobRepository,
	sessionRepo repositories.SessionRepository,
	evaluator InterviewEvaluator,
) ReportService {
	return &reportService{
		jobRepo:     jobRepo,
		sessionRepo: sessionRepo,
		evaluator:   evaluator,
	}
}

// ProcessReportJob implements ReportService. Evaluation failures (both
// providers down, malformed report JSON) mark the job failed so the client
// gets an actionable error instead of a fabricated report.
func (s *reportService) ProcessReportJob(ctx context.Context, jobID uuid.UUID) error {
	if err := s.jobRepo.UpdateStatus(jobID, models.ReportProcessing); err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
	}

	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		s.jobRepo.UpdateError(jobID, err.Error())
		return fmt.Errorf("failed to load report job: %w", err)
	}

	session, err := s.sessionRepo.FindSessionByID(job.SessionID)
	if err != nil {
		s.jobRepo.UpdateError(jobID, fmt.Sprintf("session not found: %v", err))
		return fmt.Errorf("failed to load session: %w", err)
	}

	turns, err := s.sessionRepo.FindTurnsBySession(job.SessionID)
	if err != nil {
		s.jobRepo.UpdateError(jobID, fmt.Sprintf("failed to load turns: %v", err))
		return fmt.Errorf("failed to load turns: %w", err)
	}

	if len(turns) == 0 {
		s.jobRepo.UpdateError(jobID, "session has no recorded answers")
		return fmt.Errorf("session %s has no recorded answers", job.SessionID)
	}

	qas := make([]models.QA, 0, len(turns))
	for _, turn := range turns {
		qas = append(qas, models.QA{Question: turn.Question, Answer: turn.Answer})
	}

	report, err := s.evaluator.GenerateReport(ctx, session.CandidateName, session.ID.String(), qas)
	if err != nil {
		s.jobRepo.UpdateError(jobID, err.Error())
		return fmt.Errorf("failed to generate report: %w", err)
	}

	reportJSON, err := json.Marshal(report)
	if err != nil {
		s.jobRepo.UpdateError(jobID, err.Error())
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := s.jobRepo.UpdateResult(jobID, string(reportJSON)); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	if err := s.sessionRepo.UpdateSessionStatus(session.ID, models.SessionCompleted); err != nil {
		log.WithError(err).WithField("session_id", session.ID).Warn("failed to mark session completed")
	}

	log.WithField("job_id", jobID).
		WithField("final_score", report.FinalScore).
		Info("report generated")

	return nil
}
