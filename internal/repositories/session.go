package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/ai-interviewer/internal/models"
)

type SessionRepository interface {
	CreateSession(session *models.InterviewSession) error
	FindSessionByID(id uuid.UUID) (*models.InterviewSession, error)
	UpdateSessionStatus(id uuid.UUID, status models.SessionStatus) error
	CreateTurn(turn *models.InterviewTurn) error
	FindTurnsBySession(sessionID uuid.UUID) ([]models.InterviewTurn, error)
	CountTurns(sessionID uuid.UUID) (int64, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) CreateSession(session *models.InterviewSession) error {
	if err := r.db.Create(session).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *sessionRepository) FindSessionByID(id uuid.UUID) (*models.InterviewSession, error) {
	var session models.InterviewSession
	if err := r.db.Where("id = ?", id).First(&session).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("session not found")
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return &session, nil
}

func (r *sessionRepository) UpdateSessionStatus(id uuid.UUID, status models.SessionStatus) error {
	result := r.db.Model(&models.InterviewSession{}).
		Where("id = ?", id).
		Update("status", status)

	if result.Error != nil {
		return fmt.Errorf("failed to update session status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("session not found")
	}
	return nil
}

func (r *sessionRepository) CreateTurn(turn *models.InterviewTurn) error {
	if err := r.db.Create(turn).Error; err != nil {
		return fmt.Errorf("failed to create turn: %w", err)
	}
	return nil
}

func (r *sessionRepository) FindTurnsBySession(sessionID uuid.UUID) ([]models.InterviewTurn, error) {
	var turns []models.InterviewTurn
	err := r.db.
		Where("session_id = ?", sessionID).
		Order("position ASC").
		Find(&turns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find turns: %w", err)
	}
	return turns, nil
}

func (r *sessionRepository) CountTurns(sessionID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.InterviewTurn{}).
		Where("session_id = ?", sessionID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count turns: %w", err)
	}
	return count, nil
}
