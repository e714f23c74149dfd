package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/ai-interviewer/internal/models"
)

type ReportJobRepository interface {
	Create(job *models.ReportJob) error
	FindByID(id uuid.UUID) (*models.ReportJob, error)
	UpdateStatus(id uuid.UUID, status models.ReportJobStatus) error
	UpdateResult(id uuid.UUID, reportJSON string) error
	UpdateError(id uuid.UUID, errorMsg string) error
	FindPendingJobs(limit int) ([]models.ReportJob, error)
}

type reportJobRepository struct {
	db *gorm.DB
}

func NewReportJobRepository(db *gorm.DB) ReportJobRepository {
	return &reportJobRepository{db: db}
}

func (r *reportJobRepository) Create(job *models.ReportJob) error {
	if err := r.db.Create(job).Error; err != nil {
		return fmt.Errorf("failed to create report job: %w", err)
	}
	return nil
}

func (r *reportJobRepository) FindByID(id uuid.UUID) (*models.ReportJob, error) {
	var job models.ReportJob
	if err := r.db.Where("id = ?", id).First(&job).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("report job not found")
		}
		return nil, fmt.Errorf("failed to find report job: %w", err)
	}
	return &job, nil
}

func (r *reportJobRepository) UpdateStatus(id uuid.UUID, status models.ReportJobStatus) error {
	result := r.db.Model(&models.ReportJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("report job not found")
	}
	return nil
}

func (r *reportJobRepository) UpdateResult(id uuid.UUID, reportJSON string) error {
	result := r.db.Model(&models.ReportJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      models.ReportCompleted,
			"report_json": reportJSON,
			"updated_at":  time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update result: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("report job not found")
	}
	return nil
}

func (r *reportJobRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	result := r.db.Model(&models.ReportJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.ReportFailed,
			"error_message": errorMsg,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update error: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("report job not found")
	}
	return nil
}

func (r *reportJobRepository) FindPendingJobs(limit int) ([]models.ReportJob, error) {
	var jobs []models.ReportJob
	err := r.db.
		Where("status = ?", models.ReportQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find pending jobs: %w", err)
	}
	return jobs, nil
}
