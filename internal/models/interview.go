package models

import (
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
)

type ReportJobStatus string

const (
	ReportQueued     ReportJobStatus = "queued"
	ReportProcessing ReportJobStatus = "processing"
	ReportCompleted  ReportJobStatus = "completed"
	ReportFailed     ReportJobStatus = "failed"
)

type InterviewSession struct {
	ID            uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CandidateName string        `gorm:"type:text;not null" json:"candidate_name"`
	Role          string        `gorm:"type:text" json:"role"`
	Status        SessionStatus `gorm:"not null;default:'active'" json:"status"`
	CreatedAt     time.Time     `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (InterviewSession) TableName() string {
	return "interview_sessions"
}

type InterviewTurn struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;index" json:"session_id"`
	Position  int       `gorm:"not null" json:"position"`
	Question  string    `gorm:"type:text;not null" json:"question"`
	Answer    string    `gorm:"type:text;not null" json:"answer"`
	Feedback  string    `gorm:"type:text" json:"feedback"`
	FollowUp  string    `gorm:"type:text" json:"follow_up"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	Session InterviewSession `gorm:"foreignKey:SessionID" json:"-"`
}

func (InterviewTurn) TableName() string {
	return "interview_turns"
}

type ReportJob struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SessionID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"session_id"`
	Status       ReportJobStatus `gorm:"not null;default:'queued'" json:"status"`
	ReportJSON   *string         `gorm:"type:text" json:"report_json,omitempty"`
	ErrorMessage *string         `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	Session InterviewSession `gorm:"foreignKey:SessionID" json:"-"`
}

func (ReportJob) TableName() string {
	return "report_jobs"
}
