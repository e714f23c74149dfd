package models

// QA is one question/answer pair handed to the report generator.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type UploadResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	DocType      string `json:"doc_type"`
}

type CreateSessionRequest struct {
	CandidateName string `json:"candidate_name" validate:"required"`
	Role          string `json:"role"`
}

type CreateSessionResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type TurnRequest struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

type TurnResponse struct {
	TurnID      string `json:"turn_id"`
	Acknowledge string `json:"acknowledge"`
	Feedback    string `json:"feedback"`
	FollowUp    string `json:"follow_up,omitempty"`
	Position    int    `json:"position"`
}

type IntroResponse struct {
	Intro string `json:"intro"`
}

type ReportJobResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type ReportResultResponse struct {
	ID           string  `json:"id"`
	Status       string  `json:"status"`
	Report       *Report `json:"report,omitempty"`
	ErrorMessage *string `json:"error_message,omitempty"`
}

type SynthesisRequest struct {
	Text string `json:"text" validate:"required"`
}

type TranscriptionResponse struct {
	Success  bool   `json:"success"`
	Provider string `json:"provider"`
	Text     string `json:"text,omitempty"`
}

type SynthesisFallbackResponse struct {
	UseBrowserFallback bool   `json:"use_browser_fallback"`
	Provider           string `json:"provider"`
}
