package models

// Progress is everything persisted for one in-progress survey session.
type Progress struct {
	Answers      Answers           `json:"answers"`
	Specify      SpecifyValues     `json:"specify"`
	SectionIndex int               `json:"sectionIndex"`
	Checkpoint   *SubmitCheckpoint `json:"checkpoint,omitempty"`
}

// SessionState is the API view of a session.
type SessionState struct {
	SessionID        string           `json:"sessionId"`
	SectionIndex     int              `json:"sectionIndex"`
	TotalSections    int              `json:"totalSections"`
	Progress         float64          `json:"progress"`
	Section          Section          `json:"section"`
	VisibleQuestions []string         `json:"visibleQuestions"`
	Answers          Answers          `json:"answers"`
	Specify          SpecifyValues    `json:"specify"`
	Errors           ValidationErrors `json:"errors,omitempty"`
}

// --------- Request DTOs ---------

type SetAnswerRequest struct {
	Value *string `json:"value" validate:"required"`
}

type SetOptionRequest struct {
	Checked *bool `json:"checked" validate:"required"`
}

type SetSpecifyRequest struct {
	Value string `json:"value" validate:"max=2000"`
}

type SubmitResponse struct {
	SubmissionID    string `json:"submissionId"`
	ThankYouMessage string `json:"thankYouMessage"`
}
