package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeSubmissionConfirmation = "email:survey-submission-confirmation"

type SubmissionConfirmationPayload struct {
	SubmissionID    string `json:"submissionId"`
	SurveyID        int    `json:"surveyId"`
	Email           string `json:"email"`
	SurveyTitle     string `json:"surveyTitle"`
	ThankYouMessage string `json:"thankYouMessage"`
}

func NewSubmissionConfirmationTask(p SubmissionConfirmationPayload) (*asynq.Task, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeSubmissionConfirmation, b), nil
}
