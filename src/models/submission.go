package models

import (
	"time"
)

// Submission is one completed survey. ID is assigned by the sink.
type Submission struct {
	ID        string    `bson:"-" json:"id"`
	SurveyID  int       `bson:"surveyId" json:"surveyId"`
	Email     *string   `bson:"email" json:"email"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Response is one persisted answer or specify value of a Submission.
// Responses are append-only.
type Response struct {
	SubmissionID string    `bson:"-" json:"submissionId"`
	QuestionID   int       `bson:"questionId" json:"questionId"`
	Answer       any       `bson:"answer" json:"answer"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

// SpecifyAnswer is the answer payload of a specify-value Response.
type SpecifyAnswer struct {
	OptionID     string `bson:"optionId" json:"optionId"`
	SpecifyValue string `bson:"specifyValue" json:"specifyValue"`
}

// SubmitCheckpoint records how far a submission got, so that a retry after a
// failed response write reuses the Submission instead of creating another.
// Digest identifies the rows the checkpoint was written for; a retry with
// different answers does not resume it.
type SubmitCheckpoint struct {
	SubmissionID   string    `json:"submissionId"`
	Digest         string    `json:"digest"`
	AnswersWritten bool      `json:"answersWritten"`
	CreatedAt      time.Time `json:"createdAt"`
}
