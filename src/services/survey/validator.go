package survey

import (
	"strings"

	"Backend-Retreat-Survey/src/models"
	"Backend-Retreat-Survey/src/utils"
)

const (
	MsgRequired      = "This field is required."
	MsgInvalidEmail  = "Please enter a valid email address."
	MsgEmailMismatch = "Email addresses do not match."
	MsgSpecify       = "Please specify."
)

// ValidateSection checks the visible questions of one section and returns a
// fresh error map. An empty map means the section is valid. Hidden questions
// are never validated.
func ValidateSection(def *models.SurveyDefinition, section models.Section, answers models.Answers, specify models.SpecifyValues) models.ValidationErrors {
	errs := models.ValidationErrors{}

	for _, q := range VisibleQuestions(section, answers) {
		answer := answers[q.ID]

		if q.Required && answer.Empty() {
			errs[q.ID] = MsgRequired
		}

		if q.Type == models.Email && !answer.Empty() && !utils.IsEmail(answer.Text()) {
			errs[q.ID] = MsgInvalidEmail
		}

		if def != nil && def.ConfirmEmailField != "" && q.ID == def.ConfirmEmailField && !answer.Empty() {
			primary := answers[def.PrimaryEmailField]
			if strings.TrimSpace(answer.Text()) != strings.TrimSpace(primary.Text()) {
				errs[q.ID] = MsgEmailMismatch
			}
		}

		for _, o := range q.Options {
			if !o.Specify || !answer.Contains(o.ID) {
				continue
			}
			key := models.SpecifyKey(q.ID, o.ID)
			if strings.TrimSpace(specify[key]) == "" {
				errs[key] = MsgSpecify
			}
		}
	}

	return errs
}

// ValidateAll validates every section and merges the results.
func ValidateAll(def *models.SurveyDefinition, answers models.Answers, specify models.SpecifyValues) models.ValidationErrors {
	errs := models.ValidationErrors{}
	for _, s := range def.Sections {
		for k, v := range ValidateSection(def, s, answers, specify) {
			errs[k] = v
		}
	}
	return errs
}
