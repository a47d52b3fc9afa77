package jobs

import (
	"bytes"
	_ "embed"
	"html/template"
	"strings"
)

type ConfirmationEmailData struct {
	SurveyTitle     string
	ThankYouMessage string
	SubmissionID    string
	SubmittedAt     string
}

//go:embed email_confirmation.html
var confirmationEmailHTML string

var confirmationEmailTmpl = template.Must(template.New("confirmation").Parse(confirmationEmailHTML))

const defaultThankYou = "Thank you for completing the survey."

func RenderConfirmationEmailHTML(data ConfirmationEmailData) (string, error) {
	if strings.TrimSpace(data.ThankYouMessage) == "" {
		data.ThankYouMessage = defaultThankYou
	}
	if strings.TrimSpace(data.SurveyTitle) == "" {
		data.SurveyTitle = "Survey"
	}

	var buf bytes.Buffer
	if err := confirmationEmailTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func confirmationSubject(title string) string {
	if strings.TrimSpace(title) == "" {
		return "Thank you for your answers"
	}
	return "Thank you for your answers: " + title
}
