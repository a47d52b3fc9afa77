package survey

import (
	"Backend-Retreat-Survey/src/models"
)

func opts(ids ...string) []models.Option {
	out := make([]models.Option, len(ids))
	for i, id := range ids {
		out[i] = models.Option{ID: id, Label: id}
	}
	return out
}

// testDefinition is a three-section survey covering every rule the
// validator knows about.
func testDefinition() *models.SurveyDefinition {
	return &models.SurveyDefinition{
		ID:                  "test",
		Title:               "Test survey",
		PrimaryEmailField:   "contact-email",
		ConfirmEmailField:   "confirm-email",
		FallbackEmailFields: []string{"vision-email"},
		Sections: []models.Section{
			{
				ID: "contact",
				Questions: []models.Question{
					{ID: "name", Type: models.Text, Required: true},
					{ID: "contact-email", Type: models.Email, Required: true},
					{ID: "confirm-email", Type: models.Email, Required: true},
				},
			},
			{
				ID: "habits",
				Questions: []models.Question{
					{ID: "sleep", Type: models.Radio, Required: true, Options: []models.Option{
						{ID: "well"}, {ID: "poor"}, {ID: "other", Specify: true},
					}},
					{ID: "sleep-notes", Type: models.Textarea, Required: true,
						ConditionalOn: "sleep", ConditionalValue: models.ConditionalValue{"poor"}},
					{ID: "goals", Type: models.Checkbox, Required: true, SelectMax: 2, Options: []models.Option{
						{ID: "rest"}, {ID: "yoga"}, {ID: "food", Specify: true}, {ID: "other", Specify: true},
					}},
					{ID: "goal-detail", Type: models.Text, Required: true,
						ConditionalOn: "goals", ConditionalValue: models.ConditionalValue{"yoga", "rest"}},
				},
			},
			{
				ID: "vision",
				Questions: []models.Question{
					{ID: "vision-statement", Type: models.Textarea},
					{ID: "vision-email", Type: models.Email},
				},
			},
		},
	}
}
