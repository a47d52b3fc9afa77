package survey

import "Backend-Retreat-Survey/src/models"

// ShouldShow decides whether a question is rendered for the given answers.
// It is pure: the same inputs always give the same result.
func ShouldShow(q models.Question, answers models.Answers) bool {
	if q.ConditionalOn == "" {
		return true
	}
	dep, ok := answers[q.ConditionalOn]
	if !ok || dep.Empty() {
		return false
	}
	for _, v := range q.ConditionalValue {
		if dep.Contains(v) {
			return true
		}
	}
	return false
}

// VisibleQuestions returns the section's questions that ShouldShow allows,
// in definition order.
func VisibleQuestions(section models.Section, answers models.Answers) []models.Question {
	out := make([]models.Question, 0, len(section.Questions))
	for _, q := range section.Questions {
		if ShouldShow(q, answers) {
			out = append(out, q)
		}
	}
	return out
}
