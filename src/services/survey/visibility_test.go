package survey

import (
	"testing"

	"Backend-Retreat-Survey/src/models"

	"github.com/stretchr/testify/assert"
)

func TestShouldShowUnconditional(t *testing.T) {
	q := models.Question{ID: "a", Type: models.Text}

	for _, answers := range []models.Answers{
		nil,
		{},
		{"a": models.TextAnswer("x")},
		{"b": models.ListAnswer("y", "z")},
	} {
		assert.True(t, ShouldShow(q, answers))
	}
}

func TestShouldShowScalarDependency(t *testing.T) {
	b := models.Question{ID: "b", ConditionalOn: "a", ConditionalValue: models.ConditionalValue{"x"}}

	cases := []struct {
		name    string
		answers models.Answers
		want    bool
	}{
		{"absent", models.Answers{}, false},
		{"null", models.Answers{"a": {}}, false},
		{"empty string", models.Answers{"a": models.TextAnswer("")}, false},
		{"other value", models.Answers{"a": models.TextAnswer("y")}, false},
		{"matching value", models.Answers{"a": models.TextAnswer("x")}, true},
		{"case differs", models.Answers{"a": models.TextAnswer("X")}, false},
		{"list containing value", models.Answers{"a": models.ListAnswer("y", "x")}, true},
		{"list without value", models.Answers{"a": models.ListAnswer("y", "z")}, false},
		{"empty list", models.Answers{"a": models.ListAnswer()}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ShouldShow(b, tc.answers))
		})
	}
}

func TestShouldShowAnyOfSeveralValues(t *testing.T) {
	q := models.Question{ID: "b", ConditionalOn: "a", ConditionalValue: models.ConditionalValue{"high", "overwhelming"}}

	assert.True(t, ShouldShow(q, models.Answers{"a": models.TextAnswer("overwhelming")}))
	assert.True(t, ShouldShow(q, models.Answers{"a": models.ListAnswer("low", "high")}))
	assert.False(t, ShouldShow(q, models.Answers{"a": models.TextAnswer("low")}))
}

func TestShouldShowIsIdempotent(t *testing.T) {
	q := models.Question{ID: "b", ConditionalOn: "a", ConditionalValue: models.ConditionalValue{"x"}}
	answers := models.Answers{"a": models.ListAnswer("x")}

	first := ShouldShow(q, answers)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ShouldShow(q, answers))
	}
	assert.Equal(t, models.Answers{"a": models.ListAnswer("x")}, answers)
}

func TestVisibleQuestionsKeepsOrder(t *testing.T) {
	def := testDefinition()
	habits := def.Sections[1]

	ids := func(qs []models.Question) []string {
		var out []string
		for _, q := range qs {
			out = append(out, q.ID)
		}
		return out
	}

	assert.Equal(t, []string{"sleep", "goals"}, ids(VisibleQuestions(habits, models.Answers{})))
	assert.Equal(t,
		[]string{"sleep", "sleep-notes", "goals", "goal-detail"},
		ids(VisibleQuestions(habits, models.Answers{
			"sleep": models.TextAnswer("poor"),
			"goals": models.ListAnswer("rest"),
		})),
	)
}
