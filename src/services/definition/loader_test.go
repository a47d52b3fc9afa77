package definition

import (
	"os"
	"path/filepath"
	"testing"

	"Backend-Retreat-Survey/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDefinitionIsValid(t *testing.T) {
	def, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "retreat-self-assessment", def.ID)
	assert.Len(t, def.Sections, 4)
	assert.Equal(t, "contact-email", def.PrimaryEmailField)

	q, ok := def.Question("stress-sources")
	require.True(t, ok)
	assert.Equal(t, models.ConditionalValue{"high", "overwhelming"}, q.ConditionalValue)
	assert.Equal(t, 3, q.SelectMax)

	q, ok = def.Question("sleep-details")
	require.True(t, ok)
	assert.Equal(t, models.ConditionalValue{"poor"}, q.ConditionalValue)
}

func TestDefaultMappingCoversDefaultDefinition(t *testing.T) {
	def, err := Default()
	require.NoError(t, err)
	mapping, err := DefaultMapping()
	require.NoError(t, err)

	for _, q := range def.Questions() {
		assert.Contains(t, mapping, q.ID)
	}
}

func TestParseJSONConditionalValue(t *testing.T) {
	data := []byte(`{
		"title": "t",
		"sections": [{"id": "s1", "title": "S", "questions": [
			{"id": "a", "text": "A", "type": "radio", "options": [{"id": "x", "label": "X"}, {"id": "y", "label": "Y"}]},
			{"id": "b", "text": "B", "type": "text", "conditionalOn": "a", "conditionalValue": "x"},
			{"id": "c", "text": "C", "type": "text", "conditionalOn": "a", "conditionalValue": ["x", "y"]}
		]}]
	}`)
	def, err := Parse(data, ".json")
	require.NoError(t, err)

	b, _ := def.Question("b")
	c, _ := def.Question("c")
	assert.Equal(t, models.ConditionalValue{"x"}, b.ConditionalValue)
	assert.Equal(t, models.ConditionalValue{"x", "y"}, c.ConditionalValue)
}

func TestValidateRejectsBrokenDefinitions(t *testing.T) {
	radio := func(id string) models.Question {
		return models.Question{ID: id, Type: models.Radio, Options: []models.Option{{ID: "x"}}}
	}

	cases := map[string]models.SurveyDefinition{
		"no sections": {},
		"duplicate question id": {Sections: []models.Section{
			{ID: "s1", Questions: []models.Question{radio("a")}},
			{ID: "s2", Questions: []models.Question{radio("a")}},
		}},
		"condition on later section": {Sections: []models.Section{
			{ID: "s1", Questions: []models.Question{{ID: "b", Type: models.Text, ConditionalOn: "a", ConditionalValue: models.ConditionalValue{"x"}}}},
			{ID: "s2", Questions: []models.Question{radio("a")}},
		}},
		"condition on later question in same section": {Sections: []models.Section{
			{ID: "s1", Questions: []models.Question{
				{ID: "b", Type: models.Text, ConditionalOn: "a", ConditionalValue: models.ConditionalValue{"x"}},
				radio("a"),
			}},
		}},
		"condition on unknown question": {Sections: []models.Section{
			{ID: "s1", Questions: []models.Question{{ID: "b", Type: models.Text, ConditionalOn: "zzz", ConditionalValue: models.ConditionalValue{"x"}}}},
		}},
		"selectMax on radio": {Sections: []models.Section{
			{ID: "s1", Questions: []models.Question{{ID: "a", Type: models.Radio, SelectMax: 2, Options: []models.Option{{ID: "x"}}}}},
		}},
		"radio without options": {Sections: []models.Section{
			{ID: "s1", Questions: []models.Question{{ID: "a", Type: models.Radio}}},
		}},
		"unknown type": {Sections: []models.Section{
			{ID: "s1", Questions: []models.Question{{ID: "a", Type: "slider"}}},
		}},
		"primary email not an email question": {
			PrimaryEmailField: "a",
			Sections:          []models.Section{{ID: "s1", Questions: []models.Question{{ID: "a", Type: models.Text}}}},
		},
	}

	for name, def := range cases {
		t.Run(name, func(t *testing.T) {
			err := Validate(&def)
			assert.ErrorIs(t, err, ErrInvalidDefinition)
		})
	}
}

func TestValidateAllowsConditionInSameSection(t *testing.T) {
	def := models.SurveyDefinition{Sections: []models.Section{{ID: "s1", Questions: []models.Question{
		{ID: "a", Type: models.Radio, Options: []models.Option{{ID: "x"}}},
		{ID: "b", Type: models.Text, ConditionalOn: "a", ConditionalValue: models.ConditionalValue{"x"}},
	}}}}
	assert.NoError(t, Validate(&def))
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mapping.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a": 1, "b": 2}`), 0o600))

	mapping, err := LoadMapping(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 1, "b": 2}, mapping)

	bad := filepath.Join(dir, "mapping.toml")
	require.NoError(t, os.WriteFile(bad, []byte(`a = 1`), 0o600))
	_, err = LoadMapping(bad)
	assert.Error(t, err)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
