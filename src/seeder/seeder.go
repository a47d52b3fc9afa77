package seeder

import (
	_ "embed"
)

// RetreatSurvey is the built-in retreat self-assessment definition, used
// when SURVEY_DEFINITION_PATH is not set.
//
//go:embed retreat_survey.yaml
var RetreatSurvey []byte

// QuestionMapping maps the built-in survey's question ids to persisted
// question ids.
//
//go:embed question_mapping.yaml
var QuestionMapping []byte
