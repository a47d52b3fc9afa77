package models

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

type QuestionType string

const (
	Radio    QuestionType = "radio"
	Checkbox QuestionType = "checkbox"
	Text     QuestionType = "text"
	Textarea QuestionType = "textarea"
	Email    QuestionType = "email"
)

func (t QuestionType) Valid() bool {
	switch t {
	case Radio, Checkbox, Text, Textarea, Email:
		return true
	}
	return false
}

// HasOptions reports whether answers of this type are option ids.
func (t QuestionType) HasOptions() bool {
	return t == Radio || t == Checkbox
}

// --- SurveyDefinition ---
type SurveyDefinition struct {
	ID              string `json:"id" yaml:"id"`
	Title           string `json:"title" yaml:"title"`
	Introduction    string `json:"introduction" yaml:"introduction"`
	ThankYouMessage string `json:"thankYouMessage" yaml:"thankYouMessage"`

	// Fields used for the email cross-check and for resolving the
	// submitter's address.
	PrimaryEmailField   string   `json:"primaryEmailField,omitempty" yaml:"primaryEmailField,omitempty"`
	ConfirmEmailField   string   `json:"confirmEmailField,omitempty" yaml:"confirmEmailField,omitempty"`
	FallbackEmailFields []string `json:"fallbackEmailFields,omitempty" yaml:"fallbackEmailFields,omitempty"`

	Sections []Section `json:"sections" yaml:"sections"`
}

// --- Section ---
type Section struct {
	ID           string     `json:"id" yaml:"id"`
	Title        string     `json:"title" yaml:"title"`
	Introduction string     `json:"introduction,omitempty" yaml:"introduction,omitempty"`
	Questions    []Question `json:"questions" yaml:"questions"`
}

// --- Question ---
type Question struct {
	ID               string           `json:"id" yaml:"id"`
	Text             string           `json:"text" yaml:"text"`
	Type             QuestionType     `json:"type" yaml:"type"`
	Options          []Option         `json:"options,omitempty" yaml:"options,omitempty"`
	Required         bool             `json:"required,omitempty" yaml:"required,omitempty"`
	ConditionalOn    string           `json:"conditionalOn,omitempty" yaml:"conditionalOn,omitempty"`
	ConditionalValue ConditionalValue `json:"conditionalValue,omitempty" yaml:"conditionalValue,omitempty"`
	Placeholder      string           `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	SelectMax        int              `json:"selectMax,omitempty" yaml:"selectMax,omitempty"`
}

// Option returns the option with the given id.
func (q Question) Option(id string) (Option, bool) {
	for _, o := range q.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// --- Option ---
type Option struct {
	ID      string `json:"id" yaml:"id"`
	Label   string `json:"label" yaml:"label"`
	Specify bool   `json:"specify,omitempty" yaml:"specify,omitempty"`
}

// ConditionalValue is the set of answers that make a conditional question
// visible. Definitions may write it as a single string or as a list.
type ConditionalValue []string

func (v *ConditionalValue) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*v = ConditionalValue{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("conditionalValue must be a string or a list of strings: %w", err)
	}
	*v = many
	return nil
}

func (v *ConditionalValue) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*v = ConditionalValue{node.Value}
		return nil
	case yaml.SequenceNode:
		var many []string
		if err := node.Decode(&many); err != nil {
			return err
		}
		*v = many
		return nil
	}
	return fmt.Errorf("conditionalValue must be a string or a list of strings (line %d)", node.Line)
}

// Question looks a question up by id across all sections.
func (d *SurveyDefinition) Question(id string) (Question, bool) {
	for _, s := range d.Sections {
		for _, q := range s.Questions {
			if q.ID == id {
				return q, true
			}
		}
	}
	return Question{}, false
}

// Questions returns every question in definition order.
func (d *SurveyDefinition) Questions() []Question {
	var out []Question
	for _, s := range d.Sections {
		out = append(out, s.Questions...)
	}
	return out
}

// SpecifyOption resolves a composite specify key back to its question and
// option. Keys are matched against the definition, so question ids that
// contain underscores are handled.
func (d *SurveyDefinition) SpecifyOption(key string) (Question, Option, bool) {
	for _, q := range d.Questions() {
		for _, o := range q.Options {
			if o.Specify && SpecifyKey(q.ID, o.ID) == key {
				return q, o, true
			}
		}
	}
	return Question{}, Option{}, false
}
