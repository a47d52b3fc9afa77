package definition

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"Backend-Retreat-Survey/src/models"
	"Backend-Retreat-Survey/src/seeder"

	"gopkg.in/yaml.v3"
)

var ErrInvalidDefinition = errors.New("invalid survey definition")

// Default returns the embedded retreat survey.
func Default() (*models.SurveyDefinition, error) {
	return Parse(seeder.RetreatSurvey, ".yaml")
}

// DefaultMapping returns the embedded question id mapping.
func DefaultMapping() (map[string]int, error) {
	return ParseMapping(seeder.QuestionMapping, ".yaml")
}

// Load reads a definition from a .yaml, .yml or .json file and checks it.
func Load(path string) (*models.SurveyDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read survey definition: %w", err)
	}
	return Parse(data, filepath.Ext(path))
}

func LoadMapping(path string) (map[string]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question mapping: %w", err)
	}
	return ParseMapping(data, filepath.Ext(path))
}

func Parse(data []byte, ext string) (*models.SurveyDefinition, error) {
	var def models.SurveyDefinition
	if err := decode(data, ext, &def); err != nil {
		return nil, fmt.Errorf("parse survey definition: %w", err)
	}
	if err := Validate(&def); err != nil {
		return nil, err
	}
	return &def, nil
}

func ParseMapping(data []byte, ext string) (map[string]int, error) {
	mapping := map[string]int{}
	if err := decode(data, ext, &mapping); err != nil {
		return nil, fmt.Errorf("parse question mapping: %w", err)
	}
	for id, pid := range mapping {
		if pid <= 0 {
			return nil, fmt.Errorf("question mapping: %q has non-positive id %d", id, pid)
		}
	}
	return mapping, nil
}

func decode(data []byte, ext string, v any) error {
	switch strings.ToLower(ext) {
	case ".json":
		return json.Unmarshal(data, v)
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, v)
	}
	return fmt.Errorf("unsupported file extension %q", ext)
}

// Validate checks the structural invariants every other component relies on:
// unique question ids, conditions pointing backwards, selectMax only on
// checkboxes.
func Validate(def *models.SurveyDefinition) error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if len(def.Sections) == 0 {
		fail("survey has no sections")
	}

	// question id -> position in the survey
	type position struct{ section, index int }
	seen := map[string]position{}
	sectionIDs := map[string]bool{}
	for si, s := range def.Sections {
		if s.ID == "" {
			fail("section %d has no id", si)
		} else if sectionIDs[s.ID] {
			fail("duplicate section id %q", s.ID)
		}
		sectionIDs[s.ID] = true

		for qi, q := range s.Questions {
			if q.ID == "" {
				fail("section %q has a question without id", s.ID)
				continue
			}
			if _, dup := seen[q.ID]; dup {
				fail("duplicate question id %q", q.ID)
			}
			seen[q.ID] = position{si, qi}
		}
	}

	for si, s := range def.Sections {
		for qi, q := range s.Questions {
			if !q.Type.Valid() {
				fail("question %q: unknown type %q", q.ID, q.Type)
			}
			if q.Type.HasOptions() && len(q.Options) == 0 {
				fail("question %q: %s question needs options", q.ID, q.Type)
			}
			if !q.Type.HasOptions() && len(q.Options) > 0 {
				fail("question %q: %s question cannot have options", q.ID, q.Type)
			}
			optionIDs := map[string]bool{}
			for _, o := range q.Options {
				if o.ID == "" {
					fail("question %q: option without id", q.ID)
				} else if optionIDs[o.ID] {
					fail("question %q: duplicate option id %q", q.ID, o.ID)
				}
				optionIDs[o.ID] = true
			}
			if q.SelectMax < 0 {
				fail("question %q: selectMax must not be negative", q.ID)
			}
			if q.SelectMax > 0 && q.Type != models.Checkbox {
				fail("question %q: selectMax only applies to checkbox questions", q.ID)
			}

			switch {
			case q.ConditionalOn == "" && len(q.ConditionalValue) > 0:
				fail("question %q: conditionalValue without conditionalOn", q.ID)
			case q.ConditionalOn != "":
				dep, ok := seen[q.ConditionalOn]
				switch {
				case !ok:
					fail("question %q: conditionalOn references unknown question %q", q.ID, q.ConditionalOn)
				case q.ConditionalOn == q.ID:
					fail("question %q: conditionalOn references itself", q.ID)
				case dep.section > si:
					fail("question %q: conditionalOn references %q in a later section", q.ID, q.ConditionalOn)
				case dep.section == si && dep.index > qi:
					fail("question %q: conditionalOn references %q further down the section", q.ID, q.ConditionalOn)
				}
				if len(q.ConditionalValue) == 0 {
					fail("question %q: conditionalOn without conditionalValue", q.ID)
				}
			}
		}
	}

	for _, id := range emailFields(def) {
		q, ok := def.Question(id)
		if !ok {
			fail("email field %q is not a question", id)
		} else if q.Type != models.Email {
			fail("email field %q has type %q, want email", id, q.Type)
		}
	}
	if def.ConfirmEmailField != "" && def.PrimaryEmailField == "" {
		fail("confirmEmailField set without primaryEmailField")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDefinition, errors.Join(errs...))
	}
	return nil
}

func emailFields(def *models.SurveyDefinition) []string {
	var ids []string
	if def.PrimaryEmailField != "" {
		ids = append(ids, def.PrimaryEmailField)
	}
	if def.ConfirmEmailField != "" {
		ids = append(ids, def.ConfirmEmailField)
	}
	return append(ids, def.FallbackEmailFields...)
}
