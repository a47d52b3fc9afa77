package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Answer holds a single question's answer: a string, a list of option ids,
// or nothing. It encodes to JSON as exactly one of those shapes.
type Answer struct {
	text   string
	list   []string
	isList bool
	set    bool
}

func TextAnswer(s string) Answer {
	return Answer{text: s, set: true}
}

func ListAnswer(ids ...string) Answer {
	list := make([]string, len(ids))
	copy(list, ids)
	return Answer{list: list, isList: true, set: true}
}

// IsNull reports whether the answer is absent.
func (a Answer) IsNull() bool { return !a.set }

func (a Answer) IsList() bool { return a.isList }

func (a Answer) Text() string { return a.text }

// List returns a copy of the selected option ids.
func (a Answer) List() []string {
	out := make([]string, len(a.list))
	copy(out, a.list)
	return out
}

// Empty is the required-field notion of emptiness: no selection for lists,
// missing or whitespace-only for text.
func (a Answer) Empty() bool {
	if !a.set {
		return true
	}
	if a.isList {
		return len(a.list) == 0
	}
	return strings.TrimSpace(a.text) == ""
}

// Contains reports whether value is the scalar answer or one of the list
// elements.
func (a Answer) Contains(value string) bool {
	if !a.set {
		return false
	}
	if a.isList {
		for _, v := range a.list {
			if v == value {
				return true
			}
		}
		return false
	}
	return a.text == value
}

// Raw returns the answer as a plain value for persistence.
func (a Answer) Raw() any {
	switch {
	case !a.set:
		return nil
	case a.isList:
		return a.List()
	default:
		return a.text
	}
}

func (a Answer) Equal(b Answer) bool {
	if a.set != b.set || a.isList != b.isList || a.text != b.text || len(a.list) != len(b.list) {
		return false
	}
	for i := range a.list {
		if a.list[i] != b.list[i] {
			return false
		}
	}
	return true
}

func (a Answer) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Raw())
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = Answer{}
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("answer list: %w", err)
		}
		*a = ListAnswer(list...)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("answer must be a string, a list of strings or null: %w", err)
	}
	*a = TextAnswer(s)
	return nil
}

// Answers is the in-progress AnswersState, keyed by question id.
type Answers map[string]Answer

func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// SpecifyValues is the in-progress SpecifyState, keyed by SpecifyKey.
type SpecifyValues map[string]string

func (s SpecifyValues) Clone() SpecifyValues {
	out := make(SpecifyValues, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

func SpecifyKey(questionID, optionID string) string {
	return questionID + "_" + optionID
}

// ValidationErrors maps a question id or specify key to a message.
type ValidationErrors map[string]string
