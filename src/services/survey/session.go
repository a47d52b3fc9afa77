package survey

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Backend-Retreat-Survey/src/logging"
	"Backend-Retreat-Survey/src/models"
)

var (
	ErrUnknownQuestion   = errors.New("unknown question")
	ErrUnknownOption     = errors.New("unknown option")
	ErrWrongQuestionType = errors.New("operation does not match question type")
	ErrNotSpecifiable    = errors.New("option does not take a specify value")
)

// Session is one respondent's pass through the survey: the answer state,
// the section cursor and the last validation result. A Session is not safe
// for concurrent use; every mutation is written through to the store.
type Session struct {
	id    string
	def   *models.SurveyDefinition
	store ProgressStore

	answers    models.Answers
	specify    models.SpecifyValues
	errors     models.ValidationErrors
	index      int
	checkpoint *models.SubmitCheckpoint
	submitted  bool
}

// OpenSession loads the stored progress for id, or starts empty.
func OpenSession(ctx context.Context, id string, def *models.SurveyDefinition, store ProgressStore) (*Session, error) {
	p, err := store.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	s := &Session{
		id:         id,
		def:        def,
		store:      store,
		answers:    p.Answers,
		specify:    p.Specify,
		errors:     models.ValidationErrors{},
		index:      p.SectionIndex,
		checkpoint: p.Checkpoint,
	}
	if s.answers == nil {
		s.answers = models.Answers{}
	}
	if s.specify == nil {
		s.specify = models.SpecifyValues{}
	}
	// the definition may have shrunk since the progress was saved
	if s.index < 0 || s.index >= len(def.Sections) {
		s.index = 0
	}
	return s, nil
}

func (s *Session) ID() string                           { return s.id }
func (s *Session) Definition() *models.SurveyDefinition { return s.def }
func (s *Session) Answers() models.Answers              { return s.answers.Clone() }
func (s *Session) Specify() models.SpecifyValues        { return s.specify.Clone() }
func (s *Session) Checkpoint() *models.SubmitCheckpoint { return s.checkpoint }
func (s *Session) Submitted() bool                      { return s.submitted }

// Errors returns the result of the last validation pass.
func (s *Session) Errors() models.ValidationErrors {
	out := make(models.ValidationErrors, len(s.errors))
	for k, v := range s.errors {
		out[k] = v
	}
	return out
}

// --------- Answer mutations ---------

func (s *Session) question(id string, types ...models.QuestionType) (models.Question, error) {
	q, ok := s.def.Question(id)
	if !ok {
		return q, fmt.Errorf("%w: %q", ErrUnknownQuestion, id)
	}
	for _, t := range types {
		if q.Type == t {
			return q, nil
		}
	}
	return q, fmt.Errorf("%w: %q is a %s question", ErrWrongQuestionType, id, q.Type)
}

// SetRadio selects a single option of a radio question.
func (s *Session) SetRadio(ctx context.Context, questionID, value string) error {
	q, err := s.question(questionID, models.Radio)
	if err != nil {
		return err
	}
	if _, ok := q.Option(value); !ok {
		return fmt.Errorf("%w: %q has no option %q", ErrUnknownOption, questionID, value)
	}
	s.answers[questionID] = models.TextAnswer(value)
	return s.persist(ctx)
}

// SetText overwrites the answer of a text, textarea or email question.
func (s *Session) SetText(ctx context.Context, questionID, value string) error {
	if _, err := s.question(questionID, models.Text, models.Textarea, models.Email); err != nil {
		return err
	}
	s.answers[questionID] = models.TextAnswer(value)
	return s.persist(ctx)
}

// SetCheckbox checks or unchecks one option. Checking beyond the question's
// selectMax leaves the selection unchanged and reports applied=false.
func (s *Session) SetCheckbox(ctx context.Context, questionID, optionID string, checked bool) (applied bool, err error) {
	q, err := s.question(questionID, models.Checkbox)
	if err != nil {
		return false, err
	}
	if _, ok := q.Option(optionID); !ok {
		return false, fmt.Errorf("%w: %q has no option %q", ErrUnknownOption, questionID, optionID)
	}

	current := s.answers[questionID]
	selected := current.List()

	if checked {
		if current.Contains(optionID) {
			return true, nil
		}
		if q.SelectMax > 0 && len(selected) >= q.SelectMax {
			logging.Debugf("[survey] session=%s question=%s selectMax=%d reached, option %s ignored",
				s.id, questionID, q.SelectMax, optionID)
			return false, nil
		}
		selected = append(selected, optionID)
	} else {
		kept := selected[:0]
		for _, id := range selected {
			if id != optionID {
				kept = append(kept, id)
			}
		}
		selected = kept
	}

	s.answers[questionID] = models.ListAnswer(selected...)
	return true, s.persist(ctx)
}

// SetSpecify stores the free-text value of a specify option.
func (s *Session) SetSpecify(ctx context.Context, questionID, optionID, value string) error {
	q, err := s.question(questionID, models.Radio, models.Checkbox)
	if err != nil {
		return err
	}
	o, ok := q.Option(optionID)
	if !ok {
		return fmt.Errorf("%w: %q has no option %q", ErrUnknownOption, questionID, optionID)
	}
	if !o.Specify {
		return fmt.Errorf("%w: %s", ErrNotSpecifiable, models.SpecifyKey(questionID, optionID))
	}
	s.specify[models.SpecifyKey(questionID, optionID)] = value
	return s.persist(ctx)
}

func (s *Session) persist(ctx context.Context) error {
	return s.store.SaveAnswers(ctx, s.id, s.answers, s.specify)
}

// --------- Navigation ---------

func (s *Session) CurrentIndex() int { return s.index }

func (s *Session) TotalSections() int { return len(s.def.Sections) }

func (s *Session) CurrentSection() models.Section { return s.def.Sections[s.index] }

func (s *Session) IsLastSection() bool { return s.index == len(s.def.Sections)-1 }

// Progress is the percentage of sections reached, counting the current one.
func (s *Session) Progress() float64 {
	return float64(s.index+1) / float64(len(s.def.Sections)) * 100
}

// VisibleQuestions returns the current section's rendered questions.
func (s *Session) VisibleQuestions() []models.Question {
	return VisibleQuestions(s.CurrentSection(), s.answers)
}

// Validate runs the validator on the current section and keeps the result.
func (s *Session) Validate() models.ValidationErrors {
	s.errors = ValidateSection(s.def, s.CurrentSection(), s.answers, s.specify)
	return s.Errors()
}

// Next validates the current section and advances when it is clean. It
// reports false, leaving the index alone, when validation fails. On the last
// section a clean validation does not move the cursor; submitting is a
// separate step.
func (s *Session) Next(ctx context.Context) (bool, error) {
	if len(s.Validate()) > 0 {
		return false, nil
	}
	if s.IsLastSection() {
		return true, nil
	}
	s.index++
	return true, s.store.SaveSection(ctx, s.id, s.index)
}

// Previous steps back without validating the section being left.
func (s *Session) Previous(ctx context.Context) error {
	s.errors = models.ValidationErrors{}
	if s.index == 0 {
		return nil
	}
	s.index--
	return s.store.SaveSection(ctx, s.id, s.index)
}

// Reset clears all answers and purges the store.
func (s *Session) Reset(ctx context.Context) error {
	s.clearLocal()
	return s.store.Clear(ctx, s.id)
}

func (s *Session) clearLocal() {
	s.answers = models.Answers{}
	s.specify = models.SpecifyValues{}
	s.errors = models.ValidationErrors{}
	s.index = 0
	s.checkpoint = nil
}

// --------- Submission support ---------

// SetCheckpoint records submission progress durably.
func (s *Session) SetCheckpoint(ctx context.Context, cp *models.SubmitCheckpoint) error {
	if err := s.store.SaveCheckpoint(ctx, s.id, cp); err != nil {
		return err
	}
	s.checkpoint = cp
	return nil
}

// LockSubmit guards against two submits of the same session running at once.
func (s *Session) LockSubmit(ctx context.Context, ttl time.Duration) (func(), error) {
	return s.store.AcquireSubmitLock(ctx, s.id, ttl)
}

// Complete discards the local state after a successful submission.
func (s *Session) Complete(ctx context.Context) error {
	if err := s.store.Clear(ctx, s.id); err != nil {
		return err
	}
	s.clearLocal()
	s.submitted = true
	return nil
}
