package submission

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"Backend-Retreat-Survey/src/logging"
	"Backend-Retreat-Survey/src/models"
	"Backend-Retreat-Survey/src/services/survey"
)

// Sink is the remote store for finished surveys.
type Sink interface {
	// InsertSubmission stores the submission row and returns its new id.
	InsertSubmission(ctx context.Context, sub *models.Submission) (string, error)
	InsertResponses(ctx context.Context, responses []models.Response) error
}

// Notifier is told about every stored submission. Failures are logged and
// never fail the submit.
type Notifier interface {
	SubmissionCompleted(ctx context.Context, sub *models.Submission, def *models.SurveyDefinition) error
}

const defaultLockTTL = 30 * time.Second

// Pipeline turns a validated session into one Submission and its Responses.
//
// The writes happen in order: submission row, answer responses, specify
// responses. There is no transaction across them; a checkpoint stored with
// the session lets a retry continue with the same submission id after a
// failed response write.
type Pipeline struct {
	Sink     Sink
	Mapper   QuestionMapper
	SurveyID int
	Notifier Notifier
	LockTTL  time.Duration
	Now      func() time.Time
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now().UTC()
}

// Submit stores the session's answers. On any error the session keeps its
// answers so the respondent can retry.
func (p *Pipeline) Submit(ctx context.Context, s *survey.Session) (*models.Submission, error) {
	ttl := p.LockTTL
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	release, err := s.LockSubmit(ctx, ttl)
	if err != nil {
		if errors.Is(err, survey.ErrSubmitInFlight) {
			return nil, err
		}
		return nil, &RemoteError{Phase: "lock session", Err: err}
	}
	defer release()

	def := s.Definition()
	answers := s.Answers()
	specify := s.Specify()

	// last gate before an irreversible write
	if errs := survey.ValidateAll(def, answers, specify); len(errs) > 0 {
		return nil, &ValidationFailedError{Errors: errs}
	}

	now := p.now()
	answerRows, err := p.answerResponses(def, answers, now)
	if err != nil {
		return nil, err
	}
	specifyRows, err := p.specifyResponses(def, specify, now)
	if err != nil {
		return nil, err
	}

	log := logging.WithFields(logging.Fields{"session": s.ID(), "survey": p.SurveyID})

	sub := &models.Submission{
		SurveyID:  p.SurveyID,
		Email:     ResolveEmail(def, answers),
		CreatedAt: now,
	}
	digest, err := rowsDigest(sub.Email, answerRows, specifyRows)
	if err != nil {
		return nil, err
	}

	cp := s.Checkpoint()
	if cp != nil && cp.SubmissionID != "" && cp.Digest != digest {
		// the answers changed after a partial write; the old submission is
		// left incomplete and a new one is stored
		log.Warnf("[submission] answers changed since partial submission id=%s, starting a new one", cp.SubmissionID)
		cp = nil
	}
	if cp != nil && cp.SubmissionID != "" {
		sub.ID = cp.SubmissionID
		sub.CreatedAt = cp.CreatedAt
		log.Infof("[submission] resuming submission id=%s answersWritten=%t", cp.SubmissionID, cp.AnswersWritten)
	} else {
		id, err := p.Sink.InsertSubmission(ctx, sub)
		if err != nil {
			log.Errorf("[submission] insert submission failed: %v", err)
			return nil, &RemoteError{Phase: "insert submission", Err: err}
		}
		sub.ID = id
		cp = &models.SubmitCheckpoint{SubmissionID: id, Digest: digest, CreatedAt: sub.CreatedAt}
		p.saveCheckpoint(ctx, s, cp)
	}

	if !cp.AnswersWritten {
		if len(answerRows) > 0 {
			if err := p.Sink.InsertResponses(ctx, withSubmissionID(answerRows, sub.ID)); err != nil {
				log.Errorf("[submission] insert responses failed id=%s: %v", sub.ID, err)
				return nil, &RemoteError{Phase: "insert responses", Err: err}
			}
		}
		next := *cp
		next.AnswersWritten = true
		p.saveCheckpoint(ctx, s, &next)
	}

	if len(specifyRows) > 0 {
		if err := p.Sink.InsertResponses(ctx, withSubmissionID(specifyRows, sub.ID)); err != nil {
			log.Errorf("[submission] insert specify responses failed id=%s: %v", sub.ID, err)
			return nil, &RemoteError{Phase: "insert specify responses", Err: err}
		}
	}

	log.Infof("[submission] stored id=%s responses=%d specify=%d", sub.ID, len(answerRows), len(specifyRows))

	// everything is stored; failing here would invite a duplicate retry
	if err := s.Complete(ctx); err != nil {
		log.Errorf("[submission] clear progress failed id=%s: %v", sub.ID, err)
	}
	if p.Notifier != nil {
		if err := p.Notifier.SubmissionCompleted(ctx, sub, def); err != nil {
			log.Warnf("[submission] notify failed id=%s: %v", sub.ID, err)
		}
	}
	return sub, nil
}

func (p *Pipeline) saveCheckpoint(ctx context.Context, s *survey.Session, cp *models.SubmitCheckpoint) {
	if err := s.SetCheckpoint(ctx, cp); err != nil {
		// a lost checkpoint only costs idempotency on the next retry
		logging.Warnf("[submission] save checkpoint failed session=%s: %v", s.ID(), err)
	}
}

// answerResponses maps every answered question to a Response. Any question
// without a persisted id aborts the whole submission.
func (p *Pipeline) answerResponses(def *models.SurveyDefinition, answers models.Answers, now time.Time) ([]models.Response, error) {
	var rows []models.Response
	var missing []string

	for _, qid := range orderedAnswerIDs(def, answers) {
		a := answers[qid]
		if a.IsNull() {
			continue
		}
		pid, ok := p.Mapper.Lookup(qid)
		if !ok {
			missing = append(missing, qid)
			continue
		}
		rows = append(rows, models.Response{QuestionID: pid, Answer: a.Raw(), CreatedAt: now})
	}

	if len(missing) > 0 {
		return nil, &MappingError{QuestionIDs: missing}
	}
	return rows, nil
}

func (p *Pipeline) specifyResponses(def *models.SurveyDefinition, specify models.SpecifyValues, now time.Time) ([]models.Response, error) {
	keys := make([]string, 0, len(specify))
	for k := range specify {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var rows []models.Response
	var missing []string
	for _, key := range keys {
		value := strings.TrimSpace(specify[key])
		if value == "" {
			continue
		}
		qid, oid, ok := splitSpecifyKey(def, key)
		if !ok {
			missing = append(missing, key)
			continue
		}
		pid, ok := p.Mapper.Lookup(qid)
		if !ok {
			missing = append(missing, qid)
			continue
		}
		rows = append(rows, models.Response{
			QuestionID: pid,
			Answer:     models.SpecifyAnswer{OptionID: oid, SpecifyValue: value},
			CreatedAt:  now,
		})
	}

	if len(missing) > 0 {
		return nil, &MappingError{QuestionIDs: missing}
	}
	return rows, nil
}

// splitSpecifyKey resolves "{questionId}_{optionId}" against the definition
// first, then falls back to splitting at the last underscore.
func splitSpecifyKey(def *models.SurveyDefinition, key string) (string, string, bool) {
	if q, o, ok := def.SpecifyOption(key); ok {
		return q.ID, o.ID, true
	}
	i := strings.LastIndex(key, "_")
	if i <= 0 || i == len(key)-1 {
		return "", "", false
	}
	return key[:i], key[i+1:], true
}

// orderedAnswerIDs lists answer keys in definition order, followed by any
// keys the definition does not know, sorted.
func orderedAnswerIDs(def *models.SurveyDefinition, answers models.Answers) []string {
	ids := make([]string, 0, len(answers))
	known := map[string]bool{}
	for _, q := range def.Questions() {
		known[q.ID] = true
		if _, ok := answers[q.ID]; ok {
			ids = append(ids, q.ID)
		}
	}
	var extra []string
	for id := range answers {
		if !known[id] {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	return append(ids, extra...)
}

// rowsDigest fingerprints what a submission stores, ignoring ids and times.
func rowsDigest(email *string, batches ...[]models.Response) (string, error) {
	type row struct {
		QuestionID int `json:"q"`
		Answer     any `json:"a"`
	}
	payload := struct {
		Email *string `json:"email"`
		Rows  [][]row `json:"rows"`
	}{Email: email}
	for _, b := range batches {
		rows := make([]row, len(b))
		for i, r := range b {
			rows[i] = row{QuestionID: r.QuestionID, Answer: r.Answer}
		}
		payload.Rows = append(payload.Rows, rows)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("digest responses: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func withSubmissionID(rows []models.Response, id string) []models.Response {
	out := make([]models.Response, len(rows))
	for i, r := range rows {
		r.SubmissionID = id
		out[i] = r
	}
	return out
}

// ResolveEmail picks the respondent's address: the primary email field, then
// the confirmation field, then any fallback fields.
func ResolveEmail(def *models.SurveyDefinition, answers models.Answers) *string {
	fields := []string{def.PrimaryEmailField, def.ConfirmEmailField}
	fields = append(fields, def.FallbackEmailFields...)
	for _, f := range fields {
		if f == "" {
			continue
		}
		a := answers[f]
		if v := strings.TrimSpace(a.Text()); v != "" && !a.IsList() {
			return &v
		}
	}
	return nil
}
