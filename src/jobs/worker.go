package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"Backend-Retreat-Survey/src/logging"

	"github.com/hibiken/asynq"
)

// HandleSubmissionConfirmation mails the thank-you message to the respondent.
func HandleSubmissionConfirmation(sender MailSender, now func() time.Time) asynq.HandlerFunc {
	if now == nil {
		now = time.Now
	}
	return func(ctx context.Context, t *asynq.Task) error {
		var p SubmissionConfirmationPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
		}
		to := strings.TrimSpace(p.Email)
		if to == "" {
			logging.Warnf("[jobs] confirmation for submission %s has no recipient, skipping", p.SubmissionID)
			return nil
		}

		html, err := RenderConfirmationEmailHTML(ConfirmationEmailData{
			SurveyTitle:     p.SurveyTitle,
			ThankYouMessage: p.ThankYouMessage,
			SubmissionID:    p.SubmissionID,
			SubmittedAt:     now().UTC().Format("02/01/2006 15:04 MST"),
		})
		if err != nil {
			return fmt.Errorf("render confirmation: %v: %w", err, asynq.SkipRetry)
		}

		if err := sender.Send(to, confirmationSubject(p.SurveyTitle), html); err != nil {
			logging.Errorf("[jobs] send confirmation submission=%s failed: %v", p.SubmissionID, err)
			return err
		}
		logging.Infof("[jobs] confirmation sent submission=%s", p.SubmissionID)
		return nil
	}
}

// NewServeMux registers every task handler of the worker.
func NewServeMux(sender MailSender) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Handle(TypeSubmissionConfirmation, HandleSubmissionConfirmation(sender, nil))
	return mux
}

// NewServer builds the worker server for the given redis connection.
func NewServer(opt asynq.RedisConnOpt) *asynq.Server {
	return asynq.NewServer(opt, asynq.Config{
		Concurrency: 5,
		Queues:      map[string]int{QueueEmail: 1},
		Logger:      logging.Logger,
	})
}
