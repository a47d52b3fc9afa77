package jobs

import (
	"context"
	"errors"
	"time"

	"Backend-Retreat-Survey/src/logging"
	"Backend-Retreat-Survey/src/models"

	"github.com/hibiken/asynq"
)

const QueueEmail = "email"

type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueNotifier enqueues a confirmation email for each stored submission.
type QueueNotifier struct {
	client Enqueuer
}

func NewQueueNotifier(client Enqueuer) *QueueNotifier {
	return &QueueNotifier{client: client}
}

func (n *QueueNotifier) SubmissionCompleted(ctx context.Context, sub *models.Submission, def *models.SurveyDefinition) error {
	if sub.Email == nil || *sub.Email == "" {
		return nil
	}

	task, err := NewSubmissionConfirmationTask(SubmissionConfirmationPayload{
		SubmissionID:    sub.ID,
		SurveyID:        sub.SurveyID,
		Email:           *sub.Email,
		SurveyTitle:     def.Title,
		ThankYouMessage: def.ThankYouMessage,
	})
	if err != nil {
		return err
	}

	info, err := n.client.EnqueueContext(ctx, task,
		asynq.Queue(QueueEmail),
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second),
		// one confirmation per submission even if submit is retried
		asynq.TaskID("confirmation:"+sub.ID),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	if err != nil {
		return err
	}
	logging.Debugf("[jobs] enqueued %s id=%s queue=%s", info.Type, info.ID, info.Queue)
	return nil
}
