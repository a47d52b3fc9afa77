package submission

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"Backend-Retreat-Survey/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS survey_submissions (
	id         BIGSERIAL PRIMARY KEY,
	survey_id  INTEGER NOT NULL,
	email      TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS survey_responses (
	id            BIGSERIAL PRIMARY KEY,
	submission_id BIGINT NOT NULL REFERENCES survey_submissions (id),
	question_id   INTEGER NOT NULL,
	answer        JSONB NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS survey_responses_submission_id_idx ON survey_responses (submission_id);
`

// PgxConn is the part of *pgxpool.Pool the sink needs.
type PgxConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PostgresSink writes to the relational schema above. Each response batch is
// inserted in its own transaction.
type PostgresSink struct {
	db PgxConn
}

func NewPostgresSink(db PgxConn) *PostgresSink {
	return &PostgresSink{db: db}
}

func (p *PostgresSink) EnsureSchema(ctx context.Context) error {
	_, err := p.db.Exec(ctx, postgresSchema)
	return err
}

func (p *PostgresSink) InsertSubmission(ctx context.Context, sub *models.Submission) (string, error) {
	var id int64
	err := p.db.QueryRow(ctx, `
		INSERT INTO survey_submissions (survey_id, email, created_at)
		VALUES ($1, $2, $3)
		RETURNING id`,
		sub.SurveyID,
		sub.Email,
		sub.CreatedAt,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(id, 10), nil
}

func (p *PostgresSink) InsertResponses(ctx context.Context, responses []models.Response) error {
	if len(responses) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, r := range responses {
		sid, err := strconv.ParseInt(r.SubmissionID, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid submission id %q: %w", r.SubmissionID, err)
		}
		answer, err := json.Marshal(r.Answer)
		if err != nil {
			return fmt.Errorf("encode answer for question %d: %w", r.QuestionID, err)
		}
		batch.Queue(`
			INSERT INTO survey_responses (submission_id, question_id, answer, created_at)
			VALUES ($1, $2, $3::jsonb, $4)`,
			sid, r.QuestionID, string(answer), r.CreatedAt,
		)
	}

	return pgx.BeginFunc(ctx, p.db, func(tx pgx.Tx) error {
		return tx.SendBatch(ctx, batch).Close()
	})
}
