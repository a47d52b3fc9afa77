package submission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Backend-Retreat-Survey/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	SubmissionsCollection = "survey_submissions"
	ResponsesCollection   = "survey_responses"

	duplicateKeyCode = 11000
)

// MongoSink writes submissions and responses to two collections.
type MongoSink struct {
	submissions *mongo.Collection
	responses   *mongo.Collection
}

func NewMongoSink(db *mongo.Database) *MongoSink {
	return &MongoSink{
		submissions: db.Collection(SubmissionsCollection),
		responses:   db.Collection(ResponsesCollection),
	}
}

type submissionDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	SurveyID  int                `bson:"surveyId"`
	Email     *string            `bson:"email"`
	CreatedAt time.Time          `bson:"createdAt"`
}

type responseDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	SubmissionID primitive.ObjectID `bson:"submissionId"`
	QuestionID   int                `bson:"questionId"`
	OptionID     string             `bson:"optionId"`
	Answer       any                `bson:"answer"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

// EnsureIndexes creates the unique index of responses by submission. A
// response row is keyed by its question and, for specify rows, its option.
func (m *MongoSink) EnsureIndexes(ctx context.Context) error {
	_, err := m.responses.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "submissionId", Value: 1},
			{Key: "questionId", Value: 1},
			{Key: "optionId", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName("submission_question_option"),
	})
	return err
}

func (m *MongoSink) InsertSubmission(ctx context.Context, sub *models.Submission) (string, error) {
	doc := submissionDoc{
		ID:        primitive.NewObjectID(),
		SurveyID:  sub.SurveyID,
		Email:     sub.Email,
		CreatedAt: sub.CreatedAt,
	}

	res, err := m.submissions.InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (m *MongoSink) InsertResponses(ctx context.Context, responses []models.Response) error {
	if len(responses) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(responses))
	for _, r := range responses {
		sid, err := primitive.ObjectIDFromHex(r.SubmissionID)
		if err != nil {
			return fmt.Errorf("invalid submission id %q: %w", r.SubmissionID, err)
		}
		doc := responseDoc{
			ID:           primitive.NewObjectID(),
			SubmissionID: sid,
			QuestionID:   r.QuestionID,
			Answer:       r.Answer,
			CreatedAt:    r.CreatedAt,
		}
		if sa, ok := r.Answer.(models.SpecifyAnswer); ok {
			doc.OptionID = sa.OptionID
		}
		docs = append(docs, doc)
	}

	// Unordered so a retry after a partial write inserts the missing rows and
	// skips the ones already stored.
	res, err := m.responses.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil {
		if onlyDuplicates(err) {
			return nil
		}
		return err
	}
	if len(res.InsertedIDs) != len(docs) {
		return errors.New("not all responses were inserted")
	}
	return nil
}

// onlyDuplicates reports whether every failed write hit the unique index.
func onlyDuplicates(err error) bool {
	var bwe mongo.BulkWriteException
	if !errors.As(err, &bwe) || bwe.WriteConcernError != nil || len(bwe.WriteErrors) == 0 {
		return false
	}
	for _, we := range bwe.WriteErrors {
		if we.Code != duplicateKeyCode {
			return false
		}
	}
	return true
}
