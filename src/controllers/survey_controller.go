package controllers

import (
	"context"
	"errors"

	"Backend-Retreat-Survey/src/logging"
	"Backend-Retreat-Survey/src/middleware"
	"Backend-Retreat-Survey/src/models"
	"Backend-Retreat-Survey/src/services/submission"
	"Backend-Retreat-Survey/src/services/survey"
	"Backend-Retreat-Survey/src/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	msgSaveFailed   = "We couldn't save your answer. Please try again."
	msgLoadFailed   = "We couldn't load your answers. Please try again."
	msgSectionError = "Please correct the highlighted answers."
)

// Submitter stores a finished session.
type Submitter interface {
	Submit(ctx context.Context, s *survey.Session) (*models.Submission, error)
}

type SurveyController struct {
	Definition *models.SurveyDefinition
	Store      survey.ProgressStore
	Submitter  Submitter
}

func NewSurveyController(def *models.SurveyDefinition, store survey.ProgressStore, submitter Submitter) *SurveyController {
	return &SurveyController{Definition: def, Store: store, Submitter: submitter}
}

func (sc *SurveyController) open(c *fiber.Ctx) (*survey.Session, error) {
	return survey.OpenSession(c.UserContext(), middleware.SessionID(c), sc.Definition, sc.Store)
}

func (sc *SurveyController) state(s *survey.Session) models.SessionState {
	visible := s.VisibleQuestions()
	ids := make([]string, len(visible))
	for i, q := range visible {
		ids[i] = q.ID
	}
	return models.SessionState{
		SessionID:        s.ID(),
		SectionIndex:     s.CurrentIndex(),
		TotalSections:    s.TotalSections(),
		Progress:         s.Progress(),
		Section:          s.CurrentSection(),
		VisibleQuestions: ids,
		Answers:          s.Answers(),
		Specify:          s.Specify(),
		Errors:           s.Errors(),
	}
}

// mutationError maps session errors to HTTP responses.
func mutationError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, survey.ErrUnknownQuestion),
		errors.Is(err, survey.ErrUnknownOption),
		errors.Is(err, survey.ErrWrongQuestionType),
		errors.Is(err, survey.ErrNotSpecifiable):
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	default:
		logging.Errorf("[survey] session=%s store write failed: %v", middleware.SessionID(c), err)
		return utils.HandleError(c, fiber.StatusServiceUnavailable, msgSaveFailed)
	}
}

func loadError(c *fiber.Ctx, err error) error {
	logging.Errorf("[survey] session=%s load failed: %v", middleware.SessionID(c), err)
	return utils.HandleError(c, fiber.StatusServiceUnavailable, msgLoadFailed)
}

// GetDefinition godoc
// @Summary      Get the survey definition
// @Tags         survey
// @Produce      json
// @Success      200  {object}  models.SurveyDefinition
// @Router       /api/survey/definition [get]
func (sc *SurveyController) GetDefinition(c *fiber.Ctx) error {
	return c.JSON(sc.Definition)
}

// CreateSession godoc
// @Summary      Start a new survey session
// @Tags         survey
// @Produce      json
// @Success      201  {object}  models.SessionState
// @Failure      503  {object}  models.ErrorResponse
// @Router       /api/survey/sessions [post]
func (sc *SurveyController) CreateSession(c *fiber.Ctx) error {
	id := uuid.NewString()
	s, err := survey.OpenSession(c.UserContext(), id, sc.Definition, sc.Store)
	if err != nil {
		return loadError(c, err)
	}
	logging.Debugf("[survey] session=%s created", id)
	return c.Status(fiber.StatusCreated).JSON(sc.state(s))
}

// GetSession godoc
// @Summary      Get the state of a session
// @Description  Unknown session ids load as an empty session.
// @Tags         survey
// @Produce      json
// @Param        id   path  string  true  "Session ID"
// @Success      200  {object}  models.SessionState
// @Failure      400  {object}  models.ErrorResponse
// @Failure      503  {object}  models.ErrorResponse
// @Router       /api/survey/sessions/{id} [get]
func (sc *SurveyController) GetSession(c *fiber.Ctx) error {
	s, err := sc.open(c)
	if err != nil {
		return loadError(c, err)
	}
	return c.JSON(sc.state(s))
}

// SetAnswer godoc
// @Summary      Set the answer of a radio, text, textarea or email question
// @Tags         survey
// @Accept       json
// @Produce      json
// @Param        id          path  string                   true  "Session ID"
// @Param        questionId  path  string                   true  "Question ID"
// @Param        body        body  models.SetAnswerRequest  true  "Answer"
// @Success      200  {object}  models.SessionState
// @Failure      400  {object}  models.ErrorResponse
// @Failure      503  {object}  models.ErrorResponse
// @Router       /api/survey/sessions/{id}/answers/{questionId} [put]
func (sc *SurveyController) SetAnswer(c *fiber.Ctx) error {
	var req models.SetAnswerRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	s, err := sc.open(c)
	if err != nil {
		return loadError(c, err)
	}

	qid := c.Params("questionId")
	q, ok := sc.Definition.Question(qid)
	if !ok {
		return utils.HandleError(c, fiber.StatusBadRequest, survey.ErrUnknownQuestion.Error()+": "+qid)
	}
	if q.Type == models.Radio {
		err = s.SetRadio(c.UserContext(), qid, *req.Value)
	} else {
		err = s.SetText(c.UserContext(), qid, *req.Value)
	}
	if err != nil {
		return mutationError(c, err)
	}
	return c.JSON(sc.state(s))
}

// SetOption godoc
// @Summary      Check or uncheck one checkbox option
// @Description  Checking beyond the question's selection limit leaves the answer unchanged.
// @Tags         survey
// @Accept       json
// @Produce      json
// @Param        id          path  string                   true  "Session ID"
// @Param        questionId  path  string                   true  "Question ID"
// @Param        optionId    path  string                   true  "Option ID"
// @Param        body        body  models.SetOptionRequest  true  "Checked"
// @Success      200  {object}  models.SessionState
// @Failure      400  {object}  models.ErrorResponse
// @Failure      503  {object}  models.ErrorResponse
// @Router       /api/survey/sessions/{id}/answers/{questionId}/options/{optionId} [post]
func (sc *SurveyController) SetOption(c *fiber.Ctx) error {
	var req models.SetOptionRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	s, err := sc.open(c)
	if err != nil {
		return loadError(c, err)
	}

	if _, err := s.SetCheckbox(c.UserContext(), c.Params("questionId"), c.Params("optionId"), *req.Checked); err != nil {
		return mutationError(c, err)
	}
	return c.JSON(sc.state(s))
}

// SetSpecify godoc
// @Summary      Set the free-text value of a specify option
// @Tags         survey
// @Accept       json
// @Produce      json
// @Param        id          path  string                    true  "Session ID"
// @Param        questionId  path  string                    true  "Question ID"
// @Param        optionId    path  string                    true  "Option ID"
// @Param        body        body  models.SetSpecifyRequest  true  "Specify value"
// @Success      200  {object}  models.SessionState
// @Failure      400  {object}  models.ErrorResponse
// @Failure      503  {object}  models.ErrorResponse
// @Router       /api/survey/sessions/{id}/answers/{questionId}/options/{optionId}/specify [put]
func (sc *SurveyController) SetSpecify(c *fiber.Ctx) error {
	var req models.SetSpecifyRequest
	if err := utils.ParseBody(c, &req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	s, err := sc.open(c)
	if err != nil {
		return loadError(c, err)
	}

	if err := s.SetSpecify(c.UserContext(), c.Params("questionId"), c.Params("optionId"), req.Value); err != nil {
		return mutationError(c, err)
	}
	return c.JSON(sc.state(s))
}

// Next godoc
// @Summary      Validate the current section and advance
// @Tags         survey
// @Produce      json
// @Param        id   path  string  true  "Session ID"
// @Success      200  {object}  models.SessionState
// @Failure      422  {object}  models.ErrorResponse
// @Failure      503  {object}  models.ErrorResponse
// @Router       /api/survey/sessions/{id}/next [post]
func (sc *SurveyController) Next(c *fiber.Ctx) error {
	s, err := sc.open(c)
	if err != nil {
		return loadError(c, err)
	}

	ok, err := s.Next(c.UserContext())
	if err != nil {
		return mutationError(c, err)
	}
	if !ok {
		return utils.HandleValidationError(c, msgSectionError, s.Errors())
	}
	return c.JSON(sc.state(s))
}

// Previous godoc
// @Summary      Go back one section without validating
// @Tags         survey
// @Produce      json
// @Param        id   path  string  true  "Session ID"
// @Success      200  {object}  models.SessionState
// @Failure      503  {object}  models.ErrorResponse
// @Router       /api/survey/sessions/{id}/previous [post]
func (sc *SurveyController) Previous(c *fiber.Ctx) error {
	s, err := sc.open(c)
	if err != nil {
		return loadError(c, err)
	}
	if err := s.Previous(c.UserContext()); err != nil {
		return mutationError(c, err)
	}
	return c.JSON(sc.state(s))
}

// Reset godoc
// @Summary      Clear every answer of the session
// @Tags         survey
// @Produce      json
// @Param        id   path  string  true  "Session ID"
// @Success      200  {object}  models.SessionState
// @Failure      503  {object}  models.ErrorResponse
// @Router       /api/survey/sessions/{id}/reset [post]
func (sc *SurveyController) Reset(c *fiber.Ctx) error {
	s, err := sc.open(c)
	if err != nil {
		return loadError(c, err)
	}
	if err := s.Reset(c.UserContext()); err != nil {
		return mutationError(c, err)
	}
	return c.JSON(sc.state(s))
}

// Submit godoc
// @Summary      Submit the survey
// @Description  Validates every section, then stores one submission with its responses.
// @Tags         survey
// @Produce      json
// @Param        id   path  string  true  "Session ID"
// @Success      200  {object}  models.SubmitResponse
// @Failure      409  {object}  models.ErrorResponse
// @Failure      422  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Failure      503  {object}  models.ErrorResponse
// @Router       /api/survey/sessions/{id}/submit [post]
func (sc *SurveyController) Submit(c *fiber.Ctx) error {
	s, err := sc.open(c)
	if err != nil {
		return loadError(c, err)
	}

	sub, err := sc.Submitter.Submit(c.UserContext(), s)
	if err != nil {
		return submitError(c, err)
	}

	return c.JSON(models.SubmitResponse{
		SubmissionID:    sub.ID,
		ThankYouMessage: sc.Definition.ThankYouMessage,
	})
}

func submitError(c *fiber.Ctx, err error) error {
	msg := submission.UserMessage(err)

	var vErr *submission.ValidationFailedError
	switch {
	case errors.As(err, &vErr):
		return utils.HandleValidationError(c, msg, vErr.Errors)
	case errors.Is(err, survey.ErrSubmitInFlight):
		return utils.HandleError(c, fiber.StatusConflict, msg)
	case errors.Is(err, submission.ErrIntegrity):
		logging.Errorf("[survey] session=%s submit integrity error: %v", middleware.SessionID(c), err)
		return utils.HandleError(c, fiber.StatusInternalServerError, msg)
	default:
		logging.Errorf("[survey] session=%s submit failed: %v", middleware.SessionID(c), err)
		return utils.HandleError(c, fiber.StatusServiceUnavailable, msg)
	}
}

// Healthz godoc
// @Summary      Liveness probe
// @Tags         health
// @Produce      plain
// @Success      200  {string}  string  "ok"
// @Router       /healthz [get]
func Healthz(c *fiber.Ctx) error {
	return c.SendString("ok")
}
