package quiz

import (
	"log/slog"
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/quizflow/quiz-backend/pkg/quiz/analytics"
	"github.com/quizflow/quiz-backend/pkg/quiz/interpolation"
	"github.com/quizflow/quiz-backend/pkg/quiz/quizengine"
	quizTypes "github.com/quizflow/quiz-backend/pkg/quiz/types"
)

var (
	quizDBService QuizDBService
)

func Init(quizDB QuizDBService) {
	quizDBService = quizDB
}

// SubmitAnswerResult is the progression wire contract. An empty StepID means
// the session has been marked complete.
type SubmitAnswerResult struct {
	StepID    string  `json:"stepId,omitempty"`
	StepIndex *int    `json:"stepIndex,omitempty"`
	Message   string  `json:"message,omitempty"`
	Redirect  string  `json:"redirect,omitempty"`
	Score     float64 `json:"score,omitempty"`
}

// OnStartSession creates a new session for the quiz and returns it together
// with the quiz's entry step, interpolated and ready to render.
func OnStartSession(instanceID string, quizKey string) (session quizTypes.Session, entryStep quizTypes.Step, err error) {
	quiz, err := quizDBService.GetQuizByKey(instanceID, quizKey)
	if err != nil {
		return session, entryStep, err
	}

	entryStep, err = quizengine.FirstStep(quiz)
	if err != nil {
		return session, entryStep, err
	}

	session = quizTypes.Session{
		SessionID: uuid.NewString(),
		QuizKey:   quizKey,
		Answers:   map[string]interface{}{},
		CreatedAt: time.Now().Unix(),
	}
	session, err = quizDBService.CreateSession(instanceID, quizKey, session)
	if err != nil {
		return session, entryStep, err
	}

	entryStep = interpolation.InterpolateStep(entryStep, interpolation.CollectVariables(quiz, session))
	return session, entryStep, nil
}

// GetStepWithContext returns one step of the session's quiz with all
// {{variable}} placeholders resolved from the session's INPUT answers.
func GetStepWithContext(instanceID string, quizKey string, sessionID string, stepID string) (step quizTypes.Step, err error) {
	quiz, err := quizDBService.GetQuizByKey(instanceID, quizKey)
	if err != nil {
		return step, err
	}

	session, err := quizDBService.GetSessionBySessionID(instanceID, quizKey, sessionID)
	if err != nil {
		return step, err
	}

	step, err = findQuizStep(quiz, stepID)
	if err != nil {
		return step, err
	}

	return interpolation.InterpolateStep(step, interpolation.CollectVariables(quiz, session)), nil
}

// OnSubmitAnswer validates the submitted value, merges it into the session's
// answer map and resolves the next destination. Validation failures leave
// the session untouched. When resolution yields no next step (or a
// redirect), the session is marked complete before returning.
func OnSubmitAnswer(instanceID string, quizKey string, sessionID string, stepID string, value interface{}) (result SubmitAnswerResult, err error) {
	quiz, err := quizDBService.GetQuizByKey(instanceID, quizKey)
	if err != nil {
		return result, err
	}

	session, err := quizDBService.GetSessionBySessionID(instanceID, quizKey, sessionID)
	if err != nil {
		return result, err
	}

	step, err := findQuizStep(quiz, stepID)
	if err != nil {
		return result, err
	}

	if vErr := ValidateAnswer(step, value); vErr != nil {
		return result, vErr
	}

	previousValue, hadAnswer := session.Answers[stepID]

	// merge-by-key write: retried submissions for the same (step, value)
	// cannot corrupt state
	if err := quizDBService.SaveAnswer(instanceID, quizKey, sessionID, stepID, value); err != nil {
		return result, err
	}
	if session.Answers == nil {
		session.Answers = map[string]interface{}{}
	}
	session.Answers[stepID] = value

	if step.Type == quizTypes.STEP_TYPE_CAPTURE {
		if err := upsertLeadForSession(instanceID, quizKey, sessionID, value); err != nil {
			slog.Error("error upserting lead", slog.String("instanceID", instanceID), slog.String("quizKey", quizKey), slog.String("sessionID", sessionID), slog.String("error", err.Error()))
		}
	}

	resolution, err := quizengine.ResolveNextStep(quiz, session, stepID, value)
	if err != nil {
		return result, err
	}

	// a retried submission of the same (step, value) must not apply the
	// score delta again
	if resolution.ScoreDelta != 0 && !(hadAnswer && reflect.DeepEqual(previousValue, value)) {
		if err := quizDBService.AddToSessionScore(instanceID, quizKey, sessionID, resolution.ScoreDelta); err != nil {
			return result, err
		}
		session.Score += resolution.ScoreDelta
	}

	result = SubmitAnswerResult{
		Message:  resolution.Message,
		Redirect: resolution.RedirectURL,
		Score:    session.Score,
	}

	if resolution.RedirectURL != "" || !resolution.HasNextStep {
		// the session ends here, either by redirect or by running past the
		// last step
		if err := quizDBService.MarkSessionCompleted(instanceID, quizKey, sessionID); err != nil {
			return result, err
		}
		return result, nil
	}

	stepIndex := resolution.StepIndex
	result.StepID = resolution.NextStepID
	result.StepIndex = &stepIndex
	return result, nil
}

// GetFunnelStats computes the funnel view for a quiz from a single fetch of
// its session set.
func GetFunnelStats(instanceID string, quizKey string) (stats analytics.FunnelStats, err error) {
	quiz, err := quizDBService.GetQuizByKey(instanceID, quizKey)
	if err != nil {
		return stats, err
	}

	sessions, err := quizDBService.GetSessionsByQuiz(instanceID, quizKey)
	if err != nil {
		return stats, err
	}

	return analytics.ComputeFunnel(quiz, sessions), nil
}

func upsertLeadForSession(instanceID string, quizKey string, sessionID string, value interface{}) error {
	data, ok := parseLeadData(value)
	if !ok {
		// validation guarantees the shape, nothing to store otherwise
		return nil
	}

	lead, err := quizDBService.UpsertLead(instanceID, quizKey, sessionID, data)
	if err != nil {
		return err
	}

	return quizDBService.SetSessionLead(instanceID, quizKey, sessionID, lead.LeadID)
}

func findQuizStep(quiz quizTypes.Quiz, stepID string) (step quizTypes.Step, err error) {
	if len(quiz.Steps) == 0 {
		return step, quizengine.ErrEmptyQuiz
	}
	for _, s := range quiz.Steps {
		if s.StepID == stepID {
			return s, nil
		}
	}
	return step, quizengine.ErrStepNotFound
}
