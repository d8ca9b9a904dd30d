package quizengine

import (
	"errors"

	quizTypes "github.com/quizflow/quiz-backend/pkg/quiz/types"
)

var (
	ErrEmptyQuiz    = errors.New("quiz has no steps")
	ErrStepNotFound = errors.New("step not found in quiz")
)

// EvalContext contains all the data branching rule conditions can look up.
// Resolution is a pure function of the quiz definition, the submitted value
// and the session's accumulated score.
type EvalContext struct {
	Quiz           quizTypes.Quiz
	CurrentStep    quizTypes.Step
	SubmittedValue interface{}
	Score          float64
}

// NextStepResult is the outcome of resolving the step after CurrentStep.
// HasNextStep false means the caller must mark the session complete.
type NextStepResult struct {
	NextStepID  string
	StepIndex   int
	HasNextStep bool
	RedirectURL string
	Message     string
	ScoreDelta  float64
}
