package quizengine

import (
	"log/slog"

	quizTypes "github.com/quizflow/quiz-backend/pkg/quiz/types"
)

// ResolveNextStep evaluates the branching rules of the step that was just
// answered and determines where the session goes next. Rules are evaluated
// in their declared order and the first matching rule wins; without a match
// the session moves to the step directly following in quiz order. A result
// with HasNextStep false tells the caller to mark the session complete.
func ResolveNextStep(quiz quizTypes.Quiz, session quizTypes.Session, currentStepID string, submittedValue interface{}) (result NextStepResult, err error) {
	if len(quiz.Steps) == 0 {
		return result, ErrEmptyQuiz
	}

	currentStep, currentIndex, err := findStep(quiz, currentStepID)
	if err != nil {
		return result, err
	}

	evalCtx := EvalContext{
		Quiz:           quiz,
		CurrentStep:    currentStep,
		SubmittedValue: submittedValue,
		Score:          session.Score,
	}

	for _, rule := range currentStep.Rules {
		matched, err := evalCtx.RuleMatches(rule)
		if err != nil {
			slog.Debug("unexpected error during rule eval", slog.String("quizKey", quiz.QuizKey), slog.String("stepID", currentStepID), slog.String("error", err.Error()))
			continue
		}
		if !matched {
			continue
		}

		result, handled := applyRuleAction(quiz, currentStep, currentIndex, rule.Action)
		if handled {
			return result, nil
		}
		// unhandled action falls back to the default destination
		break
	}

	return defaultNextStep(quiz, currentStep, 0), nil
}

// applyRuleAction turns a matched rule into a resolution result. It reports
// handled false when the action cannot be applied (e.g. the rule routes to a
// step id that does not exist), so that resolution falls back to the default
// next-in-order step.
func applyRuleAction(quiz quizTypes.Quiz, currentStep quizTypes.Step, currentIndex int, action quizTypes.RuleAction) (result NextStepResult, handled bool) {
	switch action.Type {
	case quizTypes.RULE_ACTION_GO_TO_STEP:
		target, index, err := findStep(quiz, action.TargetStepID)
		if err != nil {
			slog.Warn("branching rule targets unknown step", slog.String("quizKey", quiz.QuizKey), slog.String("stepID", currentStep.StepID), slog.String("targetStepID", action.TargetStepID))
			return result, false
		}
		return NextStepResult{
			NextStepID:  target.StepID,
			StepIndex:   index,
			HasNextStep: true,
		}, true
	case quizTypes.RULE_ACTION_REDIRECT:
		// a redirect ends the interaction, the caller completes the session
		return NextStepResult{
			RedirectURL: action.URL,
		}, true
	case quizTypes.RULE_ACTION_SHOW_MESSAGE:
		// informational only: the session keeps its current position
		return NextStepResult{
			NextStepID:  currentStep.StepID,
			StepIndex:   currentIndex,
			HasNextStep: true,
			Message:     action.Message,
		}, true
	case quizTypes.RULE_ACTION_ADD_SCORE:
		result = defaultNextStep(quiz, currentStep, action.ScoreDelta)
		return result, true
	default:
		slog.Warn("rule action type not known", slog.String("quizKey", quiz.QuizKey), slog.String("stepID", currentStep.StepID), slog.String("actionType", action.Type))
		return result, false
	}
}

func defaultNextStep(quiz quizTypes.Quiz, currentStep quizTypes.Step, scoreDelta float64) NextStepResult {
	next, index, ok := nextStepInOrder(quiz, currentStep.Order)
	if !ok {
		// past the end of the quiz
		return NextStepResult{ScoreDelta: scoreDelta}
	}
	return NextStepResult{
		NextStepID:  next.StepID,
		StepIndex:   index,
		HasNextStep: true,
		ScoreDelta:  scoreDelta,
	}
}
