package quizengine

import (
	"strconv"

	quizTypes "github.com/quizflow/quiz-backend/pkg/quiz/types"
)

// Method to find a step by its id in the quiz's step list
func findStep(quiz quizTypes.Quiz, stepID string) (step quizTypes.Step, index int, err error) {
	for i, s := range quiz.Steps {
		if s.StepID == stepID {
			return s, i, nil
		}
	}
	return step, -1, ErrStepNotFound
}

// Method to find the step directly following the given order value
func nextStepInOrder(quiz quizTypes.Quiz, afterOrder int) (step quizTypes.Step, index int, ok bool) {
	bestOrder := 0
	for i, s := range quiz.Steps {
		if s.Order <= afterOrder {
			continue
		}
		if !ok || s.Order < bestOrder {
			step = s
			index = i
			bestOrder = s.Order
			ok = true
		}
	}
	return step, index, ok
}

// FirstStep returns the quiz's entry step (lowest order value).
func FirstStep(quiz quizTypes.Quiz) (step quizTypes.Step, err error) {
	if len(quiz.Steps) == 0 {
		return step, ErrEmptyQuiz
	}
	step = quiz.Steps[0]
	for _, s := range quiz.Steps[1:] {
		if s.Order < step.Order {
			step = s
		}
	}
	return step, nil
}

func valueAsFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		num, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return num, true
	default:
		return 0, false
	}
}

func valueAsString(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}
