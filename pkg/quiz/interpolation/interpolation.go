package interpolation

import (
	"regexp"
	"strconv"

	quizTypes "github.com/quizflow/quiz-backend/pkg/quiz/types"
)

var placeholderRegex = regexp.MustCompile(`\{\{([a-zA-Z0-9_]+)\}\}`)

// Interpolate replaces every {{name}} placeholder with the string form of
// variables[name]. Unknown or nil variables leave the placeholder untouched,
// so authors see a visible marker instead of silently blank content.
func Interpolate(template string, variables map[string]interface{}) string {
	return placeholderRegex.ReplaceAllStringFunc(template, func(match string) string {
		name := placeholderRegex.FindStringSubmatch(match)[1]
		value, ok := variables[name]
		if !ok || value == nil {
			return match
		}
		return variableToString(value, match)
	})
}

// CollectVariables gathers the variables accumulated from INPUT-type answers
// of the session, keyed by the step's declared variable name.
func CollectVariables(quiz quizTypes.Quiz, session quizTypes.Session) map[string]interface{} {
	variables := map[string]interface{}{}
	for _, step := range quiz.Steps {
		if step.Type != quizTypes.STEP_TYPE_INPUT || step.VariableName == "" {
			continue
		}
		if value, ok := session.Answers[step.StepID]; ok {
			variables[step.VariableName] = value
		}
	}
	return variables
}

// InterpolateStep returns a copy of the step with all respondent facing
// texts interpolated (title, description, option labels, CTA label).
func InterpolateStep(step quizTypes.Step, variables map[string]interface{}) quizTypes.Step {
	step.Title = Interpolate(step.Title, variables)
	step.Description = Interpolate(step.Description, variables)

	if len(step.Options) > 0 {
		options := make([]quizTypes.StepOption, len(step.Options))
		for i, opt := range step.Options {
			opt.Label = Interpolate(opt.Label, variables)
			options[i] = opt
		}
		step.Options = options
	}

	if step.CTA != nil {
		cta := *step.CTA
		cta.Label = Interpolate(cta.Label, variables)
		step.CTA = &cta
	}
	return step
}

func variableToString(value interface{}, fallback string) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fallback
	}
}
