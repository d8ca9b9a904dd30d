package quiz

import (
	"regexp"
	"strings"

	quizTypes "github.com/quizflow/quiz-backend/pkg/quiz/types"
)

var emailFormatRegex = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$`)

// ValidationError carries one message per invalid or missing field. For
// CAPTURE answers Fields holds field keyed messages, otherwise Message is
// set.
type ValidationError struct {
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

func newValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// ValidateAnswer checks a submitted value against the step's type specific
// rules. It performs no persistence; a non-nil result means the session must
// stay untouched.
func ValidateAnswer(step quizTypes.Step, value interface{}) *ValidationError {
	switch step.Type {
	case quizTypes.STEP_TYPE_QUESTION:
		if step.Multiple {
			return validateMultiSelectAnswer(step, value)
		}
		return validateSingleSelectAnswer(step, value)
	case quizTypes.STEP_TYPE_INPUT:
		return validateInputAnswer(value)
	case quizTypes.STEP_TYPE_CAPTURE:
		return validateCaptureAnswer(step, value)
	default:
		// TEXT and RESULT steps accept any acknowledgement value
		return nil
	}
}

func validateSingleSelectAnswer(step quizTypes.Step, value interface{}) *ValidationError {
	selected, ok := value.(string)
	if !ok {
		return newValidationError("answer must be a single option value")
	}
	if !step.HasOptionValue(selected) {
		return newValidationError("answer is not one of the available options")
	}
	return nil
}

func validateMultiSelectAnswer(step quizTypes.Step, value interface{}) *ValidationError {
	items, ok := toInterfaceSlice(value)
	if !ok {
		return newValidationError("answer must be an array of option values")
	}

	minSelections := step.MinSelections
	if minSelections < 1 {
		minSelections = 1
	}
	if len(items) < minSelections {
		return newValidationError("not enough options selected")
	}
	if step.MaxSelections > 0 && len(items) > step.MaxSelections {
		return newValidationError("too many options selected")
	}

	for _, item := range items {
		selected, ok := item.(string)
		if !ok || !step.HasOptionValue(selected) {
			return newValidationError("answer contains a value that is not one of the available options")
		}
	}
	return nil
}

func validateInputAnswer(value interface{}) *ValidationError {
	if value == nil {
		return newValidationError("answer is required")
	}
	if str, ok := value.(string); ok && strings.TrimSpace(str) == "" {
		return newValidationError("answer must not be blank")
	}
	return nil
}

func validateCaptureAnswer(step quizTypes.Step, value interface{}) *ValidationError {
	data, ok := parseLeadData(value)
	if !ok {
		return &ValidationError{Fields: map[string]string{"value": "answer must be an object with contact fields"}}
	}

	capture := step.Capture
	if capture == nil {
		capture = &quizTypes.CaptureConfig{Email: true}
	}

	fieldErrors := map[string]string{}
	if capture.Name && strings.TrimSpace(data.Name) == "" {
		fieldErrors["name"] = "name is required"
	}
	if capture.Email {
		email := strings.TrimSpace(data.Email)
		if email == "" {
			fieldErrors["email"] = "email is required"
		} else if !emailFormatRegex.MatchString(email) {
			fieldErrors["email"] = "email is not a valid address"
		}
	}
	if capture.Phone && strings.TrimSpace(data.Phone) == "" {
		fieldErrors["phone"] = "phone is required"
	}

	if len(fieldErrors) > 0 {
		return &ValidationError{Fields: fieldErrors}
	}
	return nil
}

func parseLeadData(value interface{}) (data quizTypes.LeadData, ok bool) {
	fields, isMap := value.(map[string]interface{})
	if !isMap {
		return data, false
	}
	if name, ok := fields["name"].(string); ok {
		data.Name = strings.TrimSpace(name)
	}
	if email, ok := fields["email"].(string); ok {
		data.Email = strings.TrimSpace(email)
	}
	if phone, ok := fields["phone"].(string); ok {
		data.Phone = strings.TrimSpace(phone)
	}
	return data, true
}

func toInterfaceSlice(value interface{}) ([]interface{}, bool) {
	switch items := value.(type) {
	case []interface{}:
		return items, true
	case []string:
		converted := make([]interface{}, len(items))
		for i, item := range items {
			converted[i] = item
		}
		return converted, true
	default:
		return nil, false
	}
}
