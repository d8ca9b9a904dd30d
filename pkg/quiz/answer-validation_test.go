package quiz

import (
	"testing"

	quizTypes "github.com/quizflow/quiz-backend/pkg/quiz/types"
)

func TestValidateSingleSelectAnswer(t *testing.T) {
	step := quizTypes.Step{
		StepID: "s1", Type: quizTypes.STEP_TYPE_QUESTION,
		Options: []quizTypes.StepOption{
			{Value: "leads", Label: "Generate leads"},
			{Value: "sales", Label: "Increase sales"},
		},
	}

	t.Run("accepts a known option", func(t *testing.T) {
		if err := ValidateAnswer(step, "leads"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("rejects unknown option", func(t *testing.T) {
		if err := ValidateAnswer(step, "branding"); err == nil {
			t.Error("should produce error")
		}
	})

	t.Run("rejects non-string value", func(t *testing.T) {
		if err := ValidateAnswer(step, []interface{}{"leads"}); err == nil {
			t.Error("should produce error")
		}
	})
}

func TestValidateMultiSelectAnswer(t *testing.T) {
	step := quizTypes.Step{
		StepID: "s1", Type: quizTypes.STEP_TYPE_QUESTION,
		Multiple:      true,
		MinSelections: 2,
		MaxSelections: 3,
		Options: []quizTypes.StepOption{
			{Value: "a"}, {Value: "b"}, {Value: "c"}, {Value: "d"},
		},
	}

	tests := []struct {
		name    string
		value   interface{}
		isValid bool
	}{
		{name: "within bounds", value: []interface{}{"a", "b"}, isValid: true},
		{name: "below minSelections", value: []interface{}{"a"}, isValid: false},
		{name: "above maxSelections", value: []interface{}{"a", "b", "c", "d"}, isValid: false},
		{name: "unknown option in list", value: []interface{}{"a", "x"}, isValid: false},
		{name: "not an array", value: "a", isValid: false},
		{name: "string slice accepted", value: []string{"a", "b"}, isValid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAnswer(step, tt.value)
			if tt.isValid && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.isValid && err == nil {
				t.Error("should produce error")
			}
		})
	}

	t.Run("minSelections defaults to one", func(t *testing.T) {
		noMin := step
		noMin.MinSelections = 0
		if err := ValidateAnswer(noMin, []interface{}{}); err == nil {
			t.Error("should produce error")
		}
		if err := ValidateAnswer(noMin, []interface{}{"a"}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestValidateInputAnswer(t *testing.T) {
	step := quizTypes.Step{StepID: "s1", Type: quizTypes.STEP_TYPE_INPUT, VariableName: "name"}

	t.Run("accepts non-blank text", func(t *testing.T) {
		if err := ValidateAnswer(step, "Ada"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("accepts numbers", func(t *testing.T) {
		if err := ValidateAnswer(step, 42.0); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("rejects nil", func(t *testing.T) {
		if err := ValidateAnswer(step, nil); err == nil {
			t.Error("should produce error")
		}
	})

	t.Run("rejects whitespace only", func(t *testing.T) {
		if err := ValidateAnswer(step, "   "); err == nil {
			t.Error("should produce error")
		}
	})
}

func TestValidateCaptureAnswer(t *testing.T) {
	step := quizTypes.Step{
		StepID: "s1", Type: quizTypes.STEP_TYPE_CAPTURE,
		Capture: &quizTypes.CaptureConfig{Name: true, Email: true},
	}

	t.Run("accepts complete contact data", func(t *testing.T) {
		err := ValidateAnswer(step, map[string]interface{}{
			"name":  "Ada",
			"email": "ada@example.com",
		})
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("field keyed errors for missing fields", func(t *testing.T) {
		err := ValidateAnswer(step, map[string]interface{}{})
		if err == nil {
			t.Error("should produce error")
			return
		}
		if err.Fields["name"] == "" || err.Fields["email"] == "" {
			t.Errorf("unexpected field errors: %v", err.Fields)
		}
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		err := ValidateAnswer(step, map[string]interface{}{
			"name":  "Ada",
			"email": "not-an-email",
		})
		if err == nil {
			t.Error("should produce error")
			return
		}
		if err.Fields["email"] == "" {
			t.Errorf("unexpected field errors: %v", err.Fields)
		}
	})

	t.Run("rejects non-object value", func(t *testing.T) {
		if err := ValidateAnswer(step, "ada@example.com"); err == nil {
			t.Error("should produce error")
		}
	})

	t.Run("missing capture config requires email only", func(t *testing.T) {
		noConfig := quizTypes.Step{StepID: "s1", Type: quizTypes.STEP_TYPE_CAPTURE}
		err := ValidateAnswer(noConfig, map[string]interface{}{
			"email": "ada@example.com",
		})
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestValidateAnswerAcknowledgementSteps(t *testing.T) {
	for _, stepType := range []string{quizTypes.STEP_TYPE_TEXT, quizTypes.STEP_TYPE_RESULT} {
		step := quizTypes.Step{StepID: "s1", Type: stepType}
		if err := ValidateAnswer(step, nil); err != nil {
			t.Errorf("%s: unexpected error: %v", stepType, err)
		}
	}
}
