package interpolation

import (
	"testing"

	quizTypes "github.com/quizflow/quiz-backend/pkg/quiz/types"
)

func TestInterpolate(t *testing.T) {
	tests := []struct {
		name      string
		template  string
		variables map[string]interface{}
		expected  string
	}{
		{
			name:      "missing variable keeps placeholder",
			template:  "Hello {{name}}",
			variables: map[string]interface{}{},
			expected:  "Hello {{name}}",
		},
		{
			name:      "string variable",
			template:  "Hello {{name}}!",
			variables: map[string]interface{}{"name": "Ada"},
			expected:  "Hello Ada!",
		},
		{
			name:      "numeric variable without trailing zeros",
			template:  "You scored {{points}} points",
			variables: map[string]interface{}{"points": 42.0},
			expected:  "You scored 42 points",
		},
		{
			name:      "nil variable keeps placeholder",
			template:  "Hello {{name}}",
			variables: map[string]interface{}{"name": nil},
			expected:  "Hello {{name}}",
		},
		{
			name:      "multiple occurrences",
			template:  "{{name}}, yes you, {{name}}",
			variables: map[string]interface{}{"name": "Ada"},
			expected:  "Ada, yes you, Ada",
		},
		{
			name:      "mixed known and unknown",
			template:  "{{greeting}} {{name}}",
			variables: map[string]interface{}{"name": "Ada"},
			expected:  "{{greeting}} Ada",
		},
		{
			name:      "no placeholders",
			template:  "plain text",
			variables: map[string]interface{}{"name": "Ada"},
			expected:  "plain text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Interpolate(tt.template, tt.variables)
			if result != tt.expected {
				t.Errorf("Interpolate() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestCollectVariables(t *testing.T) {
	quiz := quizTypes.Quiz{Steps: []quizTypes.Step{
		{StepID: "s1", Order: 1, Type: quizTypes.STEP_TYPE_INPUT, VariableName: "name"},
		{StepID: "s2", Order: 2, Type: quizTypes.STEP_TYPE_INPUT, VariableName: "age"},
		{StepID: "s3", Order: 3, Type: quizTypes.STEP_TYPE_QUESTION},
	}}

	session := quizTypes.Session{Answers: map[string]interface{}{
		"s1": "Ada",
		"s3": "optionA",
	}}

	variables := CollectVariables(quiz, session)
	if len(variables) != 1 {
		t.Errorf("unexpected variables: %v", variables)
	}
	if variables["name"] != "Ada" {
		t.Errorf("unexpected value: %v", variables["name"])
	}
}

func TestInterpolateStep(t *testing.T) {
	step := quizTypes.Step{
		StepID:      "s1",
		Title:       "Hi {{name}}",
		Description: "{{name}}, pick one",
		Options: []quizTypes.StepOption{
			{Value: "a", Label: "Option for {{name}}"},
		},
		CTA: &quizTypes.CallToAction{Label: "Go {{name}}", URL: "https://example.com"},
	}

	result := InterpolateStep(step, map[string]interface{}{"name": "Ada"})

	if result.Title != "Hi Ada" || result.Description != "Ada, pick one" {
		t.Errorf("unexpected step texts: %v", result)
	}
	if result.Options[0].Label != "Option for Ada" {
		t.Errorf("unexpected option label: %v", result.Options[0].Label)
	}
	if result.CTA.Label != "Go Ada" {
		t.Errorf("unexpected CTA label: %v", result.CTA.Label)
	}

	// original step must stay untouched
	if step.Title != "Hi {{name}}" || step.Options[0].Label != "Option for {{name}}" || step.CTA.Label != "Go {{name}}" {
		t.Errorf("input step was mutated: %v", step)
	}
}
