package types

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	STEP_TYPE_TEXT     = "TEXT"
	STEP_TYPE_QUESTION = "QUESTION"
	STEP_TYPE_INPUT    = "INPUT"
	STEP_TYPE_CAPTURE  = "CAPTURE"
	STEP_TYPE_RESULT   = "RESULT"
)

// Quiz defines the datamodel for a quiz definition as stored in the database.
// Steps carry dense order values starting at 1, unique within the quiz.
type Quiz struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	QuizKey   string             `bson:"quizKey" json:"quizKey"`
	Title     string             `bson:"title" json:"title"`
	Steps     []Step             `bson:"steps" json:"steps"`
	CreatedAt int64              `bson:"createdAt" json:"createdAt"`
}

type Step struct {
	StepID      string `bson:"stepID" json:"stepId"`
	Order       int    `bson:"order" json:"order"`
	Type        string `bson:"type" json:"type"`
	Title       string `bson:"title,omitempty" json:"title,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`

	// QUESTION steps
	Options       []StepOption `bson:"options,omitempty" json:"options,omitempty"`
	Multiple      bool         `bson:"multiple,omitempty" json:"multiple,omitempty"`
	MinSelections int          `bson:"minSelections,omitempty" json:"minSelections,omitempty"`
	MaxSelections int          `bson:"maxSelections,omitempty" json:"maxSelections,omitempty"`

	// INPUT steps
	VariableName string `bson:"variableName,omitempty" json:"variableName,omitempty"`

	// CAPTURE steps
	Capture *CaptureConfig `bson:"capture,omitempty" json:"capture,omitempty"`

	Rules []BranchRule  `bson:"rules,omitempty" json:"rules,omitempty"`
	CTA   *CallToAction `bson:"cta,omitempty" json:"cta,omitempty"`
}

type StepOption struct {
	Value string `bson:"value" json:"value"`
	Label string `bson:"label" json:"label"`
}

// CaptureConfig lists which contact fields the step collects.
type CaptureConfig struct {
	Name  bool `bson:"name" json:"name"`
	Email bool `bson:"email" json:"email"`
	Phone bool `bson:"phone" json:"phone"`
}

type CallToAction struct {
	Label string `bson:"label" json:"label"`
	URL   string `bson:"url,omitempty" json:"url,omitempty"`
}

func (s Step) HasOptionValue(value string) bool {
	for _, opt := range s.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}
