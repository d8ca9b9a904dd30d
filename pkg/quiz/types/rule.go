package types

const (
	RULE_CONDITION_ALWAYS = "always"
	RULE_CONDITION_ANSWER = "answer"
	RULE_CONDITION_SCORE  = "score"
)

const (
	RULE_OPERATOR_EQ       = "eq"
	RULE_OPERATOR_NEQ      = "neq"
	RULE_OPERATOR_CONTAINS = "contains"
	RULE_OPERATOR_GT       = "gt"
	RULE_OPERATOR_GTE      = "gte"
	RULE_OPERATOR_LT       = "lt"
	RULE_OPERATOR_LTE      = "lte"
)

const (
	RULE_ACTION_GO_TO_STEP   = "goToStep"
	RULE_ACTION_REDIRECT     = "redirect"
	RULE_ACTION_SHOW_MESSAGE = "showMessage"
	RULE_ACTION_ADD_SCORE    = "addScore"
)

// BranchRule is one condition-action pair attached to a step. Rules are
// evaluated in their declared order, the first matching rule wins.
type BranchRule struct {
	ConditionKind string      `bson:"conditionKind" json:"conditionKind"`
	Operator      string      `bson:"operator,omitempty" json:"operator,omitempty"`
	Value         interface{} `bson:"value,omitempty" json:"value,omitempty"`
	Action        RuleAction  `bson:"action" json:"action"`
}

type RuleAction struct {
	Type         string  `bson:"type" json:"type"`
	TargetStepID string  `bson:"targetStepID,omitempty" json:"targetStepId,omitempty"`
	URL          string  `bson:"url,omitempty" json:"url,omitempty"`
	Message      string  `bson:"message,omitempty" json:"message,omitempty"`
	ScoreDelta   float64 `bson:"scoreDelta,omitempty" json:"scoreDelta,omitempty"`
}
