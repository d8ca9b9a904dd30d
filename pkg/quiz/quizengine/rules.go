package quizengine

import (
	"errors"
	"fmt"

	quizTypes "github.com/quizflow/quiz-backend/pkg/quiz/types"
)

// RuleMatches evaluates the condition part of a branching rule against the
// submitted value and the accumulated score.
func (ctx EvalContext) RuleMatches(rule quizTypes.BranchRule) (val bool, err error) {
	switch rule.ConditionKind {
	case quizTypes.RULE_CONDITION_ALWAYS:
		val = true
	case quizTypes.RULE_CONDITION_ANSWER:
		val, err = ctx.matchAnswer(rule)
	case quizTypes.RULE_CONDITION_SCORE:
		val, err = ctx.matchScore(rule)
	default:
		err = fmt.Errorf("condition kind not known: %s", rule.ConditionKind)
	}
	return
}

func (ctx EvalContext) matchAnswer(rule quizTypes.BranchRule) (bool, error) {
	switch rule.Operator {
	case quizTypes.RULE_OPERATOR_EQ:
		return compareEqual(ctx.SubmittedValue, rule.Value)
	case quizTypes.RULE_OPERATOR_NEQ:
		eq, err := compareEqual(ctx.SubmittedValue, rule.Value)
		if err != nil {
			return false, err
		}
		return !eq, nil
	case quizTypes.RULE_OPERATOR_CONTAINS:
		return containsValue(ctx.SubmittedValue, rule.Value)
	case quizTypes.RULE_OPERATOR_GT, quizTypes.RULE_OPERATOR_GTE,
		quizTypes.RULE_OPERATOR_LT, quizTypes.RULE_OPERATOR_LTE:
		submitted, ok := valueAsFloat(ctx.SubmittedValue)
		if !ok {
			return false, errors.New("could not cast submitted value to number")
		}
		return compareNumeric(rule.Operator, submitted, rule.Value)
	default:
		return false, fmt.Errorf("operator not known: %s", rule.Operator)
	}
}

func (ctx EvalContext) matchScore(rule quizTypes.BranchRule) (bool, error) {
	switch rule.Operator {
	case quizTypes.RULE_OPERATOR_EQ, quizTypes.RULE_OPERATOR_NEQ:
		ref, ok := valueAsFloat(rule.Value)
		if !ok {
			return false, errors.New("could not cast rule value to number")
		}
		if rule.Operator == quizTypes.RULE_OPERATOR_EQ {
			return ctx.Score == ref, nil
		}
		return ctx.Score != ref, nil
	case quizTypes.RULE_OPERATOR_GT, quizTypes.RULE_OPERATOR_GTE,
		quizTypes.RULE_OPERATOR_LT, quizTypes.RULE_OPERATOR_LTE:
		return compareNumeric(rule.Operator, ctx.Score, rule.Value)
	default:
		return false, fmt.Errorf("operator not supported for score condition: %s", rule.Operator)
	}
}

// compareEqual compares numerically when both sides parse as numbers,
// otherwise by string form.
func compareEqual(submitted interface{}, ref interface{}) (bool, error) {
	if subNum, ok := valueAsFloat(submitted); ok {
		if refNum, ok := valueAsFloat(ref); ok {
			return subNum == refNum, nil
		}
	}
	subStr, ok := valueAsString(submitted)
	if !ok {
		return false, errors.New("could not cast submitted value")
	}
	refStr, ok := valueAsString(ref)
	if !ok {
		return false, errors.New("could not cast rule value")
	}
	return subStr == refStr, nil
}

// containsValue checks multi-select answers for the presence of the rule
// value; for scalar string answers it falls back to equality.
func containsValue(submitted interface{}, ref interface{}) (bool, error) {
	refStr, ok := valueAsString(ref)
	if !ok {
		return false, errors.New("could not cast rule value")
	}

	items, isSlice := submitted.([]interface{})
	if !isSlice {
		if strItems, ok := submitted.([]string); ok {
			isSlice = true
			items = make([]interface{}, len(strItems))
			for i, s := range strItems {
				items[i] = s
			}
		}
	}
	if !isSlice {
		subStr, ok := valueAsString(submitted)
		if !ok {
			return false, errors.New("could not cast submitted value")
		}
		return subStr == refStr, nil
	}

	for _, item := range items {
		itemStr, ok := valueAsString(item)
		if ok && itemStr == refStr {
			return true, nil
		}
	}
	return false, nil
}

func compareNumeric(operator string, left float64, refValue interface{}) (bool, error) {
	right, ok := valueAsFloat(refValue)
	if !ok {
		return false, errors.New("could not cast rule value to number")
	}
	switch operator {
	case quizTypes.RULE_OPERATOR_GT:
		return left > right, nil
	case quizTypes.RULE_OPERATOR_GTE:
		return left >= right, nil
	case quizTypes.RULE_OPERATOR_LT:
		return left < right, nil
	case quizTypes.RULE_OPERATOR_LTE:
		return left <= right, nil
	default:
		return false, fmt.Errorf("operator not known: %s", operator)
	}
}
