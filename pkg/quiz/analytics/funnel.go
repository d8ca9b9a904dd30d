package analytics

import (
	"math"
	"sort"

	quizTypes "github.com/quizflow/quiz-backend/pkg/quiz/types"
)

type FunnelOverview struct {
	TotalSessions     int     `json:"totalSessions"`
	ActiveSessions    int     `json:"activeSessions"`
	CompletedSessions int     `json:"completedSessions"`
	CompletionRate    float64 `json:"completionRate"`
}

type StepFunnelStats struct {
	StepID             string  `json:"stepId"`
	StepOrder          int     `json:"stepOrder"`
	StepTitle          string  `json:"stepTitle"`
	StepType           string  `json:"stepType"`
	UsersReached       int     `json:"usersReached"`
	UsersCurrentlyHere int     `json:"usersCurrentlyHere"`
	DropoffRate        float64 `json:"dropoffRate"`
}

type FunnelStats struct {
	Overview FunnelOverview    `json:"overview"`
	Steps    []StepFunnelStats `json:"steps"`
}

// ComputeFunnel derives per-step reach, current position and drop-off
// metrics for a quiz from one consistent snapshot of its session set.
//
// The current step of a session is inferred from the answer map: the
// answered step with the highest order value, or the quiz's entry step when
// no answer exists yet. Completed sessions are deemed to have passed every
// step. Note that the max-order inference assumes forward progress; a rule
// routing backward makes a session report the furthest answered step rather
// than its true position.
func ComputeFunnel(quiz quizTypes.Quiz, sessions []quizTypes.Session) FunnelStats {
	steps := make([]quizTypes.Step, len(quiz.Steps))
	copy(steps, quiz.Steps)
	sort.Slice(steps, func(i, j int) bool {
		return steps[i].Order < steps[j].Order
	})

	orderForStepID := map[string]int{}
	for _, step := range steps {
		orderForStepID[step.StepID] = step.Order
	}

	firstOrder := 0
	if len(steps) > 0 {
		firstOrder = steps[0].Order
	}

	completedCount := 0
	// highest answered order per session, entry step when nothing is answered
	reachedOrders := make([]int, 0, len(sessions))
	currentOrders := make([]int, 0, len(sessions))
	completedFlags := make([]bool, 0, len(sessions))

	for _, session := range sessions {
		if session.IsCompleted() {
			completedCount++
		}

		maxOrder := 0
		for stepID := range session.Answers {
			order, ok := orderForStepID[stepID]
			if ok && order > maxOrder {
				maxOrder = order
			}
		}
		currentOrder := maxOrder
		if currentOrder == 0 {
			// every session has at least reached the entry step
			currentOrder = firstOrder
		}

		reachedOrders = append(reachedOrders, currentOrder)
		currentOrders = append(currentOrders, currentOrder)
		completedFlags = append(completedFlags, session.IsCompleted())
	}

	stepStats := make([]StepFunnelStats, len(steps))
	for i, step := range steps {
		reached := 0
		currentlyHere := 0
		for s := range reachedOrders {
			if completedFlags[s] || reachedOrders[s] >= step.Order {
				reached++
			}
			if !completedFlags[s] && currentOrders[s] == step.Order {
				currentlyHere++
			}
		}

		dropoffRate := 0.0
		if reached > 0 {
			// completed sessions count as reached for every step
			dropoffRate = roundRate(float64(reached-completedCount) / float64(reached) * 100)
		}

		stepStats[i] = StepFunnelStats{
			StepID:             step.StepID,
			StepOrder:          step.Order,
			StepTitle:          step.Title,
			StepType:           step.Type,
			UsersReached:       reached,
			UsersCurrentlyHere: currentlyHere,
			DropoffRate:        dropoffRate,
		}
	}

	overview := FunnelOverview{
		TotalSessions:     len(sessions),
		ActiveSessions:    len(sessions) - completedCount,
		CompletedSessions: completedCount,
	}
	if overview.TotalSessions > 0 {
		overview.CompletionRate = roundRate(float64(completedCount) / float64(overview.TotalSessions) * 100)
	}

	return FunnelStats{
		Overview: overview,
		Steps:    stepStats,
	}
}

func roundRate(value float64) float64 {
	return math.Round(value*100) / 100
}
