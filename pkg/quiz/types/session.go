package types

import "go.mongodb.org/mongo-driver/bson/primitive"

// Session defines the datamodel for one respondent run through a quiz.
// Answers maps stepID to the submitted value, its keys are always a subset
// of the quiz's step ids and the map only grows while the session is active.
type Session struct {
	ID          primitive.ObjectID     `bson:"_id,omitempty" json:"id,omitempty"`
	SessionID   string                 `bson:"sessionID" json:"sessionId"` // public reference, independent of the respondent's identity
	QuizKey     string                 `bson:"quizKey" json:"quizKey"`
	Answers     map[string]interface{} `bson:"answers" json:"answers"`
	Score       float64                `bson:"score" json:"score,omitempty"`
	LeadID      string                 `bson:"leadID,omitempty" json:"leadId,omitempty"`
	CreatedAt   int64                  `bson:"createdAt" json:"createdAt"`
	CompletedAt int64                  `bson:"completedAt" json:"completedAt,omitempty"`
}

func (s Session) IsCompleted() bool {
	return s.CompletedAt > 0
}

func (s Session) HasAnswerFor(stepID string) bool {
	_, ok := s.Answers[stepID]
	return ok
}
