package quiz

import (
	quizTypes "github.com/quizflow/quiz-backend/pkg/quiz/types"
)

// QuizDBService covers the persistence operations the quiz service needs.
// The mongo backed implementation lives in pkg/db/quiz; tests use an
// in-memory fake.
type QuizDBService interface {
	GetQuizByKey(instanceID string, quizKey string) (quizTypes.Quiz, error)

	CreateSession(instanceID string, quizKey string, session quizTypes.Session) (quizTypes.Session, error)
	GetSessionBySessionID(instanceID string, quizKey string, sessionID string) (quizTypes.Session, error)
	SaveAnswer(instanceID string, quizKey string, sessionID string, stepID string, value interface{}) error
	AddToSessionScore(instanceID string, quizKey string, sessionID string, delta float64) error
	MarkSessionCompleted(instanceID string, quizKey string, sessionID string) error
	SetSessionLead(instanceID string, quizKey string, sessionID string, leadID string) error
	GetSessionsByQuiz(instanceID string, quizKey string) ([]quizTypes.Session, error)

	UpsertLead(instanceID string, quizKey string, sessionID string, data quizTypes.LeadData) (quizTypes.Lead, error)
}
