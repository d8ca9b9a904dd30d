package quiz

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	quizTypes "github.com/quizflow/quiz-backend/pkg/quiz/types"
)

// quizDBServiceMock keeps quizzes, sessions and leads in memory while
// mirroring the update semantics of the mongo implementation.
type quizDBServiceMock struct {
	quizzes  map[string]quizTypes.Quiz
	sessions map[string]quizTypes.Session
	leads    map[string]quizTypes.Lead

	leadCounter int
}

func newQuizDBServiceMock() *quizDBServiceMock {
	return &quizDBServiceMock{
		quizzes:  map[string]quizTypes.Quiz{},
		sessions: map[string]quizTypes.Session{},
		leads:    map[string]quizTypes.Lead{},
	}
}

func (m *quizDBServiceMock) GetQuizByKey(instanceID string, quizKey string) (quizTypes.Quiz, error) {
	quiz, ok := m.quizzes[quizKey]
	if !ok {
		return quizTypes.Quiz{}, mongo.ErrNoDocuments
	}
	return quiz, nil
}

func (m *quizDBServiceMock) CreateSession(instanceID string, quizKey string, session quizTypes.Session) (quizTypes.Session, error) {
	m.sessions[session.SessionID] = session
	return session, nil
}

func (m *quizDBServiceMock) GetSessionBySessionID(instanceID string, quizKey string, sessionID string) (quizTypes.Session, error) {
	session, ok := m.sessions[sessionID]
	if !ok {
		return quizTypes.Session{}, mongo.ErrNoDocuments
	}
	return session, nil
}

func (m *quizDBServiceMock) SaveAnswer(instanceID string, quizKey string, sessionID string, stepID string, value interface{}) error {
	session, ok := m.sessions[sessionID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if session.Answers == nil {
		session.Answers = map[string]interface{}{}
	}
	session.Answers[stepID] = value
	m.sessions[sessionID] = session
	return nil
}

func (m *quizDBServiceMock) AddToSessionScore(instanceID string, quizKey string, sessionID string, delta float64) error {
	session, ok := m.sessions[sessionID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	session.Score += delta
	m.sessions[sessionID] = session
	return nil
}

func (m *quizDBServiceMock) MarkSessionCompleted(instanceID string, quizKey string, sessionID string) error {
	session, ok := m.sessions[sessionID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if session.CompletedAt == 0 {
		session.CompletedAt = 1700000000
		m.sessions[sessionID] = session
	}
	return nil
}

func (m *quizDBServiceMock) SetSessionLead(instanceID string, quizKey string, sessionID string, leadID string) error {
	session, ok := m.sessions[sessionID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	session.LeadID = leadID
	m.sessions[sessionID] = session
	return nil
}

func (m *quizDBServiceMock) GetSessionsByQuiz(instanceID string, quizKey string) ([]quizTypes.Session, error) {
	sessions := []quizTypes.Session{}
	for _, session := range m.sessions {
		if session.QuizKey == quizKey {
			sessions = append(sessions, session)
		}
	}
	return sessions, nil
}

func (m *quizDBServiceMock) UpsertLead(instanceID string, quizKey string, sessionID string, data quizTypes.LeadData) (quizTypes.Lead, error) {
	key := quizKey + "/" + sessionID
	lead, ok := m.leads[key]
	if !ok {
		m.leadCounter += 1
		lead = quizTypes.Lead{
			LeadID:    fmt.Sprintf("lead-%d", m.leadCounter),
			QuizKey:   quizKey,
			SessionID: sessionID,
		}
	}
	lead.Name = data.Name
	lead.Email = data.Email
	lead.Phone = data.Phone
	m.leads[key] = lead
	return lead, nil
}

func serviceTestQuiz() quizTypes.Quiz {
	return quizTypes.Quiz{
		QuizKey: "testQuiz",
		Steps: []quizTypes.Step{
			{
				StepID: "s1", Order: 1, Type: quizTypes.STEP_TYPE_QUESTION,
				Title: "What is your goal, {{name}}?",
				Options: []quizTypes.StepOption{
					{Value: "leads"}, {Value: "sales"},
				},
				Rules: []quizTypes.BranchRule{
					{
						ConditionKind: quizTypes.RULE_CONDITION_ANSWER,
						Operator:      quizTypes.RULE_OPERATOR_EQ,
						Value:         "leads",
						Action: quizTypes.RuleAction{
							Type:       quizTypes.RULE_ACTION_ADD_SCORE,
							ScoreDelta: 10,
						},
					},
				},
			},
			{StepID: "s2", Order: 2, Type: quizTypes.STEP_TYPE_INPUT, VariableName: "name"},
			{StepID: "s3", Order: 3, Type: quizTypes.STEP_TYPE_CAPTURE, Capture: &quizTypes.CaptureConfig{Email: true}},
		},
	}
}

func setupQuizServiceTest(t *testing.T) *quizDBServiceMock {
	t.Helper()
	mock := newQuizDBServiceMock()
	mock.quizzes["testQuiz"] = serviceTestQuiz()
	Init(mock)
	return mock
}

func TestOnStartSession(t *testing.T) {
	mock := setupQuizServiceTest(t)

	t.Run("unknown quiz", func(t *testing.T) {
		_, _, err := OnStartSession("testInstance", "wrong")
		if !errors.Is(err, mongo.ErrNoDocuments) {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("creates session and returns entry step", func(t *testing.T) {
		session, entryStep, err := OnStartSession("testInstance", "testQuiz")
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		if session.SessionID == "" {
			t.Error("session should have a public id")
		}
		if entryStep.StepID != "s1" {
			t.Errorf("unexpected entry step: %v", entryStep.StepID)
		}
		if _, ok := mock.sessions[session.SessionID]; !ok {
			t.Error("session was not persisted")
		}
	})

	t.Run("two starts create distinct sessions", func(t *testing.T) {
		first, _, err := OnStartSession("testInstance", "testQuiz")
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		second, _, err := OnStartSession("testInstance", "testQuiz")
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		if first.SessionID == second.SessionID {
			t.Error("session ids should differ")
		}
	})
}

func TestOnSubmitAnswer(t *testing.T) {
	t.Run("validation failure leaves session untouched", func(t *testing.T) {
		mock := setupQuizServiceTest(t)
		session, _, _ := OnStartSession("testInstance", "testQuiz")

		_, err := OnSubmitAnswer("testInstance", "testQuiz", session.SessionID, "s1", "branding")
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Errorf("unexpected error: %v", err)
			return
		}

		stored := mock.sessions[session.SessionID]
		if len(stored.Answers) != 0 {
			t.Errorf("answers should stay empty: %v", stored.Answers)
		}
		if stored.CompletedAt != 0 || stored.Score != 0 {
			t.Errorf("session state changed: %v", stored)
		}
	})

	t.Run("valid answer advances and applies score", func(t *testing.T) {
		mock := setupQuizServiceTest(t)
		session, _, _ := OnStartSession("testInstance", "testQuiz")

		result, err := OnSubmitAnswer("testInstance", "testQuiz", session.SessionID, "s1", "leads")
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		if result.StepID != "s2" {
			t.Errorf("unexpected next step: %v", result)
		}
		if result.Score != 10 {
			t.Errorf("unexpected score: %v", result.Score)
		}

		stored := mock.sessions[session.SessionID]
		if stored.Answers["s1"] != "leads" || stored.Score != 10 {
			t.Errorf("unexpected stored session: %v", stored)
		}
	})

	t.Run("repeated submission keeps answers identical", func(t *testing.T) {
		mock := setupQuizServiceTest(t)
		session, _, _ := OnStartSession("testInstance", "testQuiz")

		var reference map[string]interface{}
		for i := 0; i < 3; i++ {
			result, err := OnSubmitAnswer("testInstance", "testQuiz", session.SessionID, "s2", "Ada")
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if result.StepID != "s3" {
				t.Errorf("unexpected next step: %v", result)
			}

			stored := mock.sessions[session.SessionID]
			if reference == nil {
				reference = stored.Answers
				continue
			}
			if !reflect.DeepEqual(stored.Answers, reference) {
				t.Errorf("answers changed on retry: %v != %v", stored.Answers, reference)
			}
		}
	})

	t.Run("retried scored submission applies the delta once", func(t *testing.T) {
		mock := setupQuizServiceTest(t)
		session, _, _ := OnStartSession("testInstance", "testQuiz")

		for i := 0; i < 3; i++ {
			result, err := OnSubmitAnswer("testInstance", "testQuiz", session.SessionID, "s1", "leads")
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if result.Score != 10 {
				t.Errorf("unexpected score in response: %v", result.Score)
			}
		}

		stored := mock.sessions[session.SessionID]
		if stored.Score != 10 {
			t.Errorf("retried identical submission changed score: %v, want 10", stored.Score)
		}
	})

	t.Run("variables from earlier answers reach later steps", func(t *testing.T) {
		setupQuizServiceTest(t)
		session, _, _ := OnStartSession("testInstance", "testQuiz")

		if _, err := OnSubmitAnswer("testInstance", "testQuiz", session.SessionID, "s2", "Ada"); err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}

		step, err := GetStepWithContext("testInstance", "testQuiz", session.SessionID, "s1")
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		if step.Title != "What is your goal, Ada?" {
			t.Errorf("unexpected title: %v", step.Title)
		}
	})

	t.Run("capture answer stores a lead and completes", func(t *testing.T) {
		mock := setupQuizServiceTest(t)
		session, _, _ := OnStartSession("testInstance", "testQuiz")

		result, err := OnSubmitAnswer("testInstance", "testQuiz", session.SessionID, "s3", map[string]interface{}{
			"email": "ada@example.com",
		})
		if err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		if result.StepID != "" {
			t.Errorf("last step should complete the session: %v", result)
		}

		stored := mock.sessions[session.SessionID]
		if !stored.IsCompleted() {
			t.Error("session should be completed")
		}
		if stored.LeadID == "" {
			t.Error("session should reference the lead")
		}

		lead := mock.leads["testQuiz/"+session.SessionID]
		if lead.Email != "ada@example.com" {
			t.Errorf("unexpected lead: %v", lead)
		}
	})

	t.Run("repeated capture reuses the lead", func(t *testing.T) {
		mock := setupQuizServiceTest(t)
		session, _, _ := OnStartSession("testInstance", "testQuiz")

		answer := map[string]interface{}{"email": "ada@example.com"}
		if _, err := OnSubmitAnswer("testInstance", "testQuiz", session.SessionID, "s3", answer); err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}
		firstLeadID := mock.sessions[session.SessionID].LeadID

		answer["email"] = "ada@other.example.com"
		if _, err := OnSubmitAnswer("testInstance", "testQuiz", session.SessionID, "s3", answer); err != nil {
			t.Errorf("unexpected error: %v", err)
			return
		}

		if len(mock.leads) != 1 {
			t.Errorf("expected a single lead, got %d", len(mock.leads))
		}
		if mock.sessions[session.SessionID].LeadID != firstLeadID {
			t.Error("lead reference should stay stable")
		}
		if mock.leads["testQuiz/"+session.SessionID].Email != "ada@other.example.com" {
			t.Error("lead data should be updated")
		}
	})

	t.Run("unknown step", func(t *testing.T) {
		setupQuizServiceTest(t)
		session, _, _ := OnStartSession("testInstance", "testQuiz")

		_, err := OnSubmitAnswer("testInstance", "testQuiz", session.SessionID, "wrong", "x")
		if err == nil {
			t.Error("should produce error")
		}
	})
}

func TestGetFunnelStats(t *testing.T) {
	setupQuizServiceTest(t)

	// one session completes the quiz, one stops after the first answer
	completed, _, _ := OnStartSession("testInstance", "testQuiz")
	if _, err := OnSubmitAnswer("testInstance", "testQuiz", completed.SessionID, "s1", "leads"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := OnSubmitAnswer("testInstance", "testQuiz", completed.SessionID, "s2", "Ada"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := OnSubmitAnswer("testInstance", "testQuiz", completed.SessionID, "s3", map[string]interface{}{"email": "ada@example.com"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	active, _, _ := OnStartSession("testInstance", "testQuiz")
	if _, err := OnSubmitAnswer("testInstance", "testQuiz", active.SessionID, "s1", "sales"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stats, err := GetFunnelStats("testInstance", "testQuiz")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.Overview.TotalSessions != 2 || stats.Overview.CompletedSessions != 1 {
		t.Errorf("unexpected overview: %v", stats.Overview)
	}
	if stats.Overview.CompletionRate != 50 {
		t.Errorf("unexpected completion rate: %v", stats.Overview.CompletionRate)
	}
	if stats.Steps[0].UsersReached != 2 || stats.Steps[1].UsersReached != 1 || stats.Steps[2].UsersReached != 1 {
		t.Errorf("unexpected reach: %v", stats.Steps)
	}
	if stats.Steps[0].UsersCurrentlyHere != 1 {
		t.Errorf("unexpected current step counts: %v", stats.Steps)
	}
}
