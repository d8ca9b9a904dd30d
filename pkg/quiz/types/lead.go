package types

import "go.mongodb.org/mongo-driver/bson/primitive"

// Lead is the contact record captured through a CAPTURE step, keyed by
// (quizKey, sessionID).
type Lead struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	LeadID    string             `bson:"leadID" json:"leadId"`
	QuizKey   string             `bson:"quizKey" json:"quizKey"`
	SessionID string             `bson:"sessionID" json:"sessionId"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	CreatedAt int64              `bson:"createdAt" json:"createdAt"`
	UpdatedAt int64              `bson:"updatedAt" json:"updatedAt"`
}

// LeadData is the parsed shape of a CAPTURE answer value.
type LeadData struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}
