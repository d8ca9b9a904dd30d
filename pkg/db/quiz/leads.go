package quiz

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	quizTypes "github.com/quizflow/quiz-backend/pkg/quiz/types"
)

func (dbService *QuizDBService) CreateIndexForLeadsCollection(instanceID string, quizKey string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	collection := dbService.collectionLeads(instanceID, quizKey)
	_, err := collection.Indexes().CreateOne(
		ctx,
		mongo.IndexModel{
			Keys: bson.D{
				{Key: "quizKey", Value: 1},
				{Key: "sessionID", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	)
	return err
}

// UpsertLead creates or updates the lead record for (quizKey, sessionID).
// Repeated CAPTURE submissions of the same session update the contact fields
// in place.
func (dbService *QuizDBService) UpsertLead(instanceID string, quizKey string, sessionID string, data quizTypes.LeadData) (lead quizTypes.Lead, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	now := time.Now().Unix()

	filter := bson.M{
		"quizKey":   quizKey,
		"sessionID": sessionID,
	}
	update := bson.M{
		"$set": bson.M{
			"name":      data.Name,
			"email":     data.Email,
			"phone":     data.Phone,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"leadID":    uuid.NewString(),
			"quizKey":   quizKey,
			"sessionID": sessionID,
			"createdAt": now,
		},
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err = dbService.collectionLeads(instanceID, quizKey).FindOneAndUpdate(ctx, filter, update, opts).Decode(&lead)
	return lead, err
}

// list all captured leads of a quiz
func (dbService *QuizDBService) GetLeadsByQuiz(instanceID string, quizKey string) (leads []quizTypes.Lead, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := dbService.collectionLeads(instanceID, quizKey).Find(ctx, bson.M{}, opts)
	if err != nil {
		return leads, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &leads)
	return leads, err
}
