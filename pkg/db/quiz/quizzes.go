package quiz

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	quizTypes "github.com/quizflow/quiz-backend/pkg/quiz/types"
)

func (dbService *QuizDBService) CreateIndexForQuizzesCollection(instanceID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	collection := dbService.collectionQuizzes(instanceID)
	_, err := collection.Indexes().CreateOne(
		ctx,
		mongo.IndexModel{
			Keys: bson.D{
				{Key: "quizKey", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	)
	return err
}

// get a quiz definition by its key
func (dbService *QuizDBService) GetQuizByKey(instanceID string, quizKey string) (quiz quizTypes.Quiz, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"quizKey": quizKey,
	}

	err = dbService.collectionQuizzes(instanceID).FindOne(ctx, filter).Decode(&quiz)
	return quiz, err
}

// list all quiz definitions of an instance
func (dbService *QuizDBService) GetQuizzes(instanceID string) (quizzes []quizTypes.Quiz, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	cursor, err := dbService.collectionQuizzes(instanceID).Find(ctx, bson.M{})
	if err != nil {
		return quizzes, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &quizzes)
	return quizzes, err
}
