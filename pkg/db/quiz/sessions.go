package quiz

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	quizTypes "github.com/quizflow/quiz-backend/pkg/quiz/types"
)

func (dbService *QuizDBService) CreateIndexForSessionsCollection(instanceID string, quizKey string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	collection := dbService.collectionSessions(instanceID, quizKey)
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "sessionID", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "createdAt", Value: 1},
			},
		},
		{
			Keys: bson.D{
				{Key: "completedAt", Value: 1},
			},
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}

func (dbService *QuizDBService) CreateSession(instanceID string, quizKey string, session quizTypes.Session) (quizTypes.Session, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	res, err := dbService.collectionSessions(instanceID, quizKey).InsertOne(ctx, session)
	if err != nil {
		return session, err
	}
	session.ID = res.InsertedID.(primitive.ObjectID)
	return session, nil
}

func (dbService *QuizDBService) GetSessionBySessionID(instanceID string, quizKey string, sessionID string) (session quizTypes.Session, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"sessionID": sessionID,
	}

	err = dbService.collectionSessions(instanceID, quizKey).FindOne(ctx, filter).Decode(&session)
	return session, err
}

// SaveAnswer merges the submitted value into the session's answer map under
// the step id. The write is a $set on one map key: last-write-wins and safe
// to retry any number of times.
func (dbService *QuizDBService) SaveAnswer(instanceID string, quizKey string, sessionID string, stepID string, value interface{}) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"sessionID": sessionID,
	}
	update := bson.M{
		"$set": bson.M{
			"answers." + stepID: value,
		},
	}

	res, err := dbService.collectionSessions(instanceID, quizKey).UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (dbService *QuizDBService) AddToSessionScore(instanceID string, quizKey string, sessionID string, delta float64) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"sessionID": sessionID,
	}
	update := bson.M{
		"$inc": bson.M{
			"score": delta,
		},
	}

	res, err := dbService.collectionSessions(instanceID, quizKey).UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// MarkSessionCompleted sets completedAt once. Sessions that are already
// completed are left untouched, so the timestamp never changes after it has
// been set.
func (dbService *QuizDBService) MarkSessionCompleted(instanceID string, quizKey string, sessionID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"sessionID":   sessionID,
		"completedAt": 0,
	}
	update := bson.M{
		"$set": bson.M{
			"completedAt": time.Now().Unix(),
		},
	}

	_, err := dbService.collectionSessions(instanceID, quizKey).UpdateOne(ctx, filter, update)
	return err
}

func (dbService *QuizDBService) SetSessionLead(instanceID string, quizKey string, sessionID string, leadID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"sessionID": sessionID,
	}
	update := bson.M{
		"$set": bson.M{
			"leadID": leadID,
		},
	}

	res, err := dbService.collectionSessions(instanceID, quizKey).UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// get the full session set of a quiz for analytics
func (dbService *QuizDBService) GetSessionsByQuiz(instanceID string, quizKey string) (sessions []quizTypes.Session, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	opts := options.Find()
	if dbService.noCursorTimeout {
		opts.SetNoCursorTimeout(true)
	}

	cursor, err := dbService.collectionSessions(instanceID, quizKey).Find(ctx, bson.M{}, opts)
	if err != nil {
		return sessions, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &sessions)
	return sessions, err
}

// get paginated sessions by query
func (dbService *QuizDBService) GetSessionsPaginated(instanceID string, quizKey string, filter bson.M, sort bson.M, page int64, limit int64) (sessions []quizTypes.Session, paginationInfo *PaginationInfos, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	totalCount, err := dbService.collectionSessions(instanceID, quizKey).CountDocuments(ctx, filter)
	if err != nil {
		return sessions, nil, err
	}

	paginationInfo = prepPaginationInfos(totalCount, page, limit)

	skip := (paginationInfo.CurrentPage - 1) * paginationInfo.PageSize

	opts := options.Find().SetSort(sort).SetSkip(skip).SetLimit(paginationInfo.PageSize)
	cursor, err := dbService.collectionSessions(instanceID, quizKey).Find(ctx, filter, opts)
	if err != nil {
		return sessions, nil, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &sessions)
	if err != nil {
		return sessions, nil, err
	}

	return sessions, paginationInfo, nil
}
