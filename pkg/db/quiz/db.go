package quiz

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/quizflow/quiz-backend/pkg/db"
)

// collection names
const (
	COLLECTION_NAME_QUIZZES         = "quizzes"
	COLLECTION_NAME_SUFFIX_SESSIONS = "sessions"
	COLLECTION_NAME_SUFFIX_LEADS    = "leads"
)

type QuizDBService struct {
	DBClient        *mongo.Client
	timeout         int
	noCursorTimeout bool
	DBNamePrefix    string
	InstanceIDs     []string
}

func NewQuizDBService(configs db.DBConfig) (*QuizDBService, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	defer cancel()

	dbClient, err := mongo.Connect(ctx,
		options.Client().ApplyURI(configs.URI),
		options.Client().SetMaxConnIdleTime(time.Duration(configs.IdleConnTimeout)*time.Second),
		options.Client().SetMaxPoolSize(configs.MaxPoolSize),
	)
	if err != nil {
		return nil, err
	}

	ctx, conCancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	err = dbClient.Ping(ctx, nil)
	defer conCancel()

	if err != nil {
		return nil, err
	}

	quizDBSc := &QuizDBService{
		DBClient:        dbClient,
		timeout:         configs.Timeout,
		noCursorTimeout: configs.NoCursorTimeout,
		DBNamePrefix:    configs.DBNamePrefix,
		InstanceIDs:     configs.InstanceIDs,
	}

	if configs.RunIndexCreation {
		if err := quizDBSc.ensureIndexes(); err != nil {
			slog.Error("Error ensuring indexes for quiz DB", slog.String("error", err.Error()))
		}
	}

	return quizDBSc, nil
}

func (dbService *QuizDBService) getDBName(instanceID string) string {
	return dbService.DBNamePrefix + instanceID + "_quizDB"
}

func (dbService *QuizDBService) collectionQuizzes(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_QUIZZES)
}

func (dbService *QuizDBService) collectionSessions(instanceID string, quizKey string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(quizKey + "_" + COLLECTION_NAME_SUFFIX_SESSIONS)
}

func (dbService *QuizDBService) collectionLeads(instanceID string, quizKey string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(quizKey + "_" + COLLECTION_NAME_SUFFIX_LEADS)
}

func (dbService *QuizDBService) getContext() (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(dbService.timeout)*time.Second)
}

func (dbService *QuizDBService) ensureIndexes() error {
	slog.Debug("Ensuring indexes for quiz DB")
	for _, instanceID := range dbService.InstanceIDs {
		if err := dbService.CreateIndexForQuizzesCollection(instanceID); err != nil {
			slog.Error("Error creating index for quizzes", slog.String("instanceID", instanceID), slog.String("error", err.Error()))
		}

		quizzes, err := dbService.GetQuizzes(instanceID)
		if err != nil {
			slog.Error("Error fetching quizzes", slog.String("instanceID", instanceID), slog.String("error", err.Error()))
			return err
		}

		for _, quiz := range quizzes {
			if dbService.hasCustomIndexes(dbService.collectionSessions(instanceID, quiz.QuizKey)) {
				continue
			}
			if err := dbService.CreateIndexForSessionsCollection(instanceID, quiz.QuizKey); err != nil {
				slog.Error("Error creating index for sessions", slog.String("quizKey", quiz.QuizKey), slog.String("error", err.Error()))
			}
			if err := dbService.CreateIndexForLeadsCollection(instanceID, quiz.QuizKey); err != nil {
				slog.Error("Error creating index for leads", slog.String("quizKey", quiz.QuizKey), slog.String("error", err.Error()))
			}
		}
	}
	return nil
}

// hasCustomIndexes reports whether the collection already carries indexes
// beyond the default _id one.
func (dbService *QuizDBService) hasCustomIndexes(collection *mongo.Collection) bool {
	ctx, cancel := dbService.getContext()
	defer cancel()

	indexes, err := db.ListCollectionIndexes(ctx, collection)
	if err != nil {
		slog.Debug("Error listing collection indexes", slog.String("collection", collection.Name()), slog.String("error", err.Error()))
		return false
	}
	return len(indexes) > 1
}
