package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v2"

	"github.com/quizflow/quiz-backend/pkg/apihelpers"
	"github.com/quizflow/quiz-backend/pkg/db"
	"github.com/quizflow/quiz-backend/pkg/quiz"
	"github.com/quizflow/quiz-backend/pkg/utils"

	quizDB "github.com/quizflow/quiz-backend/pkg/db/quiz"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_QUIZ_DB_USERNAME = "QUIZ_DB_USERNAME"
	ENV_QUIZ_DB_PASSWORD = "QUIZ_DB_PASSWORD"
)

type RespondentApiConfig struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// Gin configs
	GinConfig struct {
		DebugMode    bool     `json:"debug_mode" yaml:"debug_mode"`
		AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
		Port         string   `json:"port" yaml:"port"`

		// Mutual TLS configs
		MTLS struct {
			Use              bool                        `json:"use" yaml:"use"`
			CertificatePaths apihelpers.CertificatePaths `json:"certificate_paths" yaml:"certificate_paths"`
		} `json:"mtls" yaml:"mtls"`
	} `json:"gin_config" yaml:"gin_config"`

	AllowedInstanceIDs []string `json:"allowed_instance_ids" yaml:"allowed_instance_ids"`

	// DB configs
	DBConfigs struct {
		QuizDB db.DBConfigYaml `json:"quiz_db" yaml:"quiz_db"`
	} `json:"db_configs" yaml:"db_configs"`
}

var (
	quizDBService *quizDB.QuizDBService
)

func init() {
	// Read config from file
	yamlFile, err := os.ReadFile(os.Getenv(ENV_CONFIG_FILE_PATH))
	if err != nil {
		panic(err)
	}

	err = yaml.UnmarshalStrict(yamlFile, &conf)
	if err != nil {
		panic(err)
	}

	// Init logger:
	utils.InitLogger(conf.Logging)

	// Override secrets from environment variables
	secretsOverride()

	// Init DBs
	initDBs()

	if !conf.GinConfig.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	quiz.Init(quizDBService)
}

func secretsOverride() {
	if dbUsername := os.Getenv(ENV_QUIZ_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.QuizDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_QUIZ_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.QuizDB.Password = dbPassword
	}
}

func initDBs() {
	var err error
	quizDBService, err = quizDB.NewQuizDBService(db.DBConfigFromYamlObj(conf.DBConfigs.QuizDB, conf.AllowedInstanceIDs))
	if err != nil {
		slog.Error("Error connecting to Quiz DB", slog.String("error", err.Error()))
		panic(err)
	}
}
