package apihandlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	quizDB "github.com/quizflow/quiz-backend/pkg/db/quiz"
)

type HttpEndpoints struct {
	tokenSignKey       string
	quizDBService      *quizDB.QuizDBService
	allowedInstanceIDs []string
}

func NewHTTPHandler(
	tokenSignKey string,
	quizDBService *quizDB.QuizDBService,
	allowedInstanceIDs []string,
) *HttpEndpoints {
	return &HttpEndpoints{
		tokenSignKey:       tokenSignKey,
		quizDBService:      quizDBService,
		allowedInstanceIDs: allowedInstanceIDs,
	}
}

func (h *HttpEndpoints) isInstanceAllowed(instanceID string) bool {
	for _, id := range h.allowedInstanceIDs {
		if id == instanceID {
			return true
		}
	}
	return false
}

func HealthCheckHandle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
