package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/quizflow/quiz-backend/pkg/apihelpers"
	mw "github.com/quizflow/quiz-backend/pkg/apihelpers/middlewares"
	jwthandling "github.com/quizflow/quiz-backend/pkg/jwt-handling"
	quizService "github.com/quizflow/quiz-backend/pkg/quiz"
)

func (h *HttpEndpoints) AddDashboardAPI(rg *gin.RouterGroup) {
	dashboardGroup := rg.Group("/dashboard")
	dashboardGroup.Use(mw.GetAndValidateDashboardUserJWT(h.tokenSignKey))

	quizzesGroup := dashboardGroup.Group("/quizzes/:quizKey")
	{
		quizzesGroup.GET("/funnel", h.getQuizFunnel)
		quizzesGroup.GET("/sessions", h.getQuizSessions)
		quizzesGroup.GET("/leads", h.getQuizLeads)
	}
}

func (h *HttpEndpoints) validateInstanceFromToken(c *gin.Context) (instanceID string, ok bool) {
	token := c.MustGet("validatedToken").(*jwthandling.DashboardUserClaims)

	if !h.isInstanceAllowed(token.InstanceID) {
		slog.Warn("instance not allowed", slog.String("instanceID", token.InstanceID), slog.String("userID", token.Subject))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "instance not allowed"})
		return "", false
	}
	return token.InstanceID, true
}

func (h *HttpEndpoints) getQuizFunnel(c *gin.Context) {
	instanceID, ok := h.validateInstanceFromToken(c)
	if !ok {
		return
	}
	quizKey := c.Param("quizKey")

	slog.Debug("computing quiz funnel", slog.String("instanceID", instanceID), slog.String("quizKey", quizKey))

	stats, err := quizService.GetFunnelStats(instanceID, quizKey)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "quiz not found"})
			return
		}
		slog.Error("error computing quiz funnel", slog.String("instanceID", instanceID), slog.String("quizKey", quizKey), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error computing quiz funnel"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *HttpEndpoints) getQuizSessions(c *gin.Context) {
	instanceID, ok := h.validateInstanceFromToken(c)
	if !ok {
		return
	}
	quizKey := c.Param("quizKey")

	query, err := apihelpers.ParsePaginatedQueryFromCtx(c)
	if err != nil {
		slog.Error("failed to parse paginated query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessions, paginationInfo, err := h.quizDBService.GetSessionsPaginated(instanceID, quizKey, query.Filter, query.Sort, query.Page, query.Limit)
	if err != nil {
		slog.Error("error fetching sessions", slog.String("instanceID", instanceID), slog.String("quizKey", quizKey), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching sessions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessions":   sessions,
		"pagination": paginationInfo,
	})
}

func (h *HttpEndpoints) getQuizLeads(c *gin.Context) {
	instanceID, ok := h.validateInstanceFromToken(c)
	if !ok {
		return
	}
	quizKey := c.Param("quizKey")

	leads, err := h.quizDBService.GetLeadsByQuiz(instanceID, quizKey)
	if err != nil {
		slog.Error("error fetching leads", slog.String("instanceID", instanceID), slog.String("quizKey", quizKey), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error fetching leads"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"leads": leads})
}
