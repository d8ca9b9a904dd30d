package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	mw "github.com/quizflow/quiz-backend/pkg/apihelpers/middlewares"
	quizService "github.com/quizflow/quiz-backend/pkg/quiz"
	"github.com/quizflow/quiz-backend/pkg/quiz/quizengine"
)

func (h *HttpEndpoints) AddQuizServiceAPI(rg *gin.RouterGroup) {
	quizServiceGroup := rg.Group("/quiz-service")

	sessionsGroup := quizServiceGroup.Group("/quizzes/:quizKey/sessions")
	{
		sessionsGroup.POST("", mw.RequirePayload(), h.startQuizSession)
		sessionsGroup.GET("/:sessionID/steps/:stepID", h.getStepWithContext)
		sessionsGroup.POST("/:sessionID/steps/:stepID/answer", mw.RequirePayload(), h.submitAnswer)
	}
}

func (h *HttpEndpoints) startQuizSession(c *gin.Context) {
	quizKey := c.Param("quizKey")

	var req struct {
		InstanceID string `json:"instanceId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.InstanceID == "" {
		slog.Error("instanceId is required", slog.String("quizKey", quizKey))
		c.JSON(http.StatusBadRequest, gin.H{"error": "instanceId is required"})
		return
	}

	if !h.isInstanceAllowed(req.InstanceID) {
		slog.Error("instance not allowed", slog.String("instanceID", req.InstanceID))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "instance not allowed"})
		return
	}

	slog.Info("starting quiz session", slog.String("instanceID", req.InstanceID), slog.String("quizKey", quizKey))

	session, entryStep, err := quizService.OnStartSession(req.InstanceID, quizKey)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			slog.Warn("quiz not found", slog.String("instanceID", req.InstanceID), slog.String("quizKey", quizKey))
			c.JSON(http.StatusNotFound, gin.H{"error": "quiz not found"})
			return
		}
		slog.Error("error starting quiz session", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error starting quiz session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionId": session.SessionID,
		"step":      entryStep,
	})
}

func (h *HttpEndpoints) getStepWithContext(c *gin.Context) {
	quizKey := c.Param("quizKey")
	sessionID := c.Param("sessionID")
	stepID := c.Param("stepID")
	instanceID := c.DefaultQuery("instanceID", "")

	if !h.isInstanceAllowed(instanceID) {
		slog.Error("instance not allowed", slog.String("instanceID", instanceID))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "instance not allowed"})
		return
	}

	step, err := quizService.GetStepWithContext(instanceID, quizKey, sessionID, stepID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, quizengine.ErrStepNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "step not found"})
			return
		}
		slog.Error("error getting step with context", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error getting step"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"step": step})
}

func (h *HttpEndpoints) submitAnswer(c *gin.Context) {
	quizKey := c.Param("quizKey")
	sessionID := c.Param("sessionID")
	stepID := c.Param("stepID")

	var req struct {
		InstanceID string      `json:"instanceId"`
		Value      interface{} `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.isInstanceAllowed(req.InstanceID) {
		slog.Error("instance not allowed", slog.String("instanceID", req.InstanceID))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "instance not allowed"})
		return
	}

	slog.Debug("submitting answer", slog.String("instanceID", req.InstanceID), slog.String("quizKey", quizKey), slog.String("sessionID", sessionID), slog.String("stepID", stepID))

	result, err := quizService.OnSubmitAnswer(req.InstanceID, quizKey, sessionID, stepID, req.Value)
	if err != nil {
		var vErr *quizService.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error(), "fields": vErr.Fields})
			return
		}
		if errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, quizengine.ErrStepNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session or step not found"})
			return
		}
		slog.Error("error submitting answer", slog.String("instanceID", req.InstanceID), slog.String("quizKey", quizKey), slog.String("sessionID", sessionID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error submitting answer"})
		return
	}

	c.JSON(http.StatusOK, result)
}
