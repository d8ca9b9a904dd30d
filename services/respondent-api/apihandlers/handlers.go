package apihandlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HttpEndpoints struct {
	allowedInstanceIDs []string
}

func NewHTTPHandler(
	allowedInstanceIDs []string,
) *HttpEndpoints {
	return &HttpEndpoints{
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
