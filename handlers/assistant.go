package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"crime-analytics-api/models"
	"crime-analytics-api/services"

	"github.com/gin-gonic/gin"
)

// chunkPacing smooths the stream so the client renders tokens gradually.
const chunkPacing = 10 * time.Millisecond

type AssistantHandler struct {
	assistant *services.AssistantService
}

func NewAssistantHandler(assistant *services.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistant: assistant}
}

// SafetyAssistant relays a streamed response from the generative-language
// service as chunked plain text. The producer is cancelled through the
// request context when the client disconnects.
func (h *AssistantHandler) SafetyAssistant(c *gin.Context) {
	if h.assistant == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI Assistant is not configured. Please check the API key."})
		return
	}

	var req models.SafetyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message cannot be empty."})
		return
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	chunks := h.assistant.StreamSafetyTips(ctx, req.Message, req.CrimeContext)
	services.AssistantStreams.Inc()

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Status(http.StatusOK)

	for chunk := range chunks {
		if _, err := c.Writer.WriteString(chunk); err != nil {
			return
		}
		c.Writer.Flush()

		select {
		case <-ctx.Done():
			return
		case <-time.After(chunkPacing):
		}
	}
}
