package handlers

import (
	"bytes"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
)

// agentTimeout bounds a full round trip to the agent service, which can take
// over a minute for a cold model.
const agentTimeout = 80 * time.Second

// AgentHandler proxies natural-language questions to the internal LLM agent
// service. The agent authenticates the proxy via a shared secret header and
// answers with read-only SQL results.
type AgentHandler struct {
	client *http.Client
}

func NewAgentHandler() *AgentHandler {
	return &AgentHandler{
		client: &http.Client{Timeout: agentTimeout},
	}
}

// Ask forwards a question to the agent service
// @Summary Ask the assistant
// @Description Forward a natural-language question to the internal agent service and relay its answer
// @Tags agent
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param question body map[string]string true "Question payload"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /agent/ask [post]
func (h *AgentHandler) Ask(c *gin.Context) {
	agentURL := os.Getenv("AGENT_INTERNAL_URL")
	if agentURL == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Agent service is not configured"})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodPost, agentURL, bytes.NewReader(body))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build agent request"})
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Agent-Secret", os.Getenv("AGENT_SECRET"))

	resp, err := h.client.Do(req)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Agent service is unreachable"})
		return
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Agent service returned an unreadable response"})
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}

	c.Data(resp.StatusCode, contentType, payload)
}
