package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/1MindLabs/mivro-server/services"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	History *services.HistoryService
}

func NewUserController(history *services.HistoryService) *UserController {
	return &UserController{History: history}
}

// GET /api/v1/user/profile
func (h *UserController) GetProfile(c *gin.Context) {
	email := c.GetHeader("Mivro-Email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"health_profile": h.History.HealthProfile(email)})
}

// GET /api/v1/user/history?limit=...
func (h *UserController) GetHistory(c *gin.Context) {
	email := c.GetHeader("Mivro-Email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required."})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	entries, err := h.History.ListScans(email, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": genericErrorMessage})
		return
	}

	scans := make([]gin.H, 0, len(entries))
	for _, entry := range entries {
		result := map[string]any{}
		_ = json.Unmarshal([]byte(entry.Result), &result)
		scans = append(scans, gin.H{
			"id":          entry.ID,
			"query":       entry.Query,
			"search_type": entry.SearchType,
			"result":      result,
			"created_at":  entry.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"history": scans})
}
