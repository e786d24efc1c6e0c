package controllers

import (
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/1MindLabs/mivro-server/models"
	"github.com/1MindLabs/mivro-server/services"
	"github.com/1MindLabs/mivro-server/utils"

	"github.com/gin-gonic/gin"
)

var allowedMediaExtensions = []string{".png", ".jpg", ".jpeg", ".pdf", ".txt"}

type AIController struct {
	Gemini  *services.GeminiService
	History *services.HistoryService
	Events  *services.AnalyticsService
}

func NewAIController(gemini *services.GeminiService, history *services.HistoryService, events *services.AnalyticsService) *AIController {
	return &AIController{Gemini: gemini, History: history, Events: events}
}

// POST /api/v1/ai/savora, chat with the assistant. Accepts JSON
// {"type":"text","message":"..."} or multipart form data with a "media"
// file for media messages.
func (h *AIController) Savora(c *gin.Context) {
	email := c.GetHeader("Mivro-Email")

	var messageType, message string
	var media []byte
	var mediaName, mediaMIME string

	if file, err := c.FormFile("media"); err == nil {
		messageType = c.PostForm("type")
		message = c.PostForm("message")

		if !allowedMedia(file.Filename) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type. Allowed types: PNG, JPG, JPEG, PDF, TXT."})
			return
		}
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to read file."})
			return
		}
		defer f.Close()
		media, err = io.ReadAll(f)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to read file."})
			return
		}
		mediaName = file.Filename
		mediaMIME = file.Header.Get("Content-Type")
	} else {
		var req struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
			return
		}
		messageType = req.Type
		message = req.Message
	}

	if email == "" || messageType == "" || message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email, message type, and message are required."})
		return
	}

	switch messageType {
	case "text":
		media = nil
	case "media":
		if len(media) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file selected."})
			return
		}
		// Archival is best-effort; the chat still proceeds without it.
		if key, err := utils.ArchiveChatMedia(c.Request.Context(), media, mediaName, mediaMIME); err != nil {
			log.Printf("Failed to archive chat media for %s: %v", email, err)
		} else {
			log.Printf("Archived chat media for %s at %s", email, key)
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message type."})
		return
	}

	response, err := h.Gemini.Chat(c.Request.Context(), message, mediaMIME, media)
	if err != nil {
		h.Events.RuntimeError("savora", err, "email", email)
		c.JSON(http.StatusInternalServerError, gin.H{"error": genericErrorMessage})
		return
	}

	entry := models.ChatHistory{
		UserMessage: message,
		BotResponse: response,
		MessageType: messageType,
	}
	if err := h.History.AppendChat(email, entry); err != nil {
		h.Events.RuntimeError("chat_history", err, "email", email)
	}

	c.JSON(http.StatusOK, gin.H{"response": response})
}

func allowedMedia(filename string) bool {
	name := strings.ToLower(filename)
	for _, ext := range allowedMediaExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
