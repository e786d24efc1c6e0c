package routes

import (
	"net/http"

	"github.com/1MindLabs/mivro-server/controllers"
	"github.com/1MindLabs/mivro-server/middlewares"
	"github.com/1MindLabs/mivro-server/services"

	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Search   *controllers.SearchController
	AI       *controllers.AIController
	User     *controllers.UserController
	Realtime *controllers.RealtimeController
}

// Build wires the services into controllers. Kept separate from SetupRouter
// so tests can mount handlers with stubbed services.
func Build(search *services.SearchService, gemini *services.GeminiService, history *services.HistoryService, events *services.AnalyticsService, hub *services.RealtimeHub) Controllers {
	return Controllers{
		Search:   controllers.NewSearchController(search, events),
		AI:       controllers.NewAIController(gemini, history, events),
		User:     controllers.NewUserController(history),
		Realtime: controllers.NewRealtimeController(hub),
	}
}

func SetupRouter(ctrl Controllers) *gin.Engine {
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	api.Use(middlewares.AuthMiddleware())
	{
		search := api.Group("/search")
		{
			search.GET("/barcode", ctrl.Search.Barcode)
			search.GET("/text", ctrl.Search.Text)
		}

		ai := api.Group("/ai")
		{
			ai.POST("/savora", ctrl.AI.Savora)
		}

		user := api.Group("/user")
		{
			user.GET("/profile", ctrl.User.GetProfile)
			user.GET("/history", ctrl.User.GetHistory)
		}

		realtime := api.Group("/realtime")
		{
			realtime.GET("/scans", ctrl.Realtime.ScansWS)
		}
	}

	return r
}
