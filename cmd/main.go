package main

import (
	"context"
	"log"
	"os"

	"github.com/1MindLabs/mivro-server/config"
	"github.com/1MindLabs/mivro-server/routes"
	"github.com/1MindLabs/mivro-server/services"
	"github.com/1MindLabs/mivro-server/utils"
)

func main() {
	config.Load()
	config.InitDB()
	utils.InitS3()

	history := services.NewHistoryService(config.DB)
	events := services.NewAnalyticsService(config.DB)
	gemini, err := services.NewGeminiService(context.Background(), history, events)
	if err != nil {
		log.Fatalf("Failed to initialize Gemini client: %v", err)
	}
	off := services.NewOpenFoodFactsService()
	hub := services.NewRealtimeHub()
	search := services.NewSearchService(off, gemini, history, events, hub)

	r := routes.SetupRouter(routes.Build(search, gemini, history, events, hub))

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}
