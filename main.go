package main

import (
	"fmt"
	"os"

	"groomio-backend/config"
	"groomio-backend/models"
	"groomio-backend/routes"
	"groomio-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found")
	}
	config.InitLogger()
	config.ConnectDB()
	config.ConnectStorage()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Salon{},
		&models.Client{},
		&models.Pet{},
		&models.PetVisit{},
		&models.CalendarEvent{},
		&models.WebhookLog{},
		&models.CalComToken{},
		&models.ReminderLog{},
	)
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	reminders := services.NewReminderService(config.DB)
	reminders.StartScheduler()

	r := routes.SetupRouter()
	printRoutes(r)

	log.Info().Str("port", port).Msg("Starting server")
	if err := r.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}

func printRoutes(r *gin.Engine) {
	for _, route := range r.Routes() {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
