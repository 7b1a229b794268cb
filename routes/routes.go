package routes

import (
	"os"
	"strings"

	"groomio-backend/config"
	"groomio-backend/controllers"
	"groomio-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(config.RequestLogger())

	allowedOrigins := strings.Split(os.Getenv("CORS_ORIGINS"), ",")
	if len(allowedOrigins) == 1 && allowedOrigins[0] == "" {
		allowedOrigins = []string{"http://localhost:3000"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	// Provider-pushed notifications carry no user token.
	r.POST("/api/webhooks/calcom", controllers.HandleCalComWebhook)

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Cal.com account linking
		api.GET("/auth/calcom", controllers.InitiateCalComAuth)
		api.GET("/auth/calcom/callback", controllers.CalComAuthCallback)

		// Client routes
		clients := api.Group("/clients")
		{
			clients.POST("", controllers.CreateClient)
			clients.GET("", controllers.GetClients)
			clients.GET("/:id", controllers.GetClient)
			clients.PUT("/:id", controllers.UpdateClient)
			clients.DELETE("/:id", controllers.DeleteClient)
			clients.POST("/:id/pets/:petId", controllers.LinkPet)
			clients.DELETE("/:id/pets/:petId", controllers.UnlinkPet)
		}

		// Pet routes
		pets := api.Group("/pets")
		{
			pets.POST("", controllers.CreatePet)
			pets.GET("", controllers.GetPets)
			pets.GET("/:id", controllers.GetPet)
			pets.PUT("/:id", controllers.UpdatePet)
			pets.DELETE("/:id", controllers.DeletePet)
			pets.POST("/:id/visits", controllers.CreateVisit)
			pets.GET("/:id/visits", controllers.GetVisits)
		}

		// Visit routes
		visits := api.Group("/visits")
		{
			visits.PUT("/:id", controllers.UpdateVisit)
			visits.DELETE("/:id", controllers.DeleteVisit)
			visits.POST("/:id/photos", controllers.UploadVisitPhoto)
			visits.DELETE("/:id/photos", controllers.DeleteVisitPhoto)
		}
		api.GET("/photos/url", controllers.GetPhotoURL)

		// Calendar routes
		calendar := api.Group("/calendar")
		{
			calendar.GET("/connection", controllers.GetCalendarConnection)
			calendar.GET("/events", controllers.GetCalendarEvents)
			calendar.GET("/events/today", controllers.GetTodaysEvents)
			calendar.GET("/events/week", controllers.GetThisWeeksEvents)
			calendar.GET("/pets/:id/upcoming", controllers.GetPetUpcomingEvents)
			calendar.GET("/pets/:id/past", controllers.GetPetPastEvents)
			calendar.POST("/sync", controllers.SyncCalendar)
		}

		// Salon profile routes
		profile := api.Group("/profile")
		{
			profile.GET("", controllers.GetSalonProfile)
			profile.PUT("", controllers.UpdateSalonProfile)
		}
	}

	return r
}
