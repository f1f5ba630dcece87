package api

import (
	"net/http"

	"alcyxob/fitness-dashboard/internal/repository"
	"alcyxob/fitness-dashboard/internal/service"
	"alcyxob/fitness-dashboard/internal/views"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the engine with the middleware every route shares.
// withSentry installs the Sentry handler; only enable it after sentry.Init.
func NewRouter(renderer *views.Renderer, withSentry bool) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), AccessLog(), gin.Recovery())
	if withSentry {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(SecurityHeaders(), Gate())
	router.HTMLRender = renderer
	return router
}

func SetupRoutes(
	router *gin.Engine,
	gw service.Gateway,
	authService service.AuthService,
	formService service.FormService,
	auditRepo repository.AuditRepository,
	secureCookies bool,
) {
	authHandler := NewAuthHandler(authService, secureCookies)
	managerHandler := NewManagerHandler(gw, formService, auditRepo)
	trainerHandler := NewTrainerHandler(gw, formService)
	clientHandler := NewClientHandler(gw)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	router.GET("/", authHandler.Home)
	router.GET("/login", authHandler.LoginForm)
	router.POST("/login", authHandler.Login)
	router.POST("/logout", authHandler.Logout)

	router.NoRoute(func(c *gin.Context) {
		renderError(c, http.StatusNotFound, "Page not found.", nil)
	})

	// Gate already ran for every request; paths below need a session and the
	// role their prefix demands.
	dashboard := router.Group("/dashboard")
	dashboard.Use(NoStore())
	{
		dashboard.GET("", Dashboard)

		manager := dashboard.Group("/manager")
		{
			manager.GET("", Dashboard)
			manager.GET("/trainer", managerHandler.ListTrainers)
			manager.GET("/trainer/create", managerHandler.NewTrainer)
			manager.POST("/trainer/create", managerHandler.CreateTrainer)
			manager.GET("/activity", managerHandler.Activity)
			manager.GET("/activity/:id", managerHandler.ActivityEntry)
		}

		trainer := dashboard.Group("/personalTrainer")
		{
			trainer.GET("", Dashboard)
			trainer.GET("/clients", trainerHandler.ListClients)
			trainer.GET("/clients/create", trainerHandler.NewClient)
			trainer.POST("/clients/create", trainerHandler.CreateClient)
			trainer.GET("/workouts", trainerHandler.ListWorkouts)
			trainer.GET("/workouts/create", trainerHandler.NewWorkout)
			trainer.POST("/workouts/create", trainerHandler.CreateWorkout)
			trainer.GET("/workouts/workout", trainerHandler.ShowWorkout)
			trainer.GET("/workouts/addexercise", trainerHandler.NewExercise)
			trainer.POST("/workouts/addexercise", trainerHandler.AppendExercise)
		}

		client := dashboard.Group("/client")
		{
			client.GET("", Dashboard)
			client.GET("/programs", clientHandler.Programs)
		}
	}
}
