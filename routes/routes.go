package routes

import (
	"dev-eval-api/config"
	"dev-eval-api/controllers"
	"dev-eval-api/middleware"
	"dev-eval-api/models"
	"dev-eval-api/notifications"
	"dev-eval-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps carries the constructed dependencies the routes wire together.
type Deps struct {
	DB       *gorm.DB
	Storage  *services.Storage
	Workflow *services.Workflow
	Hub      *notifications.Hub
	Mailer   *config.Mailer
}

func SetupRoutes(router *gin.Engine, deps Deps) {
	auth := controllers.NewAuthController(deps.DB)
	submissions := controllers.NewSubmissionController(deps.DB, deps.Storage, deps.Workflow)
	evaluations := controllers.NewEvaluationController(deps.Workflow)
	events := controllers.NewEventsController(deps.DB, deps.Hub)
	notification := controllers.NewNotificationController(services.NewDecisionMailer(deps.Mailer))

	// Uploaded assets are public, addressed by bucket-relative path
	router.Static("/files/"+services.BucketProfilePictures, deps.Storage.BucketDir(services.BucketProfilePictures))
	router.Static("/files/"+services.BucketSourceCode, deps.Storage.BucketDir(services.BucketSourceCode))

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", auth.Login)

			// Decision notification boundary
			public.POST("/decision-email", notification.SendDecisionEmail)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Developer Evaluation API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.DB))
		{
			// User profile
			protected.GET("/profile", auth.GetProfile)
			protected.PUT("/change-password", auth.ChangePassword)

			// Submissions
			subs := protected.Group("/submissions")
			{
				// Developers create their single submission and read it back
				subs.POST("", middleware.RequireRole(models.RoleDeveloper), submissions.CreateSubmission)
				subs.GET("/mine", middleware.RequireRole(models.RoleDeveloper), submissions.GetMySubmission)

				// Evaluators list, read, annotate and decide
				subs.GET("", middleware.RequireRole(models.RoleEvaluator), submissions.GetSubmissions)
				subs.GET("/:id", middleware.RequireRole(models.RoleEvaluator), submissions.GetSubmission)
				subs.PUT("/:id/feedback", middleware.RequireRole(models.RoleEvaluator), evaluations.SaveFeedback)
				subs.POST("/:id/decision", middleware.RequireRole(models.RoleEvaluator), evaluations.Decide)

				// Both sides keep an open record in sync (handler checks
				// that developers only watch their own record)
				subs.GET("/:id/events", events.Subscribe)
			}
		}
	}
}
