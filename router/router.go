package router

import (
	"github.com/briankang0314/machsuri-server/controllers"
	"github.com/briankang0314/machsuri-server/middlewares"
	"github.com/briankang0314/machsuri-server/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	// Registered before the routes so every handler goes through it
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	// Uploaded profile images
	r.Static("/uploads", "public/uploads")

	userCtrl := controllers.NewUserController(db)
	jobCtrl := controllers.NewJobController(db)
	appCtrl := controllers.NewApplicationController(db)
	categoryCtrl := controllers.NewCategoryController(db)
	locationCtrl := controllers.NewLocationController(db)
	reviewCtrl := controllers.NewReviewController(db)
	notifCtrl := controllers.NewNotificationController(db)

	auth := middlewares.AuthMiddleware(db)
	adminOnly := middlewares.RoleCheck(models.RoleAdmin)
	jobOwner := middlewares.JobOwnerCheck(db)
	appOwner := middlewares.ApplicationOwnerCheck(db)
	reviewOwner := middlewares.ReviewOwnerCheck(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	public := r.Group("/users")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	r.GET("/jobs/all", jobCtrl.GetAllJobs)
	r.GET("/jobs/:job_id", jobCtrl.GetJobByID)
	r.GET("/categories", categoryCtrl.GetAllCategories)
	r.GET("/locations", locationCtrl.GetAllLocations)
	r.GET("/reviews/user/:user_id", reviewCtrl.GetReviewsForUser)
	r.GET("/users/:user_id", userCtrl.GetUserByID)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	users := r.Group("/users")
	users.Use(auth)
	{
		users.GET("/profile", userCtrl.GetProfile)
		users.PUT("/profile", userCtrl.UpdateProfile)
		users.POST("/profile/image", userCtrl.UploadProfileImage)
		users.PUT("/location", userCtrl.UpdateLocation)
		users.PUT("/preferences", userCtrl.UpdatePreferences)
		users.PUT("/delete", userCtrl.SoftDeleteUser)
		users.GET("", adminOnly, userCtrl.GetAllUsers)
	}

	jobs := r.Group("/jobs")
	jobs.Use(auth)
	{
		jobs.POST("", middlewares.RoleCheck(models.RoleGeneral, models.RoleAdmin), jobCtrl.CreateJob)
		jobs.PUT("/:job_id", jobOwner, jobCtrl.UpdateJob)
		jobs.PUT("/:job_id/status", jobOwner, jobCtrl.UpdateJobStatus)
		jobs.PUT("/:job_id/location", jobOwner, jobCtrl.UpdateJobLocation)
		jobs.PUT("/:job_id/delete", jobOwner, jobCtrl.SoftDeleteJob)
		jobs.DELETE("/:job_id", jobOwner, jobCtrl.DeleteJob)
	}

	applications := r.Group("/applications")
	applications.Use(auth)
	{
		applications.POST("", appCtrl.SubmitApplication)
		applications.GET("", appCtrl.GetMyApplications)
		applications.GET("/job/:job_id", jobOwner, appCtrl.GetApplicationsForJob)
		applications.PUT("/:application_id", appOwner, appCtrl.UpdateApplicationStatus)
		applications.DELETE("/:application_id", appOwner, appCtrl.DeleteApplication)
	}

	categories := r.Group("/categories")
	categories.Use(auth, adminOnly)
	{
		categories.POST("/major", categoryCtrl.CreateMajorCategory)
		categories.POST("/minor", categoryCtrl.CreateMinorCategory)
	}

	locations := r.Group("/locations")
	locations.Use(auth, adminOnly)
	{
		locations.POST("/region", locationCtrl.CreateRegion)
		locations.POST("/city", locationCtrl.CreateCity)
	}

	reviews := r.Group("/reviews")
	reviews.Use(auth)
	{
		reviews.POST("", reviewCtrl.CreateReview)
		reviews.DELETE("/:review_id", reviewOwner, reviewCtrl.DeleteReview)
	}

	notifications := r.Group("/notifications")
	notifications.Use(auth)
	{
		notifications.GET("", notifCtrl.GetMyNotifications)
		notifications.PUT("/read-all", notifCtrl.MarkAllNotificationsRead)
		notifications.PUT("/:notification_id/read", notifCtrl.MarkNotificationRead)
	}

	// Websocket stream; token comes in via query param.
	ws := r.Group("/notifications/ws")
	ws.Use(middlewares.WebSocketAuthMiddleware(db))
	{
		ws.GET("", notifCtrl.NotificationStreamHandler)
	}

	return r
}
