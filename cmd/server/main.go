package main

import (
	"log"
	"os"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/sitecrew/sitecrew-api/internal/config"
	"github.com/sitecrew/sitecrew-api/internal/constants"
	"github.com/sitecrew/sitecrew-api/internal/database"
	"github.com/sitecrew/sitecrew-api/internal/handlers"
	"github.com/sitecrew/sitecrew-api/internal/middleware"
	"github.com/sitecrew/sitecrew-api/internal/repository"
	"github.com/sitecrew/sitecrew-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Configure structured logging
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Fatalf("Failed to add indexes: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction, // true in production (HTTPS), false in development
		SameSite: 2,            // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	clientRepo := repository.NewClientRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	timeEntryRepo := repository.NewTimeEntryRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	photoRepo := repository.NewProjectPhotoRepository(db)
	offboardingRepo := repository.NewOffboardingRepository(db)
	archiveRepo := repository.NewArchiveRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	orgService := services.NewOrganizationService(orgRepo)
	taskService := services.NewTaskService(taskRepo, orgRepo)
	projectService := services.NewProjectService(projectRepo, clientRepo, orgRepo)
	worklogService := services.NewWorklogService(timeEntryRepo, expenseRepo, photoRepo, projectRepo)
	offboardingService := services.NewOffboardingService(
		offboardingRepo,
		archiveRepo,
		userRepo,
		orgRepo,
		taskRepo,
		projectRepo,
		timeEntryRepo,
		expenseRepo,
		photoRepo,
		logger,
	)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	orgHandler := handlers.NewOrganizationHandler(orgService)
	taskHandler := handlers.NewTaskHandler(taskService)
	projectHandler := handlers.NewProjectHandler(projectService)
	worklogHandler := handlers.NewWorklogHandler(worklogService)
	offboardingHandler := handlers.NewOffboardingHandler(offboardingService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "SiteCrew API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Organization routes (protected)
		orgs := api.Group("/organizations")
		orgs.Use(middleware.RequireAuth())
		{
			orgs.POST("", orgHandler.CreateOrganization)
			orgs.GET("", orgHandler.ListOrganizations)
			orgs.POST("/join", orgHandler.JoinOrganization)
			orgs.GET("/:id", middleware.RequireOrganizationAccess(), orgHandler.GetOrganization)
			orgs.PUT("/:id", middleware.RequireOrganizationAccess(), middleware.RequireOrganizationOwner(), orgHandler.UpdateOrganization)
			orgs.DELETE("/:id", middleware.RequireOrganizationAccess(), middleware.RequireOrganizationOwner(), orgHandler.DeleteOrganization)
			orgs.POST("/:id/regenerate-code", middleware.RequireOrganizationAccess(), middleware.RequireOrganizationOwner(), orgHandler.RegenerateInviteCode)
			orgs.DELETE("/:id/members/:user_id", middleware.RequireOrganizationAccess(), middleware.RequireOrganizationOwner(), orgHandler.RemoveMember)

			// Client routes
			orgs.POST("/:id/clients", middleware.RequireOrganizationAccess(), middleware.RequireOrganizationOwner(), projectHandler.CreateClient)
			orgs.GET("/:id/clients", middleware.RequireOrganizationAccess(), projectHandler.ListClients)
			orgs.DELETE("/:id/clients/:client_id", middleware.RequireOrganizationAccess(), middleware.RequireOrganizationOwner(), projectHandler.DeleteClient)

			// Project routes
			orgs.POST("/:id/projects", middleware.RequireOrganizationAccess(), projectHandler.CreateProject)
			orgs.GET("/:id/projects", middleware.RequireOrganizationAccess(), projectHandler.ListProjects)
			orgs.GET("/:id/projects/:project_id", middleware.RequireOrganizationAccess(), projectHandler.GetProject)
			orgs.PUT("/:id/projects/:project_id", middleware.RequireOrganizationAccess(), projectHandler.UpdateProject)
			orgs.DELETE("/:id/projects/:project_id", middleware.RequireOrganizationAccess(), middleware.RequireOrganizationOwner(), projectHandler.DeleteProject)
			orgs.POST("/:id/projects/:project_id/photos", middleware.RequireOrganizationAccess(), worklogHandler.AddPhoto)
			orgs.GET("/:id/projects/:project_id/photos", middleware.RequireOrganizationAccess(), worklogHandler.ListPhotos)

			// Work log routes
			orgs.POST("/:id/time-entries", middleware.RequireOrganizationAccess(), worklogHandler.LogTime)
			orgs.GET("/:id/time-entries", middleware.RequireOrganizationAccess(), worklogHandler.ListTimeEntries)
			orgs.DELETE("/:id/time-entries/:entry_id", middleware.RequireOrganizationAccess(), worklogHandler.DeleteTimeEntry)
			orgs.POST("/:id/expenses", middleware.RequireOrganizationAccess(), worklogHandler.SubmitExpense)
			orgs.GET("/:id/expenses", middleware.RequireOrganizationAccess(), worklogHandler.ListExpenses)
			orgs.DELETE("/:id/expenses/:expense_id", middleware.RequireOrganizationAccess(), worklogHandler.DeleteExpense)

			// Offboarding routes (owner only)
			orgs.GET("/:id/members/:user_id/offboarding-preview", middleware.RequireOrganizationAccess(), middleware.RequireOrganizationOwner(), offboardingHandler.GetImpactPreview)
			orgs.POST("/:id/members/:user_id/offboarding", middleware.RequireOrganizationAccess(), middleware.RequireOrganizationOwner(), offboardingHandler.InitiateOffboarding)
			orgs.GET("/:id/offboarding", middleware.RequireOrganizationAccess(), middleware.RequireOrganizationOwner(), offboardingHandler.ListOffboardings)
			orgs.GET("/:id/offboarding/:record_id", middleware.RequireOrganizationAccess(), middleware.RequireOrganizationOwner(), offboardingHandler.GetOffboarding)
			orgs.POST("/:id/offboarding/:record_id/execute", middleware.RequireOrganizationAccess(), middleware.RequireOrganizationOwner(), offboardingHandler.ExecuteOffboarding)
			orgs.GET("/:id/offboarding/:record_id/report.pdf", middleware.RequireOrganizationAccess(), middleware.RequireOrganizationOwner(), offboardingHandler.ExportOffboardingReport)
			orgs.POST("/:id/offboarding/:record_id/restore", middleware.RequireOrganizationAccess(), middleware.RequireOrganizationOwner(), offboardingHandler.RestoreUser)
			orgs.GET("/:id/members/:user_id/archives", middleware.RequireOrganizationAccess(), middleware.RequireOrganizationOwner(), offboardingHandler.ListUserArchives)
			orgs.GET("/:id/archives/:archive_ref", middleware.RequireOrganizationAccess(), middleware.RequireOrganizationOwner(), offboardingHandler.GetArchive)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", middleware.RequireTaskAccess(), taskHandler.GetTask)
			tasks.PUT("/:id", middleware.RequireTaskAccess(), taskHandler.UpdateTask)
			tasks.DELETE("/:id", middleware.RequireTaskAccess(), taskHandler.DeleteTask)
			tasks.POST("/:id/assign", middleware.RequireTaskAccess(), taskHandler.AssignTask)
			tasks.POST("/:id/unassign", middleware.RequireTaskAccess(), taskHandler.UnassignTask)
			tasks.POST("/:id/toggle", middleware.RequireTaskAccess(), taskHandler.ToggleTaskStatus)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
