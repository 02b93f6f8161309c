package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/adforgehq/adforge-api/configs"
	"github.com/adforgehq/adforge-api/internal/api/handlers"
	"github.com/adforgehq/adforge-api/internal/api/middleware"
	job "github.com/adforgehq/adforge-api/internal/jobs"
	"github.com/adforgehq/adforge-api/internal/queue"
	"github.com/adforgehq/adforge-api/internal/refdocs"
	"github.com/adforgehq/adforge-api/internal/repository"
	"github.com/adforgehq/adforge-api/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    100 * 1024 * 1024, // 100 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	userRepo := repository.NewUserRepository(db)
	intentRepo := repository.NewIntentRepository(db)
	contentRepo := repository.NewContentItemRepository(db)
	attemptRepo := repository.NewRegistrationAttemptRepository(db)
	brandRepo := repository.NewBrandProfileRepository(db)
	apiKeyRepository := repository.NewApiKeyRepository(db)

	specStore := refdocs.NewStore(cfg.PlatformSpecsPath)

	authService := service.NewAuthService(*cfg, userRepo)
	userService := service.NewUserService(userRepo)
	storageService := service.NewStorageService(*cfg)
	lateService := service.NewLateService(*cfg)
	contentService := service.NewContentService(contentRepo, storageService)
	scheduleService := service.NewScheduleService(*cfg, intentRepo, contentRepo, attemptRepo, brandRepo, lateService, storageService, specStore)
	webhookService := service.NewWebhookService(intentRepo)
	brandService := service.NewBrandService(*cfg, brandRepo)
	apiKeyService := service.NewApiKeyService(apiKeyRepository)

	authMiddleware := middleware.NewAuthMiddleware(*cfg, apiKeyService)

	auth := handlers.NewAuthHandler(*cfg, authService)
	app.Get("/login", auth.Login)
	app.Get("/login/callback", auth.LoginCallbackHandler)

	// Status notifications from Late. Unauthenticated by design; the handler
	// acknowledges everything.
	webhook := handlers.NewWebhookHandler(webhookService)
	app.Post("/webhooks/late", webhook.HandleLateWebhook)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	user := handlers.NewUserHandler(userService)
	api.Get("/user/info", user.GetUserInfo)
	api.Post("/user/remove", user.RemoveUser)

	brand := handlers.NewBrandHandler(brandService)
	api.Get("/brand/info", brand.GetBrandInfo)
	api.Post("/brand/update", brand.UpdateBrand)

	apiKeys := handlers.NewApiKeyHandler(apiKeyService)
	api.Post("/api_key/new", apiKeys.CreateApiKey)
	api.Get("/api_key/list", apiKeys.ListKeys)
	api.Post("/api_key/remove", apiKeys.RemoveAPIKey)

	content := handlers.NewContentHandler(contentService)
	api.Post("/creatives/upload", content.UploadCreative)
	api.Get("/creatives", content.ListCreatives)
	api.Post("/creatives/remove", content.RemoveCreative)

	accounts := handlers.NewAccountsHandler(lateService)
	api.Get("/accounts", accounts.ListConnectedAccounts)

	schedule := handlers.NewScheduleHandler(scheduleService, cfg.Late.RetryFailed, client)
	api.Post("/schedule", schedule.CreateIntent)
	api.Get("/schedule", schedule.ListIntents)
	api.Post("/schedule/cancel", schedule.CancelIntent)

	refdocsHandler := handlers.NewRefdocsHandler(specStore)
	api.Post("/admin/refdocs/reload", refdocsHandler.ReloadSpecs)

	// cron jobs
	reconcileJob := job.NewReconcileJob(*cfg, intentRepo, brandRepo, lateService)

	c := cron.New()
	c.AddFunc("@every 00h15m00s", reconcileJob.ReconcileStatuses)
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		worker := queue.NewWorker(scheduleService)

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypeRegisterPost, worker.HandleRegisterPostTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":3000"); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Println("Server is running on http://localhost:3000")

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
