package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	config "github.com/maheshrc27/contentflow/configs"
	"github.com/maheshrc27/contentflow/internal/api/handlers"
	"github.com/maheshrc27/contentflow/internal/api/middleware"
	job "github.com/maheshrc27/contentflow/internal/jobs"
	"github.com/maheshrc27/contentflow/internal/models"
	"github.com/maheshrc27/contentflow/internal/queue"
	"github.com/maheshrc27/contentflow/internal/repository"
	"github.com/maheshrc27/contentflow/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()
	if len(os.Args) > 1 && os.Args[1] == "token" {
		if err := issueToken(cfg, os.Args[2:], os.Stdout); err != nil {
			log.Fatalf("Failed to issue token: %v", err)
		}
		return
	}
	loc := cfg.Location()

	registry, err := service.NewPlatformRegistry(config.DefaultPlatforms())
	if err != nil {
		log.Fatalf("Invalid platform catalog: %v", err)
	}
	strategy, err := service.NewContentStrategy(config.DefaultThemes(), config.DefaultBaseHashtags(), registry)
	if err != nil {
		log.Fatalf("Invalid theme table: %v", err)
	}
	generator, err := service.NewTemplateGenerator()
	if err != nil {
		log.Fatalf("Invalid content templates: %v", err)
	}

	trusted := make([]models.ThemeTag, 0, len(cfg.AutoTrustedThemes))
	for _, t := range cfg.AutoTrustedThemes {
		trusted = append(trusted, models.ThemeTag(t))
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	deps := service.PipelineDeps{Enqueuer: queue.NewPublisher(client)}

	var db *sql.DB
	var valueSignal service.ValueSignalSource
	if cfg.PostgresURI != "" {
		db, err = sql.Open("postgres", cfg.PostgresURI)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := db.Ping(); err != nil {
			log.Fatalf("Database is unreachable: %v", err)
		}
		deps.Posts = repository.NewPostRepository(db)
		deps.History = repository.NewPostingHistoryRepository(db)
		deps.Engagement = repository.NewEngagementRepository(db)
		valueSignal = repository.NewValueSignalRepository(db)
	} else {
		log.Println("Warning: POSTGRES_URI not set, posts are kept in memory only")
	}

	if cfg.R2.BucketName != "" {
		r2Client, err := service.NewR2Client(context.Background(), cfg.R2)
		if err != nil {
			log.Fatalf("Failed to configure R2: %v", err)
		}
		deps.Archive = service.NewArchiveService(r2Client, cfg.R2.BucketName)
	}

	approvalQueue := service.NewApprovalQueue(registry, trusted)
	scheduler := service.NewScheduler(strategy, approvalQueue, generator, cfg.OptimalHours, loc)
	transport := service.NewRelayTransport(cfg.TransportURL, cfg.TransportTimeout)
	if !transport.Configured() {
		log.Println("Warning: TRANSPORT_URL not set, every delivery will fail")
	}
	publisher := service.NewPlatformPublisher(registry, approvalQueue, transport)
	tracker := service.NewAnalyticsTracker(valueSignal, loc)
	pipeline := service.NewPipelineService(registry, scheduler, approvalQueue, publisher, tracker, deps)

	if _, err := pipeline.Restore(context.Background()); err != nil {
		log.Fatalf("Failed to restore approval queue: %v", err)
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	authMiddleware := middleware.NewAuthMiddleware(*cfg)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())
	registerRoutes(api, pipeline)

	// cron jobs
	dailyJob := job.NewDailyContentJob(pipeline)
	c, err := job.Start(cfg.DailyCron, loc, dailyJob)
	if err != nil {
		log.Fatalf("Invalid DAILY_CRON %q: %v", cfg.DailyCron, err)
	}
	defer c.Stop()

	//queue
	worker := queue.NewQueue(pipeline)
	server := asynq.NewServer(redisConn, asynq.Config{
		Concurrency: 10,
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.TaskTypePublishPost, worker.HandlePublishPostTask)

	log.Println("Starting the Asynq server...")
	if err := server.Start(mux); err != nil {
		log.Fatalf("Could not start Asynq server: %v", err)
	}

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Server is running on http://localhost:%s", cfg.Port)

	gracefulShutdown(app, server, db)
}

func registerRoutes(api fiber.Router, pipeline service.PipelineService) {
	post := handlers.NewPostHandler(pipeline)
	api.Post("/content/generate", post.GenerateDailyContent)
	api.Get("/queue", post.GetQueue)
	api.Get("/posts/:id", post.GetPost)
	api.Post("/posts/:id/approve", post.ApprovePost)
	api.Post("/posts/:id/reject", post.RejectPost)
	api.Post("/posts/:id/publish", post.PublishPost)

	analytics := handlers.NewAnalyticsHandler(pipeline)
	api.Post("/analytics/engagement", analytics.RecordEngagement)
	api.Get("/analytics/dashboard", analytics.Dashboard)

	platform := handlers.NewPlatformHandler(pipeline)
	api.Get("/platforms", platform.ListPlatforms)
	api.Get("/themes", platform.ListThemes)
}

func closeDB(db *sql.DB) {
	if db == nil {
		return
	}
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, server *asynq.Server, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}
	server.Shutdown()

	closeDB(db)
	log.Println("Server shutdown complete.")
}
