package main

import (
	"context"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"freelancehub/internal/config"
	"freelancehub/internal/db"
	"freelancehub/internal/handlers"
	"freelancehub/internal/middleware"
	"freelancehub/internal/models"
)

func main() {
	_ = godotenv.Load()

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.Load()
	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database connect")
	}

	if err := gdb.AutoMigrate(
		&models.User{},
		&models.Job{},
		&models.Proposal{},
		&models.Message{},
	); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		// rate limiting fails open without redis
		log.Warn().Err(err).Msg("redis unavailable, rate limiting disabled")
		rdb = nil
	}

	app := fiber.New()

	app.Use(middleware.RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.FrontendBaseURL,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	authH := &handlers.AuthHandler{
		DB:        gdb,
		JWTSecret: cfg.JWTSecret,
		Expires:   cfg.JWTExpiresMin,
		Log:       log,
	}
	googleH := &handlers.GoogleOAuthHandler{
		DB:              gdb,
		JWTSecret:       cfg.JWTSecret,
		Expires:         cfg.JWTExpiresMin,
		GoogleClientID:  cfg.GoogleClientID,
		GoogleSecret:    cfg.GoogleSecret,
		GoogleRedirect:  cfg.GoogleRedirect,
		FrontendBaseURL: cfg.FrontendBaseURL,
		Log:             log,
	}
	userH := handlers.NewUserHandler(gdb, log)
	jobH := handlers.NewJobHandler(gdb, log)
	proposalH := handlers.NewProposalHandler(gdb, log)
	messageH := handlers.NewMessageHandler(gdb, log)

	api := app.Group("/api")

	// public
	api.Post("/auth/register", middleware.RateLimit(rdb, 10, time.Minute), authH.Register)
	api.Post("/auth/login", middleware.RateLimit(rdb, 10, time.Minute), authH.Login)
	api.Get("/auth/google/start", googleH.GoogleStart)
	api.Get("/auth/google/callback", googleH.GoogleCallback)
	api.Get("/users/freelancers", userH.Freelancers)
	api.Get("/jobs", jobH.List)
	api.Get("/jobs/:id", jobH.GetByID)

	// protected (bearer JWT)
	protected := api.Group("/",
		middleware.JWTFromHeader(cfg.JWTSecret),
		middleware.AttachJWTLocals(),
	)

	protected.Get("/users/profile", userH.GetProfile)
	protected.Put("/users/profile", userH.UpdateProfile)

	protected.Post("/jobs", middleware.RequireRoles("client"), jobH.Create)
	protected.Put("/jobs/:id", jobH.Update)
	protected.Delete("/jobs/:id", jobH.Delete)

	protected.Get("/proposals/my", proposalH.ListMine)
	protected.Post("/proposals", middleware.RequireRoles("freelancer"), proposalH.Create)
	protected.Put("/proposals/:id/status", proposalH.UpdateStatus)

	protected.Get("/messages", messageH.List)
	protected.Post("/messages", messageH.Send)
	protected.Patch("/messages/:id/read", messageH.MarkRead)

	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatal().Err(err).Msg("listen")
	}
}
