package main

import (
	"chronicrelief/server/internal/api"
	"chronicrelief/server/internal/cache"
	"chronicrelief/server/internal/catalog"
	"chronicrelief/server/internal/config"
	"chronicrelief/server/internal/llm"
	"chronicrelief/server/internal/repository/mongo"
	"chronicrelief/server/internal/resolver"
	"chronicrelief/server/internal/service"
	"chronicrelief/server/internal/storage"
	"chronicrelief/server/internal/summary"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting Chronic Relief Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	log.Println("Ensuring database indexes...")
	go func() { // Run index creation concurrently/in background
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureGlossaryIndexes(ctx, appDB.Collection("exercise_glossary"))
		mongo.EnsureRoutineIndexes(ctx, appDB.Collection("routines"))
		mongo.EnsureProgressIndexes(ctx, appDB.Collection("progress"))
		mongo.EnsureHistoryIndexes(ctx, appDB.Collection("history"))
		mongo.EnsureFavoriteIndexes(ctx, appDB.Collection("favorites"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	userRepo := mongo.NewMongoUserRepository(appDB)
	glossaryRepo := mongo.NewMongoGlossaryRepository(appDB)
	routineRepo := mongo.NewMongoRoutineRepository(appDB)
	progressRepo := mongo.NewMongoProgressRepository(appDB)
	historyRepo := mongo.NewMongoHistoryRepository(appDB)
	favoriteRepo := mongo.NewMongoFavoriteRepository(appDB)

	// --- Initialize Adapters ---
	catalogClient := catalog.NewClient(cfg.ExerciseDB)
	if !catalogClient.Configured() {
		log.Println("WARN: ExerciseDB key not configured; catalog fallback and seeding disabled.")
	}
	generator := llm.NewClient(cfg.LLM)
	if !generator.Configured() {
		log.Println("WARN: text-generation key not configured; summaries fall back to glossary fields.")
	}

	var answerCache cache.AnswerCache
	switch cfg.Cache.Backend {
	case "redis":
		answerCache = cache.NewRedisCache(cfg.Redis, cfg.Cache.TTL)
		log.Printf("Answer cache: redis (%s), TTL %s", cfg.Redis.Addr, cfg.Cache.TTL)
	default:
		answerCache = cache.NewMemoryCache(cfg.Cache.TTL)
		log.Printf("Answer cache: in-memory, TTL %s", cfg.Cache.TTL)
	}

	// Media storage is optional; without a bucket the SPA keeps vendor
	// gif URLs.
	var mediaService service.MediaService
	if cfg.S3.BucketName != "" {
		mediaStorage, err := storage.NewS3Storage(cfg.S3)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
		}
		mediaService = service.NewMediaService(mediaStorage)
		log.Printf("Media cache enabled on bucket %s", cfg.S3.BucketName)
	}

	// --- Initialize Services ---
	log.Println("Initializing services...")
	res := resolver.New(glossaryRepo, catalogClient, cfg.Resolver.ScanLimit)
	summarizer := summary.NewGenerator(generator)

	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	exerciseService := service.NewExerciseService(res, summarizer, answerCache, mediaService)
	faqService := service.NewFAQService(generator)
	userService := service.NewUserService(userRepo, routineRepo, progressRepo, historyRepo, favoriteRepo, glossaryRepo)
	seedService := service.NewSeedService(glossaryRepo, catalogClient)

	// --- Initialize Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, authService, exerciseService, faqService, userService, seedService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second, // generation calls can be slow
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
