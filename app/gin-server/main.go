package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/healthsync/healthsync/config"
	"github.com/healthsync/healthsync/internal/api/handlers"
	"github.com/healthsync/healthsync/internal/api/middleware"
	"github.com/healthsync/healthsync/internal/api/routes"
	"github.com/healthsync/healthsync/internal/cache"
	"github.com/healthsync/healthsync/internal/logger"
	"github.com/healthsync/healthsync/internal/providers/fitness"
	"github.com/healthsync/healthsync/internal/providers/llm"
	mongorepo "github.com/healthsync/healthsync/internal/repositories/mongo"
	"github.com/healthsync/healthsync/internal/services"
	"github.com/healthsync/healthsync/internal/storage"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()
	ctx := context.Background()

	// Document store: constructed once, injected everywhere, closed on exit.
	client, err := config.NewMongoClient()
	if err != nil {
		log.WithError(err).Fatal("MongoDB init failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	log.Info("MongoDB connected")

	db := client.Database(config.MongoDBName())
	if err := config.EnsureCollections(db); err != nil {
		log.WithError(err).Fatal("collection setup failed")
	}

	// Directory cache is optional; missing Redis just disables it.
	var dirCache cache.Cache
	if rdb, rerr := config.NewRedisClient(); rerr != nil {
		log.WithError(rerr).Warn("Redis unavailable; doctor directory cache disabled")
	} else {
		defer func() { _ = rdb.Close() }()
		dirCache = cache.NewRedisCache(rdb)
		log.Info("Redis connected")
	}

	location := os.Getenv("VERTEX_LOCATION")
	if location == "" {
		location = "us-central1"
	}
	gen, err := llm.NewVertexGemini(ctx, os.Getenv("GOOGLE_CLOUD_PROJECT"), location, os.Getenv("VERTEX_MODEL"))
	if err != nil {
		log.WithError(err).Fatal("Vertex AI init failed")
	}
	defer func() { _ = gen.Close() }()

	// Report-image archive is optional as well.
	var uploader storage.Uploader
	if bucket := os.Getenv("GCS_BUCKET"); bucket != "" {
		up, uerr := storage.NewGCSUploader(ctx, bucket)
		if uerr != nil {
			log.WithError(uerr).Warn("GCS unavailable; report image archive disabled")
		} else {
			defer func() { _ = up.Close() }()
			uploader = up
		}
	}

	fit := fitness.NewGoogleFit(
		os.Getenv("GOOGLE_CLIENT_ID"),
		os.Getenv("GOOGLE_CLIENT_SECRET"),
		os.Getenv("OAUTH_REDIRECT_URL"),
	)

	convRepo := mongorepo.NewConversationRepo(db)
	stepsRepo := mongorepo.NewStepsRepo(db)
	exerciseRepo := mongorepo.NewExerciseRepo(db)

	pipe := services.NewPipeline(convRepo, gen, log)
	directory := services.NewDoctorDirectory(gen, dirCache, log)

	deps := routes.Deps{
		Medical:  handlers.NewMedicalHandler(services.NewMedicalService(pipe, directory, log), directory),
		Diet:     handlers.NewDietHandler(services.NewDietService(pipe, log)),
		Report:   handlers.NewReportHandler(services.NewReportService(pipe, uploader, log)),
		Steps:    handlers.NewStepsHandler(services.NewStepsService(pipe, fit, fit, stepsRepo, log)),
		Exercise: handlers.NewExerciseHandler(services.NewExerciseService(exerciseRepo)),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	routes.RegisterRoutes(r, deps)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	if err := r.Run(":" + port); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}
