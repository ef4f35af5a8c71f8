package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nottube/nottube-api/internal/config"
	"github.com/nottube/nottube-api/internal/domain/auth"
	"github.com/nottube/nottube-api/internal/domain/comment"
	"github.com/nottube/nottube-api/internal/domain/flag"
	"github.com/nottube/nottube-api/internal/domain/user"
	"github.com/nottube/nottube-api/internal/domain/video"
	"github.com/nottube/nottube-api/internal/middleware"
	"github.com/nottube/nottube-api/internal/pkg/database"
	"github.com/nottube/nottube-api/internal/pkg/jwt"
	pkgresponse "github.com/nottube/nottube-api/internal/pkg/response"
	"github.com/nottube/nottube-api/internal/pkg/storage"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting NotTube API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	files := newFileStorage(cfg)

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	videoRepo := video.NewRepository(db)
	commentRepo := comment.NewPostgresRepository(db)
	flagRepo := flag.NewRepository(db)

	// ---------- Services ----------
	channelSync := &channelSyncAdapter{videos: videoRepo, comments: commentRepo}
	authService := auth.NewService(userRepo, jwtService, redis, channelSync, cfg.AdminEmails, files)
	videoService := video.NewService(videoRepo, userRepo)
	commentService := comment.NewService(commentRepo, videoRepo, userRepo)
	flagService := flag.NewService(flagRepo, videoRepo, commentRepo, userRepo)

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService)
	videoHandler := video.NewHandler(videoService)
	commentHandler := comment.NewHandler(commentService)
	flagHandler := flag.NewHandler(flagService)

	authMiddleware := middleware.Auth(jwtService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(chimw.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes(authMiddleware))
		video.RegisterRoutes(r, videoHandler, jwtService)
		comment.RegisterRoutes(r, commentHandler, jwtService)
		flag.RegisterRoutes(r, flagHandler, jwtService)
	})

	// Local storage backend serves uploads straight from disk
	if cfg.S3Endpoint == "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.LocalStorageDir))))
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	}
}

func newFileStorage(cfg *config.Config) storage.Storage {
	if cfg.S3Endpoint != "" {
		s3Store, err := storage.NewS3Storage(storage.Config{
			S3Endpoint:  cfg.S3Endpoint,
			S3Region:    cfg.S3Region,
			S3AccessKey: cfg.S3AccessKey,
			S3SecretKey: cfg.S3SecretKey,
			S3Bucket:    cfg.S3Bucket,
			PublicURL:   cfg.S3PublicURL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create S3 storage")
		}
		return s3Store
	}

	localStore, err := storage.NewLocalStorage(cfg.LocalStorageDir, "/uploads")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create local storage")
	}
	return localStore
}

// Adapter implementations to bridge interface mismatches

// channelSyncAdapter fans a profile change out to the denormalized
// copies on videos and comments
type channelSyncAdapter struct {
	videos   video.Repository
	comments comment.Repository
}

func (a *channelSyncAdapter) SyncOwnerProfile(ctx context.Context, ownerID uuid.UUID, channelName, avatarURL, headerURL string) error {
	if err := a.videos.SyncOwnerProfile(ctx, ownerID, channelName, avatarURL, headerURL); err != nil {
		return err
	}
	return a.comments.SyncAuthorProfile(ctx, ownerID, channelName, avatarURL)
}
