package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/spantrek/backend/internal/auth"
	"github.com/spantrek/backend/internal/config"
	"github.com/spantrek/backend/internal/database"
	"github.com/spantrek/backend/internal/leaderboard"
	"github.com/spantrek/backend/internal/lessons"
	"github.com/spantrek/backend/internal/middleware"
	"github.com/spantrek/backend/internal/progression"
	"github.com/spantrek/backend/internal/scheduler"
	"github.com/spantrek/backend/pkg/logger"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Env)
	log := logger.With("server")

	auth.JWTSecret = []byte(cfg.JWTSecret)

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	rdb, err := database.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	if rdb == nil {
		log.Warn().Msg("redis not configured, leaderboard cache disabled")
	}

	lessonStore := lessons.NewStore(db)
	progressionStore := progression.NewStore(db)
	progressionSvc := progression.NewService(progressionStore, lessonStore, progression.DefaultCatalog(), progression.NewUTCClock())

	authHandler := auth.NewHandler(db)
	lessonHandler := lessons.NewHandler(lessonStore)
	progressionHandler := progression.NewHandler(progressionSvc)
	leaderboardHandler := leaderboard.NewHandler(leaderboard.NewStore(db), leaderboard.NewCache(rdb))

	sched := scheduler.New(progressionSvc)
	sched.Start()
	defer sched.Stop()

	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")
	protected.HandleFunc("/progression", progressionHandler.GetProgression).Methods("GET")
	protected.HandleFunc("/lessons/{id}/complete", progressionHandler.CompleteLesson).Methods("POST")
	protected.HandleFunc("/practice/complete", progressionHandler.CompletePractice).Methods("POST")
	protected.HandleFunc("/achievements", progressionHandler.ListAchievements).Methods("GET")
	protected.HandleFunc("/challenges", progressionHandler.ListDailyChallenges).Methods("GET")
	protected.HandleFunc("/leaderboard", leaderboardHandler.GetLeaderboard).Methods("GET")
	protected.HandleFunc("/countries", lessonHandler.ListCountries).Methods("GET")
	protected.HandleFunc("/countries/{country}/lessons", lessonHandler.ListCountryLessons).Methods("GET")
	protected.HandleFunc("/lessons/{id}", lessonHandler.GetLesson).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
