package server

import (
	"context"
	"io"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lost-woods/shuffle/src/api"
	"github.com/lost-woods/shuffle/src/config"
	"github.com/lost-woods/shuffle/src/rng"
)

type Server struct {
	port   string
	router *gin.Engine
}

// Entropy is the hardware source backing experiments. Leave it zero to use
// seeded PCG streams.
type Entropy struct {
	Reader io.Reader
	Health *rng.Health
}

func New(ctx context.Context, cfg *config.Config, e Entropy, log *zap.SugaredLogger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	var seeder rng.Seeder
	if e.Reader != nil {
		seeder = rng.NewReaderSeeder(e.Reader, e.Health)
		if e.Health != nil {
			// Background health monitoring (best-effort)
			go rng.PeriodicHealthCheck(ctx, e.Reader, e.Health, cfg.HealthInterval)
		}
	}

	router.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET"},
		AllowHeaders:     []string{"X-API-KEY", "Accept"},
		AllowAllOrigins:  true,
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(api.CheckHeader("X-API-KEY", cfg.APIKey))

	handlers := api.NewHandlers(seeder, e.Health, api.Limits{
		DefaultTrials: cfg.Trials,
		MaxTrials:     cfg.MaxTrials,
		Workers:       cfg.Workers,
		Seed:          cfg.Seed,
	}, log)
	router.GET("/", handlers.Experiment)
	router.GET("/experiment", handlers.Experiment)
	router.GET("/decks", handlers.Decks)
	router.GET("/shuffles", handlers.Shuffles)
	router.GET("/health", handlers.Health)

	return &Server{port: cfg.Port, router: router}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() *gin.Engine { return s.router }

func (s *Server) RunOrDie() {
	if err := s.router.Run(":" + s.port); err != nil {
		panic(err)
	}
}
