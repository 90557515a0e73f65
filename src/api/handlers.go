package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lost-woods/shuffle/src/rng"
)

// Limits bounds what a request may ask the harness for.
type Limits struct {
	DefaultTrials int
	MaxTrials     int
	Workers       int
	// Seed is the default PCG master seed; zero means a fresh seed per request.
	Seed uint64
}

type Handlers struct {
	// seeder is fixed for hardware sources. When nil each request gets PCG
	// streams seeded from the seed parameter or Limits.Seed.
	seeder rng.Seeder
	health *rng.Health
	limits Limits
	log    *zap.SugaredLogger
}

func NewHandlers(seeder rng.Seeder, h *rng.Health, limits Limits, log *zap.SugaredLogger) *Handlers {
	return &Handlers{seeder: seeder, health: h, limits: limits, log: log}
}

// rngOK gates experiments on the hardware source's health. Pseudo-random
// sources have no health monitor and always pass.
func (h *Handlers) rngOK(c *gin.Context) bool {
	if h.health == nil {
		return true
	}
	if err := h.health.Err(); err != nil {
		responder{c}.err(http.StatusServiceUnavailable, err.Error())
		return false
	}
	return true
}

func (h *Handlers) seederFor(c *gin.Context) (rng.Seeder, error) {
	if h.seeder != nil {
		return h.seeder, nil
	}
	seedStr := c.Query("seed")
	if seedStr == "" {
		if h.limits.Seed == 0 {
			return nil, nil // harness picks a clock seed
		}
		return rng.PCGSeeder{Seed: h.limits.Seed}, nil
	}
	seed, err := strconv.ParseUint(seedStr, 10, 64)
	if err != nil {
		return nil, err
	}
	return rng.PCGSeeder{Seed: seed}, nil
}

// CheckHeader rejects requests whose header does not carry expectedValue.
func CheckHeader(headerName, expectedValue string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Auth disabled if not configured
		if expectedValue == "" {
			c.Next()
			return
		}

		if c.GetHeader(headerName) != expectedValue {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}
