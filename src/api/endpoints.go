package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lost-woods/shuffle/src/deck"
	"github.com/lost-woods/shuffle/src/harness"
	"github.com/lost-woods/shuffle/src/metrics"
	"github.com/lost-woods/shuffle/src/shuffle"
)

func (h *Handlers) Decks(c *gin.Context) {
	var out bytes.Buffer
	decks := make([]gin.H, 0)
	for _, name := range deck.Names() {
		factory, _ := deck.Lookup(name)
		d := factory()
		n := len(d.Cards())
		fmt.Fprintf(&out, "%s: %s, %d cards, features %s\n", name, d.Name(), n, strings.Join(d.Features(), ", "))
		decks = append(decks, gin.H{"id": name, "name": d.Name(), "cards": n, "features": d.Features()})
	}
	responder{c}.ok(strings.TrimSuffix(out.String(), "\n"), gin.H{"decks": decks}, "")
}

func (h *Handlers) Shuffles(c *gin.Context) {
	names := shuffle.Names()
	described := make([]gin.H, 0, len(names))
	for _, name := range names {
		s, _ := shuffle.Lookup(name)
		described = append(described, gin.H{"id": name, "name": s.Name()})
	}
	responder{c}.ok(strings.Join(names, "\n"), gin.H{"shuffles": described}, "")
}

// Experiment runs one or more shuffles (comma separated) against a deck.
func (h *Handlers) Experiment(c *gin.Context) {
	deckName := c.DefaultQuery("deck", "poker")
	factory, ok := deck.Lookup(deckName)
	if !ok {
		responder{c}.err(http.StatusBadRequest, fmt.Sprintf("Unknown deck %q.", deckName))
		return
	}

	var shufflers []shuffle.Shuffler
	for _, name := range strings.Split(c.DefaultQuery("shuffle", "uniform"), ",") {
		s, ok := shuffle.Lookup(strings.TrimSpace(name))
		if !ok {
			responder{c}.err(http.StatusBadRequest, fmt.Sprintf("Unknown shuffle %q.", name))
			return
		}
		shufflers = append(shufflers, s)
	}

	trials, err := strconv.Atoi(c.DefaultQuery("trials", strconv.Itoa(h.limits.DefaultTrials)))
	if err != nil || trials < 1 || trials > h.limits.MaxTrials {
		responder{c}.err(http.StatusBadRequest,
			fmt.Sprintf("Trials must be an integer between 1 and %d.", h.limits.MaxTrials))
		return
	}

	seeder, err := h.seederFor(c)
	if err != nil {
		responder{c}.err(http.StatusBadRequest, "Invalid seed.")
		return
	}

	if !h.rngOK(c) {
		return
	}

	reports, err := harness.Compare(c.Request.Context(), factory, shufflers, harness.Options{
		Trials:  trials,
		Workers: h.limits.Workers,
		Seeder:  seeder,
		Logger:  h.log,
	})
	if err != nil {
		h.log.Errorw("experiment failed", "deck", deckName, "error", err)
		switch {
		case errors.Is(err, metrics.ErrDegenerateInput), errors.Is(err, metrics.ErrInvalidFeature):
			responder{c}.err(http.StatusBadRequest, err.Error())
		default:
			responder{c}.err(http.StatusInternalServerError, "Experiment failed: "+err.Error())
		}
		return
	}

	var text strings.Builder
	if err := harness.WriteText(&text, reports); err != nil {
		responder{c}.err(http.StatusInternalServerError, "Error rendering report.")
		return
	}
	responder{c}.ok(strings.TrimSuffix(text.String(), "\n"),
		gin.H{"deck": deckName, "trials": trials, "reports": reports},
		reports[0].ID.String())
}

func (h *Handlers) Health(c *gin.Context) {
	if h.health == nil {
		responder{c}.ok("OK (pseudo-random source)", gin.H{"ok": true, "source": "pcg"}, "")
		return
	}

	ok, msg, t := h.health.Snapshot()
	if ok {
		responder{c}.ok(
			fmt.Sprintf("OK (last checked %s)", t.Format(time.RFC3339)),
			gin.H{"ok": true, "source": "serial", "last_checked": t.Format(time.RFC3339)},
			"",
		)
		return
	}

	responder{c}.err(http.StatusServiceUnavailable,
		fmt.Sprintf("UNHEALTHY: %s (last checked %s)", msg, t.Format(time.RFC3339)))
}
