package handlers

import (
	"net/http"
	"strconv"

	"github.com/Conceptual-Machines/musictheory-api/internal/api/middleware"
	"github.com/Conceptual-Machines/musictheory-api/internal/config"
	"github.com/Conceptual-Machines/musictheory-api/internal/drills"
	"github.com/Conceptual-Machines/musictheory-api/internal/logger"
	"github.com/gin-gonic/gin"
)

type DrillHandler struct {
	cfg *config.Config
}

func NewDrillHandler(cfg *config.Config) *DrillHandler {
	return &DrillHandler{cfg: cfg}
}

type DrillResponse struct {
	Kind      string            `json:"kind"`
	Seed      uint64            `json:"seed"`
	Questions []drills.Question `json:"questions"`
}

// NoteMath returns note-math questions ("Re + W + W - H")
func (h *DrillHandler) NoteMath(c *gin.Context) {
	h.serve(c, drills.KindNoteMath, (*drills.Generator).NoteMath)
}

// Steps returns questions phrased as step instructions ("Un tono más alto")
func (h *DrillHandler) Steps(c *gin.Context) {
	h.serve(c, drills.KindSteps, (*drills.Generator).Steps)
}

// Keys returns "find this note" targets for the keyboard game
func (h *DrillHandler) Keys(c *gin.Context) {
	h.serve(c, drills.KindKeys, (*drills.Generator).Keys)
}

func (h *DrillHandler) serve(c *gin.Context, kind string, build func(*drills.Generator, int) []drills.Question) {
	count := h.cfg.DrillQuestionCount
	if raw := c.Query("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "count must be a positive integer"})
			return
		}
		count = n
	}

	// A missing or zero seed is replaced with a drawn one, echoed in the response
	var seed uint64
	if raw := c.Query("seed"); raw != "" {
		s, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "seed must be an unsigned integer"})
			return
		}
		seed = s
	}
	seeded := seed != 0
	if !seeded {
		seed = drills.NewSeed()
	}

	questions := build(drills.NewGenerator(seed), count)

	userID, _ := middleware.GetUserIDFromGateway(c)
	logger.Info("Drill generated", logger.Fields{
		"request_id": c.GetString("request_id"),
		"player":     userID,
		"kind":       kind,
		"count":      len(questions),
		"seed":       seed,
		"seeded":     seeded,
	})

	c.JSON(http.StatusOK, DrillResponse{
		Kind:      kind,
		Seed:      seed,
		Questions: questions,
	})
}
