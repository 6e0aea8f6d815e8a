package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Conceptual-Machines/musictheory-api/internal/config"
	"github.com/Conceptual-Machines/musictheory-api/internal/logger"
	"github.com/Conceptual-Machines/musictheory-api/internal/midifile"
	"github.com/Conceptual-Machines/musictheory-api/internal/theory"
	"github.com/gin-gonic/gin"
)

// ExportHandler renders scales and chords as Standard MIDI Files
type ExportHandler struct {
	cfg *config.Config
}

func NewExportHandler(cfg *config.Config) *ExportHandler {
	return &ExportHandler{cfg: cfg}
}

var filenameReplacer = strings.NewReplacer("#", "sharp", "/", "-", " ", "-", "\"", "")

// ExportScale renders a scale as ascending quarter notes
func (h *ExportHandler) ExportScale(c *gin.Context) {
	root, ok := parseNoteParam(c, "root", c.Param("root"))
	if !ok {
		return
	}

	scaleType := strings.ToLower(c.DefaultQuery("type", defaultScaleType))
	intervals, ok := theory.ScaleIntervals(scaleType)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown scale type: %q", scaleType)})
		return
	}

	octave, ok := parseOctave(c)
	if !ok {
		return
	}

	name := fmt.Sprintf("%s %s", root.EnglishName(), scaleType)
	data, err := midifile.RenderMelody(theory.BuildScale(root, intervals), octave, h.options(name))
	if err != nil {
		h.renderFailed(c, name, err)
		return
	}

	h.sendMIDI(c, name, data)
}

// ExportChord renders a chord symbol as one sustained bar
func (h *ExportHandler) ExportChord(c *gin.Context) {
	chord, err := theory.ParseChordSymbol(c.Param("symbol"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	octave, ok := parseOctave(c)
	if !ok {
		return
	}

	name := chord.Name()
	data, err := midifile.RenderChord(chord.Notes(), octave, h.options(name))
	if err != nil {
		h.renderFailed(c, name, err)
		return
	}

	h.sendMIDI(c, name, data)
}

func (h *ExportHandler) options(name string) midifile.Options {
	return midifile.Options{
		Tempo: h.cfg.MIDITempo,
		Name:  name,
	}
}

func (h *ExportHandler) renderFailed(c *gin.Context, name string, err error) {
	logger.Error("MIDI export failed", err, logger.Fields{
		"request_id": c.GetString("request_id"),
		"name":       name,
	})
	c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render MIDI file"})
}

func (h *ExportHandler) sendMIDI(c *gin.Context, name string, data []byte) {
	filename := filenameReplacer.Replace(name) + ".mid"
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, midiContentType, data)
}
