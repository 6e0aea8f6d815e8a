package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Conceptual-Machines/musictheory-api/internal/theory"
	"github.com/gin-gonic/gin"
)

// TheoryHandler serves the stateless lookups of the theory engine
type TheoryHandler struct{}

func NewTheoryHandler() *TheoryHandler {
	return &TheoryHandler{}
}

// NoteResponse is a pitch class with all of its display names
type NoteResponse struct {
	Value       int    `json:"value"`
	English     string `json:"english"`
	Spanish     string `json:"spanish"`
	EnglishFlat string `json:"english_flat,omitempty"`
	SpanishFlat string `json:"spanish_flat,omitempty"`
	BlackKey    bool   `json:"black_key"`
}

func newNoteResponse(n theory.Note) NoteResponse {
	return NoteResponse{
		Value:       n.Value(),
		English:     n.EnglishName(),
		Spanish:     n.SpanishName(),
		EnglishFlat: n.EnglishFlat(),
		SpanishFlat: n.SpanishFlat(),
		BlackKey:    n.IsBlackKey(),
	}
}

func newNoteResponses(notes []theory.Note) []NoteResponse {
	out := make([]NoteResponse, len(notes))
	for i, n := range notes {
		out[i] = newNoteResponse(n)
	}
	return out
}

// parseNoteParam parses a note name or writes a 400 and returns false
func parseNoteParam(c *gin.Context, field, value string) (theory.Note, bool) {
	n, ok := theory.ParseNote(value)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown note for %s: %q", field, value)})
		return 0, false
	}
	return n, true
}

// parseOctave reads an optional octave query parameter
func parseOctave(c *gin.Context) (int, bool) {
	raw := c.Query("octave")
	if raw == "" {
		return theory.DefaultOctave, true
	}
	octave, err := strconv.Atoi(raw)
	if err != nil || octave < minOctave || octave > maxOctave {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("octave must be an integer between %d and %d", minOctave, maxOctave),
		})
		return 0, false
	}
	return octave, true
}

// ListNotes returns the twelve pitch classes in ascending order
func (h *TheoryHandler) ListNotes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"notes": newNoteResponses(theory.AllNotes)})
}

// GetNote parses any supported spelling of a note name
func (h *TheoryHandler) GetNote(c *gin.Context) {
	name := c.Param("name")
	n, ok := theory.ParseNote(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown note: %q", name)})
		return
	}
	c.JSON(http.StatusOK, newNoteResponse(n))
}

type ShiftRequest struct {
	Note      string `json:"note" binding:"required"`
	HalfSteps int    `json:"half_steps"`
}

type ShiftResponse struct {
	From      NoteResponse `json:"from"`
	HalfSteps int          `json:"half_steps"`
	Result    NoteResponse `json:"result"`
}

// ShiftNote moves a note up (positive) or down (negative) by half steps
func (h *TheoryHandler) ShiftNote(c *gin.Context) {
	var req ShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	from, ok := parseNoteParam(c, "note", req.Note)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, ShiftResponse{
		From:      newNoteResponse(from),
		HalfSteps: req.HalfSteps,
		Result:    newNoteResponse(from.Up(req.HalfSteps)),
	})
}

type ScaleResponse struct {
	Root      NoteResponse   `json:"root"`
	Type      string         `json:"type,omitempty"`
	Intervals []int          `json:"intervals"`
	Notes     []NoteResponse `json:"notes"`
}

// GetScale builds a named scale (major or minor) on a root
func (h *TheoryHandler) GetScale(c *gin.Context) {
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

	c.JSON(http.StatusOK, ScaleResponse{
		Root:      newNoteResponse(root),
		Type:      scaleType,
		Intervals: intervals,
		Notes:     newNoteResponses(theory.BuildScale(root, intervals)),
	})
}

type BuildScaleRequest struct {
	Root      string `json:"root" binding:"required"`
	Intervals []int  `json:"intervals" binding:"required"`
}

// BuildScale accumulates a custom interval pattern from a root
func (h *TheoryHandler) BuildScale(c *gin.Context) {
	var req BuildScaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	root, ok := parseNoteParam(c, "root", req.Root)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, ScaleResponse{
		Root:      newNoteResponse(root),
		Intervals: req.Intervals,
		Notes:     newNoteResponses(theory.BuildScale(root, req.Intervals)),
	})
}

type ChordResponse struct {
	Symbol  string         `json:"symbol,omitempty"`
	Root    NoteResponse   `json:"root"`
	Quality string         `json:"quality,omitempty"`
	Offsets []int          `json:"offsets"`
	Notes   []NoteResponse `json:"notes"`
}

// GetChord parses a chord symbol such as "Am", "F#dim" or "Solmaj7"
func (h *TheoryHandler) GetChord(c *gin.Context) {
	chord, err := theory.ParseChordSymbol(c.Param("symbol"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ChordResponse{
		Symbol:  chord.Symbol,
		Root:    newNoteResponse(chord.Root),
		Quality: string(chord.Quality),
		Offsets: chord.Offsets,
		Notes:   newNoteResponses(chord.Notes()),
	})
}

type BuildChordRequest struct {
	Root    string `json:"root" binding:"required"`
	Offsets []int  `json:"offsets" binding:"required"`
}

// BuildChord stacks absolute offsets on a root
func (h *TheoryHandler) BuildChord(c *gin.Context) {
	var req BuildChordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	root, ok := parseNoteParam(c, "root", req.Root)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, ChordResponse{
		Root:    newNoteResponse(root),
		Offsets: req.Offsets,
		Notes:   newNoteResponses(theory.BuildChord(root, req.Offsets)),
	})
}

type IntervalResponse struct {
	From      NoteResponse `json:"from"`
	To        NoteResponse `json:"to"`
	HalfSteps int          `json:"half_steps"`
	Name      string       `json:"name"`
	Language  string       `json:"language"`
}

// GetInterval names the ascending interval between two notes
func (h *TheoryHandler) GetInterval(c *gin.Context) {
	from, ok := parseNoteParam(c, "from", c.Query("from"))
	if !ok {
		return
	}
	to, ok := parseNoteParam(c, "to", c.Query("to"))
	if !ok {
		return
	}
	lang := theory.ParseLanguage(c.Query("lang"))

	c.JSON(http.StatusOK, IntervalResponse{
		From:      newNoteResponse(from),
		To:        newNoteResponse(to),
		HalfSteps: theory.HalfStepsBetween(from, to),
		Name:      theory.IntervalName(from, to, lang),
		Language:  string(lang),
	})
}

type PitchResponse struct {
	Pitch   uint8        `json:"pitch"`
	Note    NoteResponse `json:"note"`
	Octave  int          `json:"octave"`
	English string       `json:"english"`
	Spanish string       `json:"spanish"`
}

func newPitchResponse(pitch uint8) PitchResponse {
	note, octave := theory.FromMIDI(pitch)
	return PitchResponse{
		Pitch:   pitch,
		Note:    newNoteResponse(note),
		Octave:  octave,
		English: theory.PitchName(pitch, theory.English),
		Spanish: theory.PitchName(pitch, theory.Spanish),
	}
}

// EncodeMIDI converts a note and octave to a MIDI pitch number
func (h *TheoryHandler) EncodeMIDI(c *gin.Context) {
	note, ok := parseNoteParam(c, "note", c.Query("note"))
	if !ok {
		return
	}
	octave, ok := parseOctave(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, newPitchResponse(theory.ToMIDI(note, octave)))
}

// DecodeMIDI accepts a pitch number (0-127) or a name with octave such as "F#3"
func (h *TheoryHandler) DecodeMIDI(c *gin.Context) {
	raw := c.Param("pitch")

	if value, err := strconv.ParseUint(raw, 10, 8); err == nil {
		if value > theory.MaxPitch {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("pitch out of range: %d", value)})
			return
		}
		c.JSON(http.StatusOK, newPitchResponse(uint8(value)))
		return
	}

	pitch, err := theory.ParsePitch(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, newPitchResponse(pitch))
}

type KeyResponse struct {
	Root          NoteResponse `json:"root"`
	Sharps        *int         `json:"sharps"`
	Flats         *int         `json:"flats"`
	RelativeMinor NoteResponse `json:"relative_minor"`
}

// GetKey returns the key signature of a major key
func (h *TheoryHandler) GetKey(c *gin.Context) {
	root, ok := parseNoteParam(c, "root", c.Param("root"))
	if !ok {
		return
	}

	ks := theory.KeySignatureOf(root)
	c.JSON(http.StatusOK, KeyResponse{
		Root:          newNoteResponse(ks.Root),
		Sharps:        ks.Sharps,
		Flats:         ks.Flats,
		RelativeMinor: newNoteResponse(ks.RelativeMinor),
	})
}
