package handlers

import "github.com/Conceptual-Machines/musictheory-api/internal/theory"

const (
	// Octave bounds accepted by the MIDI endpoints (C-1 = 0 ... G9 = 127)
	minOctave = -1
	maxOctave = 9

	defaultScaleType = "major"
	midiContentType  = "audio/midi"

	// Note-math outcomes reported to Prometheus
	outcomeOK       = "ok"
	outcomeSkipped  = "skipped"
	outcomeRejected = "rejected"
)

// engineSelfCheck is evaluated by the health check: D + W + W - H lands on F
var engineSelfCheck = struct {
	start theory.Note
	expr  string
	want  theory.Note
}{theory.D, "+ W + W - H", theory.F}
