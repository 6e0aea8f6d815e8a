package theory

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultOctave is the octave of middle C
	DefaultOctave = 4
	// MiddleC is C4
	MiddleC = 60

	minMIDI = 0
	// Octave range wide enough that every note saturates on either side
	minMIDIOctave = -2
	maxMIDIOctave = 11
	// MaxPitch is the highest MIDI note number
	MaxPitch = 127
)

// ToMIDI converts a note and octave to a MIDI pitch: (octave+1)*12 + note.
// Results outside [0, 127] saturate to the nearest bound.
func ToMIDI(note Note, octave int) uint8 {
	// Clamp before multiplying so huge octaves cannot overflow
	if octave < minMIDIOctave {
		octave = minMIDIOctave
	}
	if octave > maxMIDIOctave {
		octave = maxMIDIOctave
	}
	pitch := (octave+1)*NotesPerOctave + note.Value()
	if pitch < minMIDI {
		pitch = minMIDI
	}
	if pitch > MaxPitch {
		pitch = MaxPitch
	}
	return uint8(pitch)
}

// FromMIDI splits a MIDI pitch into its note and octave (C-1 = 0, C4 = 60)
func FromMIDI(pitch uint8) (Note, int) {
	p := int(pitch)
	return Note(p % NotesPerOctave), p/NotesPerOctave - 1
}

// ParsePitch converts a note name with an octave suffix ("C4", "F#3", "Sib2",
// "Do-1") to a MIDI pitch. The pitch is clamped like ToMIDI.
func ParsePitch(s string) (uint8, error) {
	cleaned := strings.TrimSpace(s)
	split := strings.IndexAny(cleaned, "-0123456789")
	if split <= 0 {
		return 0, fmt.Errorf("missing octave in note name: %q", s)
	}

	note, ok := ParseNote(cleaned[:split])
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownNote, cleaned[:split])
	}

	octave, err := strconv.Atoi(cleaned[split:])
	if err != nil {
		return 0, fmt.Errorf("invalid octave in note name %q: %w", s, err)
	}

	return ToMIDI(note, octave), nil
}

// PitchName renders a MIDI pitch as note name plus octave, e.g. "C4" or "Do4"
func PitchName(pitch uint8, lang Language) string {
	note, octave := FromMIDI(pitch)
	return fmt.Sprintf("%s%d", note.Name(lang), octave)
}
