// Package midifile renders note sequences from the theory engine as
// Standard MIDI Files.
package midifile

import (
	"bytes"
	"fmt"

	"github.com/Conceptual-Machines/musictheory-api/internal/theory"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	defaultTempo           = 120
	defaultVelocity        = 100
	defaultTicksPerQuarter = 480
	beatsPerBar            = 4
	maxPitch               = 127
)

// Options controls tempo, loudness and naming of the rendered file
type Options struct {
	Tempo           int
	Velocity        uint8
	Name            string
	Channel         uint8
	TicksPerQuarter uint16
}

func (o Options) withDefaults() Options {
	if o.Tempo <= 0 {
		o.Tempo = defaultTempo
	}
	if o.Velocity == 0 || o.Velocity > maxPitch {
		o.Velocity = defaultVelocity
	}
	if o.TicksPerQuarter == 0 {
		o.TicksPerQuarter = defaultTicksPerQuarter
	}
	if o.Channel > 15 {
		o.Channel = 0
	}
	return o
}

// Pitches voices notes ascending from the first note in the given octave, so a
// scale's closing root lands an octave above its start. Pitches saturate at 127.
func Pitches(notes []theory.Note, octave int) []uint8 {
	pitches := make([]uint8, 0, len(notes))
	if len(notes) == 0 {
		return pitches
	}

	current := int(theory.ToMIDI(notes[0], octave))
	pitches = append(pitches, uint8(current))
	for i := 1; i < len(notes); i++ {
		current += theory.HalfStepsBetween(notes[i-1], notes[i])
		if current > maxPitch {
			current = maxPitch
		}
		pitches = append(pitches, uint8(current))
	}
	return pitches
}

// RenderMelody writes one quarter note per entry, in order
func RenderMelody(notes []theory.Note, octave int, opts Options) ([]byte, error) {
	if len(notes) == 0 {
		return nil, fmt.Errorf("no notes to render")
	}
	opts = opts.withDefaults()
	quarter := uint32(opts.TicksPerQuarter)

	track := newTrack(opts)
	for _, pitch := range Pitches(notes, octave) {
		track.Add(0, midi.NoteOn(opts.Channel, pitch, opts.Velocity))
		track.Add(quarter, midi.NoteOff(opts.Channel, pitch))
	}
	track.Close(0)

	return write(track, opts)
}

// RenderChord writes all notes as one block chord held for a bar
func RenderChord(notes []theory.Note, octave int, opts Options) ([]byte, error) {
	if len(notes) == 0 {
		return nil, fmt.Errorf("no notes to render")
	}
	opts = opts.withDefaults()
	bar := uint32(opts.TicksPerQuarter) * beatsPerBar

	pitches := Pitches(notes, octave)
	track := newTrack(opts)
	for _, pitch := range pitches {
		track.Add(0, midi.NoteOn(opts.Channel, pitch, opts.Velocity))
	}
	for i, pitch := range pitches {
		delta := uint32(0)
		if i == 0 {
			delta = bar
		}
		track.Add(delta, midi.NoteOff(opts.Channel, pitch))
	}
	track.Close(0)

	return write(track, opts)
}

func newTrack(opts Options) smf.Track {
	var track smf.Track
	if opts.Name != "" {
		track.Add(0, smf.MetaTrackSequenceName(opts.Name))
	}
	track.Add(0, smf.MetaTempo(float64(opts.Tempo)))
	track.Add(0, smf.MetaTimeSig(beatsPerBar, 2, 24, 8))
	return track
}

func write(track smf.Track, opts Options) ([]byte, error) {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(opts.TicksPerQuarter)
	s.Add(track)

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write MIDI file: %w", err)
	}
	return buf.Bytes(), nil
}
