package theory

import (
	"errors"
	"fmt"
	"strings"
)

// Triad offsets from the root in half steps
var (
	MajorChordIntervals = []int{0, 4, 7} // root, major 3rd, perfect 5th
	MinorChordIntervals = []int{0, 3, 7} // root, minor 3rd, perfect 5th
)

// ChordQuality names a triad type
type ChordQuality string

const (
	QualityMajor      ChordQuality = "major"
	QualityMinor      ChordQuality = "minor"
	QualityDiminished ChordQuality = "diminished"
	QualityAugmented  ChordQuality = "augmented"
	QualitySus2       ChordQuality = "sus2"
	QualitySus4       ChordQuality = "sus4"
)

const (
	diminishedSeventh = 9
	minorSeventh      = 10
	majorSeventh      = 11

	maxRootLength = 4
)

var triadOffsets = map[ChordQuality][]int{
	QualityMajor:      MajorChordIntervals,
	QualityMinor:      MinorChordIntervals,
	QualityDiminished: {0, 3, 6},
	QualityAugmented:  {0, 4, 8},
	QualitySus2:       {0, 2, 7},
	QualitySus4:       {0, 5, 7},
}

var (
	ErrUnknownNote         = errors.New("unknown note")
	ErrUnknownChordQuality = errors.New("unknown chord quality")
)

// BuildChord maps each offset to root.Up(offset). Offsets are absolute from the
// root, not step deltas.
func BuildChord(root Note, offsets []int) []Note {
	notes := make([]Note, len(offsets))
	for i, offset := range offsets {
		notes[i] = root.Up(offset)
	}
	return notes
}

// MajorChord returns [root, major 3rd, perfect 5th]
func MajorChord(root Note) []Note {
	return BuildChord(root, MajorChordIntervals)
}

// MinorChord returns [root, minor 3rd, perfect 5th]
func MinorChord(root Note) []Note {
	return BuildChord(root, MinorChordIntervals)
}

// ChordOf builds the triad of the given quality
func ChordOf(root Note, quality ChordQuality) ([]Note, error) {
	offsets, ok := triadOffsets[quality]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownChordQuality, quality)
	}
	return BuildChord(root, offsets), nil
}

// Chord is a parsed chord symbol
type Chord struct {
	Symbol  string
	Root    Note
	Quality ChordQuality
	Offsets []int
}

// Notes returns the chord's pitch classes
func (c Chord) Notes() []Note {
	return BuildChord(c.Root, c.Offsets)
}

var qualitySymbols = map[ChordQuality]string{
	QualityMajor:      "",
	QualityMinor:      "m",
	QualityDiminished: "dim",
	QualityAugmented:  "aug",
	QualitySus2:       "sus2",
	QualitySus4:       "sus4",
}

// Name spells the chord as an English ASCII symbol ("F#m", "Cmaj7", "Bdim7")
// that ParseChordSymbol reads back to the same chord
func (c Chord) Name() string {
	name := c.Root.EnglishName() + qualitySymbols[c.Quality]
	if len(c.Offsets) > len(triadOffsets[c.Quality]) {
		switch c.Offsets[len(c.Offsets)-1] {
		case majorSeventh:
			name += "maj7"
		case minorSeventh, diminishedSeventh:
			name += "7"
		}
	}
	return name
}

// ParseChordSymbol parses symbols like C, Em, F#dim, Bbaug, Dsus4, G7, Cmaj7, CM7,
// Am7 and Bdim7. The root may be spelled in English or Spanish.
func ParseChordSymbol(symbol string) (Chord, error) {
	cleaned := accidentalReplacer.Replace(strings.TrimSpace(symbol))
	if cleaned == "" {
		return Chord{}, fmt.Errorf("%w: empty chord symbol", ErrUnknownNote)
	}

	// Longest root first ("Sol#" before "Sol"), falling back to shorter roots
	// when the rest is not a quality ("Faug" is F + aug, not Fa + ug)
	firstRest, rooted := "", false
	for length := min(len(cleaned), maxRootLength); length > 0; length-- {
		root, ok := ParseNote(cleaned[:length])
		if !ok {
			continue
		}
		rest := cleaned[length:]
		if !rooted {
			firstRest, rooted = rest, true
		}

		quality, offsets, ok := parseChordSuffix(rest)
		if !ok {
			continue
		}
		return Chord{
			Symbol:  symbol,
			Root:    root,
			Quality: quality,
			Offsets: offsets,
		}, nil
	}

	if !rooted {
		return Chord{}, fmt.Errorf("%w: invalid chord root in %q", ErrUnknownNote, symbol)
	}
	return Chord{}, fmt.Errorf("%w: %q in %q", ErrUnknownChordQuality, firstRest, symbol)
}

// parseChordSuffix reads an optional 7th marker and the triad quality before it
func parseChordSuffix(rest string) (ChordQuality, []int, bool) {
	// Extract 7ths before quality markers so "maj7" is not read as "m" + "aj7"
	seventh := 0
	switch {
	case strings.HasSuffix(rest, "maj7"):
		seventh = majorSeventh
		rest = strings.TrimSuffix(rest, "maj7")
	case strings.HasSuffix(rest, "M7"):
		seventh = majorSeventh
		rest = strings.TrimSuffix(rest, "M7")
	case strings.HasSuffix(rest, "dim7"), strings.HasSuffix(rest, "°7"):
		seventh = diminishedSeventh
		rest = strings.TrimSuffix(rest, "7")
	case strings.HasSuffix(rest, "7"):
		seventh = minorSeventh
		rest = strings.TrimSuffix(rest, "7")
	}

	quality, ok := parseChordQuality(rest)
	if !ok {
		return "", nil, false
	}

	offsets := append([]int(nil), triadOffsets[quality]...)
	if seventh != 0 {
		offsets = append(offsets, seventh)
	}
	return quality, offsets, true
}

func parseChordQuality(s string) (ChordQuality, bool) {
	switch s {
	case "", "maj", "M":
		return QualityMajor, true
	case "m", "min", "-":
		return QualityMinor, true
	case "dim", "°":
		return QualityDiminished, true
	case "aug", "+":
		return QualityAugmented, true
	case "sus2":
		return QualitySus2, true
	case "sus4", "sus":
		return QualitySus4, true
	default:
		return "", false
	}
}
