package theory

import (
	"fmt"
	"strings"
)

// Note is one of the 12 chromatic pitch classes. 0 = C, 11 = B.
type Note int

const (
	C Note = iota
	CSharp
	D
	DSharp
	E
	F
	FSharp
	G
	GSharp
	A
	ASharp
	B
)

const (
	// NotesPerOctave is the size of the chromatic cycle
	NotesPerOctave = 12

	HalfStep  = 1
	WholeStep = 2
)

// Language selects the naming convention for display strings
type Language string

const (
	English Language = "en"
	Spanish Language = "es"
)

// ParseLanguage maps "es"/"spanish"/"español" to Spanish; everything else is English
func ParseLanguage(s string) Language {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "es", "spanish", "español", "espanol":
		return Spanish
	default:
		return English
	}
}

// Display tables indexed by pitch class (sharp spelling is canonical)
var (
	englishNames = [NotesPerOctave]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
	spanishNames = [NotesPerOctave]string{"Do", "Do#", "Re", "Re#", "Mi", "Fa", "Fa#", "Sol", "Sol#", "La", "La#", "Si"}
	englishFlats = [NotesPerOctave]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}
	spanishFlats = [NotesPerOctave]string{"Do", "Reb", "Re", "Mib", "Mi", "Fa", "Solb", "Sol", "Lab", "La", "Sib", "Si"}
	blackKeys    = [NotesPerOctave]bool{false, true, false, true, false, false, true, false, true, false, true, false}
)

// AllNotes lists the 12 pitch classes in ascending order from C
var AllNotes = []Note{C, CSharp, D, DSharp, E, F, FSharp, G, GSharp, A, ASharp, B}

// WhiteKeys lists the natural notes in keyboard order
var WhiteKeys = []Note{C, D, E, F, G, A, B}

// mod returns a % m in [0, m) for any sign of a
func mod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

// NewNote returns the note for a value in [0, 11]; ok is false outside that range
func NewNote(value int) (Note, bool) {
	if value < 0 || value >= NotesPerOctave {
		return C, false
	}
	return Note(value), true
}

// NoteFromInt wraps any integer into a valid pitch class
func NoteFromInt(value int) Note {
	return Note(mod(value, NotesPerOctave))
}

// Value returns the pitch class as an integer in [0, 11]
func (n Note) Value() int {
	return mod(int(n), NotesPerOctave)
}

// Up moves the note up by halfSteps, wrapping around the octave.
// halfSteps is reduced first so any int is safe.
func (n Note) Up(halfSteps int) Note {
	return NoteFromInt(n.Value() + mod(halfSteps, NotesPerOctave))
}

// Down moves the note down by halfSteps, wrapping around the octave
func (n Note) Down(halfSteps int) Note {
	return NoteFromInt(n.Value() - mod(halfSteps, NotesPerOctave))
}

// UpWhole moves the note up by whole steps
func (n Note) UpWhole(wholeSteps int) Note {
	return n.Up(mod(wholeSteps, NotesPerOctave) * WholeStep)
}

// DownWhole moves the note down by whole steps
func (n Note) DownWhole(wholeSteps int) Note {
	return n.Down(mod(wholeSteps, NotesPerOctave) * WholeStep)
}

func (n Note) EnglishName() string { return englishNames[n.Value()] }
func (n Note) SpanishName() string { return spanishNames[n.Value()] }

// EnglishFlat returns the flat spelling for black keys and the standard name otherwise
func (n Note) EnglishFlat() string { return englishFlats[n.Value()] }

// SpanishFlat returns the flat spelling for black keys and the standard name otherwise
func (n Note) SpanishFlat() string { return spanishFlats[n.Value()] }

// IsBlackKey reports whether the note is C#, D#, F#, G# or A#
func (n Note) IsBlackKey() bool { return blackKeys[n.Value()] }

func (n Note) EnharmonicEnglish() string { return n.EnharmonicName(English) }
func (n Note) EnharmonicSpanish() string { return n.EnharmonicName(Spanish) }

// EnharmonicName returns the flat spelling for black keys, the standard name otherwise
func (n Note) EnharmonicName(lang Language) string {
	if lang == Spanish {
		return n.SpanishFlat()
	}
	return n.EnglishFlat()
}

// Name returns the canonical sharp spelling in the given language
func (n Note) Name(lang Language) string {
	if lang == Spanish {
		return n.SpanishName()
	}
	return n.EnglishName()
}

func (n Note) String() string {
	return n.EnglishName()
}

// noteLookup maps every lowercase spelling to its pitch class
var noteLookup = buildNoteLookup()

func buildNoteLookup() map[string]Note {
	lookup := make(map[string]Note, NotesPerOctave*4)
	for _, n := range AllNotes {
		for _, name := range []string{n.EnglishName(), n.SpanishName(), n.EnglishFlat(), n.SpanishFlat()} {
			lookup[strings.ToLower(name)] = n
		}
	}
	return lookup
}

var accidentalReplacer = strings.NewReplacer("♯", "#", "♭", "b")

// ParseNote parses an English or Spanish note name in sharp or flat spelling.
// Matching ignores case and surrounding whitespace and accepts ♯/♭ glyphs.
func ParseNote(s string) (Note, bool) {
	cleaned := accidentalReplacer.Replace(strings.TrimSpace(s))
	n, ok := noteLookup[strings.ToLower(cleaned)]
	return n, ok
}

// MarshalText encodes the note as its English sharp spelling
func (n Note) MarshalText() ([]byte, error) {
	return []byte(n.EnglishName()), nil
}

// UnmarshalText accepts any spelling ParseNote accepts
func (n *Note) UnmarshalText(text []byte) error {
	parsed, ok := ParseNote(string(text))
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNote, string(text))
	}
	*n = parsed
	return nil
}
