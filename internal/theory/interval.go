package theory

import "fmt"

// OctaveSteps is the half-step distance of a full octave. HalfStepsBetween never
// returns it; it appears when measuring root to octave across an accumulated scale.
const OctaveSteps = 12

var (
	englishIntervals = [OctaveSteps + 1]string{
		"Unison", "Minor 2nd", "Major 2nd", "Minor 3rd", "Major 3rd", "Perfect 4th", "Tritone",
		"Perfect 5th", "Minor 6th", "Major 6th", "Minor 7th", "Major 7th", "Octave",
	}
	spanishIntervals = [OctaveSteps + 1]string{
		"Unísono", "2da Menor", "2da Mayor", "3ra Menor", "3ra Mayor", "4ta Justa", "Tritono",
		"5ta Justa", "6ta Menor", "6ta Mayor", "7ma Menor", "7ma Mayor", "Octava",
	}
)

// HalfStepsBetween returns the ascending distance from a to b in [0, 11]
func HalfStepsBetween(from, to Note) int {
	return mod(to.Value()-from.Value(), NotesPerOctave)
}

// IntervalName names the ascending interval from one note to another
func IntervalName(from, to Note, lang Language) string {
	return IntervalNameForSteps(HalfStepsBetween(from, to), lang)
}

// IntervalNameForSteps names a half-step count in [0, 12]; other counts get a
// generic "<n> semitones" label.
func IntervalNameForSteps(steps int, lang Language) string {
	if steps < 0 || steps > OctaveSteps {
		if lang == Spanish {
			return fmt.Sprintf("%d semitonos", steps)
		}
		return fmt.Sprintf("%d semitones", steps)
	}
	if lang == Spanish {
		return spanishIntervals[steps]
	}
	return englishIntervals[steps]
}
