package theory

import "strings"

// Scale formulas in half steps
var (
	// MajorScaleIntervals is W-W-H-W-W-W-H
	MajorScaleIntervals = []int{2, 2, 1, 2, 2, 2, 1}
	// MinorScaleIntervals is the natural minor W-H-W-W-H-W-W
	MinorScaleIntervals = []int{2, 1, 2, 2, 1, 2, 2}
)

// ScaleIntervals returns the interval pattern for a named scale type
func ScaleIntervals(name string) ([]int, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "major", "ionian":
		return MajorScaleIntervals, true
	case "minor", "natural_minor", "aeolian":
		return MinorScaleIntervals, true
	default:
		return nil, false
	}
}

// BuildScale walks up from root applying each interval in turn.
// The result has len(intervals)+1 notes: the root plus one per step.
func BuildScale(root Note, intervals []int) []Note {
	notes := make([]Note, 0, len(intervals)+1)
	current := root.Up(0)
	notes = append(notes, current)
	for _, interval := range intervals {
		current = current.Up(interval)
		notes = append(notes, current)
	}
	return notes
}

// MajorScale returns the 8 notes of the major scale, root to octave
func MajorScale(root Note) []Note {
	return BuildScale(root, MajorScaleIntervals)
}

// MinorScale returns the 8 notes of the natural minor scale, root to octave
func MinorScale(root Note) []Note {
	return BuildScale(root, MinorScaleIntervals)
}

// Names renders a note sequence in the given language
func Names(notes []Note, lang Language) []string {
	names := make([]string, len(notes))
	for i, n := range notes {
		names[i] = n.Name(lang)
	}
	return names
}
