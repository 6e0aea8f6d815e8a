package theory

// Major keys covered by the lesson content. The tables are partial on purpose:
// roots missing here have no entry rather than a computed count.
var (
	sharpKeys = map[Note]int{C: 0, G: 1, D: 2, A: 3, E: 4, B: 5, FSharp: 6}
	flatKeys  = map[Note]int{C: 0, F: 1, ASharp: 2, DSharp: 3, GSharp: 4, CSharp: 5, FSharp: 6}
)

// SharpsInKey returns the number of sharps in the major key of root
func SharpsInKey(root Note) (int, bool) {
	n, ok := sharpKeys[NoteFromInt(int(root))]
	return n, ok
}

// FlatsInKey returns the number of flats in the major key of root
func FlatsInKey(root Note) (int, bool) {
	n, ok := flatKeys[NoteFromInt(int(root))]
	return n, ok
}

// RelativeMinor returns the relative minor of a major key, three half steps down
func RelativeMinor(majorRoot Note) Note {
	return majorRoot.Down(3)
}

// KeySignature collects the key lookups for one major root. Sharps and Flats are
// nil when the root is not in the corresponding table.
type KeySignature struct {
	Root          Note
	Sharps        *int
	Flats         *int
	RelativeMinor Note
}

// KeySignatureOf returns the key signature information for a major root
func KeySignatureOf(root Note) KeySignature {
	ks := KeySignature{
		Root:          NoteFromInt(int(root)),
		RelativeMinor: RelativeMinor(root),
	}
	if n, ok := SharpsInKey(root); ok {
		ks.Sharps = &n
	}
	if n, ok := FlatsInKey(root); ok {
		ks.Flats = &n
	}
	return ks
}
