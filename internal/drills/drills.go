// Package drills generates practice questions whose answers are computed by
// the theory engine.
package drills

import (
	"fmt"

	"github.com/Conceptual-Machines/musictheory-api/internal/theory"
	"github.com/brianvoe/gofakeit/v7"
)

const (
	KindNoteMath = "note_math"
	KindSteps    = "steps"
	KindKeys     = "keys"

	// MaxQuestions caps a single drill
	MaxQuestions = 50
)

// Question is one drill item. Answer is the expected note.
type Question struct {
	Kind       string      `json:"kind"`
	Prompt     string      `json:"prompt"`
	Start      theory.Note `json:"start"`
	Expression string      `json:"expression,omitempty"`
	Answer     theory.Note `json:"answer"`
}

// Check reports whether the given note answers the question
func (q Question) Check(answer theory.Note) bool {
	return answer.Value() == q.Answer.Value()
}

var noteMathTemplates = []string{
	"+ H",
	"+ W",
	"- H",
	"- W",
	"+ W + H",
	"+ W + W",
	"+ W - H",
	"+ W + W - H",
	"- W - H",
	"+ H + H",
}

type stepInstruction struct {
	prompt    string
	halfSteps int
}

var stepInstructions = []stepInstruction{
	{"Un semitono más alto", 1},
	{"Un semitono más bajo", -1},
	{"Un tono más alto", 2},
	{"Un tono más bajo", -2},
	{"2 semitonos más alto", 2},
	{"2 tonos más alto", 4},
	{"3 semitonos más alto", 3},
	{"2 semitonos más bajo", -2},
	{"Un tono y medio más alto", 3},
}

// Generator draws questions from a seeded source. A Generator is not safe for
// concurrent use; create one per request.
type Generator struct {
	faker *gofakeit.Faker
}

// NewGenerator returns a generator; equal seeds give equal drills
func NewGenerator(seed uint64) *Generator {
	return &Generator{faker: gofakeit.New(seed)}
}

// NewSeed draws a non-zero seed for callers that did not supply one
func NewSeed() uint64 {
	for {
		if seed := gofakeit.Uint64(); seed != 0 {
			return seed
		}
	}
}

// NoteMath returns n "start + steps" questions evaluated with theory.Evaluate
func (g *Generator) NoteMath(n int) []Question {
	n = clampCount(n)
	questions := make([]Question, 0, n)
	for i := 0; i < n; i++ {
		start := g.note()
		expr := noteMathTemplates[g.faker.Number(0, len(noteMathTemplates)-1)]
		questions = append(questions, Question{
			Kind:       KindNoteMath,
			Prompt:     fmt.Sprintf("%s %s", start.SpanishName(), expr),
			Start:      start,
			Expression: expr,
			Answer:     theory.Evaluate(start, expr),
		})
	}
	return questions
}

// Steps returns n questions phrased as Spanish step instructions
func (g *Generator) Steps(n int) []Question {
	n = clampCount(n)
	questions := make([]Question, 0, n)
	for i := 0; i < n; i++ {
		start := g.note()
		instr := stepInstructions[g.faker.Number(0, len(stepInstructions)-1)]
		questions = append(questions, Question{
			Kind:   KindSteps,
			Prompt: fmt.Sprintf("%s: %s", start.SpanishName(), instr.prompt),
			Start:  start,
			Answer: start.Up(instr.halfSteps),
		})
	}
	return questions
}

// Keys returns n "find this note" questions; the answer is the target itself
func (g *Generator) Keys(n int) []Question {
	n = clampCount(n)
	questions := make([]Question, 0, n)
	for i := 0; i < n; i++ {
		target := g.note()
		questions = append(questions, Question{
			Kind:   KindKeys,
			Prompt: fmt.Sprintf("¡Encuentra esta nota! %s (%s)", target.SpanishName(), target.EnglishName()),
			Start:  target,
			Answer: target,
		})
	}
	return questions
}

func (g *Generator) note() theory.Note {
	return theory.AllNotes[g.faker.Number(0, len(theory.AllNotes)-1)]
}

func clampCount(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxQuestions {
		return MaxQuestions
	}
	return n
}
