package drills

import (
	"strings"
	"testing"

	"github.com/Conceptual-Machines/musictheory-api/internal/theory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteMath_AnswersMatchEvaluator(t *testing.T) {
	questions := NewGenerator(42).NoteMath(20)
	require.Len(t, questions, 20)

	for _, q := range questions {
		assert.Equal(t, KindNoteMath, q.Kind)
		assert.Contains(t, noteMathTemplates, q.Expression)
		assert.True(t, strings.HasPrefix(q.Prompt, q.Start.SpanishName()+" "))

		// Re-evaluate from the prompt, which names its own start note
		eval, err := theory.EvaluateExpression(q.Prompt, true)
		require.NoError(t, err)
		assert.Equal(t, q.Answer, eval.Result)
		assert.True(t, q.Check(q.Answer))
	}
}

func TestSteps_Answers(t *testing.T) {
	questions := NewGenerator(7).Steps(30)
	require.Len(t, questions, 30)

	for _, q := range questions {
		assert.Equal(t, KindSteps, q.Kind)
		distance := theory.HalfStepsBetween(q.Start, q.Answer)
		// Every instruction moves 1-4 half steps up or 1-2 down
		assert.Contains(t, []int{1, 2, 3, 4, 10, 11}, distance, q.Prompt)
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	a := NewGenerator(99).NoteMath(10)
	b := NewGenerator(99).NoteMath(10)
	assert.Equal(t, a, b)
}

func TestGenerator_ClampsCount(t *testing.T) {
	g := NewGenerator(1)
	assert.Len(t, g.NoteMath(0), 1)
	assert.Len(t, g.Steps(-5), 1)
	assert.Len(t, g.Steps(500), MaxQuestions)
}

func TestQuestion_Check(t *testing.T) {
	q := Question{Start: theory.C, Answer: theory.D}
	assert.True(t, q.Check(theory.D))
	assert.False(t, q.Check(theory.E))
}

func TestKeys_TargetsAreAnswers(t *testing.T) {
	questions := NewGenerator(11).Keys(40)
	require.Len(t, questions, 40)

	seen := map[theory.Note]bool{}
	for _, q := range questions {
		assert.Equal(t, KindKeys, q.Kind)
		assert.Equal(t, q.Start, q.Answer)
		assert.True(t, q.Check(q.Answer))
		assert.Contains(t, q.Prompt, q.Answer.SpanishName())
		assert.Contains(t, q.Prompt, q.Answer.EnglishName())
		seen[q.Answer] = true
	}
	assert.Greater(t, len(seen), 1)

	assert.Equal(t, questions, NewGenerator(11).Keys(40))
}

func TestNewSeed_NonZero(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.NotZero(t, NewSeed())
	}
}
