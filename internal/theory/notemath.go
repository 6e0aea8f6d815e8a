package theory

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformedStep is returned by strict evaluation for any token the lenient
// evaluator would skip
var ErrMalformedStep = errors.New("malformed step")

var multipliedStep = regexp.MustCompile(`^(\d+)\(([HW])\)$`)

const maxStepCount = 1 << 20

var signSpacer = strings.NewReplacer("+", " + ", "-", " - ")

// AppliedStep is one signed step applied during evaluation
type AppliedStep struct {
	Token     string `json:"token"`
	HalfSteps int    `json:"half_steps"`
	Result    Note   `json:"result"`
}

// SkippedToken is a token the evaluator ignored
type SkippedToken struct {
	Token  string `json:"token"`
	Reason string `json:"reason"`
}

// Evaluation is the full trace of a note-math evaluation
type Evaluation struct {
	Start   Note           `json:"start"`
	Result  Note           `json:"result"`
	Steps   []AppliedStep  `json:"steps"`
	Skipped []SkippedToken `json:"skipped"`
}

// Evaluate applies a note-math expression such as "+ W + W - H" or "+ 3(W) - H"
// to start, left to right. Unrecognized step tokens leave the note unchanged.
func Evaluate(start Note, expr string) Note {
	return EvaluateDetailed(start, expr).Result
}

// EvaluateDetailed evaluates like Evaluate and records every applied and skipped token
func EvaluateDetailed(start Note, expr string) Evaluation {
	eval := Evaluation{
		Start:   start,
		Result:  start,
		Steps:   []AppliedStep{},
		Skipped: []SkippedToken{},
	}

	tokens := strings.Fields(signSpacer.Replace(expr))
	for i := 0; i < len(tokens); {
		token := tokens[i]
		direction := 0
		switch token {
		case "+":
			direction = 1
		case "-":
			direction = -1
		}

		if direction == 0 {
			eval.Skipped = append(eval.Skipped, SkippedToken{Token: token, Reason: "expected + or -"})
			i++
			continue
		}
		if i+1 >= len(tokens) {
			eval.Skipped = append(eval.Skipped, SkippedToken{Token: token, Reason: "sign without step"})
			i++
			continue
		}

		step := strings.ToUpper(tokens[i+1])
		magnitude, ok := stepMagnitude(step)
		if !ok {
			eval.Skipped = append(eval.Skipped, SkippedToken{Token: tokens[i+1], Reason: "unrecognized step"})
		} else {
			halfSteps := direction * magnitude
			eval.Result = eval.Result.Up(halfSteps)
			eval.Steps = append(eval.Steps, AppliedStep{
				Token:     token + step,
				HalfSteps: halfSteps,
				Result:    eval.Result,
			})
		}
		i += 2
	}

	return eval
}

// EvaluateStrict evaluates like Evaluate but fails on the first skipped token
func EvaluateStrict(start Note, expr string) (Note, error) {
	eval := EvaluateDetailed(start, expr)
	if len(eval.Skipped) > 0 {
		skipped := eval.Skipped[0]
		return start, fmt.Errorf("%w: %q (%s)", ErrMalformedStep, skipped.Token, skipped.Reason)
	}
	return eval.Result, nil
}

// EvaluateExpression evaluates an expression that names its own start note,
// e.g. "Do + W + W - H". With strict set, skipped tokens are an error.
func EvaluateExpression(expr string, strict bool) (Evaluation, error) {
	split := strings.IndexAny(expr, "+-")
	if split < 0 {
		split = len(expr)
	}

	start, ok := ParseNote(expr[:split])
	if !ok {
		return Evaluation{}, fmt.Errorf("%w: %q", ErrUnknownNote, strings.TrimSpace(expr[:split]))
	}

	eval := EvaluateDetailed(start, expr[split:])
	if strict && len(eval.Skipped) > 0 {
		skipped := eval.Skipped[0]
		return eval, fmt.Errorf("%w: %q (%s)", ErrMalformedStep, skipped.Token, skipped.Reason)
	}
	return eval, nil
}

// stepMagnitude returns the half steps for H, W, N(H) or N(W)
func stepMagnitude(step string) (int, bool) {
	switch step {
	case "H":
		return HalfStep, true
	case "W":
		return WholeStep, true
	}

	match := multipliedStep.FindStringSubmatch(step)
	if match == nil {
		return 0, false
	}
	count, err := strconv.Atoi(match[1])
	if err != nil {
		// Out of int range: only the count modulo an octave matters
		count = 0
		for _, digit := range match[1] {
			count = (count*10 + int(digit-'0')) % NotesPerOctave
		}
	}
	base := HalfStep
	if match[2] == "W" {
		base = WholeStep
	}
	// Only the pitch class matters; reduce huge counts so the product cannot overflow
	if count > maxStepCount {
		count = mod(count, NotesPerOctave)
	}
	return count * base, true
}
