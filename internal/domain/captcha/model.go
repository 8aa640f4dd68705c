package captcha

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

// Operand bounds, inclusive.
const (
	MinOperand = 1
	MaxOperand = 10
)

// Challenge is an ephemeral "num1 + num2" question. It is never persisted.
type Challenge struct {
	ID        string
	Num1      int
	Num2      int
	CreatedAt time.Time
}

// Source supplies uniformly distributed integers in [0, n).
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// DefaultSource draws from math/rand/v2's global generator.
var DefaultSource Source = globalSource{}

// New draws a fresh challenge with both operands uniform in [MinOperand, MaxOperand].
// PRE: id is non-empty
// POST: MinOperand <= Num1, Num2 <= MaxOperand
func New(id string, src Source, now time.Time) Challenge {
	span := MaxOperand - MinOperand + 1
	return Challenge{
		ID:        id,
		Num1:      MinOperand + src.IntN(span),
		Num2:      MinOperand + src.IntN(span),
		CreatedAt: now,
	}
}

// Answer is the expected sum.
func (c Challenge) Answer() int {
	return c.Num1 + c.Num2
}

// Check reports whether input parses to exactly the expected sum.
// INVARIANT: Challenge is not mutated
func (c Challenge) Check(input string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return false
	}
	return n == c.Answer()
}

// Question renders the challenge for the form.
func (c Challenge) Question() string {
	return "Сколько будет " + strconv.Itoa(c.Num1) + " + " + strconv.Itoa(c.Num2) + "?"
}
