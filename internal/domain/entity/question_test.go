package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func mcQuestion() *Question {
	return &Question{
		ID:            "q-mc",
		Kind:          KindMultipleChoice,
		Options:       StringArray{"2", "4", "6", "8"},
		CorrectOption: 1,
	}
}

func TestIsCorrect_MultipleChoice(t *testing.T) {
	q := mcQuestion()

	assert.True(t, q.IsCorrect(OptionAnswer(1)))
	assert.False(t, q.IsCorrect(OptionAnswer(0)))
	assert.False(t, q.IsCorrect(OptionAnswer(3)))
}

func TestIsCorrect_TrueFalse(t *testing.T) {
	q := &Question{ID: "q-tf", Kind: KindTrueFalse, CorrectBool: true}

	assert.True(t, q.IsCorrect(BoolAnswer(true)))
	assert.False(t, q.IsCorrect(BoolAnswer(false)))
}

func TestIsCorrect_Numerical_ExactMatchOnly(t *testing.T) {
	q := &Question{ID: "q-num", Kind: KindNumerical, CorrectValue: 42}

	assert.True(t, q.IsCorrect(ValueAnswer(42)))
	// No tolerance band: a near miss is a miss.
	assert.False(t, q.IsCorrect(ValueAnswer(42.0001)))
	assert.False(t, q.IsCorrect(ValueAnswer(41)))
}

// A kind mismatch must always be incorrect, never a panic or a coercion.
func TestIsCorrect_KindMismatch(t *testing.T) {
	mc := mcQuestion()
	num := &Question{ID: "q-num", Kind: KindNumerical, CorrectValue: 1}

	assert.False(t, mc.IsCorrect(ValueAnswer(1)))
	assert.False(t, mc.IsCorrect(BoolAnswer(true)))
	assert.False(t, num.IsCorrect(OptionAnswer(1)))
}

// The zero Answer is the unanswered sentinel and never matches anything.
func TestIsCorrect_Unanswered(t *testing.T) {
	var unanswered Answer
	assert.False(t, unanswered.IsAnswered())

	assert.False(t, mcQuestion().IsCorrect(unanswered))
	q := &Question{ID: "q-tf", Kind: KindTrueFalse, CorrectBool: false}
	assert.False(t, q.IsCorrect(unanswered))
}

func TestIsValidOption(t *testing.T) {
	q := mcQuestion()

	assert.True(t, q.IsValidOption(0))
	assert.True(t, q.IsValidOption(3))
	assert.False(t, q.IsValidOption(-1))
	assert.False(t, q.IsValidOption(4))
	assert.Equal(t, 4, q.OptionsCount())
}
