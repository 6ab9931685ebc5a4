package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// StringArray is a custom type for JSONB columns holding string lists.
type StringArray []string

// Scan implements sql.Scanner for StringArray.
func (o *StringArray) Scan(value interface{}) error {
	if value == nil {
		*o = StringArray{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*o = StringArray{}
		return nil
	}

	return json.Unmarshal(bytes, o)
}

// Value implements driver.Valuer for StringArray.
func (o StringArray) Value() (driver.Value, error) {
	if len(o) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(o)
}

// QuestionKind identifies the answer shape of a question. Questions form a
// tagged union over this kind: each variant carries only the correct-answer
// field that matches it, and answer comparison switches exhaustively on it.
type QuestionKind string

const (
	KindMultipleChoice QuestionKind = "multiple_choice"
	KindTrueFalse      QuestionKind = "true_false"
	KindNumerical      QuestionKind = "numerical"
)

// QuestionType is the cognitive domain a question exercises.
type QuestionType string

const (
	TypeSpatial   QuestionType = "spatial"
	TypeLogical   QuestionType = "logical"
	TypeAbstract  QuestionType = "abstract"
	TypeNumerical QuestionType = "numerical"
	TypeVerbal    QuestionType = "verbal"
)

// Question is one assessable item. Immutable: built from the static catalogs
// at startup and never mutated afterwards.
type Question struct {
	ID         string       `json:"id"`
	Kind       QuestionKind `json:"kind"`
	Type       QuestionType `json:"type"`
	Difficulty int          `json:"difficulty"` // 1..10
	Prompt     string       `json:"prompt"`

	// Options is present only for multiple-choice items.
	Options StringArray `json:"options,omitempty"`

	// Exactly one of the three fields below is meaningful, selected by Kind.
	// All are hidden from clients.
	CorrectOption int     `json:"-"`
	CorrectBool   bool    `json:"-"`
	CorrectValue  float64 `json:"-"`

	TimeLimitSec int    `json:"time_limit_sec"`
	Points       int    `json:"points"`
	Category     string `json:"category"`
}

// Answer is a user-supplied answer, tagged with the kind it was given as.
// The zero value (empty Kind) is the "unanswered" sentinel.
type Answer struct {
	Kind   QuestionKind `json:"kind"`
	Option int          `json:"option,omitempty"`
	Bool   bool         `json:"bool,omitempty"`
	Value  float64      `json:"value,omitempty"`
}

// OptionAnswer builds a multiple-choice answer.
func OptionAnswer(option int) Answer {
	return Answer{Kind: KindMultipleChoice, Option: option}
}

// BoolAnswer builds a true/false answer.
func BoolAnswer(v bool) Answer {
	return Answer{Kind: KindTrueFalse, Bool: v}
}

// ValueAnswer builds a numeric-input answer.
func ValueAnswer(v float64) Answer {
	return Answer{Kind: KindNumerical, Value: v}
}

// IsAnswered reports whether the answer slot has been filled.
func (a Answer) IsAnswered() bool {
	return a.Kind != ""
}

// IsCorrect checks the given answer against the question. A kind mismatch
// (including the unanswered sentinel) is always incorrect. Numeric answers
// require an exact match, no tolerance band.
func (q *Question) IsCorrect(a Answer) bool {
	if a.Kind != q.Kind {
		return false
	}
	switch q.Kind {
	case KindMultipleChoice:
		return a.Option == q.CorrectOption
	case KindTrueFalse:
		return a.Bool == q.CorrectBool
	case KindNumerical:
		return a.Value == q.CorrectValue
	default:
		return false
	}
}

// IsValidOption reports whether the selected option index exists.
// Meaningful only for multiple-choice items.
func (q *Question) IsValidOption(selectedOption int) bool {
	return selectedOption >= 0 && selectedOption < len(q.Options)
}

// OptionsCount returns the number of answer options.
func (q *Question) OptionsCount() int {
	return len(q.Options)
}
