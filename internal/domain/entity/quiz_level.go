package entity

// QuizLevel is an immutable difficulty tier configuration. Price is carried
// through as metadata only; payment handling lives outside this service.
type QuizLevel struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	DurationMinutes  int     `json:"duration_minutes"`
	QuestionCount    int     `json:"question_count"`
	ExpectedAccuracy float64 `json:"expected_accuracy"` // pass bar, 0..1
	PriceCents       int     `json:"price_cents"`

	// IQMultiplier scales the raw score into the IQ estimate for this tier.
	IQMultiplier float64 `json:"-"`

	// DifficultyLabel is the human-readable tier label for the level
	// listing. Results and ranking multipliers key on the level id.
	DifficultyLabel string `json:"difficulty_label"`
}
