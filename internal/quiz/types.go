package quiz

import (
	"github.com/google/uuid"
)

// SessionOption is an option as presented to a player: no correctness flag.
type SessionOption struct {
	ID   uuid.UUID `json:"id"`
	Text string    `json:"option_text"`
}

// SessionQuestion is one question of an assembled quiz session. Options are
// in randomized presentation order.
type SessionQuestion struct {
	ID       uuid.UUID       `json:"id"`
	Text     string          `json:"question_text"`
	ImageURL *string         `json:"image_url"`
	SongURL  *string         `json:"song_url"`
	Options  []SessionOption `json:"options"`
}

// AnswerResult is the per-question grading breakdown. Text fields are empty
// when the submitted question or option id did not resolve.
type AnswerResult struct {
	QuestionID     uuid.UUID `json:"question_id"`
	QuestionText   string    `json:"question_text,omitempty"`
	SelectedOption string    `json:"selected_option,omitempty"`
	CorrectOption  string    `json:"correct_option,omitempty"`
	IsCorrect      bool      `json:"is_correct"`
}

// Summary aggregates a graded submission.
type Summary struct {
	AttemptID      uuid.UUID      `json:"attempt_id"`
	Score          int            `json:"score"`
	TotalQuestions int            `json:"total_questions"`
	Percentage     int            `json:"percentage"`
	Results        []AnswerResult `json:"results"`
}
