package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. PasswordHash is the bcrypt form and is never
// serialized to clients.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// Option is one selectable answer belonging to a question. IsCorrect is only
// exposed on admin surfaces and in grading results, never in an assembled
// quiz session.
type Option struct {
	ID         uuid.UUID `json:"id"`
	QuestionID uuid.UUID `json:"question_id"`
	Text       string    `json:"option_text"`
	IsCorrect  bool      `json:"is_correct"`
}

// Question is a multiple-choice question with exactly one correct option.
// ImageURL and SongURL are optional media attachments.
type Question struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"question_text"`
	ImageURL  *string   `json:"image_url"`
	SongURL   *string   `json:"song_url"`
	Options   []Option  `json:"options,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CorrectOption returns the single option flagged correct, or nil if the
// option set is in a broken state.
func (q Question) CorrectOption() *Option {
	for i := range q.Options {
		if q.Options[i].IsCorrect {
			return &q.Options[i]
		}
	}
	return nil
}

// Attempt is one completed, scored quiz submission. Attempts are append-only:
// no update or delete exists anywhere in the system.
type Attempt struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	CompletedAt    time.Time `json:"completed_at"`
}

// Answer pairs a question with the option the user chose. Answers are
// transient; they exist only for the duration of a grading call.
type Answer struct {
	QuestionID uuid.UUID `json:"question_id"`
	OptionID   uuid.UUID `json:"option_id"`
}

// AttemptWithUser joins an attempt with the owning user's username, the raw
// material for leaderboard ranking.
type AttemptWithUser struct {
	Attempt
	Username string `json:"username"`
}
