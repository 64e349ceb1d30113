package quiz

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"quizdeck/internal/domain"
)

var attemptsGraded = promauto.NewCounter(prometheus.CounterOpts{
	Name: "quizdeck_attempts_graded_total",
	Help: "Number of quiz submissions graded.",
})

// QuestionStore is the question-bank contract the assembler and grading
// engine depend on.
type QuestionStore interface {
	RandomQuestions(ctx context.Context, limit int) ([]domain.Question, error)
	QuestionByID(ctx context.Context, id uuid.UUID) (domain.Question, error)
}

// AttemptLedger records completed attempts. Append-only.
type AttemptLedger interface {
	Insert(ctx context.Context, userID uuid.UUID, score, total int) (domain.Attempt, error)
}

// Service assembles quiz sessions and grades submissions.
type Service struct {
	questions QuestionStore
	attempts  AttemptLedger
	logger    zerolog.Logger
}

// NewService constructs the quiz service.
func NewService(questions QuestionStore, attempts AttemptLedger, logger zerolog.Logger) *Service {
	return &Service{
		questions: questions,
		attempts:  attempts,
		logger:    logger.With().Str("component", "quiz").Logger(),
	}
}

// BuildSession draws up to size random questions and prepares them for
// presentation: option order shuffled, correctness flags stripped. A bank
// smaller than size yields the whole bank; an empty bank is an error.
func (s *Service) BuildSession(ctx context.Context, size int) ([]SessionQuestion, error) {
	questions, err := s.questions.RandomQuestions(ctx, size)
	if err != nil {
		return nil, fmt.Errorf("fetch questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, domain.ErrNoQuestionsAvailable
	}

	session := make([]SessionQuestion, 0, len(questions))
	for _, q := range questions {
		opts := make([]SessionOption, 0, len(q.Options))
		for _, o := range q.Options {
			opts = append(opts, SessionOption{ID: o.ID, Text: o.Text})
		}
		rand.Shuffle(len(opts), func(i, j int) {
			opts[i], opts[j] = opts[j], opts[i]
		})
		session = append(session, SessionQuestion{
			ID:       q.ID,
			Text:     q.Text,
			ImageURL: q.ImageURL,
			SongURL:  q.SongURL,
			Options:  opts,
		})
	}
	return session, nil
}

// Grade scores a submission and appends one attempt to the ledger. Unknown
// question or option ids mark that answer incorrect instead of failing the
// submission; only an empty answer set is rejected outright.
func (s *Service) Grade(ctx context.Context, userID uuid.UUID, answers []domain.Answer) (Summary, error) {
	if len(answers) == 0 {
		return Summary{}, domain.ErrEmptyAnswerSet
	}

	score := 0
	results := make([]AnswerResult, 0, len(answers))
	for _, answer := range answers {
		result, err := s.gradeOne(ctx, answer)
		if err != nil {
			return Summary{}, err
		}
		if result.IsCorrect {
			score++
		}
		results = append(results, result)
	}

	total := len(answers)
	attempt, err := s.attempts.Insert(ctx, userID, score, total)
	if err != nil {
		return Summary{}, fmt.Errorf("record attempt: %w", err)
	}

	attemptsGraded.Inc()
	s.logger.Info().
		Str("user_id", userID.String()).
		Str("attempt_id", attempt.ID.String()).
		Int("score", score).
		Int("total", total).
		Msg("submission graded")

	return Summary{
		AttemptID:      attempt.ID,
		Score:          score,
		TotalQuestions: total,
		Percentage:     Percentage(score, total),
		Results:        results,
	}, nil
}

func (s *Service) gradeOne(ctx context.Context, answer domain.Answer) (AnswerResult, error) {
	result := AnswerResult{QuestionID: answer.QuestionID}

	question, err := s.questions.QuestionByID(ctx, answer.QuestionID)
	if err != nil {
		if errors.Is(err, domain.ErrQuestionNotFound) {
			return result, nil
		}
		return AnswerResult{}, fmt.Errorf("lookup question: %w", err)
	}
	result.QuestionText = question.Text

	correct := question.CorrectOption()
	if correct != nil {
		result.CorrectOption = correct.Text
	}
	for _, opt := range question.Options {
		if opt.ID == answer.OptionID {
			result.SelectedOption = opt.Text
			break
		}
	}

	result.IsCorrect = correct != nil && answer.OptionID == correct.ID
	return result, nil
}

// Percentage computes round-half-up(100*score/total). Callers must guarantee
// total > 0.
func Percentage(score, total int) int {
	return int(math.Round(float64(score) * 100 / float64(total)))
}
