package question

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"quizdeck/internal/domain"
)

// Store is the persistence contract for the question bank. Insert and Update
// must be atomic: a concurrent reader never sees a half-written option set.
type Store interface {
	List(ctx context.Context) ([]domain.Question, error)
	QuestionByID(ctx context.Context, id uuid.UUID) (domain.Question, error)
	Insert(ctx context.Context, q domain.Question) (domain.Question, error)
	Update(ctx context.Context, q domain.Question, replaceOptions bool) (domain.Question, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// OptionInput is one option in an admin create/update payload.
type OptionInput struct {
	Text      string `json:"option_text"`
	IsCorrect bool   `json:"is_correct"`
}

// CreateInput is the admin payload for a new question.
type CreateInput struct {
	Text     string        `json:"question_text"`
	ImageURL *string       `json:"image_url"`
	SongURL  *string       `json:"song_url"`
	Options  []OptionInput `json:"options"`
}

// UpdateInput is the admin payload for editing a question. Nil fields leave
// the stored value unchanged; a non-nil Options slice replaces the whole set.
type UpdateInput struct {
	Text     *string       `json:"question_text"`
	ImageURL *string       `json:"image_url"`
	SongURL  *string       `json:"song_url"`
	Options  []OptionInput `json:"options"`
}

// Service implements admin management of the question bank.
type Service struct {
	store  Store
	logger zerolog.Logger
}

// NewService constructs the question-bank service.
func NewService(store Store, logger zerolog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger.With().Str("component", "question").Logger(),
	}
}

// List returns all questions with their options, newest first.
func (s *Service) List(ctx context.Context) ([]domain.Question, error) {
	return s.store.List(ctx)
}

// Create validates and persists a new question with its options.
func (s *Service) Create(ctx context.Context, input CreateInput) (domain.Question, error) {
	if input.Text == "" {
		return domain.Question{}, domain.Validationf("question_text", "question text is required")
	}
	if err := validateOptions(input.Options); err != nil {
		return domain.Question{}, err
	}

	created, err := s.store.Insert(ctx, domain.Question{
		Text:     input.Text,
		ImageURL: input.ImageURL,
		SongURL:  input.SongURL,
		Options:  toDomainOptions(input.Options),
	})
	if err != nil {
		return domain.Question{}, fmt.Errorf("insert question: %w", err)
	}

	s.logger.Info().Str("question_id", created.ID.String()).Msg("question created")
	return created, nil
}

// Update edits a question. Options, when present, are validated before any
// write and then replaced wholesale; a rejected option set leaves the prior
// set untouched.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (domain.Question, error) {
	existing, err := s.store.QuestionByID(ctx, id)
	if err != nil {
		return domain.Question{}, err
	}

	replaceOptions := input.Options != nil
	if replaceOptions {
		if err := validateOptions(input.Options); err != nil {
			return domain.Question{}, err
		}
		existing.Options = toDomainOptions(input.Options)
	}
	if input.Text != nil {
		if *input.Text == "" {
			return domain.Question{}, domain.Validationf("question_text", "question text is required")
		}
		existing.Text = *input.Text
	}
	if input.ImageURL != nil {
		existing.ImageURL = input.ImageURL
	}
	if input.SongURL != nil {
		existing.SongURL = input.SongURL
	}

	updated, err := s.store.Update(ctx, existing, replaceOptions)
	if err != nil {
		return domain.Question{}, fmt.Errorf("update question: %w", err)
	}

	s.logger.Info().Str("question_id", id.String()).Bool("options_replaced", replaceOptions).Msg("question updated")
	return updated, nil
}

// Delete removes a question and, through the store's cascade, its options.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("question_id", id.String()).Msg("question deleted")
	return nil
}

// validateOptions enforces the option-set invariant: at least two options,
// exactly one of them correct.
func validateOptions(options []OptionInput) error {
	if len(options) < 2 {
		return domain.Validationf("options", "at least 2 options are required")
	}
	correct := 0
	for _, opt := range options {
		if opt.Text == "" {
			return domain.Validationf("options", "option text is required")
		}
		if opt.IsCorrect {
			correct++
		}
	}
	if correct == 0 {
		return domain.Validationf("options", "at least one option must be marked as correct")
	}
	if correct > 1 {
		return domain.Validationf("options", "exactly one option may be marked as correct")
	}
	return nil
}

func toDomainOptions(options []OptionInput) []domain.Option {
	out := make([]domain.Option, 0, len(options))
	for _, opt := range options {
		out = append(out, domain.Option{Text: opt.Text, IsCorrect: opt.IsCorrect})
	}
	return out
}
