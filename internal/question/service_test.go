package question

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"quizdeck/internal/domain"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) List(ctx context.Context) ([]domain.Question, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Question), args.Error(1)
}

func (m *mockStore) QuestionByID(ctx context.Context, id uuid.UUID) (domain.Question, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Question), args.Error(1)
}

func (m *mockStore) Insert(ctx context.Context, q domain.Question) (domain.Question, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(domain.Question), args.Error(1)
}

func (m *mockStore) Update(ctx context.Context, q domain.Question, replaceOptions bool) (domain.Question, error) {
	args := m.Called(ctx, q, replaceOptions)
	return args.Get(0).(domain.Question), args.Error(1)
}

func (m *mockStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func validOptions() []OptionInput {
	return []OptionInput{
		{Text: "Paris", IsCorrect: true},
		{Text: "London"},
		{Text: "Berlin"},
	}
}

func TestCreateRejectsMissingText(t *testing.T) {
	store := new(mockStore)
	svc := NewService(store, zerolog.Nop())

	_, err := svc.Create(context.Background(), CreateInput{Options: validOptions()})

	assert.True(t, domain.IsValidation(err))
	store.AssertNotCalled(t, "Insert")
}

func TestCreateRejectsTooFewOptions(t *testing.T) {
	store := new(mockStore)
	svc := NewService(store, zerolog.Nop())

	_, err := svc.Create(context.Background(), CreateInput{
		Text:    "Capital of France?",
		Options: []OptionInput{{Text: "Paris", IsCorrect: true}},
	})

	assert.True(t, domain.IsValidation(err))
	store.AssertNotCalled(t, "Insert")
}

func TestCreateRejectsNoCorrectOption(t *testing.T) {
	store := new(mockStore)
	svc := NewService(store, zerolog.Nop())

	_, err := svc.Create(context.Background(), CreateInput{
		Text:    "Capital of France?",
		Options: []OptionInput{{Text: "Paris"}, {Text: "London"}},
	})

	assert.True(t, domain.IsValidation(err))
	store.AssertNotCalled(t, "Insert")
}

func TestCreateRejectsMultipleCorrectOptions(t *testing.T) {
	store := new(mockStore)
	svc := NewService(store, zerolog.Nop())

	_, err := svc.Create(context.Background(), CreateInput{
		Text:    "Capital of France?",
		Options: []OptionInput{{Text: "Paris", IsCorrect: true}, {Text: "London", IsCorrect: true}},
	})

	assert.True(t, domain.IsValidation(err))
	store.AssertNotCalled(t, "Insert")
}

func TestCreatePersistsValidQuestion(t *testing.T) {
	store := new(mockStore)
	svc := NewService(store, zerolog.Nop())

	created := domain.Question{ID: uuid.New(), Text: "Capital of France?"}
	store.On("Insert", mock.Anything, mock.MatchedBy(func(q domain.Question) bool {
		return q.Text == "Capital of France?" && len(q.Options) == 3
	})).Return(created, nil)

	got, err := svc.Create(context.Background(), CreateInput{
		Text:    "Capital of France?",
		Options: validOptions(),
	})

	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	store.AssertExpectations(t)
}

func TestUpdateRejectsBrokenOptionSetBeforeWriting(t *testing.T) {
	store := new(mockStore)
	svc := NewService(store, zerolog.Nop())

	id := uuid.New()
	existing := domain.Question{
		ID:   id,
		Text: "Capital of France?",
		Options: []domain.Option{
			{ID: uuid.New(), QuestionID: id, Text: "Paris", IsCorrect: true},
			{ID: uuid.New(), QuestionID: id, Text: "London"},
		},
	}
	store.On("QuestionByID", mock.Anything, id).Return(existing, nil)

	_, err := svc.Update(context.Background(), id, UpdateInput{
		Options: []OptionInput{{Text: "Paris"}, {Text: "London"}},
	})

	assert.True(t, domain.IsValidation(err))
	store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateWithoutOptionsKeepsExistingSet(t *testing.T) {
	store := new(mockStore)
	svc := NewService(store, zerolog.Nop())

	id := uuid.New()
	existing := domain.Question{ID: id, Text: "old text", Options: []domain.Option{
		{ID: uuid.New(), QuestionID: id, Text: "Paris", IsCorrect: true},
		{ID: uuid.New(), QuestionID: id, Text: "London"},
	}}
	store.On("QuestionByID", mock.Anything, id).Return(existing, nil)

	newText := "new text"
	store.On("Update", mock.Anything, mock.MatchedBy(func(q domain.Question) bool {
		return q.Text == newText
	}), false).Return(existing, nil)

	_, err := svc.Update(context.Background(), id, UpdateInput{Text: &newText})

	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestUpdateReplacesOptionsWholesale(t *testing.T) {
	store := new(mockStore)
	svc := NewService(store, zerolog.Nop())

	id := uuid.New()
	existing := domain.Question{ID: id, Text: "Capital of France?", Options: []domain.Option{
		{ID: uuid.New(), QuestionID: id, Text: "Paris", IsCorrect: true},
		{ID: uuid.New(), QuestionID: id, Text: "London"},
	}}
	store.On("QuestionByID", mock.Anything, id).Return(existing, nil)
	store.On("Update", mock.Anything, mock.MatchedBy(func(q domain.Question) bool {
		return len(q.Options) == 3
	}), true).Return(existing, nil)

	_, err := svc.Update(context.Background(), id, UpdateInput{Options: validOptions()})

	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestUpdateUnknownQuestion(t *testing.T) {
	store := new(mockStore)
	svc := NewService(store, zerolog.Nop())

	id := uuid.New()
	store.On("QuestionByID", mock.Anything, id).Return(domain.Question{}, domain.ErrQuestionNotFound)

	_, err := svc.Update(context.Background(), id, UpdateInput{})

	assert.ErrorIs(t, err, domain.ErrQuestionNotFound)
}

func TestDeletePassesThrough(t *testing.T) {
	store := new(mockStore)
	svc := NewService(store, zerolog.Nop())

	id := uuid.New()
	store.On("Delete", mock.Anything, id).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), id))
	store.AssertExpectations(t)
}
