package quiz

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizdeck/internal/domain"
)

type stubQuestionStore struct {
	questions []domain.Question
}

func (s *stubQuestionStore) RandomQuestions(_ context.Context, limit int) ([]domain.Question, error) {
	if limit > len(s.questions) {
		limit = len(s.questions)
	}
	return s.questions[:limit], nil
}

func (s *stubQuestionStore) QuestionByID(_ context.Context, id uuid.UUID) (domain.Question, error) {
	for _, q := range s.questions {
		if q.ID == id {
			return q, nil
		}
	}
	return domain.Question{}, domain.ErrQuestionNotFound
}

type stubLedger struct {
	attempts []domain.Attempt
}

func (s *stubLedger) Insert(_ context.Context, userID uuid.UUID, score, total int) (domain.Attempt, error) {
	attempt := domain.Attempt{
		ID:             uuid.New(),
		UserID:         userID,
		Score:          score,
		TotalQuestions: total,
		CompletedAt:    time.Now(),
	}
	s.attempts = append(s.attempts, attempt)
	return attempt, nil
}

func makeQuestions(n int) []domain.Question {
	questions := make([]domain.Question, 0, n)
	for i := 0; i < n; i++ {
		q := domain.Question{ID: uuid.New(), Text: "question"}
		q.Options = []domain.Option{
			{ID: uuid.New(), QuestionID: q.ID, Text: "wrong a"},
			{ID: uuid.New(), QuestionID: q.ID, Text: "right", IsCorrect: true},
			{ID: uuid.New(), QuestionID: q.ID, Text: "wrong b"},
		}
		questions = append(questions, q)
	}
	return questions
}

func newTestService(questions []domain.Question) (*Service, *stubLedger) {
	ledger := &stubLedger{}
	svc := NewService(&stubQuestionStore{questions: questions}, ledger, zerolog.Nop())
	return svc, ledger
}

func TestBuildSessionDrawsRequestedSize(t *testing.T) {
	svc, _ := newTestService(makeQuestions(12))

	session, err := svc.BuildSession(context.Background(), 10)

	require.NoError(t, err)
	assert.Len(t, session, 10)

	seen := make(map[uuid.UUID]bool)
	for _, q := range session {
		assert.False(t, seen[q.ID], "question %s drawn twice", q.ID)
		seen[q.ID] = true
		assert.Len(t, q.Options, 3)
	}
}

func TestBuildSessionReturnsWholeBankWhenSmall(t *testing.T) {
	svc, _ := newTestService(makeQuestions(5))

	session, err := svc.BuildSession(context.Background(), 10)

	require.NoError(t, err)
	assert.Len(t, session, 5)
}

func TestBuildSessionEmptyBank(t *testing.T) {
	svc, _ := newTestService(nil)

	_, err := svc.BuildSession(context.Background(), 10)

	assert.ErrorIs(t, err, domain.ErrNoQuestionsAvailable)
}

func TestBuildSessionKeepsOptionSet(t *testing.T) {
	questions := makeQuestions(1)
	svc, _ := newTestService(questions)

	session, err := svc.BuildSession(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, session, 1)

	want := make(map[uuid.UUID]string)
	for _, o := range questions[0].Options {
		want[o.ID] = o.Text
	}
	got := make(map[uuid.UUID]string)
	for _, o := range session[0].Options {
		got[o.ID] = o.Text
	}
	assert.Equal(t, want, got)
}

func TestGradeAllCorrect(t *testing.T) {
	questions := makeQuestions(4)
	svc, ledger := newTestService(questions)
	userID := uuid.New()

	answers := make([]domain.Answer, 0, len(questions))
	for _, q := range questions {
		answers = append(answers, domain.Answer{QuestionID: q.ID, OptionID: q.CorrectOption().ID})
	}

	summary, err := svc.Grade(context.Background(), userID, answers)

	require.NoError(t, err)
	assert.Equal(t, 4, summary.Score)
	assert.Equal(t, 4, summary.TotalQuestions)
	assert.Equal(t, 100, summary.Percentage)
	require.Len(t, ledger.attempts, 1)
	assert.Equal(t, userID, ledger.attempts[0].UserID)
	assert.Equal(t, 4, ledger.attempts[0].Score)
	assert.Equal(t, summary.AttemptID, ledger.attempts[0].ID)

	for _, result := range summary.Results {
		assert.True(t, result.IsCorrect)
		assert.Equal(t, "right", result.SelectedOption)
		assert.Equal(t, "right", result.CorrectOption)
	}
}

func TestGradeEmptyAnswerSet(t *testing.T) {
	svc, ledger := newTestService(makeQuestions(3))

	_, err := svc.Grade(context.Background(), uuid.New(), nil)

	assert.ErrorIs(t, err, domain.ErrEmptyAnswerSet)
	assert.Empty(t, ledger.attempts, "rejected submission must not be recorded")
}

func TestGradeMalformedAnswersScoredIncorrect(t *testing.T) {
	questions := makeQuestions(2)
	svc, ledger := newTestService(questions)

	answers := []domain.Answer{
		// Unknown question id.
		{QuestionID: uuid.New(), OptionID: uuid.New()},
		// Known question, option id that does not belong to it.
		{QuestionID: questions[0].ID, OptionID: uuid.New()},
		// Valid, correct.
		{QuestionID: questions[1].ID, OptionID: questions[1].CorrectOption().ID},
	}

	summary, err := svc.Grade(context.Background(), uuid.New(), answers)

	require.NoError(t, err, "malformed answers must degrade, not abort")
	assert.Equal(t, 1, summary.Score)
	assert.Equal(t, 3, summary.TotalQuestions)
	assert.False(t, summary.Results[0].IsCorrect)
	assert.Empty(t, summary.Results[0].QuestionText)
	assert.False(t, summary.Results[1].IsCorrect)
	assert.Equal(t, "question", summary.Results[1].QuestionText)
	assert.True(t, summary.Results[2].IsCorrect)
	require.Len(t, ledger.attempts, 1)
}

func TestGradeWrongOptionScoredIncorrect(t *testing.T) {
	questions := makeQuestions(1)
	svc, _ := newTestService(questions)

	wrong := questions[0].Options[0]
	require.False(t, wrong.IsCorrect)

	summary, err := svc.Grade(context.Background(), uuid.New(), []domain.Answer{
		{QuestionID: questions[0].ID, OptionID: wrong.ID},
	})

	require.NoError(t, err)
	assert.Equal(t, 0, summary.Score)
	assert.Equal(t, 0, summary.Percentage)
	assert.Equal(t, "wrong a", summary.Results[0].SelectedOption)
	assert.Equal(t, "right", summary.Results[0].CorrectOption)
}

func TestPercentageRoundsHalfUp(t *testing.T) {
	cases := []struct {
		score, total, want int
	}{
		{0, 4, 0},
		{1, 2, 50},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},
		{5, 10, 50},
		{3, 3, 100},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Percentage(tc.score, tc.total), "%d/%d", tc.score, tc.total)
	}
}
