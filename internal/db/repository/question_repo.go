package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"quizdeck/internal/domain"
)

// QuestionRepository provides question-bank access for the assembler, the
// grading engine and admin CRUD.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository wraps a pgx pool for question operations.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// RandomQuestions returns up to limit questions chosen uniformly at random
// without replacement. Fewer than limit rows means the whole bank was
// returned; an empty bank yields an empty slice, not an error.
func (r *QuestionRepository) RandomQuestions(ctx context.Context, limit int) ([]domain.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, question_text, image_url, song_url, created_at
		 FROM questions ORDER BY random() LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("select random questions: %w", err)
	}
	questions, err := collectQuestions(rows)
	if err != nil {
		return nil, err
	}
	return r.attachOptions(ctx, questions)
}

// QuestionByID fetches a single question with its full option set.
func (r *QuestionRepository) QuestionByID(ctx context.Context, id uuid.UUID) (domain.Question, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, question_text, image_url, song_url, created_at
		 FROM questions WHERE id = $1`,
		pgUUID(id))

	q, err := scanQuestion(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Question{}, domain.ErrQuestionNotFound
		}
		return domain.Question{}, fmt.Errorf("get question: %w", err)
	}

	opts, err := r.optionsFor(ctx, r.pool, q.ID)
	if err != nil {
		return domain.Question{}, err
	}
	q.Options = opts
	return q, nil
}

// List returns the whole question bank, newest first, options included.
func (r *QuestionRepository) List(ctx context.Context) ([]domain.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, question_text, image_url, song_url, created_at
		 FROM questions ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	questions, err := collectQuestions(rows)
	if err != nil {
		return nil, err
	}
	return r.attachOptions(ctx, questions)
}

// Insert persists a new question and its options in one transaction.
func (r *QuestionRepository) Insert(ctx context.Context, q domain.Question) (domain.Question, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.Question{}, fmt.Errorf("begin insert question: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx,
		`INSERT INTO questions (question_text, image_url, song_url)
		 VALUES ($1, $2, $3)
		 RETURNING id, question_text, image_url, song_url, created_at`,
		q.Text, pgText(q.ImageURL), pgText(q.SongURL))

	created, err := scanQuestion(row)
	if err != nil {
		return domain.Question{}, fmt.Errorf("insert question: %w", err)
	}

	created.Options, err = insertOptions(ctx, tx, created.ID, q.Options)
	if err != nil {
		return domain.Question{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Question{}, fmt.Errorf("commit insert question: %w", err)
	}
	return created, nil
}

// Update rewrites the question row and, when replaceOptions is set, swaps the
// whole option set inside the same transaction. A reader can never observe a
// question with zero options or a half-replaced correctness state.
func (r *QuestionRepository) Update(ctx context.Context, q domain.Question, replaceOptions bool) (domain.Question, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.Question{}, fmt.Errorf("begin update question: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx,
		`UPDATE questions SET question_text = $2, image_url = $3, song_url = $4
		 WHERE id = $1
		 RETURNING id, question_text, image_url, song_url, created_at`,
		pgUUID(q.ID), q.Text, pgText(q.ImageURL), pgText(q.SongURL))

	updated, err := scanQuestion(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Question{}, domain.ErrQuestionNotFound
		}
		return domain.Question{}, fmt.Errorf("update question: %w", err)
	}

	if replaceOptions {
		if _, err := tx.Exec(ctx, `DELETE FROM options WHERE question_id = $1`, pgUUID(q.ID)); err != nil {
			return domain.Question{}, fmt.Errorf("delete options: %w", err)
		}
		updated.Options, err = insertOptions(ctx, tx, q.ID, q.Options)
		if err != nil {
			return domain.Question{}, err
		}
	} else {
		updated.Options, err = r.optionsFor(ctx, tx, q.ID)
		if err != nil {
			return domain.Question{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Question{}, fmt.Errorf("commit update question: %w", err)
	}
	return updated, nil
}

// Delete removes a question; options go with it via ON DELETE CASCADE.
func (r *QuestionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, pgUUID(id))
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrQuestionNotFound
	}
	return nil
}

type queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *QuestionRepository) optionsFor(ctx context.Context, q queryer, questionID uuid.UUID) ([]domain.Option, error) {
	rows, err := q.Query(ctx,
		`SELECT id, question_id, option_text, is_correct
		 FROM options WHERE question_id = $1 ORDER BY id`,
		pgUUID(questionID))
	if err != nil {
		return nil, fmt.Errorf("select options: %w", err)
	}
	return collectOptions(rows)
}

func (r *QuestionRepository) attachOptions(ctx context.Context, questions []domain.Question) ([]domain.Question, error) {
	for i := range questions {
		opts, err := r.optionsFor(ctx, r.pool, questions[i].ID)
		if err != nil {
			return nil, err
		}
		questions[i].Options = opts
	}
	return questions, nil
}

func insertOptions(ctx context.Context, tx pgx.Tx, questionID uuid.UUID, options []domain.Option) ([]domain.Option, error) {
	inserted := make([]domain.Option, 0, len(options))
	for _, opt := range options {
		row := tx.QueryRow(ctx,
			`INSERT INTO options (question_id, option_text, is_correct)
			 VALUES ($1, $2, $3)
			 RETURNING id, question_id, option_text, is_correct`,
			pgUUID(questionID), opt.Text, opt.IsCorrect)

		var (
			id  pgtype.UUID
			qid pgtype.UUID
			out domain.Option
		)
		if err := row.Scan(&id, &qid, &out.Text, &out.IsCorrect); err != nil {
			return nil, fmt.Errorf("insert option: %w", err)
		}
		out.ID = fromPG(id)
		out.QuestionID = fromPG(qid)
		inserted = append(inserted, out)
	}
	return inserted, nil
}

func scanQuestion(row pgx.Row) (domain.Question, error) {
	var (
		id       pgtype.UUID
		imageURL pgtype.Text
		songURL  pgtype.Text
		q        domain.Question
	)
	if err := row.Scan(&id, &q.Text, &imageURL, &songURL, &q.CreatedAt); err != nil {
		return domain.Question{}, err
	}
	q.ID = fromPG(id)
	q.ImageURL = fromPGText(imageURL)
	q.SongURL = fromPGText(songURL)
	return q, nil
}

func collectQuestions(rows pgx.Rows) ([]domain.Question, error) {
	defer rows.Close()
	var questions []domain.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func collectOptions(rows pgx.Rows) ([]domain.Option, error) {
	defer rows.Close()
	var options []domain.Option
	for rows.Next() {
		var (
			id  pgtype.UUID
			qid pgtype.UUID
			opt domain.Option
		)
		if err := rows.Scan(&id, &qid, &opt.Text, &opt.IsCorrect); err != nil {
			return nil, fmt.Errorf("scan option: %w", err)
		}
		opt.ID = fromPG(id)
		opt.QuestionID = fromPG(qid)
		options = append(options, opt)
	}
	return options, rows.Err()
}
