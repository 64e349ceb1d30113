// Package seed installs the default admin account and a starter question
// bank into an empty database. It is idempotent: existing data is left alone.
package seed

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminUsername = "admin"
	adminPassword = "admin123"
)

type seedOption struct {
	text    string
	correct bool
}

type seedQuestion struct {
	text    string
	options []seedOption
}

var sampleQuestions = []seedQuestion{
	{"What is the capital of France?", []seedOption{
		{"London", false}, {"Berlin", false}, {"Paris", true}, {"Madrid", false},
	}},
	{"Which planet is known as the Red Planet?", []seedOption{
		{"Venus", false}, {"Mars", true}, {"Jupiter", false}, {"Saturn", false},
	}},
	{"What is the largest mammal in the world?", []seedOption{
		{"African Elephant", false}, {"Blue Whale", true}, {"Giraffe", false}, {"Polar Bear", false},
	}},
	{"In which year did World War II end?", []seedOption{
		{"1943", false}, {"1944", false}, {"1945", true}, {"1946", false},
	}},
	{"What is the chemical symbol for gold?", []seedOption{
		{"Go", false}, {"Gd", false}, {"Au", true}, {"Ag", false},
	}},
	{"Which programming language was created by Brendan Eich?", []seedOption{
		{"Python", false}, {"JavaScript", true}, {"Java", false}, {"C++", false},
	}},
	{"What is the smallest prime number?", []seedOption{
		{"0", false}, {"1", false}, {"2", true}, {"3", false},
	}},
	{"Which ocean is the largest?", []seedOption{
		{"Atlantic Ocean", false}, {"Indian Ocean", false}, {"Arctic Ocean", false}, {"Pacific Ocean", true},
	}},
	{"Who painted the Mona Lisa?", []seedOption{
		{"Vincent van Gogh", false}, {"Pablo Picasso", false}, {"Leonardo da Vinci", true}, {"Michelangelo", false},
	}},
	{"What is the speed of light in vacuum (approximately)?", []seedOption{
		{"300,000 km/s", true}, {"150,000 km/s", false}, {"500,000 km/s", false}, {"1,000,000 km/s", false},
	}},
	{"Which element has the atomic number 1?", []seedOption{
		{"Helium", false}, {"Hydrogen", true}, {"Lithium", false}, {"Carbon", false},
	}},
	{"What is the largest organ in the human body?", []seedOption{
		{"Heart", false}, {"Liver", false}, {"Brain", false}, {"Skin", true},
	}},
}

// Run seeds the admin user and sample questions when missing.
func Run(ctx context.Context, db *sql.DB, logger zerolog.Logger) error {
	if err := seedAdmin(ctx, db, logger); err != nil {
		return err
	}
	return seedQuestions(ctx, db, logger)
}

func seedAdmin(ctx context.Context, db *sql.DB, logger zerolog.Logger) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT count(*) FROM users WHERE username = $1`, adminUsername).Scan(&count); err != nil {
		return fmt.Errorf("check admin user: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	if _, err := db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, is_admin) VALUES ($1, $2, TRUE)`,
		adminUsername, string(hash)); err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}

	logger.Info().Str("username", adminUsername).Msg("admin user created")
	return nil
}

func seedQuestions(ctx context.Context, db *sql.DB, logger zerolog.Logger) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT count(*) FROM questions`).Scan(&count); err != nil {
		return fmt.Errorf("count questions: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer tx.Rollback()

	for _, q := range sampleQuestions {
		var questionID string
		if err := tx.QueryRowContext(ctx,
			`INSERT INTO questions (question_text) VALUES ($1) RETURNING id::text`,
			q.text).Scan(&questionID); err != nil {
			return fmt.Errorf("insert seed question: %w", err)
		}
		for _, opt := range q.options {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO options (question_id, option_text, is_correct) VALUES ($1::uuid, $2, $3)`,
				questionID, opt.text, opt.correct); err != nil {
				return fmt.Errorf("insert seed option: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	logger.Info().Int("questions", len(sampleQuestions)).Msg("sample questions seeded")
	return nil
}
