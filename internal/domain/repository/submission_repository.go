package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"contesthub/internal/common"
	"contesthub/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

// ScoreRow is what the leaderboard aggregation reads: one stored submission
// joined with the submitting user's display name.
type ScoreRow struct {
	UserID       string
	UserName     string
	PointsEarned int
}

type SubmissionRepository interface {
	// MCQ submissions are create-only; inserting a duplicate
	// (user, question) key yields ErrAlreadySubmitted.
	InsertMCQSubmission(ctx context.Context, sub *model.MCQSubmission) error
	GetMCQSubmission(ctx context.Context, userID, questionID string) (*model.MCQSubmission, error)

	InsertDSASubmission(ctx context.Context, sub *model.DSASubmission) error
	UpdateDSASubmission(ctx context.Context, sub *model.DSASubmission) error
	GetDSASubmission(ctx context.Context, userID, problemID string) (*model.DSASubmission, error)

	ListMCQScores(ctx context.Context, contestID string) ([]ScoreRow, error)
	ListDSAScores(ctx context.Context, contestID string) ([]ScoreRow, error)
}

// ErrDuplicateKey signals that the unique (user, question|problem) key
// already holds a record. The ledger treats it as "record exists" and
// retries as an update for DSA.
var ErrDuplicateKey = errors.New("submission key already exists")

type pgSubmissionRepository struct {
	db *sql.DB
}

func NewPgSubmissionRepository(db *sql.DB) SubmissionRepository {
	return &pgSubmissionRepository{db: db}
}

func (r *pgSubmissionRepository) InsertMCQSubmission(ctx context.Context, sub *model.MCQSubmission) error {
	query := `INSERT INTO mcq_submissions (id, user_id, question_id, selected_index, is_correct, points_earned, submitted_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, sub.ID, sub.UserID, sub.QuestionID, sub.SelectedIndex, sub.IsCorrect, sub.PointsEarned, sub.SubmittedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return common.ErrAlreadySubmitted
		}
		return fmt.Errorf("pgSubmissionRepository.InsertMCQSubmission: %w", err)
	}
	return nil
}

func (r *pgSubmissionRepository) GetMCQSubmission(ctx context.Context, userID, questionID string) (*model.MCQSubmission, error) {
	query := `SELECT id, user_id, question_id, selected_index, is_correct, points_earned, submitted_at
	          FROM mcq_submissions WHERE user_id = $1 AND question_id = $2`
	sub := &model.MCQSubmission{}
	err := r.db.QueryRowContext(ctx, query, userID, questionID).Scan(
		&sub.ID, &sub.UserID, &sub.QuestionID, &sub.SelectedIndex, &sub.IsCorrect, &sub.PointsEarned, &sub.SubmittedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgSubmissionRepository.GetMCQSubmission: %w", err)
	}
	return sub, nil
}

func (r *pgSubmissionRepository) InsertDSASubmission(ctx context.Context, sub *model.DSASubmission) error {
	query := `INSERT INTO dsa_submissions (id, user_id, problem_id, code, language, status, points_earned, test_cases_passed, total_test_cases, submitted_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.ExecContext(ctx, query, sub.ID, sub.UserID, sub.ProblemID, sub.Code, sub.Language, sub.Status, sub.PointsEarned, sub.TestCasesPassed, sub.TotalTestCases, sub.SubmittedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateKey
		}
		return fmt.Errorf("pgSubmissionRepository.InsertDSASubmission: %w", err)
	}
	return nil
}

func (r *pgSubmissionRepository) UpdateDSASubmission(ctx context.Context, sub *model.DSASubmission) error {
	query := `UPDATE dsa_submissions SET
	            code = $1, language = $2, status = $3, points_earned = $4,
	            test_cases_passed = $5, total_test_cases = $6, submitted_at = $7
	          WHERE user_id = $8 AND problem_id = $9`
	_, err := r.db.ExecContext(ctx, query, sub.Code, sub.Language, sub.Status, sub.PointsEarned, sub.TestCasesPassed, sub.TotalTestCases, sub.SubmittedAt, sub.UserID, sub.ProblemID)
	if err != nil {
		return fmt.Errorf("pgSubmissionRepository.UpdateDSASubmission: %w", err)
	}
	return nil
}

func (r *pgSubmissionRepository) GetDSASubmission(ctx context.Context, userID, problemID string) (*model.DSASubmission, error) {
	query := `SELECT id, user_id, problem_id, code, language, status, points_earned, test_cases_passed, total_test_cases, submitted_at
	          FROM dsa_submissions WHERE user_id = $1 AND problem_id = $2`
	sub := &model.DSASubmission{}
	err := r.db.QueryRowContext(ctx, query, userID, problemID).Scan(
		&sub.ID, &sub.UserID, &sub.ProblemID, &sub.Code, &sub.Language, &sub.Status, &sub.PointsEarned, &sub.TestCasesPassed, &sub.TotalTestCases, &sub.SubmittedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgSubmissionRepository.GetDSASubmission: %w", err)
	}
	return sub, nil
}

func (r *pgSubmissionRepository) ListMCQScores(ctx context.Context, contestID string) ([]ScoreRow, error) {
	query := `SELECT s.user_id, u.name, s.points_earned
	          FROM mcq_submissions s
	          JOIN mcq_questions q ON s.question_id = q.id
	          JOIN users u ON s.user_id = u.id
	          WHERE q.contest_id = $1
	          ORDER BY s.submitted_at ASC`
	return r.listScores(ctx, query, contestID, "ListMCQScores")
}

func (r *pgSubmissionRepository) ListDSAScores(ctx context.Context, contestID string) ([]ScoreRow, error) {
	query := `SELECT s.user_id, u.name, s.points_earned
	          FROM dsa_submissions s
	          JOIN dsa_problems p ON s.problem_id = p.id
	          JOIN users u ON s.user_id = u.id
	          WHERE p.contest_id = $1
	          ORDER BY s.submitted_at ASC`
	return r.listScores(ctx, query, contestID, "ListDSAScores")
}

func (r *pgSubmissionRepository) listScores(ctx context.Context, query, contestID, op string) ([]ScoreRow, error) {
	rows, err := r.db.QueryContext(ctx, query, contestID)
	if err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.%s query: %w", op, err)
	}
	defer rows.Close()

	var scores []ScoreRow
	for rows.Next() {
		var row ScoreRow
		if err := rows.Scan(&row.UserID, &row.UserName, &row.PointsEarned); err != nil {
			return nil, fmt.Errorf("pgSubmissionRepository.%s scan: %w", op, err)
		}
		scores = append(scores, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.%s rows.Err: %w", op, err)
	}
	return scores, nil
}
