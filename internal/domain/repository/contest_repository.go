package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"contesthub/internal/common"
	"contesthub/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

// ContestRepository covers contest definitions and the questions/problems
// they own. Question and problem lookups are contest-scoped: a valid ID
// referenced through the wrong contest is reported as not found.
type ContestRepository interface {
	CreateContest(ctx context.Context, c *model.Contest) error
	FindContestByID(ctx context.Context, id string) (*model.Contest, error)

	AddMCQQuestion(ctx context.Context, q *model.MCQQuestion) error
	GetMCQQuestion(ctx context.Context, contestID, questionID string) (*model.MCQQuestion, error)
	ListMCQQuestions(ctx context.Context, contestID string) ([]model.MCQQuestion, error)

	AddDSAProblem(ctx context.Context, tx *sql.Tx, p *model.DSAProblem) error
	AddTestCases(ctx context.Context, tx *sql.Tx, problemID string, testCases []model.TestCase) error
	GetDSAProblem(ctx context.Context, contestID, problemID string) (*model.DSAProblem, error)
	ListDSAProblems(ctx context.Context, contestID string) ([]model.DSAProblem, error)
	GetTestCases(ctx context.Context, problemID string) ([]model.TestCase, error)
}

type pgContestRepository struct {
	db *sql.DB
}

func NewPgContestRepository(db *sql.DB) ContestRepository {
	return &pgContestRepository{db: db}
}

func (r *pgContestRepository) CreateContest(ctx context.Context, c *model.Contest) error {
	query := `INSERT INTO contests (id, slug, creator_id, title, description, start_time, end_time)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.Slug, c.CreatorID, c.Title, c.Description, c.StartTime, c.EndTime)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("contest with this slug already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgContestRepository.CreateContest: %w", err)
	}
	return nil
}

func (r *pgContestRepository) FindContestByID(ctx context.Context, id string) (*model.Contest, error) {
	query := `SELECT id, slug, creator_id, title, description, start_time, end_time, created_at
	          FROM contests WHERE id = $1`
	c := &model.Contest{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Slug, &c.CreatorID, &c.Title, &c.Description, &c.StartTime, &c.EndTime, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrContestNotFound
		}
		return nil, fmt.Errorf("pgContestRepository.FindContestByID: %w", err)
	}
	return c, nil
}

func (r *pgContestRepository) AddMCQQuestion(ctx context.Context, q *model.MCQQuestion) error {
	optionsJSON, err := json.Marshal(q.Options)
	if err != nil {
		return fmt.Errorf("pgContestRepository.AddMCQQuestion marshal options: %w", err)
	}
	query := `INSERT INTO mcq_questions (id, contest_id, question_text, options, correct_index, points)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = r.db.ExecContext(ctx, query, q.ID, q.ContestID, q.QuestionText, optionsJSON, q.CorrectIndex, q.Points)
	if err != nil {
		return fmt.Errorf("pgContestRepository.AddMCQQuestion: %w", err)
	}
	return nil
}

func (r *pgContestRepository) GetMCQQuestion(ctx context.Context, contestID, questionID string) (*model.MCQQuestion, error) {
	query := `SELECT id, contest_id, question_text, options, correct_index, points, created_at
	          FROM mcq_questions WHERE id = $1 AND contest_id = $2`
	q := &model.MCQQuestion{}
	var optionsJSON []byte
	err := r.db.QueryRowContext(ctx, query, questionID, contestID).Scan(
		&q.ID, &q.ContestID, &q.QuestionText, &optionsJSON, &q.CorrectIndex, &q.Points, &q.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("pgContestRepository.GetMCQQuestion: %w", err)
	}
	if err := json.Unmarshal(optionsJSON, &q.Options); err != nil {
		return nil, fmt.Errorf("pgContestRepository.GetMCQQuestion unmarshal options: %w", err)
	}
	return q, nil
}

func (r *pgContestRepository) ListMCQQuestions(ctx context.Context, contestID string) ([]model.MCQQuestion, error) {
	query := `SELECT id, contest_id, question_text, options, correct_index, points, created_at
	          FROM mcq_questions WHERE contest_id = $1 ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, contestID)
	if err != nil {
		return nil, fmt.Errorf("pgContestRepository.ListMCQQuestions query: %w", err)
	}
	defer rows.Close()

	var questions []model.MCQQuestion
	for rows.Next() {
		var q model.MCQQuestion
		var optionsJSON []byte
		if err := rows.Scan(&q.ID, &q.ContestID, &q.QuestionText, &optionsJSON, &q.CorrectIndex, &q.Points, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgContestRepository.ListMCQQuestions scan: %w", err)
		}
		if err := json.Unmarshal(optionsJSON, &q.Options); err != nil {
			return nil, fmt.Errorf("pgContestRepository.ListMCQQuestions unmarshal options: %w", err)
		}
		questions = append(questions, q)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgContestRepository.ListMCQQuestions rows.Err: %w", err)
	}
	return questions, nil
}

func (r *pgContestRepository) AddDSAProblem(ctx context.Context, tx *sql.Tx, p *model.DSAProblem) error {
	query := `INSERT INTO dsa_problems (id, contest_id, slug, title, description, points, time_limit_seconds, memory_limit_bytes)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, p.ID, p.ContestID, p.Slug, p.Title, p.Description, p.Points, p.TimeLimitSeconds, p.MemoryLimitBytes)
	} else {
		_, err = r.db.ExecContext(ctx, query, p.ID, p.ContestID, p.Slug, p.Title, p.Description, p.Points, p.TimeLimitSeconds, p.MemoryLimitBytes)
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("problem with this slug already exists in the contest: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgContestRepository.AddDSAProblem: %w", err)
	}
	return nil
}

func (r *pgContestRepository) AddTestCases(ctx context.Context, tx *sql.Tx, problemID string, testCases []model.TestCase) error {
	if len(testCases) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO test_cases (id, problem_id, input, expected_output, is_hidden, sort_order)
	          VALUES ($1, $2, $3, $4, $5, $6)`)
	if err != nil {
		return fmt.Errorf("pgContestRepository.AddTestCases prepare: %w", err)
	}
	defer stmt.Close()

	for i, tc := range testCases {
		tc.SortOrder = i + 1
		if _, err := stmt.ExecContext(ctx, tc.ID, problemID, tc.Input, tc.ExpectedOutput, tc.IsHidden, tc.SortOrder); err != nil {
			return fmt.Errorf("pgContestRepository.AddTestCases exec for case %s: %w", tc.ID, err)
		}
	}
	return nil
}

func (r *pgContestRepository) GetDSAProblem(ctx context.Context, contestID, problemID string) (*model.DSAProblem, error) {
	query := `SELECT id, contest_id, slug, title, description, points, time_limit_seconds, memory_limit_bytes, created_at
	          FROM dsa_problems WHERE id = $1 AND contest_id = $2`
	p := &model.DSAProblem{}
	err := r.db.QueryRowContext(ctx, query, problemID, contestID).Scan(
		&p.ID, &p.ContestID, &p.Slug, &p.Title, &p.Description, &p.Points, &p.TimeLimitSeconds, &p.MemoryLimitBytes, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrProblemNotFound
		}
		return nil, fmt.Errorf("pgContestRepository.GetDSAProblem: %w", err)
	}
	return p, nil
}

func (r *pgContestRepository) ListDSAProblems(ctx context.Context, contestID string) ([]model.DSAProblem, error) {
	query := `SELECT id, contest_id, slug, title, description, points, time_limit_seconds, memory_limit_bytes, created_at
	          FROM dsa_problems WHERE contest_id = $1 ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, contestID)
	if err != nil {
		return nil, fmt.Errorf("pgContestRepository.ListDSAProblems query: %w", err)
	}
	defer rows.Close()

	var problems []model.DSAProblem
	for rows.Next() {
		var p model.DSAProblem
		if err := rows.Scan(&p.ID, &p.ContestID, &p.Slug, &p.Title, &p.Description, &p.Points, &p.TimeLimitSeconds, &p.MemoryLimitBytes, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgContestRepository.ListDSAProblems scan: %w", err)
		}
		problems = append(problems, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgContestRepository.ListDSAProblems rows.Err: %w", err)
	}
	return problems, nil
}

func (r *pgContestRepository) GetTestCases(ctx context.Context, problemID string) ([]model.TestCase, error) {
	query := `SELECT id, problem_id, input, expected_output, is_hidden, sort_order
	          FROM test_cases WHERE problem_id = $1 ORDER BY sort_order ASC`
	rows, err := r.db.QueryContext(ctx, query, problemID)
	if err != nil {
		return nil, fmt.Errorf("pgContestRepository.GetTestCases query: %w", err)
	}
	defer rows.Close()

	var testCases []model.TestCase
	for rows.Next() {
		var tc model.TestCase
		if err := rows.Scan(&tc.ID, &tc.ProblemID, &tc.Input, &tc.ExpectedOutput, &tc.IsHidden, &tc.SortOrder); err != nil {
			return nil, fmt.Errorf("pgContestRepository.GetTestCases scan: %w", err)
		}
		testCases = append(testCases, tc)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgContestRepository.GetTestCases rows.Err: %w", err)
	}
	return testCases, nil
}
