package service

import (
	"context"
	"database/sql"
	"time"

	"contesthub/internal/common"
	"contesthub/internal/domain/model"
	"contesthub/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type ContestService struct {
	contestRepo repository.ContestRepository
	db          *sql.DB // For transactions
}

func NewContestService(contestRepo repository.ContestRepository, db *sql.DB) *ContestService {
	return &ContestService{contestRepo: contestRepo, db: db}
}

type CreateContestRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
}

func (s *ContestService) CreateContest(ctx context.Context, userID, role string, req CreateContestRequest) (*model.Contest, error) {
	if role != model.RoleCreator {
		return nil, common.ErrRoleForbidden
	}
	if req.Title == "" || req.StartTime.IsZero() || req.EndTime.IsZero() {
		return nil, common.ErrInvalidRequest
	}
	if !req.StartTime.Before(req.EndTime) {
		return nil, common.ErrInvalidRequest
	}

	contest := &model.Contest{
		ID:          uuid.NewString(),
		Slug:        slug.Make(req.Title),
		CreatorID:   userID,
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}
	if err := s.contestRepo.CreateContest(ctx, contest); err != nil {
		return nil, err
	}
	return contest, nil
}

// ContestDetail is the full contest view. Non-creators receive it with MCQ
// answers and hidden test cases redacted.
type ContestDetail struct {
	Contest   *model.Contest      `json:"contest"`
	Questions []model.MCQQuestion `json:"mcq_questions"`
	Problems  []model.DSAProblem  `json:"dsa_problems"`
}

func (s *ContestService) GetContest(ctx context.Context, userID, contestID string) (*ContestDetail, error) {
	contest, err := s.contestRepo.FindContestByID(ctx, contestID)
	if err != nil {
		return nil, err
	}

	questions, err := s.contestRepo.ListMCQQuestions(ctx, contestID)
	if err != nil {
		return nil, err
	}
	problems, err := s.contestRepo.ListDSAProblems(ctx, contestID)
	if err != nil {
		return nil, err
	}
	for i := range problems {
		testCases, err := s.contestRepo.GetTestCases(ctx, problems[i].ID)
		if err != nil {
			return nil, err
		}
		problems[i].TestCases = testCases
	}

	if !contest.CanAuthor(userID) {
		for i := range questions {
			questions[i] = questions[i].Redacted()
		}
		for i := range problems {
			problems[i] = problems[i].Redacted()
		}
	}

	return &ContestDetail{Contest: contest, Questions: questions, Problems: problems}, nil
}

type CreateMCQRequest struct {
	QuestionText string   `json:"question_text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Points       int      `json:"points"`
}

func (s *ContestService) AddMCQQuestion(ctx context.Context, userID, contestID string, req CreateMCQRequest) (*model.MCQQuestion, error) {
	contest, err := s.contestRepo.FindContestByID(ctx, contestID)
	if err != nil {
		return nil, err
	}
	if !contest.CanAuthor(userID) {
		return nil, common.ErrNotContestOwner
	}
	if req.QuestionText == "" || len(req.Options) < 2 || req.Points <= 0 {
		return nil, common.ErrInvalidRequest
	}
	if req.CorrectIndex < 0 || req.CorrectIndex >= len(req.Options) {
		return nil, common.ErrInvalidRequest
	}

	question := &model.MCQQuestion{
		ID:           uuid.NewString(),
		ContestID:    contest.ID,
		QuestionText: req.QuestionText,
		Options:      req.Options,
		CorrectIndex: req.CorrectIndex,
		Points:       req.Points,
	}
	if err := s.contestRepo.AddMCQQuestion(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

type CreateTestCaseRequest struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expected_output"`
	IsHidden       bool   `json:"is_hidden"`
}

type CreateDSAProblemRequest struct {
	Title            string                  `json:"title"`
	Description      string                  `json:"description"`
	Points           int                     `json:"points"`
	TimeLimitSeconds int                     `json:"time_limit_seconds"`
	MemoryLimitBytes int64                   `json:"memory_limit_bytes"`
	TestCases        []CreateTestCaseRequest `json:"test_cases"`
}

func (s *ContestService) AddDSAProblem(ctx context.Context, userID, contestID string, req CreateDSAProblemRequest) (*model.DSAProblem, error) {
	contest, err := s.contestRepo.FindContestByID(ctx, contestID)
	if err != nil {
		return nil, err
	}
	if !contest.CanAuthor(userID) {
		return nil, common.ErrNotContestOwner
	}
	if req.Title == "" || req.Points <= 0 {
		return nil, common.ErrInvalidRequest
	}
	if req.TimeLimitSeconds <= 0 {
		req.TimeLimitSeconds = 5
	}
	if req.MemoryLimitBytes <= 0 {
		req.MemoryLimitBytes = 256 << 20
	}

	problem := &model.DSAProblem{
		ID:               uuid.NewString(),
		ContestID:        contest.ID,
		Slug:             slug.Make(req.Title),
		Title:            req.Title,
		Description:      req.Description,
		Points:           req.Points,
		TimeLimitSeconds: req.TimeLimitSeconds,
		MemoryLimitBytes: req.MemoryLimitBytes,
	}
	testCases := make([]model.TestCase, 0, len(req.TestCases))
	for _, tc := range req.TestCases {
		testCases = append(testCases, model.TestCase{
			ID:             uuid.NewString(),
			ProblemID:      problem.ID,
			Input:          tc.Input,
			ExpectedOutput: tc.ExpectedOutput,
			IsHidden:       tc.IsHidden,
		})
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.contestRepo.AddDSAProblem(ctx, tx, problem); err != nil {
		return nil, err
	}
	if err := s.contestRepo.AddTestCases(ctx, tx, problem.ID, testCases); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, common.Errorf("failed to commit transaction: %w", err)
	}

	problem.TestCases = testCases
	return problem, nil
}
