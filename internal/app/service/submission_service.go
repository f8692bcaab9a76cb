package service

import (
	"context"
	"errors"
	"time"

	"contesthub/internal/app/judge"
	"contesthub/internal/common"
	"contesthub/internal/domain/model"
	"contesthub/internal/domain/repository"
	"contesthub/internal/platform/cache"
	"contesthub/internal/platform/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SubmissionService is the submission and scoring engine: it admits an
// attempt against the contest window, evaluates it, and records it under
// its unique (user, question|problem) key.
type SubmissionService struct {
	contestRepo    repository.ContestRepository
	submissionRepo repository.SubmissionRepository
	judge          judge.Client
	locks          *cache.KeyLock
	now            func() time.Time
}

func NewSubmissionService(
	contestRepo repository.ContestRepository,
	submissionRepo repository.SubmissionRepository,
	judgeClient judge.Client,
	locks *cache.KeyLock,
	now func() time.Time,
) *SubmissionService {
	if now == nil {
		now = time.Now
	}
	return &SubmissionService{
		contestRepo:    contestRepo,
		submissionRepo: submissionRepo,
		judge:          judgeClient,
		locks:          locks,
		now:            now,
	}
}

// admit is the contest window guard. It is re-evaluated on every attempt;
// window state moves with the wall clock so nothing here may be cached.
func (s *SubmissionService) admit(ctx context.Context, contestID, userID string) (*model.Contest, error) {
	contest, err := s.contestRepo.FindContestByID(ctx, contestID)
	if err != nil {
		return nil, err
	}
	if !contest.IsActive(s.now()) {
		return nil, common.ErrContestNotActive
	}
	if !contest.CanCompete(userID) {
		return nil, common.ErrCreatorForbidden
	}
	return contest, nil
}

type SubmitMCQRequest struct {
	SelectedIndex int `json:"selected_index"`
}

func (s *SubmissionService) SubmitMCQ(ctx context.Context, userID, contestID, questionID string, req SubmitMCQRequest) (*model.MCQSubmission, error) {
	if _, err := s.admit(ctx, contestID, userID); err != nil {
		return nil, err
	}

	question, err := s.contestRepo.GetMCQQuestion(ctx, contestID, questionID)
	if err != nil {
		return nil, err
	}
	if req.SelectedIndex < 0 || req.SelectedIndex >= len(question.Options) {
		return nil, common.ErrInvalidRequest
	}

	// First submission is final: reject before grading.
	if _, err := s.submissionRepo.GetMCQSubmission(ctx, userID, questionID); err == nil {
		return nil, common.ErrAlreadySubmitted
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	isCorrect := req.SelectedIndex == question.CorrectIndex
	points := 0
	if isCorrect {
		points = question.Points
	}

	submission := &model.MCQSubmission{
		ID:            uuid.NewString(),
		UserID:        userID,
		QuestionID:    question.ID,
		SelectedIndex: req.SelectedIndex,
		IsCorrect:     isCorrect,
		PointsEarned:  points,
		SubmittedAt:   s.now(),
	}
	// The unique key is the authority; a concurrent duplicate comes back as
	// ErrAlreadySubmitted from the insert itself.
	if err := s.submissionRepo.InsertMCQSubmission(ctx, submission); err != nil {
		return nil, err
	}
	return submission, nil
}

type SubmitDSARequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

func (s *SubmissionService) SubmitDSA(ctx context.Context, userID, contestID, problemID string, req SubmitDSARequest) (*model.DSASubmission, error) {
	if req.Code == "" || req.Language == "" {
		return nil, common.ErrInvalidRequest
	}
	if _, err := s.admit(ctx, contestID, userID); err != nil {
		return nil, err
	}

	problem, err := s.contestRepo.GetDSAProblem(ctx, contestID, problemID)
	if err != nil {
		return nil, err
	}
	testCases, err := s.contestRepo.GetTestCases(ctx, problem.ID)
	if err != nil {
		return nil, err
	}

	status, points, passed := s.evaluateDSA(ctx, problem, testCases, req.Code, req.Language)

	submission := &model.DSASubmission{
		ID:              uuid.NewString(),
		UserID:          userID,
		ProblemID:       problem.ID,
		Code:            req.Code,
		Language:        req.Language,
		Status:          status,
		PointsEarned:    points,
		TestCasesPassed: passed,
		TotalTestCases:  len(testCases),
		SubmittedAt:     s.now(),
	}

	stored, err := s.upsertBestOf(ctx, submission)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("dsa submission recorded",
		zap.String("problem_id", problem.ID),
		zap.String("status", string(stored.Status)),
		zap.Int("points_earned", stored.PointsEarned),
	)
	return stored, nil
}

// evaluateDSA fans out one verdict request per test case and aggregates the
// verdict set. A verdict call that errors degrades to runtime_error instead
// of failing the submission.
func (s *SubmissionService) evaluateDSA(ctx context.Context, problem *model.DSAProblem, testCases []model.TestCase, code, language string) (model.SubmissionStatus, int, int) {
	total := len(testCases)
	if total == 0 {
		// A problem with no test cases trivially passes with zero score.
		return model.StatusAccepted, 0, 0
	}

	verdicts := make([]judge.Verdict, total)
	g, gctx := errgroup.WithContext(ctx)
	for i, tc := range testCases {
		g.Go(func() error {
			v, err := s.judge.Judge(gctx, judge.Request{
				SourceCode:       code,
				Language:         language,
				Stdin:            tc.Input,
				ExpectedOutput:   tc.ExpectedOutput,
				TimeLimitSeconds: problem.TimeLimitSeconds,
				MemoryLimitBytes: problem.MemoryLimitBytes,
			})
			if err != nil {
				logger.Log.Warn("verdict source degraded",
					zap.String("problem_id", problem.ID),
					zap.Error(err),
				)
				v = judge.VerdictRuntimeError
			}
			verdicts[i] = v
			return nil
		})
	}
	_ = g.Wait() // grading errors degrade to verdicts, never abort

	passed := 0
	var hasRuntime, hasTLE, hasWrong bool
	for _, v := range verdicts {
		switch v {
		case judge.VerdictPassed:
			passed++
		case judge.VerdictTimeLimitExceeded:
			hasTLE = true
		case judge.VerdictWrongAnswer:
			hasWrong = true
		default: // runtime_error, internal_error, transport failures
			hasRuntime = true
		}
	}

	// Priority is by verdict kind, not test-case order.
	status := model.StatusAccepted
	switch {
	case hasRuntime:
		status = model.StatusRuntimeError
	case hasTLE:
		status = model.StatusTimeLimitExceeded
	case hasWrong:
		status = model.StatusWrongAnswer
	}

	points := passed * problem.Points / total
	return status, points, passed
}

// upsertBestOf stores the submission under its unique key, keeping the
// better of the stored and new record. The decision is serialized per key;
// if the lock ever lapses, the unique constraint still wins and the insert
// is retried as an update.
func (s *SubmissionService) upsertBestOf(ctx context.Context, sub *model.DSASubmission) (*model.DSASubmission, error) {
	key := "dsa:" + sub.UserID + ":" + sub.ProblemID
	release, err := s.locks.Acquire(ctx, key)
	if err != nil {
		return nil, common.Errorf("failed to acquire submission lock: %w", err)
	}
	defer release()

	existing, err := s.submissionRepo.GetDSASubmission(ctx, sub.UserID, sub.ProblemID)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		err = s.submissionRepo.InsertDSASubmission(ctx, sub)
		if err == nil {
			return sub, nil
		}
		if !errors.Is(err, repository.ErrDuplicateKey) {
			return nil, err
		}
		// Lost a race to a concurrent first submission; merge against it.
		existing, err = s.submissionRepo.GetDSASubmission(ctx, sub.UserID, sub.ProblemID)
		if err != nil {
			return nil, err
		}
	}

	if !sub.Improves(existing) {
		return existing, nil
	}
	sub.ID = existing.ID
	if err := s.submissionRepo.UpdateDSASubmission(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}
