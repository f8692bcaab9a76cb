package service_test

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"contesthub/internal/app/judge"
	"contesthub/internal/common"
	"contesthub/internal/domain/model"
	"contesthub/internal/domain/repository"
	"contesthub/internal/platform/cache"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// fakeContestRepo is an in-memory ContestRepository for service tests.
type fakeContestRepo struct {
	contests  map[string]*model.Contest
	questions map[string]*model.MCQQuestion
	problems  map[string]*model.DSAProblem
	testCases map[string][]model.TestCase
}

func newFakeContestRepo() *fakeContestRepo {
	return &fakeContestRepo{
		contests:  make(map[string]*model.Contest),
		questions: make(map[string]*model.MCQQuestion),
		problems:  make(map[string]*model.DSAProblem),
		testCases: make(map[string][]model.TestCase),
	}
}

func (r *fakeContestRepo) CreateContest(_ context.Context, c *model.Contest) error {
	r.contests[c.ID] = c
	return nil
}

func (r *fakeContestRepo) FindContestByID(_ context.Context, id string) (*model.Contest, error) {
	c, ok := r.contests[id]
	if !ok {
		return nil, common.ErrContestNotFound
	}
	return c, nil
}

func (r *fakeContestRepo) AddMCQQuestion(_ context.Context, q *model.MCQQuestion) error {
	r.questions[q.ID] = q
	return nil
}

func (r *fakeContestRepo) GetMCQQuestion(_ context.Context, contestID, questionID string) (*model.MCQQuestion, error) {
	q, ok := r.questions[questionID]
	if !ok || q.ContestID != contestID {
		return nil, common.ErrQuestionNotFound
	}
	return q, nil
}

func (r *fakeContestRepo) ListMCQQuestions(_ context.Context, contestID string) ([]model.MCQQuestion, error) {
	var out []model.MCQQuestion
	for _, q := range r.questions {
		if q.ContestID == contestID {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (r *fakeContestRepo) AddDSAProblem(_ context.Context, _ *sql.Tx, p *model.DSAProblem) error {
	r.problems[p.ID] = p
	return nil
}

func (r *fakeContestRepo) AddTestCases(_ context.Context, _ *sql.Tx, problemID string, testCases []model.TestCase) error {
	r.testCases[problemID] = append(r.testCases[problemID], testCases...)
	return nil
}

func (r *fakeContestRepo) GetDSAProblem(_ context.Context, contestID, problemID string) (*model.DSAProblem, error) {
	p, ok := r.problems[problemID]
	if !ok || p.ContestID != contestID {
		return nil, common.ErrProblemNotFound
	}
	return p, nil
}

func (r *fakeContestRepo) ListDSAProblems(_ context.Context, contestID string) ([]model.DSAProblem, error) {
	var out []model.DSAProblem
	for _, p := range r.problems {
		if p.ContestID == contestID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeContestRepo) GetTestCases(_ context.Context, problemID string) ([]model.TestCase, error) {
	return r.testCases[problemID], nil
}

// fakeSubmissionRepo stores submissions in memory, keyed exactly like the
// unique constraints, and resolves contest scope through the contest repo.
type fakeSubmissionRepo struct {
	mu       sync.Mutex
	contests *fakeContestRepo
	names    map[string]string
	mcq      map[string]*model.MCQSubmission
	dsa      map[string]*model.DSASubmission
	mcqOrder []string
	dsaOrder []string
}

func newFakeSubmissionRepo(contests *fakeContestRepo) *fakeSubmissionRepo {
	return &fakeSubmissionRepo{
		contests: contests,
		names:    make(map[string]string),
		mcq:      make(map[string]*model.MCQSubmission),
		dsa:      make(map[string]*model.DSASubmission),
	}
}

func subKey(userID, otherID string) string { return userID + "|" + otherID }

func (r *fakeSubmissionRepo) InsertMCQSubmission(_ context.Context, sub *model.MCQSubmission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := subKey(sub.UserID, sub.QuestionID)
	if _, exists := r.mcq[key]; exists {
		return common.ErrAlreadySubmitted
	}
	cp := *sub
	r.mcq[key] = &cp
	r.mcqOrder = append(r.mcqOrder, key)
	return nil
}

func (r *fakeSubmissionRepo) GetMCQSubmission(_ context.Context, userID, questionID string) (*model.MCQSubmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub, ok := r.mcq[subKey(userID, questionID)]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *sub
	return &cp, nil
}

func (r *fakeSubmissionRepo) InsertDSASubmission(_ context.Context, sub *model.DSASubmission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := subKey(sub.UserID, sub.ProblemID)
	if _, exists := r.dsa[key]; exists {
		return repository.ErrDuplicateKey
	}
	cp := *sub
	r.dsa[key] = &cp
	r.dsaOrder = append(r.dsaOrder, key)
	return nil
}

func (r *fakeSubmissionRepo) UpdateDSASubmission(_ context.Context, sub *model.DSASubmission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *sub
	r.dsa[subKey(sub.UserID, sub.ProblemID)] = &cp
	return nil
}

func (r *fakeSubmissionRepo) GetDSASubmission(_ context.Context, userID, problemID string) (*model.DSASubmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub, ok := r.dsa[subKey(userID, problemID)]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *sub
	return &cp, nil
}

func (r *fakeSubmissionRepo) ListMCQScores(_ context.Context, contestID string) ([]repository.ScoreRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var rows []repository.ScoreRow
	for _, key := range r.mcqOrder {
		sub := r.mcq[key]
		q, ok := r.contests.questions[sub.QuestionID]
		if !ok || q.ContestID != contestID {
			continue
		}
		rows = append(rows, repository.ScoreRow{UserID: sub.UserID, UserName: r.names[sub.UserID], PointsEarned: sub.PointsEarned})
	}
	return rows, nil
}

func (r *fakeSubmissionRepo) ListDSAScores(_ context.Context, contestID string) ([]repository.ScoreRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var rows []repository.ScoreRow
	for _, key := range r.dsaOrder {
		sub := r.dsa[key]
		p, ok := r.contests.problems[sub.ProblemID]
		if !ok || p.ContestID != contestID {
			continue
		}
		rows = append(rows, repository.ScoreRow{UserID: sub.UserID, UserName: r.names[sub.UserID], PointsEarned: sub.PointsEarned})
	}
	return rows, nil
}

// judgeFunc adapts a function to judge.Client.
type judgeFunc func(ctx context.Context, req judge.Request) (judge.Verdict, error)

func (f judgeFunc) Judge(ctx context.Context, req judge.Request) (judge.Verdict, error) {
	return f(ctx, req)
}

// verdictsByInput grades each test case by its stdin, defaulting to passed.
func verdictsByInput(byInput map[string]judge.Verdict) judge.Client {
	return judgeFunc(func(_ context.Context, req judge.Request) (judge.Verdict, error) {
		if v, ok := byInput[req.Stdin]; ok {
			return v, nil
		}
		return judge.VerdictPassed, nil
	})
}

func newTestLock(t interface {
	Fatalf(format string, args ...interface{})
	Cleanup(func())
}) *cache.KeyLock {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return cache.NewKeyLock(client, "submission_lock", time.Minute)
}
