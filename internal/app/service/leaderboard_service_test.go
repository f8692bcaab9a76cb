package service_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"contesthub/internal/app/service"
	"contesthub/internal/common"
	"contesthub/internal/domain/model"
	"contesthub/internal/domain/repository"
)

func seedLeaderboardFixture(t *testing.T) (*service.LeaderboardService, *fakeContestRepo, *fakeSubmissionRepo) {
	t.Helper()
	contests := newFakeContestRepo()
	submissions := newFakeSubmissionRepo(contests)

	contests.contests["c1"] = &model.Contest{ID: "c1", CreatorID: "creator-1", StartTime: contestStart, EndTime: contestEnd}
	contests.questions["q1"] = &model.MCQQuestion{ID: "q1", ContestID: "c1", Options: []string{"a", "b"}, CorrectIndex: 0, Points: 50}
	contests.questions["q2"] = &model.MCQQuestion{ID: "q2", ContestID: "c1", Options: []string{"a", "b"}, CorrectIndex: 0, Points: 50}
	contests.problems["p1"] = &model.DSAProblem{ID: "p1", ContestID: "c1", Points: 100}

	submissions.names["user-a"] = "Alice"
	submissions.names["user-b"] = "Bob"
	submissions.names["user-c"] = "Cara"

	return service.NewLeaderboardService(contests, submissions), contests, submissions
}

func mcqSub(userID, questionID string, points int) *model.MCQSubmission {
	return &model.MCQSubmission{
		ID: userID + "-" + questionID, UserID: userID, QuestionID: questionID,
		IsCorrect: points > 0, PointsEarned: points, SubmittedAt: contestStart,
	}
}

func dsaSub(userID, problemID string, points int) *model.DSASubmission {
	return &model.DSASubmission{
		ID: userID + "-" + problemID, UserID: userID, ProblemID: problemID,
		Code: "code", Language: "go", Status: model.StatusAccepted,
		PointsEarned: points, SubmittedAt: contestStart,
	}
}

func TestLeaderboardCompetitionRanking(t *testing.T) {
	svc, _, submissions := seedLeaderboardFixture(t)
	ctx := context.Background()

	// A: 100, B: 100, C: 50
	submissions.InsertMCQSubmission(ctx, mcqSub("user-a", "q1", 50))
	submissions.InsertMCQSubmission(ctx, mcqSub("user-a", "q2", 50))
	submissions.InsertDSASubmission(ctx, dsaSub("user-b", "p1", 100))
	submissions.InsertMCQSubmission(ctx, mcqSub("user-c", "q1", 50))

	entries, err := svc.GetLeaderboard(ctx, "c1")
	if err != nil {
		t.Fatalf("leaderboard failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	ranks := map[string]int{}
	for _, e := range entries {
		ranks[e.DisplayName] = e.Rank
	}
	// Ties share a rank and the sequence skips: 1,1,3 never 1,1,2.
	if ranks["Alice"] != 1 || ranks["Bob"] != 1 || ranks["Cara"] != 3 {
		t.Fatalf("expected ranks Alice:1 Bob:1 Cara:3, got %v", ranks)
	}
	if entries[2].TotalPoints != 50 {
		t.Fatalf("expected Cara last with 50, got %+v", entries[2])
	}
}

func TestLeaderboardAggregation(t *testing.T) {
	svc, contests, submissions := seedLeaderboardFixture(t)
	contests.problems["p2"] = &model.DSAProblem{ID: "p2", ContestID: "c1", Points: 40}
	ctx := context.Background()

	// MCQ: sum of all submissions. DSA: the ledger already stores one best
	// attempt per problem; totals sum that best across problems.
	submissions.InsertMCQSubmission(ctx, mcqSub("user-a", "q1", 50))
	submissions.InsertMCQSubmission(ctx, mcqSub("user-a", "q2", 0))
	submissions.InsertDSASubmission(ctx, dsaSub("user-a", "p1", 75))
	submissions.InsertDSASubmission(ctx, dsaSub("user-a", "p2", 40))

	entries, err := svc.GetLeaderboard(ctx, "c1")
	if err != nil {
		t.Fatalf("leaderboard failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].TotalPoints != 165 {
		t.Fatalf("expected total 50+0+75+40=165, got %d", entries[0].TotalPoints)
	}
}

func TestLeaderboardIdempotent(t *testing.T) {
	svc, _, submissions := seedLeaderboardFixture(t)
	ctx := context.Background()

	submissions.InsertMCQSubmission(ctx, mcqSub("user-a", "q1", 50))
	submissions.InsertDSASubmission(ctx, dsaSub("user-b", "p1", 50))
	submissions.InsertMCQSubmission(ctx, mcqSub("user-c", "q2", 50))

	first, err := svc.GetLeaderboard(ctx, "c1")
	if err != nil {
		t.Fatalf("leaderboard failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := svc.GetLeaderboard(ctx, "c1")
		if err != nil {
			t.Fatalf("recompute failed: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("recompute differs:\nfirst: %+v\nagain: %+v", first, again)
		}
	}
	// All three are tied; every entry shares rank 1.
	for _, e := range first {
		if e.Rank != 1 {
			t.Fatalf("equal totals must share one rank, got %+v", first)
		}
	}
}

func TestLeaderboardOmitsNonSubmitters(t *testing.T) {
	svc, _, submissions := seedLeaderboardFixture(t)
	ctx := context.Background()
	submissions.InsertMCQSubmission(ctx, mcqSub("user-a", "q1", 50))

	entries, err := svc.GetLeaderboard(ctx, "c1")
	if err != nil {
		t.Fatalf("leaderboard failed: %v", err)
	}
	if len(entries) != 1 || entries[0].DisplayName != "Alice" {
		t.Fatalf("only submitters appear, got %+v", entries)
	}
}

func TestLeaderboardUnknownContest(t *testing.T) {
	svc, _, _ := seedLeaderboardFixture(t)
	_, err := svc.GetLeaderboard(context.Background(), "nope")
	if !errors.Is(err, common.ErrContestNotFound) {
		t.Fatalf("expected CONTEST_NOT_FOUND, got %v", err)
	}
}

// ctxAwareSubmissionRepo fails reads once the request context is done, the
// way a real driver would.
type ctxAwareSubmissionRepo struct {
	*fakeSubmissionRepo
}

func (r *ctxAwareSubmissionRepo) ListMCQScores(ctx context.Context, contestID string) ([]repository.ScoreRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.fakeSubmissionRepo.ListMCQScores(ctx, contestID)
}

func (r *ctxAwareSubmissionRepo) ListDSAScores(ctx context.Context, contestID string) ([]repository.ScoreRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.fakeSubmissionRepo.ListDSAScores(ctx, contestID)
}

func TestLeaderboardSurvivesCallerCancellation(t *testing.T) {
	_, contests, submissions := seedLeaderboardFixture(t)
	svc := service.NewLeaderboardService(contests, &ctxAwareSubmissionRepo{fakeSubmissionRepo: submissions})
	submissions.InsertMCQSubmission(context.Background(), mcqSub("user-a", "q1", 50))

	// A canceled starter must not poison the shared computation for the
	// callers collapsed onto it.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	entries, err := svc.GetLeaderboard(ctx, "c1")
	if err != nil {
		t.Fatalf("collapsed computation must not inherit a caller's cancellation: %v", err)
	}
	if len(entries) != 1 || entries[0].TotalPoints != 50 {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestLeaderboardHidesRawUserID(t *testing.T) {
	svc, _, submissions := seedLeaderboardFixture(t)
	ctx := context.Background()
	submissions.InsertMCQSubmission(ctx, mcqSub("user-a", "q1", 50))

	entries, err := svc.GetLeaderboard(ctx, "c1")
	if err != nil {
		t.Fatalf("leaderboard failed: %v", err)
	}
	if entries[0].DisplayID != model.DisplayIDFor("user-a") {
		t.Fatalf("display id must be the stable derived value")
	}
	// Stable across processes and calls.
	if model.DisplayIDFor("user-a") != model.DisplayIDFor("user-a") {
		t.Fatalf("display id not stable")
	}
	if model.DisplayIDFor("user-a") == model.DisplayIDFor("user-b") {
		t.Fatalf("distinct users should normally get distinct display ids")
	}
}
