package service

import (
	"context"
	"sort"

	"contesthub/internal/domain/model"
	"contesthub/internal/domain/repository"

	"golang.org/x/sync/singleflight"
)

// LeaderboardService reduces a contest's stored submissions into ranked
// per-user totals. The leaderboard is a pure view computed per request,
// never persisted; concurrent requests for the same contest share one
// computation via singleflight.
type LeaderboardService struct {
	contestRepo    repository.ContestRepository
	submissionRepo repository.SubmissionRepository
	group          singleflight.Group
}

func NewLeaderboardService(contestRepo repository.ContestRepository, submissionRepo repository.SubmissionRepository) *LeaderboardService {
	return &LeaderboardService{contestRepo: contestRepo, submissionRepo: submissionRepo}
}

func (s *LeaderboardService) GetLeaderboard(ctx context.Context, contestID string) ([]model.LeaderboardEntry, error) {
	if _, err := s.contestRepo.FindContestByID(ctx, contestID); err != nil {
		return nil, err
	}

	// The computation is shared by every collapsed caller, so it must not die
	// with whichever request happened to start it.
	computeCtx := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do(contestID, func() (interface{}, error) {
		return s.compute(computeCtx, contestID)
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.LeaderboardEntry), nil
}

func (s *LeaderboardService) compute(ctx context.Context, contestID string) ([]model.LeaderboardEntry, error) {
	mcqScores, err := s.submissionRepo.ListMCQScores(ctx, contestID)
	if err != nil {
		return nil, err
	}
	// DSA rows already hold the single best attempt per (user, problem), so
	// both sets aggregate the same way: sum per user.
	dsaScores, err := s.submissionRepo.ListDSAScores(ctx, contestID)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]int)
	names := make(map[string]string)
	var order []string // first-seen order keeps equal-total sorting stable
	add := func(rows []repository.ScoreRow) {
		for _, row := range rows {
			if _, seen := totals[row.UserID]; !seen {
				order = append(order, row.UserID)
				names[row.UserID] = row.UserName
			}
			totals[row.UserID] += row.PointsEarned
		}
	}
	add(mcqScores)
	add(dsaScores)

	entries := make([]model.LeaderboardEntry, 0, len(order))
	for _, userID := range order {
		entries = append(entries, model.LeaderboardEntry{
			DisplayID:   model.DisplayIDFor(userID),
			DisplayName: names[userID],
			TotalPoints: totals[userID],
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalPoints > entries[j].TotalPoints
	})

	// Standard competition ranking: ties share a rank, the sequence skips
	// what the tie group consumed (1,2,2,4).
	for i := range entries {
		if i > 0 && entries[i].TotalPoints == entries[i-1].TotalPoints {
			entries[i].Rank = entries[i-1].Rank
		} else {
			entries[i].Rank = i + 1
		}
	}
	return entries, nil
}
