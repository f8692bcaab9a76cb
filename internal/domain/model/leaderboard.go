package model

import "hash/fnv"

// LeaderboardEntry is a derived view, recomputed per request and never
// persisted. DisplayID is a one-way transform of the user UUID so the raw
// identifier is not exposed in public rankings.
type LeaderboardEntry struct {
	DisplayID   uint32 `json:"display_id"`
	DisplayName string `json:"display_name"`
	TotalPoints int    `json:"total_points"`
	Rank        int    `json:"rank"`
}

// DisplayIDFor derives a stable numeric identifier from a user ID. FNV-1a
// is deterministic across processes; collisions are tolerated since the
// entry also carries a display name.
func DisplayIDFor(userID string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(userID))
	return h.Sum32()
}
