package stats

import "context"

type Repository interface {
	// GetSeasonTotals returns one raw aggregate per player that has stat rows in the
	// season. Players without rows are absent from the map.
	GetSeasonTotals(ctx context.Context, playerIDs []string, seasonID string) (map[string]RawTotals, error)
	RecordGameStat(ctx context.Context, stat GameStat) (RecordedStat, error)
}
