package stats

import (
	"sort"

	"github.com/alleytab/alleytab/internal/models"
)

// Policy constants for the derived aggregates. These are product
// decisions, not math: tune them here, not inline.
const (
	// TypicalWindow is how many recent games feed the typical range.
	TypicalWindow = 30

	// PercentileMinimum is the smallest window that supports
	// percentiles; below it the typical range falls back to min/max.
	PercentileMinimum = 10

	// RecentWindow is how many games feed the recent-form average.
	RecentWindow = 10

	// ScoreThreshold marks a notable game for the 200-club count.
	ScoreThreshold = 200

	typicalLowQuantile  = 0.20
	typicalHighQuantile = 0.80
)

// ForPlayer folds one player's games, in any order, into PlayerStats.
func ForPlayer(playerID string, games []models.GameRecord) models.PlayerStats {
	agg := fold(games)
	return models.PlayerStats{
		PlayerID:                playerID,
		GamesPlayed:             agg.GamesPlayed,
		AverageScore:            agg.AverageScore,
		StrikePercentage:        agg.StrikePercentage,
		SparePercentage:         agg.SparePercentage,
		Floor:                   agg.Floor,
		Ceiling:                 agg.Ceiling,
		TypicalLow:              agg.TypicalLow,
		TypicalHigh:             agg.TypicalHigh,
		ConsistencyRange:        agg.ConsistencyRange,
		RecentAverage:           agg.RecentAverage,
		AverageTenthFrame:       agg.AverageTenthFrame,
		GamesAbove200:           agg.GamesAbove200,
		GamesAbove200Percentage: agg.GamesAbove200Percentage,
	}
}

// ForTeam folds the union of the current roster's games into TeamStats.
// Games whose player has been removed entirely (empty PlayerID) are
// excluded so the figures reflect the current roster.
func ForTeam(games []models.GameRecord) models.TeamStats {
	roster := make([]models.GameRecord, 0, len(games))
	for _, g := range games {
		if g.PlayerID != "" {
			roster = append(roster, g)
		}
	}
	return fold(roster)
}

// fold implements the shared aggregation over an ordered game history.
func fold(games []models.GameRecord) models.TeamStats {
	if len(games) == 0 {
		return models.TeamStats{}
	}

	ordered := make([]models.GameRecord, len(games))
	copy(ordered, games)
	sort.SliceStable(ordered, func(i, j int) bool {
		return submittedAt(ordered[i]) < submittedAt(ordered[j])
	})

	var (
		scoreSum  int
		strikeSum float64
		spareSum  float64
		tenthSum  int
		above     int
	)
	floor, ceiling := ordered[0].Score, ordered[0].Score

	for _, g := range ordered {
		m := Frame(g)
		scoreSum += g.Score
		strikeSum += m.StrikePercentage
		spareSum += m.SparePercentage
		tenthSum += m.TenthFramePins
		if g.Score >= ScoreThreshold {
			above++
		}
		if g.Score < floor {
			floor = g.Score
		}
		if g.Score > ceiling {
			ceiling = g.Score
		}
	}

	n := len(ordered)
	low, high := typicalRange(ordered)

	return models.TeamStats{
		GamesPlayed:             n,
		AverageScore:            round1(float64(scoreSum) / float64(n)),
		StrikePercentage:        round1(strikeSum / float64(n)),
		SparePercentage:         round1(spareSum / float64(n)),
		Floor:                   floor,
		Ceiling:                 ceiling,
		TypicalLow:              round1(low),
		TypicalHigh:             round1(high),
		ConsistencyRange:        round1(high - low),
		RecentAverage:           round1(recentAverage(ordered)),
		AverageTenthFrame:       round1(float64(tenthSum) / float64(n)),
		GamesAbove200:           above,
		GamesAbove200Percentage: round1(float64(above) / float64(n) * 100),
	}
}

// submittedAt orders games by submission time, falling back to the
// outing date for records imported without one.
func submittedAt(g models.GameRecord) int64 {
	if g.CreatedAt != 0 {
		return g.CreatedAt
	}
	return g.DatePlayed
}

// typicalRange computes the usual performance band over the last
// TypicalWindow games: 20th/80th percentiles when the window holds at
// least PercentileMinimum games, plain min/max otherwise.
func typicalRange(ordered []models.GameRecord) (low, high float64) {
	start := len(ordered) - TypicalWindow
	if start < 0 {
		start = 0
	}
	window := make([]float64, 0, len(ordered)-start)
	for _, g := range ordered[start:] {
		window = append(window, float64(g.Score))
	}
	sort.Float64s(window)

	if len(window) >= PercentileMinimum {
		return Percentile(window, typicalLowQuantile), Percentile(window, typicalHighQuantile)
	}
	return window[0], window[len(window)-1]
}

// recentAverage is the mean score of the last RecentWindow games.
func recentAverage(ordered []models.GameRecord) float64 {
	start := len(ordered) - RecentWindow
	if start < 0 {
		start = 0
	}
	recent := ordered[start:]
	var sum int
	for _, g := range recent {
		sum += g.Score
	}
	return float64(sum) / float64(len(recent))
}
