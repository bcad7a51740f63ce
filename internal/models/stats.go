package models

// PlayerStats is the derived aggregate over one player's games.
// All float fields are rounded to one decimal place. A player with no
// games yields the zero value; "no games yet" is not an error.
type PlayerStats struct {
	PlayerID    string `json:"player_id"`
	GamesPlayed int    `json:"games_played"`

	// AverageScore is the mean score across all games.
	AverageScore float64 `json:"average_score"`

	// StrikePercentage is the mean per-game fraction of the ten frames
	// opened with a strike, as a percentage.
	StrikePercentage float64 `json:"strike_percentage"`

	// SparePercentage is the mean per-game fraction of spare
	// opportunities converted, as a percentage.
	SparePercentage float64 `json:"spare_percentage"`

	// Floor and Ceiling are the all-time worst and best scores.
	// Intentionally outlier-sensitive: these are personal records.
	Floor   int `json:"floor"`
	Ceiling int `json:"ceiling"`

	// TypicalLow and TypicalHigh bound the player's usual performance
	// band: the 20th and 80th percentiles of the recent window, or the
	// window min/max when the sample is too small for percentiles.
	TypicalLow  float64 `json:"typical_low"`
	TypicalHigh float64 `json:"typical_high"`

	// ConsistencyRange is TypicalHigh - TypicalLow.
	ConsistencyRange float64 `json:"consistency_range"`

	// RecentAverage is the mean score of the most recent games.
	RecentAverage float64 `json:"recent_average"`

	// AverageTenthFrame is the mean pin count of the 10th frame.
	AverageTenthFrame float64 `json:"average_tenth_frame"`

	// GamesAbove200 counts games at or above the 200 threshold, with
	// its share of GamesPlayed as a percentage.
	GamesAbove200           int     `json:"games_above_200"`
	GamesAbove200Percentage float64 `json:"games_above_200_percentage"`
}

// TeamStats is the same aggregate computed over the union of all
// active players' games.
type TeamStats struct {
	GamesPlayed             int     `json:"games_played"`
	AverageScore            float64 `json:"average_score"`
	StrikePercentage        float64 `json:"strike_percentage"`
	SparePercentage         float64 `json:"spare_percentage"`
	Floor                   int     `json:"floor"`
	Ceiling                 int     `json:"ceiling"`
	TypicalLow              float64 `json:"typical_low"`
	TypicalHigh             float64 `json:"typical_high"`
	ConsistencyRange        float64 `json:"consistency_range"`
	RecentAverage           float64 `json:"recent_average"`
	AverageTenthFrame       float64 `json:"average_tenth_frame"`
	GamesAbove200           int     `json:"games_above_200"`
	GamesAbove200Percentage float64 `json:"games_above_200_percentage"`
}
