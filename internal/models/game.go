package models

// GameRecord represents one bowled game as submitted by the score
// keeper. Frames 1-9 arrive pre-aggregated (a running total plus strike
// and spare counts); the 10th frame is kept as its literal notation so
// its pins and flags can be re-derived at any time.
//
// Records are immutable after creation except for deletion.
type GameRecord struct {
	// ID is the unique identifier for the game (UUID format).
	ID string `json:"id"`

	// PlayerID references the player who bowled the game. It is empty
	// when the player was later removed from the roster entirely; such
	// games keep counting in aggregates they already appear in but are
	// excluded from current team averages.
	PlayerID string `json:"player_id,omitempty"`

	// SessionID groups records submitted together as one team outing.
	SessionID string `json:"session_id"`

	// DatePlayed is the Unix timestamp of the outing.
	DatePlayed int64 `json:"date_played"`

	// Score is the final game score. The field covers frames 1-9 plus
	// the 10th and is the single score of record for all averages.
	Score int `json:"score"`

	// Strikes is the number of frames 1-9 opened with a strike (0-9).
	Strikes int `json:"strikes"`

	// Spares is the number of frames 1-9 closed with a spare (0-9).
	// Invariant: Strikes + Spares <= 9.
	Spares int `json:"spares"`

	// TenthFrame is the 10th-frame notation, e.g. "X9/" or "72".
	// Validated before the record is constructed; see internal/notation.
	TenthFrame string `json:"tenth_frame"`

	// CreatedAt is the Unix timestamp when the record was submitted.
	// Aggregation orders games by submission time, falling back to
	// DatePlayed when it is unset.
	CreatedAt int64 `json:"created_at"`
}

// TenthFrameResult is derived from a GameRecord's TenthFrame notation.
// It is recomputed on demand and never stored.
type TenthFrameResult struct {
	// StrikesOpened is 1 when the frame opened with a strike, else 0.
	// It stays 1 even when all three balls were strikes.
	StrikesOpened int `json:"strikes_opened"`

	// SparesClosed is 1 when any two consecutive balls of the frame
	// formed a spare, else 0.
	SparesClosed int `json:"spares_closed"`

	// PinsKnocked is the total pin count across the frame, 0-30.
	PinsKnocked int `json:"pins_knocked"`
}
