// Package stats derives player and team statistics from game records.
// Everything here is a pure function over in-memory snapshots: same
// input, same output, no I/O. Aggregators never fail — a player with no
// games yields the zero stats value, since "no games yet" is an
// expected steady state.
package stats

import (
	"github.com/alleytab/alleytab/internal/models"
	"github.com/alleytab/alleytab/internal/notation"
)

// FrameMetrics holds the per-game figures derived from one record's
// frame counts and its 10th-frame notation.
type FrameMetrics struct {
	// StrikePercentage is the fraction of the ten frames opened with a
	// strike, as a percentage. The denominator is fixed at 10.
	StrikePercentage float64

	// SparePercentage is the fraction of spare opportunities converted.
	// A frame opened with a strike offers no spare opportunity; the
	// 10th frame always offers exactly one.
	SparePercentage float64

	// TenthFramePins is the pin total of the 10th frame, 0-30.
	TenthFramePins int
}

// Frame computes the per-game metrics for one record. A record whose
// notation fails to derive (it was validated at submission, so this
// means corrupt data) contributes a zero 10th frame rather than an
// error.
func Frame(g models.GameRecord) FrameMetrics {
	tenth, err := notation.Derive(g.TenthFrame)
	if err != nil {
		tenth = models.TenthFrameResult{}
	}

	m := FrameMetrics{
		StrikePercentage: float64(g.Strikes+tenth.StrikesOpened) / 10 * 100,
		TenthFramePins:   tenth.PinsKnocked,
	}

	opportunities := (9 - g.Strikes) + 1
	if opportunities > 0 {
		m.SparePercentage = float64(g.Spares+tenth.SparesClosed) / float64(opportunities) * 100
	}
	return m
}
