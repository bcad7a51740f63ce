// Package notation parses the compact 10th-frame notation used on the
// score entry form, e.g. "X9/" or "72".
//
// The alphabet is {0-9, X, /, -}, case-insensitive: X is a strike,
// / a spare, - a miss, a digit its own pin count. Validation is
// incremental: a legal prefix of a frame (the score keeper is still
// typing) reports StatusIncomplete rather than an error, and only
// strings that cannot be completed legally are rejected.
//
// Pin values are uniform: X is worth 10 pins in every ball slot. After
// a strike the rack resets, so a second-and-third-ball spare ("X9/")
// and a strike after a miss ("X-X") are both legal.
package notation

import (
	"fmt"
	"strings"

	"github.com/alleytab/alleytab/internal/models"
)

// ErrorKind identifies why a notation string was rejected.
type ErrorKind string

const (
	KindInvalidCharacter               ErrorKind = "invalid_character"
	KindSpareAfterStrike               ErrorKind = "spare_after_strike"
	KindStrikeAfterNonStrikeSecondBall ErrorKind = "strike_after_non_strike_second_ball"
	KindStrikeAfterPartialKnockdown    ErrorKind = "strike_after_partial_knockdown"
	KindThirdBallAfterDoubleMiss       ErrorKind = "third_ball_after_double_miss"
	KindThirdBallAfterNonSpareOpen     ErrorKind = "third_ball_after_non_spare_open"
	KindPinSumExceedsTen               ErrorKind = "pin_sum_exceeds_ten"
	KindMissingRequiredThirdBall       ErrorKind = "missing_required_third_ball"
)

// Status is the validation verdict for a notation string.
type Status int

const (
	// StatusValid means the string is a complete legal frame.
	StatusValid Status = iota

	// StatusIncomplete means the string is a legal prefix of a frame
	// but more deliveries are required. Interactive callers treat this
	// as "still typing", not as a failure.
	StatusIncomplete

	// StatusInvalid means the string can never be completed legally.
	StatusInvalid
)

// String returns the lowercase wire name of the status.
func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusIncomplete:
		return "incomplete"
	default:
		return "invalid"
	}
}

// Result is the outcome of validating a notation string. Kind and
// Reason are set when Status is not StatusValid (Kind may be empty for
// incomplete strings that are simply short of their next ball).
type Result struct {
	Status Status
	Kind   ErrorKind
	Reason string
}

// Ok reports whether the string is legal so far (valid or incomplete).
func (r Result) Ok() bool {
	return r.Status != StatusInvalid
}

// ballKind tags one parsed delivery.
type ballKind int

const (
	ballStrike ballKind = iota
	ballSpare
	ballNumber
	ballMiss
)

// ball is one parsed delivery. Pins is the count this ball alone
// knocked down; for a spare that is whatever the previous ball left.
type ball struct {
	kind ballKind
	pins int
}

// Validate checks a 10th-frame notation string against the frame
// grammar. It never returns an error; the verdict is in the Result.
func Validate(s string) Result {
	_, res := parse(s)
	return res
}

// Derive computes the frame totals for a notation string. It
// re-validates rather than trusting the caller; invalid strings return
// an error. Incomplete strings derive the pins thrown so far, which
// the entry form uses for live previews.
func Derive(s string) (models.TenthFrameResult, error) {
	balls, res := parse(s)
	if res.Status == StatusInvalid {
		return models.TenthFrameResult{}, fmt.Errorf("invalid tenth frame %q: %s", s, res.Reason)
	}

	var out models.TenthFrameResult
	for i, b := range balls {
		out.PinsKnocked += b.pins
		if b.kind == ballStrike && i == 0 {
			out.StrikesOpened = 1
		}
		if b.kind == ballSpare {
			out.SparesClosed = 1
		}
	}
	return out, nil
}

// parse turns the string into a sequence of tagged balls, rejecting at
// the first symbol that makes the frame impossible to complete.
func parse(s string) ([]ball, Result) {
	s = strings.ToUpper(strings.TrimSpace(s))

	var balls []ball
	for _, r := range s {
		if len(balls) == 3 {
			return balls, invalid(KindInvalidCharacter, "the frame is already complete after three deliveries")
		}

		b, res := parseBall(r, balls)
		if res.Status == StatusInvalid {
			return balls, res
		}
		balls = append(balls, b)
	}

	return balls, completeness(balls)
}

// parseBall validates one symbol in the context of the balls before it.
func parseBall(r rune, prev []ball) (ball, Result) {
	var b ball
	switch {
	case r == 'X':
		b = ball{kind: ballStrike, pins: 10}
	case r == '/':
		b = ball{kind: ballSpare}
	case r == '-':
		b = ball{kind: ballMiss}
	case r >= '0' && r <= '9':
		b = ball{kind: ballNumber, pins: int(r - '0')}
	default:
		return b, invalid(KindInvalidCharacter, fmt.Sprintf("%q is not a pin count, X, /, or -", r))
	}

	switch len(prev) {
	case 0:
		return firstBall(b)
	case 1:
		return secondBall(b, prev[0])
	default:
		return thirdBall(b, prev[0], prev[1])
	}
}

func firstBall(b ball) (ball, Result) {
	if b.kind == ballSpare {
		return b, invalid(KindInvalidCharacter, "a spare marker cannot open the frame")
	}
	return b, Result{Status: StatusValid}
}

func secondBall(b, first ball) (ball, Result) {
	if first.kind == ballStrike {
		// Rack reset; anything but a spare can follow.
		if b.kind == ballSpare {
			return b, invalid(KindSpareAfterStrike, "a spare cannot follow a strike: all ten pins are already down")
		}
		return b, Result{Status: StatusValid}
	}

	switch b.kind {
	case ballStrike:
		return b, invalid(KindStrikeAfterNonStrikeSecondBall, "a strike is not possible on a partial rack; use / for a spare")
	case ballSpare:
		b.pins = 10 - first.pins
		return b, Result{Status: StatusValid}
	case ballNumber:
		if first.pins+b.pins > 10 {
			return b, invalid(KindPinSumExceedsTen, "the first two balls cannot knock down more than ten pins")
		}
	}
	return b, Result{Status: StatusValid}
}

func thirdBall(b, first, second ball) (ball, Result) {
	if first.kind != ballStrike && second.kind != ballSpare {
		// Open frame or double miss: the frame ended with ball two.
		if first.kind == ballMiss && second.kind == ballMiss {
			return b, invalid(KindThirdBallAfterDoubleMiss, "no third ball after two misses")
		}
		return b, invalid(KindThirdBallAfterNonSpareOpen, "no third ball after an open frame")
	}

	// Bonus ball: the rack state depends on ball two.
	switch second.kind {
	case ballStrike, ballSpare:
		// Fresh rack for ball three.
		if b.kind == ballSpare {
			return b, invalid(KindSpareAfterStrike, "a spare needs a preceding ball on the same rack")
		}
	case ballNumber:
		switch b.kind {
		case ballStrike:
			return b, invalid(KindStrikeAfterPartialKnockdown, "a strike is not possible on a partial rack; use / for a spare")
		case ballSpare:
			b.pins = 10 - second.pins
		case ballNumber:
			if second.pins+b.pins > 10 {
				return b, invalid(KindPinSumExceedsTen, "balls two and three cannot knock down more than ten pins")
			}
		}
	case ballMiss:
		// Full rack still standing: a strike or a spare both clear it.
		if b.kind == ballSpare {
			b.pins = 10
		}
	}
	return b, Result{Status: StatusValid}
}

// completeness decides whether a legal ball sequence is a finished
// frame or a prefix the score keeper is still typing.
func completeness(balls []ball) Result {
	switch len(balls) {
	case 0:
		return incomplete("", "the frame is empty")
	case 1:
		return incomplete("", "the frame needs another delivery")
	case 2:
		if balls[0].kind == ballStrike || balls[1].kind == ballSpare {
			return incomplete(KindMissingRequiredThirdBall, "a strike or spare earns a mandatory third ball")
		}
		return Result{Status: StatusValid}
	default:
		return Result{Status: StatusValid}
	}
}

func invalid(kind ErrorKind, reason string) Result {
	return Result{Status: StatusInvalid, Kind: kind, Reason: reason}
}

func incomplete(kind ErrorKind, reason string) Result {
	return Result{Status: StatusIncomplete, Kind: kind, Reason: reason}
}
