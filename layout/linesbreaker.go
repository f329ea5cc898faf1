package layout

import (
	"log/slog"
	"math"

	"github.com/ako-backing-tracks/scoreengrave/logging"
)

// LineColumn is the minimal view of a column the Lines Breaker needs:
// its width contribution and whether it carries a forced system break
// (spec §4.7).
type LineColumn struct {
	Width       float64
	ForcedBreak bool
}

// PenaltyFunc reports how bad it is to form a system out of columns
// [iFirstCol, iLastCol] as the iSystem-th system, per the contract in
// spec §4.5/§4.7 (determine_penalty_for_line). Returning math.Inf(1)
// means the line does not fit at all.
type PenaltyFunc func(iSystem, iFirstCol, iLastCol int) float64

// BetterOptionFunc implements is_better_option from spec §4.5: given the
// penalty accumulated reaching column i, the marginal penalty of the
// candidate system i..j, and the best penalty already recorded for
// reaching j, decide whether the candidate improves on it.
type BetterOptionFunc func(prevPenalty, newPenalty, currentBest float64, i, j int) bool

// DefaultBetterOption accepts the candidate iff it strictly lowers the
// total penalty reaching j.
func DefaultBetterOption(prevPenalty, newPenalty, currentBest float64, i, j int) bool {
	return prevPenalty+newPenalty < currentBest
}

// TargetWidthPenalty builds a PenaltyFunc that penalizes the squared
// deviation of a system's summed column widths from targetWidth — the
// classic Knuth "badness of looseness/tightness" shape, simplified to a
// single quadratic term since individual columns don't carry separate
// stretch/shrink factors (spec §4.5 only specifies intrinsic width and a
// penalty contract, leaving the cost shape to the implementation).
// Systems that don't fit at all (sum > targetWidth, nothing left to
// compress) return +Inf.
func TargetWidthPenalty(columns []LineColumn, targetWidth float64) PenaltyFunc {
	return func(iSystem, iFirstCol, iLastCol int) float64 {
		sum := 0.0
		for k := iFirstCol; k <= iLastCol; k++ {
			sum += columns[k].Width
		}
		if sum > targetWidth {
			return math.Inf(1)
		}
		diff := targetWidth - sum
		return diff * diff
	}
}

type entry struct {
	penalty     float64
	predecessor int
	systemCount int
}

// LinesBreaker implements the optimal (dynamic-programming) and greedy
// fallback line-breaking algorithms of spec §4.7.
type LinesBreaker struct {
	log *slog.Logger
}

// NewLinesBreaker constructs a lines breaker.
func NewLinesBreaker() *LinesBreaker {
	return &LinesBreaker{log: logging.For("linesbreaker")}
}

// Optimal runs the dynamic-programming algorithm of spec §4.7 and
// returns the ordered break column indices: index 0 is implicit (the
// start of the first system) and is included first, followed by the
// first column of every subsequent system, with numCols appended
// implicitly as the end of the last system. A forced break on column
// j-1 always wins regardless of penalty (spec property 8: "forced
// breaks honored").
func (lb *LinesBreaker) Optimal(columns []LineColumn, penalty PenaltyFunc, better BetterOptionFunc) []int {
	numCols := len(columns)
	if numCols == 0 {
		return nil
	}
	if better == nil {
		better = DefaultBetterOption
	}

	entries := make([]entry, numCols+1)
	entries[0] = entry{penalty: 0, predecessor: 0, systemCount: 0}
	for j := 1; j <= numCols; j++ {
		entries[j] = entry{penalty: math.Inf(1), predecessor: -1, systemCount: 0}
	}

	for i := 0; i <= numCols; i++ {
		if math.IsInf(entries[i].penalty, 1) {
			continue
		}
		for j := i + 1; j <= numCols; j++ {
			iLastCol := j - 1
			new := penalty(entries[i].systemCount, i, iLastCol)

			if columns[iLastCol].ForcedBreak {
				if entries[i].penalty < entries[j].penalty {
					entries[j] = entry{penalty: entries[i].penalty, predecessor: i, systemCount: entries[i].systemCount + 1}
				}
				break
			}

			if math.IsInf(new, 1) {
				break
			}

			if better(entries[i].penalty, new, entries[j].penalty, i, iLastCol) {
				entries[j] = entry{
					penalty:     entries[i].penalty + new,
					predecessor: i,
					systemCount: entries[i].systemCount + 1,
				}
			}
		}
	}

	return retrievePath(entries, numCols)
}

func retrievePath(entries []entry, numCols int) []int {
	var rev []int
	for at := numCols; ; {
		rev = append(rev, at)
		pred := entries[at].predecessor
		if at == 0 {
			break
		}
		at = pred
	}

	breaks := make([]int, len(rev))
	for i, v := range rev {
		breaks[len(rev)-1-i] = v
	}
	return breaks
}

// Greedy implements the fallback first-fit algorithm of spec §4.7: pack
// columns into a system until adding the next one would exceed
// targetWidth or a forced break is hit, whichever comes first.
func (lb *LinesBreaker) Greedy(columns []LineColumn, targetWidth float64) []int {
	numCols := len(columns)
	if numCols == 0 {
		return nil
	}

	breaks := []int{0}
	sum := 0.0
	start := 0

	for i := 0; i < numCols; i++ {
		w := columns[i].Width
		if i > start && sum+w > targetWidth {
			breaks = append(breaks, i)
			sum = 0
			start = i
		}
		sum += w
		if columns[i].ForcedBreak {
			breaks = append(breaks, i+1)
			sum = 0
			start = i + 1
		}
	}

	if breaks[len(breaks)-1] != numCols {
		breaks = append(breaks, numCols)
	}
	return breaks
}
