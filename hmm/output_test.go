package hmm

import (
	"math"
	"testing"

	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/require"
)

func TestForwardOutputUpdate4(t *testing.T) {
	out := NewForwardOutput(NewFloatMatrix(2, 3))

	logHalf := float32(math.Log(0.5))
	logQuarter := float32(math.Log(0.25))
	out.Update4(1, 0, logHalf, logQuarter, negInf, negInf, -1)
	require.InDelta(t, math.Log(0.75)-1, float64(out.Get(1, 0)), 1e-6)

	// All-impossible predecessors stay impossible, never NaN.
	out.Update4(1, 1, negInf, negInf, negInf, negInf, -1)
	expect.EQ(t, out.Get(1, 1), negInf)
	require.False(t, math.IsNaN(float64(out.Get(1, 1))))
}

func TestForwardOutputUpdateEndSums(t *testing.T) {
	out := NewForwardOutput(NewFloatMatrix(2, 3))
	expect.EQ(t, out.EndScore(), negInf)

	logHalf := float32(math.Log(0.5))
	out.UpdateEnd(logHalf, 1, 0)
	out.UpdateEnd(logHalf, 1, 1)
	require.InDelta(t, 0.0, float64(out.EndScore()), 1e-6)
}

func TestViterbiOutputTieBreak(t *testing.T) {
	out := NewViterbiOutput(NewFloatMatrix(2, 3), NewByteMatrix(2, 3))

	// Under exact equality the first qualifying branch wins, in order
	// match, event split, kmer skip, flank entry.
	out.Update4(1, 0, -1, -1, -1, -1, 0)
	expect.EQ(t, out.Backtrace(1, 0), StateMatch)

	out.Update4(1, 1, -2, -1, -1, -1, 0)
	expect.EQ(t, out.Backtrace(1, 1), StateEventSplit)

	out.Update4(1, 2, -2, -2, -2, -1, 0)
	expect.EQ(t, out.Backtrace(1, 2), StatePreSoft)
	expect.EQ(t, out.Get(1, 2), float32(-1))
}

func TestViterbiOutputUpdateEndStrict(t *testing.T) {
	out := NewViterbiOutput(NewFloatMatrix(3, 3), NewByteMatrix(3, 3))

	out.UpdateEnd(-2, 1, 0)
	out.UpdateEnd(-1, 1, 1)
	// An equal score must not displace the recorded best cell.
	out.UpdateEnd(-1, 2, 2)

	expect.EQ(t, out.EndScore(), float32(-1))
	row, col := out.EndCell()
	expect.EQ(t, row, 1)
	expect.EQ(t, col, 1)
}

func TestInitLattice(t *testing.T) {
	fm := NewFloatMatrix(3, 9)
	NewForwardOutput(fm)

	// Probability one in the start block's kmer skip state, zero elsewhere.
	for row := 0; row < fm.NumRows(); row++ {
		for col := 0; col < fm.NumCols(); col++ {
			if row == 0 && col == int(StateKmerSkip) {
				expect.EQ(t, fm.At(row, col), float32(0))
			} else {
				expect.EQ(t, fm.At(row, col), negInf)
			}
		}
	}
}

func TestViterbiOutputShapeMismatchPanics(t *testing.T) {
	require.Panics(t, func() {
		NewViterbiOutput(NewFloatMatrix(2, 3), NewByteMatrix(2, 6))
	})
}
