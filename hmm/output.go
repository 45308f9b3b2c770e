package hmm

import "github.com/grailbio/base/log"

// Output is the accumulation strategy the fill engine writes through. The
// Forward implementation sums paths in the log domain; the Viterbi
// implementation keeps the maximum and a backtrace. The recursion itself is
// strategy-agnostic.
type Output interface {
	// Update4 combines four predecessor values, adds the emission term, and
	// stores the result at (row, col).
	Update4(row, col int, m, e, k, s, lpEmission float32)
	// UpdateEnd folds a candidate end-of-alignment score reached at
	// (row, col).
	UpdateEnd(v float32, row, col int)
	// Get reads the value stored at (row, col).
	Get(row, col int) float32
	// EndScore reads the accumulated end-of-alignment score.
	EndScore() float32
	// NumRows and NumColumns report the lattice shape.
	NumRows() int
	NumColumns() int
}

// initLattice resets a caller-owned lattice to the initial state: every cell
// impossible except the kmer skip state of the sentinel start block at row 0,
// which carries probability one.
func initLattice(m *FloatMatrix) {
	for i := range m.data {
		m.data[i] = negInf
	}
	m.Set(0, int(StateKmerSkip), 0)
}

// ForwardOutput accumulates the Forward algorithm: every Update4 is a stable
// log-domain sum over the predecessor branches, and the end score is the
// marginal over all alignment paths.
type ForwardOutput struct {
	fm    *FloatMatrix
	lpEnd float32
}

// NewForwardOutput binds a Forward accumulator to a caller-owned lattice and
// resets the lattice.
func NewForwardOutput(fm *FloatMatrix) *ForwardOutput {
	initLattice(fm)
	return &ForwardOutput{fm: fm, lpEnd: negInf}
}

// Update4 implements Output.
func (o *ForwardOutput) Update4(row, col int, m, e, k, s, lpEmission float32) {
	sum := addLogs(addLogs(m, e), addLogs(k, s))
	o.fm.Set(row, col, sum+lpEmission)
}

// UpdateEnd implements Output.
func (o *ForwardOutput) UpdateEnd(v float32, row, col int) {
	o.lpEnd = addLogs(o.lpEnd, v)
}

// Get implements Output.
func (o *ForwardOutput) Get(row, col int) float32 { return o.fm.At(row, col) }

// EndScore implements Output.
func (o *ForwardOutput) EndScore() float32 { return o.lpEnd }

// NumRows implements Output.
func (o *ForwardOutput) NumRows() int { return o.fm.NumRows() }

// NumColumns implements Output.
func (o *ForwardOutput) NumColumns() int { return o.fm.NumCols() }

// ViterbiOutput accumulates the Viterbi algorithm: every Update4 keeps the
// best predecessor branch and records it in the backtrace matrix, and the
// end score is the best single path together with the cell it ends in.
type ViterbiOutput struct {
	fm *FloatMatrix
	bm *ByteMatrix

	lpEnd  float32
	endRow int
	endCol int
}

// NewViterbiOutput binds a Viterbi accumulator to a caller-owned lattice and
// backtrace matrix, resetting both. The two must have the same shape.
func NewViterbiOutput(fm *FloatMatrix, bm *ByteMatrix) *ViterbiOutput {
	if fm.NumRows() != bm.NumRows() || fm.NumCols() != bm.NumCols() {
		log.Panicf("lattice is %dx%d but backtrace is %dx%d",
			fm.NumRows(), fm.NumCols(), bm.NumRows(), bm.NumCols())
	}
	initLattice(fm)
	for i := range bm.data {
		bm.data[i] = StateMatch
	}
	return &ViterbiOutput{fm: fm, bm: bm, lpEnd: negInf}
}

// Update4 implements Output. Ties break in branch order: match, event split,
// kmer skip, then flank entry.
func (o *ViterbiOutput) Update4(row, col int, m, e, k, s, lpEmission float32) {
	max := m
	if e > max {
		max = e
	}
	if k > max {
		max = k
	}
	if s > max {
		max = s
	}
	o.fm.Set(row, col, max+lpEmission)

	var from uint8
	switch {
	case max == m:
		from = StateMatch
	case max == e:
		from = StateEventSplit
	case max == k:
		from = StateKmerSkip
	default:
		from = StatePreSoft
	}
	o.bm.Set(row, col, from)
}

// UpdateEnd implements Output. A candidate replaces the current best end
// only under strict improvement.
func (o *ViterbiOutput) UpdateEnd(v float32, row, col int) {
	if v > o.lpEnd {
		o.lpEnd = v
		o.endRow = row
		o.endCol = col
	}
}

// Get implements Output.
func (o *ViterbiOutput) Get(row, col int) float32 { return o.fm.At(row, col) }

// EndScore implements Output.
func (o *ViterbiOutput) EndScore() float32 { return o.lpEnd }

// NumRows implements Output.
func (o *ViterbiOutput) NumRows() int { return o.fm.NumRows() }

// NumColumns implements Output.
func (o *ViterbiOutput) NumColumns() int { return o.fm.NumCols() }

// EndCell returns the cell the best path ends in.
func (o *ViterbiOutput) EndCell() (row, col int) { return o.endRow, o.endCol }

// Backtrace returns the backtrace value recorded at (row, col).
func (o *ViterbiOutput) Backtrace(row, col int) uint8 { return o.bm.At(row, col) }
