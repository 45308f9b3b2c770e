package hmm

import (
	"fmt"
	"strings"
)

// FloatMatrix is a flat row-major score lattice. The engine's access pattern
// only ever touches the current and previous row and the current and
// previous block, so a single contiguous buffer keeps those accesses within
// a few cache lines.
type FloatMatrix struct {
	nRow, nCol int
	data       []float32 // row-major nRow*nCol array.
}

// NewFloatMatrix returns an n x m matrix.
func NewFloatMatrix(n, m int) *FloatMatrix {
	return &FloatMatrix{
		nRow: n,
		nCol: m,
		data: make([]float32, n*m),
	}
}

// NumRows returns the number of rows.
func (m *FloatMatrix) NumRows() int { return m.nRow }

// NumCols returns the number of columns.
func (m *FloatMatrix) NumCols() int { return m.nCol }

// At returns the value stored at (row, col).
func (m *FloatMatrix) At(row, col int) float32 {
	return m.data[row*m.nCol+col]
}

// Set stores v at (row, col).
func (m *FloatMatrix) Set(row, col int, v float32) {
	m.data[row*m.nCol+col] = v
}

// String returns a string representation of the matrix.
func (m *FloatMatrix) String() string {
	lines := []string{"\n"}
	for i := 0; i < m.nRow; i++ {
		var parts []string
		for j := 0; j < m.nCol; j++ {
			parts = append(parts, fmt.Sprintf("%8.2f", m.data[i*m.nCol+j]))
		}
		lines = append(lines, strings.Join(parts, " | "))
	}
	return strings.Join(lines, "\n")
}

// ByteMatrix is a flat row-major byte matrix, shaped like its FloatMatrix
// counterpart. The Viterbi strategy uses one as its backtrace store.
type ByteMatrix struct {
	nRow, nCol int
	data       []uint8
}

// NewByteMatrix returns an n x m byte matrix.
func NewByteMatrix(n, m int) *ByteMatrix {
	return &ByteMatrix{
		nRow: n,
		nCol: m,
		data: make([]uint8, n*m),
	}
}

// NumRows returns the number of rows.
func (m *ByteMatrix) NumRows() int { return m.nRow }

// NumCols returns the number of columns.
func (m *ByteMatrix) NumCols() int { return m.nCol }

// At returns the value stored at (row, col).
func (m *ByteMatrix) At(row, col int) uint8 {
	return m.data[row*m.nCol+col]
}

// Set stores v at (row, col).
func (m *ByteMatrix) Set(row, col int, v uint8) {
	m.data[row*m.nCol+col] = v
}
