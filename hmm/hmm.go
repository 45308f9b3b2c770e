// Package hmm aligns a window of segmented pore events against a candidate
// nucleotide sequence with a three-state-per-kmer profile hidden Markov
// model. The Forward strategy yields the total log-probability that the
// sequence generated the events; the Viterbi strategy yields the single best
// alignment path and its score.
//
// The lattice has one row per event plus a sentinel start row, and one
// three-column block per kmer plus two sentinel terminal blocks. Each cell
// depends only on cells earlier in row-major, then block-major order, so one
// forward sweep fills the whole lattice.
package hmm

import (
	"github.com/grailbio/base/log"

	"github.com/strandlab/eventalign/pore"
)

// Per-block state ordering. Within block b, columns [3b, 3b+3) hold the
// match, event split and kmer skip states in that order. StatePreSoft only
// appears in backtrace cells, marking entry from the flanking background.
const (
	StateMatch uint8 = iota
	StateEventSplit
	StateKmerSkip
	StatePreSoft
)

// NumStates is the number of live states per block.
const NumStates = 3

// Input describes one alignment instance: which read, which strand, and
// which slice of its events. EventStride is +1 or -1, so a window may run in
// either read orientation. The engine treats all of it as read-only.
type Input struct {
	Read        *pore.Read
	Strand      pore.Strand
	EventStart  int
	EventStop   int
	EventStride int
}

// NumEvents returns the number of events in the window.
func (in Input) NumEvents() int {
	n := (in.EventStop-in.EventStart)*in.EventStride + 1
	if in.EventStride != 1 && in.EventStride != -1 || n <= 0 {
		log.Panicf("inconsistent event window [%d, %d] stride %d",
			in.EventStart, in.EventStop, in.EventStride)
	}
	return n
}

// EventIndex maps a lattice row to the index of the event it consumes.
func (in Input) EventIndex(row int) int {
	return in.EventStart + (row-1)*in.EventStride
}

func (in Input) params() pore.TransitionParams {
	return in.Read.Params[in.Strand]
}

// NumKmers returns the number of kmer windows in the candidate sequence.
func (in Input) NumKmers(seq string) int {
	n := len(seq) - in.Read.Models[in.Strand].K + 1
	if n < 1 {
		log.Panicf("sequence of length %d is shorter than one kmer", len(seq))
	}
	return n
}
