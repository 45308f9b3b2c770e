package hmm

// AlignmentEntry is one step of a decoded Viterbi path: which event was
// being consumed while the model sat in State at kmer KmerIdx. Kmer skip
// steps consume no event; their EventIdx is the next unconsumed event.
type AlignmentEntry struct {
	EventIdx int
	KmerIdx  int
	State    uint8
}

// AlignLocal allocates lattice and backtrace storage for one alignment
// instance, runs the local Viterbi fill, and walks the backtrace from the
// best end cell to the start sentinel. It returns the decoded path in
// event order and the path's score.
func AlignLocal(seq string, in Input) ([]AlignmentEntry, float32) {
	numRows := in.NumEvents() + 1
	numCols := (in.NumKmers(seq) + 2) * NumStates
	out := NewViterbiOutput(NewFloatMatrix(numRows, numCols), NewByteMatrix(numRows, numCols))
	score := FillLocal(seq, in, out)
	return walkBacktrace(in, out), score
}

// walkBacktrace reconstructs the best path recorded by a Viterbi fill.
// Match steps came from the previous block one row up, event split steps
// from the same block one row up, and kmer skip steps from the previous
// block in the same row; the walk ends at the sentinel start block or at a
// flank entry marker.
func walkBacktrace(in Input, out *ViterbiOutput) []AlignmentEntry {
	row, col := out.EndCell()

	var reversed []AlignmentEntry
	for row > 0 {
		block := col / NumStates
		if block == 0 {
			break
		}
		state := uint8(col % NumStates)
		reversed = append(reversed, AlignmentEntry{
			EventIdx: in.EventIndex(row),
			KmerIdx:  block - 1,
			State:    state,
		})

		from := out.Backtrace(row, col)
		if from == StatePreSoft {
			break
		}
		switch state {
		case StateMatch:
			row, col = row-1, NumStates*(block-1)+int(from)
		case StateEventSplit:
			row, col = row-1, NumStates*block+int(from)
		case StateKmerSkip:
			col = NumStates*(block-1) + int(from)
		}
	}

	path := make([]AlignmentEntry, len(reversed))
	for i, entry := range reversed {
		path[len(path)-1-i] = entry
	}
	return path
}
