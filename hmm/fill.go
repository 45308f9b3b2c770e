package hmm

import (
	"math"

	"github.com/grailbio/base/log"
)

// debugFill gates per-cell trace output. The dumps are far too hot for
// production runs, so the gate is a compile-time constant.
const debugFill = false

func validateShape(seq string, in Input, out Output) (numBlocks, numEvents int) {
	if out.NumColumns()%NumStates != 0 {
		log.Panicf("lattice has %d columns, not a multiple of %d", out.NumColumns(), NumStates)
	}
	numBlocks = out.NumColumns() / NumStates
	if numBlocks-2 != in.NumKmers(seq) {
		log.Panicf("lattice has %d kmer blocks, sequence has %d kmers", numBlocks-2, in.NumKmers(seq))
	}
	numEvents = in.NumEvents()
	if out.NumRows() != numEvents+1 {
		log.Panicf("lattice has %d rows, window has %d events", out.NumRows(), numEvents)
	}
	return numBlocks, numEvents
}

// FillLocal runs the recursion with a soft-clipped tail: at every row the
// final kmer's block may hand off to the end state through the post-flank
// background, so the alignment may stop before consuming the whole window.
// The strategy is left populated for the caller to read back.
func FillLocal(seq string, in Input, out Output) float32 {
	numBlocks, numEvents := validateShape(seq, in, out)
	numKmers := numBlocks - 2
	lastKmerIdx := numKmers - 1

	transitions := CalculateTransitions(seq, in)
	ranks := kmerRanks(seq, in)

	// The pre flank is part of the local model but entry through it is
	// deliberately disabled below; see the match state update.
	preFlank := MakePreFlanking(in, numEvents)
	postFlank := MakePostFlanking(in, numEvents)

	// Uniform prior over which kmer the alignment ends in. The matching
	// entry prior is what the disabled start transition would use.
	lpMS := float32(math.Log(1.0 / float64(numKmers)))

	for row := 1; row < out.NumRows(); row++ {
		eventIdx := in.EventIndex(row)

		// Block 0 is the start sentinel and the last block the end sentinel;
		// neither is filled by the recursion.
		for block := 1; block < numBlocks-1; block++ {
			kmerIdx := block - 1
			bt := transitions[kmerIdx]

			prevBlockOffset := NumStates * (block - 1)
			currBlockOffset := NumStates * block

			rank := ranks[kmerIdx]
			lpEmissionM := in.Read.LogMatchProb(rank, eventIdx, in.Strand)
			lpEmissionE := in.Read.LogEventInsertProb(rank, eventIdx, in.Strand)

			// Match: advance one kmer and consume one event.
			mM := bt.MM + out.Get(row-1, prevBlockOffset+int(StateMatch))
			mE := bt.EM + out.Get(row-1, prevBlockOffset+int(StateEventSplit))
			mK := bt.KM + out.Get(row-1, prevBlockOffset+int(StateKmerSkip))
			// Entry from the pre flank into an arbitrary kmer is disabled:
			// alignments must enter through the first kmer.
			mS := negInf
			out.Update4(row, currBlockOffset+int(StateMatch), mM, mE, mK, mS, lpEmissionM)

			// Event split: consume one event without advancing the kmer.
			eM := bt.ME + out.Get(row-1, currBlockOffset+int(StateMatch))
			eE := bt.EE + out.Get(row-1, currBlockOffset+int(StateEventSplit))
			out.Update4(row, currBlockOffset+int(StateEventSplit), eM, eE, negInf, negInf, lpEmissionE)

			// Kmer skip: advance one kmer without consuming an event, hence
			// the same-row predecessors and the zero emission term.
			kM := bt.MK + out.Get(row, prevBlockOffset+int(StateMatch))
			kK := bt.KK + out.Get(row, prevBlockOffset+int(StateKmerSkip))
			out.Update4(row, currBlockOffset+int(StateKmerSkip), kM, negInf, kK, negInf, 0)

			// The final kmer may end the alignment here, absorbing the
			// remaining events into the post flank.
			if kmerIdx == lastKmerIdx {
				lpM := lpMS + out.Get(row, currBlockOffset+int(StateMatch)) + postFlank[row-1]
				lpE := lpMS + out.Get(row, currBlockOffset+int(StateEventSplit)) + postFlank[row-1]
				lpK := lpMS + out.Get(row, currBlockOffset+int(StateKmerSkip)) + postFlank[row-1]

				out.UpdateEnd(lpM, row, currBlockOffset+int(StateMatch))
				out.UpdateEnd(lpE, row, currBlockOffset+int(StateEventSplit))
				out.UpdateEnd(lpK, row, currBlockOffset+int(StateKmerSkip))
			}

			if debugFill {
				log.Debug.Printf("row %d block %d: m [%.3f %.3f %.3f] e [%.3f %.3f] k [%.3f %.3f] em [%.2f %.2f] flank [%.2f %.2f] -> [%.2f %.2f %.2f]",
					row, block, bt.MM, bt.ME, bt.MK, bt.EM, bt.EE, bt.KM, bt.KK,
					lpEmissionM, lpEmissionE, preFlank[row-1], postFlank[row-1],
					out.Get(row, currBlockOffset+int(StateMatch)),
					out.Get(row, currBlockOffset+int(StateEventSplit)),
					out.Get(row, currBlockOffset+int(StateKmerSkip)))
			}
		}
	}
	return out.EndScore()
}

// FillGlobal runs the recursion without early termination: the alignment
// must consume the full event window and end in the final kmer's match
// state, where the end score is read once after the sweep.
func FillGlobal(seq string, in Input, out Output) float32 {
	numBlocks, _ := validateShape(seq, in, out)

	transitions := CalculateTransitions(seq, in)
	ranks := kmerRanks(seq, in)

	for row := 1; row < out.NumRows(); row++ {
		eventIdx := in.EventIndex(row)

		for block := 1; block < numBlocks-1; block++ {
			kmerIdx := block - 1
			bt := transitions[kmerIdx]

			prevBlockOffset := NumStates * (block - 1)
			currBlockOffset := NumStates * block

			rank := ranks[kmerIdx]
			lpEmissionM := in.Read.LogMatchProb(rank, eventIdx, in.Strand)
			lpEmissionE := in.Read.LogEventInsertProb(rank, eventIdx, in.Strand)

			mM := bt.MM + out.Get(row-1, prevBlockOffset+int(StateMatch))
			mE := bt.EM + out.Get(row-1, prevBlockOffset+int(StateEventSplit))
			mK := bt.KM + out.Get(row-1, prevBlockOffset+int(StateKmerSkip))
			out.Update4(row, currBlockOffset+int(StateMatch), mM, mE, mK, negInf, lpEmissionM)

			eM := bt.ME + out.Get(row-1, currBlockOffset+int(StateMatch))
			eE := bt.EE + out.Get(row-1, currBlockOffset+int(StateEventSplit))
			out.Update4(row, currBlockOffset+int(StateEventSplit), eM, eE, negInf, negInf, lpEmissionE)

			kM := bt.MK + out.Get(row, prevBlockOffset+int(StateMatch))
			kK := bt.KK + out.Get(row, prevBlockOffset+int(StateKmerSkip))
			out.Update4(row, currBlockOffset+int(StateKmerSkip), kM, negInf, kK, negInf, 0)
		}
	}

	lastEventRow := out.NumRows() - 1
	lastAlignedBlock := numBlocks - 2
	matchStateLastBlock := NumStates*lastAlignedBlock + int(StateMatch)
	out.UpdateEnd(out.Get(lastEventRow, matchStateLastBlock), lastEventRow, matchStateLastBlock)
	return out.EndScore()
}
