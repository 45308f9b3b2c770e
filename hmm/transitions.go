package hmm

import "math"

// BlockTransitions holds the seven log transition probabilities governing
// movement into one kmer block. Naming follows source-then-destination:
// MK is match to kmer skip, EM is event split to match, and so on.
type BlockTransitions struct {
	MM, ME, MK float32
	EE, EM     float32
	KK, KM     float32
}

// CalculateTransitions derives the per-block transition table for the
// NumKmers(seq) blocks of the candidate sequence. Block 0 has no
// predecessor, so its skip probability is zero; every later block's comes
// from the skip estimate between it and the previous kmer. The three
// probabilities leaving each source state sum to one before the log
// transform.
func CalculateTransitions(seq string, in Input) []BlockTransitions {
	params := in.params()
	numKmers := in.NumKmers(seq)

	transitions := make([]BlockTransitions, numKmers)
	for ki := 0; ki < numKmers; ki++ {
		pSkip := 0.0
		if ki > 0 {
			pSkip = in.Read.SkipProbability(seq, ki-1, ki, in.Strand)
		}

		// From the match state of the previous block.
		pMK := pSkip
		pME := (1 - pSkip) * params.MatchToEventNotKmer
		pMM := 1 - pME - pMK

		// From the event split state. Event split cannot reach kmer skip.
		pEE := params.EventToEvent
		pEM := 1 - pEE

		// From the kmer skip state. Kmer skip cannot reach event split.
		pKK := pSkip
		pKM := 1 - pSkip

		transitions[ki] = BlockTransitions{
			MM: float32(math.Log(pMM)),
			ME: float32(math.Log(pME)),
			MK: float32(math.Log(pMK)),
			EE: float32(math.Log(pEE)),
			EM: float32(math.Log(pEM)),
			KK: float32(math.Log(pKK)),
			KM: float32(math.Log(pKM)),
		}
	}
	return transitions
}

func kmerRanks(seq string, in Input) []uint32 {
	ranks := make([]uint32, in.NumKmers(seq))
	for ki := range ranks {
		ranks[ki] = in.Read.KmerRank(seq, ki, in.Strand)
	}
	return ranks
}
