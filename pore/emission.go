package pore

import (
	"gonum.org/v1/gonum/stat/distuv"
)

// eventInsertStretch widens the emission distribution for event split
// states: an extra observation of a kmer the pore has already reported tends
// to sit further from the model level than the first one.
const eventInsertStretch = 1.75

// logBackgroundProb is the flat log-density assigned to an event emitted by
// the flanking background state. The background has no level model of its
// own; a constant keeps the flank score a pure function of flank length.
const logBackgroundProb = -3.0

// LogMatchProb returns the log-probability of observing event eventIdx given
// that the pore holds the kmer with the given rank.
func (r *Read) LogMatchProb(rank uint32, eventIdx int, strand Strand) float32 {
	p := r.Models[strand].ScaledParams(rank)
	n := distuv.Normal{Mu: p.Mean, Sigma: p.Stdv}
	return float32(n.LogProb(r.DriftCorrectedLevel(eventIdx, strand)))
}

// LogEventInsertProb returns the log-probability of observing event eventIdx
// as a repeated observation of the kmer with the given rank.
func (r *Read) LogEventInsertProb(rank uint32, eventIdx int, strand Strand) float32 {
	p := r.Models[strand].ScaledParams(rank)
	n := distuv.Normal{Mu: p.Mean, Sigma: p.Stdv * eventInsertStretch}
	return float32(n.LogProb(r.DriftCorrectedLevel(eventIdx, strand)))
}

// LogBackgroundProb returns the log-probability of event eventIdx under the
// flanking background model.
func (r *Read) LogBackgroundProb(eventIdx int, strand Strand) float32 {
	return logBackgroundProb
}

// SkipProbability estimates the probability that the transition between the
// kmers at positions ki and kj of seq skips an event, from the similarity of
// their scaled expected levels.
func (r *Read) SkipProbability(seq string, ki, kj int, strand Strand) float64 {
	m := r.Models[strand]
	levelI := m.ScaledParams(r.KmerRank(seq, ki, strand)).Mean
	levelJ := m.ScaledParams(r.KmerRank(seq, kj, strand)).Mean
	return r.Params[strand].SkipProbability(levelI, levelJ)
}
