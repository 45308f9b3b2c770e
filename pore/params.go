package pore

import "math"

// TransitionParams is the fixed, model-wide parameter set of the alignment
// HMM for one strand. The first four fields are plain probabilities; the skip
// table maps the absolute difference between two kmers' scaled expected
// levels to the probability that the second kmer produces no event of its
// own. Training these values is the calibration pipeline's job; the engine
// only reads them.
type TransitionParams struct {
	// MatchToEventNotKmer is the probability of leaving the match state onto
	// a path that is not a kmer advance, i.e. into an event split.
	MatchToEventNotKmer float64
	// EventToEvent is the probability of staying in the event split state.
	EventToEvent float64
	// StartToPre is the probability of committing to the first aligned block
	// immediately rather than emitting a flanking background event.
	StartToPre float64
	// PreSelf is the self-transition probability of the flanking background
	// state.
	PreSelf float64

	// SkipProbs[i] is the skip probability for level differences in
	// [i*SkipBinWidth, (i+1)*SkipBinWidth); differences past the last bin
	// clamp to it. Values are non-increasing: similar levels are easy to
	// merge into one event, so they are the most likely to be skipped.
	SkipBinWidth float64
	SkipProbs    []float64
}

// DefaultTransitionParams returns an untrained parameter set that is usable
// before per-read calibration has run.
var DefaultTransitionParams = func() TransitionParams {
	p := TransitionParams{
		MatchToEventNotKmer: 0.1,
		EventToEvent:        0.3,
		StartToPre:          0.2,
		PreSelf:             0.2,
		SkipBinWidth:        0.5,
		SkipProbs:           make([]float64, 30),
	}
	for i := range p.SkipProbs {
		d := float64(i) * p.SkipBinWidth
		p.SkipProbs[i] = math.Max(0.35*math.Exp(-d/2), 0.002)
	}
	return p
}()

// SkipProbability returns the probability that the transition between two
// kmers with the given scaled expected levels skips an event.
func (p TransitionParams) SkipProbability(levelI, levelJ float64) float64 {
	bin := int(math.Abs(levelI-levelJ) / p.SkipBinWidth)
	if bin >= len(p.SkipProbs) {
		bin = len(p.SkipProbs) - 1
	}
	return p.SkipProbs[bin]
}
