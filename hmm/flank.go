package hmm

import (
	"math"

	"github.com/grailbio/base/log"
)

// MakePreFlanking returns a vector of numEvents+1 log-probabilities of
// treating the first i events of the window as unaligned background.
// Index 0 commits to the first aligned block immediately; each further index
// folds one more leading event into the background chain, so the values are
// non-increasing.
func MakePreFlanking(in Input, numEvents int) []float32 {
	if numEvents < 1 {
		log.Panicf("pre flank requires a non-empty event window, got %d events", numEvents)
	}
	params := in.params()
	preFlank := make([]float32, numEvents+1)

	// No events skipped.
	preFlank[0] = float32(math.Log(params.StartToPre))

	// Skipping exactly the first event, including the transitions into and
	// out of the background state.
	preFlank[1] = float32(math.Log(1-params.StartToPre)) +
		in.Read.LogBackgroundProb(in.EventStart, in.Strand) +
		float32(math.Log(1-params.PreSelf))

	// Each further event extends the background chain by one self-transition.
	for i := 2; i < len(preFlank); i++ {
		eventIdx := in.EventStart + (i-1)*in.EventStride
		preFlank[i] = float32(math.Log(params.PreSelf)) +
			in.Read.LogBackgroundProb(eventIdx, in.Strand) +
			preFlank[i-1]
	}
	return preFlank
}

// MakePostFlanking returns a vector of numEvents log-probabilities;
// postFlank[i] is the log-probability that the i-th event is the last one
// aligned and every later event is emitted by the background. It needs at
// least two events for its base cases.
func MakePostFlanking(in Input, numEvents int) []float32 {
	if numEvents < 2 {
		log.Panicf("post flank requires at least 2 events, got %d", numEvents)
	}
	params := in.params()
	postFlank := make([]float32, numEvents)

	// All events aligned.
	postFlank[numEvents-1] = float32(math.Log(params.StartToPre))

	// All events aligned but the last one.
	lastIdx := in.EventStart + (numEvents-1)*in.EventStride
	if lastIdx != in.EventStop {
		log.Panicf("window tail event %d does not match declared stop %d", lastIdx, in.EventStop)
	}
	postFlank[numEvents-2] = float32(math.Log(1-params.StartToPre)) +
		in.Read.LogBackgroundProb(lastIdx, in.Strand) +
		float32(math.Log(1-params.PreSelf))

	for i := numEvents - 3; i >= 0; i-- {
		eventIdx := in.EventStart + (i+1)*in.EventStride
		postFlank[i] = float32(math.Log(params.PreSelf)) +
			in.Read.LogBackgroundProb(eventIdx, in.Strand) +
			postFlank[i+1]
	}
	return postFlank
}
