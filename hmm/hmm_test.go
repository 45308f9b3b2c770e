package hmm

import (
	"github.com/strandlab/eventalign/pore"
)

// testParams are the fixed toy transition parameters used across the package
// tests.
func testParams() pore.TransitionParams {
	return pore.TransitionParams{
		MatchToEventNotKmer: 0.1,
		EventToEvent:        0.3,
		StartToPre:          0.2,
		PreSelf:             0.2,
		SkipBinWidth:        0.5,
		SkipProbs:           []float64{0.5, 0.3, 0.1, 0.05, 0.01, 0.005, 0.002},
	}
}

// testEventMeans holds a window that tracks the levels of "ACG" with one
// split event on the first kmer and one slightly off event on the last.
var testEventMeans = []float64{60.1, 59.7, 70.3, 79.8, 80.6}

// testRead builds a read over a k=1 model with one level per base and the
// first numEvents test events on the template strand.
func testRead(numEvents int) *pore.Read {
	model := pore.NewModel(1, []pore.GaussianParams{
		{Mean: 60, Stdv: 1}, // A
		{Mean: 70, Stdv: 1}, // C
		{Mean: 80, Stdv: 1}, // G
		{Mean: 90, Stdv: 1}, // T
	})
	r := &pore.Read{}
	r.Models[pore.Template] = model
	r.Params[pore.Template] = testParams()
	for i := 0; i < numEvents; i++ {
		r.Events[pore.Template] = append(r.Events[pore.Template], pore.Event{
			Mean:  testEventMeans[i%len(testEventMeans)],
			Stdv:  1,
			Start: 0.01 * float64(i),
		})
	}
	return r
}

// testInput wraps a read's full template event window.
func testInput(r *pore.Read) Input {
	return Input{
		Read:        r,
		Strand:      pore.Template,
		EventStart:  0,
		EventStop:   len(r.Events[pore.Template]) - 1,
		EventStride: 1,
	}
}
