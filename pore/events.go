package pore

// Strand selects one of the two measurement passes of a read.
type Strand uint8

const (
	// Template is the forward pass of the strand through the pore.
	Template Strand = iota
	// Complement is the reverse pass, measured on the complement strand.
	Complement
	// NumStrands is the number of per-read measurement passes.
	NumStrands
)

// Event is one segmented signal sample: the summary statistics of a
// contiguous slice of raw current. Events are ordered by Start time and
// immutable once segmented.
type Event struct {
	// Mean is the average current level of the segment, in picoamps.
	Mean float64
	// Stdv is the current level standard deviation within the segment.
	Stdv float64
	// Start is the segment start time in seconds, used for drift correction.
	Start float64
}

// Read bundles the per-strand inputs the alignment engine consumes: the
// segmented events, the calibrated pore model and the trained transition
// parameters. A Read is assembled by the caller and treated as read-only by
// the engine, so one Read may back concurrent alignments.
type Read struct {
	Events [NumStrands][]Event
	Models [NumStrands]*Model
	Params [NumStrands]TransitionParams
}

// KmerRank returns the model rank of the kmer starting at position i of seq
// for the given strand. The complement strand measures the reverse
// complement of the candidate sequence, so its rank is flipped.
func (r *Read) KmerRank(seq string, i int, strand Strand) uint32 {
	k := r.Models[strand].K
	rank := KmerRank(seq[i : i+k])
	if strand == Complement {
		return ReverseComplementRank(rank, k)
	}
	return rank
}

// DriftCorrectedLevel returns the event's mean current with the model's
// per-read drift term removed.
func (r *Read) DriftCorrectedLevel(eventIdx int, strand Strand) float64 {
	ev := r.Events[strand][eventIdx]
	return ev.Mean - r.Models[strand].Drift*ev.Start
}
