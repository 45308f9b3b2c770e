package pore

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/grailbio/base/log"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// GaussianParams describes the expected current distribution of one kmer.
type GaussianParams struct {
	Mean float64
	Stdv float64
}

// Model holds the per-kmer emission parameters for one strand, plus the
// per-read calibration terms fitted by the caller. Level lookups always go
// through ScaledParams so the calibration is applied consistently.
type Model struct {
	// K is the kmer length. The Levels table has 4^K entries, indexed by
	// KmerRank.
	K      int
	Levels []GaussianParams

	// Per-read calibration. Scale/Shift map model levels onto the read's
	// current range, Var widens the model deviations, Drift is removed from
	// event levels as a linear function of time.
	Scale float64
	Shift float64
	Drift float64
	Var   float64
}

// NewModel returns a model over 4^k kmers with identity calibration.
func NewModel(k int, levels []GaussianParams) *Model {
	if len(levels) != 1<<(2*uint(k)) {
		log.Panicf("level table has %d entries, want %d for k=%d", len(levels), 1<<(2*uint(k)), k)
	}
	return &Model{K: k, Levels: levels, Scale: 1, Var: 1}
}

// ScaledParams returns the rank's emission parameters with the read
// calibration applied.
func (m *Model) ScaledParams(rank uint32) GaussianParams {
	p := m.Levels[rank]
	return GaussianParams{
		Mean: p.Mean*m.Scale + m.Shift,
		Stdv: p.Stdv * m.Var,
	}
}

// LoadModel reads a pore model table: one "kmer<TAB>level_mean<TAB>level_stdv"
// line per kmer, any header or comment lines ignored. Paths ending in .gz are
// decompressed on the fly. The kmer length is taken from the first data line
// and every kmer must appear exactly once.
func LoadModel(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open pore model")
	}
	defer f.Close() // nolint: errcheck

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrapf(err, "gzip %s", path)
		}
		defer gz.Close() // nolint: errcheck
		r = gz
	}
	return parseModel(r, path)
}

func parseModel(r io.Reader, path string) (*Model, error) {
	var (
		k      int
		levels []GaussianParams
		seen   []bool
		n      int
	)
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		text := scanner.Text()
		if len(text) == 0 || asciiToBaseMap[text[0]] == invalidBaseBits {
			// Header or comment line.
			continue
		}
		fields := strings.Split(text, "\t")
		if len(fields) < 3 {
			return nil, errors.Errorf("%s:%d: expected 'kmer<TAB>mean<TAB>stdv', found %q", path, line, text)
		}
		if levels == nil {
			k = len(fields[0])
			levels = make([]GaussianParams, 1<<(2*uint(k)))
			seen = make([]bool, len(levels))
		}
		if len(fields[0]) != k {
			return nil, errors.Errorf("%s:%d: kmer %q does not have length %d", path, line, fields[0], k)
		}
		rank := KmerRank(fields[0])
		mean, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d: level mean", path, line)
		}
		stdv, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d: level stdv", path, line)
		}
		if seen[rank] {
			return nil, errors.Errorf("%s:%d: duplicate kmer %q", path, line, fields[0])
		}
		seen[rank] = true
		n++
		levels[rank] = GaussianParams{Mean: mean, Stdv: stdv}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	if levels == nil {
		return nil, errors.Errorf("%s: no kmer lines found", path)
	}
	if n != len(levels) {
		return nil, errors.Errorf("%s: found %d of %d expected kmers", path, n, len(levels))
	}
	return NewModel(k, levels), nil
}
