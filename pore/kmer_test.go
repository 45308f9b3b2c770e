package pore

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestKmerRank(t *testing.T) {
	expect.EQ(t, KmerRank("A"), uint32(0))
	expect.EQ(t, KmerRank("T"), uint32(3))
	expect.EQ(t, KmerRank("ACGT"), uint32(0x1b))
	expect.EQ(t, KmerRank("acgt"), uint32(0x1b))
	expect.EQ(t, KmerRank("TTTTT"), uint32(1<<10-1))
}

func TestReverseComplementRank(t *testing.T) {
	expect.EQ(t, ReverseComplementRank(KmerRank("AC"), 2), KmerRank("GT"))
	expect.EQ(t, ReverseComplementRank(KmerRank("AACGT"), 5), KmerRank("ACGTT"))
	// ACGT is its own reverse complement.
	expect.EQ(t, ReverseComplementRank(KmerRank("ACGT"), 4), KmerRank("ACGT"))

	// Double application is the identity.
	for rank := uint32(0); rank < 64; rank++ {
		expect.EQ(t, ReverseComplementRank(ReverseComplementRank(rank, 3), 3), rank)
	}
}
