package pore

import (
	"github.com/grailbio/base/log"
)

const invalidBaseBits = uint8(255)

var asciiToBaseMap [256]uint8

func init() {
	for i := range asciiToBaseMap {
		asciiToBaseMap[i] = invalidBaseBits
	}
	asciiToBaseMap['A'] = 0
	asciiToBaseMap['a'] = 0
	asciiToBaseMap['C'] = 1
	asciiToBaseMap['c'] = 1
	asciiToBaseMap['G'] = 2
	asciiToBaseMap['g'] = 2
	asciiToBaseMap['T'] = 3
	asciiToBaseMap['t'] = 3
}

// KmerRank returns the 2-bit packed encoding of an ACGT kmer. A maps to 0, C
// to 1, G to 2 and T to 3, with the first base in the high bits. The rank
// indexes the per-kmer tables of a Model, so a kmer containing an ambiguous
// base is a caller bug.
func KmerRank(kmer string) uint32 {
	var rank uint32
	for i := 0; i < len(kmer); i++ {
		b := asciiToBaseMap[kmer[i]]
		if b == invalidBaseBits {
			log.Panicf("ambiguous base %q in kmer %q", kmer[i], kmer)
		}
		rank = (rank << 2) | uint32(b)
	}
	return rank
}

// ReverseComplementRank returns the rank of the reverse complement of the
// k-length kmer encoded by rank.
func ReverseComplementRank(rank uint32, k int) uint32 {
	var rc uint32
	for i := 0; i < k; i++ {
		rc = (rc << 2) | (3 - (rank & 3))
		rank >>= 2
	}
	return rc
}
