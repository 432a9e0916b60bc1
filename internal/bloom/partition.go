// Copyright (c) 2014 Dataence, LLC. All rights reserved.
// Copyright (c) 2020 Blocknative Corporation. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bloom

import "math"

const (
	// fillTarget is P, the fraction of bits-set at which a generation is
	// declared full.
	fillTarget = 0.5

	// baseSize is generation 0's target memory footprint, in bytes.
	baseSize = 2048

	// itemGrowthRatio is r_n, how much larger (in expected items) each new
	// generation is than the previous one.
	itemGrowthRatio = 2.0

	// errorTighteningRatio is r_e, how much tighter each new generation's
	// per-filter error target is than the previous one.
	errorTighteningRatio = 0.85

	// MinError is the smallest ε a caller may request.
	MinError = 1e-10

	// DefaultError is ε when the caller never calls SetError.
	DefaultError = 0.003
)

// generation is one partitioned Bloom filter in a scalable chain.
type generation struct {
	s        uint64   // bits per partition
	k        uint32   // number of partitions / hash functions
	b        uint64   // total 1-bits set across all partitions
	bmax     uint64   // 1-bit cap: growth triggers at b >= bmax
	c        uint64   // logical element count, legacy fillRatio path only
	parts    [][]byte // k partitions, each ceil(s/8) bytes
	next     *generation
	encoding uint64 // reserved for a future on-disk encoding; unused
}

// deriveParams computes (s, k, bmax) for generation idx of a chain whose
// user-chosen composed target is e. See spec.md §4.2 for the derivation;
// all logs bar the log2 in k are natural logs, and only s/k/bmax are
// rounded to integers.
func deriveParams(e float64, idx int) (s uint64, k uint32, bmax uint64) {
	fillLogProduct := math.Log(fillTarget) * math.Log(1-fillTarget)

	n0 := baseSize * 8 * (fillLogProduct / math.Abs(math.Log(e)))
	e0 := e * (1 - errorTighteningRatio) * 2

	n := n0 * math.Pow(itemGrowthRatio, float64(idx))
	ei := e0 * math.Pow(errorTighteningRatio, float64(idx))

	kf := math.Ceil(-math.Log2(ei))
	if kf < 1 {
		kf = 1
	}
	k = uint32(kf)

	m := n / (fillLogProduct / math.Abs(math.Log(ei)))

	sf := math.Floor(m / float64(k))
	if sf < 1 {
		sf = 1
	}
	s = uint64(sf)

	bmax = uint64(math.Floor(float64(s) * float64(k) * fillTarget))
	if bmax < 1 {
		bmax = 1
	}
	return s, k, bmax
}

// newGeneration allocates an empty generation with the given layout.
func newGeneration(s uint64, k uint32, bmax uint64) *generation {
	nbytes := (s + 7) / 8
	parts := make([][]byte, k)
	for i := range parts {
		parts[i] = make([]byte, nbytes)
	}
	return &generation{
		s:     s,
		k:     k,
		bmax:  bmax,
		parts: parts,
	}
}

// add sets the k bits derived from h and reports whether any of them were
// previously 0 (i.e. this element caused a bit transition).
func (g *generation) add(h uint64) bool {
	ix := newIndexer(h)
	var delta uint64
	for i := uint32(0); i < g.k; i++ {
		idx := reduce(ix.next(), g.s)
		byteIdx, bitIdx := idx>>3, idx&7
		mask := byte(1) << bitIdx
		if g.parts[i][byteIdx]&mask == 0 {
			delta++
		}
		g.parts[i][byteIdx] |= mask
	}
	g.b += delta
	g.c++
	return delta > 0
}

// contains tests the k bits derived from a pre-computed hash, returning
// false on the first 0 bit found. It never allocates.
func (g *generation) contains(h uint64) bool {
	ix := newIndexer(h)
	for i := uint32(0); i < g.k; i++ {
		idx := reduce(ix.next(), g.s)
		byteIdx, bitIdx := idx>>3, idx&7
		if g.parts[i][byteIdx]&(byte(1)<<bitIdx) == 0 {
			return false
		}
	}
	return true
}

// fillRatio is the legacy fill-ratio path, retained for parity with
// spec.md §4.2; production growth decisions use b vs bmax instead.
func (g *generation) fillRatio() float64 {
	return 1 - math.Exp(-float64(g.c)/float64(g.s))
}

// full reports whether this generation has reached its bit-set cap and
// should no longer receive inserts.
func (g *generation) full() bool {
	return g.b >= g.bmax
}
