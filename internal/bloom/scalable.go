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

// Package bloom implements a scalable Bloom filter: a chain of
// partitioned Bloom filters in which new generations are appended as
// earlier ones fill, each sized and tuned so the composed false-positive
// probability stays bounded by a user-supplied target regardless of how
// many elements are inserted.
package bloom

import "math"

// ScalableFilter is a chain of partitioned Bloom filter generations
// sharing one target false-positive rate ε. The zero value is not ready
// to use; construct with New.
type ScalableFilter struct {
	e          float64
	numfilters int
	first      *generation
}

// New allocates an empty scalable filter with the default error rate.
// It does not allocate any generation: the first insert does that
// lazily, so a caller's SetError before the first Add can still take
// effect.
func New() *ScalableFilter {
	return &ScalableFilter{e: DefaultError}
}

// SetError sets the target composed false-positive rate. It is only
// permitted while the chain is empty; once the first generation exists,
// ε is frozen and SetError returns ErrFrozen. e must be >= MinError or
// SetError returns ErrTooSmall.
func (bf *ScalableFilter) SetError(e float64) error {
	if bf.first != nil {
		return ErrFrozen
	}
	if e < MinError {
		return ErrTooSmall
	}
	bf.e = e
	return nil
}

// Error returns the scalable filter's target composed false-positive
// rate.
func (bf *ScalableFilter) Error() float64 {
	return bf.e
}

// NumFilters returns the number of generations currently in the chain.
func (bf *ScalableFilter) NumFilters() int {
	return bf.numfilters
}

// Add inserts ele into the active (tail) generation, growing the chain
// first if the tail is already full. It reports whether the insert
// caused at least one bit transition in the tail generation.
func (bf *ScalableFilter) Add(ele []byte) bool {
	tail := bf.tail()
	h := hash64(ele)
	return tail.add(h)
}

// Contains reports whether ele may have been inserted. Membership across
// the chain is the logical OR of per-generation membership: an element
// added to any generation is reported present. False positives are
// possible; false negatives are not.
func (bf *ScalableFilter) Contains(ele []byte) bool {
	if bf.first == nil {
		return false
	}
	h := hash64(ele)
	for g := bf.first; g != nil; g = g.next {
		if g.contains(h) {
			return true
		}
	}
	return false
}

// Cardinality returns the Swamidass-Baldi estimate of the number of
// distinct elements inserted so far, summed across generations.
func (bf *ScalableFilter) Cardinality() uint64 {
	var total uint64
	for g := bf.first; g != nil; g = g.next {
		if g.bmax == 0 {
			continue
		}
		p := (float64(g.b) / float64(g.bmax)) * fillTarget
		if p >= 1 {
			p = 1 - machineEpsilon
		}
		n := math.Floor(float64(g.s)*-math.Log(1-p) + 0.5)
		total += uint64(n)
	}
	return total
}

// machineEpsilon bounds p away from 1 so -ln(1-p) never diverges.
const machineEpsilon = 1e-12

// Generations reports, for each generation in insertion order, its
// (k, s, b, bmax). It is intended for BFDEBUG and tests, not the hot
// path.
func (bf *ScalableFilter) Generations() []GenerationStats {
	stats := make([]GenerationStats, 0, bf.numfilters)
	for g := bf.first; g != nil; g = g.next {
		stats = append(stats, GenerationStats{K: g.k, S: g.s, B: g.b, BMax: g.bmax})
	}
	return stats
}

// GenerationStats is a read-only snapshot of one generation's parameters
// and fill state, as reported by BFDEBUG FILTER.
type GenerationStats struct {
	K    uint32
	S    uint64
	B    uint64
	BMax uint64
}

// tail returns the active generation, allocating generation 0 on the
// first call and appending a new generation whenever the current tail
// has reached its bit-set cap. The fullness check happens before the
// insert that will use the returned generation, so b may momentarily
// exceed bmax by at most k-1 once that insert completes; the next call
// to tail is what actually grows the chain.
func (bf *ScalableFilter) tail() *generation {
	if bf.first == nil {
		bf.first = bf.newGenerationAt(0)
		bf.numfilters = 1
		return bf.first
	}

	g := bf.first
	for g.next != nil {
		g = g.next
	}
	if g.full() {
		g.next = bf.newGenerationAt(bf.numfilters)
		bf.numfilters++
		return g.next
	}
	return g
}

func (bf *ScalableFilter) newGenerationAt(idx int) *generation {
	s, k, bmax := deriveParams(bf.e, idx)
	return newGeneration(s, k, bmax)
}

// Release drops the chain. Go's garbage collector reclaims the
// partitions and generations once nothing references them; Release
// exists so callers can express "this filter is done" explicitly and
// mirrors the teacher's explicit bloomRelease, which matters when a
// filter is the only thing keeping a very large byte allocation alive.
func (bf *ScalableFilter) Release() {
	bf.first = nil
	bf.numfilters = 0
}
