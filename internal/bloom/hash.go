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

import "github.com/spaolacci/murmur3"

// hashSeed fixes the element hash across hosts and runs: every generation
// of every filter derives its partition indices from the same 64-bit value,
// so changing the seed would change every filter's bit pattern.
const hashSeed = 0xc5fb9af2

// hash64 computes the element hash used to derive partition indices.
// It must be deterministic across hosts of the same endianness.
func hash64(ele []byte) uint64 {
	return murmur3.Sum64WithSeed(ele, hashSeed)
}

// indexer produces the k partition indices for one generation from a
// single 64-bit hash, using enhanced double hashing: before computing the
// i-th index, a holds the running accumulator; after use, a += b, b += i.
// This is Kirsch-Mitzenmacher's H(i) = a + b*i, perturbed per step so the
// k indices stay independent-looking without re-hashing.
type indexer struct {
	a, b uint32
	i    uint32
}

func newIndexer(h uint64) indexer {
	return indexer{
		a: uint32(h),
		b: uint32(h >> 32),
	}
}

// next returns the raw 32-bit accumulator for this step and advances the
// state for the following call.
func (ix *indexer) next() uint32 {
	a := ix.a
	ix.a += ix.b
	ix.b += ix.i
	ix.i++
	return a
}

// reduce maps a 32-bit value into [0, s) by unbiased multiplicative
// reduction: idx = (x * s) >> 32. Never use "% s" here -- it is both
// slower and biased for non-power-of-two s.
func reduce(x uint32, s uint64) uint64 {
	return (uint64(x) * s) >> 32
}
