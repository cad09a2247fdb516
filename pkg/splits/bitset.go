/*
 * Copyright (C) 2022 IBM, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 *
 */

package splits

import (
	"math/bits"
)

// Bitset is a fixed-capacity set of small non-negative integers, used to
// hold leaf index sets during split enumeration and distance scoring.
type Bitset []uint64

func NewBitset(n int) Bitset {
	return make(Bitset, (n+63)/64)
}

func (b Bitset) Set(i int)      { b[i/64] |= 1 << uint(i%64) }
func (b Bitset) Has(i int) bool { return b[i/64]&(1<<uint(i%64)) != 0 }

func (b Bitset) Count() int {
	total := 0
	for _, w := range b {
		total += bits.OnesCount64(w)
	}
	return total
}

func (b Bitset) Clone() Bitset {
	c := make(Bitset, len(b))
	copy(c, b)
	return c
}

// OrInPlace adds every member of o to b.
func (b Bitset) OrInPlace(o Bitset) {
	for i := range o {
		b[i] |= o[i]
	}
}

func (b Bitset) Intersect(o Bitset) Bitset {
	c := make(Bitset, len(b))
	for i := range b {
		c[i] = b[i] & o[i]
	}
	return c
}

func (b Bitset) Xor(o Bitset) Bitset {
	c := make(Bitset, len(b))
	for i := range b {
		c[i] = b[i] ^ o[i]
	}
	return c
}

func (b Bitset) IntersectCount(o Bitset) int {
	total := 0
	for i := range b {
		total += bits.OnesCount64(b[i] & o[i])
	}
	return total
}

func (b Bitset) XorCount(o Bitset) int {
	total := 0
	for i := range b {
		total += bits.OnesCount64(b[i] ^ o[i])
	}
	return total
}

// Complement returns the set of the first n integers not in b.
func (b Bitset) Complement(n int) Bitset {
	c := make(Bitset, len(b))
	for i := range b {
		c[i] = ^b[i]
	}
	if n%64 != 0 {
		c[len(c)-1] &= (1 << uint(n%64)) - 1
	}
	return c
}

func (b Bitset) Equal(o Bitset) bool {
	if len(b) != len(o) {
		return false
	}
	for i := range b {
		if b[i] != o[i] {
			return false
		}
	}
	return true
}

// IsSubset reports whether every member of b is in o.
func (b Bitset) IsSubset(o Bitset) bool {
	for i := range b {
		if b[i]&^o[i] != 0 {
			return false
		}
	}
	return true
}

// Key is a compact map key for deduplication.
func (b Bitset) Key() string {
	buf := make([]byte, 0, len(b)*8)
	for _, w := range b {
		for s := 0; s < 64; s += 8 {
			buf = append(buf, byte(w>>uint(s)))
		}
	}
	return string(buf)
}

// Indices lists the members in increasing order.
func (b Bitset) Indices() []int {
	var out []int
	for i, w := range b {
		for w != 0 {
			j := bits.TrailingZeros64(w)
			out = append(out, i*64+j)
			w &= w - 1
		}
	}
	return out
}
