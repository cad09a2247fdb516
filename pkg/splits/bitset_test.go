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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitsetBasics(t *testing.T) {
	b := NewBitset(70) // crosses a word boundary
	b.Set(0)
	b.Set(63)
	b.Set(64)
	b.Set(69)

	require.True(t, b.Has(63))
	require.True(t, b.Has(64))
	require.False(t, b.Has(1))
	require.Equal(t, 4, b.Count())
	require.Equal(t, []int{0, 63, 64, 69}, b.Indices())
}

func TestBitsetComplementMasksTrailingBits(t *testing.T) {
	b := NewBitset(70)
	b.Set(1)
	c := b.Complement(70)
	require.Equal(t, 69, c.Count())
	require.False(t, c.Has(1))
	require.True(t, c.Has(69))
	// bits past n must stay clear or Count would drift
	require.Equal(t, 70, b.Count()+c.Count())
}

func TestBitsetSetOps(t *testing.T) {
	a := NewBitset(10)
	b := NewBitset(10)
	for _, i := range []int{1, 3, 5} {
		a.Set(i)
	}
	for _, i := range []int{3, 5, 7} {
		b.Set(i)
	}

	require.Equal(t, 2, a.IntersectCount(b))
	require.Equal(t, 2, a.XorCount(b))
	require.Equal(t, []int{3, 5}, a.Intersect(b).Indices())
	require.Equal(t, []int{1, 7}, a.Xor(b).Indices())

	sub := NewBitset(10)
	sub.Set(3)
	require.True(t, sub.IsSubset(a))
	require.False(t, a.IsSubset(sub))

	cl := a.Clone()
	cl.Set(9)
	require.False(t, a.Has(9))
	require.False(t, a.Equal(cl))
	require.NotEqual(t, a.Key(), cl.Key())
}
