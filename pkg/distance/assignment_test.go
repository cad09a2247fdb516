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

package distance

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSolveAssignmentSquare(t *testing.T) {
	cost := [][]float64{
		{4, 1, 3},
		{2, 0, 5},
		{3, 2, 2},
	}
	match, total := solveAssignment(cost)
	require.Equal(t, 5.0, total)
	require.Equal(t, []int{1, 0, 2}, match)
}

func TestSolveAssignmentRectangular(t *testing.T) {
	cost := [][]float64{
		{8, 4, 7},
		{5, 2, 3},
	}
	match, total := solveAssignment(cost)
	require.Equal(t, 7.0, total) // 4 + 3
	require.Equal(t, []int{1, 2}, match)
}

func TestSolveAssignmentIdentity(t *testing.T) {
	// zero diagonal forces the identity matching
	cost := [][]float64{
		{0, 9, 9},
		{9, 0, 9},
		{9, 9, 0},
	}
	match, total := solveAssignment(cost)
	require.Equal(t, 0.0, total)
	require.Equal(t, []int{0, 1, 2}, match)
}

func TestSolveAssignmentEmpty(t *testing.T) {
	match, total := solveAssignment(nil)
	require.Empty(t, match)
	require.Equal(t, 0.0, total)
}

func TestMaximizeAssignment(t *testing.T) {
	profit := [][]float64{
		{1, 5},
		{2, 3},
	}
	match, total := maximizeAssignment(profit)
	require.Equal(t, 7.0, total) // 5 + 2
	require.Equal(t, []int{1, 0}, match)
}
