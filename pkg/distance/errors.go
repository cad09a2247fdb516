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
	"fmt"
	"strings"
)

// LeafSetMismatchError reports that two trees violate the leaf-overlap
// precondition of the requested metric. It is raised before any computation
// starts; a comparison never silently truncates to the shared leaves.
type LeafSetMismatchError struct {
	// OnlyTree1 and OnlyTree2 list the offending leaf names.
	OnlyTree1 []string
	OnlyTree2 []string
	// Strict is set when the metric requires identical leaf sets.
	Strict bool
}

func (e *LeafSetMismatchError) Error() string {
	var b strings.Builder
	if e.Strict {
		b.WriteString("leaf sets must be identical for this metric")
	} else {
		b.WriteString("leaf sets do not overlap")
	}
	if len(e.OnlyTree1) > 0 {
		fmt.Fprintf(&b, "; only in tree 1: %s", strings.Join(e.OnlyTree1, ","))
	}
	if len(e.OnlyTree2) > 0 {
		fmt.Fprintf(&b, "; only in tree 2: %s", strings.Join(e.OnlyTree2, ","))
	}
	return b.String()
}
