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

package tree

import (
	"fmt"
	"strconv"
)

type FeatureKind int

const (
	FeatureNum FeatureKind = iota
	FeatureText
	FeatureBlob
)

// Feature is a named per-node value. It is a closed variant: exactly one of
// the payload fields is meaningful, selected by Kind.
type Feature struct {
	Kind FeatureKind
	Num  float64
	Text string
	Blob []byte
}

func NumFeature(v float64) Feature { return Feature{Kind: FeatureNum, Num: v} }
func TextFeature(s string) Feature { return Feature{Kind: FeatureText, Text: s} }
func BlobFeature(b []byte) Feature { return Feature{Kind: FeatureBlob, Blob: b} }

// String renders the payload for use as a label.
func (f Feature) String() string {
	switch f.Kind {
	case FeatureNum:
		return strconv.FormatFloat(f.Num, 'g', -1, 64)
	case FeatureText:
		return f.Text
	default:
		return fmt.Sprintf("blob[%d]", len(f.Blob))
	}
}

// Value returns the payload as an interface value, for expression evaluation.
func (f Feature) Value() interface{} {
	switch f.Kind {
	case FeatureNum:
		return f.Num
	case FeatureText:
		return f.Text
	default:
		return f.Blob
	}
}
