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

package api

const TagJSON = "json"
const TagDoc = "doc"

// API is the configuration surface of every enumerator and distance entry
// point, grouped for documentation generation.
type API struct {
	Splits   SplitOptions    `json:"splits" doc:"## Split enumeration API\nOptions accepted by the bipartition, quadripartition and quartet enumerators.\n"`
	Quartets QuartetOptions  `json:"quartets" doc:"## Quartet enumeration API\nOptions selecting how quartets are induced.\n"`
	Distance DistanceOptions `json:"distance" doc:"## Distance API\nOptions accepted by the tree distance engine.\n"`
}
