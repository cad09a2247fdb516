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

	"github.com/Knetic/govaluate"
	log "github.com/sirupsen/logrus"
)

// PruneMatching keeps the leaves for which the boolean expression evaluates
// to true. The expression sees `name`, `dist` and `support` plus every named
// feature of the leaf, e.g. `support >= 0.9 && habitat == 'marine'`.
func (t *Tree) PruneMatching(expr string, inPlace bool) (*Tree, error) {
	evaluable, err := govaluate.NewEvaluableExpression(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid leaf selection expression %q: %w", expr, err)
	}
	return t.pruneWhere(func(n *Node) bool {
		params := map[string]interface{}{
			"name":    n.Name,
			"dist":    n.Dist,
			"support": n.Support,
		}
		for k, f := range n.features {
			params[k] = f.Value()
		}
		result, evalErr := evaluable.Evaluate(params)
		if evalErr != nil {
			log.Debugf("leaf %q skipped by selection expression: %v", n.Name, evalErr)
			return false
		}
		b, ok := result.(bool)
		return ok && b
	}, inPlace)
}
