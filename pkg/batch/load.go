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

package batch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/phylokit/treedist-pipeline/pkg/newick"
	"github.com/phylokit/treedist-pipeline/pkg/operational"
	"github.com/phylokit/treedist-pipeline/pkg/tree"
)

// LoadTrees reads every tree from a newick file. The returned names are
// "<basename>#<k>" when the file holds more than one tree, else just the
// basename, so result rows stay unambiguous across multi-tree inputs.
func LoadTrees(path string) ([]*tree.Tree, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "opening tree file")
	}
	defer f.Close()

	trees, err := newick.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, errors.Wrapf(err, "reading %s", path)
	}
	if len(trees) == 0 {
		return nil, nil, errors.Errorf("no trees found in %s", path)
	}
	operational.TreesLoaded.Add(float64(len(trees)))

	base := filepath.Base(path)
	names := make([]string, len(trees))
	for i := range trees {
		if len(trees) == 1 {
			names[i] = base
		} else {
			names[i] = fmt.Sprintf("%s#%d", base, i)
		}
	}
	return trees, names, nil
}

// LoadReference reads a reference file that must hold exactly one tree.
func LoadReference(path string) (*tree.Tree, string, error) {
	trees, names, err := LoadTrees(path)
	if err != nil {
		return nil, "", err
	}
	if len(trees) != 1 {
		return nil, "", errors.Errorf("reference file %s holds %d trees, want exactly 1", path, len(trees))
	}
	return trees[0], names[0], nil
}
