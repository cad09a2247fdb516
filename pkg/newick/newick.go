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

// Package newick reads Newick-formatted trees and hands the core an
// already-valid node graph. The core itself never parses text.
package newick

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/phylokit/treedist-pipeline/pkg/tree"
)

// Reader holds the scanning state for reading one or more trees from a
// Newick source, e.g. a file with one tree per line.
type Reader struct {
	r    *bufio.Reader
	line int
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r), line: 1}
}

// ReadAll reads every tree in the source. The first error aborts with no
// trees; the error is never io.EOF.
func (p *Reader) ReadAll() ([]*tree.Tree, error) {
	var out []*tree.Tree
	for {
		t, err := p.ReadTree()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
}

// ReadTree reads the next ';'-terminated tree. At end of input it returns
// io.EOF.
func (p *Reader) ReadTree() (*tree.Tree, error) {
	if err := p.skipSpace(); err != nil {
		return nil, err // io.EOF: no further tree
	}
	root, err := p.parseNode()
	if err != nil {
		return nil, errors.Wrapf(err, "newick: line %d", p.line)
	}
	if err := p.expect(';'); err != nil {
		return nil, errors.Wrapf(err, "newick: line %d", p.line)
	}
	t, err := tree.New(root)
	if err != nil {
		return nil, errors.Wrap(err, "newick: parsed graph rejected")
	}
	return t, nil
}

// parseNode parses "(child,child,...)label:length" where every part is
// optional. Numeric labels on internal nodes are stored as support values.
func (p *Reader) parseNode() (*tree.Node, error) {
	n := tree.NewNode("")

	r, err := p.peek()
	if err != nil {
		return nil, err
	}
	if r == '(' {
		_, _, _ = p.r.ReadRune()
		for {
			child, err := p.parseNode()
			if err != nil {
				return nil, err
			}
			n.AddChild(child)
			r, err := p.readSignificant()
			if err != nil {
				return nil, err
			}
			if r == ',' {
				continue
			}
			if r == ')' {
				break
			}
			return nil, errors.Errorf("expected ',' or ')', got %q", r)
		}
	}

	label, err := p.readLabel()
	if err != nil {
		return nil, err
	}
	if label != "" {
		if !n.IsLeaf() {
			// internal numeric labels are support values by convention
			if support, numErr := strconv.ParseFloat(label, 64); numErr == nil {
				n.Support = support
				n.HasSupport = true
			} else {
				n.Name = label
			}
		} else {
			n.Name = label
		}
	}

	r, err = p.peek()
	if err == nil && r == ':' {
		_, _, _ = p.r.ReadRune()
		dist, err := p.readNumber()
		if err != nil {
			return nil, err
		}
		n.Dist = dist
	}
	return n, nil
}

// readLabel reads a node label, handling single-quoted labels with doubled
// quote escapes.
func (p *Reader) readLabel() (string, error) {
	r, err := p.peek()
	if err != nil {
		return "", nil
	}
	if r == '\'' {
		_, _, _ = p.r.ReadRune()
		var b strings.Builder
		for {
			c, _, err := p.r.ReadRune()
			if err != nil {
				return "", errors.New("unterminated quoted label")
			}
			if c == '\'' {
				next, _, peekErr := p.r.ReadRune()
				if peekErr == nil && next == '\'' {
					b.WriteRune('\'')
					continue
				}
				if peekErr == nil {
					_ = p.r.UnreadRune()
				}
				return b.String(), nil
			}
			if c == '\n' {
				p.line++
			}
			b.WriteRune(c)
		}
	}

	// The peek above consumed any leading whitespace; from here read raw
	// runes so whitespace inside an unquoted label terminates it.
	var b strings.Builder
	for {
		c, _, err := p.r.ReadRune()
		if err != nil {
			return b.String(), nil
		}
		if strings.ContainsRune("(),:;'[] \t\r\n", c) {
			_ = p.r.UnreadRune()
			return b.String(), nil
		}
		b.WriteRune(c)
	}
}

func (p *Reader) readNumber() (float64, error) {
	var b strings.Builder
	for {
		c, err := p.peek()
		if err != nil || !strings.ContainsRune("0123456789.eE+-", c) {
			break
		}
		_, _, _ = p.r.ReadRune()
		b.WriteRune(c)
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, errors.Errorf("invalid branch length %q", b.String())
	}
	return v, nil
}

// readSignificant returns the next non-whitespace rune.
func (p *Reader) readSignificant() (rune, error) {
	for {
		c, _, err := p.r.ReadRune()
		if err != nil {
			return 0, err
		}
		if c == '\n' {
			p.line++
		}
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			continue
		}
		return c, nil
	}
}

func (p *Reader) expect(want rune) error {
	got, err := p.readSignificant()
	if err != nil {
		return errors.Errorf("expected %q, got end of input", want)
	}
	if got != want {
		return errors.Errorf("expected %q, got %q", want, got)
	}
	return nil
}

// peek returns the next non-whitespace rune without consuming it.
func (p *Reader) peek() (rune, error) {
	for {
		c, _, err := p.r.ReadRune()
		if err != nil {
			return 0, err
		}
		if c == ' ' || c == '\t' || c == '\r' {
			continue
		}
		if c == '\n' {
			p.line++
			continue
		}
		_ = p.r.UnreadRune()
		return c, nil
	}
}

// skipSpace advances to the next significant rune, reporting io.EOF when
// the input is exhausted.
func (p *Reader) skipSpace() error {
	_, err := p.peek()
	return err
}

// Parse is a convenience wrapper for a single tree held in a string.
func Parse(s string) (*tree.Tree, error) {
	return NewReader(strings.NewReader(s)).ReadTree()
}
