// SPDX-License-Identifier: MIT

// Package textree parses the generic line-oriented, indentation-nested
// tree format used for configuration like sources.tt. It knows nothing
// about what any particular label means — that belongs to whichever
// package interprets the resulting tree.
package textree

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Node is one entry of a parsed tree: a label, its inline data (may be
// empty), and any more-deeply-indented entries nested beneath it.
type Node struct {
	Label    string
	Data     string
	Children []Node
}

type line struct {
	indent int
	label  string
	data   string
}

func scanLines(r io.Reader) ([]line, error) {
	var out []line
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		raw := sc.Text()
		trimmed := strings.TrimLeft(raw, " ")
		if trimmed == "" {
			continue
		}
		if trimmed[0] == '#' {
			continue
		}
		indent := len(raw) - len(trimmed)
		sp := strings.IndexByte(trimmed, ' ')
		var label, data string
		if sp < 0 {
			label, data = trimmed, ""
		} else {
			label, data = trimmed[:sp], strings.TrimSpace(trimmed[sp+1:])
		}
		out = append(out, line{indent: indent, label: label, data: data})
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "textree: scan")
	}
	return out, nil
}

// Parse reads r and returns its top-level entries.
func Parse(r io.Reader) ([]Node, error) {
	lines, err := scanLines(r)
	if err != nil {
		return nil, err
	}
	i := 0
	nodes := parseSiblings(lines, &i, -1)
	return nodes, nil
}

// parseSiblings consumes every line in lines starting at *i whose
// indent is strictly greater than parentIndent, building one Node per
// such line and recursing for its own children.
func parseSiblings(lines []line, i *int, parentIndent int) []Node {
	var out []Node
	for *i < len(lines) && lines[*i].indent > parentIndent {
		ln := lines[*i]
		*i++
		children := parseSiblings(lines, i, ln.indent)
		if ln.label == `\rem` {
			continue
		}
		data := ln.data
		if data == "" {
			data = collectContinuations(&children)
		}
		out = append(out, Node{Label: ln.label, Data: data, Children: children})
	}
	return out
}

// collectContinuations pulls leading "\ ..." pseudo-children off
// children (which parseSiblings has already built as ordinary nodes,
// since the grammar for a continuation line is identical to any other
// line) and joins their data into a single multi-line string, leaving
// the remaining real children in place.
func collectContinuations(children *[]Node) string {
	var parts []string
	i := 0
	for i < len(*children) && (*children)[i].Label == `\` {
		parts = append(parts, (*children)[i].Data)
		i++
	}
	*children = (*children)[i:]
	return strings.Join(parts, "\n")
}
