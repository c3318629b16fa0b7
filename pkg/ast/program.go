package ast

import (
	"fmt"
	"strconv"

	"github.com/google/btree"
)

// Label is a line number. Labels order numerically, so 2 runs before 10.
type Label uint64

// ParseLabel converts the digits of a Number token into a Label.
func ParseLabel(text string) (Label, error) {
	n, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid line label %q", text)
	}
	return Label(n), nil
}

func (l Label) String() string {
	return strconv.FormatUint(uint64(l), 10)
}

// Line pairs a label with the root of its statement.
type Line struct {
	Label Label
	Stmt  Node
}

// Less orders lines by label.
func (l Line) Less(than btree.Item) bool {
	return l.Label < than.(Line).Label
}

// Program is the line table produced by the parser: one statement per label,
// kept in ascending label order. Setting an existing label replaces it.
type Program struct {
	lines *btree.BTree
}

// NewProgram creates an empty program.
func NewProgram() *Program {
	return &Program{lines: btree.New(4)}
}

// Set stores stmt under label, replacing any previous statement.
func (p *Program) Set(label Label, stmt Node) {
	p.lines.ReplaceOrInsert(Line{Label: label, Stmt: stmt})
}

// Get returns the statement stored under label.
func (p *Program) Get(label Label) (Node, bool) {
	item := p.lines.Get(Line{Label: label})
	if item == nil {
		return nil, false
	}
	return item.(Line).Stmt, true
}

// Delete removes label and reports whether it was present.
func (p *Program) Delete(label Label) bool {
	return p.lines.Delete(Line{Label: label}) != nil
}

// Len returns the number of lines.
func (p *Program) Len() int {
	return p.lines.Len()
}

// Labels returns every label in ascending order.
func (p *Program) Labels() []Label {
	labels := make([]Label, 0, p.lines.Len())
	p.Ascend(func(l Line) bool {
		labels = append(labels, l.Label)
		return true
	})
	return labels
}

// First returns the lowest label.
func (p *Program) First() (Label, bool) {
	item := p.lines.Min()
	if item == nil {
		return 0, false
	}
	return item.(Line).Label, true
}

// Next returns the lowest label strictly greater than after.
func (p *Program) Next(after Label) (Label, bool) {
	var next Label
	found := false
	p.lines.AscendGreaterOrEqual(Line{Label: after}, func(item btree.Item) bool {
		l := item.(Line)
		if l.Label == after {
			return true
		}
		next, found = l.Label, true
		return false
	})
	return next, found
}

// Ascend calls fn for each line in label order until fn returns false.
func (p *Program) Ascend(fn func(Line) bool) {
	p.lines.Ascend(func(item btree.Item) bool {
		return fn(item.(Line))
	})
}

// Merge copies every line of other into p. Lines in other win.
func (p *Program) Merge(other *Program) {
	if other == nil {
		return
	}
	other.Ascend(func(l Line) bool {
		p.Set(l.Label, l.Stmt)
		return true
	})
}

// Clone returns an independent line table. Statements are shared; they are
// never mutated after parsing.
func (p *Program) Clone() *Program {
	return &Program{lines: p.lines.Clone()}
}
