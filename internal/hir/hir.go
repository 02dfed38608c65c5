// Package hir defines the lowered intermediate representation consumed by
// the statics. Nodes live in arenas and are addressed by typed indices;
// index 0 is reserved so the zero value of every index type means "absent".
package hir

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Name is an identifier. All names are NFC-normalized on construction so
// that lookup is stable across source encodings.
type Name string

// NewName returns the NFC normalization of s as a Name.
func NewName(s string) Name {
	return Name(norm.NFC.String(s))
}

func (n Name) String() string { return string(n) }

// Path is a possibly-qualified long identifier, e.g. `S.T.x`.
type Path struct {
	Prefix []Name
	Last   Name
}

// PathOf builds a Path from its components; the final component is the
// item name, everything before it names enclosing structures.
func PathOf(names ...string) Path {
	if len(names) == 0 {
		panic("hir: empty path")
	}
	p := Path{Last: NewName(names[len(names)-1])}
	for _, s := range names[:len(names)-1] {
		p.Prefix = append(p.Prefix, NewName(s))
	}
	return p
}

func (p Path) String() string {
	if len(p.Prefix) == 0 {
		return string(p.Last)
	}
	var b strings.Builder
	for _, n := range p.Prefix {
		b.WriteString(string(n))
		b.WriteByte('.')
	}
	b.WriteString(string(p.Last))
	return b.String()
}

// Lab is a record label: either a positive tuple index or an identifier.
// Exactly one of Num and Name is set; Num >= 1 means a numeric label.
type Lab struct {
	Num  int
	Name Name
}

// TupleLab returns the numeric label for tuple position i (1-based).
func TupleLab(i int) Lab {
	if i < 1 {
		panic("hir: tuple labels start at 1")
	}
	return Lab{Num: i}
}

// NameLab returns an identifier label.
func NameLab(s string) Lab { return Lab{Name: NewName(s)} }

// IsNum reports whether this is a numeric (tuple) label.
func (l Lab) IsNum() bool { return l.Num >= 1 }

func (l Lab) String() string {
	if l.IsNum() {
		return fmt.Sprintf("%d", l.Num)
	}
	return string(l.Name)
}

// LabLess is the deterministic label order: numeric labels first in
// numeric order, then named labels lexicographically.
func LabLess(a, b Lab) bool {
	if a.IsNum() != b.IsNum() {
		return a.IsNum()
	}
	if a.IsNum() {
		return a.Num < b.Num
	}
	return a.Name < b.Name
}

// SortLabs sorts labels in place by LabLess.
func SortLabs(labs []Lab) {
	sort.Slice(labs, func(i, j int) bool { return LabLess(labs[i], labs[j]) })
}

// IsTuple reports whether the sorted label set 1..n with n > 1, i.e. the
// record is really a tuple.
func IsTuple(labs []Lab) bool {
	if len(labs) < 2 {
		return false
	}
	for i, l := range labs {
		if !l.IsNum() || l.Num != i+1 {
			return false
		}
	}
	return true
}

// Range is a half-open byte range into the source of the unit being
// elaborated. The statics passes it through to diagnostics verbatim.
type Range struct {
	Start uint32
	End   uint32
}

// Span is a convenience constructor.
func Span(start, end uint32) Range { return Range{Start: start, End: end} }
