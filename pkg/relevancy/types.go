package relevancy

import (
	"sort"
	"strings"
)

// AllArch matches every architecture.
const AllArch = "all"

// ArchSpec is a leaf condition. An empty Bits matches any bit width.
type ArchSpec struct {
	Arch string
	Bits string
}

func (s ArchSpec) String() string {
	if s.Bits == "" {
		return s.Arch
	}
	return s.Arch + ":" + s.Bits
}

// ArchListItem is either a leaf (Spec) or an expanded alias (Nested).
type ArchListItem struct {
	Neg  bool
	Spec ArchSpec

	// Nested is set for alias expansions. Scope optionally limits the
	// whole nested list to matching bit widths: a token like be:64 whose
	// arch part names an alias expands it instead of naming an arch "be".
	Nested ArchList
	Scope  string
}

func (it ArchListItem) IsNested() bool {
	return it.Nested != nil
}

func (it ArchListItem) String() string {
	var b strings.Builder
	if it.Neg {
		b.WriteByte('!')
	}
	if !it.IsNested() {
		b.WriteString(it.Spec.String())
		return b.String()
	}
	b.WriteByte('(')
	b.WriteString(it.Nested.String())
	b.WriteByte(')')
	if it.Scope != "" {
		b.WriteByte(':')
		b.WriteString(it.Scope)
	}
	return b.String()
}

// ArchList is evaluated in order, first match wins.
type ArchList []ArchListItem

func (l ArchList) String() string {
	parts := make([]string, len(l))
	for i, it := range l {
		parts[i] = it.String()
	}
	return strings.Join(parts, ",")
}

// RuleSet maps operation names to their resolved archlists. It is
// read-only once Parse returns.
type RuleSet struct {
	rules map[string]ArchList
	known map[string]struct{}
}

func newRuleSet() *RuleSet {
	return &RuleSet{
		rules: make(map[string]ArchList),
		known: make(map[string]struct{}),
	}
}

// Rules returns the archlist for op, or nil.
func (rs *RuleSet) Rules(op string) ArchList {
	if rs == nil {
		return nil
	}
	return rs.rules[op]
}

// Known reports whether op was listed at all, with or without an archlist.
func (rs *RuleSet) Known(op string) bool {
	if rs == nil {
		return false
	}
	_, ok := rs.known[op]
	return ok
}

// Names returns the sorted names of all operations that carry an archlist.
func (rs *RuleSet) Names() []string {
	if rs == nil {
		return nil
	}
	names := make([]string, 0, len(rs.rules))
	for name := range rs.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (rs *RuleSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.rules)
}
