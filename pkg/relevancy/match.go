package relevancy

import (
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Match reports whether op is relevant on arch with the given bit width.
// An empty bits asks whether op is relevant for every bit width of arch,
// which only rules without a bits restriction can satisfy.
func (rs *RuleSet) Match(op, arch, bits string) bool {
	rules := rs.Rules(op)
	if len(rules) == 0 {
		return false
	}
	matched, verdict := rules.Eval(arch, bits)
	return matched && verdict
}

// Filter returns the sorted names of operations relevant on arch/bits.
func (rs *RuleSet) Filter(arch, bits string) []string {
	var out []string
	for _, op := range rs.Names() {
		if rs.Match(op, arch, bits) {
			out = append(out, op)
		}
	}
	sort.Strings(out)
	return out
}

// Eval walks the list depth-first. The first item that matches decides the
// verdict; matched is false if nothing in the list applies to arch/bits.
func (l ArchList) Eval(arch, bits string) (matched, verdict bool) {
	for _, it := range l {
		if it.IsNested() {
			if it.Scope != "" && !globMatch(it.Scope, bits) {
				continue
			}
			if m, v := it.Nested.Eval(arch, bits); m {
				return true, it.Neg != v
			}
			continue
		}
		if it.Spec.Matches(arch, bits) {
			return true, !it.Neg
		}
	}
	return false, false
}

func (s ArchSpec) Matches(arch, bits string) bool {
	if arch == "" {
		return false
	}
	if s.Arch != AllArch && !globMatch(s.Arch, arch) {
		return false
	}
	if s.Bits != "" {
		return globMatch(s.Bits, bits)
	}
	return true
}

// only *, ? and [...] are wildcards; braces and backslashes are literal
var globEscaper = strings.NewReplacer(`\`, `\\`, `{`, `\{`, `}`, `\}`)

// globMatch is case sensitive. Malformed patterns only match themselves.
func globMatch(pattern, name string) bool {
	ok, err := doublestar.Match(globEscaper.Replace(pattern), name)
	if err != nil {
		return pattern == name
	}
	return ok
}
