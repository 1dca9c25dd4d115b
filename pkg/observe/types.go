package observe

import "sort"

// BitSet is a set of bit width labels.
type BitSet map[string]struct{}

func (s BitSet) Add(bits string) {
	s[bits] = struct{}{}
}

func (s BitSet) Has(bits string) bool {
	_, ok := s[bits]
	return ok
}

func (s BitSet) Equal(o BitSet) bool {
	if len(s) != len(o) {
		return false
	}
	for b := range s {
		if !o.Has(b) {
			return false
		}
	}
	return true
}

func (s BitSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for b := range s {
		out = append(out, b)
	}
	sort.Strings(out)
	return out
}

// ArchBits maps an architecture to the bit widths seen for it.
type ArchBits map[string]BitSet

func (ab ArchBits) Add(arch, bits string) {
	set, ok := ab[arch]
	if !ok {
		set = make(BitSet)
		ab[arch] = set
	}
	set.Add(bits)
}

func (ab ArchBits) Has(arch, bits string) bool {
	return ab[arch].Has(bits)
}

func (ab ArchBits) Equal(o ArchBits) bool {
	if len(ab) != len(o) {
		return false
	}
	for arch, set := range ab {
		other, ok := o[arch]
		if !ok || !set.Equal(other) {
			return false
		}
	}
	return true
}

// SameArchs reports whether both maps have exactly the same architectures,
// regardless of bit widths.
func (ab ArchBits) SameArchs(o ArchBits) bool {
	if len(ab) != len(o) {
		return false
	}
	for arch := range ab {
		if _, ok := o[arch]; !ok {
			return false
		}
	}
	return true
}

func (ab ArchBits) Archs() []string {
	out := make([]string, 0, len(ab))
	for arch := range ab {
		out = append(out, arch)
	}
	sort.Strings(out)
	return out
}

// Pair is a single architecture/bit width combination.
type Pair struct {
	Arch string
	Bits string
}

func (p Pair) String() string {
	return p.Arch + ":" + p.Bits
}

// Pairs returns all combinations sorted by arch, then bits.
func (ab ArchBits) Pairs() []Pair {
	var out []Pair
	for _, arch := range ab.Archs() {
		for _, bits := range ab[arch].Sorted() {
			out = append(out, Pair{Arch: arch, Bits: bits})
		}
	}
	return out
}

// Index maps an operation name to where it was observed.
type Index map[string]ArchBits

func (idx Index) Ops() []string {
	out := make([]string, 0, len(idx))
	for op := range idx {
		out = append(out, op)
	}
	sort.Strings(out)
	return out
}
