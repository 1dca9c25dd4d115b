package gen

import (
	"sort"

	"screl/pkg/observe"
	"screl/pkg/relevancy"
)

// Compact returns the sorted archlist terms reproducing obs within
// universe. obs must be a subset of universe.
func Compact(obs, universe observe.ArchBits) []string {
	if obs.Equal(universe) {
		return []string{relevancy.AllArch}
	}

	if obs.SameArchs(universe) {
		if bits, ok := commonBits(obs); ok {
			return []string{relevancy.AllArch + ":" + bits}
		}
		if p, ok := singleMissing(obs, universe); ok {
			return []string{"!" + p.String(), relevancy.AllArch}
		}
	} else if len(universe) > 2 {
		if arch, ok := missingArch(obs, universe); ok {
			return []string{"!" + arch, relevancy.AllArch}
		}
	}

	return enumerate(obs, universe, true)
}

// Literal lists every observed pair as arch:bits.
func Literal(obs observe.ArchBits) []string {
	return enumerate(obs, nil, false)
}

// commonBits reports the bit width if every architecture was observed
// with exactly one, identical, bit width.
func commonBits(obs observe.ArchBits) (string, bool) {
	var common string
	for _, set := range obs {
		if len(set) != 1 {
			return "", false
		}
		for bits := range set {
			if common == "" {
				common = bits
			} else if bits != common {
				return "", false
			}
		}
	}
	return common, common != ""
}

// singleMissing reports the one universe pair absent from obs.
func singleMissing(obs, universe observe.ArchBits) (observe.Pair, bool) {
	var missing []observe.Pair
	for _, p := range universe.Pairs() {
		if !obs.Has(p.Arch, p.Bits) {
			missing = append(missing, p)
		}
	}
	if len(missing) != 1 {
		return observe.Pair{}, false
	}
	return missing[0], true
}

// missingArch reports the architecture whose absence is the only
// difference between obs and universe.
func missingArch(obs, universe observe.ArchBits) (string, bool) {
	if len(obs) != len(universe)-1 {
		return "", false
	}

	var missing string
	for arch, set := range universe {
		o, ok := obs[arch]
		if !ok {
			missing = arch
			continue
		}
		if !o.Equal(set) {
			return "", false
		}
	}
	return missing, missing != ""
}

func enumerate(obs, universe observe.ArchBits, fold bool) []string {
	var terms []string
	for _, arch := range obs.Archs() {
		if fold && obs[arch].Equal(universe[arch]) {
			terms = append(terms, arch)
			continue
		}
		for _, bits := range obs[arch].Sorted() {
			terms = append(terms, arch+":"+bits)
		}
	}
	sort.Strings(terms)
	return terms
}
