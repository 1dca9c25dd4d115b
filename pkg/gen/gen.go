package gen

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"screl/pkg/logging"
	"screl/pkg/observe"
	"screl/pkg/relevancy"
)

const (
	tabWidth  = 8
	wrapWidth = 78
)

type Options struct {
	// Baseline, if set, suppresses operations it already describes.
	Baseline *relevancy.RuleSet
	// Dumb disables compaction and lists every arch:bits pair.
	Dumb bool
	Now  func() time.Time
}

// Generate renders a relevancy rule file reproducing idx. The universe
// must be complete; loading more observations afterwards invalidates
// the result.
func Generate(idx observe.Index, universe observe.ArchBits, opts Options) string {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	type rule struct {
		op    string
		terms []string
	}
	var rules []rule
	width := 0
	for _, op := range idx.Ops() {
		obs := idx[op]
		if opts.Baseline != nil && Agrees(opts.Baseline, op, obs, universe) {
			logging.Debugf("%s: baseline already matches, skipping", op)
			continue
		}

		var terms []string
		if opts.Dumb {
			terms = Literal(obs)
		} else {
			terms = Compact(obs, universe)
		}
		rules = append(rules, rule{op: op, terms: terms})
		if len(op) > width {
			width = len(op)
		}
	}

	var b strings.Builder
	writeHeader(&b, universe, now())

	col := (width/tabWidth + 1) * tabWidth
	for _, r := range rules {
		b.WriteString(r.op)
		b.WriteString(strings.Repeat("\t", (col-len(r.op)+tabWidth-1)/tabWidth))
		b.WriteString(strings.Join(r.terms, ","))
		b.WriteByte('\n')
	}

	logging.Info("generated rules", "operations", len(idx), "emitted", len(rules))
	return b.String()
}

// Agrees reports whether baseline gives the observed verdict for op on
// every pair in the universe.
func Agrees(baseline *relevancy.RuleSet, op string, obs, universe observe.ArchBits) bool {
	for _, p := range universe.Pairs() {
		if baseline.Match(op, p.Arch, p.Bits) != obs.Has(p.Arch, p.Bits) {
			return false
		}
	}
	return true
}

func writeHeader(b *strings.Builder, universe observe.ArchBits, now time.Time) {
	fmt.Fprintf(b, "# generated by screl on %s\n", now.UTC().Format(time.RFC3339))
	b.WriteString("#\n# architectures:\n")
	for _, line := range wrap(universe.Archs(), "#   ", wrapWidth) {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	pairs := universe.Pairs()
	words := make([]string, len(pairs))
	for i, p := range pairs {
		words[i] = p.String()
	}
	// same order as the terms of a rule
	sort.Strings(words)
	b.WriteString("# architecture:bits combinations:\n")
	for _, line := range wrap(words, "#   ", wrapWidth) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString("#\n")
}

// wrap joins words with spaces into prefixed lines of at most width
// columns. A single word longer than width gets a line of its own.
func wrap(words []string, prefix string, width int) []string {
	var lines []string
	cur := prefix
	for _, w := range words {
		if cur != prefix && len(cur)+1+len(w) > width {
			lines = append(lines, cur)
			cur = prefix
		}
		if cur != prefix {
			cur += " "
		}
		cur += w
	}
	if cur != prefix {
		lines = append(lines, cur)
	}
	return lines
}
