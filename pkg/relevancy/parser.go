package relevancy

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"screl/pkg/logging"
)

const maxLineSize = 1024 * 1024

// parser holds the state of a single Parse call. Aliases are resolved
// when defined, so the table only ever contains alias-free archlists.
type parser struct {
	line    int
	aliases map[string]ArchList
	rs      *RuleSet
}

func ParseFile(path string) (*RuleSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rules: %w", err)
	}
	defer f.Close()

	rs, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rs, nil
}

// Parse reads a relevancy rule file. Syntax errors abort parsing and are
// returned as *SyntaxError.
func Parse(r io.Reader) (*RuleSet, error) {
	p := &parser{
		aliases: make(map[string]ArchList),
		rs:      newRuleSet(),
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		p.line++
		if err := p.parseLine(sc.Text()); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rules: %w", err)
	}

	logging.Debugf("parsed %d lines, %d aliases, %d rules", p.line, len(p.aliases), len(p.rs.rules))
	return p.rs, nil
}

func sanitize(line string) string {
	line = strings.TrimSpace(line)
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	return line
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return &SyntaxError{Line: p.line, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) parseLine(line string) error {
	line = sanitize(line)
	if line == "" {
		return nil
	}

	cols := strings.Fields(line)
	if cols[0] == "alias" {
		if len(cols) != 3 {
			return p.errorf("missing/extra columns for alias")
		}
		name, list := cols[1], p.parseArchList(cols[2])
		p.aliases[name] = list
		logging.Debugf("line %d: alias %s = %s", p.line, name, list)
		return nil
	}

	op := cols[0]
	switch {
	case len(cols) > 2:
		return p.errorf("unexpected extra column(s)")
	case len(cols) == 1:
		// known, but never relevant
		p.rs.known[op] = struct{}{}
		return nil
	}

	p.rs.known[op] = struct{}{}
	p.rs.rules[op] = p.parseArchList(cols[1])
	return nil
}

func (p *parser) parseArchList(s string) ArchList {
	toks := strings.Split(s, ",")
	list := make(ArchList, 0, len(toks))
	for _, tok := range toks {
		list = append(list, p.parseItem(tok))
	}
	return list
}

func (p *parser) parseItem(tok string) ArchListItem {
	var it ArchListItem
	if strings.HasPrefix(tok, "!") {
		it.Neg = true
		tok = tok[1:]
	}

	// an exact alias name takes precedence over an architecture of the same name
	if nested, ok := p.aliases[tok]; ok {
		it.Nested = nested
		return it
	}

	spec := parseArchSpec(tok)
	if nested, ok := p.aliases[spec.Arch]; ok && spec.Bits != "" {
		it.Nested = nested
		it.Scope = spec.Bits
		return it
	}

	it.Spec = spec
	return it
}

func parseArchSpec(tok string) ArchSpec {
	arch, bits, _ := strings.Cut(tok, ":")
	return ArchSpec{Arch: arch, Bits: bits}
}
