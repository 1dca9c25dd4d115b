package observe

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"screl/pkg/logging"
)

// Aggregator collects observed operations across many sources. Loads are
// cumulative; the universe never shrinks.
type Aggregator struct {
	index    Index
	universe ArchBits
}

func NewAggregator() *Aggregator {
	return &Aggregator{
		index:    make(Index),
		universe: make(ArchBits),
	}
}

func (a *Aggregator) Index() Index {
	return a.index
}

func (a *Aggregator) Universe() ArchBits {
	return a.universe
}

func (a *Aggregator) Empty() bool {
	return len(a.index) == 0
}

// Record marks op as observed on arch/bits.
func (a *Aggregator) Record(op, arch, bits string) {
	ab, ok := a.index[op]
	if !ok {
		ab = make(ArchBits)
		a.index[op] = ab
	}
	ab.Add(arch, bits)
	a.universe.Add(arch, bits)
}

// LoadReader reads one operation name per line. Blank lines are ignored.
// The universe gains arch/bits even if r holds no operations.
func (a *Aggregator) LoadReader(arch, bits string, r io.Reader) error {
	a.universe.Add(arch, bits)

	n := 0
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		op := strings.TrimSpace(sc.Text())
		if op == "" {
			continue
		}
		a.Record(op, arch, bits)
		n++
	}
	if err := sc.Err(); err != nil {
		return err
	}

	logging.Debugf("recorded %d operations for %s:%s", n, arch, bits)
	return nil
}

func (a *Aggregator) LoadFile(arch, bits, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open observations: %w", err)
	}
	defer f.Close()

	if err := a.LoadReader(arch, bits, f); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	logging.Info("loaded", "file", path, "arch", arch, "bits", bits)
	return nil
}

// LoadDirectory loads every file in dir, deriving arch and bits from
// file names of the form <arch>:<bits>. Subdirectories are skipped.
func (a *Aggregator) LoadDirectory(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read observation directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			logging.Debugf("skipping subdirectory %s", entry.Name())
			continue
		}
		arch, bits, err := ParseName(entry.Name())
		if err != nil {
			return err
		}
		if err := a.LoadFile(arch, bits, filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// ParseName splits an observation file name into arch and bits.
func ParseName(name string) (arch, bits string, err error) {
	switch n := strings.Count(name, ":"); {
	case n == 0:
		return "", "", &FormatError{Name: name, Msg: "missing ':' separator"}
	case n > 1:
		return "", "", &FormatError{Name: name, Msg: "more than one ':' separator"}
	}

	arch, bits, _ = strings.Cut(name, ":")
	if arch == "" {
		return "", "", &FormatError{Name: name, Msg: "empty architecture"}
	}
	if bits == "" {
		return "", "", &FormatError{Name: name, Msg: "empty bits"}
	}
	return arch, bits, nil
}
