package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"screl/pkg/host"
	"screl/pkg/logging"
	"screl/pkg/relevancy"

	"github.com/spf13/cobra"
)

var errMismatch = errors.New("syscall not relevant")

type matchSpec struct {
	op   string
	arch string
	bits string
}

func newLookupCmd() *cobra.Command {
	var (
		matches []string
		lists   []string
	)

	cmd := &cobra.Command{
		Use:   "lookup <rules> [--match op,arch[,bits]]... | [--list arch[,bits]]...",
		Short: "Query a syscall relevancy file",
		Long: `Query a syscall relevancy file.

With --match, exit with status 0 only if every given syscall is relevant on
its arch/bits, otherwise 2. With --list, print the sorted union of syscalls
relevant on any of the given arch/bits. Without either, list the syscalls
relevant on this machine. Omitting bits asks for every bit width.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := relevancy.ParseFile(args[0])
			if err != nil {
				return err
			}

			if len(matches) > 0 {
				specs := make([]matchSpec, 0, len(matches))
				for _, m := range matches {
					spec, err := parseMatchSpec(m)
					if err != nil {
						return err
					}
					specs = append(specs, spec)
				}
				return runMatch(rs, specs)
			}

			targets := lists
			if len(targets) == 0 {
				p, err := host.Detect()
				if err != nil {
					return err
				}
				logging.Info("using host platform", "arch", p.Arch, "bits", p.Bits)
				targets = []string{p.Arch + "," + p.Bits}
			}

			specs := make([]host.Platform, 0, len(targets))
			for _, l := range targets {
				p, err := parseListSpec(l)
				if err != nil {
					return err
				}
				specs = append(specs, p)
			}
			for _, op := range runList(rs, specs) {
				fmt.Fprintln(cmd.OutOrStdout(), op)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&matches, "match", nil, "Require syscall relevancy: op,arch[,bits] (repeatable, all must match)")
	cmd.Flags().StringArrayVar(&lists, "list", nil, "List syscalls relevant on arch[,bits] (repeatable, union)")
	cmd.MarkFlagsMutuallyExclusive("match", "list")

	return cmd
}

func parseMatchSpec(s string) (matchSpec, error) {
	f := strings.Split(s, ",")
	if len(f) < 2 || len(f) > 3 || f[0] == "" || f[1] == "" {
		return matchSpec{}, fmt.Errorf("invalid --match %q, expected op,arch[,bits]", s)
	}
	spec := matchSpec{op: f[0], arch: f[1]}
	if len(f) == 3 {
		spec.bits = f[2]
	}
	return spec, nil
}

func parseListSpec(s string) (host.Platform, error) {
	f := strings.Split(s, ",")
	if len(f) > 2 || f[0] == "" {
		return host.Platform{}, fmt.Errorf("invalid --list %q, expected arch[,bits]", s)
	}
	p := host.Platform{Arch: f[0]}
	if len(f) == 2 {
		p.Bits = f[1]
	}
	return p, nil
}

func runMatch(rs *relevancy.RuleSet, specs []matchSpec) error {
	ok := true
	for _, s := range specs {
		if !rs.Match(s.op, s.arch, s.bits) {
			logging.Info("not relevant", "syscall", s.op, "arch", s.arch, "bits", s.bits)
			ok = false
		}
	}
	if !ok {
		return errMismatch
	}
	return nil
}

func runList(rs *relevancy.RuleSet, specs []host.Platform) []string {
	seen := make(map[string]struct{})
	for _, p := range specs {
		for _, op := range rs.Filter(p.Arch, p.Bits) {
			seen[op] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for op := range seen {
		out = append(out, op)
	}
	sort.Strings(out)
	return out
}
