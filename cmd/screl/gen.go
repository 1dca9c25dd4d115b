package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"screl/pkg/gen"
	"screl/pkg/observe"
	"screl/pkg/relevancy"

	"github.com/spf13/cobra"
)

type genOptions struct {
	loads     []string
	dirs      []string
	manifests []string
	rel       string
	dumb      bool
	output    string
}

func newGenCmd() *cobra.Command {
	var opts genOptions

	cmd := &cobra.Command{
		Use:   "gen [--load file,arch,bits]... [--loaddir dir]... [--manifest file]... [--rel baseline] [--dumb]",
		Short: "Generate a syscall relevancy file from observed syscalls",
		Long: `Generate a syscall relevancy file from observed per-architecture syscall lists.

Each source lists one syscall name per line. Files in a --loaddir directory
must be named <arch>:<bits>. With --rel, syscalls whose relevancy already
matches the baseline are left out, producing a diff against it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.loads, "load", nil, "Load a syscall list: file,arch,bits (repeatable)")
	cmd.Flags().StringArrayVar(&opts.dirs, "loaddir", nil, "Load all <arch>:<bits> files from a directory (repeatable)")
	cmd.Flags().StringArrayVar(&opts.manifests, "manifest", nil, "Load sources listed in a YAML manifest (repeatable)")
	cmd.Flags().StringVar(&opts.rel, "rel", "", "Baseline relevancy file to diff against")
	cmd.Flags().BoolVar(&opts.dumb, "dumb", false, "Do not compact, list every arch:bits literally")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write to file instead of stdout")

	return cmd
}

// parseLoadSpec splits file,arch,bits from the right so the file name may
// itself contain commas.
func parseLoadSpec(s string) (file, arch, bits string, err error) {
	i := strings.LastIndexByte(s, ',')
	if i < 0 {
		return "", "", "", fmt.Errorf("invalid --load %q, expected file,arch,bits", s)
	}
	rest, bits := s[:i], s[i+1:]
	j := strings.LastIndexByte(rest, ',')
	if j < 0 {
		return "", "", "", fmt.Errorf("invalid --load %q, expected file,arch,bits", s)
	}
	file, arch = rest[:j], rest[j+1:]
	if file == "" || arch == "" || bits == "" {
		return "", "", "", fmt.Errorf("invalid --load %q, expected file,arch,bits", s)
	}
	return file, arch, bits, nil
}

func runGen(w, errw io.Writer, opts genOptions) error {
	if len(opts.loads) == 0 && len(opts.dirs) == 0 && len(opts.manifests) == 0 {
		return errors.New("no observation sources given, use --load, --loaddir or --manifest")
	}

	agg := observe.NewAggregator()
	for _, l := range opts.loads {
		file, arch, bits, err := parseLoadSpec(l)
		if err != nil {
			return err
		}
		if err := agg.LoadFile(arch, bits, file); err != nil {
			return err
		}
	}
	for _, dir := range opts.dirs {
		if err := agg.LoadDirectory(dir); err != nil {
			return err
		}
	}
	for _, m := range opts.manifests {
		if err := agg.LoadManifest(m); err != nil {
			return err
		}
	}

	var baseline *relevancy.RuleSet
	if opts.rel != "" {
		rs, err := relevancy.ParseFile(opts.rel)
		if err != nil {
			return err
		}
		baseline = rs
	}

	if agg.Empty() {
		fmt.Fprintln(errw, "no syscalls observed, nothing generated")
		return nil
	}

	out := gen.Generate(agg.Index(), agg.Universe(), gen.Options{
		Baseline: baseline,
		Dumb:     opts.dumb,
	})

	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(out), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	_, err := io.WriteString(w, out)
	return err
}
