// Command cres is the CLI front-end for the cell-resampling engine,
// built with github.com/spf13/cobra + github.com/spf13/pflag.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/katalvlaran/cres/cluster"
	"github.com/katalvlaran/cres/convert"
	"github.com/katalvlaran/cres/cres"
	"github.com/katalvlaran/cres/internal/logging"
	"github.com/katalvlaran/cres/internal/progress"
	"github.com/katalvlaran/cres/ioformat"
	"github.com/katalvlaran/cres/ioformat/compression"
	"github.com/katalvlaran/cres/ioformat/hepmc2"
	"github.com/katalvlaran/cres/ioformat/lhef"
	"github.com/katalvlaran/cres/ioformat/rootntuple"
	"github.com/katalvlaran/cres/ioformat/stripperxml"
	"github.com/katalvlaran/cres/resample"
	"github.com/katalvlaran/cres/unweight"
	"github.com/spf13/cobra"
)

func main() {
	args, err := expandArgfiles(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}

	root := newRootCmd()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}
}

// options holds every CLI flag's parsed value; fields are grouped by the
// area of the pipeline they configure.
type options struct {
	outfile     string
	informat    string
	outformat   string
	compression string

	jetAlgorithm string
	jetRadius    float64
	jetPt        float64

	leptonAlgorithm string
	leptonRadius    float64
	leptonPt        float64

	ptWeight    float64
	maxCellSize float64
	strategy    string
	partitions  int
	search      string
	threads     int

	minWeight float64
	seed      int64

	includeWeights string

	dumpcells string
	loglevel  string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "cres [flags] input-file...",
		Short: "Reduce negative-weight events in a Monte-Carlo sample by cell resampling",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return run(args, opts)
		},
		SilenceUsage: true,
	}

	f := cmd.Flags()
	f.StringVar(&opts.outfile, "outfile", "", "output file path (required)")
	f.StringVar(&opts.informat, "informat", "hepmc2", "input format: hepmc2, lhef, root, stripper-xml")
	f.StringVar(&opts.outformat, "outformat", "hepmc2", "output format: hepmc2, lhef, root, stripper-xml")
	f.StringVar(&opts.compression, "compression", "", "output compression: bzip2, gzip[_0-9], zstd[_0-19], lz4[_0-16]")

	f.StringVar(&opts.jetAlgorithm, "jetalgorithm", "anti-kt", "jet clustering algorithm: anti-kt, kt, Cambridge-Aachen")
	f.Float64Var(&opts.jetRadius, "jetradius", 0.4, "jet clustering radius R")
	f.Float64Var(&opts.jetPt, "jetpt", 0, "minimum jet pT (GeV)")

	f.StringVar(&opts.leptonAlgorithm, "leptonalgorithm", "", "lepton-dressing algorithm (enables dressing if set)")
	f.Float64Var(&opts.leptonRadius, "leptonradius", 0.1, "lepton-dressing radius")
	f.Float64Var(&opts.leptonPt, "leptonpt", 0, "minimum dressed-lepton pT (GeV)")

	f.Float64Var(&opts.ptWeight, "ptweight", 0, "pT weight tau in the distance metric")
	f.Float64Var(&opts.maxCellSize, "max-cell-size", 0, "maximum cell radius; <= 0 means uncapped")
	f.StringVar(&opts.strategy, "strategy", "most_negative", "seed strategy: most_negative, least_negative, any")
	f.IntVar(&opts.partitions, "partitions", 1, "number of disjoint resampling partitions")
	f.StringVar(&opts.search, "search", "tree", "neighbour-index backend: tree, naive")
	f.IntVar(&opts.threads, "threads", 0, "worker count for partitioned resampling; <= 0 means one per partition")

	f.Float64Var(&opts.minWeight, "minweight", 0, "unweighting floor; 0 disables unweighting")
	f.Int64Var(&opts.seed, "seed", 0, "unweighting PRNG seed")

	f.StringVar(&opts.includeWeights, "include-weights", "", "comma-separated named weights to extract alongside the central weight (enables multi-weight mode)")

	f.StringVar(&opts.dumpcells, "dumpcells", "", "write cell-membership diagnostics to this path")
	f.StringVar(&opts.loglevel, "loglevel", "info", "log level: trace, debug, info, warn, error")

	return cmd
}

func run(inputs []string, opts *options) error {
	if opts.outfile == "" {
		return fmt.Errorf("--outfile is required")
	}

	logging.Init(opts.loglevel)
	log := logging.L()

	reader, closeReader, err := openReader(inputs, opts.informat)
	if err != nil {
		return err
	}
	defer closeReader()

	converter, err := buildConverter(opts)
	if err != nil {
		return err
	}

	writer, closeWriter, err := openWriter(opts)
	if err != nil {
		return err
	}
	defer closeWriter()

	strategy, ok := resample.ParseStrategy(opts.strategy)
	if !ok {
		return fmt.Errorf("unknown --strategy %q", opts.strategy)
	}
	backend, err := resample.ParseBackend(opts.search)
	if err != nil {
		return err
	}

	cfg := cres.Config{
		Resample: resample.Config{
			MaxCellSize: opts.maxCellSize,
			NPartitions: opts.partitions,
			PtWeight:    opts.ptWeight,
			Strategy:    strategy,
			Backend:     backend,
			MultiWeight: len(includedWeightNames(opts.includeWeights)) > 0,
			Workers:     opts.threads,
			Log:         log,
		},
		Unweight: unweight.Config{
			MinWeight: opts.minWeight,
			Seed:      opts.seed,
		},
		Log:      log,
		Progress: progress.New(os.Stderr, -1, "reading"),
	}

	stats, err := cres.Run(reader, converter, writer, cfg)
	if err != nil {
		return err
	}

	log.Info().
		Int("input_events", stats.NumInput).
		Int("output_events", stats.NumOutput).
		Float64("final_weight_sum", stats.FinalWeightSum).
		Float64("negative_fraction", stats.NegativeFraction).
		Float64("median_cell_radius", stats.MedianCellRadius).
		Msg("done")

	if opts.dumpcells != "" {
		if err := dumpCells(opts.dumpcells, stats); err != nil {
			return fmt.Errorf("--dumpcells: %w", err)
		}
	}
	return nil
}

func buildConverter(opts *options) (cres.Converter, error) {
	jetAlgo, err := cluster.ParseAlgorithm(opts.jetAlgorithm)
	if err != nil {
		return nil, fmt.Errorf("--jetalgorithm: %w", err)
	}
	c := convert.New(cluster.JetDefinition{Algorithm: jetAlgo, Radius: opts.jetRadius, MinPt: opts.jetPt})

	if opts.leptonAlgorithm != "" {
		leptonAlgo, err := cluster.ParseAlgorithm(opts.leptonAlgorithm)
		if err != nil {
			return nil, fmt.Errorf("--leptonalgorithm: %w", err)
		}
		c = c.WithLeptonDef(cluster.JetDefinition{Algorithm: leptonAlgo, Radius: opts.leptonRadius, MinPt: opts.leptonPt})
	}
	if names := includedWeightNames(opts.includeWeights); len(names) > 0 {
		c = c.WithWeights(names)
	}
	return c, nil
}

func includedWeightNames(flag string) []string {
	if flag == "" {
		return nil
	}
	parts := strings.Split(flag, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}

// rewindSeeker is what every concrete format reader needs from its
// underlying file: Read plus Seek for Rewind to reopen at offset 0.
type rewindSeeker interface {
	io.Reader
	io.Seeker
}

func newFormatReader(src rewindSeeker, format string) (ioformat.Reader, error) {
	switch format {
	case "hepmc2":
		return hepmc2.NewReader(src), nil
	case "lhef":
		return lhef.NewReader(src), nil
	case "root":
		return rootntuple.NewReader()
	case "stripper-xml":
		return stripperxml.NewReader()
	default:
		return nil, fmt.Errorf("unknown --informat %q", format)
	}
}

func openReader(inputs []string, format string) (ioformat.Reader, func(), error) {
	files := make([]*os.File, 0, len(inputs))
	readers := make([]ioformat.Reader, 0, len(inputs))
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}
	for _, path := range inputs {
		f, err := os.Open(path)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("opening %s: %w", path, err)
		}
		files = append(files, f)
		r, err := newFormatReader(f, format)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		readers = append(readers, r)
	}
	return newMultiReader(readers), closeAll, nil
}

func openWriter(opts *options) (ioformat.Writer, func(), error) {
	f, err := os.Create(opts.outfile)
	if err != nil {
		return nil, nil, fmt.Errorf("creating %s: %w", opts.outfile, err)
	}
	spec, err := compression.Parse(opts.compression)
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("--compression: %w", err)
	}
	wc, err := compression.NewWriter(f, spec)
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("--compression: %w", err)
	}

	var writer ioformat.Writer
	switch opts.outformat {
	case "hepmc2":
		writer = hepmc2.NewWriter(wc)
	case "lhef":
		writer = lhef.NewWriter(wc)
	case "root":
		writer, err = rootntuple.NewWriter()
	case "stripper-xml":
		writer, err = stripperxml.NewWriter()
	default:
		err = fmt.Errorf("unknown --outformat %q", opts.outformat)
	}
	if err != nil {
		_ = wc.Close()
		_ = f.Close()
		return nil, nil, err
	}

	closer := func() {
		_ = writer.Close()
		_ = wc.Close()
		_ = f.Close()
	}
	return writer, closer, nil
}

// expandArgfiles replaces any "@path" token with the whitespace-separated
// contents of the file at path.
func expandArgfiles(args []string) ([]string, error) {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if !strings.HasPrefix(a, "@") {
			out = append(out, a)
			continue
		}
		data, err := os.ReadFile(a[1:])
		if err != nil {
			return nil, fmt.Errorf("expanding %s: %w", a, err)
		}
		out = append(out, strings.Fields(string(data))...)
	}
	return out, nil
}
