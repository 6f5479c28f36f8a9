package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/katalvlaran/bspapsp/apsp"
	"github.com/katalvlaran/bspapsp/comm"
	"github.com/katalvlaran/bspapsp/graph"
	"github.com/katalvlaran/bspapsp/metrics"
	"github.com/katalvlaran/bspapsp/topology"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var errQuery = errors.New("apsp: --from and --to must be given together")

func newRootCommand(ctx context.Context) *cobra.Command {
	cfg := defaultConfig()
	var configPath string
	var from, to int

	cmd := &cobra.Command{
		Use:          "apsp --graph FILE",
		Short:        "Solve all-pairs shortest paths by min-plus squaring on a simulated BSP grid",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}

	fs := cmd.Flags()
	fs.StringVarP(&cfg.Graph, "graph", "g", cfg.Graph, "path to a .cedge edge list")
	fs.BoolVar(&cfg.Directed, "directed", cfg.Directed, "treat edges as directed")
	fs.IntVarP(&cfg.Grid, "grid", "p", cfg.Grid, "PEs per grid side (0: one PE per vertex)")
	fs.BoolVar(&cfg.Pad, "pad", cfg.Pad, "pad the graph with isolated vertices up to a multiple of --grid")
	fs.IntVar(&cfg.Pool, "pool", cfg.Pool, "concurrent PE tasks per stage (0: GOMAXPROCS)")
	fs.StringVar(&cfg.Variant, "variant", cfg.Variant, "squaring algorithm: auto, fox-otto or generalised")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "verbose output")
	fs.StringVar(&cfg.Snapshot, "snapshot", cfg.Snapshot, "write the solved matrices to this file (msgpack)")
	fs.BoolVar(&cfg.Stats, "stats", cfg.Stats, "print engine statistics")
	fs.StringVar(&cfg.Topology, "topology", cfg.Topology, "interconnect used to cost --stats hops: torus or mesh")
	fs.StringVarP(&configPath, "config", "c", "", "YAML config file; flags override it")
	fs.IntVar(&from, "from", 0, "query source vertex (file id)")
	fs.IntVar(&to, "to", 0, "query target vertex (file id)")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		if configPath != "" {
			if err := loadConfig(configPath, fs, &cfg); err != nil {
				return err
			}
		}
		if fs.Changed("from") != fs.Changed("to") {
			return errQuery
		}

		log := logrus.New()
		log.SetOutput(cmd.ErrOrStderr())
		if cfg.Verbose {
			log.SetLevel(logrus.DebugLevel)
		}

		r := runner{cfg: cfg, log: log, out: cmd.OutOrStdout()}
		if fs.Changed("from") {
			r.query = &[2]int{from, to}
		}

		return r.run(ctx)
	}

	return cmd
}

type runner struct {
	cfg   Config
	log   logrus.FieldLogger
	out   io.Writer
	query *[2]int
}

func (r runner) run(ctx context.Context) error {
	if r.cfg.Graph == "" {
		return fmt.Errorf("no graph given: %w", apsp.ErrConfiguration)
	}
	variant, err := apsp.ParseVariant(r.cfg.Variant)
	if err != nil {
		return err
	}

	f, err := os.Open(r.cfg.Graph)
	if err != nil {
		return err
	}
	g, ids, err := graph.Read(f, r.cfg.Directed)
	f.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", r.cfg.Graph, err)
	}
	r.log.WithFields(logrus.Fields{"graph": r.cfg.Graph, "n": g.N()}).Debug("graph loaded")

	opts := []apsp.Option{
		apsp.WithGridSize(r.cfg.Grid),
		apsp.WithVariant(variant),
		apsp.WithLogger(r.log),
	}
	if r.cfg.Pad {
		opts = append(opts, apsp.WithPadding())
	}
	if r.cfg.Pool > 0 {
		opts = append(opts, apsp.WithPoolSize(r.cfg.Pool))
	}

	var rec *metrics.Recorder
	if r.cfg.Stats {
		p := r.cfg.Grid
		if p == 0 {
			p = g.N()
		}
		topo, err := topology.ByName(r.cfg.Topology, p)
		if err != nil {
			return err
		}
		rec = metrics.NewRecorder(topo, p)
		opts = append(opts, apsp.WithObserver(rec))
	}

	s, err := apsp.NewSolver(g, opts...)
	if err != nil {
		return err
	}
	if err = s.Solve(ctx); err != nil {
		return err
	}

	if r.query != nil {
		err = r.printQuery(s, ids)
	} else {
		err = r.printMatrices(s)
	}
	if err != nil {
		return err
	}

	if r.cfg.Snapshot != "" {
		if err = writeSnapshot(s, r.cfg.Snapshot); err != nil {
			return err
		}
		r.log.WithField("file", r.cfg.Snapshot).Info("snapshot written")
	}
	if rec != nil {
		printStats(r.out, rec.Summary())
	}

	return nil
}

func (r runner) printQuery(s *apsp.Solver, ids []int) error {
	dense := make(map[int]int, len(ids))
	for k, id := range ids {
		dense[id] = k
	}
	i, ok := dense[r.query[0]]
	if !ok {
		return fmt.Errorf("--from %d: %w", r.query[0], apsp.ErrVertexOutOfRange)
	}
	j, ok := dense[r.query[1]]
	if !ok {
		return fmt.Errorf("--to %d: %w", r.query[1], apsp.ErrVertexOutOfRange)
	}

	d, err := s.Distance(i, j)
	if err != nil {
		return err
	}
	if math.IsInf(d, 1) {
		fmt.Fprintf(r.out, "%d -> %d: no path\n", ids[i], ids[j])
		return nil
	}

	path, err := s.ShortestPath(i, j)
	if err != nil {
		return err
	}
	hops := make([]string, len(path))
	for k, v := range path {
		hops[k] = fmt.Sprint(ids[v])
	}
	fmt.Fprintf(r.out, "%d -> %d: distance %g\npath: %s\n", ids[i], ids[j], d, strings.Join(hops, " -> "))

	return nil
}

func (r runner) printMatrices(s *apsp.Solver) error {
	dist, _, err := s.Matrices()
	if err != nil {
		return err
	}
	rounds, err := s.Rounds()
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "n=%d p=%d rounds=%d\n%s", s.N(), s.GridSize(), rounds, dist)

	return nil
}

func writeSnapshot(s *apsp.Solver, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = s.WriteSnapshot(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

func printStats(w io.Writer, sum metrics.Summary) {
	fmt.Fprintf(w, "supersteps: %d\n", sum.Supersteps)
	for _, k := range comm.Kinds {
		fmt.Fprintf(w, "values %s: %d\n", k, sum.SentByKind[k])
	}
	fmt.Fprintf(w, "hops: %d\n", sum.Hops)
	fmt.Fprintf(w, "slowest pe: %s %s\n", sum.MaxComputationPE, sum.MaxComputation)
}
