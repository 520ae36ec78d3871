package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"gapfinder/config"
	"gapfinder/game"
	"gapfinder/oracle"
	"gapfinder/repertoire"
	"gapfinder/searcher"
)

type options struct {
	pgnPath    string
	side       game.Side
	count      int
	configPath string
	merge      bool
	verbose    bool
}

func parseArgs(args []string) (*options, error) {
	f := flag.NewFlagSet("gapfinder", flag.ExitOnError)
	var colorFlag string
	opts := &options{}

	f.StringVar(&opts.pgnPath, "pgn", "", "<repertoire PGN file>")
	f.StringVar(&colorFlag, "color", "", "<white|black> (repertoire color)")
	f.IntVar(&opts.count, "n", 10, "<number of uncovered positions to report>")
	f.StringVar(&opts.configPath, "config", "", "<config file> (optional)")
	f.BoolVar(&opts.merge, "merge", false, "merge transpositions on the frontier")
	f.BoolVar(&opts.verbose, "v", false, "debug logging")

	f.Parse(args)
	if opts.pgnPath == "" {
		return nil, fmt.Errorf("please specify --pgn <repertoire PGN file>")
	}
	side, err := game.ParseSide(colorFlag)
	if err != nil {
		return nil, fmt.Errorf("please specify --color <white|black>")
	}
	opts.side = side
	if opts.count < 1 {
		return nil, fmt.Errorf("please specify --n >= 1")
	}
	return opts, nil
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if opts.verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	idx, err := repertoire.BuildFile(opts.pgnPath, opts.side)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build repertoire from %v: %v\n", opts.pgnPath, err)
		os.Exit(1)
	}
	log.Info().Int("positions", idx.Len()).Str("side", opts.side.String()).Msg("repertoire indexed")

	pacer := oracle.NewPacer(cfg.CallInterval)
	client := oracle.NewExplorerClient(cfg.OracleURL, cfg.UserAgent, cfg.RequestTimeout, pacer)

	engineOpts := []searcher.Option{searcher.WithMetrics()}
	if opts.merge {
		engineOpts = append(engineOpts, searcher.WithMergeTranspositions())
	}
	engine := searcher.New(idx, client, engineOpts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	gaps, err := engine.Run(ctx, opts.count)
	report(gaps)
	if err != nil {
		// Gaps found before the failure were still reported above.
		if errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "Search interrupted\n")
		} else {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
		}
		os.Exit(1)
	}
	if len(gaps) < opts.count {
		log.Warn().Int("found", len(gaps)).Int("requested", opts.count).
			Msg("frontier exhausted before the requested count")
	}
}

func report(gaps []searcher.Node) {
	for _, node := range gaps {
		fmt.Printf("%.2f: %s\n", node.Probability, node.Position.Transcript())
		for _, origin := range node.Origins {
			fmt.Printf("      via %s\n", origin.Transcript())
		}
	}
}
