// Package main provides vertexenum - a memory-frugal enumerator of
// bifurcation vertices in a de Bruijn graph built from DNA FASTA files.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ptdtan/vertexenum/internal/dna"
	"github.com/ptdtan/vertexenum/internal/enumerator"
	"github.com/ptdtan/vertexenum/internal/output"
	"github.com/ptdtan/vertexenum/internal/simd"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2026-07-31"
)

var (
	shutdownChan = make(chan os.Signal, 1)
	cleanupFuncs []func()
)

func main() {
	setupSignalHandler()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "build":
		runBuild(os.Args[2:])
	case "lookup":
		runLookup(os.Args[2:])
	case "version":
		fmt.Printf("vertexenum v%s (%s)\n", Version, BuildDate)
	case "help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func setupSignalHandler() {
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)
	go handleShutdown()
}

func handleShutdown() {
	<-shutdownChan
	fmt.Fprintln(os.Stderr, "\nreceived shutdown signal, cleaning up...")
	for i := len(cleanupFuncs) - 1; i >= 0; i-- {
		cleanupFuncs[i]()
	}
	fmt.Fprintln(os.Stderr, "cleanup complete")
	os.Exit(130)
}

func printUsage() {
	fmt.Println(`vertexenum - bifurcation vertex enumerator for de Bruijn graphs

Usage:
    vertexenum <command> [arguments]

Commands:
    build    Enumerate bifurcation vertices from FASTA input
    lookup   Query a saved output list for vertex identity
    version  Show version
    help     Show this help

Use "vertexenum <command> --help" for command-specific options.`)
}

// runBuild handles the build command: runs the full two-phase
// pipeline and writes the compressed output list (and optionally the
// Bloom filter snapshot) to disk.
func runBuild(args []string) {
	fs := flag.NewFlagSet("build", flag.ExitOnError)

	k := fs.Int("k", 25, "k-mer length (1..32)")
	m := fs.Uint64("m", 1<<30, "Bloom filter size in bits")
	q := fs.Int("q", 5, "number of independent Bloom hash functions")
	rounds := fs.Int("rounds", 1, "number of hash-space rounds (shards)")
	seed := fs.Int64("seed", 1, "random seed for the hash function family")
	outPath := fs.String("out", "", "output path for the compressed vertex list (required)")
	bloomOut := fs.String("bloom-out", "", "optional path to save the built Bloom filter")
	verbose := fs.Bool("verbose", false, "print per-phase and per-round progress")

	_ = fs.Parse(args)

	inputs := fs.Args()
	if len(inputs) == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one input FASTA path is required")
		fs.PrintDefaults()
		os.Exit(1)
	}
	if *outPath == "" {
		fmt.Fprintln(os.Stderr, "Error: --out is required")
		fs.PrintDefaults()
		os.Exit(1)
	}

	cfg := enumerator.Config{
		Inputs:  inputs,
		K:       *k,
		M:       *m,
		Q:       *q,
		Rounds:  *rounds,
		Seed:    *seed,
		Verbose: *verbose,
	}

	e, err := enumerator.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("vertexenum: k=%d m=%d bits q=%d rounds=%d seed=%d inputs=%d scan=%s\n",
		cfg.K, cfg.M, cfg.Q, cfg.Rounds, cfg.Seed, len(cfg.Inputs), simd.ActivePath())

	if err := e.BuildFilter(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *bloomOut != "" {
		cleanupFuncs = append(cleanupFuncs, func() {
			_ = e.Filter().Save(*bloomOut)
		})
	}

	res, err := e.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, rs := range res.Rounds {
		fmt.Printf("round %d, [%d:%d]: confirmed=%d candidates-discarded=%d elapsed=%s\n",
			rs.Round, rs.Low, rs.High, rs.Confirmed, rs.Candidates, rs.Elapsed)
	}
	fmt.Printf("vertexenum: %d distinct bifurcation vertices\n", res.List.Count())

	if err := res.List.Save(*outPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *bloomOut != "" {
		if err := e.Filter().Save(*bloomOut); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

// runLookup handles the lookup command: loads a saved output list and
// reports verticesCount()/idOf() for k-mers given as arguments or, with
// none given, read one per line from stdin.
func runLookup(args []string) {
	fs := flag.NewFlagSet("lookup", flag.ExitOnError)
	listPath := fs.String("list", "", "path to a list saved by 'build --out' (required)")

	_ = fs.Parse(args)

	if *listPath == "" {
		fmt.Fprintln(os.Stderr, "Error: --list is required")
		fs.PrintDefaults()
		os.Exit(1)
	}

	list, err := output.Load(*listPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("vertexenum: %d distinct bifurcation vertices\n", list.Count())

	queries := fs.Args()
	if len(queries) == 0 {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lookupOne(list, scanner.Text())
		}
		return
	}
	for _, q := range queries {
		lookupOne(list, q)
	}
}

func lookupOne(list *output.List, s string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	k, err := dna.New(s)
	if err != nil {
		fmt.Printf("%s\terror: %v\n", s, err)
		return
	}
	id := list.IDOf(k)
	if id == output.InvalidVertex {
		fmt.Printf("%s\tINVALID_VERTEX\n", s)
		return
	}
	fmt.Printf("%s\t%d\n", s, id)
}
