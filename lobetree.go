/*
lobetree computes statistics of airway (or vessel) trees segmented from
medical images, one tree per patient and optionally subdivided into lobes, and
classifies the branching at the root of one lobe as Type A or Type B.

usage: lobetree [ -l <lobe> | -n <procs> | -newick | -h | -v ] <input_dir> <output_dir>

positional arguments:

	<input_dir>	directory with one subdirectory per patient containing
			tree.graphml and lobe-<id>-<patient>.graphml files
	<output_dir>	directory the reports are written to

flags:

	-l lobe
	  	lobe to classify (default "LeftUpperLobe")
	-n int
	  	number of files read in parallel
	-newick
	  	also write each whole tree as newick to <output_dir>/newick
	-h	prints this message and exits
	-v	prints version number and exits

outputs:

	csvTREE.csv		per patient tree statistics
	lobe-<id>.csv		per lobe size relative to the whole tree
	classification.csv	Type A / Type B classification of the chosen lobe
	type-B-edge-lengths.png	edge lengths of the classified lobes

example:

	lobetree data/patients results 2> log.txt
*/
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/jsdoublel/lobetree/internal/classify"
	pr "github.com/jsdoublel/lobetree/internal/prep"
	"github.com/jsdoublel/lobetree/internal/stats"
)

const (
	Version    = "v0.1.0"
	ErrMessage = "lobetree encountered an error ::"

	treeStatsFile      = "csvTREE.csv"
	classificationFile = "classification.csv"
	lengthsPlotFile    = "type-B-edge-lengths.png"
	newickDir          = "newick"
)

type args struct {
	inputDir  string    // directory of patient directories
	outputDir string    // directory for reports
	lobe      pr.LobeID // lobe to classify
	nprocs    int       // number of files read in parallel
	newick    bool      // write newick files of whole trees
}

func setNProcs(nprocs int) int {
	maxProcs := runtime.GOMAXPROCS(0)
	switch {
	case nprocs > maxProcs:
		log.Printf("%d is greater than available processes (%d); limit set to %d\n", nprocs, maxProcs, maxProcs)
		return maxProcs
	case nprocs <= 0:
		return maxProcs
	default:
		return nprocs
	}
}

func parseArgs() args {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr,
			"usage: lobetree [ -l <lobe> | -n <procs> | -newick | -h | -v ] <input_dir> <output_dir>\n",
			"\n",
			"positional arguments:\n\n",
			"  <input_dir>\tdirectory with one subdirectory per patient\n",
			"  <output_dir>\tdirectory the reports are written to\n",
			"\n",
			"flags:\n\n",
		)
		flag.PrintDefaults()
		fmt.Fprint(os.Stderr,
			"\n",
			"example:\n\n",
			"\tlobetree data/patients results 2> log.txt\n",
		)
	}
	lobe := pr.LeftUpperLobe
	flag.Var(&lobe, "l", "`lobe` to classify, name or number")
	nprocs := flag.Int("n", 0, "number of files read in parallel")
	newick := flag.Bool("newick", false, "also write each whole tree as newick to <output_dir>/newick")
	help := flag.Bool("h", false, "prints this message and exits")
	ver := flag.Bool("v", false, "prints version number and exits")
	flag.Parse()
	if *help {
		flag.Usage()
		os.Exit(0)
	}
	if *ver {
		fmt.Printf("lobetree version %s\n", Version)
		os.Exit(0)
	}
	if flag.NArg() != 2 {
		parserError("two positional arguments required: <input_dir> <output_dir>")
	}
	return args{
		inputDir:  flag.Arg(0),
		outputDir: flag.Arg(1),
		lobe:      lobe,
		nprocs:    setNProcs(*nprocs),
		newick:    *newick,
	}
}

// prints message, usage, and exits (status code 1)
func parserError(message string) {
	fmt.Fprintln(os.Stderr, message)
	flag.Usage()
	os.Exit(1)
}

func run(args args) error {
	layout, err := pr.Discover(args.inputDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(args.outputDir, 0o755); err != nil {
		return fmt.Errorf("%w, %s", pr.ErrWritingFile, err)
	}
	trees, err := pr.LoadGraphMap(layout.Trees, args.nprocs)
	if err != nil {
		return err
	}
	log.Printf("loaded trees: %d", len(trees))

	treeStats := stats.ComputeTreeStats(trees)
	err = pr.WriteCSVFile(filepath.Join(args.outputDir, treeStatsFile), func(w io.Writer) error {
		return pr.WriteTreeStatsCSV(treeStats, w)
	})
	if err != nil {
		return err
	}
	if args.newick {
		if err := pr.WriteNewickFiles(trees, filepath.Join(args.outputDir, newickDir)); err != nil {
			return err
		}
	}

	for _, lobe := range pr.LobeIDs {
		lobes, err := pr.LoadGraphs(layout.LobeFiles[lobe], args.nprocs)
		if err != nil {
			return err
		}
		log.Printf("%s: %d lobe files", lobe, len(lobes))
		lobeStats := stats.ComputeLobeStats(lobes, trees)
		err = pr.WriteCSVFile(filepath.Join(args.outputDir, fmt.Sprintf("lobe-%d.csv", int(lobe))), func(w io.Writer) error {
			return pr.WriteLobeStatsCSV(lobeStats, w)
		})
		if err != nil {
			return err
		}
	}

	log.Printf("classifying %s lobes", args.lobe)
	lobes, err := pr.LoadGraphMap(layout.Lobes[args.lobe], args.nprocs)
	if err != nil {
		return err
	}
	records := classify.Run(lobes).Records()
	err = pr.WriteCSVFile(filepath.Join(args.outputDir, classificationFile), func(w io.Writer) error {
		return pr.WriteClassificationCSV(records, w)
	})
	if err != nil {
		return err
	}
	return pr.WriteLengthsBarChart(records, filepath.Join(args.outputDir, lengthsPlotFile))
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Printf("lobetree version %s", Version)
	args := parseArgs()
	if err := run(args); err != nil {
		log.Fatalf("%s %s\n", ErrMessage, err)
	}
	log.Println("done")
}
