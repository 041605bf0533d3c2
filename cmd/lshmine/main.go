// Command lshmine is the command-line entry point for the LSH
// indexing and co-occurrence mining engine.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/liliang-cn/lshmine"
	"github.com/liliang-cn/lshmine/pkg/minestore"
	"github.com/liliang-cn/lshmine/pkg/textdb"
)

var (
	inPath      string
	outPath     string
	tupleSize   uint32
	repetitions uint32
	maxValue    uint32
	width       float64
	capacity    uint32
	seed        uint64
	family      string
	savePath    string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "lshmine",
	Short: "LSH indexing and co-occurrence mining engine",
	Long:  "A command-line interface for mining co-occurrence groups from sparse vector databases using locality-sensitive hashing.",
}

var l1MineCmd = &cobra.Command{
	Use:   "l1-mine",
	Short: "Mine co-occurrence groups from an integer-valued list database using L1-LSH",
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := textdb.LoadDenseListDB(mustOpen(inPath))
		if err != nil {
			return fmt.Errorf("failed to load list database: %w", err)
		}
		if records.Size() == 0 {
			cliLogger().Warn("input database is empty")
		}

		cfg := lshmine.DefaultL1Config(tupleSize, repetitions, maxValue, capacity)
		cfg.Seed = seed
		cfg.Logger = cliLogger()

		start := time.Now()
		result, err := lshmine.L1Mine(records, cfg)
		if err != nil {
			return fmt.Errorf("mining failed: %w", err)
		}
		elapsed := time.Since(start)

		fmt.Printf("mined %s records into %s groups in %s (run %s)\n",
			humanize.Comma(int64(records.Size())),
			humanize.Comma(int64(result.Groups.Size())),
			elapsed.Round(time.Millisecond),
			result.RunID)

		if outPath != "" {
			if err := textdb.SaveListDBFile(outPath, result.Groups); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}

		if savePath != "" {
			mv := maxValue
			if err := saveRun(result, minestore.RunParams{
				Kind: minestore.KindL1, TupleSize: tupleSize, Repetitions: repetitions,
				Capacity: capacity, MaxValueOrNil: &mv, Seed: seed,
			}); err != nil {
				return err
			}
		}
		return nil
	},
}

var lpMineCmd = &cobra.Command{
	Use:   "lp-mine",
	Short: "Mine co-occurrence groups from a real-valued vector database using Lp-LSH",
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := textdb.LoadVectorDBFile(inPath)
		if err != nil {
			return fmt.Errorf("failed to load vector database: %w", err)
		}
		if records.Size() == 0 {
			cliLogger().Warn("input database is empty")
		}

		cfg := lshmine.DefaultLpConfig(tupleSize, repetitions, width, capacity)
		cfg.Seed = seed
		cfg.Logger = cliLogger()
		switch family {
		case "l1":
			cfg.Family = lshmine.FamilyL1
		case "l2", "":
			cfg.Family = lshmine.FamilyL2
		default:
			return fmt.Errorf("unknown family %q: want l1 or l2", family)
		}

		start := time.Now()
		result, err := lshmine.LpMine(records, cfg)
		if err != nil {
			return fmt.Errorf("mining failed: %w", err)
		}
		elapsed := time.Since(start)

		fmt.Printf("mined %s records into %s groups in %s (run %s)\n",
			humanize.Comma(int64(records.Size())),
			humanize.Comma(int64(result.Groups.Size())),
			elapsed.Round(time.Millisecond),
			result.RunID)

		if outPath != "" {
			if err := textdb.SaveListDBFile(outPath, result.Groups); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}

		if savePath != "" {
			w := width
			if err := saveRun(result, minestore.RunParams{
				Kind: minestore.KindLp, TupleSize: tupleSize, Repetitions: repetitions,
				Capacity: capacity, WidthOrNil: &w, Seed: seed,
			}); err != nil {
				return err
			}
		}
		return nil
	},
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print a persisted mining run's parameters and group sizes",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := minestore.Open(savePath)
		if err != nil {
			return fmt.Errorf("failed to open minestore: %w", err)
		}
		defer store.Close()

		runID, _ := cmd.Flags().GetString("run")
		summary, err := store.LoadRun(context.Background(), runID)
		if err != nil {
			return fmt.Errorf("failed to load run: %w", err)
		}

		fmt.Print(summary.DebugString())
		fmt.Printf("Groups: %s\n", humanize.Comma(int64(len(summary.GroupSizes))))
		return nil
	},
}

func saveRun(result *lshmine.Result, params minestore.RunParams) error {
	store, err := minestore.Open(savePath)
	if err != nil {
		return fmt.Errorf("failed to open minestore: %w", err)
	}
	defer store.Close()

	if err := store.SaveRun(context.Background(), result.RunID, params, result.Groups); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

func mustOpen(path string) *os.File {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("failed to open %s: %v", path, err)
	}
	return f
}

// cliLogger writes level-tagged lines to stdout when it is a terminal,
// and compact, untagged lines to stderr otherwise (piped into a file
// or another process, where timestamps and level tags are just noise
// for a downstream consumer) — the one narrow use this CLI makes of
// go-isatty.
func cliLogger() lshmine.Logger {
	level := lshmine.LevelInfo
	if !verbose {
		level = lshmine.LevelWarn
	}
	if isatty.IsTerminal(os.Stdout.Fd()) {
		return lshmine.NewStdLogger(level)
	}
	return lshmine.NewPlainLogger(os.Stderr, level)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	for _, c := range []*cobra.Command{l1MineCmd, lpMineCmd} {
		c.Flags().StringVar(&inPath, "in", "", "Input database file")
		c.Flags().StringVar(&outPath, "out", "", "Output co-occurrence groups file")
		c.Flags().Uint32Var(&tupleSize, "tuple-size", 8, "Hash functions per sketch (T)")
		c.Flags().Uint32Var(&repetitions, "repetitions", 4, "Independently seeded tables (R)")
		c.Flags().Uint32Var(&capacity, "capacity", 1024, "Hash table capacity (power of two)")
		c.Flags().Uint64Var(&seed, "seed", 1, "RNG seed")
		c.Flags().StringVar(&savePath, "save", "", "Persist the run to a SQLite file at this path")
		_ = c.MarkFlagRequired("in")
	}
	l1MineCmd.Flags().Uint32Var(&maxValue, "max-value", 16, "Largest feature value in any dimension")
	lpMineCmd.Flags().Float64Var(&width, "width", 1.0, "Quantization bin width")
	lpMineCmd.Flags().StringVar(&family, "family", "l2", "p-stable family: l1 (Cauchy) or l2 (Gaussian)")

	inspectCmd.Flags().StringVar(&savePath, "db", "", "SQLite minestore file")
	inspectCmd.Flags().String("run", "", "Run ID to inspect")
	_ = inspectCmd.MarkFlagRequired("db")
	_ = inspectCmd.MarkFlagRequired("run")

	rootCmd.AddCommand(l1MineCmd, lpMineCmd, inspectCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
