// Copyright 2025 The parallel-algorithms Authors. SPDX-License-Identifier: Apache-2.0

// Command msort generates n pseudo-random integers, sorts them with the
// parallel merge sort and verifies the result.
//
// Usage:
//
//	msort 1000000
//	msort 1000000 --workers 8 --threshold 4000
//	msort 50000000 --quiet --verbose
//	msort 1000000 --config tuning.yaml
//
// The sequence is printed before and after sorting (suppress with --quiet)
// and the elapsed time covers the sort step only, not generation.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/portscher/parallel-algorithms/forkjoin"
	"github.com/portscher/parallel-algorithms/mergesort"
)

var (
	flagThreshold int
	flagWorkers   int
	flagSeed      int64
	flagConfig    string
	flagQuiet     bool
	flagVerbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "msort <n>",
	Short: "Sort n random integers with a parallel merge sort",
	Long: `msort fills a sequence of n pseudo-random 32-bit integers, sorts it
in place with a parallel divide-and-conquer merge sort and checks that the
result is ordered. Only the sort step is timed.`,
	Args:          cobra.ExactArgs(1),
	RunE:          runSort,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.Flags().IntVar(&flagThreshold, "threshold", mergesort.DefaultThreshold,
		"sub-range size at which sorting switches to the parallel path")
	rootCmd.Flags().IntVar(&flagWorkers, "workers", 0,
		"worker pool size (0 = number of CPUs)")
	rootCmd.Flags().Int64Var(&flagSeed, "seed", 0,
		"base seed for the random fill")
	rootCmd.Flags().StringVar(&flagConfig, "config", "",
		"YAML tuning file (threshold, workers, seed); explicit flags win")
	rootCmd.Flags().BoolVar(&flagQuiet, "quiet", false,
		"do not print the sequence before and after sorting")
	rootCmd.Flags().BoolVar(&flagVerbose, "verbose", false,
		"enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// parseLength validates the positional sequence-length argument.
func parseLength(s string) (int, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid sequence length %q: %w", s, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("sequence length must not be negative, got %d", n)
	}
	return int(n), nil
}

func runSort(cmd *cobra.Command, args []string) error {
	n, err := parseLength(args[0])
	if err != nil {
		return err
	}

	t, err := resolveTuning(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger(flagVerbose)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync()

	pool := forkjoin.New(t.Workers)
	defer pool.Close()

	logger.Debug("configuration resolved",
		zap.Int("n", n),
		zap.Int("workers", pool.NumWorkers()),
		zap.Int("threshold", t.Threshold),
		zap.Int64("seed", t.Seed))

	arr := generate(pool, n, t.Seed)

	if !flagQuiet {
		fmt.Println("Before:")
		printSequence(arr)
	}

	sorter := mergesort.New(pool, mergesort.WithThreshold(t.Threshold))

	start := time.Now()
	if err := sorter.Sort(arr); err != nil {
		return fmt.Errorf("sort failed: %w", err)
	}
	elapsed := time.Since(start)

	if !flagQuiet {
		fmt.Println("After:")
		printSequence(arr)
	}

	if !mergesort.IsSorted(arr) {
		return fmt.Errorf("verification failed: result is not sorted")
	}

	logger.Info("sort completed",
		zap.Int("n", n),
		zap.Int("workers", pool.NumWorkers()),
		zap.Int("threshold", t.Threshold),
		zap.Duration("elapsed", elapsed))

	fmt.Printf("time: %.2f seconds\n", elapsed.Seconds())
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// fillBlock is the number of elements seeded from one derived seed.
// Fixed-size blocks keep the fill deterministic for a given base seed no
// matter how many workers split the loop.
const fillBlock = 4096

// generate fills a fresh slice with pseudo-random values in parallel.
func generate(pool *forkjoin.Pool, n int, seed int64) []int32 {
	arr := make([]int32, n)
	blocks := (n + fillBlock - 1) / fillBlock
	pool.ParallelFor(blocks, func(start, end int) {
		for b := start; b < end; b++ {
			lo := b * fillBlock
			hi := min(lo+fillBlock, n)
			rng := rand.New(rand.NewSource(seed + int64(b)))
			for i := lo; i < hi; i++ {
				arr[i] = rng.Int31() / 10_000_000
			}
		}
	})
	return arr
}

func printSequence(arr []int32) {
	var sb strings.Builder
	for i, v := range arr {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatInt(int64(v), 10))
	}
	fmt.Println(sb.String())
}
