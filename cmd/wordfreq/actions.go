package main

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"github.com/TomCN0803/wordfreq/internal/bench"
	"github.com/TomCN0803/wordfreq/internal/corpus"
	"github.com/TomCN0803/wordfreq/internal/engine"
	"github.com/TomCN0803/wordfreq/internal/tokenize"
)

func runAction(c *cli.Context) error {
	cfg, err := configFromContext(c)
	if err != nil {
		return err
	}

	logger.Info("running", "strategy", cfg.Engine.Strategy, "threads", cfg.Engine.Workers,
		"pages", cfg.Engine.MaxPages, "file", cfg.File)
	rep, sample, err := measureRun(c.Context, cfg)
	if rep == nil {
		return err
	}

	fmt.Printf("Processed pages: %d\n", rep.Pages)
	if rep.FailedPages > 0 {
		fmt.Printf("Failed pages: %d\n", rep.FailedPages)
	}
	fmt.Printf("Elapsed time: %dms\n", sample.Elapsed.Milliseconds())
	fmt.Printf("Usage Memory: %s\n", formatSigned(sample.MemoryUsed))
	fmt.Printf("Usage Cpu Time %.8f seconds\n", sample.CPUTime.Seconds())
	for _, e := range rep.Top {
		fmt.Println(e)
	}

	if err != nil {
		return err
	}
	return appendSample(cfg.CSV, sample)
}

// measureRun 打开语料并在测量中运行一次引擎
func measureRun(ctx context.Context, cfg *config) (*engine.Report, bench.Sample, error) {
	tok, err := tokenize.Lookup(cfg.Tokenizer)
	if err != nil {
		return nil, bench.Sample{}, err
	}
	eng, err := engine.New(cfg.Engine, tok, engine.WithLogger(logger))
	if err != nil {
		return nil, bench.Sample{}, err
	}

	src, closer, err := corpus.Open(cfg.File, cfg.Format)
	if err != nil {
		return nil, bench.Sample{}, err
	}
	defer closer.Close()

	var rep *engine.Report
	resolved := eng.Config()
	sample, err := bench.Measure(string(resolved.Strategy), resolved.MaxPages, resolved.Workers, func() error {
		var err error
		rep, err = eng.Run(ctx, src)
		return err
	})
	if rep != nil {
		sample.DatasetSize = rep.Pages
	}
	return rep, sample, err
}

func appendSample(path string, s bench.Sample) error {
	if path == "" {
		return nil
	}
	if err := bench.AppendCSV(path, s); err != nil {
		return err
	}
	logger.Debug("benchmark sample appended", "csv", path, "implementation", s.Implementation)
	return nil
}

var errMismatch = errors.New("strategies disagree on word counts")

func benchAction(c *cli.Context) error {
	cfg, err := configFromContext(c)
	if err != nil {
		return err
	}
	if cfg.CSV == "" {
		cfg.CSV = "benchmark_results.csv"
	}

	strategies := engine.Strategies()
	if c.IsSet("strategies") {
		strategies = strategies[:0]
		for _, name := range c.StringSlice("strategies") {
			st, err := engine.ParseStrategy(name)
			if err != nil {
				return err
			}
			strategies = append(strategies, st)
		}
	}

	var (
		baseline     *engine.Report
		mismatches   int
		threadCounts = c.IntSlice("thread-counts")
	)
	for _, st := range strategies {
		counts := threadCounts
		if st == engine.Sequential {
			counts = []int{1}
		}
		for _, threads := range counts {
			run := *cfg
			run.Engine.Strategy = st
			run.Engine.Workers = threads

			rep, sample, err := measureRun(c.Context, &run)
			if err != nil {
				return fmt.Errorf("%s with %d threads: %w", st, threads, err)
			}
			if err := appendSample(run.CSV, sample); err != nil {
				return err
			}
			logger.Info("benchmark",
				"strategy", st,
				"threads", threads,
				"pages", humanize.Comma(int64(rep.Pages)),
				"elapsed", sample.Elapsed,
				"memory", formatSigned(sample.MemoryUsed),
				"run_id", rep.RunID,
			)

			if baseline == nil {
				baseline = rep
				continue
			}
			if !maps.Equal(baseline.Counts, rep.Counts) {
				mismatches++
				logger.Error("word counts differ from baseline",
					"strategy", st, "threads", threads,
					"baseline", baseline.Strategy, "baseline_run_id", baseline.RunID, "run_id", rep.RunID)
			}
		}
	}

	if mismatches > 0 {
		return fmt.Errorf("%w: %d runs", errMismatch, mismatches)
	}
	if baseline != nil {
		for _, e := range baseline.Top {
			fmt.Println(e)
		}
	}
	fmt.Printf("Benchmark results appended to %s\n", cfg.CSV)
	return nil
}

func reportAction(c *cli.Context) error {
	in, err := os.Open(c.String("csv"))
	if err != nil {
		return fmt.Errorf("open benchmark csv: %w", err)
	}
	defer in.Close()

	samples, err := bench.ReadCSV(in)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		fmt.Println("No benchmark data found.")
		return nil
	}
	out, err := os.Create(c.String("out"))
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer out.Close()

	if err := bench.WriteHTML(out, samples); err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	fmt.Printf("Generated %s\n", c.String("out"))
	return nil
}

func formatSigned(n int64) string {
	if n < 0 {
		return "-" + humanize.IBytes(uint64(-n))
	}
	return humanize.IBytes(uint64(n))
}
