package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
)

var logger *slog.Logger

func main() {
	// 收到 SIGTERM 或 SIGINT 信号时取消运行
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "wordfreq: %s\n", err.Error())
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "wordfreq",
		Usage: "count word frequencies in a large corpus and compare concurrency strategies",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load settings from a YAML `FILE`"},
			&cli.BoolFlag{Name: "debug", Usage: "enable debug logging"},
		},
		Before: func(c *cli.Context) error {
			logger = newLogger(os.Stderr, c.Bool("debug"))
			slog.SetDefault(logger)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "count one corpus with one strategy and print the most frequent words",
				Flags:  append(corpusFlags(), engineFlags()...),
				Action: runAction,
			},
			{
				Name:  "bench",
				Usage: "run every strategy for every thread count and append the measurements to a CSV file",
				Flags: append(append(corpusFlags(), engineFlags()...),
					&cli.StringSliceFlag{Name: "strategies", Usage: "strategies to benchmark (default: all)"},
					&cli.IntSliceFlag{Name: "thread-counts", Value: cli.NewIntSlice(1, 2, 4, 8), Usage: "thread counts to benchmark"},
				),
				Action: benchAction,
			},
			{
				Name:  "report",
				Usage: "render a benchmark CSV file as an HTML report",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "csv", Value: "benchmark_results.csv", Usage: "benchmark CSV `FILE` to read"},
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "benchmark_report.html", Usage: "HTML `FILE` to write"},
				},
				Action: reportAction,
			},
		},
	}
}

// newLogger 输出带源码位置的文本日志，debug 时打开各阶段的调试日志
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level, AddSource: true}))
}

func corpusFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "corpus `FILE` to read (default: enwiki.xml)"},
		&cli.StringFlag{Name: "format", Usage: "corpus format: wiki or lines (default: wiki)"},
		&cli.StringFlag{Name: "tokenizer", Usage: "tokenizer: words or fields (default: words)"},
		&cli.IntFlag{Name: "pages", Aliases: []string{"p"}, Usage: "maximum number of pages to process (default: 100000)"},
		&cli.StringFlag{Name: "csv", Usage: "append benchmark measurements to this CSV `FILE`"},
	}
}

func engineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "strategy", Aliases: []string{"s"}, Usage: "sequential, queue, pool, forkjoin or fanout"},
		&cli.IntFlag{Name: "threads", Aliases: []string{"t"}, Usage: "number of workers (default: GOMAXPROCS)"},
		&cli.IntFlag{Name: "threshold", Usage: "pages below which forkjoin stops splitting"},
		&cli.IntFlag{Name: "queue-capacity", Usage: "capacity of the bounded queue"},
		&cli.IntFlag{Name: "top", Aliases: []string{"k"}, Usage: "number of most frequent words to report"},
		&cli.DurationFlag{Name: "queue-timeout", Usage: "longest wait for queue space or an idle worker"},
		&cli.DurationFlag{Name: "shutdown-timeout", Usage: "longest wait for in-flight pool tasks"},
	}
}
