// Package engine 并行统计语料中的词频。
//
// 同一次计算有多种可互换的分发策略（顺序、有界队列、固定线程池、分治、扇出扇入），
// 无论选择哪种策略，结果都与顺序处理完全一致。
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/TomCN0803/wordfreq/internal/corpus"
	"github.com/TomCN0803/wordfreq/internal/tokenize"
	"github.com/TomCN0803/wordfreq/internal/wordcount"
)

// Status 是一次运行的最终状态
type Status string

const (
	StatusOK        Status = "ok"
	StatusCancelled Status = "cancelled"
	StatusFailed    Status = "failed"
)

// Report 是一次运行的结果。
// 状态不是 StatusOK 时 Counts 只包含出错前已经合并的页面。
type Report struct {
	RunID       uuid.UUID
	Strategy    Strategy
	Workers     int
	Status      Status
	Pages       int
	FailedPages int
	Failures    []PageError
	Counts      wordcount.Counts
	Top         []wordcount.Entry
}

type Engine struct {
	cfg    Config
	tok    tokenize.Tokenizer
	logger *slog.Logger
}

type Option func(*Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New 创建引擎，cfg 中的零值字段取默认值。
func New(cfg Config, tok tokenize.Tokenizer, opts ...Option) (*Engine, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, fmt.Errorf("%w: nil tokenizer", ErrInvalidConfig)
	}

	e := &Engine{cfg: cfg, tok: tok, logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *Engine) Config() Config {
	return e.cfg
}

func (e *Engine) distributor() (distributor, error) {
	switch e.cfg.Strategy {
	case Sequential:
		return sequential{}, nil
	case BoundedQueue:
		return boundedQueue{
			workers:    e.cfg.Workers,
			capacity:   e.cfg.QueueCapacity,
			putTimeout: e.cfg.QueueTimeout,
			shards:     e.cfg.Shards,
			logger:     e.logger,
		}, nil
	case FixedPool:
		return fixedPool{
			workers:         e.cfg.Workers,
			submitTimeout:   e.cfg.QueueTimeout,
			shutdownTimeout: e.cfg.ShutdownTimeout,
			shards:          e.cfg.Shards,
			logger:          e.logger,
		}, nil
	case DivideAndConquer:
		return divideAndConquer{workers: e.cfg.Workers, threshold: e.cfg.Threshold}, nil
	case FanOutFanIn:
		return fanOutFanIn{workers: e.cfg.Workers}, nil
	default:
		return nil, fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfig, e.cfg.Strategy)
	}
}

// Run 用配置的策略统计 src 中的所有页面。
//
// 单个页面失败不会中断运行，只计入 Report.FailedPages。
// 数据源读取失败返回 ErrCorpusRead，等待超时返回 ErrCapacityTimeout，
// ctx 被取消返回 ErrCancelled；这些情况下仍返回带有部分结果的 Report。
func (e *Engine) Run(ctx context.Context, src corpus.Source) (*Report, error) {
	dist, err := e.distributor()
	if err != nil {
		return nil, err
	}

	rep := &Report{
		RunID:    uuid.New(),
		Strategy: e.cfg.Strategy,
		Workers:  e.cfg.Workers,
	}
	logger := e.logger.With("run_id", rep.RunID, "strategy", rep.Strategy)
	logger.Debug("run started", "workers", rep.Workers, "max_pages", e.cfg.MaxPages)

	t := newTally(e.tok, logger)
	counts, err := dist.run(ctx, corpus.Limit(src, e.cfg.MaxPages).Pages(), t)
	if counts == nil {
		counts = make(wordcount.Counts)
	}

	rep.Pages, rep.FailedPages, rep.Failures = t.snapshot()
	rep.Counts = counts
	rep.Top = wordcount.TopK(counts, e.cfg.TopK)

	switch {
	case err == nil:
		rep.Status = StatusOK
	case !errors.Is(err, ErrCapacityTimeout) && isCancellation(err):
		rep.Status = StatusCancelled
		err = fmt.Errorf("%w: %w", ErrCancelled, err)
	default:
		rep.Status = StatusFailed
	}

	logger.Info("run finished",
		"status", rep.Status,
		"pages", rep.Pages,
		"failed_pages", rep.FailedPages,
		"distinct_words", len(rep.Counts),
	)
	switch rep.Status {
	case StatusCancelled:
		logger.Warn("run cancelled", "error", err)
	case StatusFailed:
		logger.Error("run failed", "error", err)
	}
	return rep, err
}
