package engine

import (
	"context"
	"iter"

	"github.com/TomCN0803/wordfreq/internal/corpus"
	"github.com/TomCN0803/wordfreq/internal/wordcount"
)

// distributor 把页面分配给 worker 并汇总局部计数。
// run 只遍历 pages 一次；出错时返回已合并的部分结果和错误。
type distributor interface {
	run(ctx context.Context, pages iter.Seq2[corpus.Page, error], t *tally) (wordcount.Counts, error)
}

// sequential 在调用方 goroutine 中逐页计数，作为其他策略的基准。
type sequential struct{}

func (sequential) run(ctx context.Context, pages iter.Seq2[corpus.Page, error], t *tally) (wordcount.Counts, error) {
	global := make(wordcount.Counts)
	for p, err := range pages {
		if err != nil {
			return global, readError(err)
		}
		if err := ctx.Err(); err != nil {
			return global, err
		}
		if c, ok := t.count(p); ok {
			global = wordcount.Merge(global, c)
		}
	}
	return global, nil
}
