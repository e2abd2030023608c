package engine

import (
	"cmp"
	"context"
	"iter"

	"golang.org/x/sync/errgroup"

	"github.com/TomCN0803/wordfreq/internal/corpus"
	"github.com/TomCN0803/wordfreq/internal/wordcount"
)

// fanOutFanIn 每个页面一个异步任务，各自产生独立的局部计数；
// 等待所有任务完成后再依次合并。
type fanOutFanIn struct {
	workers int
}

func (f fanOutFanIn) run(ctx context.Context, pages iter.Seq2[corpus.Page, error], t *tally) (wordcount.Counts, error) {
	var eg errgroup.Group
	eg.SetLimit(f.workers)

	// 每个任务只写自己的槽位
	var partials []*wordcount.Counts
	var runErr error
	for p, err := range pages {
		if err != nil {
			runErr = readError(err)
			break
		}
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		slot := new(wordcount.Counts)
		partials = append(partials, slot)
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if c, ok := t.count(p); ok {
				*slot = c
			}
			return nil
		})
	}

	// 屏障：所有已提交的任务都结束后才合并
	werr := eg.Wait()

	global := make(wordcount.Counts)
	for _, slot := range partials {
		global = wordcount.Merge(global, *slot)
	}
	return global, cmp.Or(runErr, werr)
}
