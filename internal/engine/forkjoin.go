package engine

import (
	"cmp"
	"context"
	"iter"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/TomCN0803/wordfreq/internal/corpus"
	"github.com/TomCN0803/wordfreq/internal/wordcount"
)

// divideAndConquer 递归地把页面列表对半拆分，直到不超过 threshold 时直接计数，
// 两半的结果在都完成后合并。兄弟子树之间没有共享的可变状态。
type divideAndConquer struct {
	workers   int
	threshold int
}

func (d divideAndConquer) run(ctx context.Context, pages iter.Seq2[corpus.Page, error], t *tally) (wordcount.Counts, error) {
	var list []corpus.Page
	for p, err := range pages {
		if err != nil {
			return make(wordcount.Counts), readError(err)
		}
		if err := ctx.Err(); err != nil {
			return make(wordcount.Counts), err
		}
		list = append(list, p)
	}

	// 调用方 goroutine 本身算一个 worker
	forks := semaphore.NewWeighted(int64(d.workers - 1))
	return d.compute(ctx, forks, list, t)
}

func (d divideAndConquer) compute(ctx context.Context, forks *semaphore.Weighted, pages []corpus.Page, t *tally) (wordcount.Counts, error) {
	if len(pages) <= d.threshold {
		return d.leaf(ctx, pages, t)
	}

	mid := len(pages) / 2
	left, right := pages[:mid], pages[mid:]

	// 没有空闲的 worker 时不再 fork，在当前 goroutine 中依次计算两半
	if !forks.TryAcquire(1) {
		l, lerr := d.compute(ctx, forks, left, t)
		r, rerr := d.compute(ctx, forks, right, t)
		return wordcount.Merge(l, r), cmp.Or(lerr, rerr)
	}

	var l wordcount.Counts
	var eg errgroup.Group
	eg.Go(func() error {
		defer forks.Release(1)
		var err error
		l, err = d.compute(ctx, forks, left, t)
		return err
	})
	r, rerr := d.compute(ctx, forks, right, t)
	lerr := eg.Wait()

	return wordcount.Merge(l, r), cmp.Or(lerr, rerr)
}

// leaf 把一段页面计入同一个局部计数，取消只在叶子开始前检查。
func (d divideAndConquer) leaf(ctx context.Context, pages []corpus.Page, t *tally) (wordcount.Counts, error) {
	if err := ctx.Err(); err != nil {
		return make(wordcount.Counts), err
	}
	local := make(wordcount.Counts)
	for _, p := range pages {
		if c, ok := t.count(p); ok {
			local = wordcount.Merge(local, c)
		}
	}
	return local, nil
}
