package engine

import (
	"cmp"
	"context"
	"fmt"
	"iter"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/TomCN0803/wordfreq/internal/corpus"
	"github.com/TomCN0803/wordfreq/internal/wordcount"
)

// workerPool 最多同时运行 size 个任务。
// 没有显式的任务队列：Submit 在没有空闲 worker 时阻塞，以此形成背压。
type workerPool struct {
	sem           *semaphore.Weighted
	wg            sync.WaitGroup
	ctx           context.Context
	cancel        context.CancelFunc
	submitTimeout time.Duration
}

func newWorkerPool(ctx context.Context, size int, submitTimeout time.Duration) *workerPool {
	ctx, cancel := context.WithCancel(ctx)
	return &workerPool{
		sem:           semaphore.NewWeighted(int64(size)),
		ctx:           ctx,
		cancel:        cancel,
		submitTimeout: submitTimeout,
	}
}

// Submit 等待空闲 worker 后异步执行 task。
// 线程池被取消时返回 context 错误，等待超时返回 ErrCapacityTimeout。
func (p *workerPool) Submit(task func(ctx context.Context)) error {
	actx := p.ctx
	if p.submitTimeout > 0 {
		var cancel context.CancelFunc
		actx, cancel = context.WithTimeout(p.ctx, p.submitTimeout)
		defer cancel()
	}
	if err := p.sem.Acquire(actx, 1); err != nil {
		if perr := p.ctx.Err(); perr != nil {
			return perr
		}
		return fmt.Errorf("%w: no idle worker for %s", ErrCapacityTimeout, p.submitTimeout)
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer p.sem.Release(1)
		task(p.ctx)
	}()
	return nil
}

// Shutdown 不再接受新任务，等待在途任务结束。
// 超过 timeout 后取消线程池的 context，尚未开始的任务放弃执行，
// 正在计数的页面在本页结束后退出，然后返回 ErrCapacityTimeout。
func (p *workerPool) Shutdown(timeout time.Duration) error {
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case <-done:
		p.cancel()
		return nil
	case <-expired:
		p.cancel()
		<-done
		return fmt.Errorf("%w: pool did not drain within %s", ErrCapacityTimeout, timeout)
	}
}

// fixedPool 每个页面作为独立任务提交到线程池，任务直接合并到共享累加器。
type fixedPool struct {
	workers         int
	submitTimeout   time.Duration
	shutdownTimeout time.Duration
	shards          int
	logger          *slog.Logger
}

func (f fixedPool) run(ctx context.Context, pages iter.Seq2[corpus.Page, error], t *tally) (wordcount.Counts, error) {
	acc := wordcount.NewAccumulator(f.shards)
	pool := newWorkerPool(ctx, f.workers, f.submitTimeout)

	var (
		runErr    error
		submitted int
		abandoned atomic.Int64
	)
	for p, err := range pages {
		if err != nil {
			runErr = readError(err)
			break
		}
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		err = pool.Submit(func(ctx context.Context) {
			if ctx.Err() != nil {
				abandoned.Add(1)
				return
			}
			if c, ok := t.count(p); ok {
				acc.AddAll(c)
			}
		})
		if err != nil {
			runErr = err
			break
		}
		submitted++
	}
	f.logger.Debug("pool submission finished", "submitted", submitted)

	if err := pool.Shutdown(f.shutdownTimeout); err != nil && runErr == nil {
		runErr = err
	}
	// 已提交但未执行的页面只会因为取消而被放弃
	if n := abandoned.Load(); n > 0 {
		f.logger.Debug("pool tasks abandoned", "tasks", n)
		runErr = cmp.Or(runErr, ctx.Err(), context.Canceled)
	}
	return acc.Counts(), runErr
}
