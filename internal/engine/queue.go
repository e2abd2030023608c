package engine

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/TomCN0803/wordfreq/internal/corpus"
	"github.com/TomCN0803/wordfreq/internal/wordcount"
)

// boundedQueue 一个生产者把页面放入容量固定的队列，多个消费者从队列取页面计数，
// 结果合并到共享累加器。
type boundedQueue struct {
	workers    int
	capacity   int
	putTimeout time.Duration
	shards     int
	logger     *slog.Logger
}

func (q boundedQueue) run(ctx context.Context, pages iter.Seq2[corpus.Page, error], t *tally) (wordcount.Counts, error) {
	acc := wordcount.NewAccumulator(q.shards)
	queue := make(chan corpus.Page, q.capacity)

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return q.produce(ctx, pages, queue)
	})
	for i := 0; i < q.workers; i++ {
		eg.Go(func() error {
			return q.consume(ctx, i, queue, acc, t)
		})
	}

	err := eg.Wait()
	return acc.Counts(), err
}

// produce 读取所有页面放入队列，队列满时阻塞。
// 关闭队列即表示生产结束。
func (q boundedQueue) produce(ctx context.Context, pages iter.Seq2[corpus.Page, error], queue chan<- corpus.Page) error {
	defer func() { close(queue); q.logger.Debug("producer exits") }()

	for p, err := range pages {
		if err != nil {
			return readError(err)
		}
		if err := q.put(ctx, queue, p); err != nil {
			return err
		}
	}
	return nil
}

func (q boundedQueue) put(ctx context.Context, queue chan<- corpus.Page, p corpus.Page) error {
	select {
	case queue <- p:
		return nil
	default:
	}

	// 队列已满，有限时间内等待消费者腾出空位
	var expired <-chan time.Time
	if q.putTimeout > 0 {
		timer := time.NewTimer(q.putTimeout)
		defer timer.Stop()
		expired = timer.C
	}
	select {
	case queue <- p:
		return nil
	case <-expired:
		return fmt.Errorf("%w: queue full for %s", ErrCapacityTimeout, q.putTimeout)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// consume 在 WaitingForItem 和 Processing 之间循环。
// 只有在队列已关闭并且被取空时才退出，已入队的页面不会丢失。
func (q boundedQueue) consume(ctx context.Context, id int, queue <-chan corpus.Page, acc *wordcount.Accumulator, t *tally) error {
	defer q.logger.Debug("consumer exits", "consumer", id)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case p, ok := <-queue:
			if !ok {
				return nil
			}
			if c, ok := t.count(p); ok {
				acc.AddAll(c)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
