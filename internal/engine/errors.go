package engine

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrCorpusRead 数据源无法继续产出页面，本次运行失败
	ErrCorpusRead = errors.New("corpus read failed")
	// ErrCancelled 运行被提前取消，已合并的结果保留
	ErrCancelled = errors.New("run cancelled")
	// ErrCapacityTimeout 等待队列空位或线程池超时，本次运行失败
	ErrCapacityTimeout = errors.New("capacity wait timed out")
	ErrInvalidConfig   = errors.New("invalid config")
)

// PageError 记录单个页面计数失败，该页面不计入结果。
type PageError struct {
	Title string
	Err   error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page %q: %s", e.Title, e.Err)
}

func (e *PageError) Unwrap() error {
	return e.Err
}

func readError(err error) error {
	return fmt.Errorf("%w: %w", ErrCorpusRead, err)
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
