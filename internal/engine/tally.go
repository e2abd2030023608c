package engine

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/TomCN0803/wordfreq/internal/corpus"
	"github.com/TomCN0803/wordfreq/internal/tokenize"
	"github.com/TomCN0803/wordfreq/internal/wordcount"
)

// maxRecordedFailures 报告中最多保留的失败明细，失败总数不受限制
const maxRecordedFailures = 100

// tally 负责单页计数，并记录成功和失败的页数，所有 worker 共用。
type tally struct {
	tok    tokenize.Tokenizer
	logger *slog.Logger

	counted atomic.Int64

	mu       sync.Mutex
	failed   int
	failures []PageError
}

func newTally(tok tokenize.Tokenizer, logger *slog.Logger) *tally {
	return &tally{tok: tok, logger: logger}
}

// count 统计一个页面。失败时记录错误并返回 false，该页面不贡献任何计数。
func (t *tally) count(p corpus.Page) (wordcount.Counts, bool) {
	c, err := countPage(t.tok, p)
	if err != nil {
		t.fail(p, err)
		return nil, false
	}
	t.counted.Add(1)
	return c, true
}

func (t *tally) fail(p corpus.Page, err error) {
	t.logger.Warn("page skipped", "title", p.Title, "error", err)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.failed++
	if len(t.failures) < maxRecordedFailures {
		t.failures = append(t.failures, PageError{Title: p.Title, Err: err})
	}
}

func (t *tally) snapshot() (counted, failed int, failures []PageError) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return int(t.counted.Load()), t.failed, append([]PageError(nil), t.failures...)
}

// countPage 对页面分词、过滤并计数
func countPage(tok tokenize.Tokenizer, p corpus.Page) (wordcount.Counts, error) {
	c := wordcount.NewCounter()
	for word, err := range tok.Tokens(p.Text) {
		if err != nil {
			return nil, err
		}
		if wordcount.Keep(word) {
			c.Add(word)
		}
	}
	return c.Drain(), nil
}
