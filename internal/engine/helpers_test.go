package engine

import (
	"context"
	"io"
	"iter"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync/atomic"
	"time"

	"github.com/TomCN0803/wordfreq/internal/corpus"
	"github.com/TomCN0803/wordfreq/internal/tokenize"
	"github.com/TomCN0803/wordfreq/internal/wordcount"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

var vocabulary = []string{
	"a", "I", "A", "i", "x", "the", "The", "cat", "dog", "is", "am", "of", "and",
	"wiki", "page", "café", "über", "42", "don't", "zebra",
}

// generate 生成确定的伪随机语料，包含空页面
func generate(seed uint64, pages int) corpus.Slice {
	r := rand.New(rand.NewPCG(seed, seed))
	out := make(corpus.Slice, pages)
	for i := range out {
		words := make([]string, r.IntN(40))
		for j := range words {
			words[j] = vocabulary[r.IntN(len(vocabulary))]
		}
		out[i] = corpus.Page{Title: "page-" + string(rune('a'+i%26)), Text: strings.Join(words, " ")}
	}
	return out
}

// baseline 单线程直接计数，不经过任何分发策略
func baseline(pages corpus.Slice) wordcount.Counts {
	c := wordcount.NewCounter()
	for _, p := range pages {
		for _, w := range strings.Fields(p.Text) {
			if wordcount.Keep(w) {
				c.Add(w)
			}
		}
	}
	return c.Drain()
}

func newEngine(cfg Config, tok tokenize.Tokenizer) (*Engine, error) {
	return New(cfg, tok, WithLogger(discard))
}

// sleepy 每个页面分词前先等待一段时间
type sleepy struct {
	d time.Duration
}

func (s sleepy) Tokens(text string) iter.Seq2[string, error] {
	time.Sleep(s.d)
	return tokenize.Fields{}.Tokens(text)
}

// gated 在 gate 关闭之前阻塞所有分词调用，并记录开始分词的页数
type gated struct {
	gate    chan struct{}
	started atomic.Int64
}

func (g *gated) Tokens(text string) iter.Seq2[string, error] {
	g.started.Add(1)
	<-g.gate
	return tokenize.Fields{}.Tokens(text)
}

// cancelling 在第 after 个页面开始分词时取消运行
type cancelling struct {
	after  int64
	cancel context.CancelFunc
	calls  atomic.Int64
}

func (c *cancelling) Tokens(text string) iter.Seq2[string, error] {
	if c.calls.Add(1) == c.after {
		c.cancel()
	}
	return tokenize.Fields{}.Tokens(text)
}

// instrumented 记录已经产出的页数
type instrumented struct {
	src     corpus.Source
	yielded atomic.Int64
}

func (s *instrumented) Pages() iter.Seq2[corpus.Page, error] {
	return func(yield func(corpus.Page, error) bool) {
		for p, err := range s.src.Pages() {
			s.yielded.Add(1)
			if !yield(p, err) {
				return
			}
		}
	}
}

// broken 产出 ok 个页面后报告读取错误
type broken struct {
	ok  int
	err error
}

func (b broken) Pages() iter.Seq2[corpus.Page, error] {
	return func(yield func(corpus.Page, error) bool) {
		for i := 0; i < b.ok; i++ {
			if !yield(corpus.Page{Title: "ok", Text: "alpha beta"}, nil) {
				return
			}
		}
		yield(corpus.Page{}, b.err)
	}
}

// cancelAtEnd 产出全部页面后取消运行
type cancelAtEnd struct {
	pages  corpus.Slice
	cancel context.CancelFunc
}

func (s cancelAtEnd) Pages() iter.Seq2[corpus.Page, error] {
	return func(yield func(corpus.Page, error) bool) {
		defer s.cancel()
		for p, err := range s.pages.Pages() {
			if !yield(p, err) {
				return
			}
		}
	}
}
