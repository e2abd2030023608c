// Package corpus 提供页面数据源。
package corpus

import (
	"fmt"
	"io"
	"iter"
	"os"
)

// Page 是一页文本，计数完成后即被丢弃。
type Page struct {
	Title string
	Text  string
}

// Source 按顺序产出页面。
// 序列只能遍历一次，每个页面的所有权转交给消费者；
// 非 nil 的错误表示数据源无法继续读取，序列随之结束。
type Source interface {
	Pages() iter.Seq2[Page, error]
}

// Slice 是内存中的页面列表
type Slice []Page

func (s Slice) Pages() iter.Seq2[Page, error] {
	return func(yield func(Page, error) bool) {
		for _, p := range s {
			if !yield(p, nil) {
				return
			}
		}
	}
}

type limited struct {
	src Source
	max int
}

// Limit 最多从 src 读取 max 个页面，max <= 0 表示不限制。
func Limit(src Source, max int) Source {
	if max <= 0 {
		return src
	}
	return &limited{src: src, max: max}
}

func (l *limited) Pages() iter.Seq2[Page, error] {
	return func(yield func(Page, error) bool) {
		n := 0
		for p, err := range l.src.Pages() {
			if !yield(p, err) || err != nil {
				return
			}
			n++
			if n >= l.max {
				return
			}
		}
	}
}

// 支持的文件格式
const (
	FormatWiki  = "wiki"
	FormatLines = "lines"
)

// Open 以指定格式打开语料文件，调用方负责关闭返回的 io.Closer。
func Open(path, format string) (Source, io.Closer, error) {
	var newSource func(io.Reader) Source
	switch format {
	case FormatWiki, "":
		newSource = func(r io.Reader) Source { return Wiki(r) }
	case FormatLines:
		newSource = func(r io.Reader) Source { return Lines(r) }
	default:
		return nil, nil, fmt.Errorf("unknown corpus format %q", format)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open corpus: %w", err)
	}
	return newSource(f), f, nil
}
