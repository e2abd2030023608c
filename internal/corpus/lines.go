package corpus

import (
	"bufio"
	"io"
	"iter"
	"strconv"
	"strings"
)

const maxLineSize = 16 << 20

type lineSource struct {
	r io.Reader
}

// Lines 把 r 中每个非空行当作一个页面，标题为 "line-<行号>"。
func Lines(r io.Reader) Source {
	return &lineSource{r: r}
}

func (s *lineSource) Pages() iter.Seq2[Page, error] {
	return func(yield func(Page, error) bool) {
		sc := bufio.NewScanner(s.r)
		sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		n := 0
		for sc.Scan() {
			n++
			line := sc.Text()
			if strings.TrimSpace(line) == "" {
				continue
			}
			if !yield(Page{Title: "line-" + strconv.Itoa(n), Text: line}, nil) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			yield(Page{}, err)
		}
	}
}
