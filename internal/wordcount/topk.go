package wordcount

import (
	"cmp"
	"container/heap"
	"fmt"
	"slices"
	"strings"
)

// Entry 是排行榜中的一项
type Entry struct {
	Word  string
	Count int
}

func (e Entry) String() string {
	return fmt.Sprintf("Word: '%s' with total %d occurrences!", e.Word, e.Count)
}

// compareEntries 按次数降序排列，次数相同时按单词的字节序升序排列，
// 因此大写字母排在小写字母之前（"I" < "am"）。
func compareEntries(a, b Entry) int {
	if c := cmp.Compare(b.Count, a.Count); c != 0 {
		return c
	}
	return strings.Compare(a.Word, b.Word)
}

// TopK 返回出现次数最多的 k 个单词，顺序见 compareEntries。
// 不同单词少于 k 个时返回全部；k <= 0 或 counts 为空时返回空切片。
func TopK(counts Counts, k int) []Entry {
	if k <= 0 || len(counts) == 0 {
		return []Entry{}
	}

	h := make(entryHeap, 0, min(k, len(counts)))
	for w, n := range counts {
		e := Entry{Word: w, Count: n}
		if h.Len() < k {
			heap.Push(&h, e)
			continue
		}
		// 堆顶是当前保留条目中排名最低的一个
		if compareEntries(e, h[0]) < 0 {
			h[0] = e
			heap.Fix(&h, 0)
		}
	}

	out := []Entry(h)
	slices.SortFunc(out, compareEntries)
	return out
}
