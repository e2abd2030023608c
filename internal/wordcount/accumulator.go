package wordcount

import (
	"sync"

	"github.com/zeebo/xxh3"
)

const defaultShards = 64

// Accumulator 是多个 worker 共享的全局计数。
// 单词按 xxh3 哈希分片，每个分片一把锁：同一个单词的读-改-写互斥，
// 不同分片上的更新互不阻塞。
type Accumulator struct {
	mask   uint64
	shards []shard
}

type shard struct {
	mu     sync.Mutex
	counts Counts
}

// NewAccumulator 创建至少 n 个分片的累加器，分片数向上取整为 2 的幂。
func NewAccumulator(n int) *Accumulator {
	if n <= 0 {
		n = defaultShards
	}
	size := 1
	for size < n {
		size <<= 1
	}
	a := &Accumulator{
		mask:   uint64(size - 1),
		shards: make([]shard, size),
	}
	for i := range a.shards {
		a.shards[i].counts = make(Counts)
	}
	return a
}

func (a *Accumulator) shardFor(word string) *shard {
	return &a.shards[xxh3.HashString(word)&a.mask]
}

// Add 原子地将 word 的计数增加 n，不存在时插入。
func (a *Accumulator) Add(word string, n int) {
	s := a.shardFor(word)
	s.mu.Lock()
	s.counts[word] += n
	s.mu.Unlock()
}

// AddAll 将一个局部计数并入累加器，调用之后 c 不能再使用。
func (a *Accumulator) AddAll(c Counts) {
	for w, n := range c {
		a.Add(w, n)
	}
}

// Counts 返回当前累积结果的副本
func (a *Accumulator) Counts() Counts {
	out := make(Counts)
	for i := range a.shards {
		s := &a.shards[i]
		s.mu.Lock()
		for w, n := range s.counts {
			out[w] = n
		}
		s.mu.Unlock()
	}
	return out
}
