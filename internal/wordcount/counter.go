package wordcount

// Counts 单词到出现次数的映射
type Counts map[string]int

// Total 返回所有单词出现次数之和
func (c Counts) Total() int {
	var n int
	for _, v := range c {
		n += v
	}
	return n
}

// Counter 累积一个 worker 的局部计数。
// Counter 不是并发安全的，同一时刻只能由一个 goroutine 持有。
type Counter struct {
	counts Counts
}

func NewCounter() *Counter {
	return &Counter{counts: make(Counts)}
}

// Add 将 word 的计数加一
func (c *Counter) Add(word string) {
	if c.counts == nil {
		c.counts = make(Counts)
	}
	c.counts[word]++
}

// Len 返回当前不同单词的个数
func (c *Counter) Len() int {
	return len(c.counts)
}

// Drain 取走已累积的计数，之后 Counter 为空，再次调用返回空映射。
func (c *Counter) Drain() Counts {
	out := c.counts
	c.counts = nil
	if out == nil {
		return make(Counts)
	}
	return out
}
