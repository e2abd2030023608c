package wordcount

// entryHeap 是以排名最低的条目为堆顶的小顶堆，用于保留前 k 个条目。
type entryHeap []Entry

func (h *entryHeap) Len() int {
	return len(*h)
}

func (h *entryHeap) Less(i int, j int) bool {
	return compareEntries((*h)[i], (*h)[j]) > 0
}

func (h *entryHeap) Swap(i int, j int) {
	(*h)[i], (*h)[j] = (*h)[j], (*h)[i]
}

func (h *entryHeap) Pop() any {
	v := (*h)[len(*h)-1]
	*h = (*h)[:len(*h)-1]
	return v
}

func (h *entryHeap) Push(x any) {
	*h = append(*h, x.(Entry))
}
