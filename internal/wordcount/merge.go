package wordcount

// Merge 合并两个计数，同一个单词的次数相加。
// 较小的一方被并入较大的一方并返回，a 和 b 在调用之后都不能再使用。
func Merge(a, b Counts) Counts {
	if len(a) < len(b) {
		a, b = b, a
	}
	if a == nil {
		return make(Counts)
	}
	for w, n := range b {
		a[w] += n
	}
	return a
}

// MergeAll 依次折叠所有局部计数，结果总是非 nil。
func MergeAll(parts ...Counts) Counts {
	out := make(Counts)
	for _, p := range parts {
		out = Merge(out, p)
	}
	return out
}
