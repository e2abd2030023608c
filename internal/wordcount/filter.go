package wordcount

import "unicode/utf8"

// Keep 判断候选 token 是否计为单词：长度（按字符计）大于 1，或者恰好是 "a" 或 "I"。
// 区分大小写，单独的 "A" 和 "i" 不计数。
// 长度按 rune 计算，因此单个辅助平面字符（例如 emoji）同样被过滤，不按 UTF-16 码元计为 2。
func Keep(word string) bool {
	return utf8.RuneCountInString(word) > 1 || word == "a" || word == "I"
}
