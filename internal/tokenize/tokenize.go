// Package tokenize 把页面文本切分成候选单词。
package tokenize

import (
	"errors"
	"fmt"
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrInvalidUTF8 页面文本不是合法的 UTF-8
var ErrInvalidUTF8 = errors.New("tokenize: invalid UTF-8 text")

// Tokenizer 为一段文本产生惰性的 token 序列，每次调用都从头开始。
// 序列中出现错误时，该错误是最后一个元素。
type Tokenizer interface {
	Tokens(text string) iter.Seq2[string, error]
}

// Fields 按空白字符切分
type Fields struct{}

func (Fields) Tokens(text string) iter.Seq2[string, error] {
	return validated(text, strings.FieldsSeq)
}

// Words 取连续的字母、数字和撇号作为一个 token，保留大小写。
type Words struct{}

func (Words) Tokens(text string) iter.Seq2[string, error] {
	return validated(text, func(s string) iter.Seq[string] {
		return strings.FieldsFuncSeq(s, isSeparator)
	})
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
}

func validated(text string, split func(string) iter.Seq[string]) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if !utf8.ValidString(text) {
			yield("", ErrInvalidUTF8)
			return
		}
		for tok := range split(text) {
			if !yield(tok, nil) {
				return
			}
		}
	}
}

// Lookup 按名字返回 tokenizer，支持 "fields" 和 "words"。
func Lookup(name string) (Tokenizer, error) {
	switch name {
	case "fields":
		return Fields{}, nil
	case "words", "":
		return Words{}, nil
	default:
		return nil, fmt.Errorf("unknown tokenizer %q", name)
	}
}
