package corpus

import (
	"encoding/xml"
	"errors"
	"io"
	"iter"
)

type wikiSource struct {
	r io.Reader
}

// Wiki 流式读取 MediaWiki 导出文件，每个 <page> 元素是一个页面。
func Wiki(r io.Reader) Source {
	return &wikiSource{r: r}
}

type wikiPage struct {
	Title    string `xml:"title"`
	Redirect *struct {
		Title string `xml:"title,attr"`
	} `xml:"redirect"`
	Revision struct {
		Text string `xml:"text"`
	} `xml:"revision"`
}

func (s *wikiSource) Pages() iter.Seq2[Page, error] {
	return func(yield func(Page, error) bool) {
		dec := xml.NewDecoder(s.r)
		for {
			tok, err := dec.Token()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(Page{}, err)
				return
			}

			start, ok := tok.(xml.StartElement)
			if !ok || start.Name.Local != "page" {
				continue
			}

			var wp wikiPage
			if err := dec.DecodeElement(&wp, &start); err != nil {
				yield(Page{}, err)
				return
			}
			// 重定向页没有正文
			if wp.Redirect != nil {
				continue
			}
			if !yield(Page{Title: wp.Title, Text: wp.Revision.Text}, nil) {
				return
			}
		}
	}
}
