package browser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// SelectorSet 一组并列的 CSS 选择器，任意一个命中即可
type SelectorSet []string

func (s SelectorSet) String() string {
	return strings.Join(s, ", ")
}

// Element 页面元素句柄
type Element interface {
	Attr(name string) (string, bool)
	Text() string
	FindAll(set SelectorSet) []Element
}

// ElementSource 可按选择器查询元素的页面快照
type ElementSource interface {
	FindAll(set SelectorSet) []Element
	// FindText 返回文本包含 text 的叶子元素
	FindText(text string) []Element
}

// Cascade 按顺序尝试每一层选择器，返回第一层非空的结果与其层级，全部落空时层级为 -1
func Cascade(src ElementSource, tiers []SelectorSet) ([]Element, int) {
	for i, tier := range tiers {
		if len(tier) == 0 {
			continue
		}
		if found := src.FindAll(tier); len(found) > 0 {
			return found, i
		}
	}
	return nil, -1
}

// First 返回 set 在 el 内命中的第一个元素
func First(el Element, set SelectorSet) (Element, bool) {
	if len(set) == 0 {
		return nil, false
	}
	found := el.FindAll(set)
	if len(found) == 0 {
		return nil, false
	}
	return found[0], true
}

// DocumentSource 基于 goquery 的 DOM 快照
type DocumentSource struct {
	doc *goquery.Document
}

func NewDocumentSource(html string) (*DocumentSource, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	return &DocumentSource{doc: doc}, nil
}

func (s *DocumentSource) FindAll(set SelectorSet) []Element {
	if len(set) == 0 {
		return nil
	}
	return wrapSelection(s.doc.Find(set.String()))
}

func (s *DocumentSource) FindText(text string) []Element {
	if text == "" {
		return nil
	}
	leaves := s.doc.Find("body *").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		return sel.Children().Length() == 0 && strings.Contains(sel.Text(), text)
	})
	return wrapSelection(leaves)
}

type selection struct {
	sel *goquery.Selection
}

func (s selection) Attr(name string) (string, bool) {
	return s.sel.Attr(name)
}

func (s selection) Text() string {
	return s.sel.Text()
}

func (s selection) FindAll(set SelectorSet) []Element {
	if len(set) == 0 {
		return nil
	}
	return wrapSelection(s.sel.Find(set.String()))
}

func wrapSelection(sel *goquery.Selection) []Element {
	out := make([]Element, 0, sel.Length())
	sel.Each(func(_ int, item *goquery.Selection) {
		out = append(out, selection{sel: item})
	})
	return out
}
