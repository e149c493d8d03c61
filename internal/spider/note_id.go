package spider

import (
	"net/url"
	"regexp"
	"strings"
)

// noteIDPatterns 按优先级排列，取第一个命中的分组
var noteIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/explore/([a-zA-Z0-9]+)`),
	regexp.MustCompile(`/discovery/item/([a-zA-Z0-9]+)`),
	regexp.MustCompile(`note_id=([a-zA-Z0-9]+)`),
	regexp.MustCompile(`/note/([a-zA-Z0-9]+)`),
}

// ExtractNoteID 从帖子链接中提取 note_id，无法识别时返回 false
func ExtractNoteID(rawURL string) (string, bool) {
	for _, p := range noteIDPatterns {
		if m := p.FindStringSubmatch(rawURL); len(m) > 1 {
			return m[1], true
		}
	}
	return "", false
}

// AbsoluteURL 按 base 解析相对链接（含 //host、?query、./path 形式），无法解析时原样返回
func AbsoluteURL(baseURL, href string) string {
	href = strings.TrimSpace(href)
	base, err := url.Parse(baseURL)
	if err != nil {
		return href
	}
	if base.Path == "" {
		base.Path = "/"
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
