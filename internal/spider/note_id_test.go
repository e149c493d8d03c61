package spider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractNoteID(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want string
		ok   bool
	}{
		{"explore", "https://example.com/explore/abc123", "abc123", true},
		{"discovery item with query", "https://example.com/discovery/item/xyz?foo=1", "xyz", true},
		{"note_id query", "https://example.com/search?note_id=n0te42&x=1", "n0te42", true},
		{"note path", "https://example.com/note/q1w2e3", "q1w2e3", true},
		{"explore wins over note_id", "https://example.com/explore/first?note_id=second", "first", true},
		{"discovery wins over note path", "/note/later/discovery/item/earlier", "earlier", true},
		{"unrelated", "https://example.com/unrelated", "", false},
		{"empty", "", "", false},
		{"malformed", "%%%://::/explore/", "", false},
		{"id stops at non alnum", "/explore/6579a1b2-extra", "6579a1b2", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractNoteID(tc.url)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAbsoluteURL(t *testing.T) {
	base := "https://www.xiaohongshu.com/"
	assert.Equal(t, "https://www.xiaohongshu.com/explore/a1", AbsoluteURL(base, "/explore/a1"))
	assert.Equal(t, "https://cdn.example.com/x", AbsoluteURL(base, "//cdn.example.com/x"))
	assert.Equal(t, "https://other.com/explore/a1", AbsoluteURL(base, " https://other.com/explore/a1 "))
	assert.Equal(t, "https://www.xiaohongshu.com/?note_id=n0te42", AbsoluteURL(base, "?note_id=n0te42"))
	assert.Equal(t, "https://www.xiaohongshu.com/explore/a1", AbsoluteURL(base, "./explore/a1"))
	assert.Equal(t, "https://www.xiaohongshu.com/explore/a1", AbsoluteURL("https://www.xiaohongshu.com", "explore/a1"))
	assert.Equal(t, "https://www.xiaohongshu.com/?note_id=b2", AbsoluteURL("https://www.xiaohongshu.com", "?note_id=b2"))
}

func TestFallbackTitle(t *testing.T) {
	title := FallbackTitle("6579a1b2000000001e00")
	assert.Equal(t, "小红书笔记 6579a1b2", title)
	assert.Equal(t, "小红书笔记 ab", FallbackTitle("ab"))
}
