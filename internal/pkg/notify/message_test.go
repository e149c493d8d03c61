package notify

import (
	"Redwatch/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildMessage(t *testing.T) {
	notes := []*model.Note{
		{NoteID: "abc", Title: "微星显卡", Keyword: "msi", PublishTime: "2天前", URL: "https://x/explore/abc"},
		{NoteID: "def", Keyword: "微星", URL: "https://x/explore/def"},
	}

	title, body := BuildMessage(notes)

	assert.Equal(t, "🔔 小红书监控 - 发现 2 条新帖子", title)
	assert.Equal(t, "## 发现 2 条新帖子\n\n"+
		"### 1. 微星显卡\n- **关键词**: msi\n- **时间**: 2天前\n- **链接**: [abc](https://x/explore/abc)\n\n"+
		"### 2. 无标题\n- **关键词**: 微星\n- **时间**: 未知\n- **链接**: [def](https://x/explore/def)", body)
}
