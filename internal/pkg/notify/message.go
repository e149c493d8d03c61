package notify

import (
	"Redwatch/internal/model"
	"fmt"
	"strings"
)

// BuildMessage 将本轮新帖子汇总为一条 Markdown 通知
func BuildMessage(notes []*model.Note) (string, string) {
	title := fmt.Sprintf("🔔 小红书监控 - 发现 %d 条新帖子", len(notes))

	var b strings.Builder
	fmt.Fprintf(&b, "## 发现 %d 条新帖子\n\n", len(notes))
	for i, n := range notes {
		fmt.Fprintf(&b, "### %d. %s\n", i+1, orDefault(n.Title, "无标题"))
		fmt.Fprintf(&b, "- **关键词**: %s\n", orDefault(n.Keyword, "-"))
		fmt.Fprintf(&b, "- **时间**: %s\n", orDefault(n.PublishTime, "未知"))
		fmt.Fprintf(&b, "- **链接**: [%s](%s)\n\n", n.NoteID, orDefault(n.URL, "#"))
	}
	return title, strings.TrimRight(b.String(), "\n")
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
