package model

import (
	"time"
)

const PlatformXiaohongshu = "xiaohongshu"

// Note 一条被发现的帖子，NoteID 为跨关键词、跨批次的唯一去重键
type Note struct {
	ID          uint64    `gorm:"primaryKey" json:"-"`
	NoteID      string    `gorm:"type:varchar(64);not null;uniqueIndex:uk_note_id" json:"note_id"`
	Platform    string    `gorm:"type:varchar(32);not null;default:xiaohongshu" json:"platform"`
	Title       string    `gorm:"type:varchar(255)" json:"title"`
	PublishTime string    `gorm:"type:varchar(64)" json:"publish_time"`
	URL         string    `gorm:"type:varchar(512)" json:"url"`
	Keyword     string    `gorm:"type:varchar(128);index:idx_keyword" json:"keyword"`
	CreatedAt   time.Time `gorm:"index:idx_created_at" json:"created_at"`
}

func (Note) TableName() string {
	return "notes"
}
