package dto

import "time"

// Response 统一返回结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

type RecentNotesDTO struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=500"`
}

type NoteDTO struct {
	NoteID      string    `json:"note_id"`
	Platform    string    `json:"platform"`
	Title       string    `json:"title"`
	PublishTime string    `json:"publish_time"`
	URL         string    `json:"url"`
	Keyword     string    `json:"keyword"`
	CreatedAt   time.Time `json:"created_at"`
}

type RunResultDTO struct {
	NewCount int        `json:"new_count"`
	Notes    []*NoteDTO `json:"notes"`
}
