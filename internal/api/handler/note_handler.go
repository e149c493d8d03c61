package handler

import (
	"Redwatch/internal/api/dto"
	"Redwatch/internal/job"
	"Redwatch/internal/pkg/consts"
	"Redwatch/internal/pkg/response"
	"Redwatch/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
)

type NoteHandler struct {
	gate     service.GateService
	watchJob *job.WatchJob
}

func NewNoteHandler(gate service.GateService, watchJob *job.WatchJob) *NoteHandler {
	return &NoteHandler{
		gate:     gate,
		watchJob: watchJob,
	}
}

// Recent 最近入库的帖子
func (s *NoteHandler) Recent(c *gin.Context) {
	var req dto.RecentNotesDTO
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if req.Limit == 0 {
		req.Limit = consts.DefaultRecentLimit
	}

	notes, err := s.gate.Recent(c.Request.Context(), req.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]*dto.NoteDTO, 0, len(notes))
	if err = copier.Copy(&out, &notes); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, out)
}

// Exists 查询某个 note_id 是否已入库
func (s *NoteHandler) Exists(c *gin.Context) {
	noteID := c.Param("note_id")
	if noteID == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	ok, err := s.gate.Exists(c.Request.Context(), noteID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !ok {
		response.Error(c, service.ErrNoteNotFound)
		return
	}
	response.Success(c, gin.H{"note_id": noteID})
}

// Run 手动触发一轮监控，同步等待结果
func (s *NoteHandler) Run(c *gin.Context) {
	notes, err := s.watchJob.RunContext(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]*dto.NoteDTO, 0, len(notes))
	if err = copier.Copy(&out, &notes); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.RunResultDTO{NewCount: len(out), Notes: out})
}
