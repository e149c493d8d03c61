package service

import (
	"errors"
)

const (
	BadRequest          = 400
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
)

var (
	ErrParamInvalid     = errors.New("参数错误")
	ErrNoteNotFound     = errors.New("帖子不存在")
	ErrRunInProgress    = errors.New("已有监控任务正在运行")
	ErrStoreUnavailable = errors.New("数据库不可用")
	UnExpectedError     = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:     BadRequest,
	ErrNoteNotFound:     NotFound,
	ErrRunInProgress:    Conflict,
	ErrStoreUnavailable: InternalServerError,
	UnExpectedError:     InternalServerError,
}
