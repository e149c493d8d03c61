package consts

// trace_id 前缀，区分定时/手动运行与接口请求
const (
	TracePrefixRun = "run-"
	TracePrefixAPI = "api-"
)

const (
	DefaultRecentLimit = 50
)
