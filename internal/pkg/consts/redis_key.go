package consts

const (
	WatchRunLock = "redwatch:run:lock"
)
