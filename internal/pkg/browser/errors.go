package browser

import "errors"

var (
	ErrLoginTimeout      = errors.New("login not completed within wait window")
	ErrNavigationTimeout = errors.New("page did not settle within timeout")
	ErrElementNotFound   = errors.New("element not found")
	ErrWaitTimeout       = errors.New("wait condition timeout")
)
