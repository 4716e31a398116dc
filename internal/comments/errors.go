package comments

import (
	"errors"
)

// 错误分级，handler 层据此映射 HTTP 状态码
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrStorage    = errors.New("storage failure")
)
