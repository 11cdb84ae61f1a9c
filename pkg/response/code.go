package response

// 业务状态码
const (
	CodeSuccess = 0

	// 认证错误 200xx
	ErrUnauthenticated = 20001
	ErrNoPermission    = 20002
	ErrTokenInvalid    = 20003

	// 业务错误 400xx
	ErrInvalidParam = 40001
	ErrNotFound     = 40002
	ErrUploadFailed = 40003
	ErrConflict     = 40004

	// 系统错误 500xx
	ErrServerInternal  = 50001
	ErrUpstream        = 50002
	ErrTooManyRequests = 50003
)
