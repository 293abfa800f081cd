package layout

import (
	"errors"
	"fmt"
)

// Code 是布局错误的机器可读代码，均表示构树时的调用错误，重试无效。
type Code string

const (
	CodeNoCommonAncestor             Code = "NO_COMMON_ANCESTOR"
	CodeNotAnAncestor                Code = "NOT_AN_ANCESTOR"
	CodeInvalidArgument              Code = "INVALID_ARGUMENT"
	CodeUnimplementedSegmentRenderer Code = "UNIMPLEMENTED_SEGMENT_RENDERER"
	CodeCycle                        Code = "CYCLE"
)

// Error 是带错误码和可选原因的布局错误。
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap 返回底层原因，供 errors.Is/As 使用。
func (e *Error) Unwrap() error { return e.Cause }

func newError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func wrapError(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// IsCode 判断 err 或其包装链中是否有错误码为 code 的 *Error。
func IsCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// CodeOf 取出错误码，非布局错误返回 ""。
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
