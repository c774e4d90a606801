// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "studio-site-api/pkg/errors"
)

// Response 统一响应结构
type Response[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

// Issue 站点方案校验问题
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ErrorDetail 错误详情
type ErrorDetail struct {
	ErrorCode   string   `json:"error_code,omitempty"`
	Details     string   `json:"details,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
	// Raw 模型输出无法解析时回传的原始文本（已截断）
	Raw    *string `json:"raw,omitempty"`
	Issues []Issue `json:"issues,omitempty"`
}

// ErrorResponse 错误响应结构
type ErrorResponse struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Error   *ErrorDetail `json:"error,omitempty"`
	TraceID string       `json:"trace_id,omitempty"`
}

// Success 返回成功响应
func Success[T any](c *gin.Context, data T) {
	c.JSON(http.StatusOK, Response[T]{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
		TraceID: c.GetString("trace_id"),
	})
}

// ErrorWithDetail 返回带详情的错误响应
func ErrorWithDetail(c *gin.Context, httpCode int, message string, detail *ErrorDetail) {
	c.JSON(httpCode, ErrorResponse{
		Code:    httpCode,
		Message: message,
		Error:   detail,
		TraceID: c.GetString("trace_id"),
	})
}

// AppError 按 AppError 的状态码与错误码输出；detail 可为 nil
func AppError(c *gin.Context, err *apperrors.AppError, detail *ErrorDetail) {
	if detail == nil {
		detail = &ErrorDetail{}
	}
	detail.ErrorCode = string(err.Code)
	if detail.Details == "" {
		detail.Details = err.Detail
	}
	ErrorWithDetail(c, err.HTTPStatus, err.Message, detail)
}

// AbortAppError 同 AppError，并中止后续处理器
func AbortAppError(c *gin.Context, err *apperrors.AppError) {
	AppError(c, err, nil)
	c.Abort()
}

// BadRequest 返回 400 错误
func BadRequest(c *gin.Context, message string) {
	AppError(c, apperrors.ErrInvalidParam.WithDetail(message), nil)
}
