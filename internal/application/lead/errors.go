package lead

import "strings"

// MissingFieldsError 必填字段为空
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// DeliveryError 通知邮件发送失败
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string {
	return "lead notification failed: " + e.Err.Error()
}

func (e *DeliveryError) Unwrap() error { return e.Err }
