package forms

import (
	"fmt"
	"strings"
)

// 面向用户的错误信息
const (
	MsgPostTextRequired = "post cannot be empty, field is required"
	MsgRequired         = "this field is required"
	MsgInvalidChoice    = "select a valid choice, that choice is not one of the available choices"
	MsgInvalidImage     = "upload a valid image, the file you uploaded was either not an image or a corrupted image"
	MsgEmptyImage       = "the submitted file is empty"
)

// FieldError 是绑定到单个字段的校验错误
type FieldError interface {
	error
	FieldName() string
	UserMessage() string
}

// EmptyFieldError 表示必填字段为空 (去掉首尾空白后)
type EmptyFieldError struct {
	Field   string
	Message string
}

func (e *EmptyFieldError) Error() string       { return fmt.Sprintf("%s: %s", e.Field, e.Message) }
func (e *EmptyFieldError) FieldName() string   { return e.Field }
func (e *EmptyFieldError) UserMessage() string { return e.Message }

// InvalidReferenceError 表示字段引用了不存在的记录，例如未知的社区 ID
type InvalidReferenceError struct {
	Field   string
	Value   string
	Message string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("%s: %s (got %q)", e.Field, e.Message, e.Value)
}
func (e *InvalidReferenceError) FieldName() string   { return e.Field }
func (e *InvalidReferenceError) UserMessage() string { return e.Message }

// InvalidImageError 表示上传的文件无法解码为图片
type InvalidImageError struct {
	Field   string
	Message string
	Err     error
}

func (e *InvalidImageError) Error() string       { return fmt.Sprintf("%s: %s: %v", e.Field, e.Message, e.Err) }
func (e *InvalidImageError) Unwrap() error       { return e.Err }
func (e *InvalidImageError) FieldName() string   { return e.Field }
func (e *InvalidImageError) UserMessage() string { return e.Message }

// ValidationError 汇总一次提交中的所有字段错误。
// errors.As 可以穿过它取到具体的 *EmptyFieldError 等。
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap 暴露各个字段错误
func (e *ValidationError) Unwrap() []error {
	errs := make([]error, 0, len(e.Fields))
	for _, f := range e.Fields {
		errs = append(errs, f)
	}
	return errs
}

// FieldErrors 返回 字段 -> 错误信息 列表，用于重新渲染表单
func (e *ValidationError) FieldErrors() map[string][]string {
	out := make(map[string][]string, len(e.Fields))
	for _, f := range e.Fields {
		out[f.FieldName()] = append(out[f.FieldName()], f.UserMessage())
	}
	return out
}

func (e *ValidationError) add(f FieldError) { e.Fields = append(e.Fields, f) }

// errOrNil 没有字段错误时返回 nil，避免返回非 nil 的空接口
func (e *ValidationError) errOrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
