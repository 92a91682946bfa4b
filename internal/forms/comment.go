package forms

import "strings"

// CommentFields 是评论表单的字段列表
var CommentFields = []string{FieldText}

// CommentInput 是评论表单的原始提交值
type CommentInput struct {
	Text string
}

// CommentData 是清洗后的评论数据
type CommentData struct {
	Text string
}

// ValidateComment 校验评论表单
func ValidateComment(in CommentInput) (*CommentData, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		verr := &ValidationError{}
		verr.add(&EmptyFieldError{Field: FieldText, Message: MsgRequired})
		return nil, verr
	}
	return &CommentData{Text: text}, nil
}
