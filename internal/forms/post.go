// Package forms 校验帖子和评论的提交内容。
// 这里只做校验并返回清洗后的值，不写数据库也不写文件。
package forms

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // 注册 GIF 解码器
	_ "image/jpeg"
	_ "image/png"
	"strconv"
	"strings"

	"yatube/internal/domain"
	"yatube/internal/repository"
)

// 帖子表单的字段，顺序即表单中的顺序
const (
	FieldText  = "text"
	FieldGroup = "group"
	FieldImage = "image"
)

// PostFields 是帖子表单的字段列表
var PostFields = []string{FieldText, FieldGroup, FieldImage}

// Upload 是一个上传的文件
type Upload struct {
	Filename string
	Data     []byte
}

// PostInput 是帖子表单的原始提交值
type PostInput struct {
	Text  string
	Group string // 社区 ID，空字符串表示不选
	Image *Upload
}

// Image 是通过校验的图片
type Image struct {
	Data   []byte
	Format string // gif, jpeg, png
	Width  int
	Height int
}

// Ext 返回与格式对应的文件扩展名
func (i Image) Ext() string {
	switch i.Format {
	case "jpeg":
		return ".jpg"
	default:
		return "." + i.Format
	}
}

// PostData 是清洗后的帖子数据，可以直接写入 domain.Post
type PostData struct {
	Text    string
	GroupID *uint
	Group   *domain.Group
	Image   *Image // nil 表示没有上传新图片
}

// GroupLookup 按 ID 查找社区，repository.GroupRepository 满足此接口
type GroupLookup interface {
	FindByID(ctx context.Context, id uint) (*domain.Group, error)
}

// PostValidator 校验帖子表单
type PostValidator struct {
	groups GroupLookup
}

// NewPostValidator 创建 PostValidator
func NewPostValidator(groups GroupLookup) *PostValidator {
	if groups == nil {
		panic("GroupLookup cannot be nil for PostValidator")
	}
	return &PostValidator{groups: groups}
}

// Validate 校验帖子表单。字段错误汇总为 *ValidationError 返回；
// 查找社区时的基础设施错误原样返回。
func (v *PostValidator) Validate(ctx context.Context, in PostInput) (*PostData, error) {
	verr := &ValidationError{}
	data := &PostData{Text: strings.TrimSpace(in.Text)}

	if data.Text == "" {
		verr.add(&EmptyFieldError{Field: FieldText, Message: MsgPostTextRequired})
	}

	if raw := strings.TrimSpace(in.Group); raw != "" {
		group, err := v.lookupGroup(ctx, raw)
		if err != nil {
			var ref *InvalidReferenceError
			if !errors.As(err, &ref) {
				return nil, err
			}
			verr.add(ref)
		} else {
			data.Group = group
			data.GroupID = &group.ID
		}
	}

	// 没有上传文件时保留原图；上传了空文件则是错误
	switch {
	case in.Image == nil:
	case len(in.Image.Data) == 0:
		verr.add(&InvalidImageError{Field: FieldImage, Message: MsgEmptyImage, Err: ErrEmptyUpload})
	default:
		img, err := decodeImage(in.Image.Data)
		if err != nil {
			verr.add(&InvalidImageError{Field: FieldImage, Message: MsgInvalidImage, Err: err})
		} else {
			data.Image = img
		}
	}

	if err := verr.errOrNil(); err != nil {
		return nil, err
	}
	return data, nil
}

func (v *PostValidator) lookupGroup(ctx context.Context, raw string) (*domain.Group, error) {
	invalid := &InvalidReferenceError{Field: FieldGroup, Value: raw, Message: MsgInvalidChoice}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return nil, invalid
	}
	group, err := v.groups.FindByID(ctx, uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return nil, invalid
		}
		return nil, fmt.Errorf("forms: look up group %d: %w", id, err)
	}
	return group, nil
}

// ErrEmptyUpload 表示上传的文件长度为 0
var ErrEmptyUpload = errors.New("forms: uploaded file is empty")

// decodeImage 只检查图片头能否被解码
func decodeImage(data []byte) (*Image, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("image has empty dimensions %dx%d", cfg.Width, cfg.Height)
	}
	return &Image{Data: data, Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}
